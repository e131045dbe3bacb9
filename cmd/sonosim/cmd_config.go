// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/emer/etable/etable"
	"github.com/emer/sonogen/sim"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration and the available parameter sets",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(out).Encode(cfg)
			}
			b, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(b))
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Parameter sets:")
			names := make([]string, 0, len(sim.ParamSets))
			descs := map[string]string{}
			for _, ps := range sim.ParamSets {
				names = append(names, ps.Name)
				descs[ps.Name] = ps.Desc
			}
			sort.Strings(names)
			for _, nm := range names {
				fmt.Fprintf(out, "  %-14s %s\n", nm, descs[nm])
			}
			return nil
		},
	}
	return cmd
}

func newRatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Print the voltage dependent ChR2 rates as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			vstart, _ := cmd.Flags().GetFloat32("vstart")
			vend, _ := cmd.Flags().GetFloat32("vend")
			vstep, _ := cmd.Flags().GetFloat32("vstep")
			op := cfg.Opsin
			dt, err := op.RateTable(vstart, vend, vstep)
			if err != nil {
				return err
			}
			return dt.WriteCSV(cmd.OutOrStdout(), etable.Comma, etable.Headers)
		},
	}
	cmd.Flags().Float32("vstart", -90, "Starting voltage, in mV")
	cmd.Flags().Float32("vend", 30, "Ending voltage, in mV")
	cmd.Flags().Float32("vstep", 1, "Voltage increment, in mV")
	return cmd
}
