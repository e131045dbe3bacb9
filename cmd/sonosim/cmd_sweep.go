// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/emer/sonogen/chans"
	"github.com/spf13/cobra"
)

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run the bubble loop for every channel count and ultrasound intensity",
		Long: `Run the bubble loop for every combination of channel count and ultrasound
intensity, and report the light produced by each.

Examples:
  sonosim sweep --table m13.csv
  sonosim sweep --table m13.csv --chans 100,1000 --intensities 0.45,2,5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ns, _ := cmd.Flags().GetIntSlice("chans")
			intens, _ := cmd.Flags().GetFloat64Slice("intensities")
			ccs := make([]chans.ChannelCount, len(ns))
			for i, n := range ns {
				cc := chans.ChannelCount(n)
				if _, err := cc.Props(); err != nil {
					return err
				}
				ccs[i] = cc
			}
			ss, err := newSim(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(cmd)
			defer cancel()
			sums, err := ss.Sweep(ctx, ccs, intens)
			if err != nil {
				return err
			}
			jsonOut, _ := cmd.Flags().GetBool("json")
			out := cmd.OutOrStdout()
			if jsonOut {
				return json.NewEncoder(out).Encode(sums)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "Chans\tUltrasound\tVb (mV)\tResets\tPeak light\tRepresentative")
			for _, sm := range sums {
				fmt.Fprintf(tw, "%v\t%g\t%.4g\t%d\t%.4g\t%.4g\n", sm.Chans, sm.Ultrasound, sm.Vb*1000, sm.Resets, sm.PeakLight, sm.Representative)
			}
			return tw.Flush()
		},
	}
	all := chans.AllCounts()
	ns := make([]int, len(all))
	for i, cc := range all {
		ns[i] = int(cc)
	}
	cmd.Flags().IntSlice("chans", ns, "Channel counts to sweep")
	cmd.Flags().Float64Slice("intensities", []float64{0.06, 0.45, 0.92, 2, 5, 19.8}, "Ultrasound intensities to sweep, in mW/cm^2")
	return cmd
}
