// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/emer/sonogen/sim"
	"github.com/spf13/cobra"
)

// signalContext returns a context cancelled on interrupt, so a long run
// stops between steps
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the bubble loop and then the neuron loop driven by its light",
		RunE: func(cmd *cobra.Command, args []string) error {
			ss, err := newSim(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(cmd)
			defer cancel()
			if _, err := ss.Run(ctx); err != nil {
				return err
			}
			bs, err := sim.SummarizeBubble(ss.Bubble())
			if err != nil {
				return err
			}
			ns := sim.SummarizeNeuron(ss.Neuron())
			jsonOut, _ := cmd.Flags().GetBool("json")
			out := cmd.OutOrStdout()
			if jsonOut {
				return json.NewEncoder(out).Encode(map[string]interface{}{"bubble": bs, "neuron": ns})
			}
			printBubble(out, bs)
			fmt.Fprintln(out)
			printNeuron(out, ns)
			return nil
		},
	}
	return cmd
}

func newBubbleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bubble",
		Short: "Run only the bubble loop and report the representative light intensity",
		RunE: func(cmd *cobra.Command, args []string) error {
			ss, err := newSim(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext(cmd)
			defer cancel()
			br, err := ss.RunBubble(ctx)
			if err != nil {
				return err
			}
			bs, err := sim.SummarizeBubble(br)
			if err != nil {
				return err
			}
			jsonOut, _ := cmd.Flags().GetBool("json")
			out := cmd.OutOrStdout()
			if jsonOut {
				return json.NewEncoder(out).Encode(bs)
			}
			printBubble(out, bs)
			return nil
		},
	}
	return cmd
}

func printBubble(w io.Writer, bs sim.BubbleSummary) {
	fmt.Fprintln(w, "Bubble:")
	fmt.Fprintf(w, "  channels:                %v\n", bs.Chans)
	fmt.Fprintf(w, "  ultrasound:              %g mW/cm^2\n", bs.Ultrasound)
	fmt.Fprintf(w, "  M13 voltage:             %.4g mV\n", bs.Vb*1000)
	fmt.Fprintf(w, "  membrane voltage:        %.4g .. %.4g mV\n", bs.MinVm, bs.PeakVm)
	fmt.Fprintf(w, "  resets:                  %d\n", bs.Resets)
	fmt.Fprintf(w, "  light peak / mean:       %.4g / %.4g mW/mm^2\n", bs.PeakLight, bs.MeanLight)
	fmt.Fprintf(w, "  representative light:    %.4g mW/mm^2\n", bs.Representative)
}

func printNeuron(w io.Writer, ns sim.NeuronSummary) {
	fmt.Fprintln(w, "Neuron:")
	fmt.Fprintf(w, "  pulse intensity:         %.4g mW/mm^2\n", ns.Intensity)
	fmt.Fprintf(w, "  peak ChR2 current:       %.4g\n", ns.PeakI)
	fmt.Fprintf(w, "  membrane potential:      %.4g .. %.4g mV\n", ns.MinVm, ns.PeakVm)
	fmt.Fprintf(w, "  spikes:                  %d (%.3g Hz)\n", ns.Spikes, ns.Rate)
}
