// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// sonosim runs the sonogenetic simulation from the command line: ultrasound
// on an M13 nano-bubble drives light emission, which drives a ChR2
// expressing Izhikevich neuron.  Results are printed as summaries.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/emer/sonogen/lookup"
	"github.com/emer/sonogen/sim"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sonosim",
		Short: "Sonogenetic nano-bubble to neuron simulation",
		Long: `sonosim simulates ultrasound-driven light emission from an M13 nano-bubble
(SER membrane voltage, calcium partition, photon emission) and the response of
a ChR2-expressing Izhikevich neuron to the emitted light.

The ultrasound to M13 voltage table is a CSV file with an Intensity column and
one voltage column per channel count (V1, V50, V100, V500, V1000).`,
		SilenceUsage: true,
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (toml, yaml or json) applied on top of the defaults")
	pf.String("table", "", "Ultrasound intensity to M13 voltage CSV table")
	pf.String("params", "", "Named parameter set applied on top of Base (e.g. BodyTemp, LiveVoltage)")
	pf.StringArray("set", nil, "Set a parameter, Type.Field=value (repeatable, e.g. Opsin.Gd2=0.05)")
	pf.String("log-level", "warn", "Log level: debug, info, warn, error or none")
	pf.Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(
		newRunCmd(),
		newBubbleCmd(),
		newSweepCmd(),
		newRatesCmd(),
		newConfigCmd(),
	)
	return rootCmd
}

// newLogger returns a logfmt logger on w filtered to the --log-level flag
func newLogger(cmd *cobra.Command, w io.Writer) (kitlog.Logger, error) {
	lvl, _ := cmd.Flags().GetString("log-level")
	var opt level.Option
	switch strings.ToLower(lvl) {
	case "debug":
		opt = level.AllowDebug()
	case "info":
		opt = level.AllowInfo()
	case "warn":
		opt = level.AllowWarn()
	case "error":
		opt = level.AllowError()
	case "none":
		opt = level.AllowNone()
	default:
		return nil, fmt.Errorf("unknown log level %q", lvl)
	}
	lg := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(w))
	lg = kitlog.With(lg, "ts", kitlog.DefaultTimestampUTC)
	return level.NewFilter(lg, opt), nil
}

// loadConfig builds the config from the defaults, the --config file, the
// --params set and the --set overrides, in that order
func loadConfig(cmd *cobra.Command) (*sim.Config, error) {
	fn, _ := cmd.Flags().GetString("config")
	var cfg *sim.Config
	if fn != "" {
		var err error
		cfg, err = sim.LoadConfig(fn)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = &sim.Config{}
		cfg.Defaults()
	}
	pset, _ := cmd.Flags().GetString("params")
	if pset != "" {
		if err := sim.ApplyParams(cfg, pset, false); err != nil {
			return nil, fmt.Errorf("applying params %s: %w", pset, err)
		}
	}
	sets, _ := cmd.Flags().GetStringArray("set")
	for _, kv := range sets {
		if err := sim.SetParamString(cfg, kv); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newSim returns a Sim configured from the flags, with the voltage table
// loaded from --table
func newSim(cmd *cobra.Command) (*sim.Sim, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	fn, _ := cmd.Flags().GetString("table")
	if fn == "" {
		return nil, fmt.Errorf("a voltage table is required: use --table")
	}
	tb, err := lookup.OpenCSV(fn)
	if err != nil {
		return nil, err
	}
	lg, err := newLogger(cmd, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	ss := sim.New(tb)
	ss.Config = *cfg
	ss.Logger = lg
	return ss, nil
}
