// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package sim runs the full sonogenetic chain in two loops:

  - the bubble loop (ns steps): ultrasound -> M13 voltage -> SER membrane
    voltage -> calcium partition -> photon emission
  - the neuron loop (ms steps): light pulses -> ChR2 photocurrent ->
    Izhikevich neuron

The bubble loop runs to completion first; the mean of its top light
intensities is passed explicitly as the pulse intensity of the neuron loop.
Both loops are pull iterators (BubbleRun, NeuronRun) that Sim drives with
cancellation checked between steps.
*/
package sim

import (
	"context"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/emer/etable/etable"
	"github.com/emer/sonogen/lookup"
)

// Result holds the outputs of a full run
type Result struct {
	Vb             float64       `desc:"M13 drive voltage, in V"`
	Representative float64       `desc:"representative light intensity, in mW/mm^2"`
	Bubble         *etable.Table `desc:"bubble loop time series"`
	Neuron         *etable.Table `desc:"neuron loop time series"`
	SpikeTimes     []float32     `desc:"spike times, in ms"`
}

// Sim runs both loops with one Config and voltage table
type Sim struct {
	Config Config        `desc:"all parameters -- copied into each run"`
	Table  *lookup.Table `desc:"ultrasound intensity to M13 voltage table"`
	Logger kitlog.Logger `desc:"structured logger, no-op by default"`

	bubble *BubbleRun
	neuron *NeuronRun
}

// New returns a Sim with default config and a no-op logger
func New(tb *lookup.Table) *Sim {
	ss := &Sim{Table: tb, Logger: kitlog.NewNopLogger()}
	ss.Config.Defaults()
	return ss
}

func (ss *Sim) logger() kitlog.Logger {
	if ss.Logger == nil {
		return kitlog.NewNopLogger()
	}
	return ss.Logger
}

// RunBubble runs the bubble loop to completion and returns its table.
// Returns ctx.Err() if cancelled between steps.
func (ss *Sim) RunBubble(ctx context.Context) (*BubbleRun, error) {
	lg := kitlog.With(ss.logger(), "loop", BubbleLoop)
	br, err := NewBubbleRun(&ss.Config, ss.Table)
	if err != nil {
		level.Error(lg).Log("msg", "configure", "err", err)
		return nil, err
	}
	ss.bubble = br
	level.Info(lg).Log("msg", "start", "chans", br.Config.Chans, "ultrasound", br.Config.Ultrasound, "vb", br.Vb(), "steps", br.Time.NSteps)
	for !br.Done() {
		if err := ctx.Err(); err != nil {
			level.Warn(lg).Log("msg", "cancelled", "step", br.Time.Step)
			return br, err
		}
		if _, err := br.Step(); err != nil {
			level.Error(lg).Log("msg", "step failed", "err", err)
			return br, err
		}
	}
	level.Info(lg).Log("msg", "done", "steps", br.Time.Step)
	return br, nil
}

// RunNeuron runs the neuron loop to completion with pulse intensity irr.
// Returns ctx.Err() if cancelled between steps.
func (ss *Sim) RunNeuron(ctx context.Context, irr float32) (*NeuronRun, error) {
	lg := kitlog.With(ss.logger(), "loop", NeuronLoop)
	nr, err := NewNeuronRun(&ss.Config, irr)
	if err != nil {
		level.Error(lg).Log("msg", "configure", "err", err)
		return nil, err
	}
	ss.neuron = nr
	level.Info(lg).Log("msg", "start", "intensity", nr.Schedule.Params.Intensity, "mode", nr.Config.ChR2.Mode, "steps", nr.Time.NSteps)
	for !nr.Done() {
		if err := ctx.Err(); err != nil {
			level.Warn(lg).Log("msg", "cancelled", "step", nr.Time.Step)
			return nr, err
		}
		if _, err := nr.Step(); err != nil {
			level.Error(lg).Log("msg", "step failed", "err", err)
			return nr, err
		}
	}
	level.Info(lg).Log("msg", "done", "steps", nr.Time.Step, "spikes", nr.Neuron.NSpikes())
	return nr, nil
}

// Run runs the bubble loop, reduces its light to the representative
// intensity, and runs the neuron loop with it
func (ss *Sim) Run(ctx context.Context) (*Result, error) {
	br, err := ss.RunBubble(ctx)
	if err != nil {
		return nil, err
	}
	rep, err := Representative(br.Table(), ss.Config.TopPct)
	if err != nil {
		return nil, err
	}
	level.Info(ss.logger()).Log("msg", "representative intensity", "pct", ss.Config.TopPct, "intensity", rep)
	nr, err := ss.RunNeuron(ctx, float32(rep))
	if err != nil {
		return nil, err
	}
	res := &Result{
		Vb:             br.Vb(),
		Representative: rep,
		Bubble:         br.Table(),
		Neuron:         nr.Table(),
		SpikeTimes:     append([]float32(nil), nr.Neuron.SpikeTimes()...),
	}
	return res, nil
}

// Reset drops the runs, so the next Run starts from the initial state
func (ss *Sim) Reset() {
	ss.bubble = nil
	ss.neuron = nil
}

// Bubble returns the most recent bubble run, nil if none
func (ss *Sim) Bubble() *BubbleRun { return ss.bubble }

// Neuron returns the most recent neuron run, nil if none
func (ss *Sim) Neuron() *NeuronRun { return ss.neuron }
