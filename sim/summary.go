// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"context"

	"github.com/emer/etable/etable"
	"github.com/emer/sonogen/chans"
	"github.com/go-kit/log/level"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// BubbleSummary summarizes one bubble loop run
type BubbleSummary struct {
	Chans          chans.ChannelCount
	Ultrasound     float64
	Vb             float64 // V
	PeakVm         float64 // mV
	MinVm          float64 // mV
	PeakLight      float64 // mW/mm^2
	MeanLight      float64 // mW/mm^2
	Representative float64 // mW/mm^2
	Resets         int     // number of Vmax resets
}

// NeuronSummary summarizes one neuron loop run
type NeuronSummary struct {
	Intensity float32 // mW/mm^2
	PeakI     float64
	MinVm     float64 // mV
	PeakVm    float64 // mV
	Spikes    int
	Rate      float64 // mean firing rate over the run, in Hz
}

// Column returns a copy of the float values of a table column
func Column(dt *etable.Table, col string) []float64 {
	ct := dt.ColByName(col)
	vals := make([]float64, dt.Rows)
	for i := range vals {
		vals[i] = ct.FloatVal1D(i)
	}
	return vals
}

// SummarizeBubble summarizes a completed bubble run
func SummarizeBubble(br *BubbleRun) (BubbleSummary, error) {
	dt := br.Table()
	vm := Column(dt, "Vm")
	lt := Column(dt, "Light")
	rep, err := Representative(dt, br.Config.TopPct)
	if err != nil {
		return BubbleSummary{}, err
	}
	sm := BubbleSummary{
		Chans:          br.Config.Chans,
		Ultrasound:     br.Config.Ultrasound,
		Vb:             br.Vb(),
		PeakVm:         floats.Max(vm),
		MinVm:          floats.Min(vm),
		PeakLight:      floats.Max(lt),
		MeanLight:      stat.Mean(lt, nil),
		Representative: rep,
	}
	vrest := br.Config.Membrane.Vrest * 1000
	for i := 1; i < len(vm); i++ {
		if vm[i] == vrest && vm[i-1] != vrest {
			sm.Resets++
		}
	}
	return sm, nil
}

// SummarizeNeuron summarizes a completed neuron run
func SummarizeNeuron(nr *NeuronRun) NeuronSummary {
	dt := nr.Table()
	cur := Column(dt, "I")
	vm := Column(dt, "Vm")
	sm := NeuronSummary{
		Intensity: nr.Schedule.Params.Intensity,
		PeakI:     floats.Min(cur), // inward current is negative
		MinVm:     floats.Min(vm),
		PeakVm:    floats.Max(vm),
		Spikes:    nr.Neuron.NSpikes(),
	}
	dur := nr.Config.NeuronTime / 1000
	sm.Rate = float64(sm.Spikes) / dur
	return sm
}

// Sweep runs the bubble loop for every combination of channel count and
// ultrasound intensity, in order, and summarizes each run
func (ss *Sim) Sweep(ctx context.Context, ccs []chans.ChannelCount, intens []float64) ([]BubbleSummary, error) {
	sums := make([]BubbleSummary, 0, len(ccs)*len(intens))
	orig := ss.Config
	defer func() { ss.Config = orig }()
	for _, cc := range ccs {
		for _, in := range intens {
			ss.Config.Chans = cc
			ss.Config.Ultrasound = in
			br, err := ss.RunBubble(ctx)
			if err != nil {
				return sums, err
			}
			sm, err := SummarizeBubble(br)
			if err != nil {
				return sums, err
			}
			level.Debug(ss.logger()).Log("msg", "sweep", "chans", cc, "ultrasound", in, "representative", sm.Representative)
			sums = append(sums, sm)
		}
	}
	return sums, nil
}
