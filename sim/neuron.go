// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"strconv"

	"github.com/chewxy/math32"
	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/emer/sonogen/izhi"
	"github.com/emer/sonogen/opsin"
	"github.com/emer/sonogen/stim"
)

// NeuronState is the state of the neuron loop after one step
type NeuronState struct {
	Step       int
	Time       float32 // ms
	I          float32 // photocurrent
	Vm         float32 // mV
	Irradiance float32 // mW/mm^2
	Spike      bool
}

// NeuronRun is one run of the slow (ms) loop: scheduled light pulses drive
// the ChR2 photocurrent, whose magnitude drives the Izhikevich neuron.
// Call Step until Done; each step adds a row to Table.
type NeuronRun struct {
	Config   Config
	Time     Time
	Schedule *stim.Schedule
	Opsin    *opsin.ChR2
	Neuron   *izhi.Neuron

	state NeuronState
	tbl   *etable.Table
}

// NewNeuronRun configures a neuron run from a copy of cfg.  If UseBubble
// is set, intensity replaces the configured pulse intensity.
func NewNeuronRun(cfg *Config, intensity float32) (*NeuronRun, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	nr := &NeuronRun{Config: *cfg}
	nc := &nr.Config
	nc.Update()
	if nc.UseBubble {
		nc.Stim.Intensity = intensity
	}
	var err error
	nr.Schedule, err = stim.NewSchedule(nc.Stim)
	if err != nil {
		return nil, err
	}
	nr.Opsin, err = opsin.NewChR2(nc.ChR2, nc.Opsin)
	if err != nil {
		return nil, err
	}
	nr.Neuron, err = izhi.New(nc.Neuron)
	if err != nil {
		return nil, err
	}
	nr.Time = *NewTime(nc.NeuronDt, nc.NeuronTime)
	nr.tbl = &etable.Table{}
	ConfigNeuronTable(nr.tbl)
	nr.tbl.SetNumRows(nr.Time.NSteps)
	nr.state = NeuronState{Vm: nr.Neuron.V()}
	return nr, nil
}

// ConfigNeuronTable configures the columns of a neuron loop table
func ConfigNeuronTable(dt *etable.Table) {
	dt.SetMetaData("name", "Neuron")
	dt.SetMetaData("read-only", "true")
	dt.SetMetaData("precision", strconv.Itoa(LogPrec))

	sch := etable.Schema{
		{"Time", etensor.FLOAT64, nil, nil},
		{"I", etensor.FLOAT64, nil, nil},
		{"Vm", etensor.FLOAT64, nil, nil},
		{"Irradiance", etensor.FLOAT64, nil, nil},
		{"Spike", etensor.FLOAT64, nil, nil},
	}
	dt.SetFromSchema(sch, 0)
}

// Step advances one NeuronDt and returns the new state.  Time t of the
// step is Step * NeuronDt, starting at 0.  Returns ErrDone after NSteps.
func (nr *NeuronRun) Step() (NeuronState, error) {
	if nr.Done() {
		return nr.state, ErrDone
	}
	step := nr.Time.Step
	t := float32(float64(step) * nr.Time.TimePerStep)
	irr := nr.Schedule.Irradiance(t)
	i, err := nr.Opsin.Step(nr.Neuron.V(), irr)
	if err != nil {
		return nr.state, &StepError{Loop: NeuronLoop, Component: "opsin", Step: step, Err: err}
	}
	nsp := nr.Neuron.NSpikes()
	if err := nr.Neuron.Advance(t, math32.Abs(i)); err != nil {
		return nr.state, &StepError{Loop: NeuronLoop, Component: "neuron", Step: step, Err: err}
	}
	nr.state = NeuronState{Step: step, Time: t, I: i, Vm: nr.Neuron.V(), Irradiance: irr, Spike: nr.Neuron.NSpikes() > nsp}
	nr.record()
	nr.Time.StepInc()
	return nr.state, nil
}

func (nr *NeuronRun) record() {
	st := &nr.state
	row := st.Step
	spk := 0.0
	if st.Spike {
		spk = 1
	}
	nr.tbl.SetCellFloat("Time", row, float64(st.Time))
	nr.tbl.SetCellFloat("I", row, float64(st.I))
	nr.tbl.SetCellFloat("Vm", row, float64(st.Vm))
	nr.tbl.SetCellFloat("Irradiance", row, float64(st.Irradiance))
	nr.tbl.SetCellFloat("Spike", row, spk)
}

// Done returns true after NSteps steps
func (nr *NeuronRun) Done() bool {
	return nr.Time.Done()
}

// Reset restores the schedule, opsin and neuron to their initial state,
// so the run can be repeated.  Table rows are overwritten as it steps.
func (nr *NeuronRun) Reset() {
	nr.Time.Reset()
	nr.Schedule.Reset()
	nr.Opsin.Reset()
	nr.Neuron.Reset()
	nr.state = NeuronState{Vm: nr.Neuron.V()}
}

// State returns the most recent state
func (nr *NeuronRun) State() NeuronState { return nr.state }

// Table returns the result table
func (nr *NeuronRun) Table() *etable.Table { return nr.tbl }
