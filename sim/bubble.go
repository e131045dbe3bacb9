// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"strconv"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/emer/sonogen/emission"
	"github.com/emer/sonogen/ions"
	"github.com/emer/sonogen/lookup"
	"github.com/emer/sonogen/membrane"
	"github.com/emer/sonogen/stim"
)

// LogPrec is precision for saving float values in result tables
const LogPrec = 6

// BubbleState is the state of the bubble loop after one step, in SI units
type BubbleState struct {
	Step  int
	Time  float64 // s
	Vt    float64 // V
	Extra float64 // mol
	Light float64 // W/m^2
}

// BubbleRun is one run of the fast (ns) loop: ultrasound drives the SER
// membrane voltage, which partitions the calcium pool, which drives photon
// emission.  Call Step until Done; each step adds a row to Table.
type BubbleRun struct {
	Config Config
	Time   Time
	SER    *membrane.SER
	Ions   *ions.Cluster
	Emit   *emission.Emitter

	vb    float64
	state BubbleState
	tbl   *etable.Table
}

// NewBubbleRun configures a bubble run from a copy of cfg, looking up the
// drive voltage in tb.  Row 0 of the table holds the initial values.
func NewBubbleRun(cfg *Config, tb *lookup.Table) (*BubbleRun, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	br := &BubbleRun{Config: *cfg}
	bc := &br.Config
	bc.Update()
	qt := *tb
	qt.Params = bc.Lookup
	vb, err := qt.VoltageFor(bc.Ultrasound, bc.Chans)
	if err != nil {
		return nil, &StepError{Loop: BubbleLoop, Component: "lookup", Step: 0, Err: err}
	}
	br.vb = vb
	br.SER, err = membrane.New(bc.Chans, bc.Membrane)
	if err != nil {
		return nil, err
	}
	br.SER.SetDrive(vb)
	br.Ions, err = ions.New(bc.Membrane.Vrest, bc.Membrane.Vmax, bc.InitExtra)
	if err != nil {
		return nil, &StepError{Loop: BubbleLoop, Component: "ions", Step: 0, Err: err}
	}
	br.Emit, err = emission.New(bc.InitExtra, br.Ions.MaxExtra(), bc.Emission)
	if err != nil {
		return nil, &StepError{Loop: BubbleLoop, Component: "emission", Step: 0, Err: err}
	}
	br.Time = *NewTime(bc.BubbleDt, bc.BubbleTime)
	br.tbl = &etable.Table{}
	ConfigBubbleTable(br.tbl)
	br.tbl.SetNumRows(br.Time.NSteps)
	br.state = BubbleState{Vt: bc.Membrane.Vrest, Extra: bc.InitExtra, Light: br.Emit.Init}
	br.record()
	return br, nil
}

// ConfigBubbleTable configures the columns of a bubble loop table
func ConfigBubbleTable(dt *etable.Table) {
	dt.SetMetaData("name", "Bubble")
	dt.SetMetaData("read-only", "true")
	dt.SetMetaData("precision", strconv.Itoa(LogPrec))

	sch := etable.Schema{
		{"Time", etensor.FLOAT64, nil, nil},
		{"Vm", etensor.FLOAT64, nil, nil},
		{"ExtraConc", etensor.FLOAT64, nil, nil},
		{"Light", etensor.FLOAT64, nil, nil},
	}
	dt.SetFromSchema(sch, 0)
}

// record writes the current state into its row: Vm in mV, ExtraConc in mM,
// Light in mW/mm^2
func (br *BubbleRun) record() {
	if br.state.Step >= br.tbl.Rows {
		return
	}
	st := &br.state
	row := st.Step
	br.tbl.SetCellFloat("Time", row, st.Time)
	br.tbl.SetCellFloat("Vm", row, st.Vt*1000)
	br.tbl.SetCellFloat("ExtraConc", row, st.Extra*1000)
	br.tbl.SetCellFloat("Light", row, st.Light/1000)
}

// Step advances one BubbleDt and returns the new state.
// Returns ErrDone once all NSteps rows are filled.
func (br *BubbleRun) Step() (BubbleState, error) {
	if br.Done() {
		return br.state, ErrDone
	}
	br.Time.StepInc()
	step := br.Time.Step
	vt := br.SER.Advance()
	_, _, extra, err := br.Ions.Update(vt)
	if err != nil {
		return br.state, &StepError{Loop: BubbleLoop, Component: "ions", Step: step, Err: err}
	}
	li, err := br.Emit.LightIntensity(extra, br.Config.BubbleDt)
	if err != nil {
		return br.state, &StepError{Loop: BubbleLoop, Component: "emission", Step: step, Err: err}
	}
	br.state = BubbleState{Step: step, Time: br.Time.Time, Vt: vt, Extra: extra, Light: li}
	br.record()
	return br.state, nil
}

// Done returns true when the table is full: row 0 is the initial state,
// so NSteps-1 steps are taken
func (br *BubbleRun) Done() bool {
	return br.Time.Step >= br.Time.NSteps-1
}

// State returns the most recent state
func (br *BubbleRun) State() BubbleState { return br.state }

// Vb returns the drive voltage from the voltage table
func (br *BubbleRun) Vb() float64 { return br.vb }

// Table returns the result table.  Rows past the current step are zero
// until the run is done.
func (br *BubbleRun) Table() *etable.Table { return br.tbl }

// Representative returns the mean of the top pct percent of the Light
// column of dt: the constant stimulus intensity for the neuron loop
func Representative(dt *etable.Table, pct float64) (float64, error) {
	return stim.TopPctMeanTable(etable.NewIdxView(dt), "Light", pct)
}
