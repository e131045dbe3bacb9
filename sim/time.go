// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import "math"

// Time contains the timing state of one fixed-step loop
type Time struct {

	// accumulated amount of simulated time, in the units of TimePerStep
	// (seconds for the bubble loop, ms for the neuron loop).
	// Computed from StepTot so it does not accumulate rounding error.
	Time float64

	// step counter within the current run
	Step int

	// total step count since the last Reset, across runs
	StepTot int

	// number of steps in a full run
	NSteps int

	// amount of time to increment per step
	TimePerStep float64
}

// NewTime returns a Time for a run of length horizon at dt per step
func NewTime(dt, horizon float64) *Time {
	tm := &Time{TimePerStep: dt, NSteps: NSteps(horizon, dt)}
	return tm
}

// NSteps returns the number of fixed dt steps covering horizon:
// ceil(horizon / dt), tolerant of dt not dividing horizon exactly in
// floating point
func NSteps(horizon, dt float64) int {
	if !(dt > 0) || !(horizon > 0) {
		return 0
	}
	return int(math.Ceil(horizon/dt - 1e-6))
}

// Reset resets the counters all back to zero
func (tm *Time) Reset() {
	tm.Time = 0
	tm.Step = 0
	tm.StepTot = 0
}

// RunStart starts a new run
func (tm *Time) RunStart() {
	tm.Step = 0
	tm.Time = 0
}

// StepInc increments at the step level
func (tm *Time) StepInc() {
	tm.Step++
	tm.StepTot++
	tm.Time = float64(tm.Step) * tm.TimePerStep
}

// Done returns true if the run has completed all its steps
func (tm *Time) Done() bool {
	return tm.Step >= tm.NSteps
}
