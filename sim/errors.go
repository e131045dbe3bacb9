// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"errors"
	"fmt"
)

// ErrDone is returned by Step after the last step of a run
var ErrDone = errors.New("sim: run is done")

// The loop names used in StepError
const (
	BubbleLoop = "bubble"
	NeuronLoop = "neuron"
)

// StepError identifies the loop, component and step index at which a run
// failed.  The run cannot continue after a StepError.
type StepError struct {
	Loop      string
	Component string
	Step      int
	Err       error
}

func (se *StepError) Error() string {
	return fmt.Sprintf("sim: %s loop: %s failed at step %d: %v", se.Loop, se.Component, se.Step, se.Err)
}

func (se *StepError) Unwrap() error {
	return se.Err
}
