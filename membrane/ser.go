// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package membrane simulates the voltage across the smooth endoplasmic
reticulum (SER) membrane as a leaky RC relaxation toward a steady state set by
the piezoelectric drive voltage, with a discontinuous reset to rest once the
maximum voltage is reached (an integrate-and-fire analogy).

The relaxation uses the exact solution of the first-order linear ODE, so any
positive Dt is stable.
*/
package membrane

import (
	"errors"
	"fmt"
	"math"

	"github.com/emer/etable/minmax"
	"github.com/emer/sonogen/chans"
)

// ErrParams is returned for non-physical membrane parameters
var ErrParams = errors.New("membrane: invalid parameters")

// Params are the SER membrane parameters
type Params struct {
	Vrest       float64 `def:"-0.05" desc:"resting membrane voltage, in volts"`
	Vmax        float64 `def:"-0.01" desc:"maximum voltage: reaching it resets the voltage to Vrest on the next step, in volts"`
	Dt          float64 `def:"1e-9" desc:"integration time step, in seconds"`
	StartAtRest bool    `def:"false" desc:"start (and reset) at Vrest instead of 0 -- the default 0 start produces an initial transient from 0 on the first step"`
}

func (mp *Params) Defaults() {
	mp.Vrest = -0.05
	mp.Vmax = -0.01
	mp.Dt = 1e-9
	mp.StartAtRest = false
}

func (mp *Params) Update() {
}

// Validate returns an error if the parameters are not physical
func (mp *Params) Validate() error {
	switch {
	case mp.Dt <= 0 || math.IsNaN(mp.Dt):
		return fmt.Errorf("%w: Dt %g must be > 0", ErrParams, mp.Dt)
	case mp.Vmax <= mp.Vrest:
		return fmt.Errorf("%w: Vmax %g must be > Vrest %g", ErrParams, mp.Vmax, mp.Vrest)
	}
	return nil
}

// StartV returns the initial voltage
func (mp *Params) StartV() float64 {
	if mp.StartAtRest {
		return mp.Vrest
	}
	return 0
}

func (mp *Params) TypeName() string { return "Membrane" }
func (mp *Params) Class() string    { return "" }
func (mp *Params) Name() string     { return "Membrane" }

// SER is the voltage state of one SER membrane patch with a fixed
// population of calcium channels.
type SER struct {
	Params Params             `view:"inline" desc:"membrane parameters"`
	Chans  chans.ChannelCount `inactive:"+" desc:"number of calcium channels, which sets Tau"`

	tau  float64
	vss  float64
	vt   float64
	vb   float64
	band minmax.F64
}

// New returns a membrane for given channel count with a copy of the params.
// The drive voltage is 0 (steady state = Vrest) until SetDrive is called.
func New(cc chans.ChannelCount, p Params) (*SER, error) {
	pr, err := cc.Props()
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if pr.Tau <= 0 {
		return nil, fmt.Errorf("%w: tau %g must be > 0", ErrParams, pr.Tau)
	}
	sr := &SER{Params: p, Chans: cc, tau: pr.Tau}
	sr.band = minmax.F64{Min: p.Vrest, Max: p.Vmax}
	sr.Reset()
	return sr, nil
}

// SetDrive sets the piezoelectric drive voltage Vb, so the voltage relaxes
// toward Vrest + Vb.  Does not advance time.
func (sr *SER) SetDrive(vb float64) {
	sr.vb = vb
	sr.vss = sr.Params.Vrest + vb
}

// Advance moves the voltage forward by one Dt and returns the new voltage.
// If the voltage had reached Vmax it is reset to Vrest instead.
func (sr *SER) Advance() float64 {
	if sr.vt >= sr.Params.Vmax {
		sr.vt = sr.Params.Vrest
		return sr.vt
	}
	sr.vt = sr.vss + (sr.vt-sr.vss)*math.Exp(-sr.Params.Dt/sr.tau)
	return sr.vt
}

// Reset restores the initial voltage, keeping the drive voltage
func (sr *SER) Reset() {
	sr.vt = sr.Params.StartV()
	sr.SetDrive(sr.vb)
}

// Vt returns the current membrane voltage
func (sr *SER) Vt() float64 { return sr.vt }

// Drive returns the drive voltage Vb
func (sr *SER) Drive() float64 { return sr.vb }

// SteadyState returns the voltage the membrane relaxes toward
func (sr *SER) SteadyState() float64 { return sr.vss }

// Tau returns the RC time constant for the channel count
func (sr *SER) Tau() float64 { return sr.tau }

// Band returns the intended operating band [Vrest, Vmax]
func (sr *SER) Band() minmax.F64 { return sr.band }
