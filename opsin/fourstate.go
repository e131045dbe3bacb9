// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package opsin simulates the light-gated channelrhodopsin-2 (ChR2) current with
a four-state kinetic model: two closed states (C1, C2) and two open states
(O1, O2), with light- and voltage-dependent transitions among them, plus a
light adaptation variable p that gates photon absorption.

The populations are integrated with explicit Euler steps.  They sum to 1
analytically, but are only forced to stay in 0..1 and sum to 1 when
Params.Renorm is set.
*/
package opsin

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/goki/mat32"
)

// ErrDomain is returned when a step produces a non-finite state or current
var ErrDomain = errors.New("opsin: non-finite state")

// States are the four channel state populations and light adaptation p
type States struct {
	C1 float32 `desc:"closed, dark adapted"`
	O1 float32 `desc:"open, high conductance"`
	O2 float32 `desc:"open, low conductance"`
	C2 float32 `desc:"closed, light adapted"`
	P  float32 `desc:"light adaptation, gating photon absorption"`
}

// Init sets all channels closed in the dark adapted state
func (st *States) Init() {
	st.C1 = 1
	st.O1 = 0
	st.O2 = 0
	st.C2 = 0
	st.P = 0
}

// Sum returns C1 + O1 + O2 + C2
func (st *States) Sum() float32 {
	return st.C1 + st.O1 + st.O2 + st.C2
}

// Finite returns true if all values are finite
func (st *States) Finite() bool {
	for _, v := range []float32{st.C1, st.O1, st.O2, st.C2, st.P} {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Fluxes are the transition fluxes between states on one step
type Fluxes struct {
	C1O1, O1C1, O1O2, O2O1, O2C2, C2O2, C2C1 float32
}

// FourState is the ChR2 kinetic state of one neuron's channel population
type FourState struct {
	Params   Params    `view:"inline" desc:"kinetic parameters"`
	States   States    `inactive:"+" desc:"current state populations"`
	Fluxes   Fluxes    `inactive:"+" desc:"fluxes on the last step"`
	I        float32   `inactive:"+" desc:"photocurrent on the last step"`
	Currents []float32 `view:"-" desc:"photocurrent on every step since Reset"`
}

// NewFourState returns a dark adapted model using a copy of the params
func NewFourState(p Params) *FourState {
	fs := &FourState{Params: p}
	fs.Params.Update()
	fs.Reset()
	return fs
}

// Reset returns to the dark adapted state and clears the current history
func (fs *FourState) Reset() {
	fs.States.Init()
	fs.Fluxes = Fluxes{}
	fs.I = 0
	fs.Currents = fs.Currents[:0]
}

// Step integrates one dt (ms) at irradiance irr (mW/mm^2), membrane
// voltage v (mV), and wavelength lambda (nm), and returns the photocurrent
// for channel conductance g.
func (fs *FourState) Step(irr, v, dt, lambda, g float32) (float32, error) {
	op := &fs.Params
	st := &fs.States
	lp := op.LogPhi(irr)
	f := op.F(irr, lambda)
	dP := (op.So(irr) - st.P) / op.TauChR2

	fx := &fs.Fluxes
	fx.C1O1 = op.Ep1T * f * st.P * st.C1
	fx.O1C1 = op.Gd1(v) * st.O1
	fx.O1O2 = op.E12(lp) * st.O1
	fx.O2O1 = op.E21(lp) * st.O2
	fx.O2C2 = op.Gd2T * st.O2
	fx.C2O2 = op.Ep2T * f * st.P * st.C2
	fx.C2C1 = op.Gr(v) * st.C2

	dC1 := fx.C2C1 + fx.O1C1 - fx.C1O1
	dO1 := fx.C1O1 + fx.O2O1 - fx.O1C1 - fx.O1O2
	dO2 := fx.C2O2 + fx.O1O2 - fx.O2C2 - fx.O2O1
	dC2 := fx.O2C2 - fx.C2O2 - fx.C2C1

	st.C1 += dt * dC1
	st.O1 += dt * dO1
	st.O2 += dt * dO2
	st.C2 += dt * dC2
	st.P += dt * dP
	if op.Renorm {
		fs.renorm()
	}
	if !st.Finite() {
		return 0, fmt.Errorf("%w: irr %g v %g", ErrDomain, irr, v)
	}

	fs.I = g * op.IVFact(v) * (st.O1 + op.Gamma*st.O2)
	if math32.IsNaN(fs.I) || math32.IsInf(fs.I, 0) {
		return 0, fmt.Errorf("%w: current at v %g", ErrDomain, v)
	}
	fs.Currents = append(fs.Currents, fs.I)
	return fs.I, nil
}

// renorm clamps the populations and p to 0..1 and rescales the
// populations to sum to 1
func (fs *FourState) renorm() {
	st := &fs.States
	st.C1 = mat32.Clamp(st.C1, 0, 1)
	st.O1 = mat32.Clamp(st.O1, 0, 1)
	st.O2 = mat32.Clamp(st.O2, 0, 1)
	st.C2 = mat32.Clamp(st.C2, 0, 1)
	st.P = mat32.Clamp(st.P, 0, 1)
	sum := st.Sum()
	if sum <= 0 {
		st.Init()
		return
	}
	st.C1 /= sum
	st.O1 /= sum
	st.O2 /= sum
	st.C2 /= sum
}
