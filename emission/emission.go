// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package emission computes the light emitted by calcium-activated
bioluminescent proteins surrounding the SER, from the diffusion-limited
calcium flux onto each emitter.

Emission is a Poisson process: the probability of no emission in an interval
is (1+C) exp(-C) with C = flux * dt.  The expected emission is used rather
than a sampled count, so the output is deterministic given the inputs.
*/
package emission

import (
	"errors"
	"fmt"
	"math"

	"github.com/emer/sonogen/phys"
)

var (
	// ErrNonPositiveConc is returned for a zero or negative concentration
	ErrNonPositiveConc = errors.New("emission: concentration must be > 0")

	// ErrNonPositiveDt is returned for a zero or negative time step
	ErrNonPositiveDt = errors.New("emission: dt must be > 0")

	// ErrDomain is returned when an intermediate value is not finite
	ErrDomain = errors.New("emission: non-finite result")
)

// Params are the diffusion parameters of the emitters
type Params struct {
	Diffusion float64 `def:"1e-8" desc:"diffusion coefficient D of calcium toward the emitter"`
	Radius    float64 `def:"1e-8" desc:"capture radius r of the emitter protein"`
	Dt        float64 `def:"1e-9" desc:"time step used for the initial intensity, in seconds"`
}

func (ep *Params) Defaults() {
	ep.Diffusion = 1e-8
	ep.Radius = 1e-8
	ep.Dt = 1e-9
}

func (ep *Params) Update() {
}

func (ep *Params) TypeName() string { return "Emission" }
func (ep *Params) Class() string    { return "" }
func (ep *Params) Name() string     { return "Emission" }

// State holds the values computed on the most recent LightIntensity call
type State struct {
	Flux      float64 `desc:"diffusion-limited calcium flux onto one emitter, 4 pi D r c N_A"`
	WaitTime  float64 `desc:"mean waiting time between arrivals, 1 / Flux"`
	NoEmitP   float64 `desc:"probability of no emission in the interval, (1+C) exp(-C)"`
	Rate      float64 `desc:"emission rate per emitter"`
	Photons   float64 `desc:"expected photons emitted in the interval, in moles"`
	Intensity float64 `desc:"output light intensity, in W/m^2"`
}

// Emitter is the population of light-emitting proteins around one SER patch
type Emitter struct {
	Params   Params  `view:"inline" desc:"diffusion parameters"`
	Emitters float64 `inactive:"+" desc:"total emitter count: a third of the peak extracellular pool in particles"`
	State    State   `inactive:"+" desc:"most recent emission state"`
	Init     float64 `inactive:"+" desc:"light intensity at the initial concentration"`
}

// New calibrates an emitter population from the maximum extracellular
// concentration and computes the initial intensity at initExtra.
func New(initExtra, maxExtra float64, p Params) (*Emitter, error) {
	if !(maxExtra > 0) || !phys.Finite(maxExtra) {
		return nil, fmt.Errorf("%w: max extra %g", ErrNonPositiveConc, maxExtra)
	}
	em := &Emitter{Params: p}
	em.Emitters = maxExtra / 3 * phys.Avogadro
	li, err := em.LightIntensity(initExtra, p.Dt)
	if err != nil {
		return nil, err
	}
	em.Init = li
	return em, nil
}

// LightIntensity returns the light intensity (W/m^2) emitted over dt at
// extracellular concentration conc (moles).
func (em *Emitter) LightIntensity(conc, dt float64) (float64, error) {
	if !(conc > 0) || !phys.Finite(conc) {
		return 0, fmt.Errorf("%w: got %g", ErrNonPositiveConc, conc)
	}
	if !(dt > 0) || !phys.Finite(dt) {
		return 0, fmt.Errorf("%w: got %g", ErrNonPositiveDt, dt)
	}
	st := &em.State
	st.Flux = 4 * math.Pi * em.Params.Diffusion * em.Params.Radius * (conc * phys.Avogadro)
	if !(st.Flux > 0) || !phys.Finite(st.Flux) {
		return 0, fmt.Errorf("%w: flux %g", ErrDomain, st.Flux)
	}
	st.WaitTime = 1 / st.Flux
	c := st.Flux * dt
	ec := math.Exp(-c)
	st.NoEmitP = (1 + c) * ec
	emitP := -math.Expm1(-c) - c*ec // 1 - NoEmitP without cancellation
	if emitP < 0 {
		emitP = 0
	}
	st.Rate = (1 / (3 * st.WaitTime)) * emitP
	st.Photons = st.Rate * em.Emitters / phys.Avogadro
	st.Intensity = st.Photons * phys.PhotonToIntensity
	if !phys.Finite(st.Intensity) {
		return 0, fmt.Errorf("%w: intensity at conc %g", ErrDomain, conc)
	}
	return st.Intensity, nil
}
