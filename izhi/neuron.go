// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package izhi provides the Izhikevich (2003) spiking neuron: a membrane
potential v and recovery variable u, integrated with Euler steps, with an
instantaneous reset of v to C and increment of u by D on each spike.

Time is in ms and potentials in mV.  The resting potential is the stable
root of the v nullcline for the given B.
*/
package izhi

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// ErrDomain is returned for parameters without a resting potential, or a
// step producing a non-finite potential
var ErrDomain = errors.New("izhi: non-finite neuron state")

// Params are the Izhikevich neuron parameters; the defaults are a regular
// spiking cortical neuron
type Params struct {
	A        float32 `def:"0.02" desc:"time scale of the recovery variable u"`
	B        float32 `def:"0.2" desc:"sensitivity of u to subthreshold fluctuations of v"`
	C        float32 `def:"-65" desc:"after-spike reset value of v"`
	D        float32 `def:"8" desc:"after-spike increment of u"`
	Thr      float32 `def:"30" desc:"spike threshold (peak) of v"`
	Dt       float32 `def:"0.02" desc:"integration time step, in ms"`
	ConvPct  float32 `def:"0.5" desc:"v is converged to rest when within this percent relative difference of the resting potential"`
	SpikingV float32 `def:"-55" desc:"potential at or above which the neuron is reported as spiking"`
}

func (np *Params) Defaults() {
	np.A = 0.02
	np.B = 0.2
	np.C = -65
	np.D = 8
	np.Thr = 30
	np.Dt = 0.02
	np.ConvPct = 0.5
	np.SpikingV = -55
}

func (np *Params) Update() {
}

func (np *Params) TypeName() string { return "Neuron" }
func (np *Params) Class() string    { return "" }
func (np *Params) Name() string     { return "Neuron" }

// Rest returns the resting potential for B:
// 12.5 B - 62.5 - 12.5 sqrt(B^2 - 10 B + 2.6)
func (np *Params) Rest() (float32, error) {
	disc := np.B*np.B - 10*np.B + 2.6
	if disc < 0 {
		return 0, fmt.Errorf("%w: no resting potential for b = %g", ErrDomain, np.B)
	}
	return 12.5*np.B - 62.5 - 12.5*math32.Sqrt(disc), nil
}

// Neuron is the state of one Izhikevich neuron
type Neuron struct {
	Params Params `view:"inline" desc:"neuron parameters"`

	rest      float32
	v         float32
	u         float32
	spiked    bool
	converged bool
	spikes    []float32
}

// New returns a neuron at rest using a copy of the params
func New(p Params) (*Neuron, error) {
	if !(p.Dt > 0) {
		return nil, fmt.Errorf("izhi: dt %g must be > 0", p.Dt)
	}
	vr, err := p.Rest()
	if err != nil {
		return nil, err
	}
	nr := &Neuron{Params: p, rest: vr}
	nr.Reset()
	return nr, nil
}

// Reset restores v and u to rest and clears the spike history
func (nr *Neuron) Reset() {
	nr.v = nr.rest
	nr.u = nr.Params.B * nr.rest
	nr.spiked = false
	nr.converged = true
	nr.spikes = nr.spikes[:0]
}

// Advance integrates one Dt with input current i, at time t (ms).
// If v reaches threshold, t is recorded as a spike, and v is reset to C and
// u incremented by D.
func (nr *Neuron) Advance(t, i float32) error {
	np := &nr.Params
	v, u := nr.v, nr.u
	dv := 0.04*v*v + 5*v + 140 - u + i
	du := np.A * (np.B*v - u)
	v += np.Dt * dv
	u += np.Dt * du
	if math32.IsNaN(v) || math32.IsInf(v, 0) || math32.IsNaN(u) || math32.IsInf(u, 0) {
		return fmt.Errorf("%w: v %g u %g at t %g", ErrDomain, v, u, t)
	}
	if v >= np.Thr {
		nr.spikes = append(nr.spikes, t)
		nr.spiked = true
		v = np.C
		u += np.D
	}
	nr.v, nr.u = v, u
	nr.converged = nr.RelDiffPct() <= np.ConvPct
	return nil
}

// RelDiffPct returns the percent relative difference of |v| from |rest|
func (nr *Neuron) RelDiffPct() float32 {
	av := math32.Abs(nr.v)
	ar := math32.Abs(nr.rest)
	return math32.Abs(av-ar) / ((av + ar) / 2) * 100
}

// IsSpiking returns true while v is at or above SpikingV.  Once v is back at
// rest the spiked flag is cleared.
func (nr *Neuron) IsSpiking() bool {
	if nr.spiked && nr.v <= nr.rest {
		nr.spiked = false
	}
	return nr.v >= nr.Params.SpikingV
}

// V returns the membrane potential
func (nr *Neuron) V() float32 { return nr.v }

// U returns the recovery variable
func (nr *Neuron) U() float32 { return nr.u }

// Rest returns the resting potential
func (nr *Neuron) Rest() float32 { return nr.rest }

// Spiked returns true if the neuron has spiked since the flag was last cleared
func (nr *Neuron) Spiked() bool { return nr.spiked }

// SetSpiked sets the spiked flag
func (nr *Neuron) SetSpiked(sp bool) { nr.spiked = sp }

// Converged returns true if v is within ConvPct of rest
func (nr *Neuron) Converged() bool { return nr.converged }

// SpikeTimes returns the times of all spikes since Reset, in order
func (nr *Neuron) SpikeTimes() []float32 { return nr.spikes }

// NSpikes returns the number of spikes since Reset
func (nr *Neuron) NSpikes() int { return len(nr.spikes) }
