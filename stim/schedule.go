// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package stim bridges the optical and neural time scales: it reduces the
light-intensity series of the bubble loop to one representative intensity
(the mean of its top 5%), and schedules light pulses of that intensity for
the neuron loop.
*/
package stim

import (
	"fmt"

	"github.com/goki/ki/kit"
)

// PulseMode selects how light pulses are scheduled
type PulseMode int

//go:generate stringer -type=PulseMode

var KiT_PulseMode = kit.Enums.AddEnum(PulseModeN, kit.NotBitFlag, nil)

func (ev PulseMode) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *PulseMode) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

func (ev PulseMode) MarshalText() ([]byte, error)  { return []byte(ev.String()), nil }
func (ev *PulseMode) UnmarshalText(b []byte) error { return ev.FromString(string(b)) }

// The pulse modes
const (
	// SinglePulse is one pulse of Width starting at Delay
	SinglePulse PulseMode = iota

	// PulseTrain is a sequence of pulses at Onsets with Widths
	PulseTrain

	PulseModeN
)

// Params define the light pulse schedule.  Times are in ms.
type Params struct {
	Mode      PulseMode `desc:"single pulse or pulse train"`
	Delay     float32   `def:"100" viewif:"Mode=SinglePulse" desc:"onset of the single pulse"`
	Width     float32   `def:"400" viewif:"Mode=SinglePulse" desc:"duration of the single pulse"`
	Onsets    []float32 `viewif:"Mode=PulseTrain" desc:"onset of each pulse in the train, ascending"`
	Widths    []float32 `viewif:"Mode=PulseTrain" desc:"duration of each pulse in the train"`
	Intensity float32   `def:"5.5" desc:"irradiance during a pulse -- replaced by the representative bubble intensity unless the run overrides it"`
}

func (sp *Params) Defaults() {
	sp.Mode = SinglePulse
	sp.Delay = 100
	sp.Width = 400
	sp.Onsets = []float32{0, 20, 40}
	sp.Widths = []float32{6, 6, 6}
	sp.Intensity = 5.5
}

func (sp *Params) Update() {
}

// Validate checks the pulse times
func (sp *Params) Validate() error {
	if sp.Mode == SinglePulse {
		if sp.Delay < 0 || sp.Width < 0 {
			return fmt.Errorf("stim: single pulse delay %g and width %g must be >= 0", sp.Delay, sp.Width)
		}
		return nil
	}
	if len(sp.Onsets) != len(sp.Widths) {
		return fmt.Errorf("stim: %d pulse onsets but %d widths", len(sp.Onsets), len(sp.Widths))
	}
	for i, on := range sp.Onsets {
		if sp.Widths[i] < 0 {
			return fmt.Errorf("stim: pulse %d width %g must be >= 0", i, sp.Widths[i])
		}
		if i > 0 && on < sp.Onsets[i-1] {
			return fmt.Errorf("stim: pulse onsets must be ascending at %d", i)
		}
	}
	return nil
}

func (sp *Params) TypeName() string { return "Stim" }
func (sp *Params) Class() string    { return "" }
func (sp *Params) Name() string     { return "Stim" }

// Pulse is one light pulse
type Pulse struct {
	Onset float32
	Width float32
}

// End returns the time the pulse ends
func (pl Pulse) End() float32 {
	return pl.Onset + pl.Width
}

// Schedule hands out irradiance as simulated time advances, consuming its
// pulses left to right.  Time must not go backward between Reset calls.
type Schedule struct {
	Params Params `view:"inline" desc:"pulse parameters"`

	pulses []Pulse
	next   int
}

// NewSchedule returns a schedule using a copy of the params
func NewSchedule(p Params) (*Schedule, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.Onsets = append([]float32(nil), p.Onsets...)
	p.Widths = append([]float32(nil), p.Widths...)
	sc := &Schedule{Params: p}
	sc.Reset()
	return sc, nil
}

// Reset restores all pulses
func (sc *Schedule) Reset() {
	sp := &sc.Params
	sc.pulses = sc.pulses[:0]
	if sp.Mode == SinglePulse {
		sc.pulses = append(sc.pulses, Pulse{Onset: sp.Delay, Width: sp.Width})
	} else {
		for i, on := range sp.Onsets {
			sc.pulses = append(sc.pulses, Pulse{Onset: on, Width: sp.Widths[i]})
		}
	}
	sc.next = 0
}

// Active returns true if t is inside the current pulse, consuming any pulses
// that ended before t
func (sc *Schedule) Active(t float32) bool {
	for sc.next < len(sc.pulses) && t > sc.pulses[sc.next].End() {
		sc.next++
	}
	if sc.next >= len(sc.pulses) {
		return false
	}
	pl := sc.pulses[sc.next]
	return t >= pl.Onset && t <= pl.End()
}

// Irradiance returns the light intensity at time t: Intensity inside a
// pulse, 0 otherwise and after the last pulse.
func (sc *Schedule) Irradiance(t float32) float32 {
	if sc.Active(t) {
		return sc.Params.Intensity
	}
	return 0
}

// Remaining returns the number of pulses not yet finished
func (sc *Schedule) Remaining() int {
	return len(sc.pulses) - sc.next
}
