// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opsin

import (
	"fmt"

	"github.com/goki/ki/kit"
)

// VoltageMode selects which voltage drives the opsin kinetics
type VoltageMode int

//go:generate stringer -type=VoltageMode

var KiT_VoltageMode = kit.Enums.AddEnum(VoltageModeN, kit.NotBitFlag, nil)

func (ev VoltageMode) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *VoltageMode) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

func (ev VoltageMode) MarshalText() ([]byte, error)  { return []byte(ev.String()), nil }
func (ev *VoltageMode) UnmarshalText(b []byte) error { return ev.FromString(string(b)) }

// The voltage modes
const (
	// VoltageClamp drives the kinetics with the fixed Holding potential
	VoltageClamp VoltageMode = iota

	// LiveVoltage drives the kinetics with the neuron's membrane potential
	LiveVoltage

	VoltageModeN
)

// ChR2Params are the channel population and recording parameters
type ChR2Params struct {
	G          float32     `def:"0.4" desc:"maximal ChR2 conductance"`
	Wavelength float32     `def:"470" desc:"light wavelength, in nm"`
	Holding    float32     `def:"-70" desc:"holding potential used in VoltageClamp mode, in mV"`
	Mode       VoltageMode `desc:"whether the holding potential or the live membrane potential drives the kinetics"`
	Dt         float32     `def:"0.02" desc:"integration time step, in ms"`
}

func (cp *ChR2Params) Defaults() {
	cp.G = 0.4
	cp.Wavelength = 470
	cp.Holding = -70
	cp.Mode = VoltageClamp
	cp.Dt = 0.02
}

// Update makes the holding potential negative, as it is entered as a magnitude
func (cp *ChR2Params) Update() {
	if cp.Holding > 0 {
		cp.Holding = -cp.Holding
	}
}

// Validate checks for non-physical values
func (cp *ChR2Params) Validate() error {
	if !(cp.Wavelength > 0) {
		return fmt.Errorf("opsin: wavelength %g must be > 0", cp.Wavelength)
	}
	if !(cp.Dt > 0) {
		return fmt.Errorf("opsin: dt %g must be > 0", cp.Dt)
	}
	return nil
}

func (cp *ChR2Params) TypeName() string { return "ChR2" }
func (cp *ChR2Params) Class() string    { return "" }
func (cp *ChR2Params) Name() string     { return "ChR2" }

// ChR2 is a channelrhodopsin-2 population expressed in one neuron
type ChR2 struct {
	Params ChR2Params `view:"inline" desc:"population parameters"`
	Model  *FourState `desc:"kinetic model"`
}

// NewChR2 returns a dark adapted ChR2 population using copies of the params
func NewChR2(cp ChR2Params, op Params) (*ChR2, error) {
	if err := cp.Validate(); err != nil {
		return nil, err
	}
	cp.Update()
	return &ChR2{Params: cp, Model: NewFourState(op)}, nil
}

// DriveV returns the voltage that drives the kinetics given neuron potential v
func (cr *ChR2) DriveV(v float32) float32 {
	if cr.Params.Mode == VoltageClamp {
		return cr.Params.Holding
	}
	return v
}

// Step advances one Dt at irradiance irr with neuron potential v, and
// returns the photocurrent
func (cr *ChR2) Step(v, irr float32) (float32, error) {
	cp := &cr.Params
	return cr.Model.Step(irr, cr.DriveV(v), cp.Dt, cp.Wavelength, cp.G)
}

// I returns the photocurrent on the last step
func (cr *ChR2) I() float32 {
	return cr.Model.I
}

// Reset returns to the dark adapted state
func (cr *ChR2) Reset() {
	cr.Model.Reset()
}
