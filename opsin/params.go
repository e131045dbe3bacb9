// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opsin

import (
	"github.com/chewxy/math32"
	"github.com/emer/sonogen/phys"
)

// Params are the rate parameters of the four-state channelrhodopsin model,
// based on Williams et al (2013) as parameterized in PyRhO.
// Time is in ms, voltage in mV, irradiance in mW/mm^2, wavelength in nm.
type Params struct {
	Gamma     float32 `def:"0.1" desc:"ratio of the O2 to O1 conductance"`
	Gd2       float32 `def:"0.05" desc:"O2 -> C2 closing rate, at the reference temperature, in 1/ms"`
	Ep1       float32 `def:"0.8535" desc:"C1 -> O1 quantum efficiency"`
	Ep2       float32 `def:"0.14" desc:"C2 -> O2 quantum efficiency"`
	SigmaRet  float32 `def:"1.2e-19" desc:"retinal absorption cross section, in m^2"`
	WLoss     float32 `def:"1.3" desc:"scaling for the loss of photons from scattering and absorption"`
	TauChR2   float32 `def:"1.3" desc:"time constant of the light adaptation variable p, in ms"`
	Temp      float32 `def:"22" desc:"temperature, in Celsius"`
	RefTemp   float32 `def:"22" desc:"temperature at which the rate constants were measured, in Celsius"`
	TempScale bool    `def:"true" desc:"scale rates by their Q10 factor for Temp differing from RefTemp"`
	Renorm    bool    `def:"false" desc:"clamp the populations to 0..1 and rescale them to sum to 1 after each step -- off integrates the raw Euler dynamics"`

	Gd1Q10 float32 `def:"1.97" desc:"Q10 of the O1 -> C1 closing rate"`
	GrQ10  float32 `def:"2.56" desc:"Q10 of the C2 -> C1 recovery rate"`
	E12Q10 float32 `def:"1.1" desc:"Q10 of the O1 -> O2 rate"`
	E21Q10 float32 `def:"1.95" desc:"Q10 of the O2 -> O1 rate"`
	Gd2Q10 float32 `def:"1.77" desc:"Q10 of Gd2"`
	Ep1Q10 float32 `def:"1.46" desc:"Q10 of Ep1"`
	Ep2Q10 float32 `def:"2.77" desc:"Q10 of Ep2"`

	TempFact float32 `view:"-" desc:"(Temp - RefTemp) / 10, exponent of the Q10 factors"`
	Gd2T     float32 `inactive:"+" desc:"temperature scaled Gd2"`
	Ep1T     float32 `inactive:"+" desc:"temperature scaled Ep1"`
	Ep2T     float32 `inactive:"+" desc:"temperature scaled Ep2"`
}

func (op *Params) Defaults() {
	op.Gamma = 0.1
	op.Gd2 = 0.05
	op.Ep1 = 0.8535
	op.Ep2 = 0.14
	op.SigmaRet = 12e-20
	op.WLoss = 1.3
	op.TauChR2 = 1.3
	op.Temp = 22
	op.RefTemp = 22
	op.TempScale = true
	op.Renorm = false
	op.Gd1Q10 = 1.97
	op.GrQ10 = 2.56
	op.E12Q10 = 1.1
	op.E21Q10 = 1.95
	op.Gd2Q10 = 1.77
	op.Ep1Q10 = 1.46
	op.Ep2Q10 = 2.77
	op.Update()
}

func (op *Params) Update() {
	op.TempFact = (op.Temp - op.RefTemp) / 10
	op.Gd2T = op.Gd2 * op.Q10(op.Gd2Q10)
	op.Ep1T = op.Ep1 * op.Q10(op.Ep1Q10)
	op.Ep2T = op.Ep2 * op.Q10(op.Ep2Q10)
}

func (op *Params) TypeName() string { return "Opsin" }
func (op *Params) Class() string    { return "" }
func (op *Params) Name() string     { return "Opsin" }

// Q10 returns the temperature scaling factor q ^ TempFact, or 1 if TempScale is off
func (op *Params) Q10(q float32) float32 {
	if !op.TempScale {
		return 1
	}
	return math32.Pow(q, op.TempFact)
}

// Gd1 returns the O1 -> C1 closing rate at voltage v
func (op *Params) Gd1(v float32) float32 {
	return (0.075 + 0.043*math32.Tanh((v+20)/-20)) * op.Q10(op.Gd1Q10)
}

// Gr returns the C2 -> C1 dark recovery rate at voltage v
func (op *Params) Gr(v float32) float32 {
	return 4.34587e-5 * math32.Exp(-0.0211539274*v) * op.Q10(op.GrQ10)
}

// LogPhi returns the log irradiance factor ln(1 + irr / 0.024), 0 in the dark
func (op *Params) LogPhi(irr float32) float32 {
	if irr <= 0 {
		return 0
	}
	return math32.Log(1 + irr/0.024)
}

// E12 returns the O1 -> O2 rate for log irradiance lp
func (op *Params) E12(lp float32) float32 {
	return 0.011*op.Q10(op.E12Q10) + 0.005*lp
}

// E21 returns the O2 -> O1 rate for log irradiance lp
func (op *Params) E21(lp float32) float32 {
	return 0.008*op.Q10(op.E21Q10) + 0.004*lp
}

// F returns the photon flux excitation rate per molecule, in 1/ms, for
// irradiance irr at wavelength lambda
func (op *Params) F(irr, lambda float32) float32 {
	phot := float32(1e9*phys.PlanckC) / lambda // photon energy, J
	flux := (1000 * irr) / phot                // photons / m^2 / s
	return flux * op.SigmaRet / (op.WLoss * 1000)
}

// So returns the steady state of the light adaptation variable p for irr
func (op *Params) So(irr float32) float32 {
	return 0.5 * (1 + math32.Tanh(120*(100*irr-0.1)))
}

// IVFact returns the inward rectification of the photocurrent at v
func (op *Params) IVFact(v float32) float32 {
	return 10.6408 - 14.6408*math32.Exp(-v/42.7671)
}
