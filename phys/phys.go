// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package phys holds the fixed physical constants shared by the ionic, optical
and opsin stages.  Values are read-only: nothing in the simulation mutates them.
*/
package phys

import "math"

const (
	// GasConst is the ideal gas constant R, in J/(mol K)
	GasConst = 8.314

	// BodyTemp is the average human brain temperature, in Kelvin
	BodyTemp = 311.650

	// CaValence is the valence z of the calcium ion
	CaValence = 2.0

	// Faraday is Faraday's constant F, in C/mol
	Faraday = 96485.332

	// Avogadro is Avogadro's number N_A, in 1/mol
	Avogadro = 6.02214076e23

	// PlanckC is Planck's constant times the speed of light (h c), in J m
	PlanckC = 1.986446e-25

	// PhotonToIntensity converts emitted photon moles per time step into the
	// equivalent light intensity, in W/m^2 (i.e. mW/mm^2 * 1000)
	PhotonToIntensity = 249222.0104166667
)

// NernstConst returns R T / (z F) in volts, which converts a membrane voltage
// into the exponent of the extracellular / intracellular concentration ratio.
func NernstConst() float64 {
	return (GasConst * BodyTemp) / (CaValence * Faraday)
}

// Finite returns true if v is neither NaN nor +/-Inf
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
