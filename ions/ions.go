// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package ions partitions a fixed pool of calcium ions between the inside and
the outside of the SER membrane according to the Nernst equation, given the
current membrane voltage.
*/
package ions

import (
	"errors"
	"fmt"
	"math"

	"github.com/emer/sonogen/phys"
)

var (
	// ErrNonPositiveConc is returned for a zero or negative initial concentration
	ErrNonPositiveConc = errors.New("ions: concentration must be > 0")

	// ErrDomain is returned when the partition is not finite
	ErrDomain = errors.New("ions: non-finite concentration")
)

// Cluster is a calcium pool of fixed total concentration, in moles
type Cluster struct {
	Vrest float64 `desc:"resting voltage, in volts"`
	Vmax  float64 `desc:"maximum voltage, in volts"`

	nernst   float64
	total    float64
	extra    float64
	intra    float64
	maxExtra float64
}

// New returns a cluster whose extracellular concentration at Vrest is
// initExtra.  The total is fixed from then on.
func New(vrest, vmax, initExtra float64) (*Cluster, error) {
	if !(initExtra > 0) || !phys.Finite(initExtra) {
		return nil, fmt.Errorf("%w: got %g", ErrNonPositiveConc, initExtra)
	}
	cl := &Cluster{Vrest: vrest, Vmax: vmax, nernst: phys.NernstConst()}
	cl.extra = initExtra
	cl.intra = initExtra / math.Exp(vrest/cl.nernst)
	cl.total = cl.extra + cl.intra
	cl.maxExtra = cl.total - cl.total/(math.Exp(vmax/cl.nernst)+1)
	if !phys.Finite(cl.total) || !phys.Finite(cl.maxExtra) {
		return nil, fmt.Errorf("%w: total %g, max extra %g", ErrDomain, cl.total, cl.maxExtra)
	}
	return cl, nil
}

// Update partitions the total pool for membrane voltage vt, returning the
// extra / intra ratio and the new intra and extra concentrations.
// intra + extra == Total() for every vt.
func (cl *Cluster) Update(vt float64) (ratio, intra, extra float64, err error) {
	ratio = math.Exp(vt / cl.nernst)
	intra = cl.total / (ratio + 1)
	extra = cl.total - intra
	if !phys.Finite(intra) || !phys.Finite(extra) {
		return ratio, intra, extra, fmt.Errorf("%w: vt %g", ErrDomain, vt)
	}
	cl.intra = intra
	cl.extra = extra
	return
}

// NernstConst returns R T / (z F) used by the partition
func (cl *Cluster) NernstConst() float64 { return cl.nernst }

// Total returns the fixed total concentration
func (cl *Cluster) Total() float64 { return cl.total }

// Extra returns the current extracellular concentration
func (cl *Cluster) Extra() float64 { return cl.extra }

// Intra returns the current intracellular concentration
func (cl *Cluster) Intra() float64 { return cl.intra }

// MaxExtra returns the extracellular concentration the partition gives at
// Vmax, used to calibrate the emitter population
func (cl *Cluster) MaxExtra() float64 { return cl.maxExtra }
