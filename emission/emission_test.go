// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package emission

import (
	"errors"
	"math"
	"testing"

	"github.com/emer/sonogen/phys"
)

func newEmitter(t *testing.T) *Emitter {
	p := Params{}
	p.Defaults()
	em, err := New(0.2e-3, 0.5e-3, p)
	if err != nil {
		t.Fatal(err)
	}
	return em
}

func TestMonotonic(t *testing.T) {
	em := newEmitter(t)
	prev := 0.0
	for c := 1e-8; c < 1; c *= 1.7 {
		li, err := em.LightIntensity(c, 1e-9)
		if err != nil {
			t.Fatal(err)
		}
		if li < prev {
			t.Errorf("intensity decreased: conc: %v, li: %v, prev: %v\n", c, li, prev)
		}
		prev = li
	}
}

func TestFormula(t *testing.T) {
	em := newEmitter(t)
	conc, dt := 0.3e-3, 1e-9
	li, err := em.LightIntensity(conc, dt)
	if err != nil {
		t.Fatal(err)
	}
	flux := 4 * math.Pi * 1e-8 * 1e-8 * conc * phys.Avogadro
	c := flux * dt
	p0 := (1 + c) * math.Exp(-c)
	rate := (1 / (3 / flux)) * (1 - p0)
	cor := rate * (0.5e-3 / 3 * phys.Avogadro) / phys.Avogadro * phys.PhotonToIntensity
	dif := math.Abs(li-cor) / cor
	if dif > 1e-6 { // the reference form loses precision to cancellation
		t.Errorf("li: %v, cor: %v, rel dif: %v", li, cor, dif)
	}
	if em.State.NoEmitP != p0 {
		t.Errorf("NoEmitP: %v, cor: %v", em.State.NoEmitP, p0)
	}
}

func TestInit(t *testing.T) {
	em := newEmitter(t)
	if !(em.Init > 0) {
		t.Errorf("initial intensity should be positive: %v", em.Init)
	}
	cor := 0.5e-3 / 3 * phys.Avogadro
	if math.Abs(em.Emitters-cor)/cor > 1e-12 {
		t.Errorf("emitters: %v", em.Emitters)
	}
}

func TestErrors(t *testing.T) {
	em := newEmitter(t)
	if _, err := em.LightIntensity(0, 1e-9); !errors.Is(err, ErrNonPositiveConc) {
		t.Errorf("zero conc: %v", err)
	}
	if _, err := em.LightIntensity(-1e-3, 1e-9); !errors.Is(err, ErrNonPositiveConc) {
		t.Errorf("negative conc: %v", err)
	}
	if _, err := em.LightIntensity(1e-3, 0); !errors.Is(err, ErrNonPositiveDt) {
		t.Errorf("zero dt: %v", err)
	}
	p := Params{}
	p.Defaults()
	if _, err := New(1e-3, 0, p); !errors.Is(err, ErrNonPositiveConc) {
		t.Errorf("zero max extra: %v", err)
	}
}
