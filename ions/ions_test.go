// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ions

import (
	"errors"
	"math"
	"testing"
)

const relTol = 1.0e-9

func TestConservation(t *testing.T) {
	cl, err := New(-0.05, -0.01, 0.2e-3)
	if err != nil {
		t.Fatal(err)
	}
	tot := cl.Total()
	for vt := -0.2; vt <= 0.2; vt += 0.0037 {
		_, intra, extra, err := cl.Update(vt)
		if err != nil {
			t.Fatal(err)
		}
		dif := math.Abs((intra+extra)-tot) / tot
		if dif > relTol {
			t.Errorf("err: vt: %v, intra: %v, extra: %v, total: %v, dif: %v\n", vt, intra, extra, tot, dif)
		}
	}
}

func TestRestPartition(t *testing.T) {
	cl, err := New(-0.05, -0.01, 0.2e-3)
	if err != nil {
		t.Fatal(err)
	}
	// updating at rest returns the initial extracellular value
	_, _, extra, _ := cl.Update(-0.05)
	if math.Abs(extra-0.2e-3)/0.2e-3 > relTol {
		t.Errorf("extra at rest: %v, cor: 0.2e-3", extra)
	}
	// at Vmax the partition gives MaxExtra
	_, _, extra, _ = cl.Update(-0.01)
	if math.Abs(extra-cl.MaxExtra())/cl.MaxExtra() > relTol {
		t.Errorf("extra at Vmax: %v, MaxExtra: %v", extra, cl.MaxExtra())
	}
	// depolarizing moves ions outside
	if cl.MaxExtra() <= 0.2e-3 {
		t.Errorf("MaxExtra %v should exceed the resting value", cl.MaxExtra())
	}
}

func TestNernstConst(t *testing.T) {
	cl, _ := New(-0.05, -0.01, 1)
	cor := 8.314 * 311.65 / (2 * 96485.332)
	if math.Abs(cl.NernstConst()-cor) > 1e-15 {
		t.Errorf("nernst: %v, cor: %v", cl.NernstConst(), cor)
	}
}

func TestBadConc(t *testing.T) {
	for _, c := range []float64{0, -1, math.NaN()} {
		if _, err := New(-0.05, -0.01, c); !errors.Is(err, ErrNonPositiveConc) {
			t.Errorf("conc %v: expected ErrNonPositiveConc, got %v", c, err)
		}
	}
}
