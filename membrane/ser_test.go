// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package membrane

import (
	"math"
	"testing"

	"github.com/emer/sonogen/chans"
)

const difTol = 1.0e-15

func TestRelax(t *testing.T) {
	dts := []float64{1e-9, 1e-7, 1e-3}
	ccs := []chans.ChannelCount{chans.Chan1000, chans.Chan100, chans.Chan1}
	for i := range dts {
		p := Params{}
		p.Defaults()
		p.Dt = dts[i]
		p.StartAtRest = true
		sr, err := New(ccs[i], p)
		if err != nil {
			t.Fatal(err)
		}
		sr.SetDrive(0.02)
		ss := sr.SteadyState()
		if ss != p.Vrest+0.02 {
			t.Errorf("steady state: %v", ss)
		}
		v0 := sr.Vt()
		v := sr.Advance()
		cor := ss + (v0-ss)*math.Exp(-dts[i]/ccs[i].Tau())
		dif := math.Abs(v - cor)
		if dif > difTol {
			t.Errorf("err: idx: %v, v: %v, cor: %v, dif: %v\n", i, v, cor, dif)
		}
	}
}

func TestFirstStepFromZero(t *testing.T) {
	p := Params{}
	p.Defaults()
	sr, err := New(chans.Chan1000, p)
	if err != nil {
		t.Fatal(err)
	}
	if sr.Vt() != 0 {
		t.Errorf("initial Vt: %v, want 0", sr.Vt())
	}
	sr.SetDrive(0.07)
	// 0 >= Vmax (-0.01), so the first step resets to rest
	if v := sr.Advance(); v != p.Vrest {
		t.Errorf("first step: %v, want Vrest %v", v, p.Vrest)
	}
}

func TestReset(t *testing.T) {
	p := Params{}
	p.Defaults()
	p.StartAtRest = true
	p.Dt = 1e-6
	sr, err := New(chans.Chan1000, p)
	if err != nil {
		t.Fatal(err)
	}
	sr.SetDrive(0.07) // steady state 0.02 is above Vmax
	band := sr.Band()
	reached := false
	for i := 0; i < 200; i++ {
		prev := sr.Vt()
		v := sr.Advance()
		if prev >= p.Vmax {
			reached = true
			if v != p.Vrest {
				t.Errorf("step %v: after Vmax got %v, want Vrest", i, v)
			}
			continue
		}
		if v < band.Min {
			t.Errorf("step %v: %v below Vrest", i, v)
		}
	}
	if !reached {
		t.Errorf("voltage never reached Vmax")
	}
	sr.Reset()
	if sr.Vt() != p.Vrest || sr.Drive() != 0.07 {
		t.Errorf("reset: vt %v drive %v", sr.Vt(), sr.Drive())
	}
}

func TestBadParams(t *testing.T) {
	p := Params{}
	p.Defaults()
	p.Vmax = p.Vrest
	if _, err := New(chans.Chan1, p); err == nil {
		t.Errorf("expected error for Vmax <= Vrest")
	}
	p.Defaults()
	if _, err := New(chans.ChannelCount(3), p); err == nil {
		t.Errorf("expected error for bad channel count")
	}
}
