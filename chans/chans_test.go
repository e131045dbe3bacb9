// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chans

import "testing"

func TestProps(t *testing.T) {
	cortau := []float64{0.237, 9.5e-5, 2.37e-5, 9.5e-7, 2.37e-7}
	for i, cc := range AllCounts() {
		pr, err := cc.Props()
		if err != nil {
			t.Fatal(err)
		}
		if pr.Tau != cortau[i] {
			t.Errorf("count: %v, tau: %v, cor tau: %v\n", cc, pr.Tau, cortau[i])
		}
		if cc.Tau() != pr.Tau {
			t.Errorf("count: %v, Tau() %v != Props().Tau %v\n", cc, cc.Tau(), pr.Tau)
		}
	}
	// more channels = lower resistance = faster relaxation
	all := AllCounts()
	for i := 1; i < len(all); i++ {
		if all[i].Tau() >= all[i-1].Tau() {
			t.Errorf("tau not decreasing with count: %v: %v, %v: %v\n", all[i-1], all[i-1].Tau(), all[i], all[i].Tau())
		}
	}
}

func TestInvalid(t *testing.T) {
	cc := ChannelCount(42)
	if cc.Valid() {
		t.Errorf("42 channels should not be valid")
	}
	if _, err := cc.Props(); err == nil {
		t.Errorf("expected error for unsupported count")
	}
	if cc.Tau() != 0 {
		t.Errorf("Tau of unsupported count should be 0, got %v", cc.Tau())
	}
}

func TestParse(t *testing.T) {
	cc, err := ParseChannelCount(" 500 ")
	if err != nil {
		t.Fatal(err)
	}
	if cc != Chan500 {
		t.Errorf("parsed %v, want 500", cc)
	}
	if _, err := ParseChannelCount("7"); err == nil {
		t.Errorf("expected error for unsupported count")
	}
	if _, err := ParseChannelCount("lots"); err == nil {
		t.Errorf("expected error for non-numeric count")
	}
	var tc ChannelCount
	if err := tc.UnmarshalText([]byte("1000")); err != nil || tc != Chan1000 {
		t.Errorf("UnmarshalText: %v, %v", tc, err)
	}
}
