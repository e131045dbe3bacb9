// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package izhi

import (
	"testing"

	"github.com/chewxy/math32"
)

const difTol = float32(1.0e-4)

func newNeuron(t *testing.T) *Neuron {
	p := Params{}
	p.Defaults()
	nr, err := New(p)
	if err != nil {
		t.Fatal(err)
	}
	return nr
}

func TestRest(t *testing.T) {
	nr := newNeuron(t)
	if math32.Abs(nr.Rest()-(-70)) > difTol {
		t.Errorf("rest: %v, cor: -70", nr.Rest())
	}
	if nr.U() != 0.2*nr.Rest() {
		t.Errorf("u0: %v", nr.U())
	}
	// rest is a fixed point with no input
	for i := 0; i < 1000; i++ {
		if err := nr.Advance(float32(i)*0.02, 0); err != nil {
			t.Fatal(err)
		}
	}
	if math32.Abs(nr.V()-nr.Rest()) > difTol || !nr.Converged() {
		t.Errorf("drifted from rest: v %v", nr.V())
	}
}

func TestSpikeReset(t *testing.T) {
	nr := newNeuron(t)
	np := nr.Params
	var tm float32
	for step := 0; step < 100000; step++ {
		tm = float32(step) * np.Dt
		v, u := nr.V(), nr.U()
		ieu := u + np.Dt*np.A*(np.B*v-u) // u after the Euler step
		if err := nr.Advance(tm, 10); err != nil {
			t.Fatal(err)
		}
		if nr.NSpikes() > 0 {
			if nr.V() != np.C {
				t.Errorf("v after spike: %v, want c %v", nr.V(), np.C)
			}
			if math32.Abs(nr.U()-(ieu+np.D)) > difTol {
				t.Errorf("u after spike: %v, want %v", nr.U(), ieu+np.D)
			}
			if nr.SpikeTimes()[0] != tm {
				t.Errorf("spike time: %v, want %v", nr.SpikeTimes()[0], tm)
			}
			if !nr.Spiked() {
				t.Errorf("spiked flag not set")
			}
			break
		}
	}
	if nr.NSpikes() == 0 {
		t.Fatalf("no spike with constant input")
	}
	nr.Reset()
	if nr.NSpikes() != 0 || nr.V() != nr.Rest() || nr.Spiked() {
		t.Errorf("reset did not restore rest state")
	}
}

func TestConvergence(t *testing.T) {
	nr := newNeuron(t)
	for step := 0; step < 50; step++ {
		nr.Advance(float32(step)*0.02, 20)
	}
	if nr.Converged() {
		t.Errorf("should not be converged while driven: v %v", nr.V())
	}
	for step := 50; step < 200000; step++ {
		nr.Advance(float32(step)*0.02, 0)
	}
	if !nr.Converged() {
		t.Errorf("should converge back to rest: v %v, rest %v", nr.V(), nr.Rest())
	}
}

func TestIsSpiking(t *testing.T) {
	nr := newNeuron(t)
	if nr.IsSpiking() {
		t.Errorf("spiking at rest")
	}
	nr.SetSpiked(true)
	nr.IsSpiking()
	if nr.Spiked() {
		t.Errorf("spiked flag should clear at rest")
	}
}

func TestBadB(t *testing.T) {
	p := Params{}
	p.Defaults()
	p.B = 5 // 25 - 50 + 2.6 < 0
	if _, err := New(p); err == nil {
		t.Errorf("expected error for negative discriminant")
	}
}
