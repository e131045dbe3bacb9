// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestApplyParams(t *testing.T) {
	cfg := &Config{}
	cfg.Defaults()
	if err := ApplyParams(cfg, "BodyTemp", false); err != nil {
		t.Fatal(err)
	}
	if cfg.Opsin.Temp != 37 {
		t.Errorf("Opsin.Temp: %v, want 37", cfg.Opsin.Temp)
	}
	cor := 0.05 * math32.Pow(1.77, 1.5)
	if math32.Abs(cfg.Opsin.Gd2T-cor) > 1e-6 {
		t.Errorf("Gd2T not updated: %v, want %v", cfg.Opsin.Gd2T, cor)
	}
	if err := ApplyParams(cfg, "NoSuchSet", false); err == nil {
		t.Errorf("expected error for unknown set")
	}
}

func TestSetParam(t *testing.T) {
	cfg := &Config{}
	cfg.Defaults()
	if err := SetParamString(cfg, "Opsin.Gd2 = 0.07"); err != nil {
		t.Fatal(err)
	}
	if cfg.Opsin.Gd2 != 0.07 {
		t.Errorf("Opsin.Gd2: %v", cfg.Opsin.Gd2)
	}
	if err := SetParam(cfg, "Neuron.D", "2"); err != nil {
		t.Fatal(err)
	}
	if cfg.Neuron.D != 2 {
		t.Errorf("Neuron.D: %v", cfg.Neuron.D)
	}
	if err := SetParam(cfg, "Foo.Bar", "1"); err == nil {
		t.Errorf("expected error for unknown type")
	}
	if err := SetParamString(cfg, "Opsin.Gd2"); err == nil {
		t.Errorf("expected error for missing value")
	}
}
