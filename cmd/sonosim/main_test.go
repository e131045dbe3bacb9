// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testTable = "../../lookup/testdata/m13_voltage.csv"

// shortConfig writes a config with short horizons for both loops
func shortConfig(t *testing.T) string {
	fn := filepath.Join(t.TempDir(), "short.toml")
	cfg := `bubbletime = 1e-7
neurontime = 20

[stim]
delay = 2
width = 10
`
	if err := os.WriteFile(fn, []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}
	return fn
}

func execute(t *testing.T, args ...string) (string, error) {
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunJSON(t *testing.T) {
	out, err := execute(t, "run", "--table", testTable, "--config", shortConfig(t), "--json", "--log-level", "none")
	if err != nil {
		t.Fatal(err)
	}
	var res struct {
		Bubble struct {
			Vb             float64
			Representative float64
		} `json:"bubble"`
		Neuron struct {
			Intensity float64
			PeakI     float64
		} `json:"neuron"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("bad json %q: %v", out, err)
	}
	if res.Bubble.Vb != 0.0702 {
		t.Errorf("Vb: %v", res.Bubble.Vb)
	}
	if !(res.Bubble.Representative > 0) {
		t.Errorf("representative light should be > 0: %v", res.Bubble.Representative)
	}
	if float32(res.Neuron.Intensity) != float32(res.Bubble.Representative) {
		t.Errorf("pulse intensity %v should be the representative light %v", res.Neuron.Intensity, res.Bubble.Representative)
	}
	if res.Neuron.PeakI > 0 {
		t.Errorf("ChR2 current should never be outward: %v", res.Neuron.PeakI)
	}
}

func TestBubbleText(t *testing.T) {
	out, err := execute(t, "bubble", "--table", testTable, "--config", shortConfig(t))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "representative light") {
		t.Errorf("missing summary line in:\n%s", out)
	}
}

func TestNoTable(t *testing.T) {
	if _, err := execute(t, "bubble"); err == nil {
		t.Errorf("expected error without --table")
	}
}

func TestSweep(t *testing.T) {
	out, err := execute(t, "sweep", "--table", testTable, "--config", shortConfig(t), "--chans", "1,1000", "--intensities", "0.45,5", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var sums []map[string]interface{}
	if err := json.Unmarshal([]byte(out), &sums); err != nil {
		t.Fatal(err)
	}
	if len(sums) != 4 {
		t.Errorf("sweep rows: %d", len(sums))
	}
	if _, err := execute(t, "sweep", "--table", testTable, "--chans", "7"); err == nil {
		t.Errorf("expected error for unsupported channel count")
	}
}

func TestConfigSet(t *testing.T) {
	out, err := execute(t, "config", "--json", "--params", "BodyTemp", "--set", "Opsin.Gd2=0.07")
	if err != nil {
		t.Fatal(err)
	}
	var cfg struct {
		Opsin struct {
			Temp float64
			Gd2  float64
		}
	}
	if err := json.Unmarshal([]byte(out), &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Opsin.Temp != 37 {
		t.Errorf("BodyTemp not applied: %v", cfg.Opsin.Temp)
	}
	if cfg.Opsin.Gd2 < 0.0699 || cfg.Opsin.Gd2 > 0.0701 {
		t.Errorf("Gd2 not set: %v", cfg.Opsin.Gd2)
	}
	if _, err := execute(t, "config", "--set", "Opsin.Gd2"); err == nil {
		t.Errorf("expected error for malformed --set")
	}
	if _, err := execute(t, "config", "--params", "NoSuchSet"); err == nil {
		t.Errorf("expected error for unknown params set")
	}
}

func TestRates(t *testing.T) {
	out, err := execute(t, "rates", "--vstart", "-80", "--vend", "0", "--vstep", "10")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 10 {
		t.Errorf("want header + 9 rows, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "Gd1") {
		t.Errorf("header: %s", lines[0])
	}
}

func TestBadLogLevel(t *testing.T) {
	if _, err := execute(t, "bubble", "--table", testTable, "--log-level", "loud"); err == nil {
		t.Errorf("expected error for unknown log level")
	}
}
