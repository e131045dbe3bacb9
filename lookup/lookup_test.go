// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lookup

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/emer/sonogen/chans"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = 1.0e-12

func testTable(t *testing.T) *Table {
	tb, err := NewTable([]float64{1, 2, 4}, map[chans.ChannelCount][]float64{
		chans.Chan1000: {0.010, 0.030, 0.070},
		chans.Chan1:    {0.001, 0.002, 0.004},
	})
	if err != nil {
		t.Fatal(err)
	}
	return tb
}

func TestExactMatch(t *testing.T) {
	tb := testTable(t)
	cors := []float64{0.010, 0.030, 0.070}
	for i, x := range []float64{1, 2, 4} {
		v, err := tb.VoltageFor(x, chans.Chan1000)
		if err != nil {
			t.Fatal(err)
		}
		if v != cors[i] {
			t.Errorf("err: idx: %v, x: %v, v: %v, cor: %v\n", i, x, v, cors[i])
		}
	}
}

func TestInterp(t *testing.T) {
	tb := testTable(t)
	xs := []float64{1.5, 3, 3.5}
	cors := []float64{0.020, 0.050, 0.060}
	for i, x := range xs {
		v, err := tb.VoltageFor(x, chans.Chan1000)
		if err != nil {
			t.Fatal(err)
		}
		dif := math.Abs(v - cors[i])
		if dif > difTol {
			t.Errorf("err: idx: %v, x: %v, v: %v, cor: %v, dif: %v\n", i, x, v, cors[i], dif)
		}
	}
}

func TestOutOfRange(t *testing.T) {
	tb := testTable(t)
	v, err := tb.VoltageFor(0.5, chans.Chan1000)
	if err != nil || v != 0.010 {
		t.Errorf("clamp low: %v, %v", v, err)
	}
	v, err = tb.VoltageFor(10, chans.Chan1000)
	if err != nil || v != 0.070 {
		t.Errorf("clamp high: %v, %v", v, err)
	}

	tb.Params.OutOfRange = ExtrapolateRange
	v, _ = tb.VoltageFor(0, chans.Chan1000)
	if math.Abs(v-(-0.010)) > difTol {
		t.Errorf("extrapolate low: %v, cor: -0.010", v)
	}
	v, _ = tb.VoltageFor(6, chans.Chan1000)
	if math.Abs(v-0.110) > difTol {
		t.Errorf("extrapolate high: %v, cor: 0.110", v)
	}

	tb.Params.OutOfRange = ErrorRange
	if _, err := tb.VoltageFor(6, chans.Chan1000); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got: %v", err)
	}
	if _, err := tb.VoltageFor(4, chans.Chan1000); err != nil {
		t.Errorf("upper breakpoint is in range: %v", err)
	}
}

func TestMissingChannels(t *testing.T) {
	tb := testTable(t)
	if _, err := tb.VoltageFor(2, chans.Chan50); !errors.Is(err, ErrNoChannels) {
		t.Errorf("expected ErrNoChannels, got: %v", err)
	}
}

func TestBadTable(t *testing.T) {
	_, err := NewTable([]float64{1, 1}, map[chans.ChannelCount][]float64{chans.Chan1: {0, 0}})
	if !errors.Is(err, ErrBadTable) {
		t.Errorf("non-increasing intensities should fail: %v", err)
	}
	_, err = NewTable([]float64{1, 2}, map[chans.ChannelCount][]float64{chans.Chan1: {0}})
	if !errors.Is(err, ErrBadTable) {
		t.Errorf("short voltage column should fail: %v", err)
	}
	_, err = NewTable([]float64{1, 2}, map[chans.ChannelCount][]float64{chans.ChannelCount(7): {0, 0}})
	if !errors.Is(err, ErrBadTable) {
		t.Errorf("bad channel count should fail: %v", err)
	}
}

func TestOpenCSV(t *testing.T) {
	tb, err := OpenCSV("testdata/m13_voltage.csv")
	if err != nil {
		t.Fatal(err)
	}
	for _, cc := range chans.AllCounts() {
		if !tb.HasChannels(cc) {
			t.Errorf("missing column for %v channels", cc)
		}
	}
	rng := tb.Range()
	if rng.Min != 0.06 || rng.Max != 19.8 {
		t.Errorf("range: %v", rng)
	}
	v, err := tb.VoltageFor(2.0, chans.Chan1000)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(v-0.0702) > difTol {
		t.Errorf("V1000 at 2.0: %v, cor: 0.0702", v)
	}
}

func TestReadCSVMissingIntensity(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("#Foo,#V1\n1,2\n"))
	if err == nil {
		t.Errorf("expected error for missing Intensity column")
	}
}

func TestOutOfRangeString(t *testing.T) {
	var oor OutOfRange
	if err := oor.UnmarshalText([]byte("ExtrapolateRange")); err != nil {
		t.Fatal(err)
	}
	if oor != ExtrapolateRange {
		t.Errorf("parsed: %v", oor)
	}
	if ErrorRange.String() != "ErrorRange" {
		t.Errorf("String: %v", ErrorRange.String())
	}
}
