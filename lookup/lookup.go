// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package lookup maps an ultrasound stimulus intensity to the source voltage
generated by the piezoelectric M13 bacteriophage layer, for a given number of
SER calcium channels.

The voltages come from an external table of measured intensity breakpoints
(one voltage column per channel count).  Between breakpoints the voltage is
linearly interpolated, and exact breakpoint matches return the stored value.
Intensities outside the table are handled according to Params.OutOfRange.
*/
package lookup

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/minmax"
	"github.com/emer/sonogen/chans"
	"github.com/goki/ki/kit"
)

var (
	// ErrOutOfRange is returned for intensities outside the table when
	// OutOfRange is ErrorRange
	ErrOutOfRange = errors.New("lookup: intensity out of table range")

	// ErrBadTable is returned when building a table from malformed data
	ErrBadTable = errors.New("lookup: malformed voltage table")

	// ErrNoChannels is returned when the table has no column for the requested count
	ErrNoChannels = errors.New("lookup: no voltage column for channel count")
)

// OutOfRange is the policy for intensities outside the table breakpoints
type OutOfRange int

//go:generate stringer -type=OutOfRange

var KiT_OutOfRange = kit.Enums.AddEnum(OutOfRangeN, kit.NotBitFlag, nil)

func (ev OutOfRange) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *OutOfRange) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

func (ev OutOfRange) MarshalText() ([]byte, error)  { return []byte(ev.String()), nil }
func (ev *OutOfRange) UnmarshalText(b []byte) error { return ev.FromString(string(b)) }

// The out-of-range policies
const (
	// ClampRange returns the voltage at the nearest end breakpoint
	ClampRange OutOfRange = iota

	// ExtrapolateRange extends the nearest end segment linearly
	ExtrapolateRange

	// ErrorRange returns ErrOutOfRange
	ErrorRange

	OutOfRangeN
)

// Params control how the table is queried
type Params struct {
	OutOfRange OutOfRange `desc:"what to do with intensities outside the table breakpoints"`
}

func (lp *Params) Defaults() {
	lp.OutOfRange = ClampRange
}

func (lp *Params) Update() {
}

func (lp *Params) TypeName() string { return "Lookup" }
func (lp *Params) Class() string    { return "" }
func (lp *Params) Name() string     { return "Lookup" }

// Table is an immutable intensity -> voltage table, one voltage column per
// channel count.  Intensities are in mW/cm^2 and voltages in volts.
type Table struct {
	Params Params `desc:"query parameters"`

	intens []float64
	volts  map[chans.ChannelCount][]float64
	rng    minmax.F64
}

// NewTable builds a table from ascending intensity breakpoints and a voltage
// column per channel count.  The slices are copied.
func NewTable(intens []float64, volts map[chans.ChannelCount][]float64) (*Table, error) {
	if len(intens) == 0 {
		return nil, fmt.Errorf("%w: no intensity breakpoints", ErrBadTable)
	}
	for i, x := range intens {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("%w: intensity %d is not finite", ErrBadTable, i)
		}
		if i > 0 && x <= intens[i-1] {
			return nil, fmt.Errorf("%w: intensities not strictly increasing at row %d (%g <= %g)", ErrBadTable, i, x, intens[i-1])
		}
	}
	if len(volts) == 0 {
		return nil, fmt.Errorf("%w: no voltage columns", ErrBadTable)
	}
	tb := &Table{}
	tb.Params.Defaults()
	tb.intens = append([]float64(nil), intens...)
	tb.volts = make(map[chans.ChannelCount][]float64, len(volts))
	for cc, vs := range volts {
		if !cc.Valid() {
			return nil, fmt.Errorf("%w: unsupported channel count %d", ErrBadTable, int(cc))
		}
		if len(vs) != len(intens) {
			return nil, fmt.Errorf("%w: channel %v has %d voltages for %d intensities", ErrBadTable, cc, len(vs), len(intens))
		}
		tb.volts[cc] = append([]float64(nil), vs...)
	}
	tb.rng = minmax.F64{Min: tb.intens[0], Max: tb.intens[len(tb.intens)-1]}
	return tb, nil
}

// IntensityCol is the name of the intensity column in voltage table files
const IntensityCol = "Intensity"

// VoltCol returns the name of the voltage column for given channel count,
// e.g., V1000
func VoltCol(cc chans.ChannelCount) string {
	return "V" + cc.String()
}

// ReadCSV reads a comma-separated voltage table.  It must have an Intensity
// column and at least one voltage column named by VoltCol.  Headers may use
// the etable type prefixes (e.g., #Intensity for float64).
func ReadCSV(r io.Reader) (*Table, error) {
	dt := &etable.Table{}
	if err := dt.ReadCSV(r, etable.Comma); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadTable, err)
	}
	return FromETable(dt)
}

// OpenCSV opens and reads a comma-separated voltage table file
func OpenCSV(path string) (*Table, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	tb, err := ReadCSV(fp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tb, nil
}

// FromETable builds a voltage table from the columns of an etable
func FromETable(dt *etable.Table) (*Table, error) {
	ic, err := dt.ColByNameTry(IntensityCol)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadTable, err)
	}
	rows := dt.Rows
	intens := make([]float64, rows)
	for i := range intens {
		intens[i] = ic.FloatVal1D(i)
	}
	volts := make(map[chans.ChannelCount][]float64)
	for _, cc := range chans.AllCounts() {
		vc, err := dt.ColByNameTry(VoltCol(cc))
		if err != nil {
			continue
		}
		vs := make([]float64, rows)
		for i := range vs {
			vs[i] = vc.FloatVal1D(i)
		}
		volts[cc] = vs
	}
	return NewTable(intens, volts)
}

// Range returns the intensity range covered by the breakpoints
func (tb *Table) Range() minmax.F64 {
	return tb.rng
}

// Intensities returns a copy of the intensity breakpoints
func (tb *Table) Intensities() []float64 {
	return append([]float64(nil), tb.intens...)
}

// HasChannels returns true if the table has a voltage column for cc
func (tb *Table) HasChannels(cc chans.ChannelCount) bool {
	_, ok := tb.volts[cc]
	return ok
}

// VoltageFor returns the source voltage for given ultrasound intensity
// and channel count.
func (tb *Table) VoltageFor(intensity float64, cc chans.ChannelCount) (float64, error) {
	vs, ok := tb.volts[cc]
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrNoChannels, cc)
	}
	if math.IsNaN(intensity) {
		return 0, fmt.Errorf("lookup: intensity is NaN")
	}
	xs := tb.intens
	n := len(xs)
	if !tb.rng.InRange(intensity) {
		return tb.outOfRange(intensity, vs)
	}
	i := sort.SearchFloat64s(xs, intensity) // first xs[i] >= intensity
	if xs[i] == intensity {
		return vs[i], nil
	}
	if i == 0 || i >= n { // cannot happen when in range, but keep the index safe
		return tb.outOfRange(intensity, vs)
	}
	return interp(xs[i-1], vs[i-1], xs[i], vs[i], intensity), nil
}

func (tb *Table) outOfRange(intensity float64, vs []float64) (float64, error) {
	xs := tb.intens
	n := len(xs)
	switch tb.Params.OutOfRange {
	case ErrorRange:
		return 0, fmt.Errorf("%w: %g not in [%g, %g]", ErrOutOfRange, intensity, tb.rng.Min, tb.rng.Max)
	case ExtrapolateRange:
		if n < 2 {
			return vs[0], nil
		}
		if intensity < tb.rng.Min {
			return interp(xs[0], vs[0], xs[1], vs[1], intensity), nil
		}
		return interp(xs[n-2], vs[n-2], xs[n-1], vs[n-1], intensity), nil
	default:
		if intensity < tb.rng.Min {
			return vs[0], nil
		}
		return vs[n-1], nil
	}
}

// interp is the line through (x1, y1), (x2, y2) evaluated at x
func interp(x1, y1, x2, y2, x float64) float64 {
	return y1 + (y2-y1)*(x-x1)/(x2-x1)
}
