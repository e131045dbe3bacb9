// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stim

import (
	"errors"
	"fmt"
	"sort"

	"github.com/emer/etable/agg"
	"github.com/emer/etable/etable"
	"github.com/goki/ki/ints"
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrEmptySeries is returned when aggregating a series with no values
	ErrEmptySeries = errors.New("stim: empty intensity series")

	// ErrPct is returned for a percentage outside (0, 100]
	ErrPct = errors.New("stim: percentage must be in (0, 100]")
)

// DefPct is the default top percentage used for the representative intensity
const DefPct = 5

// TopK returns the number of top values averaged for n values at pct percent:
// floor(pct * n / 100), raised to 1 if that is 0 and n > 0.
func TopK(n int, pct float64) int {
	if n <= 0 {
		return 0
	}
	k := int(pct * float64(n) / 100)
	return ints.MinInt(ints.MaxInt(k, 1), n)
}

// TopPctMean returns the mean of the top pct percent of vals.  vals is not
// modified.
func TopPctMean(vals []float64, pct float64) (float64, error) {
	if !(pct > 0 && pct <= 100) {
		return 0, fmt.Errorf("%w: got %g", ErrPct, pct)
	}
	n := len(vals)
	if n == 0 {
		return 0, ErrEmptySeries
	}
	srt := append([]float64(nil), vals...)
	sort.Sort(sort.Reverse(sort.Float64Slice(srt)))
	k := TopK(n, pct)
	return floats.Sum(srt[:k]) / float64(k), nil
}

// TopPctMeanTable returns the mean of the top pct percent of values in
// column col of the rows in ix.  ix is not modified.
func TopPctMeanTable(ix *etable.IdxView, col string, pct float64) (float64, error) {
	if !(pct > 0 && pct <= 100) {
		return 0, fmt.Errorf("%w: got %g", ErrPct, pct)
	}
	n := ix.Len()
	if n == 0 {
		return 0, ErrEmptySeries
	}
	ct, err := ix.Table.ColByNameTry(col)
	if err != nil {
		return 0, err
	}
	top := ix.Clone()
	top.Sort(func(et *etable.Table, i, j int) bool {
		return ct.FloatVal1D(i) > ct.FloatVal1D(j)
	})
	top.Idxs = top.Idxs[:TopK(n, pct)]
	return agg.Mean(top, col)[0], nil
}
