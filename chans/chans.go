// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package chans provides the calcium channel populations embedded in the smooth
endoplasmic reticulum (SER) membrane.  The number of open channels sets the
lumped membrane resistance and hence the RC time constant of the membrane
voltage relaxation, based on the standard equivalent RC circuit model
(i.e., basic Ohms law equations).
*/
package chans

import (
	"fmt"
	"strconv"
	"strings"
)

// ChannelCount is the number of calcium channels in the SER membrane.
// Only the counts that have measured conductance values are valid.
type ChannelCount int

// The supported channel counts
const (
	Chan1    ChannelCount = 1
	Chan50   ChannelCount = 50
	Chan100  ChannelCount = 100
	Chan500  ChannelCount = 500
	Chan1000 ChannelCount = 1000
)

// Props are the conductance properties of a given channel population
type Props struct {
	R   float64 `desc:"lumped membrane resistance, in Ohms -- informational, the relaxation only uses Tau"`
	Tau float64 `desc:"RC time constant of the membrane voltage relaxation, in seconds"`
}

// props are the measured values for each supported count
var props = map[ChannelCount]Props{
	Chan1:    {R: 5.28e14, Tau: 0.237},
	Chan50:   {R: 2.11e12, Tau: 9.5e-5},
	Chan100:  {R: 5.28e11, Tau: 2.37e-5},
	Chan500:  {R: 2.11e10, Tau: 9.5e-7},
	Chan1000: {R: 5.28e9, Tau: 2.37e-7},
}

// AllCounts returns the supported channel counts in ascending order
func AllCounts() []ChannelCount {
	return []ChannelCount{Chan1, Chan50, Chan100, Chan500, Chan1000}
}

// Valid returns true if this is one of the supported counts
func (cc ChannelCount) Valid() bool {
	_, ok := props[cc]
	return ok
}

// Props returns the conductance properties for this count,
// and an error if the count is not supported.
func (cc ChannelCount) Props() (Props, error) {
	pr, ok := props[cc]
	if !ok {
		return Props{}, fmt.Errorf("chans: unsupported channel count %d (want one of %v)", int(cc), AllCounts())
	}
	return pr, nil
}

// Tau returns the time constant for this count, 0 if not supported
func (cc ChannelCount) Tau() float64 {
	return props[cc].Tau
}

func (cc ChannelCount) String() string {
	return strconv.Itoa(int(cc))
}

// ParseChannelCount parses a decimal channel count and checks it is supported
func ParseChannelCount(s string) (ChannelCount, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("chans: bad channel count %q: %w", s, err)
	}
	cc := ChannelCount(n)
	if !cc.Valid() {
		return 0, fmt.Errorf("chans: unsupported channel count %d (want one of %v)", n, AllCounts())
	}
	return cc, nil
}

// UnmarshalText implements encoding.TextUnmarshaler so counts can be
// given as strings in config files
func (cc *ChannelCount) UnmarshalText(b []byte) error {
	n, err := ParseChannelCount(string(b))
	if err != nil {
		return err
	}
	*cc = n
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (cc ChannelCount) MarshalText() ([]byte, error) {
	return []byte(cc.String()), nil
}
