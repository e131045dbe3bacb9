// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package opsin

import (
	"fmt"
	"strconv"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
)

// LogPrec is precision for saving float values in rate tables
const LogPrec = 4

// ConfigRateTable configures the columns of a voltage rate table
func ConfigRateTable(dt *etable.Table) {
	dt.SetMetaData("name", "OpsinRates")
	dt.SetMetaData("read-only", "true")
	dt.SetMetaData("precision", strconv.Itoa(LogPrec))

	sch := etable.Schema{
		{"V", etensor.FLOAT64, nil, nil},
		{"Gd1", etensor.FLOAT64, nil, nil},
		{"Gr", etensor.FLOAT64, nil, nil},
		{"IVFact", etensor.FLOAT64, nil, nil},
	}
	dt.SetFromSchema(sch, 0)
}

// RateTable runs the voltage dependent rate functions from vstart to vend
// (inclusive, mV) in vstep increments, one row per voltage.
func (op *Params) RateTable(vstart, vend, vstep float32) (*etable.Table, error) {
	if !(vstep > 0) || vend < vstart {
		return nil, fmt.Errorf("opsin: bad voltage range %g..%g step %g", vstart, vend, vstep)
	}
	dt := &etable.Table{}
	ConfigRateTable(dt)
	nv := int((vend-vstart)/vstep) + 1
	dt.SetNumRows(nv)
	for vi := 0; vi < nv; vi++ {
		v := vstart + float32(vi)*vstep
		dt.SetCellFloat("V", vi, float64(v))
		dt.SetCellFloat("Gd1", vi, float64(op.Gd1(v)))
		dt.SetCellFloat("Gr", vi, float64(op.Gr(v)))
		dt.SetCellFloat("IVFact", vi, float64(op.IVFact(v)))
	}
	return dt, nil
}
