// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aquifer

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_table01(tst *testing.T) {

	chk.PrintTitle("table01: pulse-scenario table (tD,pD)={(0,0),(10,5)}")

	table, err := NewTable([]float64{0, 10}, []float64{0, 5})
	if err != nil {
		tst.Errorf("NewTable failed: %v\n", err)
		return
	}
	chk.Float64(tst, "c0", 1e-10, table.C0(), 0.0)
	chk.Float64(tst, "c1", 1e-10, table.C1(), 0.5)
	chk.Float64(tst, "PD(10)", 1e-10, table.PD(10), 5.0)
	chk.Float64(tst, "dPD/dtD", 1e-10, table.DPDtD(10), 0.5)
}

func Test_table02(tst *testing.T) {

	chk.PrintTitle("table02: too few samples")

	_, err := NewTable([]float64{0}, []float64{0})
	if err == nil {
		tst.Errorf("expected insufficient_samples error\n")
	}
}

func Test_params01(tst *testing.T) {

	chk.PrintTitle("params01: GetPrms/Init round-trip of the example parameters")

	var p Parameters
	err := p.Init(p.GetPrms(true))
	if err != nil {
		tst.Errorf("Init failed: %v\n", err)
		return
	}
	// sanity: round-trip GetPrms -> Init
	var p2 Parameters
	err = p2.Init(p.GetPrms(false))
	if err != nil {
		tst.Errorf("Init (roundtrip) failed: %v\n", err)
		return
	}
	chk.Float64(tst, "porosity roundtrip", 1e-15, p2.Porosity, p.Porosity)
	chk.Float64(tst, "r0 roundtrip", 1e-15, p2.R0, p.R0)
}
