// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aquifer

import (
	"github.com/cpmech/goresim/numfit"
	"github.com/cpmech/gosl/chk"
)

// Table holds the ordered (tD, pD) influence-function samples plus the
// fitted line pD(tD) ≈ c0 + c1·tD (§3 "Influence Table", §4.2).
//
// get_influence_table_values in the original is present but empty; the
// currently-used code path substitutes a linear fit (spec §9 open
// question). This module implements only that linear fit — no spline
// evaluator is provided.
type Table struct {
	TD        []float64 // dimensionless time samples, strictly increasing
	PDSamples []float64 // dimensionless pressure samples
	Fit       numfit.Coeffs
}

// NewTable validates the samples (≥2, strictly increasing in tD) and fits
// the order-1 line through them via numfit.Fit
func NewTable(tD, pD []float64) (t *Table, err error) {
	if len(tD) < 2 {
		err = chk.Err("aquifer.NewTable: insufficient_samples: need >= 2 samples, got %d", len(tD))
		return
	}
	coeffs, err := numfit.Fit(tD, pD, 1, true)
	if err != nil {
		return
	}
	t = &Table{TD: tD, PDSamples: pD, Fit: coeffs}
	return
}

// PD returns the fitted dimensionless pressure at dimensionless time tD
func (t *Table) PD(tD float64) float64 {
	return t.Fit.Eval(tD)
}

// DPDtD returns the fitted derivative dpD/dtD, constant for a linear fit
func (t *Table) DPDtD(tD float64) float64 {
	return t.Fit.Slope(tD)
}

// C0 returns the fitted intercept
func (t *Table) C0() float64 { return t.Fit.C[0] }

// C1 returns the fitted slope
func (t *Table) C1() float64 { return t.Fit.C[1] }
