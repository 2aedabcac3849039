// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wctrl

import (
	"github.com/cpmech/goresim/ad"
	"github.com/cpmech/goresim/ele/msw"
	"github.com/cpmech/gosl/chk"
)

// ControlEqFor builds the top-segment control equation (§4.5
// ControlEqFunc, §4.6 "Well-control type (leaf slot)") for well w's
// currently installed control slot. Pressure-type controls (BHP/THP)
// are checked to tolPressure; rate-type controls (SURFACE_RATE/
// RESERVOIR_RATE) are checked to tolWells, per §8 "Top-segment residual
// satisfies the chosen control equation to getControlTolerance(mode)".
// THP is not given its own surface-to-bottomhole hydraulic correlation
// here — the segment tree's own hydrostatic/friction terms already
// carry pressure from segment 0 to surface, so a THP target is applied
// at the same row as BHP.
func ControlEqFor(w *WellNode, tolWells, tolPressure float64) msw.ControlEqFunc {
	return func(st *msw.State) (ad.Scalar, float64, error) {
		if w.CurrentControl < 0 || w.CurrentControl >= len(w.Controls) {
			return ad.Scalar{}, 0, chk.Err("wctrl: well %q has no active control slot installed", w.Name())
		}
		cs := w.Controls[w.CurrentControl]
		tol, err := getControlTolerance(cs.Type, tolWells, tolPressure)
		if err != nil {
			return ad.Scalar{}, 0, err
		}
		switch cs.Type {
		case CtrlBHP, CtrlTHP:
			return st.SPres.AddFloat(-cs.Target), tol, nil
		case CtrlSurfaceRate, CtrlReservoirRate:
			return st.WQTotal.AddFloat(-cs.Target), tol, nil
		}
		return ad.Scalar{}, 0, chk.Err("wctrl: well %q has unhandled control type %q", w.Name(), cs.Type)
	}
}

// getControlTolerance returns the tolerance a control slot's residual
// must satisfy, selecting between the rate and pressure tolerances by
// control type (§8 "getControlTolerance(mode)")
func getControlTolerance(ctype ControlType, tolWells, tolPressure float64) (float64, error) {
	switch ctype {
	case CtrlBHP, CtrlTHP:
		return tolPressure, nil
	case CtrlSurfaceRate, CtrlReservoirRate:
		return tolWells, nil
	}
	return 0, chk.Err("wctrl.getControlTolerance: unhandled control type %q", ctype)
}
