// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msw

import (
	"math"

	"github.com/cpmech/goresim/ad"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// AutoICD implements an autonomous-ICD pressure-drop correlation: the
// spiral-ICD quadratic drop scaled by a watercut/gascut-dependent choking
// factor that raises the drop (restricts the device further) as the water
// or gas cut rises, mimicking the self-regulating behaviour of a real AICD.
//
//  ΔP = strength · ρ_mix · Q · |Q| · (1 + wFac·waterCut^wExp + gFac·gasCut^gExp)
type AutoICD struct {
	Strength float64
	WaterFac float64
	WaterExp float64
	GasFac   float64
	GasExp   float64
}

// Init initialises this structure
func (o *AutoICD) Init(prms dbf.Params) error {
	o.WaterExp, o.GasExp = 1.0, 1.0
	for _, p := range prms {
		switch p.N {
		case "strength":
			o.Strength = p.V
		case "waterFac":
			o.WaterFac = p.V
		case "waterExp":
			o.WaterExp = p.V
		case "gasFac":
			o.GasFac = p.V
		case "gasExp":
			o.GasExp = p.V
		}
	}
	if o.Strength < 0 {
		return chk.Err("AutoICD: strength=%g must be non-negative", o.Strength)
	}
	return nil
}

// GetPrms gets (an example) of parameters
func (o AutoICD) GetPrms(example bool) dbf.Params {
	if example {
		return dbf.Params{
			&dbf.P{N: "strength", V: 1e-3},
			&dbf.P{N: "waterFac", V: 0.5},
			&dbf.P{N: "waterExp", V: 1.0},
			&dbf.P{N: "gasFac", V: 0.2},
			&dbf.P{N: "gasExp", V: 1.0},
		}
	}
	return dbf.Params{
		&dbf.P{N: "strength", V: o.Strength},
		&dbf.P{N: "waterFac", V: o.WaterFac},
		&dbf.P{N: "waterExp", V: o.WaterExp},
		&dbf.P{N: "gasFac", V: o.GasFac},
		&dbf.P{N: "gasExp", V: o.GasExp},
	}
}

// PressureDrop returns the autonomous-ICD drop for the given flow state.
// The choking factor is evaluated on the (value-only) watercut/gascut —
// its derivatives are cleared before use, matching the §4.1 rule that any
// non-local / auxiliary operand feeding into an AD expression must not
// contribute spurious cross terms to the local Jacobian row.
func (o AutoICD) PressureDrop(f FlowState) (dp ad.Scalar, err error) {
	wc := f.WaterCut.V
	gc := f.GasCut.V
	if wc < 0 {
		wc = 0
	}
	if gc < 0 {
		gc = 0
	}
	choke := 1.0 + o.WaterFac*math.Pow(wc, o.WaterExp) + o.GasFac*math.Pow(gc, o.GasExp)
	dp = f.Q.Mul(f.Q.Abs()).Mul(f.RhoMix).Scale(o.Strength * choke)
	return
}
