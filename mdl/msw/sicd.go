// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msw

import (
	"github.com/cpmech/goresim/ad"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// SpiralICD implements the quadratic spiral-ICD pressure-drop correlation:
//
//  ΔP = strength · ρ_mix · Q · |Q|
//
// (sign-preserving quadratic drop, standard spiral-ICD correlation)
type SpiralICD struct {
	Strength float64 // device strength
}

// Init initialises this structure
func (o *SpiralICD) Init(prms dbf.Params) error {
	for _, p := range prms {
		if p.N == "strength" {
			o.Strength = p.V
		}
	}
	if o.Strength < 0 {
		return chk.Err("SpiralICD: strength=%g must be non-negative", o.Strength)
	}
	return nil
}

// GetPrms gets (an example) of parameters
func (o SpiralICD) GetPrms(example bool) dbf.Params {
	if example {
		return dbf.Params{&dbf.P{N: "strength", V: 1e-3}}
	}
	return dbf.Params{&dbf.P{N: "strength", V: o.Strength}}
}

// PressureDrop returns ΔP = strength · ρ_mix · Q · |Q|
func (o SpiralICD) PressureDrop(f FlowState) (dp ad.Scalar, err error) {
	dp = f.Q.Mul(f.Q.Abs()).Mul(f.RhoMix).Scale(o.Strength)
	return
}
