// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msw

import (
	"github.com/cpmech/goresim/ad"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// ValveStatus enumerates a valve's open/shut state
type ValveStatus int

const (
	ValveOpen ValveStatus = iota
	ValveShut
)

// Valve implements a constriction-orifice pressure drop:
//
//  ΔP = ρ_mix · Q · |Q| / (2 · Cv² · Av²)
//
// A SHUT valve does not use PressureDrop at all: per §4.4 it produces the
// trivial equation WQTotal(s)=0 with zero friction drop, handled by the
// segment evaluator directly (ele/msw). PressureDrop is only ever called
// while the valve Status is ValveOpen.
type Valve struct {
	Cv     float64 // flow coefficient
	Area   float64 // constriction area Av
	Status ValveStatus
}

// Init initialises this structure
func (o *Valve) Init(prms dbf.Params) error {
	for _, p := range prms {
		switch p.N {
		case "cv":
			o.Cv = p.V
		case "area":
			o.Area = p.V
		case "shut":
			if p.V > 0 {
				o.Status = ValveShut
			} else {
				o.Status = ValveOpen
			}
		}
	}
	if o.Cv <= 0 {
		return chk.Err("Valve: cv=%g must be positive", o.Cv)
	}
	if o.Area <= 0 {
		return chk.Err("Valve: area=%g must be positive", o.Area)
	}
	return nil
}

// GetPrms gets (an example) of parameters
func (o Valve) GetPrms(example bool) dbf.Params {
	shut := 0.0
	if o.Status == ValveShut {
		shut = 1.0
	}
	if example {
		return dbf.Params{
			&dbf.P{N: "cv", V: 0.8},
			&dbf.P{N: "area", V: 1e-3},
			&dbf.P{N: "shut", V: 0},
		}
	}
	return dbf.Params{
		&dbf.P{N: "cv", V: o.Cv},
		&dbf.P{N: "area", V: o.Area},
		&dbf.P{N: "shut", V: shut},
	}
}

// PressureDrop returns ΔP = ρ_mix·Q·|Q| / (2·Cv²·Av²). Must not be called
// while Status==ValveShut; the caller (ele/msw) handles that case directly.
func (o Valve) PressureDrop(f FlowState) (dp ad.Scalar, err error) {
	if o.Status == ValveShut {
		err = chk.Err("Valve.PressureDrop: valve is shut; caller must use the trivial WQTotal=0 equation instead")
		return
	}
	factor := 1.0 / (2.0 * o.Cv * o.Cv * o.Area * o.Area)
	dp = f.Q.Mul(f.Q.Abs()).Mul(f.RhoMix).Scale(factor)
	return
}
