// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package wctrl implements the hierarchical well-group control tree: the
// Well Node / Group Node types (§3), Production/Injection Specs, and the
// Group Control Engine's recursive constraint pass and target-allocation
// machinery (§4.6). Gofem has no well model to ground this on directly;
// the tree/array traversal idiom and the `New`-by-name registry pattern
// are borrowed from the teacher's domain-dispatch conventions (the string
// mode tags below mirror the teacher's string element-type tags, e.g.
// "solid-liquid", rather than a closed Go iota enum) and from
// `fem/domain.go`'s node/array bookkeeping.
package wctrl

import "github.com/cpmech/gosl/chk"

// ProdMode is a production control mode (§6)
type ProdMode string

const (
	ProdNONE ProdMode = "NONE"
	ProdORAT ProdMode = "ORAT"
	ProdWRAT ProdMode = "WRAT"
	ProdGRAT ProdMode = "GRAT"
	ProdLRAT ProdMode = "LRAT"
	ProdCRAT ProdMode = "CRAT"
	ProdRESV ProdMode = "RESV"
	ProdPRBL ProdMode = "PRBL"
	ProdBHP  ProdMode = "BHP"
	ProdTHP  ProdMode = "THP"
	ProdGRUP ProdMode = "GRUP"
	ProdFLD  ProdMode = "FLD"
)

// InjMode is an injection control mode (§6)
type InjMode string

const (
	InjNONE InjMode = "NONE"
	InjRATE InjMode = "RATE"
	InjRESV InjMode = "RESV"
	InjBHP  InjMode = "BHP"
	InjTHP  InjMode = "THP"
	InjREIN InjMode = "REIN"
	InjVREP InjMode = "VREP"
	InjGRUP InjMode = "GRUP"
	InjFLD  InjMode = "FLD"
)

// ProdProcedure is a group's response to a production-constraint violation (§6)
type ProdProcedure string

const (
	ProcNoneP ProdProcedure = "NONE_P"
	ProcRATE  ProdProcedure = "RATE"
	ProcWELL  ProdProcedure = "WELL"
)

// ControlType is a leaf well-control slot's kind (§6)
type ControlType string

const (
	CtrlBHP           ControlType = "BHP"
	CtrlTHP           ControlType = "THP"
	CtrlReservoirRate ControlType = "RESERVOIR_RATE"
	CtrlSurfaceRate   ControlType = "SURFACE_RATE"
)

// WellKind distinguishes a producer from an injector
type WellKind int

const (
	Producer WellKind = iota
	Injector
)

// Phase indexes the three black-oil components
type Phase int

const (
	PhaseOil Phase = iota
	PhaseWater
	PhaseGas
)

// Rates holds summed per-phase surface and reservoir rates, signed per the
// §3 convention (producers flow negative)
type Rates struct {
	Surf [3]float64
	Res  [3]float64
}

// Add returns the elementwise sum of two Rates
func (r Rates) Add(o Rates) Rates {
	var s Rates
	for p := 0; p < 3; p++ {
		s.Surf[p] = r.Surf[p] + o.Surf[p]
		s.Res[p] = r.Res[p] + o.Res[p]
	}
	return s
}

// rateByMode aggregates Rates into the scalar named by mode, per the §4.6
// "rateByMode" table. Exactly one of prodMode/injMode is consulted,
// selected by isInj. Any unhandled mode is a programmer error at this
// layer (§4.6, §9 "tagged error returns"), returned as an error rather
// than a panic since a caller may want to keep running other wells.
func rateByMode(r Rates, prodMode ProdMode, injMode InjMode, isInj bool) (float64, error) {
	if !isInj {
		switch prodMode {
		case ProdORAT:
			return r.Surf[PhaseOil], nil
		case ProdWRAT:
			return r.Surf[PhaseWater], nil
		case ProdGRAT:
			return r.Surf[PhaseGas], nil
		case ProdLRAT:
			return r.Surf[PhaseOil] + r.Surf[PhaseWater], nil
		case ProdRESV:
			return r.Res[0] + r.Res[1] + r.Res[2], nil
		}
		return 0, chk.Err("wctrl.rateByMode: production mode %q has no aggregation rule at this layer", prodMode)
	}
	switch injMode {
	case InjRATE:
		return r.Surf[0] + r.Surf[1] + r.Surf[2], nil
	case InjRESV:
		return r.Res[0] + r.Res[1] + r.Res[2], nil
	}
	return 0, chk.Err("wctrl.rateByMode: injection mode %q has no aggregation rule at this layer", injMode)
}

// distByProdMode returns the unit phase-distribution vector for a
// production control mode (§4.6 "Rate distribution vector by mode")
func distByProdMode(mode ProdMode) (dist [3]float64, err error) {
	switch mode {
	case ProdORAT:
		dist[PhaseOil] = 1
	case ProdWRAT:
		dist[PhaseWater] = 1
	case ProdGRAT:
		dist[PhaseGas] = 1
	case ProdLRAT:
		dist[PhaseOil], dist[PhaseWater] = 1, 1
	case ProdRESV:
		dist = [3]float64{1, 1, 1}
	default:
		err = chk.Err("wctrl.distByProdMode: mode %q has no install rule", mode)
	}
	return
}

// ProdSpec holds a node's production target/limit tuple (§3 "Production/Injection Spec")
type ProdSpec struct {
	Targets    map[ProdMode]float64 // -1 or absent == unset
	ActiveMode ProdMode
	Procedure  ProdProcedure
	BHPLimit   float64
	THPLimit   float64
}

// LimitFor returns the target for mode m, or -1 if unset
func (s *ProdSpec) LimitFor(m ProdMode) float64 {
	if s == nil {
		return -1
	}
	if v, ok := s.Targets[m]; ok {
		return v
	}
	return -1
}

// InjSpec holds a node's injection target/limit tuple plus the explicit
// REIN/VREP policy fractions (§3, §4.6)
type InjSpec struct {
	Targets           map[InjMode]float64
	ActiveMode        InjMode
	Type              Phase // the injected phase, used by REIN to pick totalProduction's phase
	ReinjectionFraction float64
	VoidageFraction     float64
	BHPLimit            float64
	THPLimit            float64
}

// LimitFor returns the target for mode m, or -1 if unset
func (s *InjSpec) LimitFor(m InjMode) float64 {
	if s == nil {
		return -1
	}
	if v, ok := s.Targets[m]; ok {
		return v
	}
	return -1
}
