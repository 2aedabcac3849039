// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package aquifer implements the analytical-aquifer parameter and
// influence-function data model: the Carter-Tracy constants tuple (§3
// "Aquifer Parameters") and the tabulated dimensionless influence function
// with its least-squares line fit (§3 "Influence Table").
package aquifer

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Parameters holds the immutable tuple describing one Carter-Tracy aquifer
//  References: spec §3 "Aquifer Parameters", §4.3
type Parameters struct {

	// rock/fluid constants
	Porosity float64 // φ
	Ct       float64 // total compressibility Cₜ
	R0       float64 // inner radius r₀
	Perm     float64 // permeability kₐ
	C1       float64 // unit constant c₁ (time-constant scaling)
	C2       float64 // unit constant c₂ (influx-constant scaling)
	Thick    float64 // thickness h
	Theta    float64 // subtended angle θ
	Datum    float64 // datum depth d₀

	// initial condition
	P0Defaulted bool    // whether P0 is to be computed by area-weighted equilibration
	P0          float64 // initial aquifer pressure p₀ (ignored if P0Defaulted)

	// identifiers (resolved externally against the PVT/fluid and influence-table databases)
	WaterPVTTable  string
	InfluenceTable string
	AquiferID      string
}

// Init reads Parameters from a parameter database, mirroring the teacher's
// mdl/retention.Model.Init / mdl/porous.Model.Init convention of reading a
// dbf.Params set with named floors and error checks instead of panicking.
func (p *Parameters) Init(prms dbf.Params) (err error) {
	p.P0Defaulted = true
	for _, prm := range prms {
		switch prm.N {
		case "phi":
			p.Porosity = prm.V
		case "ct":
			p.Ct = prm.V
		case "r0":
			p.R0 = prm.V
		case "perm":
			p.Perm = prm.V
		case "c1":
			p.C1 = prm.V
		case "c2":
			p.C2 = prm.V
		case "h":
			p.Thick = prm.V
		case "theta":
			p.Theta = prm.V
		case "d0":
			p.Datum = prm.V
		case "p0":
			p.P0 = prm.V
			p.P0Defaulted = false
		}
	}
	if p.Porosity <= 0 {
		return chk.Err("aquifer: porosity phi=%g must be positive", p.Porosity)
	}
	if p.Ct <= 0 {
		return chk.Err("aquifer: total compressibility ct=%g must be positive", p.Ct)
	}
	if p.R0 <= 0 {
		return chk.Err("aquifer: inner radius r0=%g must be positive", p.R0)
	}
	if p.Perm <= 0 {
		return chk.Err("aquifer: permeability perm=%g must be positive", p.Perm)
	}
	if p.C1 <= 0 || p.C2 <= 0 {
		return chk.Err("aquifer: unit constants c1=%g, c2=%g must be positive", p.C1, p.C2)
	}
	if p.Thick <= 0 {
		return chk.Err("aquifer: thickness h=%g must be positive", p.Thick)
	}
	if p.Theta <= 0 {
		return chk.Err("aquifer: subtended angle theta=%g must be positive", p.Theta)
	}
	return nil
}

// GetPrms gets (an example) of parameters, mirroring the teacher's
// Model.GetPrms(example bool) convention
func (p Parameters) GetPrms(example bool) dbf.Params {
	if example {
		return dbf.Params{
			&dbf.P{N: "phi", V: 0.2},
			&dbf.P{N: "ct", V: 1e-5},
			&dbf.P{N: "r0", V: 1000},
			&dbf.P{N: "perm", V: 200},
			&dbf.P{N: "c1", V: 0.0008527},
			&dbf.P{N: "c2", V: 6.328},
			&dbf.P{N: "h", V: 50},
			&dbf.P{N: "theta", V: 360},
			&dbf.P{N: "d0", V: 1000},
		}
	}
	return dbf.Params{
		&dbf.P{N: "phi", V: p.Porosity},
		&dbf.P{N: "ct", V: p.Ct},
		&dbf.P{N: "r0", V: p.R0},
		&dbf.P{N: "perm", V: p.Perm},
		&dbf.P{N: "c1", V: p.C1},
		&dbf.P{N: "c2", V: p.C2},
		&dbf.P{N: "h", V: p.Thick},
		&dbf.P{N: "theta", V: p.Theta},
		&dbf.P{N: "d0", V: p.Datum},
	}
}

// InfluxConstant returns β = c₂·h·θ·φ·Cₜ·r₀² (§4.3)
func (p Parameters) InfluxConstant() float64 {
	return p.C2 * p.Thick * p.Theta * p.Porosity * p.Ct * p.R0 * p.R0
}

// TimeConstant returns Tc = μ_w·φ·Cₜ·r₀² / (kₐ·c₁) (§4.3), given the
// effective aquifer water viscosity μ_w (a runtime, not a parameter —
// see Runtime State in §3)
func (p Parameters) TimeConstant(muWater float64) float64 {
	return muWater * p.Porosity * p.Ct * p.R0 * p.R0 / (p.Perm * p.C1)
}
