// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aquifer

import (
	"github.com/cpmech/goresim/ad"
	"github.com/cpmech/goresim/ele"
	"github.com/cpmech/goresim/facade"
	mdlaq "github.com/cpmech/goresim/mdl/aquifer"
	"github.com/cpmech/gosl/chk"
)

// Gravity is the constant used in the potential-drop equilibration (§4.3)
const Gravity = 9.81

// RuntimeState holds the per-aquifer runtime quantities described in spec
// §3 "Aquifer Runtime State"
type RuntimeState struct {
	PPrev   []float64  // previous-step water pressure per connection (frozen)
	RhoW    []ad.Scalar // current water density per connection
	Q       []ad.Scalar // per-step inflow rate per connection (AD)
	W       float64     // cumulative flux; value-only accumulator, see DESIGN.md
	MuWater float64     // effective aquifer viscosity, snapshotted at BeforeStep
	T       float64     // elapsed simulated time at the start of the current step
	Dt      float64     // current step length
}

// Engine is the Carter-Tracy analytical aquifer engine: a reservoir-core
// Element that injects water into its connected boundary cells via the
// influence-function convolution (§4.3). Grounded on the teacher's
// ele.Element AddToRhs/AddToKb footprint-write convention, generalised from
// a finite-element natural boundary condition to an analytical source term.
var _ ele.Element = (*Engine)(nil)

type Engine struct {
	id    int
	Prms  mdlaq.Parameters
	Table *mdlaq.Table
	Conns *ConnectionSet
	Grid  facade.FluidGrid
	State RuntimeState

	NPrimaryPerCell int // number of primary variables tracked per cell
	WaterEqRow      int // local row offset of the water-component equation within a cell's block
	BlockIndex      func(cellID int) int // maps a cell id to its base row/column index in the global system

	P0 float64 // resolved initial aquifer pressure, after defaulting if requested
}

// NewEngine constructs a Carter-Tracy engine for one aquifer: it
// initialises the connection set against the grid and resolves the
// (possibly defaulted) initial aquifer pressure p0
func NewEngine(id int, prms mdlaq.Parameters, table *mdlaq.Table, conns *ConnectionSet,
	grid facade.FluidGrid, nPrimaryPerCell, waterEqRow int, blockIndex func(cellID int) int) (e *Engine, err error) {
	if conns == nil || conns.N() == 0 {
		return nil, chk.Err("aquifer.NewEngine: connection set must have at least one connection")
	}
	if err = conns.InitializeConnections(grid); err != nil {
		return
	}
	n := conns.N()
	e = &Engine{
		id:              id,
		Prms:            prms,
		Table:           table,
		Conns:           conns,
		Grid:            grid,
		NPrimaryPerCell: nPrimaryPerCell,
		WaterEqRow:      waterEqRow,
		BlockIndex:      blockIndex,
		State: RuntimeState{
			PPrev: make([]float64, n),
			RhoW:  make([]ad.Scalar, n),
			Q:     make([]ad.Scalar, n),
		},
	}
	if err = e.equilibrate(); err != nil {
		return nil, err
	}
	return
}

// Id returns this engine's aquifer id
func (e *Engine) Id() int { return e.id }

// equilibrate resolves p0 per §4.3: either the supplied constant, or the
// area-weighted equilibration mean over all connections
func (e *Engine) equilibrate() (err error) {
	if !e.Prms.P0Defaulted {
		e.P0 = e.Prms.P0
		return nil
	}
	sum := 0.0
	for _, c := range e.Conns.Conns {
		cell, cerr := e.Grid.Cell(c.CellID)
		if cerr != nil {
			return cerr
		}
		pRes := cell.WaterPressure.Value()
		rho := cell.WaterDensity.Value()
		sum += (pRes - rho*Gravity*(c.CellDepth-e.Prms.Datum)) * c.AreaFraction
	}
	e.P0 = sum
	return nil
}

// toScalar converts a facade.ADValue into an ad.Scalar with n derivative slots
func toScalar(v facade.ADValue, n int) ad.Scalar {
	s := ad.New(v.Value(), n)
	for k := 0; k < n && k < v.Nvars(); k++ {
		s.D[k] = v.Derivative(k)
	}
	return s
}

// BeforeStep snapshots p_w,prev and the effective viscosity at the start of
// a new timestep (§3 "Aquifer Runtime State" lifecycle)
func (e *Engine) BeforeStep(sol *ele.Solution) (err error) {
	for i, c := range e.Conns.Conns {
		cell, cerr := e.Grid.Cell(c.CellID)
		if cerr != nil {
			return cerr
		}
		e.State.PPrev[i] = cell.WaterPressure.Value()
		if i == 0 {
			e.State.MuWater = cell.WaterViscosity.Value()
		}
	}
	e.State.T = sol.T
	e.State.Dt = sol.Dt
	return nil
}

// assemble recomputes the per-connection inflow rates Qᵢ(i) for the
// current primary-variable state (§4.3 "assemble: recompute everything")
func (e *Engine) assemble() (err error) {
	tc := e.Prms.TimeConstant(e.State.MuWater)
	beta := e.Prms.InfluxConstant()
	tD := e.State.T / tc
	tDPrime := (e.State.T + e.State.Dt) / tc
	pItd := e.Table.PD(tDPrime)
	pItdPrime := e.Table.DPDtD(tDPrime)
	denom := pItd - tD*pItdPrime
	if denom <= 0 {
		return chk.Err("aquifer.Engine[%d].assemble: invalid influence fit: PItd-tD.PItd'=%g is nonpositive", e.id, denom)
	}
	b := beta / (tc * denom)
	for i, c := range e.Conns.Conns {
		cell, cerr := e.Grid.Cell(c.CellID)
		if cerr != nil {
			return cerr
		}
		pCurr := toScalar(cell.WaterPressure, e.NPrimaryPerCell)
		rhoW := toScalar(cell.WaterDensity, e.NPrimaryPerCell)
		rhoW.ClearDerivatives() // density crosses into this footprint from a different quantity; see ad.Scalar contract
		e.State.RhoW[i] = rhoW

		dpa := e.P0 + rhoW.V*Gravity*(c.CellDepth-e.Prms.Datum) - e.State.PPrev[i]
		a := (beta*dpa - e.State.W*pItdPrime) / tc / denom

		diff := pCurr.AddFloat(-e.State.PPrev[i])
		inner := diff.Scale(-b).AddFloat(a)
		e.State.Q[i] = inner.Scale(c.AreaFraction)
	}
	return nil
}

// AfterStep commits the converged step: W ← W + Σᵢ Qᵢ·Δt (§4.3)
func (e *Engine) AfterStep(sol *ele.Solution) (err error) {
	sum := 0.0
	for _, q := range e.State.Q {
		sum += q.V
	}
	e.State.W += sum * e.State.Dt
	return nil
}

// AddToRhs subtracts each connection's Qᵢ.value() from the water-component
// residual row of its cell (§4.3 "Assembly")
func (e *Engine) AddToRhs(ls *facade.LinearSystem, sol *ele.Solution) (err error) {
	if err = e.assemble(); err != nil {
		return
	}
	for i, c := range e.Conns.Conns {
		row := e.BlockIndex(c.CellID) + e.WaterEqRow
		ls.AddResidual(row, e.State.Q[i].V)
	}
	return nil
}

// AddToKb subtracts each connection's Qᵢ.derivative(k) from J[c][c][water,k]
// (§4.3 "Assembly"). Must be called after AddToRhs within the same Newton
// iteration, since it reuses the Qᵢ values recomputed there.
func (e *Engine) AddToKb(ls *facade.LinearSystem, sol *ele.Solution) (err error) {
	for i, c := range e.Conns.Conns {
		base := e.BlockIndex(c.CellID)
		row := base + e.WaterEqRow
		for k := 0; k < e.NPrimaryPerCell; k++ {
			d := e.State.Q[i].Derivative(k)
			if d == 0 {
				continue
			}
			ls.AddJacobian(row, base+k, -d)
		}
	}
	return nil
}
