// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package facade defines the narrow external contracts the core consumes:
// the Fluid/Grid Facade and the Linear System (Jacobian/residual). The
// Well Input types are NOT here (see package inp); this package holds only
// the per-cell/per-step read contracts and the additive write contract
// described in spec §6.
//
// This package replaces the teacher's fem package. fem's domain assembly,
// time integration (Newmark/HHT/θ-method), essential-BC elimination,
// output encoding and CLI driver have no analog here: grid topology, the
// linear solver, output writers, and the outer Newton loop are explicit
// out-of-scope external collaborators (spec §1). Only the Elem-interface
// idea (AddToRhs/AddToKb footprint writes against a Solution-like state,
// ele/element.go + ele/solution.go) survives, generalised from FEM degrees
// of freedom to reservoir primary variables.
package facade

import (
	"github.com/cpmech/gosl/la"
)

// Direction enumerates the six face-tag directions a grid reports for a
// connection face (§6 "Fluid/Grid Facade")
type Direction int

const (
	DirXneg Direction = iota
	DirXpos
	DirYneg
	DirYpos
	DirZneg
	DirZpos
)

// CellState is what the Fluid/Grid Facade exposes for one cell (§6)
type CellState struct {
	WaterPressure  ADValue // water-phase pressure, carries derivatives w.r.t. this cell's primary variables
	WaterDensity   ADValue
	WaterViscosity ADValue
	RefDensity     float64 // reference density
	InvFVF         float64 // inverse formation volume factor (1/Bw)
	Rs             float64 // saturated dissolution factor (where applicable)
}

// ADValue is the minimal value+derivatives contract the facade needs from
// any AD-carrying quantity; ad.Scalar satisfies it without facade importing
// the ad package, keeping the dependency direction core->facade one way.
type ADValue interface {
	Value() float64
	Derivative(i int) float64
	Nvars() int
}

// FluidGrid is the external Fluid/Grid Facade (§6, out of scope to implement)
type FluidGrid interface {
	Cell(cellID int) (CellState, error)
	CellDepth(cellID int) float64
	FaceArea(cellID int, dir Direction) float64
}

// LinearSystem is the external Jacobian/residual contract (§6): a
// block-sparse Jacobian addressable as J[row_cell][col_cell][eq,var] and a
// residual addressable as R[cell][eq]. Additive updates only.
type LinearSystem struct {
	Kb  *la.Triplet // Jacobian == dR/dy, additive entries only
	Res []float64   // residual vector, indexed by global equation number
}

// NewLinearSystem allocates a LinearSystem with nnz expected nonzeros and
// neq equations, mirroring fem/domain.go's `o.Kb = new(la.Triplet)` plus
// explicit sizing
func NewLinearSystem(neq, nnz int) *LinearSystem {
	kb := new(la.Triplet)
	kb.Init(neq, neq, nnz)
	return &LinearSystem{Kb: kb, Res: make([]float64, neq)}
}

// AddResidual subtracts value from the residual row of equation eq, per the
// "subtract Qᵢ.value() from the water-component residual row" convention
// in §4.3
func (ls *LinearSystem) AddResidual(eq int, value float64) {
	ls.Res[eq] -= value
}

// AddJacobian adds value to the Jacobian entry (row, col), per the
// "subtract Qᵢ.derivative(k) from J[c][c][water,k]" convention in §4.3;
// callers negate before calling where the spec calls for subtraction.
func (ls *LinearSystem) AddJacobian(row, col int, value float64) {
	ls.Kb.Put(row, col, value)
}

// ResetResidual zeroes the residual vector (new Newton iteration)
func (ls *LinearSystem) ResetResidual() {
	for i := range ls.Res {
		ls.Res[i] = 0
	}
}
