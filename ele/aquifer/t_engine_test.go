// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aquifer

import (
	"testing"

	"github.com/cpmech/goresim/ad"
	"github.com/cpmech/goresim/ele"
	"github.com/cpmech/goresim/facade"
	mdlaq "github.com/cpmech/goresim/mdl/aquifer"
	"github.com/cpmech/gosl/chk"
)

// fakeGrid is a minimal facade.FluidGrid stand-in for testing
type fakeGrid struct {
	pressure map[int]ad.Scalar
	density  map[int]ad.Scalar
	viscos   map[int]ad.Scalar
	depth    map[int]float64
	area     map[int]float64
}

func (g *fakeGrid) Cell(cellID int) (facade.CellState, error) {
	return facade.CellState{
		WaterPressure:  g.pressure[cellID],
		WaterDensity:   g.density[cellID],
		WaterViscosity: g.viscos[cellID],
	}, nil
}

func (g *fakeGrid) CellDepth(cellID int) float64 { return g.depth[cellID] }

func (g *fakeGrid) FaceArea(cellID int, dir facade.Direction) float64 { return g.area[cellID] }

func Test_engine01(tst *testing.T) {

	chk.PrintTitle("engine01: single-connection aquifer equilibration")

	// one cell, depth = d0 = 1000, rho_w = 1000, g = 9.81, p_w,res = 2e7, p0 defaulted
	grid := &fakeGrid{
		pressure: map[int]ad.Scalar{0: ad.Variable(2e7, 0, 1)},
		density:  map[int]ad.Scalar{0: ad.Constant(1000, 1)},
		viscos:   map[int]ad.Scalar{0: ad.Constant(1e-3, 1)},
		depth:    map[int]float64{0: 1000},
		area:     map[int]float64{0: 10},
	}
	prms := mdlaq.Parameters{
		Porosity: 0.2, Ct: 1e-5, R0: 1000, Perm: 200,
		C1: 0.0008527, C2: 6.328, Thick: 50, Theta: 360, Datum: 1000,
		P0Defaulted: true,
	}
	table, err := mdlaq.NewTable([]float64{0, 10}, []float64{0, 5})
	if err != nil {
		tst.Errorf("NewTable failed: %v\n", err)
		return
	}
	conns, err := NewConnectionSet([]int{0}, []facade.Direction{facade.DirXpos}, []float64{1}, []float64{1})
	if err != nil {
		tst.Errorf("NewConnectionSet failed: %v\n", err)
		return
	}
	eng, err := NewEngine(0, prms, table, conns, grid, 1, 0, func(cellID int) int { return cellID })
	if err != nil {
		tst.Errorf("NewEngine failed: %v\n", err)
		return
	}
	chk.Float64(tst, "p0", 1e-6, eng.P0, 2e7)

	sol := &ele.Solution{T: 0, Dt: 86400}
	err = eng.BeforeStep(sol)
	if err != nil {
		tst.Errorf("BeforeStep failed: %v\n", err)
		return
	}
	ls := facade.NewLinearSystem(1, 1)
	err = eng.AddToRhs(ls, sol)
	if err != nil {
		tst.Errorf("AddToRhs failed: %v\n", err)
		return
	}
	chk.Float64(tst, "Q", 1e-6, eng.State.Q[0].V, 0)
	err = eng.AfterStep(sol)
	if err != nil {
		tst.Errorf("AfterStep failed: %v\n", err)
		return
	}
	chk.Float64(tst, "W", 1e-6, eng.State.W, 0)
}

func Test_engine02(tst *testing.T) {

	chk.PrintTitle("engine02: Carter-Tracy pulse")

	// beta=1, Tc=100, depth diff zero => Δpa=1 requires p0-pPrev=1 with rho*g*0 term zero
	grid := &fakeGrid{
		pressure: map[int]ad.Scalar{0: ad.Variable(100, 0, 1)},
		density:  map[int]ad.Scalar{0: ad.Constant(0, 1)}, // zero density isolates the depth term
		viscos:   map[int]ad.Scalar{0: ad.Constant(1, 1)},
		depth:    map[int]float64{0: 0},
		area:     map[int]float64{0: 1},
	}
	// choose phi,ct,r0,perm,c1,c2,h,theta such that beta=1 and Tc=100 given muWater=1
	prms := mdlaq.Parameters{
		Porosity: 1, Ct: 1, R0: 1, Perm: 1,
		C1: 0.01, C2: 1, Thick: 1, Theta: 1, Datum: 0,
		P0Defaulted: false, P0: 101, // p0 - pPrev(=100) = 1 = Δpa
	}
	table, err := mdlaq.NewTable([]float64{0, 10}, []float64{0, 5})
	if err != nil {
		tst.Errorf("NewTable failed: %v\n", err)
		return
	}
	chk.Float64(tst, "c0", 1e-12, table.C0(), 0)
	chk.Float64(tst, "c1", 1e-12, table.C1(), 0.5)

	conns, err := NewConnectionSet([]int{0}, []facade.Direction{facade.DirXpos}, []float64{1}, []float64{1})
	if err != nil {
		tst.Errorf("NewConnectionSet failed: %v\n", err)
		return
	}
	eng, err := NewEngine(0, prms, table, conns, grid, 1, 0, func(cellID int) int { return cellID })
	if err != nil {
		tst.Errorf("NewEngine failed: %v\n", err)
		return
	}
	chk.Float64(tst, "beta", 1e-12, eng.Prms.InfluxConstant(), 1)
	chk.Float64(tst, "Tc", 1e-12, eng.Prms.TimeConstant(1), 100)

	sol := &ele.Solution{T: 0, Dt: 10}
	err = eng.BeforeStep(sol)
	if err != nil {
		tst.Errorf("BeforeStep failed: %v\n", err)
		return
	}
	// p_w,curr = p_w,prev => Q = alpha * a, want a = 0.2
	ls := facade.NewLinearSystem(1, 1)
	err = eng.AddToRhs(ls, sol)
	if err != nil {
		tst.Errorf("AddToRhs failed: %v\n", err)
		return
	}
	chk.Float64(tst, "Q", 1e-10, eng.State.Q[0].V, 0.2)
}

func Test_engine03(tst *testing.T) {

	chk.PrintTitle("engine03: area fractions sum to 1 and W is monotone under pure influx")

	grid := &fakeGrid{
		pressure: map[int]ad.Scalar{
			0: ad.Variable(1.0, 0, 1),
			1: ad.Variable(1.0, 0, 1),
		},
		density: map[int]ad.Scalar{0: ad.Constant(0, 1), 1: ad.Constant(0, 1)},
		viscos:  map[int]ad.Scalar{0: ad.Constant(1, 1), 1: ad.Constant(1, 1)},
		depth:   map[int]float64{0: 0, 1: 0},
		area:    map[int]float64{0: 10, 1: 30},
	}
	prms := mdlaq.Parameters{
		Porosity: 1, Ct: 1, R0: 1, Perm: 1,
		C1: 0.01, C2: 1, Thick: 1, Theta: 1, Datum: 0,
		P0Defaulted: false, P0: 2.0, // larger than reservoir pressure => pure influx (Δpa>0)
	}
	table, err := mdlaq.NewTable([]float64{0, 10}, []float64{0, 5})
	if err != nil {
		tst.Errorf("NewTable failed: %v\n", err)
		return
	}
	conns, err := NewConnectionSet([]int{0, 1},
		[]facade.Direction{facade.DirXpos, facade.DirXpos}, []float64{1, 1}, []float64{1, 1})
	if err != nil {
		tst.Errorf("NewConnectionSet failed: %v\n", err)
		return
	}
	eng, err := NewEngine(0, prms, table, conns, grid, 1, 0, func(cellID int) int { return cellID })
	if err != nil {
		tst.Errorf("NewEngine failed: %v\n", err)
		return
	}
	sum := 0.0
	for _, c := range eng.Conns.Conns {
		sum += c.AreaFraction
	}
	chk.Float64(tst, "sum(alpha)", 1e-14, sum, 1)

	// drive the engine through ele.Set, the way a caller iterating many
	// footprint-disjoint elements within one Newton step would (§5)
	set := ele.Set{eng}

	prevW := eng.State.W
	sol := &ele.Solution{T: 0, Dt: 1}
	for step := 0; step < 3; step++ {
		err = set.BeforeStep(sol)
		if err != nil {
			tst.Errorf("BeforeStep failed: %v\n", err)
			return
		}
		ls := facade.NewLinearSystem(2, 2)
		err = set.AddToRhs(ls, sol)
		if err != nil {
			tst.Errorf("AddToRhs failed: %v\n", err)
			return
		}
		err = set.AfterStep(sol)
		if err != nil {
			tst.Errorf("AfterStep failed: %v\n", err)
			return
		}
		if eng.State.W < prevW {
			tst.Errorf("W must be monotone nondecreasing: step %d, W=%g < prevW=%g\n", step, eng.State.W, prevW)
		}
		prevW = eng.State.W
		sol.T += sol.Dt
	}
}
