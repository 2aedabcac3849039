// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msw

import (
	"testing"

	"github.com/cpmech/goresim/ad"
	"github.com/cpmech/goresim/ele"
	"github.com/cpmech/goresim/facade"
	dev "github.com/cpmech/goresim/mdl/msw"
	"github.com/cpmech/gosl/chk"
)

func newTestWell(tst *testing.T, nvars int) (*SegmentSet, []State) {
	segs := &SegmentSet{Segs: []Segment{
		{Outlet: -1, CrossArea: 0.01, Depth: 0, Inlets: []int{1}},                                   // 0: top/wellhead
		{Outlet: 0, CrossArea: 0.01, Depth: 100, Inlets: []int{2, 3}, FricEnabled: true, FrictionCoeff: 1e-6}, // 1
		{Outlet: 1, CrossArea: 0.01, Depth: 200},                                                    // 2: leaf
		{Outlet: 1, CrossArea: 0.01, Depth: 200},                                                    // 3: leaf, will be the shut valve
	}}

	st := make([]State, 4)
	for i := range st {
		st[i] = State{
			WQTotal:   ad.Variable(10, 0, nvars),
			WaterFrac: ad.Constant(0.3, nvars),
			GasFrac:   ad.Constant(0.1, nvars),
			SPres:     ad.Variable(1e7, 0, nvars),
			RhoMix:    ad.Constant(900, nvars),
		}
	}
	return segs, st
}

func trivialControl(target float64) ControlEqFunc {
	return func(st *State) (ad.Scalar, float64, error) {
		return st.SPres.AddFloat(-target), 1e3, nil
	}
}

func Test_evaluator01(tst *testing.T) {

	chk.PrintTitle("evaluator01: shut valve produces WQTotal=0 trivial equation")

	segs, st := newTestWell(tst, 1)
	valve := &dev.Valve{Cv: 0.8, Area: 1e-3, Status: dev.ValveShut}
	segs.Segs[3].Kind = Valve
	segs.Segs[3].Device = valve

	err := segs.Validate()
	if err != nil {
		tst.Errorf("Validate failed: %v\n", err)
		return
	}

	evalr := &Evaluator{
		Segs:       segs,
		St:         st,
		BlockIndex: func(s int) int { return s * 4 },
		BAvg:       []float64{1, 1, 1},
		ControlEq:  trivialControl(1e7),
	}
	ls := facade.NewLinearSystem(16, 16)
	err = evalr.AddToRhs(ls, &ele.Solution{})
	if err != nil {
		tst.Errorf("AddToRhs failed: %v\n", err)
		return
	}
	chk.Float64(tst, "row3 pressure residual (WQTotal)", 1e-12, evalr.jacobians[3].pres.V, st[3].WQTotal.V)
	chk.Float64(tst, "row3 DPHydro", 1e-12, st[3].DPHydro, 0)
	chk.Float64(tst, "row3 DPFric", 1e-12, st[3].DPFric, 0)
}

func Test_evaluator02(tst *testing.T) {

	chk.PrintTitle("evaluator02: control equation residual and classification")

	segs, st := newTestWell(tst, 1)
	err := segs.Validate()
	if err != nil {
		tst.Errorf("Validate failed: %v\n", err)
		return
	}
	st[0].SPres = ad.Variable(1.0e7, 0, 1)

	evalr := &Evaluator{
		Segs:                     segs,
		St:                       st,
		BlockIndex:               func(s int) int { return s * 4 },
		BAvg:                     []float64{1, 1, 1},
		ControlEq:                trivialControl(1.0e7),
		ToleranceWells:           1e-3,
		TolerancePressureMSWells: 1e-2,
		MaxResidualAllowed:       1e8,
	}
	// drive the evaluator through ele.Set, the way a caller iterating many
	// footprint-disjoint elements within one Newton step would (§5)
	set := ele.Set{evalr}
	ls := facade.NewLinearSystem(16, 16)
	err = set.AddToRhs(ls, &ele.Solution{})
	if err != nil {
		tst.Errorf("AddToRhs failed: %v\n", err)
		return
	}
	rep, err := evalr.Converge()
	if err != nil {
		tst.Errorf("Converge failed: %v\n", err)
		return
	}
	chk.Float64(tst, "control residual", 1e-12, rep.ControlResidual, 0)
	if rep.ControlClass != ele.ConvConverged {
		tst.Errorf("expected control eq to be converged, got class=%d\n", rep.ControlClass)
	}

	// ele.WithConvergence: ConvergenceStatus must mirror the last report
	var withConv ele.WithConvergence = evalr
	status := withConv.ConvergenceStatus()
	if len(status) != len(rep.Class) {
		tst.Errorf("ConvergenceStatus length mismatch: got %d, want %d\n", len(status), len(rep.Class))
	}
	for i := range rep.Class {
		if status[i] != rep.Class[i] {
			tst.Errorf("ConvergenceStatus[%d]=%v, want %v\n", i, status[i], rep.Class[i])
		}
	}
}

func Test_validate01(tst *testing.T) {

	chk.PrintTitle("validate01: segment-0-is-top and outlet-tree invariants")

	bad := &SegmentSet{Segs: []Segment{{Outlet: 1}, {Outlet: 0}}}
	if err := bad.Validate(); err == nil {
		tst.Errorf("expected error: segment 0 must have outlet==-1\n")
	}

	cyc := &SegmentSet{Segs: []Segment{{Outlet: -1}, {Outlet: 2}, {Outlet: 1}}}
	if err := cyc.Validate(); err == nil {
		tst.Errorf("expected error: cycle not reaching segment 0\n")
	}
}
