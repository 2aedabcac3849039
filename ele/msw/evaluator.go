// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msw

import (
	"math"

	"github.com/cpmech/goresim/ad"
	"github.com/cpmech/goresim/ele"
	"github.com/cpmech/goresim/facade"
	dev "github.com/cpmech/goresim/mdl/msw"
	"github.com/cpmech/gosl/chk"
)

// NumComponents is the fixed black-oil component count this evaluator
// assembles mass-balance equations for (oil, water, gas); spec §1 scopes
// the core to black-oil fluid systems only, so the component count is not
// a runtime parameter here.
const NumComponents = 3

const (
	compOil = iota
	compWater
	compGas
)

// ControlEqFunc supplies the top-segment control equation (§4.4 "Top
// segment (s=0)"): the active control mode lives in the well-control layer
// (package wctrl), not here, so the evaluator calls back into it.
type ControlEqFunc func(st *State) (residual ad.Scalar, tolerance float64, err error)

// Evaluator is the Multi-Segment Well Evaluator (§4.5): it assembles
// per-segment mass-balance and pressure equations plus the top-segment
// control equation, and reports a multi-criterion convergence report.
var (
	_ ele.Element         = (*Evaluator)(nil)
	_ ele.WithConvergence = (*Evaluator)(nil)
)

type Evaluator struct {
	id   int
	Segs *SegmentSet
	St   []State

	BlockIndex func(segIdx int) int // base row offset for a segment's equation block in the global system
	BAvg       []float64            // per-component inverse FVF, numWellEq-1 entries, supplied externally (§4.5)
	ControlEq  ControlEqFunc

	ToleranceWells             float64 // flux tolerance
	TolerancePressureMSWells   float64 // pressure tolerance
	MaxResidualAllowed         float64
	RelaxedToleranceWells      float64 // 0 => not in force
	RelaxedTolerancePressureMS float64 // 0 => not in force
	RelaxedToleranceInForce    bool

	jacobians  []segJac              // per-segment AD equations, reused by AddToKb and Converge
	controlTol float64               // tolerance returned by the last ControlEq call (§4.6 "mode-dependent tolerance")
	lastClass  []ele.ConvergenceClass // per-equation classification from the most recent Converge() call
}

type segJac struct {
	mass []ad.Scalar // [NumComponents]
	pres ad.Scalar
}

// NumWellEq returns numComponents + 1 (§4.5 "State")
func (e *Evaluator) NumWellEq() int { return NumComponents + 1 }

// Id returns this evaluator's well index
func (e *Evaluator) Id() int { return e.id }

// fracOf returns the value-fraction ad.Scalar of component c for a segment state
func fracOf(c int, st *State) ad.Scalar {
	switch c {
	case compWater:
		return st.WaterFrac
	case compGas:
		return st.GasFrac
	default:
		n := st.WaterFrac.Nvars()
		return ad.Constant(1, n).Sub(st.WaterFrac).Sub(st.GasFrac)
	}
}

// upwindedDensity returns the density a segment's pressure-drop terms use:
// its own RhoMix if self-upwinded, otherwise the outlet's RhoMix with
// derivatives cleared (§4.1 cross-domain rule; §4.4 "upwinding")
func (e *Evaluator) upwindedDensity(s int) ad.Scalar {
	st := &e.St[s]
	if st.Upw == 0 {
		return st.RhoMix
	}
	return ad.Cleared(e.St[e.Segs.Segs[s].Outlet].RhoMix)
}

// chooseUpwind picks Upw ∈ {self, outlet} by the sign of the segment's own
// mass flow (§4.4 "Upwinding"): nonnegative (producer-direction) flow
// upwinds from the segment itself, negative flow upwinds from its outlet.
func (e *Evaluator) chooseUpwind(s int) int {
	if e.St[s].WQTotal.V >= 0 {
		return 0
	}
	return 1
}

// assembleSegment builds the mass-balance and pressure equations for
// segment s (§4.4, §4.5 "Assembly order")
func (e *Evaluator) assembleSegment(s int) (jac segJac, err error) {
	seg := &e.Segs.Segs[s]
	st := &e.St[s]

	jac.mass = make([]ad.Scalar, NumComponents)
	for c := 0; c < NumComponents; c++ {
		sum := fracOf(c, st).Mul(st.WQTotal)
		for _, in := range seg.Inlets {
			sum = sum.Sub(fracOf(c, &e.St[in]).Mul(e.St[in].WQTotal))
		}
		jac.mass[c] = sum
	}

	if s == 0 {
		// the top segment has no outlet of its own, so no upwinding choice applies to it
		var res ad.Scalar
		res, e.controlTol, err = e.ControlEq(st)
		if err != nil {
			return
		}
		jac.pres = res
		return
	}

	st.Upw = e.chooseUpwind(s)
	rhoUpw := e.upwindedDensity(s)

	if seg.Kind == Valve {
		if v, ok := seg.Device.(*dev.Valve); ok && v.Status == dev.ValveShut {
			jac.pres = st.WQTotal
			st.DPHydro, st.DPFric, st.DPAccel = 0, 0, 0
			return
		}
	}

	var dpDeviceOrDefault ad.Scalar
	if seg.Kind != Regular {
		flow := dev.FlowState{Q: st.WQTotal, RhoMix: rhoUpw, WaterCut: st.WaterFrac, GasCut: st.GasFrac}
		dpDeviceOrDefault, err = seg.Device.PressureDrop(flow)
		if err != nil {
			return
		}
		st.DPHydro, st.DPFric = 0, dpDeviceOrDefault.V
	} else {
		dpHydro := rhoUpw.Scale(Gravity * (seg.Depth - e.Segs.Segs[seg.Outlet].Depth))
		st.DPHydro = dpHydro.V
		dpDeviceOrDefault = dpHydro
		if seg.FricEnabled {
			dpFric := velocityHead(seg.CrossArea, st.WQTotal, rhoUpw).Scale(seg.FrictionCoeff)
			st.DPFric = dpFric.V
			dpDeviceOrDefault = dpDeviceOrDefault.Add(dpFric)
		} else {
			st.DPFric = 0
		}
	}

	ep := st.SPres.Sub(dpDeviceOrDefault)
	if seg.AccelEnabled {
		self := velocityHead(seg.CrossArea, st.WQTotal, rhoUpw)
		inletSum := ad.Constant(0, st.WQTotal.Nvars())
		for _, in := range seg.Inlets {
			inSt := &e.St[in]
			area := math.Max(e.Segs.Segs[in].CrossArea, seg.CrossArea)
			rhoIn := ad.Cleared(e.upwindedDensity(in))
			inletSum = inletSum.Add(velocityHead(area, inSt.WQTotal, rhoIn))
		}
		accel := self.Sub(inletSum)
		sign := -1.0
		if st.WQTotal.V < 0 {
			sign = 1.0
		}
		accel = accel.Scale(sign)
		st.DPAccel = accel.V
		ep = ep.Sub(accel)
	} else {
		st.DPAccel = 0
	}
	jac.pres = ep.Sub(e.St[seg.Outlet].SPres)
	return
}

// assemble recomputes every segment's equations for the current primary
// variable state
func (e *Evaluator) assemble() (err error) {
	e.jacobians = make([]segJac, e.Segs.N())
	for s := 0; s < e.Segs.N(); s++ {
		e.jacobians[s], err = e.assembleSegment(s)
		if err != nil {
			return
		}
	}
	return nil
}

// AddToRhs assembles this well's residual contribution (§4.5 "Assembly order")
func (e *Evaluator) AddToRhs(ls *facade.LinearSystem, sol *ele.Solution) (err error) {
	if err = e.assemble(); err != nil {
		return
	}
	for s := 0; s < e.Segs.N(); s++ {
		base := e.BlockIndex(s)
		for c := 0; c < NumComponents; c++ {
			ls.AddResidual(base+c, e.jacobians[s].mass[c].V)
		}
		ls.AddResidual(base+NumComponents, e.jacobians[s].pres.V)
	}
	return nil
}

// AddToKb assembles this well's Jacobian contribution. Must be called
// after AddToRhs within the same iteration (reuses the assembled equations).
func (e *Evaluator) AddToKb(ls *facade.LinearSystem, sol *ele.Solution) (err error) {
	for s := 0; s < e.Segs.N(); s++ {
		base := e.BlockIndex(s)
		rows := append(e.jacobians[s].mass, e.jacobians[s].pres)
		for r, eq := range rows {
			for k := 0; k < eq.Nvars(); k++ {
				d := eq.Derivative(k)
				if d == 0 {
					continue
				}
				ls.AddJacobian(base+r, base+k, -d)
			}
		}
	}
	return nil
}

// BeforeStep is a no-op for the evaluator: segments carry no previous-step
// snapshot (unlike the aquifer, there is no time-convolution memory here)
func (e *Evaluator) BeforeStep(sol *ele.Solution) (err error) { return nil }

// AfterStep is a no-op for the evaluator, for the same reason
func (e *Evaluator) AfterStep(sol *ele.Solution) (err error) { return nil }

// classify applies the §4.5 severity rule to one equation's maximum
// absolute residual value against its tolerance
func classify(value, tol, relaxedTol float64, relaxedInForce bool, maxAllowed float64) ele.ConvergenceClass {
	if math.IsNaN(value) {
		return ele.ConvNaN
	}
	v := math.Abs(value)
	if v > maxAllowed {
		return ele.ConvTooLarge
	}
	effTol := tol
	if relaxedInForce && relaxedTol > 0 {
		effTol = relaxedTol
	}
	if v > effTol {
		return ele.ConvNormal
	}
	return ele.ConvConverged
}

// ConvergenceReport is the per-equation classification and scalar measure
// of §4.5 "Convergence report"
type ConvergenceReport struct {
	Class   []ele.ConvergenceClass // [numWellEq], mass equations then the pressure equation
	Measure float64                // Σ residual[e]/tolerance[e], only when over tolerance
	Details ele.IpsMap             // supplemental per-segment residual trace, keyed by equation name

	ControlResidual float64             // segment-0 control-equation residual
	ControlClass    ele.ConvergenceClass // classified against ControlEq's own mode-dependent tolerance
}

// Converge computes the convergence report for the last assembled state
// (§4.5). Must be called after AddToRhs.
func (e *Evaluator) Converge() (rep ConvergenceReport, err error) {
	if e.jacobians == nil {
		return rep, chk.Err("msw.Evaluator.Converge: called before AddToRhs assembled anything")
	}
	n := e.NumWellEq()
	rep.Class = make([]ele.ConvergenceClass, n)
	rep.Details = *ele.NewIpsMap()
	for c := 0; c < NumComponents; c++ {
		maxAbs, hasNaN := 0.0, false
		for s := 0; s < e.Segs.N(); s++ {
			val := e.jacobians[s].mass[c].V * e.BAvg[c]
			rep.Details.Set(componentName(c), s, e.Segs.N(), val)
			if math.IsNaN(val) {
				hasNaN = true
			}
			if math.Abs(val) > maxAbs {
				maxAbs = math.Abs(val)
			}
		}
		reportVal := maxAbs
		if hasNaN {
			reportVal = math.NaN()
		}
		rep.Class[c] = classify(reportVal, e.ToleranceWells, e.RelaxedToleranceWells, e.RelaxedToleranceInForce, e.MaxResidualAllowed)
		if maxAbs > e.ToleranceWells {
			rep.Measure += maxAbs / e.ToleranceWells
		}
	}
	maxP, hasNaNP := 0.0, false
	nPres := e.Segs.N() - 1
	for s := 1; s < e.Segs.N(); s++ {
		val := e.jacobians[s].pres.V
		rep.Details.Set("pressure", s-1, nPres, val)
		if math.IsNaN(val) {
			hasNaNP = true
		}
		if math.Abs(val) > maxP {
			maxP = math.Abs(val)
		}
	}
	reportP := maxP
	if hasNaNP {
		reportP = math.NaN()
	}
	rep.Class[NumComponents] = classify(reportP, e.TolerancePressureMSWells, e.RelaxedTolerancePressureMS, e.RelaxedToleranceInForce, e.MaxResidualAllowed)
	if maxP > e.TolerancePressureMSWells {
		rep.Measure += maxP / e.TolerancePressureMSWells
	}

	rep.ControlResidual = e.jacobians[0].pres.V
	rep.ControlClass = classify(rep.ControlResidual, e.controlTol, 0, false, e.MaxResidualAllowed)
	e.lastClass = rep.Class
	return rep, nil
}

// ConvergenceStatus implements ele.WithConvergence: it returns the
// per-equation classification computed by the most recent Converge() call
// (mass equations then the pressure equation, §4.5), or nil if Converge
// has not yet run.
func (e *Evaluator) ConvergenceStatus() []ele.ConvergenceClass {
	return e.lastClass
}

func componentName(c int) string {
	switch c {
	case compOil:
		return "oil"
	case compWater:
		return "water"
	case compGas:
		return "gas"
	}
	return "?"
}
