// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msw implements the Segment Set and the Multi-Segment Well
// Evaluator (spec §3 "Segment"/"Segment Runtime State", §4.4, §4.5).
// Grounded on the teacher's ele/porous multi-equation-block element
// (scratchpad fields per ip, per-block K matrices), generalised from
// solid/liquid/gas degrees of freedom to well segment flow/pressure
// unknowns.
package msw

import (
	"github.com/cpmech/goresim/ad"
	dev "github.com/cpmech/goresim/mdl/msw"
	"github.com/cpmech/gosl/chk"
)

// Gravity is the constant used in the hydrostatic pressure-drop term
const Gravity = 9.81

// Kind enumerates a segment's flow-control kind (§3 "Segment")
type Kind int

const (
	Regular Kind = iota
	SpiralICD
	AutoICD
	Valve
)

// Segment is one entry of a well's segment tree (§3 "Segment")
type Segment struct {
	CrossArea float64
	Depth     float64 // vertical depth, used by the hydrostatic term
	Roughness float64 // carried from the schedule; the default friction drop uses FrictionCoeff, not Roughness

	Outlet int   // outlet segment index; -1 for segment 0 (connects to surface)
	Inlets []int // inlet segment indices

	Kind          Kind
	Device        dev.Device // non-nil for SpiralICD/AutoICD/Valve
	FricEnabled   bool
	AccelEnabled  bool
	FrictionCoeff float64 // scale factor for the default friction correlation
}

// SegmentSet is the ordered, tree-shaped collection of segments for one well
type SegmentSet struct {
	Segs []Segment
}

// Validate checks the segment-0-is-top and outlet-tree invariants of §3
func (ss *SegmentSet) Validate() (err error) {
	if len(ss.Segs) == 0 {
		return chk.Err("msw.SegmentSet: a well needs at least one segment")
	}
	if ss.Segs[0].Outlet != -1 {
		return chk.Err("msw.SegmentSet: segment 0 must be the top segment (outlet==-1), got outlet=%d", ss.Segs[0].Outlet)
	}
	for s := 1; s < len(ss.Segs); s++ {
		o := ss.Segs[s].Outlet
		if o < 0 || o >= len(ss.Segs) {
			return chk.Err("msw.SegmentSet: segment %d has out-of-range outlet %d", s, o)
		}
	}
	for s := 1; s < len(ss.Segs); s++ {
		cur, steps := s, 0
		for cur != 0 {
			cur = ss.Segs[cur].Outlet
			steps++
			if steps > len(ss.Segs) {
				return chk.Err("msw.SegmentSet: cycle detected reaching segment 0 from segment %d", s)
			}
		}
	}
	return nil
}

// N returns the number of segments
func (ss *SegmentSet) N() int { return len(ss.Segs) }

// State holds the per-segment runtime quantities of §3 "Segment Runtime State"
type State struct {
	WQTotal   ad.Scalar // total mixed flow rate
	WaterFrac ad.Scalar
	GasFrac   ad.Scalar
	SPres     ad.Scalar // segment pressure

	Upw    int // 0 = self, 1 = outlet (§3 "single integer per segment")
	RhoMix ad.Scalar

	// pressure-drop decomposition, value-only (reported, not differentiated further)
	DPHydro float64
	DPFric  float64
	DPAccel float64
}

// velocityHead computes mdot·|mdot| / (2·ρ·area²), the kinetic term used by
// the default friction drop of Regular segments and by the acceleration
// loss (§4.4); the device correlations in mdl/msw compute their own drops
func velocityHead(area float64, mdot, rho ad.Scalar) ad.Scalar {
	num := mdot.Mul(mdot.Abs())
	return num.Div(rho.Scale(2 * area * area))
}
