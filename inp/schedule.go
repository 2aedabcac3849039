// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp reads the declarative Well Input schedule (§6 "Well Input
// (consumed)"): group definitions, well definitions, and segment
// topology, and builds the corresponding wctrl control tree and
// ele/msw segment sets. Grounded on the teacher's inp/mat.go
// (encoding/json unmarshal into tagged structs, subset maps built by
// walking the decoded list, chk.Err validation) and inp/sim.go's
// Data/ElemData struct-tag style; mesh- and solver-config-specific
// fields (LinSolData, SolverData, Newmark/HHT coefficients) are
// dropped since grid topology and the outer Newton loop are out of
// scope (§1).
package inp

import (
	"encoding/json"
	"path/filepath"

	"github.com/cpmech/goresim/ele/msw"
	devmsw "github.com/cpmech/goresim/mdl/msw"
	"github.com/cpmech/goresim/wctrl"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
)

// SegmentData is one record of a well's segment table (§6 "segment
// table with outlet/inlet, area, roughness, ICD params")
type SegmentData struct {
	Outlet        int        `json:"outlet"`
	CrossArea     float64    `json:"crossArea"`
	Depth         float64    `json:"depth"`
	Roughness     float64    `json:"roughness"`
	Kind          string     `json:"kind"` // "Regular", "SpiralICD", "AutoICD", "Valve"
	Device        string     `json:"device,omitempty"` // device model name, e.g. "sicd", "aicd", "valve"
	Prms          dbf.Params `json:"prms,omitempty"`
	FricEnabled   bool       `json:"fricEnabled"`
	AccelEnabled  bool       `json:"accelEnabled"`
	FrictionCoeff float64    `json:"frictionCoeff"`
}

// WellData is one well's declarative record (§6 "well definitions")
type WellData struct {
	Name      string            `json:"name"`
	Group     string            `json:"group"`
	Kind      string            `json:"kind"` // "PRODUCER" or "INJECTOR"
	Eff       float64           `json:"eff"`
	GuideRate float64           `json:"guideRate"`

	ProdTargets    map[string]float64 `json:"prodTargets,omitempty"`
	ProdProcedure  string             `json:"prodProcedure,omitempty"`
	InjTargets     map[string]float64 `json:"injTargets,omitempty"`
	InjType        string             `json:"injType,omitempty"`
	BHPLimit       float64            `json:"bhpLimit,omitempty"`
	THPLimit       float64            `json:"thpLimit,omitempty"`

	Segments []SegmentData `json:"segments"`
}

// GroupData is one group's declarative record (§6 "group definitions")
type GroupData struct {
	Name     string   `json:"name"`
	Parent   string   `json:"parent,omitempty"` // empty for the root group
	Eff      float64  `json:"eff"`

	ProdTargets         map[string]float64 `json:"prodTargets,omitempty"`
	ProdProcedure       string             `json:"prodProcedure,omitempty"`
	InjTargets          map[string]float64 `json:"injTargets,omitempty"`
	InjType             string             `json:"injType,omitempty"`
	ReinjectionFraction float64            `json:"reinjectionFraction,omitempty"`
	VoidageFraction     float64            `json:"voidageFraction,omitempty"`
}

// Schedule is the full declarative well/group/segment input (§6 "Well Input")
type Schedule struct {
	Groups []*GroupData `json:"groups"`
	Wells  []*WellData  `json:"wells"`
}

// ReadSchedule reads a schedule from a JSON file, as inp/mat.go's
// ReadMat reads a .mat file
func ReadSchedule(dir, fn string) (sched *Schedule, err error) {
	sched = new(Schedule)
	b, err := io.ReadFile(filepath.Join(dir, fn))
	if err != nil {
		return nil, err
	}
	err = json.Unmarshal(b, sched)
	if err != nil {
		return nil, err
	}
	if len(sched.Groups) == 0 {
		return nil, chk.Err("inp.ReadSchedule: schedule %q has no groups", fn)
	}
	return sched, nil
}

// phaseByName maps a JSON injType string to a wctrl.Phase
func phaseByName(name string) (wctrl.Phase, error) {
	switch name {
	case "oil":
		return wctrl.PhaseOil, nil
	case "water":
		return wctrl.PhaseWater, nil
	case "gas":
		return wctrl.PhaseGas, nil
	}
	return 0, chk.Err("inp: unknown injector phase %q", name)
}

// segmentKindByName maps a JSON segment kind string to a msw.Kind
func segmentKindByName(name string) (msw.Kind, error) {
	switch name {
	case "", "Regular":
		return msw.Regular, nil
	case "SpiralICD":
		return msw.SpiralICD, nil
	case "AutoICD":
		return msw.AutoICD, nil
	case "Valve":
		return msw.Valve, nil
	}
	return 0, chk.Err("inp: unknown segment kind %q", name)
}

// BuildSegmentSet converts one well's declarative segment table into a
// msw.SegmentSet, allocating and initialising any device models named
// in the table (§4.4, via mdl/msw's New(name)/Init(prms) registry,
// mirroring inp/mat.go's Model, err = X.New(m.Model); X.Init(m.Prms)
// pattern)
func BuildSegmentSet(wd *WellData) (ss *msw.SegmentSet, err error) {
	ss = &msw.SegmentSet{Segs: make([]msw.Segment, len(wd.Segments))}
	inlets := make(map[int][]int)
	for i, sd := range wd.Segments {
		if i > 0 {
			inlets[sd.Outlet] = append(inlets[sd.Outlet], i)
		}
	}
	for i, sd := range wd.Segments {
		kind, kerr := segmentKindByName(sd.Kind)
		if kerr != nil {
			return nil, kerr
		}
		seg := msw.Segment{
			CrossArea:     sd.CrossArea,
			Depth:         sd.Depth,
			Roughness:     sd.Roughness,
			Outlet:        sd.Outlet,
			Inlets:        inlets[i],
			Kind:          kind,
			FricEnabled:   sd.FricEnabled,
			AccelEnabled:  sd.AccelEnabled,
			FrictionCoeff: sd.FrictionCoeff,
		}
		if i == 0 {
			seg.Outlet = -1
		}
		if kind != msw.Regular {
			if sd.Device == "" {
				return nil, chk.Err("inp: segment %d of well %q is kind %v but names no device", i, wd.Name, kind)
			}
			dev, derr := devmsw.New(sd.Device)
			if derr != nil {
				return nil, derr
			}
			if err = dev.Init(sd.Prms); err != nil {
				return nil, err
			}
			seg.Device = dev
		}
		ss.Segs[i] = seg
	}
	if err = ss.Validate(); err != nil {
		return nil, err
	}
	return ss, nil
}
