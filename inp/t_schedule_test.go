// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"testing"

	"github.com/cpmech/goresim/wctrl"
	"github.com/cpmech/gosl/chk"
)

func sampleSchedule() *Schedule {
	return &Schedule{
		Groups: []*GroupData{
			{Name: "FIELD", Eff: 1.0},
			{Name: "PLATFORM-A", Parent: "FIELD", Eff: 0.95,
				ProdTargets: map[string]float64{"ORAT": 100}, ProdProcedure: "RATE"},
		},
		Wells: []*WellData{
			{Name: "P1", Group: "PLATFORM-A", Kind: "PRODUCER", Eff: 1.0, GuideRate: 1,
				Segments: []SegmentData{
					{Outlet: -1, CrossArea: 0.01, Depth: 0},
					{Outlet: 0, CrossArea: 0.01, Depth: 500, FricEnabled: true, FrictionCoeff: 1e-6},
				}},
			{Name: "P2", Group: "PLATFORM-A", Kind: "PRODUCER", Eff: 1.0, GuideRate: 1,
				Segments: []SegmentData{
					{Outlet: -1, CrossArea: 0.01, Depth: 0},
				}},
		},
	}
}

func Test_schedule01_build_tree(tst *testing.T) {

	chk.PrintTitle("schedule01: build tree from declarative schedule")

	sched := sampleSchedule()
	eng, err := BuildTree(sched)
	if err != nil {
		tst.Errorf("BuildTree failed: %v\n", err)
		return
	}
	if eng.Root.Name() != "FIELD" {
		tst.Errorf("expected root FIELD, got %q\n", eng.Root.Name())
	}
	if eng.NumberOfLeaves() != 2 {
		tst.Errorf("expected 2 well leaves, got %d\n", eng.NumberOfLeaves())
	}
	platform := eng.FindNode("PLATFORM-A")
	if platform == nil {
		tst.Errorf("PLATFORM-A not found\n")
		return
	}
	g, ok := platform.(*wctrl.GroupNode)
	if !ok || g.Prod == nil || g.Prod.LimitFor(wctrl.ProdORAT) != 100 {
		tst.Errorf("PLATFORM-A production spec not wired correctly\n")
	}
	if len(eng.Wells) != 2 {
		tst.Errorf("expected engine to track 2 wells, got %d\n", len(eng.Wells))
	}
}

func Test_schedule02_roundtrip(tst *testing.T) {

	chk.PrintTitle("schedule02: rebuilding from the same schedule is structurally identical")

	sched := sampleSchedule()
	eng1, err := BuildTree(sched)
	if err != nil {
		tst.Errorf("BuildTree (1st) failed: %v\n", err)
		return
	}
	eng2, err := BuildTree(sched)
	if err != nil {
		tst.Errorf("BuildTree (2nd) failed: %v\n", err)
		return
	}
	names1 := wctrl.DepthFirstNames(eng1.Root)
	names2 := wctrl.DepthFirstNames(eng2.Root)
	if len(names1) != len(names2) {
		tst.Errorf("structural mismatch: %v vs %v\n", names1, names2)
		return
	}
	for i := range names1 {
		if names1[i] != names2[i] {
			tst.Errorf("structural mismatch at %d: %q vs %q\n", i, names1[i], names2[i])
		}
	}
}

func Test_schedule03_unknown_group(tst *testing.T) {

	chk.PrintTitle("schedule03: well naming an unknown group is an error")

	sched := sampleSchedule()
	sched.Wells[0].Group = "NOPE"
	_, err := BuildTree(sched)
	if err == nil {
		tst.Errorf("expected error for unknown group reference\n")
	}
}

func Test_schedule04_segment_set(tst *testing.T) {

	chk.PrintTitle("schedule04: BuildSegmentSet wires outlet/inlet tree")

	sched := sampleSchedule()
	ss, err := BuildSegmentSet(sched.Wells[0])
	if err != nil {
		tst.Errorf("BuildSegmentSet failed: %v\n", err)
		return
	}
	if ss.N() != 2 {
		tst.Errorf("expected 2 segments, got %d\n", ss.N())
	}
	if ss.Segs[0].Outlet != -1 {
		tst.Errorf("expected segment 0 outlet==-1, got %d\n", ss.Segs[0].Outlet)
	}
	if len(ss.Segs[0].Inlets) != 1 || ss.Segs[0].Inlets[0] != 1 {
		tst.Errorf("expected segment 0 to list segment 1 as inlet, got %v\n", ss.Segs[0].Inlets)
	}
}
