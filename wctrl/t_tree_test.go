// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wctrl

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func buildSimpleTree() (*GroupNode, *WellNode, *WellNode) {
	root := NewGroupNode("FIELD", 1.0)
	w1 := NewWellNode("P1", 1.0, Producer)
	w2 := NewWellNode("P2", 1.0, Producer)
	w1.GuideRateOwn = 1
	w2.GuideRateOwn = 1
	root.AddChild(w1)
	root.AddChild(w2)
	return root, w1, w2
}

func Test_tree01(tst *testing.T) {

	chk.PrintTitle("tree01: guide rate aggregation and parent wiring")

	root, w1, w2 := buildSimpleTree()
	if w1.Parent() != root || w2.Parent() != root {
		tst.Errorf("child parent pointers not wired to root\n")
	}
	chk.Float64(tst, "Σ children guideRate(false)", 1e-15, root.GuideRate(false), w1.GuideRate(false)+w2.GuideRate(false))
	chk.Float64(tst, "root guideRate(false)", 1e-15, root.GuideRate(false), 2.0)

	w1.Individual = true
	w2.Individual = false
	chk.Float64(tst, "root guideRate(true) excludes individual w1", 1e-15, root.GuideRate(true), 1.0)
}

func Test_tree02(tst *testing.T) {

	chk.PrintTitle("tree02: findNode and numberOfLeaves")

	root, w1, _ := buildSimpleTree()
	sub := NewGroupNode("PLATFORM-A", 0.95)
	w3 := NewWellNode("P3", 1.0, Producer)
	sub.AddChild(w3)
	root.AddChild(sub)

	if findNode(root, "P3") != Node(w3) {
		tst.Errorf("findNode did not locate nested leaf P3\n")
	}
	if findNode(root, "missing") != nil {
		tst.Errorf("findNode should return nil for an absent name\n")
	}
	if numberOfLeaves(root) != 3 {
		tst.Errorf("expected 3 leaves, got %d\n", numberOfLeaves(root))
	}
	if EffectiveFactor(w3) != 0.95 {
		tst.Errorf("expected w3 effective factor 0.95, got %v (w1=%v)\n", EffectiveFactor(w3), EffectiveFactor(w1))
	}
}
