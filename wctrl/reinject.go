// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wctrl

// totalProduction sums the surface rate of phase ph across every
// producing well leaf in the subtree rooted at n (§4.6 REIN: "Tp =
// totalProduction(root, surface, phase)" — read from the whole tree,
// not just the reinjecting group's own subtree, since a REIN policy
// typically reinjects gas/water produced anywhere in the field).
func totalProduction(n Node, ph Phase) float64 {
	switch v := n.(type) {
	case *WellNode:
		if v.Kind != Producer {
			return 0
		}
		return v.Rates().Surf[ph]
	case *GroupNode:
		sum := 0.0
		for _, c := range v.Children {
			sum += totalProduction(c, ph)
		}
		return sum
	}
	return 0
}

// totalReservoirProduction sums the reservoir-rate producing total
// (all three phases) across the subtree rooted at n, used by VREP.
func totalReservoirProduction(n Node) float64 {
	switch v := n.(type) {
	case *WellNode:
		if v.Kind != Producer {
			return 0
		}
		r := v.Rates()
		return r.Res[0] + r.Res[1] + r.Res[2]
	case *GroupNode:
		sum := 0.0
		for _, c := range v.Children {
			sum += totalReservoirProduction(c)
		}
		return sum
	}
	return 0
}

// reinject applies the REIN explicit injection policy to group g: its
// injection target is set to ReinjectionFraction of the field's total
// surface production of g.Inj.Type, distributed among children by
// guide rate at mode RATE (§4.6). Production rates are negative by
// convention (§3), so the sign flip yields a positive injection target.
func reinject(root Node, g *GroupNode) (err error) {
	if g.Inj == nil {
		return nil
	}
	tp := totalProduction(root, g.Inj.Type)
	target := -tp * g.Inj.ReinjectionFraction
	return applyInjGroupControl(g, InjRATE, target, false)
}

// voidageReplace applies the VREP explicit injection policy: the
// injection target is VoidageFraction of the field's total reservoir
// production, distributed at mode RESV (§4.6).
func voidageReplace(root Node, g *GroupNode) (err error) {
	if g.Inj == nil {
		return nil
	}
	tres := totalReservoirProduction(root)
	target := -tres * g.Inj.VoidageFraction
	return applyInjGroupControl(g, InjRESV, target, false)
}
