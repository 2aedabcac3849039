// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/goresim/wctrl"
	"github.com/cpmech/gosl/chk"
)

// prodTargets and injTargets convert a JSON {mode-name: value} map into the
// typed target maps wctrl.ProdSpec/InjSpec carry
func prodTargets(raw map[string]float64) map[wctrl.ProdMode]float64 {
	out := make(map[wctrl.ProdMode]float64, len(raw))
	for k, v := range raw {
		out[wctrl.ProdMode(k)] = v
	}
	return out
}

func injTargets(raw map[string]float64) map[wctrl.InjMode]float64 {
	out := make(map[wctrl.InjMode]float64, len(raw))
	for k, v := range raw {
		out[wctrl.InjMode(k)] = v
	}
	return out
}

// BuildTree constructs the wctrl well/group control tree described by
// sched (§6 "group definitions... well definitions"). Groups may be
// declared in any order; each names its parent by string, resolved
// here (mirrors inp/mat.go's two-pass "decode flat list, then wire
// cross-references" idiom used for material groups).
func BuildTree(sched *Schedule) (eng *wctrl.Engine, err error) {
	groups := make(map[string]*wctrl.GroupNode, len(sched.Groups))
	var root *wctrl.GroupNode
	for _, gd := range sched.Groups {
		g := wctrl.NewGroupNode(gd.Name, gd.Eff)
		if len(gd.ProdTargets) > 0 || gd.ProdProcedure != "" {
			g.Prod = &wctrl.ProdSpec{
				Targets:   prodTargets(gd.ProdTargets),
				Procedure: wctrl.ProdProcedure(gd.ProdProcedure),
			}
		}
		if len(gd.InjTargets) > 0 || gd.InjType != "" {
			phase := wctrl.PhaseOil
			if gd.InjType != "" {
				phase, err = phaseByName(gd.InjType)
				if err != nil {
					return nil, err
				}
			}
			g.Inj = &wctrl.InjSpec{
				Targets:             injTargets(gd.InjTargets),
				Type:                phase,
				ReinjectionFraction: gd.ReinjectionFraction,
				VoidageFraction:     gd.VoidageFraction,
			}
		}
		groups[gd.Name] = g
		if gd.Parent == "" {
			if root != nil {
				return nil, chk.Err("inp.BuildTree: more than one root group (%q and %q)", root.Name(), gd.Name)
			}
			root = g
		}
	}
	if root == nil {
		return nil, chk.Err("inp.BuildTree: schedule has no root group (a group with empty parent)")
	}
	for _, gd := range sched.Groups {
		if gd.Parent == "" {
			continue
		}
		parent, ok := groups[gd.Parent]
		if !ok {
			return nil, chk.Err("inp.BuildTree: group %q names unknown parent %q", gd.Name, gd.Parent)
		}
		parent.AddChild(groups[gd.Name])
	}

	wells := make([]*wctrl.WellNode, 0, len(sched.Wells))
	for i, wd := range sched.Wells {
		kind := wctrl.Producer
		if wd.Kind == "INJECTOR" {
			kind = wctrl.Injector
		} else if wd.Kind != "PRODUCER" {
			return nil, chk.Err("inp.BuildTree: well %q has unknown kind %q", wd.Name, wd.Kind)
		}
		w := wctrl.NewWellNode(wd.Name, wd.Eff, kind)
		w.Index = i
		w.GuideRateOwn = wd.GuideRate
		if len(wd.ProdTargets) > 0 {
			w.Prod = &wctrl.ProdSpec{
				Targets:   prodTargets(wd.ProdTargets),
				Procedure: wctrl.ProdProcedure(wd.ProdProcedure),
				BHPLimit:  wd.BHPLimit,
				THPLimit:  wd.THPLimit,
			}
		}
		if len(wd.InjTargets) > 0 {
			phase, perr := phaseByName(wd.InjType)
			if perr != nil {
				return nil, perr
			}
			w.Inj = &wctrl.InjSpec{
				Targets:  injTargets(wd.InjTargets),
				Type:     phase,
				BHPLimit: wd.BHPLimit,
				THPLimit: wd.THPLimit,
			}
		}
		parent, ok := groups[wd.Group]
		if !ok {
			return nil, chk.Err("inp.BuildTree: well %q names unknown group %q", wd.Name, wd.Group)
		}
		parent.AddChild(w)
		wells = append(wells, w)
	}

	return &wctrl.Engine{Root: root, Wells: wells}, nil
}
