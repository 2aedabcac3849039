// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wctrl

import "github.com/cpmech/gosl/chk"

// installProdControl installs a group-derived production target on a
// well leaf (§4.6 "leaf-well control-slot installation"): the target is
// negated (producers flow negative, §3) then divided by the well's own
// efficiency factor before being written to the well's reserved slot.
func installProdControl(w *WellNode, mode ProdMode, target float64) (err error) {
	dist, err := distByProdMode(mode)
	if err != nil {
		return err
	}
	ctype := CtrlSurfaceRate
	if mode == ProdRESV {
		ctype = CtrlReservoirRate
	}
	nameplate := -target / w.Eff()
	installSlot(w, ControlSlot{Type: ctype, Target: nameplate, Dist: dist})
	w.Individual = false
	w.State = StateGroupControlled
	return nil
}

// installInjControl installs a group-derived injection target on a well
// leaf. Injectors flow positive, so unlike installProdControl the target
// is not negated, only divided by the well's own efficiency factor.
// Injection RATE/RESV distribute unit weight across all three phases
// (§4.6 "Injection RATE/RESV: unit on all phases").
func installInjControl(w *WellNode, mode InjMode, target float64) (err error) {
	var ctype ControlType
	switch mode {
	case InjRATE:
		ctype = CtrlSurfaceRate
	case InjRESV:
		ctype = CtrlReservoirRate
	default:
		return chk.Err("wctrl.installInjControl: mode %q has no install rule", mode)
	}
	nameplate := target / w.Eff()
	installSlot(w, ControlSlot{Type: ctype, Target: nameplate, Dist: [3]float64{1, 1, 1}})
	w.Individual = false
	w.State = StateGroupControlled
	return nil
}

// applyProdGroupControl recursively distributes a production target T
// across g's subtree by guide rate (§4.6 "applyProdGroupControl"). When
// onlyGroup is true and g is not itself under group control (its
// control_mode isn't FLD), the call is a deliberate no-op: it means g
// carries its own override target and should not be overridden by a
// parent's broadcast.
func applyProdGroupControl(g *GroupNode, mode ProdMode, target float64, onlyGroup bool) (err error) {
	if onlyGroup && g.Prod != nil && g.Prod.ActiveMode != ProdFLD {
		return nil
	}
	guideSum := g.GuideRate(onlyGroup)
	if guideSum == 0 {
		return nil
	}
	selfTarget := target / g.Eff()
	for _, c := range g.Children {
		share := selfTarget * c.GuideRate(onlyGroup) / guideSum
		switch n := c.(type) {
		case *GroupNode:
			if err = applyProdGroupControl(n, mode, share, false); err != nil {
				return err
			}
		case *WellNode:
			if n.Kind != Producer {
				continue
			}
			if err = installProdControl(n, mode, share); err != nil {
				return err
			}
		}
	}
	if g.Prod != nil {
		g.Prod.ActiveMode = ProdFLD
	}
	return nil
}

// applyInjGroupControl is applyProdGroupControl's injection dual (§4.6)
func applyInjGroupControl(g *GroupNode, mode InjMode, target float64, onlyGroup bool) (err error) {
	if onlyGroup && g.Inj != nil && g.Inj.ActiveMode != InjFLD {
		return nil
	}
	guideSum := g.GuideRate(onlyGroup)
	if guideSum == 0 {
		return nil
	}
	selfTarget := target / g.Eff()
	for _, c := range g.Children {
		share := selfTarget * c.GuideRate(onlyGroup) / guideSum
		switch n := c.(type) {
		case *GroupNode:
			if err = applyInjGroupControl(n, mode, share, false); err != nil {
				return err
			}
		case *WellNode:
			if n.Kind != Injector {
				continue
			}
			if err = installInjControl(n, mode, share); err != nil {
				return err
			}
		}
	}
	if g.Inj != nil {
		g.Inj.ActiveMode = InjFLD
	}
	return nil
}

// getWorstOffending walks g's subtree and returns the producing well
// whose own rate, aggregated by mode, has the largest magnitude — the
// candidate the WELL procedure shuts in response to a group violation
// (§4.6 "applyProdGroupControl... WELL procedure")
func getWorstOffending(g *GroupNode, mode ProdMode) (worst *WellNode, worstRate float64, err error) {
	var walk func(n Node) error
	walk = func(n Node) error {
		switch v := n.(type) {
		case *WellNode:
			if v.Shut || v.Kind != Producer {
				return nil
			}
			rate, rerr := rateByMode(v.Rates(), mode, "", false)
			if rerr != nil {
				return rerr
			}
			mag := absf(rate)
			if worst == nil || mag > worstRate {
				worst, worstRate = v, mag
			}
		case *GroupNode:
			for _, c := range v.Children {
				if err := walk(c); err != nil {
					return err
				}
			}
		}
		return nil
	}
	err = walk(g)
	return
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// shutWell applies the WELL procedure to w (§4.6). A hard shut-in
// disables the well entirely; otherwise the well is left open at a
// zero-rate control so its contribution to group totals simply drops
// to zero on the next conditionsMet pass.
func shutWell(w *WellNode, hard bool) {
	if hard {
		w.Shut = true
		w.State = StateShut
		return
	}
	installSlot(w, ControlSlot{Type: CtrlSurfaceRate, Target: 0, Dist: [3]float64{1, 1, 1}})
	w.Individual = false
	w.State = StateShut
}

// updateWellProductionTargets re-partitions g's currently active
// production target among its group-controlled producer children,
// first subtracting whatever its individually-controlled children are
// already contributing (§4.6 "updateWellProductionTargets"). Each
// group-controlled producer child receives remainder/η_g times its share
// of g.GuideRate(true); individually-controlled and shut wells are left
// untouched. ShouldUpdateTargets is cleared on g once the pass completes.
func updateWellProductionTargets(g *GroupNode) (err error) {
	if g.Prod == nil || g.Prod.ActiveMode == ProdNONE {
		g.ShouldUpdateTargets = false
		return nil
	}
	mode := g.Prod.ActiveMode
	target := g.Prod.LimitFor(mode)
	if target < 0 {
		g.ShouldUpdateTargets = false
		return nil
	}
	individualSum := 0.0
	for _, c := range g.Children {
		w, ok := c.(*WellNode)
		if !ok || !w.Individual || w.Shut {
			continue
		}
		rate, rerr := rateByMode(w.Rates(), mode, "", false)
		if rerr != nil {
			return rerr
		}
		individualSum += absf(rate)
	}
	remainder := target - individualSum
	if remainder < 0 {
		remainder = 0
	}
	guideSum := g.GuideRate(true)
	for _, c := range g.Children {
		w, ok := c.(*WellNode)
		if !ok || w.Individual || w.Shut || w.Kind != Producer || guideSum == 0 {
			continue
		}
		share := remainder / g.Eff() * w.GuideRate(true) / guideSum
		if err = installProdControl(w, mode, share); err != nil {
			return err
		}
	}
	g.ShouldUpdateTargets = false
	return nil
}

// updateWellInjectionTargets mirrors updateWellProductionTargets for
// injection groups (§9 Open Question, decided in DESIGN.md: no
// contradicting rule in §4.6, so the natural dual of the production
// path is implemented).
func updateWellInjectionTargets(g *GroupNode) (err error) {
	if g.Inj == nil || g.Inj.ActiveMode == InjNONE {
		g.ShouldUpdateTargets = false
		return nil
	}
	mode := g.Inj.ActiveMode
	target := g.Inj.LimitFor(mode)
	if target < 0 {
		g.ShouldUpdateTargets = false
		return nil
	}
	individualSum := 0.0
	for _, c := range g.Children {
		w, ok := c.(*WellNode)
		if !ok || !w.Individual || w.Shut {
			continue
		}
		rate, rerr := rateByMode(w.Rates(), "", mode, true)
		if rerr != nil {
			return rerr
		}
		individualSum += absf(rate)
	}
	remainder := target - individualSum
	if remainder < 0 {
		remainder = 0
	}
	guideSum := g.GuideRate(true)
	for _, c := range g.Children {
		w, ok := c.(*WellNode)
		if !ok || w.Individual || w.Shut || w.Kind != Injector || guideSum == 0 {
			continue
		}
		share := remainder / g.Eff() * w.GuideRate(true) / guideSum
		if err = installInjControl(w, mode, share); err != nil {
			return err
		}
	}
	g.ShouldUpdateTargets = false
	return nil
}
