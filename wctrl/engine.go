// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wctrl

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Transition records one well-state-machine change, for the run log
type Transition struct {
	Well string
	From WellState
	To   WellState
	Why  string
}

// Engine drives the recursive constraint pass over a well/group tree
// (§4.6 "Group Control Engine")
type Engine struct {
	Root         *GroupNode
	Wells        []*WellNode
	HardStopOnShut bool // if true, WELL-procedure shut-ins disable the well outright
	Transitions  []Transition
}

// FindNode searches the whole tree for a node named name
func (eng *Engine) FindNode(name string) Node {
	if eng.Root == nil {
		return nil
	}
	return findNode(eng.Root, name)
}

// NumberOfLeaves returns the total well-leaf count of the tree
func (eng *Engine) NumberOfLeaves() int {
	if eng.Root == nil {
		return 0
	}
	return numberOfLeaves(eng.Root)
}

func (eng *Engine) logTransition(w *WellNode, to WellState, why string) {
	eng.Transitions = append(eng.Transitions, Transition{Well: w.Name(), From: w.State, To: to, Why: why})
	w.State = to
}

// shutWell applies shutWell and records the resulting state transition
func (eng *Engine) shutWell(w *WellNode, mode ProdMode) {
	from := w.State
	shutWell(w, eng.HardStopOnShut)
	eng.Transitions = append(eng.Transitions, Transition{Well: w.Name(), From: from, To: w.State, Why: "WELL procedure on mode " + string(mode)})
}

// ConditionsMet runs the §4.6 recursive constraint pass starting at
// eng.Root. It returns false as soon as any group in the tree is found
// in violation of one of its own (non-active) production or injection
// limits, after applying that group's configured response (shut the
// worst offender, re-target the subtree, or do nothing, depending on
// the violated spec's procedure/mode). A caller runs this once per
// Newton iteration (or timestep) until it returns true.
func (eng *Engine) ConditionsMet() (met bool, agg Rates, err error) {
	if eng.Root == nil {
		return true, Rates{}, nil
	}
	return eng.conditionsMet(eng.Root)
}

func (eng *Engine) conditionsMet(node Node) (met bool, agg Rates, err error) {
	switch n := node.(type) {

	case *WellNode:
		return true, n.Rates(), nil

	case *GroupNode:
		for _, c := range n.Children {
			var cMet bool
			var cAgg Rates
			cMet, cAgg, err = eng.conditionsMet(c)
			if err != nil {
				return false, Rates{}, err
			}
			if !cMet {
				return false, Rates{}, nil
			}
			agg = agg.Add(cAgg)
		}

		if n.Inj != nil {
			for _, m := range []InjMode{InjRATE, InjRESV} {
				if m == n.Inj.ActiveMode {
					continue
				}
				target := n.Inj.LimitFor(m)
				if target < 0 {
					continue
				}
				rate, rerr := rateByMode(agg, "", m, true)
				if rerr != nil {
					return false, Rates{}, rerr
				}
				if rate > target {
					io.Pfyel("wctrl: group %q exceeds injection target %s: %.6g > %.6g\n", n.Name(), m, rate, target)
					if err = applyInjGroupControl(n, m, target, false); err != nil {
						return false, Rates{}, err
					}
					n.Inj.ActiveMode = m
					return false, Rates{}, nil
				}
			}
		}

		if n.Prod != nil {
			for _, m := range []ProdMode{ProdORAT, ProdWRAT, ProdGRAT, ProdLRAT, ProdRESV} {
				if m == n.Prod.ActiveMode {
					continue
				}
				target := n.Prod.LimitFor(m)
				if target < 0 {
					continue
				}
				rate, rerr := rateByMode(agg, m, "", false)
				if rerr != nil {
					return false, Rates{}, rerr
				}
				// production rates are signed negative by convention (§3); the
				// target is a magnitude, so compare against the absolute value
				if absf(rate) > target {
					io.Pfyel("wctrl: group %q exceeds production target %s: %.6g > %.6g\n", n.Name(), m, absf(rate), target)
					switch n.Prod.Procedure {
					case ProcWELL:
						worst, _, werr := getWorstOffending(n, m)
						if werr != nil {
							return false, Rates{}, werr
						}
						if worst != nil {
							eng.shutWell(worst, m)
						}
					case ProcRATE:
						if err = applyProdGroupControl(n, m, target, false); err != nil {
							return false, Rates{}, err
						}
						n.Prod.ActiveMode = m
					case ProcNoneP:
						// no corrective action; the violation is logged and the
						// caller decides whether to keep iterating
					}
					return false, Rates{}, nil
				}
			}
		}

		return true, agg, nil
	}
	return false, Rates{}, chk.Err("wctrl.conditionsMet: unknown node type %T", node)
}

// Reinject applies the named group's REIN policy
func (eng *Engine) Reinject(groupName string) error {
	n := eng.FindNode(groupName)
	g, ok := n.(*GroupNode)
	if !ok {
		return chk.Err("wctrl.Reinject: %q is not a group", groupName)
	}
	return reinject(eng.Root, g)
}

// VoidageReplace applies the named group's VREP policy
func (eng *Engine) VoidageReplace(groupName string) error {
	n := eng.FindNode(groupName)
	g, ok := n.(*GroupNode)
	if !ok {
		return chk.Err("wctrl.VoidageReplace: %q is not a group", groupName)
	}
	return voidageReplace(eng.Root, g)
}

// UpdateTargets walks the tree and re-partitions targets for every
// group flagged ShouldUpdateTargets (§4.6)
func (eng *Engine) UpdateTargets() error {
	if eng.Root == nil {
		return nil
	}
	var walk func(n Node) error
	walk = func(n Node) error {
		g, ok := n.(*GroupNode)
		if !ok {
			return nil
		}
		if g.ShouldUpdateTargets {
			if err := updateWellProductionTargets(g); err != nil {
				return err
			}
			if err := updateWellInjectionTargets(g); err != nil {
				return err
			}
		}
		for _, c := range g.Children {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(eng.Root)
}
