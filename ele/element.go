// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ele defines the common element contract shared by the
// Carter-Tracy aquifer engine (ele/aquifer) and the multi-segment well
// evaluator (ele/msw): a before_step/assemble/after_step lifecycle writing
// additively into a facade.LinearSystem, generalised from the teacher's
// finite-element Element interface (AddToRhs/AddToKb against a *Solution).
package ele

import (
	"github.com/cpmech/goresim/facade"
)

// Element defines what every reservoir-core element (aquifer connection
// set, multi-segment well) must implement. The lifecycle mirrors §4's
// before_step/assemble/after_step narrative: BeforeStep captures the state
// at the start of a timestep (e.g. the aquifer's previous-step pressures),
// AddToRhs and AddToKb are called once per Newton iteration to add this
// element's contribution to the residual and Jacobian, and AfterStep commits the
// converged step (e.g. updates cumulative aquifer influx).
type Element interface {
	Id() int // identifies this element instance (aquifer id / well index)

	BeforeStep(sol *Solution) (err error) // called once at the start of a timestep
	AfterStep(sol *Solution) (err error)  // called once after a converged timestep

	// AddToRhs adds -R (this element's residual contribution) to the global
	// residual vector; AddToKb adds this element's Jacobian contribution to
	// the global sparse Jacobian. Both are additive: no element may assume
	// exclusive ownership of a row or column it did not allocate (§6).
	AddToRhs(ls *facade.LinearSystem, sol *Solution) (err error)
	AddToKb(ls *facade.LinearSystem, sol *Solution) (err error)
}

// WithConvergence is implemented by elements that report a per-iteration
// convergence classification beyond plain residual/Jacobian assembly (the
// multi-segment well evaluator; §4.5/§4.6)
type WithConvergence interface {
	ConvergenceStatus() []ConvergenceClass
}

// ConvergenceClass classifies a residual value per §4.5: Converged means
// the residual is within tolerance and is not reported; Normal means it
// exceeds tolerance but is finite and below the hard cutoff; TooLarge and
// NaN are the two numerical-fault severities of §7 class 2.
type ConvergenceClass int

const (
	ConvConverged ConvergenceClass = iota
	ConvNormal
	ConvTooLarge
	ConvNaN
)
