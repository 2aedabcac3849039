// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

import "github.com/cpmech/goresim/facade"

// Set is the ordered collection of Elements assembled within one Newton
// iteration, generalised from the teacher's Domain.Elems ([]ele.Element,
// fem/domain.go) to reservoir-core aquifer and well elements. Per §5, every
// member owns disjoint residual rows and Jacobian row-cells, so the
// iteration order here carries no numerical meaning: a Set only needs to
// visit every member once per lifecycle call, the same way Domain.UpdateElems
// loops its Elems slice without caring about order.
type Set []Element

// BeforeStep calls BeforeStep on every element in the set
func (s Set) BeforeStep(sol *Solution) (err error) {
	for _, e := range s {
		if err = e.BeforeStep(sol); err != nil {
			return err
		}
	}
	return nil
}

// AddToRhs calls AddToRhs on every element in the set
func (s Set) AddToRhs(ls *facade.LinearSystem, sol *Solution) (err error) {
	for _, e := range s {
		if err = e.AddToRhs(ls, sol); err != nil {
			return err
		}
	}
	return nil
}

// AddToKb calls AddToKb on every element in the set
func (s Set) AddToKb(ls *facade.LinearSystem, sol *Solution) (err error) {
	for _, e := range s {
		if err = e.AddToKb(ls, sol); err != nil {
			return err
		}
	}
	return nil
}

// AfterStep calls AfterStep on every element in the set
func (s Set) AfterStep(sol *Solution) (err error) {
	for _, e := range s {
		if err = e.AfterStep(sol); err != nil {
			return err
		}
	}
	return nil
}
