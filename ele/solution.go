// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ele

// Solution holds the primary-variable state shared by every element during
// assembly: current time, step length, and the global primary-variable
// vector Y (generalised from the teacher's {u,p} nodal DOFs to reservoir
// primary variables such as cell pressures and well BHPs/rates).
type Solution struct {
	T   float64   // current time
	Dt  float64   // current time-step length
	Y   []float64 // global primary-variable vector (cell pressures, well controls, ...)
	Yp  []float64 // primary-variable vector at the start of the current step (previous converged step)
	Its int       // current Newton iteration number, reset to 0 by Reset
}

// Reset clears the step state for a fresh timestep, keeping Y as the
// starting point for the upcoming Newton iteration (mirrors the teacher's
// Solution.Reset, generalised away from {u,v,a} dynamics terms that have no
// analog here)
func (o *Solution) Reset() {
	o.Its = 0
	copy(o.Yp, o.Y)
}
