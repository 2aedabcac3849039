// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package numfit implements the least-squares polynomial fit used by the
// Carter-Tracy aquifer's dimensionless influence function: an ordered table
// of (tD, pD) samples is reduced to a small set of polynomial coefficients
// via a QR-factored normal-equation-free least-squares solve.
package numfit

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Coeffs holds the fitted polynomial pD(tD) ≈ Σ_k c[k]·tD^k with a bias
// term, or Σ_k c[k]·tD^(k+1) without one
type Coeffs struct {
	C     []float64 // coefficients, c[0] is the bias term if Bias
	Order int       // polynomial order
	Bias  bool       // whether a bias (constant) term is included
}

// Eval evaluates the fitted polynomial at tD
func (c Coeffs) Eval(tD float64) float64 {
	var sum, pow float64
	pow = 1.0
	if !c.Bias {
		pow = tD
	}
	for k := 0; k < len(c.C); k++ {
		sum += c.C[k] * pow
		pow *= tD
	}
	return sum
}

// Slope returns the derivative dpD/dtD of the fitted polynomial at tD
func (c Coeffs) Slope(tD float64) float64 {
	var sum, pow float64
	pow = 1.0
	first, shift := 1, 0
	if !c.Bias {
		first, shift = 0, 1
	}
	for k := first; k < len(c.C); k++ {
		sum += float64(k+shift) * c.C[k] * pow
		pow *= tD
	}
	return sum
}

// Fit solves the least-squares problem pD ≈ Σ_k c[k]·tD^k for order+1
// coefficients, or, if withBias is false, pD ≈ Σ_k c[k]·tD^(k+1) for order
// coefficients, given at least as many samples as coefficients, strictly
// increasing in tD.
//
// The Vandermonde system is solved via Householder QR: A = Q·R, then
// R·c = Qᵀ·b is solved by back-substitution. This mirrors the teacher's
// habit (mdl/porous.Model.Update) of hand-writing the numerical kernel on
// top of la/chk primitives rather than delegating to an external solver.
func Fit(tD, pD []float64, order int, withBias bool) (coeffs Coeffs, err error) {
	n := len(tD)
	if n != len(pD) {
		err = chk.Err("numfit.Fit: tD and pD must have the same length; got %d and %d", n, len(pD))
		return
	}
	ncoef := order + 1
	if !withBias {
		ncoef = order
	}
	if n < ncoef {
		err = chk.Err("insufficient_samples: need at least %d samples to fit order=%d (withBias=%v); got %d", ncoef, order, withBias, n)
		return
	}
	for i := 1; i < n; i++ {
		if tD[i] <= tD[i-1] {
			err = chk.Err("numfit.Fit: tD samples must be strictly increasing; tD[%d]=%v <= tD[%d]=%v", i, tD[i], i-1, tD[i-1])
			return
		}
	}

	// build Vandermonde matrix A [n x ncoef]
	A := la.MatAlloc(n, ncoef)
	for i := 0; i < n; i++ {
		pow := 1.0
		if !withBias {
			pow = tD[i]
		}
		for k := 0; k < ncoef; k++ {
			A[i][k] = pow
			pow *= tD[i]
		}
	}

	Q, R, err := householderQR(A)
	if err != nil {
		return
	}

	// b := Qᵀ·pD
	b := make([]float64, ncoef)
	for k := 0; k < ncoef; k++ {
		var sum float64
		for i := 0; i < n; i++ {
			sum += Q[i][k] * pD[i]
		}
		b[k] = sum
	}

	// back-substitution: R[0:ncoef][0:ncoef] · c = b
	c := make([]float64, ncoef)
	for k := ncoef - 1; k >= 0; k-- {
		sum := b[k]
		for j := k + 1; j < ncoef; j++ {
			sum -= R[k][j] * c[j]
		}
		if math.Abs(R[k][k]) < 1e-300 {
			err = chk.Err("numfit.Fit: singular fit; R[%d][%d] is (numerically) zero", k, k)
			return
		}
		c[k] = sum / R[k][k]
	}

	coeffs = Coeffs{C: c, Order: order, Bias: withBias}
	return
}

// householderQR factors the n x m (n >= m) matrix A as Q (n x m, orthonormal
// columns) times R (m x m, upper triangular), using Householder reflections.
func householderQR(A [][]float64) (Q, R [][]float64, err error) {
	n := len(A)
	if n == 0 {
		err = chk.Err("householderQR: empty matrix")
		return
	}
	m := len(A[0])

	// work on a copy
	work := la.MatAlloc(n, m)
	for i := 0; i < n; i++ {
		copy(work[i], A[i])
	}

	// accumulate Q as product of Householder reflections applied to identity
	Qfull := la.MatAlloc(n, n)
	for i := 0; i < n; i++ {
		Qfull[i][i] = 1.0
	}

	for k := 0; k < m; k++ {
		// compute Householder vector for column k, rows k..n-1
		var normx float64
		for i := k; i < n; i++ {
			normx += work[i][k] * work[i][k]
		}
		normx = math.Sqrt(normx)
		if normx < 1e-300 {
			continue
		}
		alpha := -normx
		if work[k][k] < 0 {
			alpha = normx
		}
		v := make([]float64, n)
		v[k] = work[k][k] - alpha
		for i := k + 1; i < n; i++ {
			v[i] = work[i][k]
		}
		var vnorm2 float64
		for i := k; i < n; i++ {
			vnorm2 += v[i] * v[i]
		}
		if vnorm2 < 1e-300 {
			continue
		}

		// apply H = I - 2vvᵀ/vᵀv to work (from the left)
		for j := k; j < m; j++ {
			var dot float64
			for i := k; i < n; i++ {
				dot += v[i] * work[i][j]
			}
			factor := 2.0 * dot / vnorm2
			for i := k; i < n; i++ {
				work[i][j] -= factor * v[i]
			}
		}

		// apply the same reflection to Qfull (from the right: Qfull = Qfull·H)
		for i := 0; i < n; i++ {
			var dot float64
			for j := k; j < n; j++ {
				dot += Qfull[i][j] * v[j]
			}
			factor := 2.0 * dot / vnorm2
			for j := k; j < n; j++ {
				Qfull[i][j] -= factor * v[j]
			}
		}
	}

	Q = la.MatAlloc(n, m)
	for i := 0; i < n; i++ {
		copy(Q[i], Qfull[i][:m])
	}
	R = la.MatAlloc(m, m)
	for i := 0; i < m; i++ {
		copy(R[i], work[i][:m])
	}
	return
}
