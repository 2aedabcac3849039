// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ad implements a forward-mode automatic-differentiation scalar
// carrying a value plus partial derivatives with respect to a fixed set of
// primary variables. Every physics quantity assembled into a residual is
// written in terms of Scalar so that the Jacobian contribution follows from
// the chain rule instead of being derived and coded by hand at each call
// site.
package ad

import "math"

// Scalar holds a value and its partial derivatives w.r.t. N primary variables
type Scalar struct {
	V float64   // value
	D []float64 // D[k] = ∂V/∂x_k
}

// New returns a new Scalar with n derivative slots, all zero
func New(value float64, n int) Scalar {
	return Scalar{V: value, D: make([]float64, n)}
}

// Constant returns a Scalar with no dependence on any primary variable
func Constant(value float64, n int) Scalar {
	return Scalar{V: value, D: make([]float64, n)}
}

// Variable returns a Scalar representing the k-th primary variable itself:
// value = value, ∂/∂x_k = 1, all other derivatives zero
func Variable(value float64, k, n int) Scalar {
	s := New(value, n)
	s.D[k] = 1
	return s
}

// Value returns the value
func (s Scalar) Value() float64 { return s.V }

// Derivative returns ∂s/∂x_i
func (s Scalar) Derivative(i int) float64 {
	if i < 0 || i >= len(s.D) {
		return 0
	}
	return s.D[i]
}

// Nvars returns the number of primary variables this Scalar is aware of
func (s Scalar) Nvars() int { return len(s.D) }

// ClearDerivatives zeroes all derivatives in place, leaving the value
// unchanged. Use this whenever a Scalar crosses from one primary-variable
// domain into another (e.g. a neighbour cell's upwinded density referenced
// by a local residual) so that its derivatives do not silently contaminate
// the local Jacobian row.
func (s *Scalar) ClearDerivatives() {
	for i := range s.D {
		s.D[i] = 0
	}
}

// Cleared returns a copy of s with all derivatives zeroed
func Cleared(s Scalar) Scalar {
	c := New(s.V, len(s.D))
	return c
}

// clone allocates a new Scalar with the same number of derivative slots as s
func (s Scalar) clone() Scalar {
	return New(0, len(s.D))
}

// Add returns s + other
func (s Scalar) Add(other Scalar) Scalar {
	r := s.clone()
	r.V = s.V + other.V
	for i := range r.D {
		r.D[i] = s.D[i] + other.D[i]
	}
	return r
}

// AddFloat returns s + c
func (s Scalar) AddFloat(c float64) Scalar {
	r := s
	r.D = append([]float64(nil), s.D...)
	r.V = s.V + c
	return r
}

// Sub returns s - other
func (s Scalar) Sub(other Scalar) Scalar {
	r := s.clone()
	r.V = s.V - other.V
	for i := range r.D {
		r.D[i] = s.D[i] - other.D[i]
	}
	return r
}

// SubFloat returns s - c
func (s Scalar) SubFloat(c float64) Scalar {
	return s.AddFloat(-c)
}

// Neg returns -s
func (s Scalar) Neg() Scalar {
	r := s.clone()
	r.V = -s.V
	for i := range r.D {
		r.D[i] = -s.D[i]
	}
	return r
}

// Mul returns s * other:  d(uv) = u dv + v du
func (s Scalar) Mul(other Scalar) Scalar {
	r := s.clone()
	r.V = s.V * other.V
	for i := range r.D {
		r.D[i] = s.D[i]*other.V + s.V*other.D[i]
	}
	return r
}

// Scale returns s * c
func (s Scalar) Scale(c float64) Scalar {
	r := s.clone()
	r.V = s.V * c
	for i := range r.D {
		r.D[i] = s.D[i] * c
	}
	return r
}

// Div returns s / other:  d(u/v) = (v du - u dv) / v²
func (s Scalar) Div(other Scalar) Scalar {
	r := s.clone()
	r.V = s.V / other.V
	v2 := other.V * other.V
	for i := range r.D {
		r.D[i] = (other.V*s.D[i] - s.V*other.D[i]) / v2
	}
	return r
}

// Inv returns 1/s
func (s Scalar) Inv() Scalar {
	r := s.clone()
	r.V = 1.0 / s.V
	f := -1.0 / (s.V * s.V)
	for i := range r.D {
		r.D[i] = f * s.D[i]
	}
	return r
}

// Exp returns exp(s)
func (s Scalar) Exp() Scalar {
	r := s.clone()
	r.V = math.Exp(s.V)
	for i := range r.D {
		r.D[i] = r.V * s.D[i]
	}
	return r
}

// Log returns ln(s)
func (s Scalar) Log() Scalar {
	r := s.clone()
	r.V = math.Log(s.V)
	for i := range r.D {
		r.D[i] = s.D[i] / s.V
	}
	return r
}

// Pow returns s**p for a constant exponent p
func (s Scalar) Pow(p float64) Scalar {
	r := s.clone()
	r.V = math.Pow(s.V, p)
	f := p * math.Pow(s.V, p-1)
	for i := range r.D {
		r.D[i] = f * s.D[i]
	}
	return r
}

// Abs returns |s|; derivative follows the sign of the value (undefined at
// V==0, where the right derivative is returned)
func (s Scalar) Abs() Scalar {
	if s.V < 0 {
		return s.Neg()
	}
	return s
}

// Sum adds up a slice of Scalars (all sharing the same number of vars)
func Sum(vals []Scalar) Scalar {
	if len(vals) == 0 {
		return Scalar{}
	}
	r := New(0, len(vals[0].D))
	for _, v := range vals {
		r = r.Add(v)
	}
	return r
}
