// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package msw implements the flow-control device models used by
// multi-segment wells: spiral ICDs, autonomous ICDs and valves (§4.4). Each
// device replaces a segment's default hydrostatic+friction pressure drop
// with a device-specific drop computed from the segment's mixed flow rate
// and mixture density.
//
// Directory repurposed from the teacher's mdl/conduct (liquid/gas relative
// conductivity models): same Model-interface-plus-New(name)-registry shape,
// new physics.
package msw

import (
	"github.com/cpmech/goresim/ad"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// FlowState holds the per-segment quantities a device needs to compute its
// pressure drop
type FlowState struct {
	Q        ad.Scalar // total mixed mass/volume rate through the device (WQTotal)
	RhoMix   ad.Scalar // mixture density
	WaterCut ad.Scalar // water volume fraction of the mixture
	GasCut   ad.Scalar // gas volume fraction of the mixture
}

// Device defines a segment flow-control device's pressure-drop law
type Device interface {
	Init(prms dbf.Params) error                         // Init initialises this structure
	GetPrms(example bool) dbf.Params                    // GetPrms gets (an example) of parameters
	PressureDrop(f FlowState) (dp ad.Scalar, err error) // pressure drop for the given flow state
}

// New returns a new device model by name
func New(name string) (model Device, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in msw device database", name)
	}
	return allocator(), nil
}

// allocators holds all available device models
var allocators = map[string]func() Device{}

func init() {
	allocators["sicd"] = func() Device { return new(SpiralICD) }
	allocators["aicd"] = func() Device { return new(AutoICD) }
	allocators["valve"] = func() Device { return new(Valve) }
}
