// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package msw

import (
	"testing"

	"github.com/cpmech/goresim/ad"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

func Test_devices01(tst *testing.T) {

	chk.PrintTitle("devices01: spiral ICD quadratic drop")

	dev, err := New("sicd")
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	err = dev.Init(dev.GetPrms(true))
	if err != nil {
		tst.Errorf("Init failed: %v\n", err)
		return
	}
	q := ad.Variable(2.0, 0, 1)
	rho := ad.Constant(1000.0, 1)
	dp, err := dev.PressureDrop(FlowState{Q: q, RhoMix: rho})
	if err != nil {
		tst.Errorf("PressureDrop failed: %v\n", err)
		return
	}
	sicd := dev.(*SpiralICD)
	want := sicd.Strength * 1000.0 * 2.0 * 2.0
	chk.Float64(tst, "dp", 1e-12, dp.V, want)
}

func Test_devices02(tst *testing.T) {

	chk.PrintTitle("devices02: shut valve rejects PressureDrop")

	v := new(Valve)
	prms := v.GetPrms(true)
	prms = append(prms, &dbf.P{N: "shut", V: 1})
	err := v.Init(prms)
	if err != nil {
		tst.Errorf("Init failed: %v\n", err)
		return
	}
	_, err = v.PressureDrop(FlowState{Q: ad.Constant(1, 1), RhoMix: ad.Constant(1000, 1)})
	if err == nil {
		tst.Errorf("expected error calling PressureDrop on a shut valve\n")
	}
}
