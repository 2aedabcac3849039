// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package aquifer implements the Aquifer Connection Set and the
// Carter-Tracy Engine (spec §3 "Aquifer Connection", "Aquifer Runtime
// State"; §4.3). Grounded on the teacher's ele/ boundary-condition
// bookkeeping idiom (per-cell footprint, AddToRhs/AddToKb) generalised from
// a finite-element natural BC to an analytical aquifer source term.
package aquifer

import (
	"github.com/cpmech/goresim/facade"
	"github.com/cpmech/gosl/chk"
)

// Connection is one boundary-cell entry of an aquifer's connection list
// (spec §3 "Aquifer Connection")
type Connection struct {
	CellID           int
	FaceDir          facade.Direction
	InfluxCoeff      float64 // influxCoeff
	InfluxMultiplier float64 // influxMultiplier

	// derived at InitializeConnections
	FaceArea     float64
	CellDepth    float64
	AreaFraction float64 // αᵢ
}

// ConnectionSet is the ordered list of connections for one aquifer
type ConnectionSet struct {
	Conns []Connection
}

// NewConnectionSet builds a connection set from the raw (cellId,
// faceDirection, influxCoeff, influxMultiplier) tuples supplied by the Well
// Input schedule; call InitializeConnections before use
func NewConnectionSet(cellIDs []int, dirs []facade.Direction, influxCoeffs, influxMults []float64) (cs *ConnectionSet, err error) {
	n := len(cellIDs)
	if len(dirs) != n || len(influxCoeffs) != n || len(influxMults) != n {
		return nil, chk.Err("aquifer.NewConnectionSet: input slices must all have the same length, got %d,%d,%d,%d",
			len(cellIDs), len(dirs), len(influxCoeffs), len(influxMults))
	}
	if n == 0 {
		return nil, chk.Err("aquifer.NewConnectionSet: an aquifer needs at least one connected face")
	}
	cs = &ConnectionSet{Conns: make([]Connection, n)}
	for i := 0; i < n; i++ {
		cs.Conns[i] = Connection{
			CellID:           cellIDs[i],
			FaceDir:          dirs[i],
			InfluxCoeff:      influxCoeffs[i],
			InfluxMultiplier: influxMults[i],
		}
	}
	return
}

// InitializeConnections computes FaceArea, CellDepth and AreaFraction for
// every connection from the Fluid/Grid Facade. After this call
// Σ AreaFraction == 1 exactly (spec §8 invariant).
func (cs *ConnectionSet) InitializeConnections(grid facade.FluidGrid) (err error) {
	sumArea := 0.0
	for i := range cs.Conns {
		c := &cs.Conns[i]
		c.FaceArea = grid.FaceArea(c.CellID, c.FaceDir)
		c.CellDepth = grid.CellDepth(c.CellID)
		sumArea += c.FaceArea
	}
	if sumArea <= 0 {
		return chk.Err("aquifer.InitializeConnections: total face area must be positive, got %g", sumArea)
	}
	for i := range cs.Conns {
		cs.Conns[i].AreaFraction = cs.Conns[i].FaceArea / sumArea
	}
	return
}

// N returns the number of connections
func (cs *ConnectionSet) N() int { return len(cs.Conns) }
