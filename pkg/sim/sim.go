// pkg/sim/sim.go
// Copyright(c) 2026 airsys contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"
	"time"
)

// UpdateContext carries the per-tick state that is shared by all of the
// aircraft systems: for now, just the simulation time step. Systems receive
// it by value; it is immutable for the duration of a tick.
type UpdateContext struct {
	delta time.Duration
}

// NewUpdateContext returns an UpdateContext for a tick of the given
// duration. A zero delta is legal and is used to re-evaluate decision logic
// at a known time boundary; a negative delta is a caller bug.
func NewUpdateContext(delta time.Duration) UpdateContext {
	if delta < 0 {
		panic(fmt.Sprintf("sim: negative update delta %s", delta))
	}
	return UpdateContext{delta: delta}
}

func (c UpdateContext) Delta() time.Duration { return c.delta }

// Engine models the subset of an engine that the electrical system cares
// about: the N2 spool speed, as a percentage of the reference RPM.
type Engine struct {
	N2 float32
}

func NewEngine() *Engine {
	return &Engine{}
}

// AuxiliaryPowerUnit models the APU's rotational speed as a percentage of
// its reference RPM.
type AuxiliaryPowerUnit struct {
	Speed float32
}

func NewAuxiliaryPowerUnit() *AuxiliaryPowerUnit {
	return &AuxiliaryPowerUnit{}
}

// HydraulicCircuit stands in for the hydraulic system until it is
// implemented; the electrical system only needs to know whether the blue
// circuit is pressurised, since that is what spins the emergency generator.
type HydraulicCircuit struct {
	BluePressurised bool
}

func NewHydraulicCircuit() *HydraulicCircuit {
	return &HydraulicCircuit{BluePressurised: true}
}

func (h *HydraulicCircuit) IsBluePressurised() bool {
	return h.BluePressurised
}
