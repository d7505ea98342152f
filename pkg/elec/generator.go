// pkg/elec/generator.go
// Copyright(c) 2026 airsys contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package elec

import (
	"fmt"

	"github.com/avsim/airsys/pkg/sim"
)

// Generators compute their output purely from their mechanical driver
// state. The overhead GEN/APU GEN/EXT PWR pushbuttons are deliberately not
// consulted here but by the distribution layer: the physical generator's
// raw availability stays observable even when it is switched off, which is
// what configurations like "engine running, GEN 1 off" exercise.

const (
	// N2 / APU speed above which the generator provides nominal output, as
	// a percentage of the reference RPM.
	PowerOutputThresholdPercent = 57.5

	acPotentialVolts = 115.
	acFrequencyHertz = 400.
	acAmperage       = 782.60
)

// EngineGenerator is one of the two engine-driven IDGs.
type EngineGenerator struct {
	number int
	output Current
}

func NewEngineGenerator(number int) *EngineGenerator {
	if number != 1 && number != 2 {
		panic(fmt.Sprintf("elec: invalid engine generator number %d", number))
	}
	return &EngineGenerator{number: number}
}

func (g *EngineGenerator) Update(engine *sim.Engine) {
	if engine.N2 > PowerOutputThresholdPercent {
		g.output = AlternatingCurrent(EngineGeneratorSource(g.number),
			acFrequencyHertz, acPotentialVolts, acAmperage)
	} else {
		g.output = NoCurrent
	}
}

func (g *EngineGenerator) Output() Current { return g.output }

// ApuGenerator is the generator driven by the auxiliary power unit.
type ApuGenerator struct {
	output Current
}

func NewApuGenerator() *ApuGenerator {
	return &ApuGenerator{}
}

func (g *ApuGenerator) Update(apu *sim.AuxiliaryPowerUnit) {
	if apu.Speed > PowerOutputThresholdPercent {
		g.output = AlternatingCurrent(ApuGeneratorSource(),
			acFrequencyHertz, acPotentialVolts, acAmperage)
	} else {
		g.output = NoCurrent
	}
}

func (g *ApuGenerator) Output() Current { return g.output }

// ExternalPowerSource is the ground power receptacle.
type ExternalPowerSource struct {
	PluggedIn bool
}

func NewExternalPowerSource() *ExternalPowerSource {
	return &ExternalPowerSource{}
}

func (e *ExternalPowerSource) Output() Current {
	if e.PluggedIn {
		return AlternatingCurrent(ExternalSource(),
			acFrequencyHertz, acPotentialVolts, acAmperage)
	}
	return NoCurrent
}

// EmergencyGenerator is driven by the ram air turbine via the blue
// hydraulic circuit. Starting it is attempted externally; once started it
// keeps producing power for as long as blue hydraulic pressure is present.
type EmergencyGenerator struct {
	running      bool
	attemptStart bool
}

func NewEmergencyGenerator() *EmergencyGenerator {
	return &EmergencyGenerator{}
}

func (g *EmergencyGenerator) Update(isBluePressurised bool) {
	// TODO: model RAT deployment; for now the start attempt comes from outside.
	g.running = isBluePressurised && g.attemptStart
}

func (g *EmergencyGenerator) AttemptStart() {
	g.attemptStart = true
}

func (g *EmergencyGenerator) IsRunning() bool { return g.running }

func (g *EmergencyGenerator) Output() Current {
	if g.running {
		return AlternatingCurrent(EmergencyGeneratorSource(),
			acFrequencyHertz, acPotentialVolts, acAmperage)
	}
	return NoCurrent
}
