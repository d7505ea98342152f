// pkg/elec/a320.go
// Copyright(c) 2026 airsys contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package elec

import (
	"time"

	"github.com/avsim/airsys/pkg/sim"
)

// AcEssFeedTransitionDelay is how long AC BUS 1 must be unpowered before
// the AC ESS BUS automatically transfers to AC BUS 2. When AC BUS 1
// returns, the transfer reverts immediately, unless the pilot has selected
// ALTN.
const AcEssFeedTransitionDelay = 3 * time.Second

// A320ElectricalCircuit is the A320 electrical distribution network:
// generators feeding contactors feeding buses, transformer rectifiers
// converting down to the DC side, and the battery bus at the bottom. All
// nodes are created once and mutated in place; Update runs the whole
// network once per tick.
type A320ElectricalCircuit struct {
	engine1Gen          *EngineGenerator
	engine1GenContactor *Contactor
	engine2Gen          *EngineGenerator
	engine2GenContactor *Contactor
	busTie1Contactor    *Contactor
	busTie2Contactor    *Contactor
	apuGen              *ApuGenerator
	apuGenContactor     *Contactor
	extPwrContactor     *Contactor

	acBus1              *ElectricalBus
	acBus2              *ElectricalBus
	acEssBus            *ElectricalBus
	acEssFeedContactor1 *Contactor
	acEssFeedContactor2 *Contactor
	acEssFeedDelayGate  sim.DelayedTrueLogicGate

	// The electrical diagram lists separate contactors for each transformer
	// rectifier. As there is no button affecting the contactor, nor any
	// logic that we know of, for now the contactors are just assumed to be
	// part of the transformer rectifiers.
	tr1   *TransformerRectifier
	tr2   *TransformerRectifier
	trEss *TransformerRectifier

	acEssToTrEssContactor *Contactor
	emergencyGen          *EmergencyGenerator
	emergencyGenContactor *Contactor

	dcBus1             *ElectricalBus
	dcBus2             *ElectricalBus
	dcBus1TieContactor *Contactor
	dcBus2TieContactor *Contactor
	dcBatBus           *ElectricalBus

	battery1          *Battery
	battery1Contactor *Contactor
	battery2          *Battery
	battery2Contactor *Contactor
}

// NewA320ElectricalCircuit returns the fully wired network with every
// contactor open, both batteries full, and nothing energized.
func NewA320ElectricalCircuit() *A320ElectricalCircuit {
	return &A320ElectricalCircuit{
		engine1Gen:          NewEngineGenerator(1),
		engine1GenContactor: NewContactor("9XU1"),
		engine2Gen:          NewEngineGenerator(2),
		engine2GenContactor: NewContactor("9XU2"),
		busTie1Contactor:    NewContactor("11XU1"),
		busTie2Contactor:    NewContactor("11XU2"),
		apuGen:              NewApuGenerator(),
		apuGenContactor:     NewContactor("3XS"),
		extPwrContactor:     NewContactor("3XG"),

		acBus1:              NewElectricalBus("AC BUS 1"),
		acBus2:              NewElectricalBus("AC BUS 2"),
		acEssBus:            NewElectricalBus("AC ESS BUS"),
		acEssFeedContactor1: NewContactor("3XC1"),
		acEssFeedContactor2: NewContactor("3XC2"),
		acEssFeedDelayGate:  sim.NewDelayedTrueLogicGate(AcEssFeedTransitionDelay),

		tr1:   NewTransformerRectifier("TR 1"),
		tr2:   NewTransformerRectifier("TR 2"),
		trEss: NewTransformerRectifier("TR ESS"),

		acEssToTrEssContactor: NewContactor("15XE1"),
		emergencyGen:          NewEmergencyGenerator(),
		emergencyGenContactor: NewContactor("2XE"),

		dcBus1:             NewElectricalBus("DC BUS 1"),
		dcBus1TieContactor: NewContactor("1PC1"),
		dcBus2:             NewElectricalBus("DC BUS 2"),
		dcBus2TieContactor: NewContactor("1PC2"),
		dcBatBus:           NewElectricalBus("DC BAT BUS"),

		battery1:          FullBattery(1),
		battery1Contactor: NewContactor("6PB1"),
		battery2:          FullBattery(2),
		battery2Contactor: NewContactor("6PB2"),
	}
}

// Update runs one tick of the distribution logic: sample the generators,
// decide the source priorities, toggle the contactors, then resolve the
// feeder lists from the sources outward. Back-feeds (bus ties, the
// emergency path, the DC BAT BUS reverse ties) are appended after the
// primary pass, so a single pass suffices; no fixed-point iteration.
func (c *A320ElectricalCircuit) Update(context sim.UpdateContext, engine1, engine2 *sim.Engine,
	apu *sim.AuxiliaryPowerUnit, extPwr *ExternalPowerSource, hydraulic *sim.HydraulicCircuit,
	overhead *A320ElectricalOverheadPanel) {
	c.engine1Gen.Update(engine1)
	c.engine2Gen.Update(engine2)
	c.apuGen.Update(apu)
	c.emergencyGen.Update(hydraulic.IsBluePressurised())

	gen1ProvidesPower := overhead.Gen1.IsOn() && c.engine1Gen.Output().IsPowered()
	gen2ProvidesPower := overhead.Gen2.IsOn() && c.engine2Gen.Output().IsPowered()
	noEngineGenProvidesPower := !gen1ProvidesPower && !gen2ProvidesPower
	onlyOneEngineGenIsPowered := gen1ProvidesPower != gen2ProvidesPower
	extPwrProvidesPower := overhead.ExtPwr.IsOn() && extPwr.Output().IsPowered() &&
		(noEngineGenProvidesPower || onlyOneEngineGenIsPowered)
	apuGenProvidesPower := overhead.ApuGen.IsOn() && c.apuGen.Output().IsPowered() &&
		!extPwrProvidesPower && (noEngineGenProvidesPower || onlyOneEngineGenIsPowered)

	c.engine1GenContactor.Toggle(gen1ProvidesPower)
	c.engine2GenContactor.Toggle(gen2ProvidesPower)
	c.apuGenContactor.Toggle(apuGenProvidesPower)
	c.extPwrContactor.Toggle(extPwrProvidesPower)

	apuOrExtPwrProvidesPower := extPwrProvidesPower || apuGenProvidesPower
	c.busTie1Contactor.Toggle((onlyOneEngineGenIsPowered && !apuOrExtPwrProvidesPower) ||
		(apuOrExtPwrProvidesPower && !gen1ProvidesPower))
	c.busTie2Contactor.Toggle((onlyOneEngineGenIsPowered && !apuOrExtPwrProvidesPower) ||
		(apuOrExtPwrProvidesPower && !gen2ProvidesPower))

	PowerBy(c.apuGenContactor, c.apuGen)
	PowerBy(c.extPwrContactor, extPwr)

	PowerBy(c.engine1GenContactor, c.engine1Gen)
	PowerBy(c.busTie1Contactor, c.engine1GenContactor, c.apuGenContactor, c.extPwrContactor)

	PowerBy(c.engine2GenContactor, c.engine2Gen)
	PowerBy(c.busTie2Contactor, c.engine2GenContactor, c.apuGenContactor, c.extPwrContactor)

	OrPowerBy(c.busTie1Contactor, c.busTie2Contactor)
	OrPowerBy(c.busTie2Contactor, c.busTie1Contactor)

	PowerBy(c.acBus1, c.engine1GenContactor, c.busTie1Contactor)
	PowerBy(c.acBus2, c.engine2GenContactor, c.busTie2Contactor)

	PowerBy(c.tr1, c.acBus1)
	PowerBy(c.tr2, c.acBus2)

	c.acEssFeedDelayGate.Update(context, c.acBus1.Output().IsUnpowered())

	c.acEssFeedContactor1.Toggle(c.acBus1.Output().IsPowered() &&
		(!c.acEssFeedDelayGate.Output() && overhead.AcEssFeed.IsNormal()))
	c.acEssFeedContactor2.Toggle(c.acBus2.Output().IsPowered() &&
		(c.acEssFeedDelayGate.Output() || overhead.AcEssFeed.IsAltn()))

	PowerBy(c.acEssFeedContactor1, c.acBus1)
	PowerBy(c.acEssFeedContactor2, c.acBus2)

	PowerBy(c.acEssBus, c.acEssFeedContactor1, c.acEssFeedContactor2)

	c.emergencyGenContactor.Toggle(c.acBus1.Output().IsUnpowered() && c.acBus2.Output().IsUnpowered())
	PowerBy(c.emergencyGenContactor, c.emergencyGen)

	PowerBy(c.acEssToTrEssContactor, c.acEssBus, c.emergencyGenContactor)
	c.acEssToTrEssContactor.Toggle(hasFailedOrIsUnpowered(c.tr1) || hasFailedOrIsUnpowered(c.tr2))

	// Back-feed: when the emergency generator is the only source, it
	// powers the AC ESS BUS through this contactor.
	OrPowerBy(c.acEssBus, c.acEssToTrEssContactor)

	PowerBy(c.trEss, c.acEssToTrEssContactor, c.emergencyGenContactor)

	PowerBy(c.dcBus1, c.tr1)
	PowerBy(c.dcBus2, c.tr2)

	PowerBy(c.dcBus1TieContactor, c.dcBus1)
	PowerBy(c.dcBus2TieContactor, c.dcBus2)

	c.dcBus1TieContactor.Toggle(c.dcBus1.Output().IsPowered() || c.dcBus2.Output().IsPowered())
	c.dcBus2TieContactor.Toggle(c.dcBus1.Output().IsUnpowered() || c.dcBus2.Output().IsUnpowered())

	PowerBy(c.dcBatBus, c.dcBus1TieContactor, c.dcBus2TieContactor)

	// Back-feed: a DC bus that lost its own TR is fed from the DC BAT BUS
	// through its tie contactor, in reverse.
	OrPowerBy(c.dcBus1TieContactor, c.dcBatBus)
	OrPowerBy(c.dcBus2TieContactor, c.dcBatBus)
	OrPowerBy(c.dcBus1, c.dcBus1TieContactor)
	OrPowerBy(c.dcBus2, c.dcBus2TieContactor)

	PowerBy(c.battery1Contactor, c.dcBatBus)
	PowerBy(c.battery2Contactor, c.dcBatBus)

	c.battery1Contactor.Toggle(!c.battery1.IsFull())
	c.battery2Contactor.Toggle(!c.battery2.IsFull())

	PowerBy(c.battery1, c.battery1Contactor)
	PowerBy(c.battery2, c.battery2Contactor)
}

func hasFailedOrIsUnpowered(tr *TransformerRectifier) bool {
	return tr.HasFailed() || tr.Output().IsUnpowered()
}

// Accessors for the observable parts of the network: bus and TR nodes (for
// outputs and failure injection), battery charge inputs, the emergency
// generator, and the AC ESS feed contactors (for annunciator logic).

func (c *A320ElectricalCircuit) AcBus1() *ElectricalBus   { return c.acBus1 }
func (c *A320ElectricalCircuit) AcBus2() *ElectricalBus   { return c.acBus2 }
func (c *A320ElectricalCircuit) AcEssBus() *ElectricalBus { return c.acEssBus }

func (c *A320ElectricalCircuit) Tr1() *TransformerRectifier   { return c.tr1 }
func (c *A320ElectricalCircuit) Tr2() *TransformerRectifier   { return c.tr2 }
func (c *A320ElectricalCircuit) TrEss() *TransformerRectifier { return c.trEss }

func (c *A320ElectricalCircuit) DcBus1() *ElectricalBus   { return c.dcBus1 }
func (c *A320ElectricalCircuit) DcBus2() *ElectricalBus   { return c.dcBus2 }
func (c *A320ElectricalCircuit) DcBatBus() *ElectricalBus { return c.dcBatBus }

func (c *A320ElectricalCircuit) Battery1() *Battery { return c.battery1 }
func (c *A320ElectricalCircuit) Battery2() *Battery { return c.battery2 }

func (c *A320ElectricalCircuit) EmergencyGen() *EmergencyGenerator { return c.emergencyGen }

func (c *A320ElectricalCircuit) AcEssFeedContactor1() *Contactor { return c.acEssFeedContactor1 }
func (c *A320ElectricalCircuit) AcEssFeedContactor2() *Contactor { return c.acEssFeedContactor2 }
