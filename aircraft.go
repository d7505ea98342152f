// aircraft.go
// Copyright(c) 2026 airsys contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

// This file holds the host-side aircraft: the scalar system states that
// drive the electrical network (engines, APU, hydraulics, ground power),
// the overhead panel, and the circuit itself. Tick advances everything one
// step and turns observable output changes into events.

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/avsim/airsys/pkg/elec"
	"github.com/avsim/airsys/pkg/log"
	"github.com/avsim/airsys/pkg/sim"
	"github.com/avsim/airsys/pkg/util"

	"github.com/brunoga/deep"
)

type Aircraft struct {
	Engine1    *sim.Engine
	Engine2    *sim.Engine
	Apu        *sim.AuxiliaryPowerUnit
	Hydraulic  *sim.HydraulicCircuit
	ExtPwr     *elec.ExternalPowerSource
	Overhead   *elec.A320ElectricalOverheadPanel
	Electrical *elec.A320ElectricalCircuit

	eventStream *EventStream
	lastState   ElectricalState
	lg          *log.Logger
}

// BusState is the observable state of a single bus or TR, as reported by
// snapshots and telemetry.
type BusState struct {
	Powered bool    `json:"powered" msgpack:"powered"`
	Source  string  `json:"source,omitempty" msgpack:"source"`
	Volts   float32 `json:"volts,omitempty" msgpack:"volts"`
}

// ElectricalState is the per-tick observable output of the network: every
// bus and TR, the battery charging states, and the AC ESS feed contactor
// positions for the annunciators.
type ElectricalState struct {
	Buses            map[string]BusState `json:"buses" msgpack:"buses"`
	Battery1Charging bool                `json:"battery_1_charging" msgpack:"battery_1_charging"`
	Battery2Charging bool                `json:"battery_2_charging" msgpack:"battery_2_charging"`
	AcEssFeed1Closed bool                `json:"ac_ess_feed_1_closed" msgpack:"ac_ess_feed_1_closed"`
	AcEssFeed2Closed bool                `json:"ac_ess_feed_2_closed" msgpack:"ac_ess_feed_2_closed"`
}

func NewAircraft(es *EventStream, lg *log.Logger) *Aircraft {
	return &Aircraft{
		Engine1:     sim.NewEngine(),
		Engine2:     sim.NewEngine(),
		Apu:         sim.NewAuxiliaryPowerUnit(),
		Hydraulic:   sim.NewHydraulicCircuit(),
		ExtPwr:      elec.NewExternalPowerSource(),
		Overhead:    elec.NewA320ElectricalOverheadPanel(),
		Electrical:  elec.NewA320ElectricalCircuit(),
		eventStream: es,
		lg:          lg,
	}
}

// SetEngineN2 sets an engine's N2, clamped to a sane percentage.
func (a *Aircraft) SetEngineN2(number int, n2 float32) {
	switch number {
	case 1:
		a.Engine1.N2 = util.Clamp(n2, 0, 120)
	case 2:
		a.Engine2.N2 = util.Clamp(n2, 0, 120)
	default:
		panic(fmt.Sprintf("invalid engine number %d", number))
	}
}

func (a *Aircraft) SetApuSpeed(speed float32) {
	a.Apu.Speed = util.Clamp(speed, 0, 120)
}

// Tick advances the simulation by dt and posts events for any observable
// changes in the electrical network.
func (a *Aircraft) Tick(dt time.Duration) {
	context := sim.NewUpdateContext(dt)
	a.Electrical.Update(context, a.Engine1, a.Engine2, a.Apu, a.ExtPwr, a.Hydraulic, a.Overhead)
	a.lg.Debug("tick", slog.Duration("dt", dt))

	state := a.currentState()
	a.postChanges(a.lastState, state)
	a.lastState = state
}

// Snapshot returns a deep copy of the most recent observable state, safe
// for the caller to hold across ticks.
func (a *Aircraft) Snapshot() ElectricalState {
	return deep.MustCopy(a.lastState)
}

func busState(output elec.Current) BusState {
	return BusState{
		Powered: output.IsPowered(),
		Source:  util.Select(output.IsPowered(), output.Source().String(), ""),
		Volts:   output.Potential(),
	}
}

func (a *Aircraft) currentState() ElectricalState {
	e := a.Electrical
	return ElectricalState{
		Buses: map[string]BusState{
			"AC BUS 1":   busState(e.AcBus1().Output()),
			"AC BUS 2":   busState(e.AcBus2().Output()),
			"AC ESS BUS": busState(e.AcEssBus().Output()),
			"TR 1":       busState(e.Tr1().Output()),
			"TR 2":       busState(e.Tr2().Output()),
			"TR ESS":     busState(e.TrEss().Output()),
			"DC BUS 1":   busState(e.DcBus1().Output()),
			"DC BUS 2":   busState(e.DcBus2().Output()),
			"DC BAT BUS": busState(e.DcBatBus().Output()),
		},
		Battery1Charging: e.Battery1().Input().IsPowered(),
		Battery2Charging: e.Battery2().Input().IsPowered(),
		AcEssFeed1Closed: e.AcEssFeedContactor1().IsClosed(),
		AcEssFeed2Closed: e.AcEssFeedContactor2().IsClosed(),
	}
}

func (a *Aircraft) postChanges(prev, cur ElectricalState) {
	if a.eventStream == nil {
		return
	}

	for _, name := range util.SortedMapKeys(cur.Buses) {
		if prev.Buses[name] != cur.Buses[name] {
			a.eventStream.Post(Event{
				Kind:    BusPowerChangedEvent,
				Bus:     name,
				Powered: cur.Buses[name].Powered,
				Source:  cur.Buses[name].Source,
			})
		}
	}

	if prev.AcEssFeed1Closed != cur.AcEssFeed1Closed {
		a.eventStream.Post(Event{
			Kind:      ContactorMovedEvent,
			Contactor: a.Electrical.AcEssFeedContactor1().Id(),
			Closed:    cur.AcEssFeed1Closed,
		})
	}
	if prev.AcEssFeed2Closed != cur.AcEssFeed2Closed {
		a.eventStream.Post(Event{
			Kind:      ContactorMovedEvent,
			Contactor: a.Electrical.AcEssFeedContactor2().Id(),
			Closed:    cur.AcEssFeed2Closed,
		})
	}
}
