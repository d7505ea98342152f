// pkg/elec/current.go
// Copyright(c) 2026 airsys contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package elec

// This file defines the value types that flow through the electrical
// network: PowerSource identifies where a current ultimately originated and
// Current describes what is present on a wire. Components exchange them
// through the PowerConductor/Powerable pair at the bottom of the file.

import (
	"fmt"
	"log/slog"
)

type PowerSourceType int8

const (
	PowerSourceNone PowerSourceType = iota
	PowerSourceEngineGenerator
	PowerSourceApuGenerator
	PowerSourceExternal
	PowerSourceEmergencyGenerator
	PowerSourceBattery
)

func (t PowerSourceType) String() string {
	switch t {
	case PowerSourceNone:
		return "none"
	case PowerSourceEngineGenerator:
		return "engine generator"
	case PowerSourceApuGenerator:
		return "APU generator"
	case PowerSourceExternal:
		return "external power"
	case PowerSourceEmergencyGenerator:
		return "emergency generator"
	case PowerSourceBattery:
		return "battery"
	default:
		return fmt.Sprintf("PowerSourceType(%d)", int(t))
	}
}

// PowerSource identifies the ultimate upstream origin of a current. Number
// distinguishes the two engine generators and the two batteries; it is zero
// for the other source types. PowerSources compare with ==.
type PowerSource struct {
	Type   PowerSourceType
	Number int
}

// NoPowerSource is what Current.Source() returns for an unpowered current.
var NoPowerSource = PowerSource{}

func EngineGeneratorSource(number int) PowerSource {
	if number != 1 && number != 2 {
		panic(fmt.Sprintf("elec: invalid engine generator number %d", number))
	}
	return PowerSource{Type: PowerSourceEngineGenerator, Number: number}
}

func ApuGeneratorSource() PowerSource {
	return PowerSource{Type: PowerSourceApuGenerator}
}

func ExternalSource() PowerSource {
	return PowerSource{Type: PowerSourceExternal}
}

func EmergencyGeneratorSource() PowerSource {
	return PowerSource{Type: PowerSourceEmergencyGenerator}
}

func BatterySource(number int) PowerSource {
	if number != 1 && number != 2 {
		panic(fmt.Sprintf("elec: invalid battery number %d", number))
	}
	return PowerSource{Type: PowerSourceBattery, Number: number}
}

func (s PowerSource) String() string {
	switch s.Type {
	case PowerSourceEngineGenerator, PowerSourceBattery:
		return fmt.Sprintf("%s %d", s.Type, s.Number)
	default:
		return s.Type.String()
	}
}

type currentKind int8

const (
	currentNone currentKind = iota
	currentAlternating
	currentDirect
)

// Current represents a type of electric current: none at all, alternating,
// or direct. Powered currents carry the PowerSource they originated from.
// The zero value is no current.
type Current struct {
	kind      currentKind
	source    PowerSource
	frequency float32 // Hz
	potential float32 // V
	amperage  float32 // A
}

// NoCurrent is the absence of current: what open contactors, failed buses
// and unpowered feeders emit.
var NoCurrent = Current{}

func AlternatingCurrent(source PowerSource, frequencyHz, volts, amps float32) Current {
	return Current{
		kind:      currentAlternating,
		source:    source,
		frequency: frequencyHz,
		potential: volts,
		amperage:  amps,
	}
}

func DirectCurrent(source PowerSource, volts, amps float32) Current {
	return Current{
		kind:      currentDirect,
		source:    source,
		potential: volts,
		amperage:  amps,
	}
}

func (c Current) IsAlternating() bool { return c.kind == currentAlternating }
func (c Current) IsDirect() bool      { return c.kind == currentDirect }
func (c Current) IsPowered() bool     { return c.kind != currentNone }
func (c Current) IsUnpowered() bool   { return c.kind == currentNone }

// Source returns the provenance of the current; NoPowerSource when there is
// no current.
func (c Current) Source() PowerSource {
	if c.kind == currentNone {
		return NoPowerSource
	}
	return c.source
}

func (c Current) Frequency() float32 { return c.frequency }
func (c Current) Potential() float32 { return c.potential }
func (c Current) Amperage() float32  { return c.amperage }

func (c Current) String() string {
	switch c.kind {
	case currentAlternating:
		return fmt.Sprintf("AC %gV %gHz from %s", c.potential, c.frequency, c.source)
	case currentDirect:
		return fmt.Sprintf("DC %gV from %s", c.potential, c.source)
	default:
		return "unpowered"
	}
}

func (c Current) LogValue() slog.Value {
	if c.IsUnpowered() {
		return slog.StringValue("unpowered")
	}
	return slog.GroupValue(
		slog.String("source", c.source.String()),
		slog.Float64("volts", float64(c.potential)),
		slog.Float64("amps", float64(c.amperage)),
		slog.Float64("hertz", float64(c.frequency)))
}

// PowerConductor is the single capability everything in the network exposes
// to whatever it feeds: generators, contactors, buses and transformer
// rectifiers all emit a Current.
type PowerConductor interface {
	Output() Current
}

// Powerable is implemented by any node that is fed by an ordered list of
// candidate feeders; it latches the input resolved by PowerBy/OrPowerBy.
type Powerable interface {
	SetInput(Current)
	Input() Current
}

// PowerBy resolves p's input as the output of the first powered feeder, in
// order. If none of the feeders is powered the input is NoCurrent.
func PowerBy(p Powerable, feeders ...PowerConductor) {
	for _, f := range feeders {
		if output := f.Output(); output.IsPowered() {
			p.SetInput(output)
			return
		}
	}
	p.SetInput(NoCurrent)
}

// OrPowerBy appends candidate feeders after an earlier PowerBy call: they
// are only consulted if that call left p unpowered. This is how back-feeds
// (the DC BAT BUS feeding the DC tie contactors in reverse, the emergency
// path re-energizing the AC ESS BUS) are expressed without feedback loops.
func OrPowerBy(p Powerable, feeders ...PowerConductor) {
	if p.Input().IsUnpowered() {
		PowerBy(p, feeders...)
	}
}

// powerInput latches the most recently resolved input Current; embedding it
// satisfies the Powerable interface.
type powerInput struct {
	input Current
}

func (p *powerInput) SetInput(current Current) { p.input = current }
func (p *powerInput) Input() Current           { return p.input }
