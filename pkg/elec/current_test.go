// pkg/elec/current_test.go
// Copyright(c) 2026 airsys contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package elec

import "testing"

func TestCurrentPredicates(t *testing.T) {
	ac := AlternatingCurrent(ApuGeneratorSource(), 400, 115, 782.60)
	dc := DirectCurrent(ApuGeneratorSource(), 28, 200)

	for _, c := range []struct {
		name                         string
		current                      Current
		alternating, direct, powered bool
	}{
		{"alternating", ac, true, false, true},
		{"direct", dc, false, true, true},
		{"none", NoCurrent, false, false, false},
	} {
		if c.current.IsAlternating() != c.alternating {
			t.Errorf("%s: IsAlternating() = %v", c.name, c.current.IsAlternating())
		}
		if c.current.IsDirect() != c.direct {
			t.Errorf("%s: IsDirect() = %v", c.name, c.current.IsDirect())
		}
		if c.current.IsPowered() != c.powered {
			t.Errorf("%s: IsPowered() = %v", c.name, c.current.IsPowered())
		}
		if c.current.IsUnpowered() == c.powered {
			t.Errorf("%s: IsUnpowered() = %v", c.name, c.current.IsUnpowered())
		}
	}
}

func TestCurrentSourceProvenance(t *testing.T) {
	ac := AlternatingCurrent(EngineGeneratorSource(2), 400, 115, 782.60)
	if ac.Source() != EngineGeneratorSource(2) {
		t.Errorf("alternating current source %v", ac.Source())
	}

	dc := DirectCurrent(ExternalSource(), 28, 200)
	if dc.Source() != ExternalSource() {
		t.Errorf("direct current source %v", dc.Source())
	}

	if NoCurrent.Source() != NoPowerSource {
		t.Errorf("no current source %v", NoCurrent.Source())
	}
}

func TestInvalidSourceNumbersPanic(t *testing.T) {
	expectPanic := func(name string, f func()) {
		defer func() {
			if recover() == nil {
				t.Errorf("%s: no panic", name)
			}
		}()
		f()
	}

	expectPanic("engine generator 0", func() { EngineGeneratorSource(0) })
	expectPanic("engine generator 3", func() { EngineGeneratorSource(3) })
	expectPanic("battery 0", func() { BatterySource(0) })
	expectPanic("NewEngineGenerator 3", func() { NewEngineGenerator(3) })
}

// powerless and powered are the stand-in feeders used by the resolution
// tests below.
type powerless struct{}

func (powerless) Output() Current { return NoCurrent }

type powered struct{}

func (powered) Output() Current {
	return AlternatingCurrent(ApuGeneratorSource(), 400, 115, 782.60)
}

func TestPowerByFirstPoweredFeederWins(t *testing.T) {
	bus := NewElectricalBus("test")
	PowerBy(bus, powerless{}, powered{})

	if !bus.Output().IsAlternating() {
		t.Errorf("bus not powered by second feeder")
	}
}

func TestPowerByWithoutFeedersUnpowers(t *testing.T) {
	bus := NewElectricalBus("test")
	PowerBy(bus, powered{})
	PowerBy(bus)

	if bus.Output().IsPowered() {
		t.Errorf("bus retained power with no feeders")
	}
}

func TestOrPowerByOnlyAppliesWhenUnpowered(t *testing.T) {
	bus := NewElectricalBus("test")
	PowerBy(bus, powered{})
	OrPowerBy(bus, conductorFunc(func() Current {
		return AlternatingCurrent(ExternalSource(), 400, 115, 782.60)
	}))

	if bus.Output().Source() != ApuGeneratorSource() {
		t.Errorf("OrPowerBy replaced an already powered input: %v", bus.Output().Source())
	}

	PowerBy(bus, powerless{})
	OrPowerBy(bus, powered{})
	if bus.Output().Source() != ApuGeneratorSource() {
		t.Errorf("OrPowerBy did not fill in an unpowered input: %v", bus.Output().Source())
	}
}

type conductorFunc func() Current

func (f conductorFunc) Output() Current { return f() }
