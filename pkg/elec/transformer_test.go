// pkg/elec/transformer_test.go
// Copyright(c) 2026 airsys contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package elec

import "testing"

func TestTransformerRectifierConvertsAcToDc(t *testing.T) {
	tr := NewTransformerRectifier("TR TEST")
	tr.SetInput(AlternatingCurrent(EngineGeneratorSource(1), 400, 115, 782.60))

	out := tr.Output()
	if !out.IsDirect() {
		t.Errorf("output isn't direct current: %v", out)
	}
	if out.Potential() != 28 {
		t.Errorf("output potential %gV", out.Potential())
	}
	if out.Source() != EngineGeneratorSource(1) {
		t.Errorf("provenance lost across the TR: %v", out.Source())
	}
}

func TestTransformerRectifierWithoutInputHasNoOutput(t *testing.T) {
	tr := NewTransformerRectifier("TR TEST")

	if !tr.Output().IsUnpowered() {
		t.Errorf("TR without input has output")
	}
}

func TestTransformerRectifierRejectsDirectInput(t *testing.T) {
	tr := NewTransformerRectifier("TR TEST")
	tr.SetInput(DirectCurrent(BatterySource(1), 28, 200))

	if !tr.Output().IsUnpowered() {
		t.Errorf("TR converted a direct current input")
	}
}

func TestFailedTransformerRectifierHasNoOutput(t *testing.T) {
	tr := NewTransformerRectifier("TR TEST")
	tr.SetInput(AlternatingCurrent(EngineGeneratorSource(1), 400, 115, 782.60))
	tr.Fail()

	if !tr.Output().IsUnpowered() {
		t.Errorf("failed TR has output")
	}

	tr.Normal()
	if !tr.Output().IsDirect() {
		t.Errorf("TR didn't recover after Normal()")
	}
}

func TestFailedBusHasNoOutput(t *testing.T) {
	bus := NewElectricalBus("TEST BUS")
	bus.SetInput(AlternatingCurrent(ExternalSource(), 400, 115, 782.60))
	bus.Fail()

	if !bus.Output().IsUnpowered() {
		t.Errorf("failed bus has output")
	}

	bus.Normal()
	if !bus.Output().IsPowered() {
		t.Errorf("bus didn't recover after Normal()")
	}
}

func TestBatteryChargeState(t *testing.T) {
	if !FullBattery(1).IsFull() {
		t.Errorf("full battery isn't full")
	}
	if EmptyBattery(2).IsFull() {
		t.Errorf("empty battery is full")
	}
}
