// pkg/elec/battery.go
// Copyright(c) 2026 airsys contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package elec

// Battery is modeled as binary full/empty. The only behavior simulated for
// now is charging: an empty battery's contactor closes and its input
// reflects the DC BAT BUS. Discharge paths (and with them the static
// inverter and the on-ground battery-only configurations) are a planned
// extension hanging off the DC BAT BUS.
type Battery struct {
	number int
	full   bool
	powerInput
}

func FullBattery(number int) *Battery {
	return newBattery(number, true)
}

func EmptyBattery(number int) *Battery {
	return newBattery(number, false)
}

func newBattery(number int, full bool) *Battery {
	// Validates the number.
	_ = BatterySource(number)
	return &Battery{number: number, full: full}
}

func (b *Battery) Number() int  { return b.number }
func (b *Battery) IsFull() bool { return b.full }
