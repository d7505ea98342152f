// pkg/elec/overhead.go
// Copyright(c) 2026 airsys contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package elec

// The overhead panel pushbuttons are dumb latches; all of the logic that
// consults them lives in the distribution layer. FAULT light state is drawn
// by the cockpit UI and is not modeled here.

type OnOffPushButton struct {
	on bool
}

func NewOnPushButton() OnOffPushButton {
	return OnOffPushButton{on: true}
}

func NewOffPushButton() OnOffPushButton {
	return OnOffPushButton{}
}

func (b *OnOffPushButton) PushOn()  { b.on = true }
func (b *OnOffPushButton) PushOff() { b.on = false }

func (b *OnOffPushButton) IsOn() bool  { return b.on }
func (b *OnOffPushButton) IsOff() bool { return !b.on }

// NormalAltnPushButton is the two-position AC ESS FEED selector.
type NormalAltnPushButton struct {
	altn bool
}

func NewNormalPushButton() NormalAltnPushButton {
	return NormalAltnPushButton{}
}

func (b *NormalAltnPushButton) PushAltn()   { b.altn = true }
func (b *NormalAltnPushButton) PushNormal() { b.altn = false }

func (b *NormalAltnPushButton) IsNormal() bool { return !b.altn }
func (b *NormalAltnPushButton) IsAltn() bool   { return b.altn }

// A320ElectricalOverheadPanel holds the ELEC section of the overhead panel.
// Everything defaults to on/normal, matching a cold aircraft's button
// positions.
type A320ElectricalOverheadPanel struct {
	Bat1       OnOffPushButton
	Bat2       OnOffPushButton
	Idg1       OnOffPushButton
	Idg2       OnOffPushButton
	Gen1       OnOffPushButton
	Gen2       OnOffPushButton
	ApuGen     OnOffPushButton
	BusTie     OnOffPushButton
	AcEssFeed  NormalAltnPushButton
	GalyAndCab OnOffPushButton
	ExtPwr     OnOffPushButton
	Commercial OnOffPushButton
}

func NewA320ElectricalOverheadPanel() *A320ElectricalOverheadPanel {
	return &A320ElectricalOverheadPanel{
		Bat1:       NewOnPushButton(),
		Bat2:       NewOnPushButton(),
		Idg1:       NewOnPushButton(),
		Idg2:       NewOnPushButton(),
		Gen1:       NewOnPushButton(),
		Gen2:       NewOnPushButton(),
		ApuGen:     NewOnPushButton(),
		BusTie:     NewOnPushButton(),
		AcEssFeed:  NewNormalPushButton(),
		GalyAndCab: NewOnPushButton(),
		ExtPwr:     NewOnPushButton(),
		Commercial: NewOnPushButton(),
	}
}
