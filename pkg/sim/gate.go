// pkg/sim/gate.go
// Copyright(c) 2026 airsys contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import "time"

// DelayedTrueLogicGate delays the true result of a given expression by the
// given amount of time. False results are output immediately.
type DelayedTrueLogicGate struct {
	delay            time.Duration
	expressionResult bool
	trueDuration     time.Duration
}

func NewDelayedTrueLogicGate(delay time.Duration) DelayedTrueLogicGate {
	return DelayedTrueLogicGate{delay: delay}
}

// Update samples the expression for a tick. The delta of the tick in which
// the expression first becomes true is not counted toward the accumulated
// true duration; the expression wasn't true for any of that time yet.
func (g *DelayedTrueLogicGate) Update(context UpdateContext, expressionResult bool) {
	if g.expressionResult && expressionResult {
		g.trueDuration += context.Delta()
	} else {
		g.trueDuration = 0
	}

	g.expressionResult = expressionResult
}

func (g *DelayedTrueLogicGate) Output() bool {
	return g.expressionResult && g.delay <= g.trueDuration
}
