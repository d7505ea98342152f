// eventstream_test.go
// Copyright(c) 2026 airsys contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"fmt"
	"math/rand"
	"testing"
)

func busEvent(i int) Event {
	return Event{Kind: BusPowerChangedEvent, Bus: fmt.Sprintf("BUS %d", i), Powered: true}
}

func TestEventStream(t *testing.T) {
	es := NewEventStream(nil)

	es.Post(busEvent(0))
	sub := es.Subscribe()
	if len(sub.Get()) != 0 {
		t.Errorf("Returned non-empty slice")
	}

	es.Post(busEvent(1))
	es.Post(busEvent(2))
	s := sub.Get()
	if len(s) != 2 {
		t.Errorf("didn't return 2 item slice")
	}
	checkbus := func(e Event, i int) {
		if want := fmt.Sprintf("BUS %d", i); e.Bus != want {
			t.Errorf("got event for %q; expected %q", e.Bus, want)
		}
	}
	checkbus(s[0], 1)
	checkbus(s[1], 2)

	if len(sub.Get()) != 0 {
		t.Errorf("Returned non-empty slice")
	}
}

func TestEventStreamCompact(t *testing.T) {
	es := NewEventStream(nil)

	// multiple consumers, at different offsets
	sub := [4]*EventsSubscription{es.Subscribe(), es.Subscribe(), es.Subscribe(), es.Subscribe()}
	// consume probability
	p := [4]float32{1, 0.75, 0.05, 0.5}
	// next value we expect to get from the stream
	var idx [4]int

	i := 0
	for i < 16384 {
		// Add a bunch of consecutive numbers to the stream
		n := rand.Intn(255)
		for j := 0; j < n; j++ {
			es.Post(busEvent(i + j))
		}
		i += n

		for c := 0; c < 4; c++ {
			if rand.Float32() < p[c] {
				for _, e := range sub[c].Get() {
					if want := fmt.Sprintf("BUS %d", idx[c]); e.Bus != want {
						t.Errorf("consumer %d got %q; expected %q", c, e.Bus, want)
					}
					idx[c]++
				}
			}
		}
	}
}
