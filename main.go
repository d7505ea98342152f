// main.go
// Copyright(c) 2026 airsys contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

// airsys simulates the electrical distribution system of an A320-family
// aircraft: it ticks the circuit at a fixed rate, logs observable changes,
// and optionally publishes bus state over MQTT. The scenario (engine, APU,
// ground power and hydraulic states) comes from the config file, or from
// the saved state of the previous run with -resume.

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avsim/airsys/pkg/log"
	"github.com/avsim/airsys/pkg/util"

	"github.com/davecgh/go-spew/spew"
)

const scenarioCachePath = "scenario.msgpack.zst"

// savedScenario is persisted across runs so that -resume picks up where
// the previous run left off.
type savedScenario struct {
	Engine1N2       float32 `msgpack:"engine_1_n2"`
	Engine2N2       float32 `msgpack:"engine_2_n2"`
	ApuSpeed        float32 `msgpack:"apu_speed"`
	ExternalPower   bool    `msgpack:"external_power"`
	BluePressurised bool    `msgpack:"blue_pressurised"`
}

func main() {
	configPath := flag.String("config", "airsys.toml", "path to config file")
	logLevel := flag.String("loglevel", "", "logging level: debug, info, warn, error")
	logDir := flag.String("logdir", "", "log directory (default: user config dir)")
	resume := flag.Bool("resume", false, "resume the scenario saved by the previous run")
	dump := flag.Bool("dump", false, "dump the initial circuit state and exit")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *logDir != "" {
		cfg.LogDir = *logDir
	}

	lg := log.New(cfg.LogLevel, cfg.LogDir)
	lg.Infof("airsys starting: tick interval %s", cfg.TickInterval)

	eventStream := NewEventStream(lg)
	events := eventStream.Subscribe()

	aircraft := NewAircraft(eventStream, lg)
	applyScenario(aircraft, cfg.Scenario, *resume, lg)

	if *dump {
		// Run a single zero-length tick so the dump reflects the
		// configured scenario rather than a cold network.
		aircraft.Tick(0)
		spew.Dump(aircraft.Electrical)
		return
	}

	var pub Publisher
	if cfg.MQTT.Broker != "" {
		pub, err = NewMQTTPublisher(cfg.MQTT)
		if err != nil {
			lg.Errorf("MQTT telemetry disabled: %v", err)
			pub = nil
		} else {
			defer pub.Close()
			lg.Infof("publishing telemetry to %s", cfg.MQTT.Broker)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	runLoop(ctx, aircraft, events, pub, cfg, lg)

	saveScenario(aircraft, lg)
	lg.Infof("airsys shutting down")
}

func runLoop(ctx context.Context, aircraft *Aircraft, events *EventsSubscription,
	pub Publisher, cfg Config, lg *log.Logger) {
	ticker := time.NewTicker(cfg.TickInterval.Duration)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			aircraft.Tick(cfg.TickInterval.Duration)

			changed := events.Get()
			for _, e := range changed {
				lg.Infof("%s", e)
			}

			if pub != nil {
				if len(changed) > 0 {
					if err := PublishState(pub, cfg.MQTT, aircraft.Snapshot()); err != nil {
						lg.Errorf("publishing state: %v", err)
					}
				}
				if err := PublishEvents(pub, cfg.MQTT, changed); err != nil {
					lg.Errorf("publishing events: %v", err)
				}
			}
		case <-ctx.Done():
			// A final zero-length tick so subscribers see fresh state on
			// exit.
			aircraft.Tick(0)
			if pub != nil {
				if err := PublishState(pub, cfg.MQTT, aircraft.Snapshot()); err != nil {
					lg.Errorf("publishing final state: %v", err)
				}
			}
			return
		}
	}
}

func applyScenario(aircraft *Aircraft, scenario ScenarioConfig, resume bool, lg *log.Logger) {
	if resume {
		var saved savedScenario
		if when, err := util.CacheLoadObject(scenarioCachePath, &saved); err != nil {
			lg.Warnf("no saved scenario to resume: %v", err)
		} else {
			lg.Infof("resuming scenario saved %s", when)
			scenario = ScenarioConfig{
				Engine1N2:       saved.Engine1N2,
				Engine2N2:       saved.Engine2N2,
				ApuSpeed:        saved.ApuSpeed,
				ExternalPower:   saved.ExternalPower,
				BluePressurised: saved.BluePressurised,
			}
		}
	}

	aircraft.SetEngineN2(1, scenario.Engine1N2)
	aircraft.SetEngineN2(2, scenario.Engine2N2)
	aircraft.SetApuSpeed(scenario.ApuSpeed)
	aircraft.ExtPwr.PluggedIn = scenario.ExternalPower
	aircraft.Hydraulic.BluePressurised = scenario.BluePressurised
}

func saveScenario(aircraft *Aircraft, lg *log.Logger) {
	saved := savedScenario{
		Engine1N2:       aircraft.Engine1.N2,
		Engine2N2:       aircraft.Engine2.N2,
		ApuSpeed:        aircraft.Apu.Speed,
		ExternalPower:   aircraft.ExtPwr.PluggedIn,
		BluePressurised: aircraft.Hydraulic.BluePressurised,
	}
	if err := util.CacheStoreObject(scenarioCachePath, saved); err != nil {
		lg.Errorf("saving scenario: %v", err)
	}
}
