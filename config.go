// config.go
// Copyright(c) 2026 airsys contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration wraps time.Duration so that the TOML decoder can parse
// "250ms"-style strings via the encoding.TextUnmarshaler interface.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	dur, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = dur
	return nil
}

// MQTTConfig holds MQTT broker connection settings. Telemetry is disabled
// when no broker is configured.
type MQTTConfig struct {
	Broker      string `toml:"broker"`
	Username    string `toml:"username"`
	Password    string `toml:"password"`
	ClientID    string `toml:"client_id"`
	TopicPrefix string `toml:"topic_prefix"`
	Retained    bool   `toml:"retained"`
	QOS         byte   `toml:"qos"`
}

// ScenarioConfig gives the initial system states the simulation starts
// from; everything defaults to a cold and dark aircraft.
type ScenarioConfig struct {
	Engine1N2       float32 `toml:"engine_1_n2"`
	Engine2N2       float32 `toml:"engine_2_n2"`
	ApuSpeed        float32 `toml:"apu_speed"`
	ExternalPower   bool    `toml:"external_power"`
	BluePressurised bool    `toml:"blue_pressurised"`
}

// Config is the top-level configuration struct.
type Config struct {
	LogLevel     string         `toml:"log_level"`
	LogDir       string         `toml:"log_dir"`
	TickInterval Duration       `toml:"tick_interval"`
	MQTT         MQTTConfig     `toml:"mqtt"`
	Scenario     ScenarioConfig `toml:"scenario"`
}

func defaultConfig() Config {
	return Config{
		LogLevel:     "info",
		TickInterval: Duration{100 * time.Millisecond},
		MQTT: MQTTConfig{
			ClientID:    "airsys",
			TopicPrefix: "airsys",
			Retained:    true,
		},
		Scenario: ScenarioConfig{BluePressurised: true},
	}
}

// LoadConfig reads the TOML config at path, applying defaults for anything
// unset. A missing file just yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	_, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	} else if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}

	if cfg.TickInterval.Duration <= 0 {
		return cfg, fmt.Errorf("%s: tick_interval must be positive", path)
	}
	return cfg, nil
}
