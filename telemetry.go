// telemetry.go
// Copyright(c) 2026 airsys contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/avsim/airsys/pkg/util"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Message is a single telemetry publish request.
type Message struct {
	Topic    string
	Payload  string
	Retained bool
}

// Publisher is the minimal interface the simulator uses to send telemetry;
// the real MQTT client and the test fake both implement it.
type Publisher interface {
	Publish(msg Message) error
	Close() error
}

// StateTopic returns the retained topic a bus's state is published on.
// Topic levels must not contain spaces, so "AC BUS 1" becomes "ac_bus_1".
func StateTopic(prefix, bus string) string {
	level := strings.ToLower(strings.ReplaceAll(bus, " ", "_"))
	return prefix + "/bus/" + level
}

func EventTopic(prefix string) string {
	return prefix + "/event"
}

func StatusTopic(prefix string) string {
	return prefix + "/status"
}

// PublishState publishes the retained per-bus state topics plus the
// battery and AC ESS feed annunciator states.
func PublishState(pub Publisher, cfg MQTTConfig, state ElectricalState) error {
	for _, name := range util.SortedMapKeys(state.Buses) {
		payload, err := json.Marshal(state.Buses[name])
		if err != nil {
			return err
		}
		msg := Message{
			Topic:    StateTopic(cfg.TopicPrefix, name),
			Payload:  string(payload),
			Retained: cfg.Retained,
		}
		if err := pub.Publish(msg); err != nil {
			return fmt.Errorf("publishing %s: %w", msg.Topic, err)
		}
	}

	annunciators, err := json.Marshal(struct {
		Battery1Charging bool `json:"battery_1_charging"`
		Battery2Charging bool `json:"battery_2_charging"`
		AcEssFeed1Closed bool `json:"ac_ess_feed_1_closed"`
		AcEssFeed2Closed bool `json:"ac_ess_feed_2_closed"`
	}{state.Battery1Charging, state.Battery2Charging, state.AcEssFeed1Closed, state.AcEssFeed2Closed})
	if err != nil {
		return err
	}
	return pub.Publish(Message{
		Topic:    cfg.TopicPrefix + "/annunciators",
		Payload:  string(annunciators),
		Retained: cfg.Retained,
	})
}

// PublishEvents publishes one non-retained message per electrical event.
func PublishEvents(pub Publisher, cfg MQTTConfig, events []Event) error {
	for _, e := range events {
		if err := pub.Publish(Message{
			Topic:   EventTopic(cfg.TopicPrefix),
			Payload: e.String(),
		}); err != nil {
			return fmt.Errorf("publishing event: %w", err)
		}
	}
	return nil
}

// MQTTPublisher wraps paho.mqtt.golang and implements Publisher.
type MQTTPublisher struct {
	client      mqtt.Client
	qos         byte
	statusTopic string
}

// NewMQTTPublisher creates a connected MQTT client. The broker publishes
// "offline" on the status topic if we disconnect unexpectedly.
func NewMQTTPublisher(cfg MQTTConfig) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	opts.SetKeepAlive(60 * time.Second)
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetWill(StatusTopic(cfg.TopicPrefix), "offline", cfg.QOS, true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connecting to MQTT broker %q: %w", cfg.Broker, token.Error())
	}

	pub := &MQTTPublisher{client: client, qos: cfg.QOS, statusTopic: StatusTopic(cfg.TopicPrefix)}
	if err := pub.Publish(Message{Topic: pub.statusTopic, Payload: "online", Retained: true}); err != nil {
		client.Disconnect(250)
		return nil, err
	}
	return pub, nil
}

// Publish sends a single MQTT message and waits for the broker to
// acknowledge.
func (p *MQTTPublisher) Publish(msg Message) error {
	token := p.client.Publish(msg.Topic, p.qos, msg.Retained, msg.Payload)
	token.Wait()
	return token.Error()
}

// Close leaves a retained offline marker for subscribers and disconnects
// from the broker gracefully.
func (p *MQTTPublisher) Close() error {
	token := p.client.Publish(p.statusTopic, p.qos, true, "offline")
	token.Wait()
	p.client.Disconnect(250)
	return token.Error()
}
