// Copyright (c) 2026 Fogbound Project
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package telemetry publishes gameplay events over MQTT so an operator
// console outside the room can follow the run.
package telemetry

import (
	"encoding/json"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"fogbound/internal/story"
)

// Publisher forwards story events to an MQTT topic. The zero Publisher
// and a Publisher built with an empty broker both discard events, so
// callers never need to branch on whether telemetry is configured.
type Publisher struct {
	client mqtt.Client
	topic  string
}

// New connects to the broker. An empty broker string returns a disabled
// publisher and no error.
func New(broker, clientID, topic string) (*Publisher, error) {
	if broker == "" {
		log.Println("telemetry: no broker configured, events disabled")
		return &Publisher{}, nil
	}
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	log.Printf("telemetry: connected to MQTT broker at %s", broker)
	return &Publisher{client: client, topic: topic}, nil
}

// NewWithClient wraps an already connected client, for tests.
func NewWithClient(client mqtt.Client, topic string) *Publisher {
	return &Publisher{client: client, topic: topic}
}

// Emit publishes one event, fire and forget. It never blocks gameplay:
// delivery failures are the broker connection's problem, not the
// player's.
func (p *Publisher) Emit(ev story.Event) {
	if p == nil || p.client == nil {
		return
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("telemetry: marshal error: %v", err)
		return
	}
	p.client.Publish(p.topic, 0, false, payload)
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	if p == nil || p.client == nil {
		return
	}
	p.client.Disconnect(250)
}
