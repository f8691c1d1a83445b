// Copyright (c) 2026 Fogbound Project
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"fogbound/internal/config"
	"fogbound/internal/story"
)

// RunMonitor tails the game's MQTT events on stdout, for the operator
// desk outside the room.
func RunMonitor() error {
	cfg := config.Get()
	if cfg.MQTTBroker == "" {
		return fmt.Errorf("monitor: MQTT_BROKER is not configured")
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDMonitor)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("monitor: connected to MQTT broker at %s", cfg.MQTTBroker)

	token := client.Subscribe(cfg.TopicEvents, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var ev story.Event
		if err := json.Unmarshal(msg.Payload(), &ev); err != nil {
			log.Printf("monitor: event unmarshal error: %v", err)
			return
		}
		status := "FAIL"
		if ev.OK {
			status = "OK"
		}
		switch ev.Type {
		case "challenge_resolved":
			fmt.Printf("[%s] %-20s chapter=%-12s gesture=%-14s %s\n",
				stamp(), ev.Type, ev.Chapter, ev.Gesture, status)
		case "game_completed", "game_over":
			fmt.Printf("[%s] %-20s chapter=%-12s elapsed=%s\n",
				stamp(), ev.Type, ev.Chapter, ev.Elapsed.Round(time.Second))
		default:
			fmt.Printf("[%s] %-20s chapter=%s\n", stamp(), ev.Type, ev.Chapter)
		}
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("monitor: subscribed to %s", cfg.TopicEvents)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Println("monitor: shutting down")
	client.Disconnect(250)
	return nil
}

func stamp() string {
	return time.Now().Format("15:04:05")
}
