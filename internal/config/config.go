// Copyright (c) 2026 Fogbound Project
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package config loads the KEY=VALUE configuration file shared by all
// binaries.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Config holds all application configuration values.
type Config struct {
	// Accelerometer
	AccelI2CAddr  uint16
	TapThreshold  byte // THRESH_TAP, 62.5 mg/LSB
	TapDuration   byte // DUR, 625 µs/LSB
	TapsEnabled   bool

	// Buttons and encoder, periph GPIO pin names
	ButtonLeftPin    string
	ButtonRightPin   string
	EncoderClkPin    string
	EncoderDtPin     string
	EncoderButtonPin string

	// Display
	DisplayI2CAddr uint16

	// Status LED
	LEDSPIPort string

	// Detection tuning. Zero values fall back to the built-in defaults.
	FilterAlpha         float64
	MotionThreshold     float64
	TiltThreshold       float64
	ConfirmTicks        int
	DoubleClickWindowMS int
	DoubleTapWindowMS   int
	TickIntervalMS      int

	// Game
	ScriptPath    string
	HighscorePath string

	// MQTT telemetry. An empty broker disables telemetry entirely.
	MQTTBroker          string
	MQTTClientIDGame    string
	MQTTClientIDMonitor string
	TopicEvents         string
	TopicState          string

	// Web Server
	WebServerPort       int
	WebUpdateIntervalMS int
}

// Package-level unexported variables for singleton pattern:
//   - globalConfig: unexported so other packages cannot access it directly.
//   - configOnce: ensures InitGlobal() only runs once, even if called multiple times.
//   - configMu: RWMutex protects concurrent access.
//
// External code must use InitGlobal() to set and Get() to read.
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Load reads the configuration file and returns a Config struct.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	cfg := &Config{}
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	// Accelerometer
	case "ACCEL_I2C_ADDR":
		addr, err := strconv.ParseUint(value, 0, 16)
		if err != nil {
			return fmt.Errorf("invalid ACCEL_I2C_ADDR %q: %w", value, err)
		}
		c.AccelI2CAddr = uint16(addr)
	case "TAP_THRESHOLD":
		val, err := strconv.ParseUint(value, 0, 8)
		if err != nil {
			return fmt.Errorf("invalid TAP_THRESHOLD %q: %w", value, err)
		}
		c.TapThreshold = byte(val)
	case "TAP_DURATION":
		val, err := strconv.ParseUint(value, 0, 8)
		if err != nil {
			return fmt.Errorf("invalid TAP_DURATION %q: %w", value, err)
		}
		c.TapDuration = byte(val)
	case "TAPS_ENABLED":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid TAPS_ENABLED %q: %w", value, err)
		}
		c.TapsEnabled = enabled

	// Buttons and encoder
	case "BUTTON_LEFT_PIN":
		c.ButtonLeftPin = value
	case "BUTTON_RIGHT_PIN":
		c.ButtonRightPin = value
	case "ENCODER_CLK_PIN":
		c.EncoderClkPin = value
	case "ENCODER_DT_PIN":
		c.EncoderDtPin = value
	case "ENCODER_BUTTON_PIN":
		c.EncoderButtonPin = value

	// Display
	case "DISPLAY_I2C_ADDR":
		addr, err := strconv.ParseUint(value, 0, 16)
		if err != nil {
			return fmt.Errorf("invalid DISPLAY_I2C_ADDR %q: %w", value, err)
		}
		c.DisplayI2CAddr = uint16(addr)

	// Status LED
	case "LED_SPI_PORT":
		c.LEDSPIPort = value

	// Detection tuning
	case "FILTER_ALPHA":
		alpha, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid FILTER_ALPHA %q: %w", value, err)
		}
		if alpha <= 0 || alpha > 1 {
			return fmt.Errorf("FILTER_ALPHA must be in (0,1], got %v", alpha)
		}
		c.FilterAlpha = alpha
	case "MOTION_THRESHOLD":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid MOTION_THRESHOLD %q: %w", value, err)
		}
		if v <= 0 {
			return fmt.Errorf("MOTION_THRESHOLD must be positive, got %v", v)
		}
		c.MotionThreshold = v
	case "TILT_THRESHOLD":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid TILT_THRESHOLD %q: %w", value, err)
		}
		if v <= 0 {
			return fmt.Errorf("TILT_THRESHOLD must be positive, got %v", v)
		}
		c.TiltThreshold = v
	case "CONFIRM_TICKS":
		ticks, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid CONFIRM_TICKS %q: %w", value, err)
		}
		if ticks < 1 {
			return fmt.Errorf("CONFIRM_TICKS must be at least 1, got %d", ticks)
		}
		c.ConfirmTicks = ticks
	case "DOUBLE_CLICK_WINDOW_MS":
		ms, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid DOUBLE_CLICK_WINDOW_MS %q: %w", value, err)
		}
		c.DoubleClickWindowMS = ms
	case "DOUBLE_TAP_WINDOW_MS":
		ms, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid DOUBLE_TAP_WINDOW_MS %q: %w", value, err)
		}
		c.DoubleTapWindowMS = ms
	case "TICK_INTERVAL_MS":
		ms, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid TICK_INTERVAL_MS %q: %w", value, err)
		}
		c.TickIntervalMS = ms

	// Game
	case "SCRIPT_PATH":
		c.ScriptPath = value
	case "HIGHSCORE_PATH":
		c.HighscorePath = value

	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID_GAME":
		c.MQTTClientIDGame = value
	case "MQTT_CLIENT_ID_MONITOR":
		c.MQTTClientIDMonitor = value
	case "TOPIC_EVENTS":
		c.TopicEvents = value
	case "TOPIC_STATE":
		c.TopicState = value

	// Web Server
	case "WEB_SERVER_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid WEB_SERVER_PORT %q: %w", value, err)
		}
		c.WebServerPort = port
	case "WEB_UPDATE_INTERVAL_MS":
		ms, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid WEB_UPDATE_INTERVAL_MS %q: %w", value, err)
		}
		c.WebUpdateIntervalMS = ms

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

// validate checks that all required fields are set.
func (c *Config) validate() error {
	if c.AccelI2CAddr == 0 {
		return fmt.Errorf("ACCEL_I2C_ADDR is required")
	}
	if c.ButtonLeftPin == "" {
		return fmt.Errorf("BUTTON_LEFT_PIN is required")
	}
	if c.ButtonRightPin == "" {
		return fmt.Errorf("BUTTON_RIGHT_PIN is required")
	}
	if c.EncoderClkPin == "" {
		return fmt.Errorf("ENCODER_CLK_PIN is required")
	}
	if c.EncoderDtPin == "" {
		return fmt.Errorf("ENCODER_DT_PIN is required")
	}
	if c.EncoderButtonPin == "" {
		return fmt.Errorf("ENCODER_BUTTON_PIN is required")
	}
	if c.DisplayI2CAddr == 0 {
		return fmt.Errorf("DISPLAY_I2C_ADDR is required")
	}
	if c.ScriptPath == "" {
		return fmt.Errorf("SCRIPT_PATH is required")
	}
	if c.HighscorePath == "" {
		return fmt.Errorf("HIGHSCORE_PATH is required")
	}
	if c.MQTTBroker != "" && c.TopicEvents == "" {
		return fmt.Errorf("TOPIC_EVENTS is required when MQTT_BROKER is set")
	}
	return nil
}

// InitGlobal initializes the global configuration from file. Uses
// sync.Once so only the first call loads; later calls are no-ops.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance. InitGlobal must be
// called first, or this returns nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
