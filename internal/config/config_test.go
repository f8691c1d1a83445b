package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const minimalConfig = `
# hardware
ACCEL_I2C_ADDR=0x53
BUTTON_LEFT_PIN=GPIO5
BUTTON_RIGHT_PIN=GPIO6
ENCODER_CLK_PIN=GPIO17
ENCODER_DT_PIN=GPIO18
ENCODER_BUTTON_PIN=GPIO27
DISPLAY_I2C_ADDR=0x3C

# game
SCRIPT_PATH=/etc/fogbound/story.yaml
HIGHSCORE_PATH=/var/lib/fogbound/highscores.txt
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fogbound.conf")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMinimalConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AccelI2CAddr != 0x53 {
		t.Errorf("AccelI2CAddr = 0x%02X, want 0x53", cfg.AccelI2CAddr)
	}
	if cfg.DisplayI2CAddr != 0x3C {
		t.Errorf("DisplayI2CAddr = 0x%02X, want 0x3C", cfg.DisplayI2CAddr)
	}
	if cfg.ButtonLeftPin != "GPIO5" || cfg.EncoderClkPin != "GPIO17" {
		t.Errorf("pins = %q %q", cfg.ButtonLeftPin, cfg.EncoderClkPin)
	}
	if cfg.ScriptPath != "/etc/fogbound/story.yaml" {
		t.Errorf("ScriptPath = %q", cfg.ScriptPath)
	}
	// Optional blocks default off.
	if cfg.MQTTBroker != "" || cfg.WebServerPort != 0 {
		t.Errorf("optional fields not zero: %q %d", cfg.MQTTBroker, cfg.WebServerPort)
	}
}

func TestLoadFullConfig(t *testing.T) {
	full := minimalConfig + `
TAPS_ENABLED=true
TAP_THRESHOLD=0x30
TAP_DURATION=0x10
LED_SPI_PORT=SPI0.0
FILTER_ALPHA=0.3
MOTION_THRESHOLD=0.30
TILT_THRESHOLD=1.2
CONFIRM_TICKS=5
DOUBLE_CLICK_WINDOW_MS=500
DOUBLE_TAP_WINDOW_MS=400
TICK_INTERVAL_MS=20
MQTT_BROKER=tcp://localhost:1883
MQTT_CLIENT_ID_GAME=fogbound_game
TOPIC_EVENTS=fogbound/events
TOPIC_STATE=fogbound/state
WEB_SERVER_PORT=8080
WEB_UPDATE_INTERVAL_MS=250
`
	cfg, err := Load(writeConfig(t, full))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.TapsEnabled || cfg.TapThreshold != 0x30 {
		t.Errorf("taps = %v 0x%02X", cfg.TapsEnabled, cfg.TapThreshold)
	}
	if cfg.FilterAlpha != 0.3 || cfg.MotionThreshold != 0.30 || cfg.TiltThreshold != 1.2 {
		t.Errorf("tuning = %v %v %v", cfg.FilterAlpha, cfg.MotionThreshold, cfg.TiltThreshold)
	}
	if cfg.ConfirmTicks != 5 || cfg.TickIntervalMS != 20 {
		t.Errorf("ticks = %d interval %d", cfg.ConfirmTicks, cfg.TickIntervalMS)
	}
	if cfg.MQTTBroker != "tcp://localhost:1883" || cfg.TopicEvents != "fogbound/events" {
		t.Errorf("mqtt = %q %q", cfg.MQTTBroker, cfg.TopicEvents)
	}
	if cfg.WebServerPort != 8080 {
		t.Errorf("WebServerPort = %d", cfg.WebServerPort)
	}
}

func TestLoadRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(string) string
		mention string
	}{
		{
			"unknown key",
			func(s string) string { return s + "MYSTERY_KEY=1\n" },
			"unknown config key",
		},
		{
			"missing required pin",
			func(s string) string { return strings.Replace(s, "BUTTON_LEFT_PIN=GPIO5\n", "", 1) },
			"BUTTON_LEFT_PIN",
		},
		{
			"alpha out of range",
			func(s string) string { return s + "FILTER_ALPHA=1.5\n" },
			"FILTER_ALPHA",
		},
		{
			"broker without events topic",
			func(s string) string { return s + "MQTT_BROKER=tcp://localhost:1883\n" },
			"TOPIC_EVENTS",
		},
		{
			"malformed line",
			func(s string) string { return s + "JUST_A_KEY\n" },
			"invalid config line",
		},
		{
			"bad number",
			func(s string) string { return s + "WEB_SERVER_PORT=eighty\n" },
			"WEB_SERVER_PORT",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.mutate(minimalConfig)))
			if err == nil {
				t.Fatal("Load accepted a bad config")
			}
			if !strings.Contains(err.Error(), tt.mention) {
				t.Errorf("error = %q, want mention of %q", err, tt.mention)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/fogbound.conf"); err == nil {
		t.Fatal("Load succeeded on a missing file")
	}
}
