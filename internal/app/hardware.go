// Copyright (c) 2026 Fogbound Project
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"fmt"
	"log"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"fogbound/internal/config"
	"fogbound/internal/display"
	"fogbound/internal/input"
	"fogbound/internal/led"
	"fogbound/internal/sensors/adxl345"
)

// pinLine adapts a periph GPIO pin to the input layer's line interface.
type pinLine struct {
	pin gpio.PinIO
}

func (l pinLine) Level() (bool, error) {
	return bool(l.pin.Read()), nil
}

func openPin(name string) (input.Line, error) {
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("gpio pin %q not found", name)
	}
	if err := pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("configuring pin %q: %w", name, err)
	}
	return pinLine{pin: pin}, nil
}

// noopLED stands in when no status LED is wired.
type noopLED struct{}

func (noopLED) Boot() error    { return nil }
func (noopLED) Correct() error { return nil }
func (noopLED) Wrong() error   { return nil }
func (noopLED) Off() error     { return nil }

// StatusLight is the LED surface the app drives.
type StatusLight interface {
	Boot() error
	Correct() error
	Wrong() error
	Off() error
}

// Hardware bundles everything the binaries talk to.
type Hardware struct {
	Manager *input.Manager
	Accel   *adxl345.Dev
	Screen  *display.Screen
	LED     StatusLight
}

// tuningFromConfig starts from the built-in defaults and applies the
// config overrides that are set.
func tuningFromConfig(cfg *config.Config) input.Tuning {
	tun := input.DefaultTuning()
	if cfg.FilterAlpha > 0 {
		tun.Alpha = cfg.FilterAlpha
	}
	if cfg.MotionThreshold > 0 {
		tun.MotionThreshold = cfg.MotionThreshold
	}
	if cfg.TiltThreshold > 0 {
		tun.TiltThreshold = cfg.TiltThreshold
	}
	if cfg.ConfirmTicks > 0 {
		tun.ConfirmTicks = cfg.ConfirmTicks
	}
	if cfg.DoubleClickWindowMS > 0 {
		tun.DoubleClickWindow = time.Duration(cfg.DoubleClickWindowMS) * time.Millisecond
	}
	if cfg.DoubleTapWindowMS > 0 {
		tun.DoubleTapWindow = time.Duration(cfg.DoubleTapWindowMS) * time.Millisecond
	}
	if cfg.TickIntervalMS > 0 {
		tun.TickInterval = time.Duration(cfg.TickIntervalMS) * time.Millisecond
	}
	return tun
}

// setupHardware initializes periph and opens every device the config
// names.
func setupHardware() (*Hardware, error) {
	cfg := config.Get()

	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}

	bus, err := i2creg.Open("")
	if err != nil {
		return nil, fmt.Errorf("opening I2C bus: %w", err)
	}

	accelOpts := &adxl345.Opts{
		Addr:      cfg.AccelI2CAddr,
		TapThresh: cfg.TapThreshold,
		TapDur:    cfg.TapDuration,
	}
	accel, err := adxl345.New(bus, accelOpts)
	if err != nil {
		return nil, err
	}
	log.Printf("hardware: accelerometer at 0x%02X", cfg.AccelI2CAddr)

	devs := input.Devices{Accel: accel}
	if cfg.TapsEnabled {
		if err := accel.EnableTapDetection(accelOpts); err != nil {
			return nil, err
		}
		devs.Taps = accel
		log.Println("hardware: tap engine armed")
	}

	pins := []struct {
		name string
		dst  *input.Line
	}{
		{cfg.ButtonLeftPin, &devs.Left},
		{cfg.ButtonRightPin, &devs.Right},
		{cfg.EncoderButtonPin, &devs.EncoderButton},
		{cfg.EncoderClkPin, &devs.EncoderClk},
		{cfg.EncoderDtPin, &devs.EncoderDt},
	}
	for _, p := range pins {
		line, err := openPin(p.name)
		if err != nil {
			return nil, err
		}
		*p.dst = line
	}

	screen, err := display.NewI2C(bus, cfg.DisplayI2CAddr)
	if err != nil {
		return nil, err
	}

	var light StatusLight = noopLED{}
	if cfg.LEDSPIPort != "" {
		sl, err := led.NewSPI(cfg.LEDSPIPort)
		if err != nil {
			return nil, err
		}
		light = sl
	}

	mgr := input.NewManager(devs, nil, tuningFromConfig(cfg))
	return &Hardware{Manager: mgr, Accel: accel, Screen: screen, LED: light}, nil
}
