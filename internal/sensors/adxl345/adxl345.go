// Copyright (c) 2026 Fogbound Project
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package adxl345 drives the ADXL345 3-axis accelerometer over I2C in
// full-resolution mode, with optional use of the chip's single-tap engine.
package adxl345

import (
	"encoding/binary"
	"fmt"

	"periph.io/x/conn/v3/i2c"
)

// DefaultAddr is the 7-bit I2C address with the ALT ADDRESS pin low.
const DefaultAddr = 0x53

// Register map, ADXL345 datasheet rev E.
const (
	regDevID      = 0x00
	regThreshTap  = 0x1D
	regDur        = 0x21
	regLatent     = 0x22
	regWindow     = 0x23
	regTapAxes    = 0x2A
	regBWRate     = 0x2C
	regPowerCtl   = 0x2D
	regIntEnable  = 0x2E
	regIntSource  = 0x30
	regDataFormat = 0x31
	regDataX0     = 0x32
)

const (
	devID = 0xE5

	rate100Hz = 0x0A

	powerMeasure = 0x08

	formatFullRes = 0x08

	intSingleTap = 0x40

	tapAxesXYZ = 0x07
)

// scale converts one full-resolution LSB (4 mg) to m/s².
const scale = 0.004 * 9.80665

// Opts configures the device address and tap engine thresholds.
type Opts struct {
	Addr uint16
	// TapThresh is THRESH_TAP in 62.5 mg/LSB units; TapDur is DUR in
	// 625 µs/LSB units. Zero values pick defaults suitable for a firm
	// finger tap on the enclosure.
	TapThresh byte
	TapDur    byte
}

// DefaultOpts returns the address and tap tuning used on the production
// enclosure.
func DefaultOpts() *Opts {
	return &Opts{Addr: DefaultAddr, TapThresh: 0x30, TapDur: 0x10}
}

// Dev is a handle to one ADXL345 on an I2C bus.
type Dev struct {
	d i2c.Dev
}

// New probes the chip ID and brings the device into 100Hz full-resolution
// measurement mode.
func New(bus i2c.Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = DefaultOpts()
	}
	addr := opts.Addr
	if addr == 0 {
		addr = DefaultAddr
	}
	dev := &Dev{d: i2c.Dev{Bus: bus, Addr: addr}}

	id, err := dev.readReg(regDevID)
	if err != nil {
		return nil, fmt.Errorf("adxl345: reading device ID: %w", err)
	}
	if id != devID {
		return nil, fmt.Errorf("adxl345: unexpected device ID 0x%02X, want 0x%02X", id, devID)
	}

	init := []struct {
		reg, val byte
	}{
		{regBWRate, rate100Hz},
		{regDataFormat, formatFullRes},
		{regPowerCtl, powerMeasure},
	}
	for _, w := range init {
		if err := dev.writeReg(w.reg, w.val); err != nil {
			return nil, fmt.Errorf("adxl345: writing register 0x%02X: %w", w.reg, err)
		}
	}
	return dev, nil
}

// Acceleration reads one sample and returns it in m/s² per axis.
func (d *Dev) Acceleration() (x, y, z float64, err error) {
	var buf [6]byte
	if err := d.d.Tx([]byte{regDataX0}, buf[:]); err != nil {
		return 0, 0, 0, fmt.Errorf("adxl345: reading sample: %w", err)
	}
	x = float64(int16(binary.LittleEndian.Uint16(buf[0:2]))) * scale
	y = float64(int16(binary.LittleEndian.Uint16(buf[2:4]))) * scale
	z = float64(int16(binary.LittleEndian.Uint16(buf[4:6]))) * scale
	return x, y, z, nil
}

// EnableTapDetection arms the single-tap interrupt on all axes with the
// configured threshold and duration. LATENT and WINDOW stay zero: double
// taps are paired in software, not by the chip.
func (d *Dev) EnableTapDetection(opts *Opts) error {
	if opts == nil {
		opts = DefaultOpts()
	}
	thresh := opts.TapThresh
	if thresh == 0 {
		thresh = DefaultOpts().TapThresh
	}
	dur := opts.TapDur
	if dur == 0 {
		dur = DefaultOpts().TapDur
	}
	writes := []struct {
		reg, val byte
	}{
		{regThreshTap, thresh},
		{regDur, dur},
		{regLatent, 0x00},
		{regWindow, 0x00},
		{regTapAxes, tapAxesXYZ},
		{regIntEnable, intSingleTap},
	}
	for _, w := range writes {
		if err := d.writeReg(w.reg, w.val); err != nil {
			return fmt.Errorf("adxl345: configuring tap engine (0x%02X): %w", w.reg, err)
		}
	}
	return nil
}

// TapDetected reads and clears the single-tap interrupt flag. Reading
// INT_SOURCE clears all latched interrupt bits, so polling must happen
// from a single owner.
func (d *Dev) TapDetected() (bool, error) {
	src, err := d.readReg(regIntSource)
	if err != nil {
		return false, fmt.Errorf("adxl345: reading interrupt source: %w", err)
	}
	return src&intSingleTap != 0, nil
}

// Halt takes the device out of measurement mode.
func (d *Dev) Halt() error {
	if err := d.writeReg(regPowerCtl, 0x00); err != nil {
		return fmt.Errorf("adxl345: entering standby: %w", err)
	}
	return nil
}

func (d *Dev) readReg(reg byte) (byte, error) {
	var buf [1]byte
	if err := d.d.Tx([]byte{reg}, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func (d *Dev) writeReg(reg, val byte) error {
	return d.d.Tx([]byte{reg, val}, nil)
}
