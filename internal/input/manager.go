// Copyright (c) 2026 Fogbound Project
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package input

import (
	"time"

	"fogbound/internal/filter"
)

// Axis names one accelerometer axis for detection requests.
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
	AxisZ Axis = "z"
)

// Tuning holds every threshold and window of the fusion layer. The zero
// value is not usable; start from DefaultTuning and override from config.
type Tuning struct {
	// Alpha is the EMA smoothing factor in (0,1].
	Alpha float64
	// MotionThreshold is the baseline-relative deviation, in sensor
	// units, that counts as movement on an axis.
	MotionThreshold float64
	// TiltThreshold is the absolute filtered value, in sensor units,
	// that counts as a tilt.
	TiltThreshold float64
	// ConfirmTicks is how many consecutive super-threshold ticks an axis
	// needs before it is confirmed.
	ConfirmTicks int
	// ConfirmFactor is the stricter multiplier applied to
	// MotionThreshold on the confirming tick.
	ConfirmFactor float64

	DoubleClickWindow time.Duration
	DoubleTapWindow   time.Duration

	// TickInterval is the sleep between iterations of the accelerometer
	// detectors; NavTickInterval is the faster cadence of the pure
	// button/encoder loops.
	TickInterval    time.Duration
	NavTickInterval time.Duration

	ButtonDebounce         time.Duration
	EncoderDebounce        time.Duration
	EncoderPulsesPerDetent int

	CalibrationSamples int
	CalibrationDelay   time.Duration
}

// DefaultTuning returns the constants the hardware was tuned with.
func DefaultTuning() Tuning {
	return Tuning{
		Alpha:                  0.3,
		MotionThreshold:        0.30,
		TiltThreshold:          1.2,
		ConfirmTicks:           5,
		ConfirmFactor:          1.2,
		DoubleClickWindow:      500 * time.Millisecond,
		DoubleTapWindow:        400 * time.Millisecond,
		TickInterval:           20 * time.Millisecond,
		NavTickInterval:        10 * time.Millisecond,
		ButtonDebounce:         10 * time.Millisecond,
		EncoderDebounce:        3 * time.Millisecond,
		EncoderPulsesPerDetent: 3,
		CalibrationSamples:     100,
		CalibrationDelay:       10 * time.Millisecond,
	}
}

// Manager is the single owner of all fused input state. Update must be
// called once per tick before any query; the blocking detectors call it
// themselves. Everything here is single-threaded by design: there is one
// polling loop and no detector may run concurrently with another.
type Manager struct {
	devs  Devices
	clock Clock
	tun   Tuning

	left   *Debouncer
	right  *Debouncer
	encBtn *Debouncer
	enc    *Encoder

	xFilt, yFilt, zFilt float64
	seeded              bool
	baseline            Baseline
	calibrated          bool

	// sampleOK marks ticks that got a fresh accelerometer reading.
	// Confirmation counters only advance on such ticks.
	sampleOK bool
	tapped   bool
}

// NewManager wires the devices into a fusion manager. A nil clock uses
// the system clock.
func NewManager(devs Devices, clock Clock, tun Tuning) *Manager {
	if clock == nil {
		clock = SystemClock()
	}
	return &Manager{
		devs:   devs,
		clock:  clock,
		tun:    tun,
		left:   NewDebouncer(devs.Left, tun.ButtonDebounce),
		right:  NewDebouncer(devs.Right, tun.ButtonDebounce),
		encBtn: NewDebouncer(devs.EncoderButton, tun.ButtonDebounce),
		enc:    NewEncoder(devs.EncoderClk, devs.EncoderDt, tun.EncoderDebounce, tun.EncoderPulsesPerDetent),
	}
}

// Update advances one tick: encoder, buttons and accelerometer are all
// refreshed before it returns, so a reader never sees a partial tick.
func (m *Manager) Update() {
	now := m.clock.Now()

	m.enc.Update(now)
	m.encBtn.Update(now)
	m.left.Update(now)
	m.right.Update(now)

	m.sampleOK = false
	x, y, z, err := m.devs.Accel.Acceleration()
	if err == nil {
		if !m.seeded {
			m.xFilt, m.yFilt, m.zFilt = x, y, z
			m.seeded = true
		} else {
			m.xFilt = filter.EMA(x, m.xFilt, m.tun.Alpha)
			m.yFilt = filter.EMA(y, m.yFilt, m.tun.Alpha)
			m.zFilt = filter.EMA(z, m.zFilt, m.tun.Alpha)
		}
		m.sampleOK = true
	}

	m.tapped = false
	if m.devs.Taps != nil {
		if tapped, err := m.devs.Taps.TapDetected(); err == nil {
			m.tapped = tapped
		}
	}
}

// Calibrate captures the stationary baseline and resets the filter to it.
// The device must be held still while this runs.
func (m *Manager) Calibrate() error {
	b, err := Calibrate(m.devs.Accel, m.clock, m.tun.CalibrationSamples, m.tun.CalibrationDelay)
	if err != nil {
		return err
	}
	m.baseline = b
	m.xFilt, m.yFilt, m.zFilt = b.X, b.Y, b.Z
	m.seeded = true
	m.calibrated = true
	return nil
}

// Calibrated reports whether a baseline has been captured.
func (m *Manager) Calibrated() bool { return m.calibrated }

// BaselineValues returns the captured stationary reference.
func (m *Manager) BaselineValues() Baseline { return m.baseline }

// Filtered returns the current EMA-smoothed sample.
func (m *Manager) Filtered() (x, y, z float64) { return m.xFilt, m.yFilt, m.zFilt }

// LeftPressed reports a left button press edge for the current tick.
func (m *Manager) LeftPressed() bool { return m.left.Fell() }

// RightPressed reports a right button press edge for the current tick.
func (m *Manager) RightPressed() bool { return m.right.Fell() }

// EncoderPressed reports an encoder button press edge for the current tick.
func (m *Manager) EncoderPressed() bool { return m.encBtn.Fell() }

// EncoderPosition returns the accumulated encoder detent count.
func (m *Manager) EncoderPosition() int { return m.enc.Position() }
