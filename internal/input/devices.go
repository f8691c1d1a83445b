// Copyright (c) 2026 Fogbound Project
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package input is the gesture-recognition and input-fusion layer: it
// turns noisy accelerometer samples and raw button/encoder levels into
// debounced events and confirmed gestures. All device access goes through
// the small interfaces below so the whole package runs against fakes in
// tests and against periph.io drivers on hardware.
package input

// Accelerometer supplies instantaneous tri-axis samples in the sensor's
// native units. A read error means "no sample this tick"; callers must
// not treat it as fatal.
type Accelerometer interface {
	Acceleration() (x, y, z float64, err error)
}

// TapSource reports latched hardware tap events (ADXL345 INT_SOURCE).
type TapSource interface {
	TapDetected() (bool, error)
}

// Line is a single digital input. Level returns true for logic high.
// All buttons are wired active-low with pull-ups, so true means released.
type Line interface {
	Level() (bool, error)
}

// Devices bundles everything the fusion layer polls each tick.
// Taps may be nil when the accelerometer has no tap engine.
type Devices struct {
	Accel         Accelerometer
	Taps          TapSource
	Left          Line
	Right         Line
	EncoderButton Line
	EncoderClk    Line
	EncoderDt     Line
}
