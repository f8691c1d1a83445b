// Copyright (c) 2026 Fogbound Project
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package led drives the single WS2812 status pixel over SPI.
package led

import (
	"fmt"
	"io"
	"log"
	"time"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
)

// Feedback colors, RGB. Dimmed so the pixel does not blind in a dark room.
var (
	colorBoot    = [3]byte{0x40, 0x30, 0x00} // yellow, game booting
	colorCorrect = [3]byte{0x00, 0x00, 0x60} // blue, puzzle solved
	colorWrong   = [3]byte{0x60, 0x00, 0x00} // red, puzzle failed
	colorOff     = [3]byte{0x00, 0x00, 0x00}
)

// HoldDuration is how long Correct and Wrong keep their color lit.
const HoldDuration = 3 * time.Second

// Sleeper lets tests collapse the feedback holds.
type Sleeper interface {
	Sleep(d time.Duration)
}

type realSleeper struct{}

func (realSleeper) Sleep(d time.Duration) { time.Sleep(d) }

// StatusLED shows one-color game feedback on the pixel.
type StatusLED struct {
	w       io.Writer
	sleeper Sleeper
}

// NewSPI opens the named SPI port (empty for the first available) and
// attaches the NRZ encoder for one RGB pixel.
func NewSPI(portName string) (*StatusLED, error) {
	port, err := spireg.Open(portName)
	if err != nil {
		return nil, fmt.Errorf("led: opening SPI port %q: %w", portName, err)
	}
	dev, err := nrzled.NewSPI(port, &nrzled.Opts{
		NumPixels: 1,
		Channels:  3,
		Freq:      2500 * physic.KiloHertz,
	})
	if err != nil {
		return nil, fmt.Errorf("led: attaching WS2812: %w", err)
	}
	log.Printf("led: WS2812 attached on SPI port %q", portName)
	return &StatusLED{w: dev, sleeper: realSleeper{}}, nil
}

// New wraps a raw pixel writer, for tests.
func New(w io.Writer, sleeper Sleeper) *StatusLED {
	if sleeper == nil {
		sleeper = realSleeper{}
	}
	return &StatusLED{w: w, sleeper: sleeper}
}

func (l *StatusLED) set(c [3]byte) error {
	if _, err := l.w.Write(c[:]); err != nil {
		return fmt.Errorf("led: writing pixel: %w", err)
	}
	return nil
}

// Boot lights the startup color and leaves it on.
func (l *StatusLED) Boot() error { return l.set(colorBoot) }

// Off blanks the pixel.
func (l *StatusLED) Off() error { return l.set(colorOff) }

// Correct flashes the success color for the hold duration, then off.
func (l *StatusLED) Correct() error {
	if err := l.set(colorCorrect); err != nil {
		return err
	}
	l.sleeper.Sleep(HoldDuration)
	return l.set(colorOff)
}

// Wrong flashes the failure color for the hold duration, then off.
func (l *StatusLED) Wrong() error {
	if err := l.set(colorWrong); err != nil {
		return err
	}
	l.sleeper.Sleep(HoldDuration)
	return l.set(colorOff)
}
