// Copyright (c) 2026 Fogbound Project
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package display renders narrative text, choices and countdowns on a
// 128x64 SSD1306 OLED.
package display

import (
	"fmt"
	"image"
	"log"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Device is the drawing surface the screen renders onto. *ssd1306.Dev
// satisfies it; tests substitute an in-memory fake.
type Device interface {
	Draw(r image.Rectangle, src image.Image, sp image.Point) error
	Bounds() image.Rectangle
}

// Screen renders text frames onto one monochrome panel.
type Screen struct {
	dev Device
}

// NewI2C opens the panel at addr on the given bus.
func NewI2C(bus i2c.Bus, addr uint16) (*Screen, error) {
	dev, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
	if err != nil {
		return nil, fmt.Errorf("display: initializing panel at 0x%02X: %w", addr, err)
	}
	log.Printf("display: panel initialized at 0x%02X", addr)
	return &Screen{dev: dev}, nil
}

// New wraps an already initialized device, for tests and alternative
// transports.
func New(dev Device) *Screen {
	return &Screen{dev: dev}
}

// Clear blanks the panel.
func (s *Screen) Clear() error {
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, 128, 64))
	return s.dev.Draw(s.dev.Bounds(), img, image.Point{})
}

// ShowText word-wraps text and draws the first Rows lines centered
// horizontally. Longer texts are the caller's job to paginate.
func (s *Screen) ShowText(text string) error {
	lines := WrapText(text, Cols)
	if len(lines) > Rows {
		lines = lines[:Rows]
	}
	return s.ShowLines(lines)
}

// ShowLines draws up to Rows raw lines, each centered.
func (s *Screen) ShowLines(lines []string) error {
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, 128, 64))
	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
	}
	for i, line := range lines {
		if i >= Rows {
			break
		}
		drawer.Dot = fixed.P(centerPad(len(line)), 13*(i+1))
		drawer.DrawString(line)
	}
	return s.dev.Draw(s.dev.Bounds(), img, image.Point{})
}

// ShowChoice draws the highlighted choice between navigation arrows,
// with the countdown on the bottom row. secondsLeft 0 hides the timer.
func (s *Screen) ShowChoice(choice string, secondsLeft int) error {
	lines := []string{"", fmt.Sprintf("< %s >", choice), ""}
	if secondsLeft > 0 {
		lines = append(lines, fmt.Sprintf("%ds", secondsLeft))
	}
	return s.ShowLines(lines)
}
