// Copyright (c) 2026 Fogbound Project
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fogbound/internal/filter"
	"fogbound/internal/input"
)

// RunCalibrate captures a baseline and then streams filtered readings
// and confirmed direction tokens to stdout. Used on the bench when
// tuning thresholds for a new enclosure.
func RunCalibrate() error {
	hw, err := setupHardware()
	if err != nil {
		return err
	}

	log.Println("calibrate: hold the box still")
	if err := hw.Screen.ShowText("Hold still\nCalibrating..."); err != nil {
		log.Printf("calibrate: display error: %v", err)
	}
	if err := hw.Manager.Calibrate(); err != nil {
		return err
	}
	b := hw.Manager.BaselineValues()
	fmt.Printf("baseline  x=%8.4f  y=%8.4f  z=%8.4f\n", b.X, b.Y, b.Z)
	if err := hw.Screen.ShowText("Calibrated\nStreaming..."); err != nil {
		log.Printf("calibrate: display error: %v", err)
	}

	dir := input.NewDirectionReader(hw.Accel, 0, 0, 0)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-sig:
			log.Println("calibrate: stopping")
			return nil
		case <-ticker.C:
			hw.Manager.Update()
			x, y, z := hw.Manager.Filtered()
			line := fmt.Sprintf("filtered  x=%8.4f  y=%8.4f  z=%8.4f  |a|=%8.4f",
				x, y, z, filter.Magnitude(x, y, z))
			if token, ok := dir.Update(); ok {
				line += "  dir=" + token
			}
			fmt.Println(line)
		}
	}
}
