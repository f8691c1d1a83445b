// Copyright (c) 2026 Fogbound Project
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package input

import (
	"math"
	"time"
)

// HintFunc is invoked every tick of a blocking detector with the elapsed
// time, so callers can surface hints while the player struggles.
type HintFunc func(elapsed time.Duration)

// ChoiceFunc receives the currently highlighted choice and the whole
// seconds remaining. It is only called when either value changes.
type ChoiceFunc func(choice string, secondsLeft int)

// Every blocking detector below follows the same template: tick the
// manager, test its condition, run the hint callback, check the timeout,
// sleep, repeat. A timeout of 0 means wait forever. Timeout is the only
// failure signal; there is no cancelled state.

// DetectMovement waits for movement away from the baseline.
//
// With required axes each axis must stay above MotionThreshold for
// ConfirmTicks consecutive sampled ticks and exceed the stricter
// MotionThreshold*ConfirmFactor bound before it counts; a single
// sub-threshold tick resets that axis. Success once every required axis
// is confirmed. Without required axes any single super-threshold tick on
// any axis succeeds immediately (legacy path, deliberately weaker).
func (m *Manager) DetectMovement(timeout time.Duration, required []Axis, hint HintFunc) bool {
	start := m.clock.Now()

	var req map[Axis]bool
	if len(required) > 0 {
		req = make(map[Axis]bool, len(required))
		for _, a := range required {
			req[a] = true
		}
	}
	confirm := make(map[Axis]int)
	detected := make(map[Axis]bool)

	for {
		m.Update()

		diffs := map[Axis]float64{
			AxisX: math.Abs(m.xFilt - m.baseline.X),
			AxisY: math.Abs(m.yFilt - m.baseline.Y),
			AxisZ: math.Abs(m.zFilt - m.baseline.Z),
		}

		if req != nil {
			if m.sampleOK {
				for axis := range req {
					diff := diffs[axis]
					if diff > m.tun.MotionThreshold {
						confirm[axis]++
						if confirm[axis] >= m.tun.ConfirmTicks &&
							diff > m.tun.MotionThreshold*m.tun.ConfirmFactor {
							detected[axis] = true
						}
					} else {
						confirm[axis] = 0
					}
				}
			}
			if len(detected) == len(req) {
				return true
			}
		} else if m.sampleOK {
			if diffs[AxisX] > m.tun.MotionThreshold ||
				diffs[AxisY] > m.tun.MotionThreshold ||
				diffs[AxisZ] > m.tun.MotionThreshold {
				return true
			}
		}

		if hint != nil {
			hint(m.clock.Now().Sub(start))
		}
		if timeout > 0 && m.clock.Now().Sub(start) > timeout {
			return false
		}
		m.clock.Sleep(m.tun.TickInterval)
	}
}

// DetectTiltLeft waits for the filtered X value to cross below
// -TiltThreshold. Tilt is an instantaneous gesture: a single sampled
// tick is enough, no confirmation window.
func (m *Manager) DetectTiltLeft(timeout time.Duration) bool {
	return m.detectTilt(timeout, func() bool {
		return m.xFilt < -m.tun.TiltThreshold
	})
}

// DetectTiltForward waits for the filtered Y value to exceed
// TiltThreshold. Same instantaneous semantics as DetectTiltLeft.
func (m *Manager) DetectTiltForward(timeout time.Duration) bool {
	return m.detectTilt(timeout, func() bool {
		return m.yFilt > m.tun.TiltThreshold
	})
}

// DetectTiltForwardZ waits for the baseline-relative Z deviation to
// exceed TiltThreshold in either direction. Unlike the X/Y tilts this
// one is baseline-relative because gravity dominates the resting Z axis.
func (m *Manager) DetectTiltForwardZ(timeout time.Duration) bool {
	return m.detectTilt(timeout, func() bool {
		return math.Abs(m.zFilt-m.baseline.Z) > m.tun.TiltThreshold
	})
}

func (m *Manager) detectTilt(timeout time.Duration, cond func() bool) bool {
	start := m.clock.Now()
	for {
		m.Update()
		if m.sampleOK && cond() {
			return true
		}
		if timeout > 0 && m.clock.Now().Sub(start) > timeout {
			return false
		}
		m.clock.Sleep(m.tun.TickInterval)
	}
}

// StayStill succeeds only if no axis deviates beyond MotionThreshold
// from the baseline for the whole duration.
func (m *Manager) StayStill(duration time.Duration) bool {
	start := m.clock.Now()
	for m.clock.Now().Sub(start) < duration {
		m.Update()
		if m.sampleOK {
			if math.Abs(m.xFilt-m.baseline.X) > m.tun.MotionThreshold ||
				math.Abs(m.yFilt-m.baseline.Y) > m.tun.MotionThreshold ||
				math.Abs(m.zFilt-m.baseline.Z) > m.tun.MotionThreshold {
				return false
			}
		}
		m.clock.Sleep(m.tun.TickInterval)
	}
	return true
}

// DetectAllDirections waits until both polarities of every requested
// axis have crossed TiltThreshold at least once. X and Y test the raw
// filtered value while Z tests the baseline-relative deviation; the
// asymmetry matches the hardware's resting orientation, where gravity
// sits on Z. Tokens accumulate and are never removed until the call
// returns.
func (m *Manager) DetectAllDirections(timeout time.Duration, axes []Axis, hint HintFunc) bool {
	start := m.clock.Now()

	want := make(map[Axis]bool, len(axes))
	for _, a := range axes {
		want[a] = true
	}
	requiredCount := 2 * len(want)
	seen := make(map[string]bool)

	for {
		m.Update()

		if m.sampleOK {
			if want[AxisX] {
				if m.xFilt > m.tun.TiltThreshold {
					seen["+X"] = true
				}
				if m.xFilt < -m.tun.TiltThreshold {
					seen["-X"] = true
				}
			}
			if want[AxisY] {
				if m.yFilt > m.tun.TiltThreshold {
					seen["+Y"] = true
				}
				if m.yFilt < -m.tun.TiltThreshold {
					seen["-Y"] = true
				}
			}
			if want[AxisZ] {
				zDiff := m.zFilt - m.baseline.Z
				if zDiff > m.tun.TiltThreshold {
					seen["+Z"] = true
				}
				if zDiff < -m.tun.TiltThreshold {
					seen["-Z"] = true
				}
			}
		}

		if hint != nil {
			hint(m.clock.Now().Sub(start))
		}
		if len(seen) >= requiredCount {
			return true
		}
		if timeout > 0 && m.clock.Now().Sub(start) > timeout {
			return false
		}
		m.clock.Sleep(m.tun.TickInterval)
	}
}

// DetectDoubleTap waits for two hardware tap events within the double
// tap window. Returns false immediately when the accelerometer has no
// tap engine.
func (m *Manager) DetectDoubleTap(timeout time.Duration, hint HintFunc) bool {
	if m.devs.Taps == nil {
		return false
	}
	start := m.clock.Now()
	var lastTap time.Time

	for {
		m.Update()

		if m.tapped {
			now := m.clock.Now()
			if !lastTap.IsZero() && now.Sub(lastTap) <= m.tun.DoubleTapWindow {
				return true
			}
			lastTap = now
		}

		if hint != nil {
			hint(m.clock.Now().Sub(start))
		}
		if timeout > 0 && m.clock.Now().Sub(start) > timeout {
			return false
		}
		m.clock.Sleep(m.tun.TickInterval)
	}
}

// DetectDoubleClick waits for two press edges of the same button within
// the double click window. Edges on different buttons never combine. A
// click that misses the window becomes the new pending first click.
func (m *Manager) DetectDoubleClick(timeout time.Duration, hint HintFunc) bool {
	start := m.clock.Now()
	var lastLeft, lastRight time.Time

	for {
		m.Update()
		now := m.clock.Now()

		if m.left.Fell() {
			if !lastLeft.IsZero() && now.Sub(lastLeft) <= m.tun.DoubleClickWindow {
				return true
			}
			lastLeft = now
		}
		if m.right.Fell() {
			if !lastRight.IsZero() && now.Sub(lastRight) <= m.tun.DoubleClickWindow {
				return true
			}
			lastRight = now
		}

		if hint != nil {
			hint(now.Sub(start))
		}
		if timeout > 0 && now.Sub(start) > timeout {
			return false
		}
		m.clock.Sleep(m.tun.TickInterval)
	}
}

// BothButtonsHeld succeeds only if both buttons stay continuously
// pressed for the whole duration. The instant either debounced level
// reads released the call fails; a re-press does not resume the window.
func (m *Manager) BothButtonsHeld(duration time.Duration) bool {
	start := m.clock.Now()
	for m.clock.Now().Sub(start) < duration {
		m.Update()
		if m.left.Value() || m.right.Value() {
			return false
		}
		m.clock.Sleep(m.tun.NavTickInterval)
	}
	return true
}

// HoldBothButtons waits up to timeout for both buttons to be down, then
// requires the continuous BothButtonsHeld window. A hold broken early
// goes back to waiting for a fresh press; the call fails only when the
// outer window expires before any complete hold. A timeout of 0 waits
// forever.
func (m *Manager) HoldBothButtons(timeout, hold time.Duration, hint HintFunc) bool {
	start := m.clock.Now()
	for {
		m.Update()
		if !m.left.Value() && !m.right.Value() {
			if m.BothButtonsHeld(hold) {
				return true
			}
		}
		if hint != nil {
			hint(m.clock.Now().Sub(start))
		}
		if timeout > 0 && m.clock.Now().Sub(start) > timeout {
			return false
		}
		m.clock.Sleep(m.tun.NavTickInterval)
	}
}

// WaitForEncoderPress blocks until the encoder button press edge. There
// is no timeout; this is the pacing primitive for narrative screens.
func (m *Manager) WaitForEncoderPress() {
	for {
		m.Update()
		if m.encBtn.Fell() {
			return
		}
		m.clock.Sleep(m.tun.NavTickInterval)
	}
}

// NavigateChoice lets the player move through choices with the left and
// right buttons or the encoder knob (wrapping) and commit with the
// encoder button. The display callback runs when the highlighted choice
// changes or when the whole-second countdown ticks down, never on every
// iteration. Returns the committed index, or -1 when the timeout
// elapses. A timeout of 0 waits forever and reports secondsLeft as 0.
func (m *Manager) NavigateChoice(choices []string, timeout time.Duration, display ChoiceFunc) int {
	if len(choices) == 0 {
		return -1
	}
	start := m.clock.Now()
	index := 0
	lastPos := m.EncoderPosition()

	secondsLeft := func() int {
		if timeout <= 0 {
			return 0
		}
		return int((timeout - m.clock.Now().Sub(start)).Seconds())
	}

	lastCountdown := secondsLeft()
	if display != nil {
		display(choices[index], lastCountdown)
	}

	for {
		m.Update()

		if m.left.Fell() {
			index = (index - 1 + len(choices)) % len(choices)
			if display != nil {
				display(choices[index], secondsLeft())
			}
		}
		if m.right.Fell() {
			index = (index + 1) % len(choices)
			if display != nil {
				display(choices[index], secondsLeft())
			}
		}
		if pos := m.EncoderPosition(); pos != lastPos {
			steps := pos - lastPos
			lastPos = pos
			index = ((index+steps)%len(choices) + len(choices)) % len(choices)
			if display != nil {
				display(choices[index], secondsLeft())
			}
		}
		if m.encBtn.Fell() {
			return index
		}

		if timeout > 0 {
			if remaining := secondsLeft(); remaining < lastCountdown {
				if display != nil {
					display(choices[index], remaining)
				}
				lastCountdown = remaining
			}
			if m.clock.Now().Sub(start) > timeout {
				return -1
			}
		}

		m.clock.Sleep(m.tun.NavTickInterval)
	}
}
