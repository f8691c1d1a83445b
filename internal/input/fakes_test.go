package input

import (
	"errors"
	"time"
)

// fakeClock advances only when a detector sleeps, making every blocking
// loop deterministic.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time        { return c.now }
func (c *fakeClock) Sleep(d time.Duration) { c.now = c.now.Add(d) }

// timedLine derives its level from elapsed fake time, so press windows
// can be scripted as time ranges.
type timedLine struct {
	clock *fakeClock
	start time.Time
	fn    func(elapsed time.Duration) bool
}

func (l *timedLine) Level() (bool, error) {
	return l.fn(l.clock.now.Sub(l.start)), nil
}

func releasedLine(clock *fakeClock) *timedLine {
	return &timedLine{clock: clock, start: clock.now, fn: func(time.Duration) bool { return true }}
}

// pressedDuring returns a line held low (pressed) inside any of the
// given [from,to) windows.
func pressedDuring(clock *fakeClock, windows ...[2]time.Duration) *timedLine {
	return &timedLine{clock: clock, start: clock.now, fn: func(elapsed time.Duration) bool {
		for _, w := range windows {
			if elapsed >= w[0] && elapsed < w[1] {
				return false
			}
		}
		return true
	}}
}

type sample struct {
	x, y, z float64
	err     bool
}

var errSensor = errors.New("sensor read failed")

// scriptAccel returns one scripted sample per read and then sticks on
// the last one.
type scriptAccel struct {
	samples []sample
	reads   int
}

func (a *scriptAccel) Acceleration() (float64, float64, float64, error) {
	i := a.reads
	if i >= len(a.samples) {
		i = len(a.samples) - 1
	}
	a.reads++
	s := a.samples[i]
	if s.err {
		return 0, 0, 0, errSensor
	}
	return s.x, s.y, s.z, nil
}

func constAccel(x, y, z float64) *scriptAccel {
	return &scriptAccel{samples: []sample{{x: x, y: y, z: z}}}
}

// scriptTaps reports one scripted tap flag per read, then false.
type scriptTaps struct {
	taps  []bool
	reads int
}

func (s *scriptTaps) TapDetected() (bool, error) {
	if s.reads >= len(s.taps) {
		s.reads++
		return false, nil
	}
	v := s.taps[s.reads]
	s.reads++
	return v, nil
}

// rig assembles a Manager around fakes. Lines not overridden stay
// released (high).
type rig struct {
	clock *fakeClock
	accel *scriptAccel
	mgr   *Manager
}

type rigOpt func(*Devices, *fakeClock)

func withLeft(windows ...[2]time.Duration) rigOpt {
	return func(d *Devices, c *fakeClock) { d.Left = pressedDuring(c, windows...) }
}

func withRight(windows ...[2]time.Duration) rigOpt {
	return func(d *Devices, c *fakeClock) { d.Right = pressedDuring(c, windows...) }
}

func withEncoderButton(windows ...[2]time.Duration) rigOpt {
	return func(d *Devices, c *fakeClock) { d.EncoderButton = pressedDuring(c, windows...) }
}

func withTaps(taps ...bool) rigOpt {
	return func(d *Devices, c *fakeClock) { d.Taps = &scriptTaps{taps: taps} }
}

// withClockwiseRotation toggles CLK once per 10ms tick with DT trailing,
// so every accepted edge counts clockwise and each third tick completes
// a detent.
func withClockwiseRotation() rigOpt {
	return func(d *Devices, c *fakeClock) {
		start := c.now
		d.EncoderClk = &timedLine{clock: c, start: start, fn: func(elapsed time.Duration) bool {
			return (elapsed/(10*time.Millisecond))%2 == 1
		}}
		d.EncoderDt = &timedLine{clock: c, start: start, fn: func(elapsed time.Duration) bool {
			return (elapsed/(10*time.Millisecond))%2 == 0
		}}
	}
}

func newRig(accel *scriptAccel, tun Tuning, opts ...rigOpt) *rig {
	clock := newFakeClock()
	devs := Devices{
		Accel:         accel,
		Left:          releasedLine(clock),
		Right:         releasedLine(clock),
		EncoderButton: releasedLine(clock),
		EncoderClk:    releasedLine(clock),
		EncoderDt:     releasedLine(clock),
	}
	for _, opt := range opts {
		opt(&devs, clock)
	}
	return &rig{clock: clock, accel: accel, mgr: NewManager(devs, clock, tun)}
}

// passthroughTuning disables EMA lag so scripted samples land on the
// filtered state unchanged.
func passthroughTuning() Tuning {
	tun := DefaultTuning()
	tun.Alpha = 1.0
	return tun
}

// setBaseline seeds the manager as if Calibrate had run against a still
// device resting at the given reading.
func (r *rig) setBaseline(x, y, z float64) {
	r.mgr.baseline = Baseline{X: x, Y: y, Z: z}
	r.mgr.xFilt, r.mgr.yFilt, r.mgr.zFilt = x, y, z
	r.mgr.seeded = true
	r.mgr.calibrated = true
}
