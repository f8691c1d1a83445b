package input

import (
	"testing"
	"time"
)

func TestCalibrateAveragesSamples(t *testing.T) {
	accel := &scriptAccel{samples: []sample{
		{x: 1, y: 2, z: 9.6},
		{x: 3, y: 2, z: 9.8},
		{x: 2, y: 2, z: 10.0},
	}}
	clock := newFakeClock()

	b, err := Calibrate(accel, clock, 3, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("Calibrate: %v", err)
	}
	if b.X != 2 || b.Y != 2 || b.Z != 9.8 {
		t.Errorf("baseline = %+v, want {2 2 9.8}", b)
	}
}

func TestCalibrateSkipsFailedReads(t *testing.T) {
	accel := &scriptAccel{samples: []sample{
		{x: 1}, {err: true}, {x: 3}, {err: true},
	}}
	clock := newFakeClock()

	b, err := Calibrate(accel, clock, 4, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("Calibrate: %v", err)
	}
	if b.X != 2 {
		t.Errorf("baseline X = %v, want 2 (failed reads excluded from the mean)", b.X)
	}
}

func TestCalibrateAllReadsFail(t *testing.T) {
	accel := &scriptAccel{samples: []sample{{err: true}}}
	clock := newFakeClock()

	if _, err := Calibrate(accel, clock, 5, 10*time.Millisecond); err == nil {
		t.Fatal("Calibrate succeeded with no valid samples")
	}
}

func TestCalibratePacesSamples(t *testing.T) {
	accel := constAccel(0, 0, 9.8)
	clock := newFakeClock()
	start := clock.Now()

	if _, err := Calibrate(accel, clock, 10, 10*time.Millisecond); err != nil {
		t.Fatalf("Calibrate: %v", err)
	}
	if got := clock.Now().Sub(start); got != 100*time.Millisecond {
		t.Errorf("calibration took %v of fake time, want 100ms", got)
	}
}
