package input

import (
	"fmt"
	"time"
)

// Baseline is the stationary reference reading captured at startup.
// Movement detection works on deviation from it. It is only meaningful
// if the device was still while Calibrate ran; that is an operator
// discipline, not something the code can verify.
type Baseline struct {
	X, Y, Z float64
}

// Calibrate averages consecutive raw readings into a Baseline, sleeping
// delay between samples. Failed reads are skipped; if every read fails
// the sensor is considered absent and an error is returned.
func Calibrate(accel Accelerometer, clock Clock, samples int, delay time.Duration) (Baseline, error) {
	if samples < 1 {
		samples = 1
	}
	var sumX, sumY, sumZ float64
	good := 0
	for i := 0; i < samples; i++ {
		x, y, z, err := accel.Acceleration()
		if err == nil {
			sumX += x
			sumY += y
			sumZ += z
			good++
		}
		clock.Sleep(delay)
	}
	if good == 0 {
		return Baseline{}, fmt.Errorf("calibrate: no valid samples out of %d reads", samples)
	}
	n := float64(good)
	return Baseline{X: sumX / n, Y: sumY / n, Z: sumZ / n}, nil
}
