package input

import (
	"math"

	"fogbound/internal/filter"
)

// DirectionReader is a non-blocking dominant-axis classifier with its
// own EMA state, separate from the Manager's movement detectors. It
// reports a sign-tagged direction only after the same classification has
// held for confirmSamples consecutive reads.
type DirectionReader struct {
	accel          Accelerometer
	alpha          float64
	threshold      float64
	confirmSamples int

	xFilt, yFilt, zFilt float64
	seeded              bool
	direction           string
	count               int
}

// NewDirectionReader builds a reader with the usual defaults for zero
// arguments: alpha 0.3, threshold 1.2, 3 confirming samples.
func NewDirectionReader(accel Accelerometer, alpha, threshold float64, confirmSamples int) *DirectionReader {
	if alpha <= 0 || alpha > 1 {
		alpha = 0.3
	}
	if threshold <= 0 {
		threshold = 1.2
	}
	if confirmSamples < 1 {
		confirmSamples = 3
	}
	return &DirectionReader{
		accel:          accel,
		alpha:          alpha,
		threshold:      threshold,
		confirmSamples: confirmSamples,
	}
}

// Update reads one sample and returns a confirmed direction token
// ("+X".."-Z") with ok=true, or ok=false while nothing is confirmed.
func (r *DirectionReader) Update() (string, bool) {
	x, y, z, err := r.accel.Acceleration()
	if err != nil {
		return "", false
	}

	if !r.seeded {
		r.xFilt, r.yFilt, r.zFilt = x, y, z
		r.seeded = true
	} else {
		r.xFilt = filter.EMA(x, r.xFilt, r.alpha)
		r.yFilt = filter.EMA(y, r.yFilt, r.alpha)
		r.zFilt = filter.EMA(z, r.zFilt, r.alpha)
	}

	absX := math.Abs(r.xFilt)
	absY := math.Abs(r.yFilt)
	absZ := math.Abs(r.zFilt)

	dominant := "Z"
	value := r.zFilt
	switch {
	case absX >= absY && absX >= absZ:
		dominant = "X"
		value = r.xFilt
	case absY >= absX && absY >= absZ:
		dominant = "Y"
		value = r.yFilt
	}

	direction := ""
	if value > r.threshold {
		direction = "+" + dominant
	} else if value < -r.threshold {
		direction = "-" + dominant
	}

	if direction == r.direction && direction != "" {
		r.count++
	} else {
		r.direction = direction
		r.count = 1
	}

	if r.direction != "" && r.count >= r.confirmSamples {
		return r.direction, true
	}
	return "", false
}
