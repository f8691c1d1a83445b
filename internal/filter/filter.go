// Package filter provides stateless accelerometer signal smoothing math.
package filter

import "math"

// EMA applies an exponential moving average (low-pass) step.
// alpha is the smoothing factor in (0,1]; lower means more smoothing.
func EMA(raw, filtered, alpha float64) float64 {
	return alpha*raw + (1-alpha)*filtered
}

// HighPass applies a first-order IIR high-pass step. Not used by the
// default detection path; kept for tuning experiments.
func HighPass(raw, prevRaw, prevFiltered, alpha float64) float64 {
	return alpha * (prevFiltered + raw - prevRaw)
}

// Magnitude returns the length of the acceleration vector.
func Magnitude(x, y, z float64) float64 {
	return math.Sqrt(x*x + y*y + z*z)
}
