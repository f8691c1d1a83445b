package input

import "time"

// Clock abstracts the monotonic clock and the cooperative sleep used by
// the blocking detectors. Tests substitute a fake that advances on Sleep.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type wallClock struct{}

func (wallClock) Now() time.Time        { return time.Now() }
func (wallClock) Sleep(d time.Duration) { time.Sleep(d) }

// SystemClock returns the real wall clock.
func SystemClock() Clock { return wallClock{} }
