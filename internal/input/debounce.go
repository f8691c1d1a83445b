package input

import "time"

// Debouncer tracks one mechanical contact. A level change only becomes
// the debounced state after it has held steady for the debounce interval.
// Fell and Rose are true for exactly the one Update following the
// debounced transition, then auto-clear.
type Debouncer struct {
	line     Line
	interval time.Duration

	primed     bool
	raw        bool
	debounced  bool
	lastChange time.Time
	fell       bool
	rose       bool
}

// NewDebouncer wraps line with the given stable interval.
func NewDebouncer(line Line, interval time.Duration) *Debouncer {
	return &Debouncer{line: line, interval: interval}
}

// Update samples the raw level once. A read error keeps the previous
// state; the edge flags still clear so a stale edge is never reported twice.
func (d *Debouncer) Update(now time.Time) {
	d.fell = false
	d.rose = false

	level, err := d.line.Level()
	if err != nil {
		return
	}

	if !d.primed {
		d.raw = level
		d.debounced = level
		d.lastChange = now
		d.primed = true
		return
	}

	if level != d.raw {
		d.raw = level
		d.lastChange = now
		return
	}

	if level != d.debounced && now.Sub(d.lastChange) >= d.interval {
		d.debounced = level
		if level {
			d.rose = true
		} else {
			d.fell = true
		}
	}
}

// Value returns the debounced level. True is logic high, which with the
// pull-up wiring means the button is released.
func (d *Debouncer) Value() bool { return d.debounced }

// Fell reports a debounced high-to-low transition (button press).
func (d *Debouncer) Fell() bool { return d.fell }

// Rose reports a debounced low-to-high transition (button release).
func (d *Debouncer) Rose() bool { return d.rose }
