package input

import "time"

// Encoder decodes a quadrature rotary encoder into a signed detent count.
// Raw CLK edges closer together than the debounce interval are ignored as
// contact bounce, and pulsesPerDetent accepted edges make one detent.
type Encoder struct {
	clk, dt         Line
	debounce        time.Duration
	pulsesPerDetent int

	primed   bool
	lastClk  bool
	lastEdge time.Time
	pulses   int
	position int
}

// NewEncoder creates a tracker for the given quadrature lines.
// pulsesPerDetent values below 1 are treated as 1.
func NewEncoder(clk, dt Line, debounce time.Duration, pulsesPerDetent int) *Encoder {
	if pulsesPerDetent < 1 {
		pulsesPerDetent = 1
	}
	return &Encoder{clk: clk, dt: dt, debounce: debounce, pulsesPerDetent: pulsesPerDetent}
}

// Update samples both lines once. Read errors skip the tick.
func (e *Encoder) Update(now time.Time) {
	clk, err := e.clk.Level()
	if err != nil {
		return
	}
	dt, err := e.dt.Level()
	if err != nil {
		return
	}

	if !e.primed {
		e.lastClk = clk
		e.lastEdge = now
		e.primed = true
		return
	}

	if clk == e.lastClk {
		return
	}
	e.lastClk = clk

	if now.Sub(e.lastEdge) < e.debounce {
		return
	}
	e.lastEdge = now

	// On a CLK edge the DT level tells the direction: DT trailing CLK is
	// clockwise, DT leading is counter-clockwise.
	dir := 1
	if dt == clk {
		dir = -1
	}

	// A direction reversal mid-detent discards the partial pulses.
	if e.pulses != 0 && (e.pulses > 0) != (dir > 0) {
		e.pulses = 0
	}
	e.pulses += dir

	switch {
	case e.pulses >= e.pulsesPerDetent:
		e.position++
		e.pulses = 0
	case e.pulses <= -e.pulsesPerDetent:
		e.position--
		e.pulses = 0
	}
}

// Position returns the accumulated detent count, signed by direction.
func (e *Encoder) Position() int { return e.position }
