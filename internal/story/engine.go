// Copyright (c) 2026 Fogbound Project
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package story

import (
	"fmt"
	"log"
	"time"

	"fogbound/internal/input"
)

// Inputs is the gesture surface the engine plays against. *input.Manager
// satisfies it.
type Inputs interface {
	DetectMovement(timeout time.Duration, required []input.Axis, hint input.HintFunc) bool
	DetectTiltLeft(timeout time.Duration) bool
	DetectTiltForward(timeout time.Duration) bool
	DetectTiltForwardZ(timeout time.Duration) bool
	DetectAllDirections(timeout time.Duration, axes []input.Axis, hint input.HintFunc) bool
	DetectDoubleTap(timeout time.Duration, hint input.HintFunc) bool
	DetectDoubleClick(timeout time.Duration, hint input.HintFunc) bool
	HoldBothButtons(timeout, hold time.Duration, hint input.HintFunc) bool
	StayStill(duration time.Duration) bool
	NavigateChoice(choices []string, timeout time.Duration, display input.ChoiceFunc) int
	WaitForEncoderPress()
}

// Display is the narrative text surface.
type Display interface {
	ShowText(text string) error
	ShowChoice(choice string, secondsLeft int) error
	Clear() error
}

// StatusLED gives per-challenge color feedback.
type StatusLED interface {
	Correct() error
	Wrong() error
	Off() error
}

// Event is one gameplay fact for telemetry.
type Event struct {
	Type    string        `json:"type"`
	Chapter string        `json:"chapter,omitempty"`
	Gesture string        `json:"gesture,omitempty"`
	OK      bool          `json:"ok"`
	Elapsed time.Duration `json:"elapsed_ns"`
}

// EventSink receives gameplay events. Implementations must not block.
type EventSink interface {
	Emit(Event)
}

// Difficulty sets attempt counts and timeout scaling.
type Difficulty struct {
	Name string
	// Attempts is how many tries a wrong outcome allows per challenge.
	Attempts int
	// TimeoutScale stretches or shrinks challenge timeouts. Infinite
	// timeouts stay infinite.
	TimeoutScale float64
}

var (
	Easy   = Difficulty{Name: "easy", Attempts: 2, TimeoutScale: 1.5}
	Normal = Difficulty{Name: "normal", Attempts: 1, TimeoutScale: 1.0}
	Hard   = Difficulty{Name: "hard", Attempts: 1, TimeoutScale: 0.75}
)

// Result summarizes one playthrough.
type Result struct {
	Completed bool
	Elapsed   time.Duration
	// FailedAt is the chapter ID where the run ended, empty on completion.
	FailedAt string
}

// Engine walks a script chapter by chapter against live input.
type Engine struct {
	script  *Script
	inputs  Inputs
	display Display
	led     StatusLED
	events  EventSink
	clock   input.Clock
	diff    Difficulty
}

// NewEngine assembles an engine. A nil events sink discards events, a
// nil clock uses the system clock.
func NewEngine(script *Script, inputs Inputs, display Display, led StatusLED, events EventSink, clock input.Clock, diff Difficulty) *Engine {
	if events == nil {
		events = discardSink{}
	}
	if clock == nil {
		clock = input.SystemClock()
	}
	if diff.Attempts < 1 {
		diff = Normal
	}
	return &Engine{
		script:  script,
		inputs:  inputs,
		display: display,
		led:     led,
		events:  events,
		clock:   clock,
		diff:    diff,
	}
}

type discardSink struct{}

func (discardSink) Emit(Event) {}

// Run plays the whole script and returns how it went. The only error
// source is the display; gameplay failure is reported in the Result.
func (e *Engine) Run() (Result, error) {
	start := e.clock.Now()
	idx := 0
	for idx < len(e.script.Chapters) {
		ch := &e.script.Chapters[idx]
		log.Printf("story: chapter %q starting", ch.ID)
		e.events.Emit(Event{Type: "chapter_started", Chapter: ch.ID, OK: true, Elapsed: e.clock.Now().Sub(start)})

		for _, page := range ch.Intro {
			if err := e.display.ShowText(page); err != nil {
				return Result{}, err
			}
			e.inputs.WaitForEncoderPress()
		}

		next, ok := e.runChallenges(ch)
		if !ok {
			e.events.Emit(Event{Type: "game_over", Chapter: ch.ID, Elapsed: e.clock.Now().Sub(start)})
			return Result{Completed: false, Elapsed: e.clock.Now().Sub(start), FailedAt: ch.ID}, nil
		}
		if next != "" {
			jump, found := e.script.ChapterIndex(next)
			if !found {
				return Result{}, fmt.Errorf("story: goto target %q missing", next)
			}
			idx = jump
			continue
		}
		idx++
	}
	elapsed := e.clock.Now().Sub(start)
	e.events.Emit(Event{Type: "game_completed", OK: true, Elapsed: elapsed})
	return Result{Completed: true, Elapsed: elapsed}, nil
}

// runChallenges plays a chapter's challenges in order. It returns the ID
// of the chapter to jump to (empty for "next in order") and whether the
// run survives.
func (e *Engine) runChallenges(ch *Chapter) (string, bool) {
	for i := range ch.Challenges {
		c := &ch.Challenges[i]
		outcome, ok := e.attemptChallenge(ch.ID, c)
		if !ok {
			return "", false
		}
		if outcome.Goto != "" {
			return outcome.Goto, true
		}
	}
	return "", true
}

// attemptChallenge runs one challenge with the difficulty's attempt
// budget. ok=false means the run is over.
func (e *Engine) attemptChallenge(chapterID string, c *Challenge) (Outcome, bool) {
	for attempt := 1; ; attempt++ {
		if c.Prompt != "" {
			if err := e.display.ShowText(c.Prompt); err != nil {
				log.Printf("story: display error: %v", err)
			}
		}

		outcome, solved := e.playGesture(c)
		e.events.Emit(Event{
			Type:    "challenge_resolved",
			Chapter: chapterID,
			Gesture: string(c.Gesture),
			OK:      solved,
		})

		if solved {
			if err := e.led.Correct(); err != nil {
				log.Printf("story: led error: %v", err)
			}
			e.showOutcome(outcome)
			return outcome, true
		}

		if err := e.led.Wrong(); err != nil {
			log.Printf("story: led error: %v", err)
		}
		e.showOutcome(outcome)
		if outcome.Goto != "" {
			// A wrong outcome that routes somewhere is narrative, not a
			// lost attempt.
			return outcome, true
		}
		if attempt >= e.diff.Attempts {
			return outcome, false
		}
		log.Printf("story: chapter %q retrying %s (%d/%d)", chapterID, c.Gesture, attempt+1, e.diff.Attempts)
	}
}

func (e *Engine) showOutcome(out Outcome) {
	if out.Text == "" {
		return
	}
	if err := e.display.ShowText(out.Text); err != nil {
		log.Printf("story: display error: %v", err)
		return
	}
	e.inputs.WaitForEncoderPress()
}

// playGesture resolves one gesture and returns the outcome that applies.
func (e *Engine) playGesture(c *Challenge) (Outcome, bool) {
	timeout := e.scaleTimeout(c.Timeout.Std())
	hint := e.hintFunc(c)

	switch c.Gesture {
	case GestureChoice:
		labels := make([]string, len(c.Options))
		for i, o := range c.Options {
			labels[i] = o.Label
		}
		idx := e.inputs.NavigateChoice(labels, timeout, func(choice string, secondsLeft int) {
			if err := e.display.ShowChoice(choice, secondsLeft); err != nil {
				log.Printf("story: display error: %v", err)
			}
		})
		if idx < 0 {
			return c.Failure, false
		}
		out := c.Options[idx].Outcome
		return out, !out.Wrong

	case GestureMovement:
		return e.resolve(c, e.inputs.DetectMovement(timeout, axesOf(c.Axes), hint))
	case GestureTiltLeft:
		return e.resolve(c, e.inputs.DetectTiltLeft(timeout))
	case GestureTiltForward:
		return e.resolve(c, e.inputs.DetectTiltForward(timeout))
	case GestureTiltForwardZ:
		return e.resolve(c, e.inputs.DetectTiltForwardZ(timeout))
	case GestureAllDirections:
		return e.resolve(c, e.inputs.DetectAllDirections(timeout, axesOf(c.Axes), hint))
	case GestureDoubleTap:
		return e.resolve(c, e.inputs.DetectDoubleTap(timeout, hint))
	case GestureDoubleClick:
		return e.resolve(c, e.inputs.DetectDoubleClick(timeout, hint))
	case GestureBothHeld:
		return e.resolve(c, e.inputs.HoldBothButtons(timeout, c.Hold.Std(), hint))
	case GestureStayStill:
		return e.resolve(c, e.inputs.StayStill(c.Hold.Std()))
	}
	return c.Failure, false
}

func (e *Engine) resolve(c *Challenge, solved bool) (Outcome, bool) {
	if solved {
		return c.Success, true
	}
	return c.Failure, false
}

func (e *Engine) scaleTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	return time.Duration(float64(d) * e.diff.TimeoutScale)
}

// hintFunc shows the challenge hint once the configured delay passes.
func (e *Engine) hintFunc(c *Challenge) input.HintFunc {
	if c.Hint == "" {
		return nil
	}
	shown := false
	return func(elapsed time.Duration) {
		if shown || elapsed < c.HintAfter.Std() {
			return
		}
		shown = true
		if err := e.display.ShowText(c.Hint); err != nil {
			log.Printf("story: display error: %v", err)
		}
	}
}

func axesOf(names []string) []input.Axis {
	axes := make([]input.Axis, 0, len(names))
	for _, n := range names {
		axes = append(axes, input.Axis(n))
	}
	return axes
}
