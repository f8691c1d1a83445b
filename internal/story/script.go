// Copyright (c) 2026 Fogbound Project
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package story loads the narrative script and runs chapters against the
// player's gestures.
package story

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Gesture names a challenge's input primitive.
type Gesture string

const (
	GestureChoice        Gesture = "choice"
	GestureMovement      Gesture = "movement"
	GestureTiltLeft      Gesture = "tilt_left"
	GestureTiltForward   Gesture = "tilt_forward"
	GestureTiltForwardZ  Gesture = "tilt_forward_z"
	GestureAllDirections Gesture = "all_directions"
	GestureDoubleClick   Gesture = "double_click"
	GestureDoubleTap     Gesture = "double_tap"
	GestureBothHeld      Gesture = "both_held"
	GestureStayStill     Gesture = "stay_still"
)

var knownGestures = map[Gesture]bool{
	GestureChoice:        true,
	GestureMovement:      true,
	GestureTiltLeft:      true,
	GestureTiltForward:   true,
	GestureTiltForwardZ:  true,
	GestureAllDirections: true,
	GestureDoubleClick:   true,
	GestureDoubleTap:     true,
	GestureBothHeld:      true,
	GestureStayStill:     true,
}

// Duration is a time.Duration that unmarshals from YAML strings like
// "15s". Zero means no timeout.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	if s == "" {
		*d = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the duration as the standard type.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Script is one whole playthrough: a title and an ordered chapter list.
type Script struct {
	Title    string    `yaml:"title"`
	Chapters []Chapter `yaml:"chapters"`
}

// Chapter is one scene: narrative pages followed by challenges.
type Chapter struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	// Intro pages are shown one at a time, each paced by an encoder press.
	Intro      []string    `yaml:"intro"`
	Challenges []Challenge `yaml:"challenges"`
}

// Challenge is one gesture the player must perform.
type Challenge struct {
	Gesture Gesture  `yaml:"gesture"`
	Prompt  string   `yaml:"prompt"`
	Axes    []string `yaml:"axes,omitempty"`
	// Timeout bounds the gesture; 0 waits forever. Hold is the duration
	// for both_held and stay_still. Difficulty scales timeouts only,
	// never holds: a shorter hold would make the gesture easier.
	Timeout Duration `yaml:"timeout,omitempty"`
	Hold    Duration `yaml:"hold,omitempty"`
	Hint    string   `yaml:"hint,omitempty"`
	// HintAfter delays the hint text; 0 shows it from the first tick.
	HintAfter Duration `yaml:"hint_after,omitempty"`

	Options []Option `yaml:"options,omitempty"`

	Success Outcome `yaml:"success,omitempty"`
	Failure Outcome `yaml:"failure,omitempty"`
}

// Option is one entry of a choice challenge.
type Option struct {
	Label   string  `yaml:"label"`
	Outcome Outcome `yaml:"outcome"`
}

// Outcome describes what happens after a challenge or choice resolves.
// Wrong outcomes cost a retry; Goto routes to another chapter by ID and
// otherwise play continues with the next chapter in order.
type Outcome struct {
	Text  string `yaml:"text,omitempty"`
	Wrong bool   `yaml:"wrong,omitempty"`
	Goto  string `yaml:"goto,omitempty"`
}

// Load reads and validates a script file.
func Load(path string) (*Script, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("story: reading script: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates script YAML.
func Parse(raw []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("story: parsing script: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("story: invalid script: %w", err)
	}
	return &s, nil
}

func (s *Script) validate() error {
	if len(s.Chapters) == 0 {
		return fmt.Errorf("no chapters")
	}
	ids := make(map[string]bool, len(s.Chapters))
	for i, ch := range s.Chapters {
		if ch.ID == "" {
			return fmt.Errorf("chapter %d has no id", i)
		}
		if ids[ch.ID] {
			return fmt.Errorf("duplicate chapter id %q", ch.ID)
		}
		ids[ch.ID] = true
	}
	for _, ch := range s.Chapters {
		for j, c := range ch.Challenges {
			if !knownGestures[c.Gesture] {
				return fmt.Errorf("chapter %q challenge %d: unknown gesture %q", ch.ID, j, c.Gesture)
			}
			switch c.Gesture {
			case GestureChoice:
				if len(c.Options) == 0 {
					return fmt.Errorf("chapter %q challenge %d: choice without options", ch.ID, j)
				}
				for _, o := range c.Options {
					if o.Label == "" {
						return fmt.Errorf("chapter %q challenge %d: option without label", ch.ID, j)
					}
					if o.Outcome.Goto != "" && !ids[o.Outcome.Goto] {
						return fmt.Errorf("chapter %q challenge %d: goto %q does not exist", ch.ID, j, o.Outcome.Goto)
					}
				}
			case GestureMovement, GestureAllDirections:
				for _, a := range c.Axes {
					if a != "x" && a != "y" && a != "z" {
						return fmt.Errorf("chapter %q challenge %d: invalid axis %q", ch.ID, j, a)
					}
				}
			case GestureBothHeld, GestureStayStill:
				if c.Hold <= 0 {
					return fmt.Errorf("chapter %q challenge %d: %s needs a hold duration", ch.ID, j, c.Gesture)
				}
			}
			for name, out := range map[string]Outcome{"success": c.Success, "failure": c.Failure} {
				if out.Goto != "" && !ids[out.Goto] {
					return fmt.Errorf("chapter %q challenge %d: %s goto %q does not exist", ch.ID, j, name, out.Goto)
				}
			}
		}
	}
	return nil
}

// ChapterIndex returns the position of the chapter with the given ID.
func (s *Script) ChapterIndex(id string) (int, bool) {
	for i, ch := range s.Chapters {
		if ch.ID == id {
			return i, true
		}
	}
	return 0, false
}
