// Copyright (c) 2026 Fogbound Project
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package highscore keeps the three fastest escapes in a flat file, one
// "INITIALS,SECONDS" line per entry, best first.
package highscore

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Keep is how many entries survive on the board.
const Keep = 3

// Entry is one finished run.
type Entry struct {
	Initials string
	Seconds  int
}

// FormatTime renders seconds as MM:SS for the board screen.
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Board is the persistent top list. Faster times rank higher.
type Board struct {
	path    string
	entries []Entry
}

// Load reads the board from path. A missing file is an empty board.
func Load(path string) (*Board, error) {
	b := &Board{path: path}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return b, nil
	}
	if err != nil {
		return nil, fmt.Errorf("highscore: reading %s: %w", path, err)
	}
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		initials, secStr, ok := strings.Cut(line, ",")
		if !ok {
			return nil, fmt.Errorf("highscore: malformed line %q in %s", line, path)
		}
		secs, err := strconv.Atoi(strings.TrimSpace(secStr))
		if err != nil {
			return nil, fmt.Errorf("highscore: malformed time in line %q: %w", line, err)
		}
		b.entries = append(b.entries, Entry{Initials: strings.TrimSpace(initials), Seconds: secs})
	}
	b.normalize()
	return b, nil
}

func (b *Board) normalize() {
	sort.SliceStable(b.entries, func(i, j int) bool {
		return b.entries[i].Seconds < b.entries[j].Seconds
	})
	if len(b.entries) > Keep {
		b.entries = b.entries[:Keep]
	}
}

// Entries returns the board, best first.
func (b *Board) Entries() []Entry {
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// IsHighScore reports whether a run of the given seconds makes the board.
func (b *Board) IsHighScore(seconds int) bool {
	if len(b.entries) < Keep {
		return true
	}
	return seconds < b.entries[len(b.entries)-1].Seconds
}

// Add inserts a run and persists the board. Returns the 1-based rank, or
// 0 when the run did not make the board (nothing is written then).
func (b *Board) Add(initials string, seconds int) (int, error) {
	if !b.IsHighScore(seconds) {
		return 0, nil
	}
	// The stable sort keeps the appended run behind existing equal times,
	// so its rank is one past every entry at or below its time.
	rank := 1
	for _, e := range b.entries {
		if e.Seconds <= seconds {
			rank++
		}
	}
	b.entries = append(b.entries, Entry{Initials: sanitizeInitials(initials), Seconds: seconds})
	b.normalize()
	if err := b.save(); err != nil {
		return 0, err
	}
	return rank, nil
}

func (b *Board) save() error {
	var sb strings.Builder
	for _, e := range b.entries {
		fmt.Fprintf(&sb, "%s,%d\n", e.Initials, e.Seconds)
	}
	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("highscore: writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, b.path); err != nil {
		return fmt.Errorf("highscore: replacing %s: %w", b.path, err)
	}
	return nil
}

// sanitizeInitials uppercases and pads to exactly three characters, the
// width the board screen renders.
func sanitizeInitials(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) > 3 {
		s = s[:3]
	}
	for len(s) < 3 {
		s += "A"
	}
	return s
}

// SecondsOf converts an elapsed duration to whole board seconds.
func SecondsOf(d time.Duration) int {
	return int(d / time.Second)
}
