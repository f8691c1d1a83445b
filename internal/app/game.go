// Copyright (c) 2026 Fogbound Project
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"fmt"
	"log"
	"strings"

	"fogbound/internal/config"
	"fogbound/internal/display"
	"fogbound/internal/highscore"
	"fogbound/internal/input"
	"fogbound/internal/story"
	"fogbound/internal/telemetry"
	"fogbound/internal/web"
)

var alphabet = func() []string {
	out := make([]string, 26)
	for i := 0; i < 26; i++ {
		out[i] = string(rune('A' + i))
	}
	return out
}()

// gameSink fans engine events to telemetry and the operator web view.
type gameSink struct {
	pub *telemetry.Publisher
	srv *web.Server
	mgr *input.Manager

	chapter string
}

func (s *gameSink) Emit(ev story.Event) {
	s.pub.Emit(ev)
	if ev.Chapter != "" {
		s.chapter = ev.Chapter
	}
	if s.srv == nil {
		return
	}
	x, y, z := s.mgr.Filtered()
	s.srv.Update(web.State{
		Running:    ev.Type != "game_over" && ev.Type != "game_completed",
		Chapter:    s.chapter,
		Gesture:    ev.Gesture,
		LastEvent:  ev.Type,
		Calibrated: s.mgr.Calibrated(),
		AccelX:     x,
		AccelY:     y,
		AccelZ:     z,
		ElapsedSec: highscore.SecondsOf(ev.Elapsed),
	})
}

// RunGame is the main game binary: calibrate, then loop playthroughs
// until the operator quits.
func RunGame() error {
	cfg := config.Get()

	hw, err := setupHardware()
	if err != nil {
		return err
	}
	if err := hw.LED.Boot(); err != nil {
		log.Printf("game: led error: %v", err)
	}

	script, err := story.Load(cfg.ScriptPath)
	if err != nil {
		return err
	}
	log.Printf("game: loaded script %q with %d chapters", script.Title, len(script.Chapters))

	board, err := highscore.Load(cfg.HighscorePath)
	if err != nil {
		return err
	}

	pub, err := telemetry.New(cfg.MQTTBroker, cfg.MQTTClientIDGame, cfg.TopicEvents)
	if err != nil {
		return err
	}
	defer pub.Close()

	var srv *web.Server
	if cfg.WebServerPort > 0 {
		srv = web.NewServer()
		go func() {
			if err := srv.ListenAndServe(cfg.WebServerPort); err != nil {
				log.Printf("game: web server: %v", err)
			}
		}()
	}

	if err := calibrateWithScreen(hw); err != nil {
		return err
	}
	if err := hw.LED.Off(); err != nil {
		log.Printf("game: led error: %v", err)
	}

	sink := &gameSink{pub: pub, srv: srv, mgr: hw.Manager}

	for {
		showTitle(hw, script.Title)
		diff := chooseDifficulty(hw)
		log.Printf("game: starting playthrough on %s", diff.Name)

		engine := story.NewEngine(script, hw.Manager, hw.Screen, hw.LED, sink, nil, diff)
		res, err := engine.Run()
		if err != nil {
			return err
		}

		if res.Completed {
			finishVictory(hw, board, res)
		} else {
			showPages(hw, "The fog closes in.\nThe island keeps you.")
		}

		if !askReplay(hw) {
			return nil
		}
	}
}

func calibrateWithScreen(hw *Hardware) error {
	if err := hw.Screen.ShowText("Hold the box still\nCalibrating..."); err != nil {
		log.Printf("game: display error: %v", err)
	}
	if err := hw.Manager.Calibrate(); err != nil {
		return fmt.Errorf("calibration: %w", err)
	}
	b := hw.Manager.BaselineValues()
	log.Printf("game: baseline x=%.3f y=%.3f z=%.3f", b.X, b.Y, b.Z)
	return nil
}

func showTitle(hw *Hardware, title string) {
	if title == "" {
		title = "Fogbound"
	}
	showPages(hw, title+"\n\nPress the knob\nto begin")
}

// showPages renders text and waits for the encoder press, the standard
// narrative pacing.
func showPages(hw *Hardware, text string) {
	for _, page := range display.Paginate(display.WrapText(text, display.Cols), display.Rows) {
		if err := hw.Screen.ShowLines(page); err != nil {
			log.Printf("game: display error: %v", err)
		}
		hw.Manager.WaitForEncoderPress()
	}
}

func chooseDifficulty(hw *Hardware) story.Difficulty {
	if err := hw.Screen.ShowText("Choose difficulty"); err != nil {
		log.Printf("game: display error: %v", err)
	}
	hw.Manager.WaitForEncoderPress()

	idx := hw.Manager.NavigateChoice([]string{"Easy", "Normal", "Hard"}, 0, func(choice string, _ int) {
		if err := hw.Screen.ShowChoice(choice, 0); err != nil {
			log.Printf("game: display error: %v", err)
		}
	})
	switch idx {
	case 0:
		return story.Easy
	case 2:
		return story.Hard
	default:
		return story.Normal
	}
}

func finishVictory(hw *Hardware, board *highscore.Board, res story.Result) {
	secs := highscore.SecondsOf(res.Elapsed)
	showPages(hw, fmt.Sprintf("You escaped!\n\nTime %s", highscore.FormatTime(secs)))

	if board.IsHighScore(secs) {
		initials := enterInitials(hw)
		rank, err := board.Add(initials, secs)
		if err != nil {
			log.Printf("game: saving highscore: %v", err)
		} else if rank > 0 {
			log.Printf("game: %s entered the board at #%d with %s", initials, rank, highscore.FormatTime(secs))
		}
	}
	showBoard(hw, board)
}

// enterInitials picks three letters, one at a time, with the buttons
// scrolling the alphabet and the knob committing.
func enterInitials(hw *Hardware) string {
	var sb strings.Builder
	for slot := 1; slot <= 3; slot++ {
		idx := hw.Manager.NavigateChoice(alphabet, 0, func(choice string, _ int) {
			prompt := []string{"New record!", "", fmt.Sprintf("Initial %d: %s", slot, choice)}
			if err := hw.Screen.ShowLines(prompt); err != nil {
				log.Printf("game: display error: %v", err)
			}
		})
		if idx < 0 {
			idx = 0
		}
		sb.WriteString(alphabet[idx])
	}
	return sb.String()
}

func showBoard(hw *Hardware, board *highscore.Board) {
	lines := []string{"BEST ESCAPES"}
	for i, e := range board.Entries() {
		lines = append(lines, fmt.Sprintf("%d %s %s", i+1, e.Initials, highscore.FormatTime(e.Seconds)))
	}
	if err := hw.Screen.ShowLines(lines); err != nil {
		log.Printf("game: display error: %v", err)
	}
	hw.Manager.WaitForEncoderPress()
}

func askReplay(hw *Hardware) bool {
	if err := hw.Screen.ShowText("Play again?"); err != nil {
		log.Printf("game: display error: %v", err)
	}
	hw.Manager.WaitForEncoderPress()
	idx := hw.Manager.NavigateChoice([]string{"Play again", "Quit"}, 0, func(choice string, _ int) {
		if err := hw.Screen.ShowChoice(choice, 0); err != nil {
			log.Printf("game: display error: %v", err)
		}
	})
	return idx == 0
}
