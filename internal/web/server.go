// Copyright (c) 2026 Fogbound Project
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package web serves a live view of the running game for the operator:
// a JSON snapshot endpoint and a websocket stream of state changes.
package web

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // operator console runs on the local network
	},
}

// State is one snapshot of the running game.
type State struct {
	Running    bool    `json:"running"`
	Chapter    string  `json:"chapter,omitempty"`
	Gesture    string  `json:"gesture,omitempty"`
	LastEvent  string  `json:"last_event,omitempty"`
	Calibrated bool    `json:"calibrated"`
	AccelX     float64 `json:"accel_x"`
	AccelY     float64 `json:"accel_y"`
	AccelZ     float64 `json:"accel_z"`
	ElapsedSec int     `json:"elapsed_sec"`
}

// Server holds the latest state and fans updates out to websocket
// subscribers.
type Server struct {
	mu    sync.RWMutex
	state State
	have  bool
	subs  map[chan State]bool
}

// NewServer returns an empty state server.
func NewServer() *Server {
	return &Server{subs: make(map[chan State]bool)}
}

// Update stores a new snapshot and notifies subscribers. A slow
// subscriber drops updates instead of stalling the game loop.
func (s *Server) Update(st State) {
	s.mu.Lock()
	s.state = st
	s.have = true
	for ch := range s.subs {
		select {
		case ch <- st:
		default:
		}
	}
	s.mu.Unlock()
}

// Snapshot returns the latest state, if any arrived yet.
func (s *Server) Snapshot() (State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, s.have
}

func (s *Server) subscribe() chan State {
	ch := make(chan State, 8)
	s.mu.Lock()
	s.subs[ch] = true
	s.mu.Unlock()
	return ch
}

func (s *Server) unsubscribe(ch chan State) {
	s.mu.Lock()
	delete(s.subs, ch)
	s.mu.Unlock()
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/state", s.handleState)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// ListenAndServe blocks serving the operator view on the given port.
func (s *Server) ListenAndServe(port int) error {
	addr := fmt.Sprintf(":%d", port)
	log.Printf("web: operator view listening on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	st, ok := s.Snapshot()
	if !ok {
		http.Error(w, "no data yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(st); err != nil {
		log.Printf("web: json encode error: %v", err)
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("web: websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	ch := s.subscribe()
	defer s.unsubscribe(ch)

	if st, ok := s.Snapshot(); ok {
		if err := conn.WriteJSON(st); err != nil {
			return
		}
	}

	// Reads are only for detecting the peer going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case st := <-ch:
			if err := conn.WriteJSON(st); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
