// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

// Yet another (braille) spinner.

package main

import (
	"sync"
	"time"
)

var spinnerPhases = func() []string {
	phases := []string{}
	for _, r := range "⠉⠘⠰⠤⠆⠃" {
		phases = append(phases, string(r)+" ")
	}
	return phases
}()

// spinner cycles through its phases in the background until stopped.
type spinner struct {
	mu       sync.Mutex
	phase    int
	done     chan struct{}
	stopOnce sync.Once
}

func newSpinner() *spinner {
	return &spinner{done: make(chan struct{})}
}

// Spinner returns the spinner string for the current phase.
func (s *spinner) Spinner() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return spinnerPhases[s.phase]
}

// Start spinning, advancing one phase every interval.
func (s *spinner) Start(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.mu.Lock()
				s.phase = (s.phase + 1) % len(spinnerPhases)
				s.mu.Unlock()
			case <-s.done:
				return
			}
		}
	}()
}

// Stop spinning; stopping more than once is fine.
func (s *spinner) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}
