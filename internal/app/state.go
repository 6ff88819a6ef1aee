// Package app holds shared viewer application state.
package app

import (
	"fmt"
	"sync"

	"driftscope/internal/cluster"
	"driftscope/internal/project"
	"driftscope/internal/spectrogram"
)

// State is the viewer's loaded-scan state. All access is mutex-guarded;
// fyne callbacks arrive from the main thread but renders may be kicked off
// in background goroutines.
type State struct {
	mu sync.RWMutex

	headerPath string
	scan       *project.Scan
	sp         *spectrogram.Spectrogram
	hits       []cluster.Hit

	selected int // Index into hits; -1 = none

	onChange []func()
}

// NewState creates an empty state.
func NewState() *State {
	return &State{selected: -1}
}

// OnChange registers a callback fired after every load or selection change.
func (s *State) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = append(s.onChange, fn)
	s.mu.Unlock()
}

func (s *State) notify() {
	s.mu.RLock()
	fns := append([]func(){}, s.onChange...)
	s.mu.RUnlock()
	for _, fn := range fns {
		fn()
	}
}

// LoadBundle loads a scan bundle from its header path.
func (s *State) LoadBundle(headerPath string) error {
	scan, sp, hits, err := project.ReadBundle(headerPath)
	if err != nil {
		return fmt.Errorf("load bundle: %w", err)
	}

	s.mu.Lock()
	s.headerPath = headerPath
	s.scan = scan
	s.sp = sp
	s.hits = hits
	s.selected = -1
	s.mu.Unlock()

	s.notify()
	return nil
}

// Loaded reports whether a scan is loaded.
func (s *State) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sp != nil
}

// Scan returns the loaded header, or nil.
func (s *State) Scan() *project.Scan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scan
}

// Spectrogram returns the loaded matrix, or nil.
func (s *State) Spectrogram() *spectrogram.Spectrogram {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sp
}

// Hits returns the loaded hit list.
func (s *State) Hits() []cluster.Hit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hits
}

// Select sets the selected hit index (-1 clears the selection).
func (s *State) Select(i int) {
	s.mu.Lock()
	if i < -1 || i >= len(s.hits) {
		i = -1
	}
	s.selected = i
	s.mu.Unlock()
	s.notify()
}

// Selected returns the selected hit and true, or false when nothing is
// selected.
func (s *State) Selected() (cluster.Hit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected < 0 || s.selected >= len(s.hits) {
		return cluster.Hit{}, false
	}
	return s.hits[s.selected], true
}
