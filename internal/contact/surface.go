package contact

import "sync"

// Surface is the presentation layer's input state. The controller reads it
// when an attempt starts and resets it after a successful submission.
type Surface interface {
	Values() FormInput
	Reset()
}

// Stager is a Surface the controller can write staged input into.
type Stager interface {
	Surface
	Set(FormInput)
}

// MemorySurface is an in-memory Surface safe for concurrent use.
type MemorySurface struct {
	mu    sync.RWMutex
	input FormInput
}

// NewMemorySurface returns a surface pre-filled with in.
func NewMemorySurface(in FormInput) *MemorySurface {
	return &MemorySurface{input: in}
}

// Set replaces the current values.
func (s *MemorySurface) Set(in FormInput) {
	s.mu.Lock()
	s.input = in
	s.mu.Unlock()
}

// Values returns a copy of the current values.
func (s *MemorySurface) Values() FormInput {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.input
}

// Reset empties every field.
func (s *MemorySurface) Reset() {
	s.mu.Lock()
	s.input = FormInput{}
	s.mu.Unlock()
}
