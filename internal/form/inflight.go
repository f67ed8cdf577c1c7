package form

import "sync"

// InFlight tracks form instances with a submission outstanding so the same
// instance cannot be submitted twice at once.
type InFlight struct {
	mu      sync.Mutex
	pending map[string]struct{}
}

// NewInFlight creates an empty guard.
func NewInFlight() *InFlight {
	return &InFlight{pending: make(map[string]struct{})}
}

// Acquire marks id as submitting. It returns false if id already is.
// An empty id is never tracked.
func (f *InFlight) Acquire(id string) bool {
	if id == "" {
		return true
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, busy := f.pending[id]; busy {
		return false
	}
	f.pending[id] = struct{}{}
	return true
}

// Release ends the submission of id.
func (f *InFlight) Release(id string) {
	f.mu.Lock()
	delete(f.pending, id)
	f.mu.Unlock()
}
