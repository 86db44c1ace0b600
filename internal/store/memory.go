package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/weather-display/internal/display"
)

var (
	// ErrNotFound is returned when no frame matches the request.
	ErrNotFound = errors.New("no frame found")
)

// MemoryStore is a concurrency-safe in-memory frame store.
type MemoryStore struct {
	mu sync.RWMutex

	// oldest first
	frames []display.Frame

	// retention configuration
	maxHistory int           // max number of frames kept
	maxAge     time.Duration // optional max age for frames

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// Save appends a frame and enforces retention.
func (s *MemoryStore) Save(_ context.Context, f display.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.frames = append(s.frames, f)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(s.frames) > s.maxHistory {
		over := len(s.frames) - s.maxHistory
		s.frames = append([]display.Frame(nil), s.frames[over:]...)
	}

	// Enforce retention by age; the newest frame always survives.
	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		i := 0
		for ; i < len(s.frames)-1; i++ {
			if !s.frames[i].RenderedAt.Before(cutoff) {
				break
			}
		}
		if i > 0 {
			s.frames = append([]display.Frame(nil), s.frames[i:]...)
		}
	}
	return nil
}

// Latest returns the most recent frame.
func (s *MemoryStore) Latest(_ context.Context) (display.Frame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.frames) == 0 {
		return display.Frame{}, ErrNotFound
	}
	return s.frames[len(s.frames)-1], nil
}

// Get returns the frame with the given id.
func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (display.Frame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].ID == id {
			return s.frames[i], nil
		}
	}
	return display.Frame{}, ErrNotFound
}

// Range returns all frames rendered between from and to (inclusive).
func (s *MemoryStore) Range(_ context.Context, from, to time.Time) ([]display.Frame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []display.Frame
	for _, f := range s.frames {
		if !f.RenderedAt.Before(from) && !f.RenderedAt.After(to) {
			result = append(result, f)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}
	return result, nil
}
