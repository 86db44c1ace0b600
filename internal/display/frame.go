package display

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/weather-display/internal/weather"
)

// Frame is the stored result of one render pass.
type Frame struct {
	ID         uuid.UUID          `json:"id"`
	Location   weather.Location   `json:"location"`
	RenderedAt time.Time          `json:"renderedAt"`
	Records    *weather.RecordSet `json:"records"`
	PNG        []byte             `json:"-"`
}

// Store persists rendered frames.
type Store interface {
	Save(ctx context.Context, f Frame) error
	Latest(ctx context.Context) (Frame, error)
	Get(ctx context.Context, id uuid.UUID) (Frame, error)
	// Range returns frames rendered between from and to (inclusive), oldest first.
	Range(ctx context.Context, from, to time.Time) ([]Frame, error)
}

// Resolver fills in missing coordinates for a location.
type Resolver interface {
	Resolve(ctx context.Context, loc weather.Location) (weather.Location, error)
}
