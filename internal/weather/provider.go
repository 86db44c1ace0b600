package weather

import (
	"context"
)

// Provider abstracts the source of the two raw documents a pass consumes
// (e.g. the OpenWeatherMap API, or files on disk).
type Provider interface {
	Name() string
	// FetchCurrent returns the current-conditions document.
	FetchCurrent(ctx context.Context, loc Location) (Tree, error)
	// FetchForecast returns the 3-hour forecast document with a "list" array.
	FetchForecast(ctx context.Context, loc Location) (Tree, error)
}
