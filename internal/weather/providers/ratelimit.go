package providers

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/i474232898/weather-display/internal/weather"
)

// RateLimited wraps a weather.Provider so that both documents share one
// request rate limit.
type RateLimited struct {
	provider weather.Provider
	limiter  *rate.Limiter
	name     string
}

// NewRateLimited allows rps requests per second (fractional values allowed)
// with the given burst.
func NewRateLimited(p weather.Provider, rps float64, burst int) *RateLimited {
	return &RateLimited{
		provider: p,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		name:     fmt.Sprintf("%s [rate limited]", p.Name()),
	}
}

func (r *RateLimited) Name() string {
	return r.name
}

func (r *RateLimited) FetchCurrent(ctx context.Context, loc weather.Location) (weather.Tree, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.provider.FetchCurrent(ctx, loc)
}

func (r *RateLimited) FetchForecast(ctx context.Context, loc weather.Location) (weather.Tree, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.provider.FetchForecast(ctx, loc)
}
