package display

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/weather-display/internal/astro"
	"github.com/i474232898/weather-display/internal/layout"
	"github.com/i474232898/weather-display/internal/surface"
	"github.com/i474232898/weather-display/internal/units"
	"github.com/i474232898/weather-display/internal/weather"
)

// fetchAttempts is how many times each document is requested per pass.
const fetchAttempts = 2

// ErrAsleep is returned by RenderPass outside the wake window.
var ErrAsleep = errors.New("outside wake window")

// Options configures a Service.
type Options struct {
	Location   weather.Location
	Units      units.Mode
	Hemisphere astro.Hemisphere
	Width      int
	Height     int
	// WakeupHour and SleepHour bound the hours (inclusive) in which passes
	// run, on the location's clock once a document has reported its
	// timezone offset and on the server's clock before that. Equal values
	// disable the window.
	WakeupHour int
	SleepHour  int
	// Now defaults to time.Now.
	Now func() time.Time
}

// Service runs render passes and serves their frames.
type Service struct {
	store      Store
	provider   weather.Provider
	resolver   Resolver
	opts       Options
	normalizer *weather.Normalizer
	composer   *layout.Composer
	now        func() time.Time

	// one pass at a time; the raster belongs to the running pass
	mu       sync.Mutex
	location weather.Location
	// offset of the location from UTC, from the last normalized document
	tzOffset *time.Duration
}

// NewService creates a Service. resolver may be nil when the configured
// location already carries coordinates.
func NewService(store Store, provider weather.Provider, resolver Resolver, opts Options) *Service {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		store:      store,
		provider:   provider,
		resolver:   resolver,
		opts:       opts,
		normalizer: weather.NewNormalizer(opts.Units),
		composer:   layout.NewComposer(layout.NewTable(opts.Width, opts.Height), opts.Hemisphere),
		now:        now,
		location:   opts.Location,
	}
}

// Awake reports whether hour falls inside the wake window. A window whose
// wake hour is later than its sleep hour wraps across midnight.
func Awake(hour, wakeup, sleep int) bool {
	switch {
	case wakeup == sleep:
		return true
	case wakeup > sleep:
		return hour >= wakeup || hour <= sleep
	default:
		return hour >= wakeup && hour <= sleep
	}
}

// RenderPass fetches both documents, normalizes them, composes the display
// onto a fresh raster, and stores the encoded frame.
func (s *Service) RenderPass(ctx context.Context) (Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if hour := s.localHour(now); !Awake(hour, s.opts.WakeupHour, s.opts.SleepHour) {
		log.Printf("DEBUG: skipping pass at hour %d (wake %d, sleep %d)", hour, s.opts.WakeupHour, s.opts.SleepHour)
		return Frame{}, ErrAsleep
	}
	if s.provider == nil {
		log.Printf("ERROR: No provider configured for %s", s.location.Key())
		return Frame{}, fmt.Errorf("no weather provider configured")
	}

	loc, err := s.resolveLocation(ctx)
	if err != nil {
		return Frame{}, err
	}

	log.Printf("DEBUG: RenderPass called for %s with provider %s", loc.Key(), s.provider.Name())
	current, err := fetchWithRetry(ctx, "current", loc, s.provider.FetchCurrent)
	if err != nil {
		return Frame{}, err
	}
	forecast, err := fetchWithRetry(ctx, "forecast", loc, s.provider.FetchForecast)
	if err != nil {
		return Frame{}, err
	}

	rs := s.normalizer.Normalize(current, forecast)
	offset := time.Duration(rs.Current.TimezoneOffset) * time.Second
	s.tzOffset = &offset

	r := surface.NewRaster(s.opts.Width, s.opts.Height)
	defer r.Close()
	s.composer.Compose(r, layout.Scene{
		Records:  rs,
		Location: loc.Name(),
		Now:      now,
	})

	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		return Frame{}, fmt.Errorf("encode frame: %w", err)
	}

	frame := Frame{
		ID:         uuid.New(),
		Location:   loc,
		RenderedAt: now.UTC(),
		Records:    rs,
		PNG:        buf.Bytes(),
	}
	if err := s.store.Save(ctx, frame); err != nil {
		return Frame{}, fmt.Errorf("save frame: %w", err)
	}
	log.Printf("INFO: rendered frame %s for %s (%d bytes)", frame.ID, loc.Key(), len(frame.PNG))
	return frame, nil
}

// localHour is the hour at the location, falling back to the server's
// clock until an offset is known.
func (s *Service) localHour(now time.Time) int {
	if s.tzOffset == nil {
		return now.Hour()
	}
	return now.UTC().Add(*s.tzOffset).Hour()
}

func (s *Service) resolveLocation(ctx context.Context) (weather.Location, error) {
	if s.location.HasCoordinates() || s.resolver == nil {
		return s.location, nil
	}
	loc, err := s.resolver.Resolve(ctx, s.location)
	if err != nil {
		return weather.Location{}, fmt.Errorf("resolve %s: %w", s.location.Key(), err)
	}
	s.location = loc
	return loc, nil
}

type fetchFunc func(ctx context.Context, loc weather.Location) (weather.Tree, error)

func fetchWithRetry(ctx context.Context, doc string, loc weather.Location, fetch fetchFunc) (weather.Tree, error) {
	var lastErr error
	for attempt := 1; attempt <= fetchAttempts; attempt++ {
		tree, err := fetch(ctx, loc)
		if err == nil {
			return tree, nil
		}
		lastErr = err
		log.Printf("%s fetch attempt %d failed for %s: %v", doc, attempt, loc.Key(), err)
		if ctx.Err() != nil {
			break
		}
	}
	return nil, fmt.Errorf("fetch %s document: %w", doc, lastErr)
}

// Latest returns the most recent frame.
func (s *Service) Latest(ctx context.Context) (Frame, error) {
	return s.store.Latest(ctx)
}

// Get returns the frame with the given id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Frame, error) {
	return s.store.Get(ctx, id)
}

// Range delegates to the underlying store.
func (s *Service) Range(ctx context.Context, from, to time.Time) ([]Frame, error) {
	return s.store.Range(ctx, from, to)
}
