// Package geocode resolves a city name into coordinates through the Google
// Geocoding API.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/kelvins/geocoder"
	"k8s.io/utils/ptr"

	"github.com/i474232898/weather-display/internal/weather"
)

var (
	ErrNoAPIKey  = errors.New("geocoder api key is not configured")
	ErrNoAddress = errors.New("location has no city")
)

type lookupFunc func(geocoder.Address) (geocoder.Location, error)

// Resolver fills in Lat/Lon for locations that only carry a city and
// country. Results are cached per location key.
type Resolver struct {
	lookup lookupFunc

	mu    sync.Mutex
	cache map[string]geocoder.Location
}

// NewResolver sets the package-level key the geocoder library reads.
func NewResolver(apiKey string) (*Resolver, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	geocoder.ApiKey = apiKey
	return newResolver(geocoder.Geocoding), nil
}

func newResolver(lookup lookupFunc) *Resolver {
	return &Resolver{lookup: lookup, cache: make(map[string]geocoder.Location)}
}

func (r *Resolver) Resolve(ctx context.Context, loc weather.Location) (weather.Location, error) {
	if loc.HasCoordinates() {
		return loc, nil
	}
	if loc.City == "" {
		return loc, ErrNoAddress
	}
	if err := ctx.Err(); err != nil {
		return loc, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	found, ok := r.cache[loc.Key()]
	if !ok {
		var err error
		found, err = r.lookup(geocoder.Address{City: loc.City, Country: loc.Country})
		if err != nil {
			return loc, fmt.Errorf("geocode %s: %w", loc.Key(), err)
		}
		r.cache[loc.Key()] = found
		log.Printf("INFO: geocoded %s to %.4f,%.4f", loc.Key(), found.Latitude, found.Longitude)
	}

	loc.Lat = ptr.To(found.Latitude)
	loc.Lon = ptr.To(found.Longitude)
	return loc, nil
}
