package weather

import (
	"fmt"
	"strings"
)

// Location represents the place the display reports on.
// City/Country name the panel; Lat/Lon are required by the forecast provider
// and may be resolved from the city when unset.
type Location struct {
	City    string   `json:"city"`
	Country string   `json:"country"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
}

// Key returns a canonical string key for indexing this location in stores.
func (l Location) Key() string {
	return l.City + ":" + l.Country
}

// HasCoordinates reports whether both latitude and longitude are known.
func (l Location) HasCoordinates() bool {
	return l.Lat != nil && l.Lon != nil
}

// Name is the label drawn in the top-left corner of the display.
func (l Location) Name() string {
	if l.City != "" {
		return l.City
	}
	if l.HasCoordinates() {
		return fmt.Sprintf("%.2f,%.2f", *l.Lat, *l.Lon)
	}
	return strings.TrimSpace(l.Country)
}
