// Package astro holds the calendar and lunar arithmetic used by the display.
//
// NormalizedMoonPhase and MoonPhase are two separate approximations. The first
// shades the moon disc, the second names the phase; they may disagree by a
// bucket around phase boundaries.
package astro

import (
	"fmt"
	"math"
	"strings"
)

const synodicMonth = 29.53059

// Hemisphere decides whether lunar phases are mirrored.
type Hemisphere string

const (
	North Hemisphere = "north"
	South Hemisphere = "south"
)

// ParseHemisphere accepts north/south and the n/s shorthands.
func ParseHemisphere(s string) (Hemisphere, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north", "n", "northern":
		return North, nil
	case "south", "s", "southern":
		return South, nil
	}
	return "", fmt.Errorf("unknown hemisphere %q", s)
}

func (h Hemisphere) IsNorthern() bool { return h != South }

// JulianDate returns the Julian day number for a civil date, applying the
// Gregorian correction for days after 2299160.
func JulianDate(d, m, y int) int {
	yy := y - (12-m)/10
	mm := m + 9
	if mm >= 12 {
		mm -= 12
	}
	k1 := int(365.25 * float64(yy+4712))
	k2 := int(30.6001*float64(mm) + 0.5)
	k3 := int(float64(yy/100+49)*0.75) - 38

	j := k1 + k2 + d + 59 + 1
	if j > 2299160 {
		j -= k3
	}
	return j
}

// NormalizedMoonPhase returns the lunar age as a fraction of the synodic
// month in [0,1): 0 is new, 0.5 is full.
func NormalizedMoonPhase(d, m, y int) float64 {
	phase := (float64(JulianDate(d, m, y)) + 4.867) / synodicMonth
	return phase - math.Trunc(phase)
}

// Phase is one of eight named lunar phases.
type Phase int

const (
	New Phase = iota
	WaxingCrescent
	FirstQuarter
	WaxingGibbous
	Full
	WaningGibbous
	ThirdQuarter
	WaningCrescent
)

var phaseNames = [...]string{
	New:            "New",
	WaxingCrescent: "Waxing Crescent",
	FirstQuarter:   "First Quarter",
	WaxingGibbous:  "Waxing Gibbous",
	Full:           "Full",
	WaningGibbous:  "Waning Gibbous",
	ThirdQuarter:   "Third Quarter",
	WaningCrescent: "Waning Crescent",
}

func (p Phase) String() string {
	if p < New || p > WaningCrescent {
		return ""
	}
	return phaseNames[p]
}

// MoonPhase buckets the lunar age into eight phases. South of the equator the
// bucket is mirrored (7 - b).
func MoonPhase(d, m, y int, h Hemisphere) Phase {
	if m < 3 {
		y--
		m += 12
	}
	m++
	c := int(365.25 * float64(y))
	e := int(30.6 * float64(m))
	jd := float64(c+e+d) - 694039.09
	jd /= synodicMonth
	jd -= math.Trunc(jd)
	b := int(jd*8+0.5) & 7
	if !h.IsNorthern() {
		b = 7 - b
	}
	return Phase(b)
}
