package units

import (
	"fmt"
	"strings"
)

// Mode selects the unit system used for one whole record set.
type Mode string

const (
	Metric   Mode = "metric"
	Imperial Mode = "imperial"
)

// ParseMode accepts "metric" or "imperial" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Metric:
		return Metric, nil
	case Imperial:
		return Imperial, nil
	}
	return "", fmt.Errorf("unknown unit mode %q", s)
}

func (m Mode) IsMetric() bool { return m != Imperial }

// MMToInches converts millimetres of precipitation to inches.
func MMToInches(v float64) float64 { return 0.0393701 * v }

// HPaToInHg converts hectopascals to inches of mercury.
func HPaToInHg(v float64) float64 { return 0.02953 * v }

// WindSpeedLabel is the unit OpenWeatherMap reports wind speed in for the mode.
func (m Mode) WindSpeedLabel() string {
	if m.IsMetric() {
		return "m/s"
	}
	return "mph"
}

// PrecipLabel is the precipitation unit suffix.
func (m Mode) PrecipLabel() string {
	if m.IsMetric() {
		return "mm"
	}
	return "in"
}
