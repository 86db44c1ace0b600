package weather

import (
	"fmt"
	"time"

	"github.com/i474232898/weather-display/internal/units"
)

const (
	// ForecastPeriods is the fixed number of 3-hour forecast periods kept per pass.
	ForecastPeriods = 24
	// RollingPeriods is how many leading periods feed the current high/low.
	RollingPeriods = 8

	initialHigh = -50
	initialLow  = 50
)

// PressureTrend summarizes the short-term pressure change.
type PressureTrend int

const (
	TrendSteady PressureTrend = iota
	TrendRising
	TrendFalling
	// TrendZero is a measured change of exactly zero after truncation. It is
	// kept apart from TrendSteady, which only results from an unusable delta.
	TrendZero
)

var trendNames = map[PressureTrend]string{
	TrendSteady:  "steady",
	TrendRising:  "rising",
	TrendFalling: "falling",
	TrendZero:    "zero",
}

func (t PressureTrend) String() string {
	if s, ok := trendNames[t]; ok {
		return s
	}
	return "unknown"
}

func (t PressureTrend) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *PressureTrend) UnmarshalText(b []byte) error {
	for k, name := range trendNames {
		if name == string(b) {
			*t = k
			return nil
		}
	}
	return fmt.Errorf("unknown pressure trend %q", b)
}

// ConditionRecord is the canonical current observation.
type ConditionRecord struct {
	Timestamp      int64         `json:"dt"`
	Sunrise        int64         `json:"sunrise"`
	Sunset         int64         `json:"sunset"`
	TimezoneOffset int64         `json:"timezoneOffset"`
	Temperature    float64       `json:"temperature"`
	FeelsLike      float64       `json:"feelsLike"`
	DewPoint       float64       `json:"dewPoint"`
	Humidity       float64       `json:"humidity"`
	Pressure       float64       `json:"pressure"`
	UVI            float64       `json:"uvi"`
	CloudCover     int           `json:"cloudCover"`
	Visibility     int           `json:"visibility"`
	WindSpeed      float64       `json:"windSpeed"`
	WindDirection  float64       `json:"windDirection"`
	Icon           string        `json:"icon"`
	Description    string        `json:"description"`
	High           float64       `json:"high"`
	Low            float64       `json:"low"`
	Trend          PressureTrend `json:"trend"`
}

// LocalTime shifts an epoch timestamp by the observation's timezone offset and
// returns it as a UTC wall clock.
func (c ConditionRecord) LocalTime(epoch int64) time.Time {
	return time.Unix(epoch+c.TimezoneOffset, 0).UTC()
}

// ForecastRecord is one canonical 3-hour forecast period.
type ForecastRecord struct {
	Timestamp   int64   `json:"dt"`
	Icon        string  `json:"icon"`
	Temperature float64 `json:"temperature"`
	Low         float64 `json:"low"`
	High        float64 `json:"high"`
	Humidity    float64 `json:"humidity"`
	Pressure    float64 `json:"pressure"`
	Rainfall    float64 `json:"rainfall"`
	Snowfall    float64 `json:"snowfall"`
}

// RecordSet is everything one render pass knows about the weather. It is
// built from scratch by the Normalizer and only read afterwards.
type RecordSet struct {
	Units    units.Mode                      `json:"units"`
	Current  ConditionRecord                 `json:"current"`
	Forecast [ForecastPeriods]ForecastRecord `json:"forecast"`
}
