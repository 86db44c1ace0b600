package weather

import (
	"fmt"
	"log"
	"math"

	"github.com/shopspring/decimal"

	"github.com/i474232898/weather-display/internal/units"
)

// Normalizer turns the current-conditions and forecast documents into a
// RecordSet in the configured unit mode.
type Normalizer struct {
	units units.Mode
}

// NewNormalizer creates a Normalizer for one unit mode.
func NewNormalizer(mode units.Mode) *Normalizer {
	return &Normalizer{units: mode}
}

// Normalize runs both phases and returns a fresh RecordSet. Missing fields
// come through as zero values.
func (n *Normalizer) Normalize(current, forecast Tree) *RecordSet {
	rs := &RecordSet{Units: n.units}
	n.applyCurrent(current, &rs.Current)
	n.applyForecast(forecast, rs)
	return rs
}

// applyCurrent copies the observation and resets the rolling extremes.
func (n *Normalizer) applyCurrent(doc Tree, c *ConditionRecord) {
	c.High = initialHigh
	c.Low = initialLow
	c.TimezoneOffset = doc.Int("timezone_offset")
	c.Timestamp = doc.Int("current.dt")
	c.Sunrise = doc.Int("current.sunrise")
	c.Sunset = doc.Int("current.sunset")
	c.Temperature = doc.Float("current.temp")
	c.FeelsLike = doc.Float("current.feels_like")
	c.Pressure = doc.Float("current.pressure")
	c.Humidity = doc.Float("current.humidity")
	c.DewPoint = doc.Float("current.dew_point")
	c.UVI = doc.Float("current.uvi")
	c.CloudCover = int(doc.Int("current.clouds"))
	c.Visibility = int(doc.Int("current.visibility"))
	c.WindSpeed = doc.Float("current.wind_speed")
	c.WindDirection = doc.Float("current.wind_deg")
	c.Description = doc.String("current.weather[0].description")
	c.Icon = doc.String("current.weather[0].icon")

	log.Printf("DEBUG: current conditions temp=%.2f pressure=%.2f icon=%q", c.Temperature, c.Pressure, c.Icon)
}

// applyForecast copies the forecast periods, widens the current high/low
// over the leading periods, classifies the pressure trend and finally
// applies the imperial conversion.
func (n *Normalizer) applyForecast(doc Tree, rs *RecordSet) {
	if got := doc.Len("list"); got < ForecastPeriods {
		log.Printf("INFO: forecast has %d periods, expected %d; missing periods are zero", got, ForecastPeriods)
	}

	for r := range rs.Forecast {
		p := fmt.Sprintf("list[%d].", r)
		f := &rs.Forecast[r]
		f.Timestamp = doc.Int(p + "dt")
		f.Temperature = doc.Float(p + "main.temp")
		f.Low = doc.Float(p + "main.temp_min")
		f.High = doc.Float(p + "main.temp_max")
		f.Pressure = doc.Float(p + "main.pressure")
		f.Humidity = doc.Float(p + "main.humidity")
		f.Icon = doc.String(p + "weather[0].icon")
		f.Rainfall = doc.Float(p + "rain.3h")
		f.Snowfall = doc.Float(p + "snow.3h")

		if r < RollingPeriods {
			rs.Current.High = math.Max(rs.Current.High, f.High)
			rs.Current.Low = math.Min(rs.Current.Low, f.Low)
		}
	}

	rs.Current.Trend = ClassifyTrend(rs.Forecast[0].Pressure - rs.Forecast[2].Pressure)

	if !n.units.IsMetric() {
		convertToImperial(rs)
	}
}

// convertToImperial only touches the fields the panels print directly: the
// current pressure and the first period's precipitation.
func convertToImperial(rs *RecordSet) {
	rs.Current.Pressure = units.HPaToInHg(rs.Current.Pressure)
	rs.Forecast[0].Rainfall = units.MMToInches(rs.Forecast[0].Rainfall)
	rs.Forecast[0].Snowfall = units.MMToInches(rs.Forecast[0].Snowfall)
}

// ClassifyTrend truncates a pressure delta toward zero at one decimal and
// classifies its sign. A delta that is not a finite number is steady.
func ClassifyTrend(delta float64) PressureTrend {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return TrendSteady
	}
	switch decimal.NewFromFloat(delta).Truncate(1).Sign() {
	case 1:
		return TrendRising
	case -1:
		return TrendFalling
	default:
		return TrendZero
	}
}
