package weather

import "github.com/i474232898/weather-display/internal/units"

// The series helpers return all forecast periods in display units.

// PressureSeries converts to inHg in imperial mode; forecast pressures are
// kept in hPa by the normalizer.
func (rs *RecordSet) PressureSeries() []float64 {
	out := make([]float64, ForecastPeriods)
	for i, f := range rs.Forecast {
		out[i] = f.Pressure
		if !rs.Units.IsMetric() {
			out[i] = units.HPaToInHg(f.Pressure)
		}
	}
	return out
}

func (rs *RecordSet) TemperatureSeries() []float64 {
	out := make([]float64, ForecastPeriods)
	for i, f := range rs.Forecast {
		out[i] = f.Temperature
	}
	return out
}

func (rs *RecordSet) HumiditySeries() []float64 {
	out := make([]float64, ForecastPeriods)
	for i, f := range rs.Forecast {
		out[i] = f.Humidity
	}
	return out
}

// RainSeries returns rainfall per period. The first period has already been
// converted by the normalizer in imperial mode.
func (rs *RecordSet) RainSeries() []float64 {
	return rs.precipSeries(func(f ForecastRecord) float64 { return f.Rainfall })
}

func (rs *RecordSet) SnowSeries() []float64 {
	return rs.precipSeries(func(f ForecastRecord) float64 { return f.Snowfall })
}

func (rs *RecordSet) precipSeries(pick func(ForecastRecord) float64) []float64 {
	out := make([]float64, ForecastPeriods)
	for i, f := range rs.Forecast {
		out[i] = pick(f)
		if i > 0 && !rs.Units.IsMetric() {
			out[i] = units.MMToInches(out[i])
		}
	}
	return out
}

// SumOfPrecip totals a precipitation series.
func SumOfPrecip(series []float64) float64 {
	var sum float64
	for _, v := range series {
		sum += v
	}
	return sum
}

// SnowDominates reports whether the snow chart should replace the rain chart.
func (rs *RecordSet) SnowDominates() bool {
	return SumOfPrecip(rs.RainSeries()) < SumOfPrecip(rs.SnowSeries())
}
