package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-display/internal/units"
)

func TestSeriesMetric(t *testing.T) {
	rs := normalize(t, units.Metric, forecastDoc(ForecastPeriods, 1013))

	temps := rs.TemperatureSeries()
	require.Len(t, temps, ForecastPeriods)
	assert.InDelta(t, 10, temps[0], 1e-9)
	assert.InDelta(t, 33, temps[23], 1e-9)

	assert.InDelta(t, 1013, rs.PressureSeries()[0], 1e-9)
	assert.InDelta(t, 50, rs.HumiditySeries()[7], 1e-9)
	assert.InDelta(t, 12, SumOfPrecip(rs.RainSeries()), 1e-9)
	assert.Zero(t, SumOfPrecip(rs.SnowSeries()))
	assert.False(t, rs.SnowDominates())
}

func TestSeriesImperialIsUniform(t *testing.T) {
	rs := normalize(t, units.Imperial, forecastDoc(ForecastPeriods, 1013))

	rain := rs.RainSeries()
	want := units.MMToInches(0.5)
	for i, v := range rain {
		assert.InDelta(t, want, v, 1e-9, "period %d", i)
	}
	assert.InDelta(t, units.HPaToInHg(1013), rs.PressureSeries()[0], 1e-9)
}

func TestSnowDominates(t *testing.T) {
	doc := forecastDoc(ForecastPeriods)
	for _, e := range doc["list"].([]any) {
		e.(map[string]any)["snow"] = map[string]any{"3h": 2.0}
	}
	rs := normalize(t, units.Metric, doc)
	assert.True(t, rs.SnowDominates())
}
