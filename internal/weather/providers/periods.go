package providers

import (
	"math"

	"github.com/i474232898/weather-display/internal/weather"
)

const periodHours = 3

// hourSample is one hourly forecast row. Precipitation is in millimetres.
type hourSample struct {
	Time     int64
	Temp     float64
	Humidity float64
	Pressure float64
	Icon     string
	Rain     float64
	Snow     float64
}

// foldPeriods folds hourly rows into the forecast document layout, starting
// at the first hour that has not fully elapsed. Temperature, pressure,
// humidity and icon come from the first hour of a period; extremes and
// precipitation cover all of it. Trailing hours that do not fill a period
// are dropped.
func foldPeriods(hours []hourSample, now int64) weather.Tree {
	start := 0
	for start < len(hours) && hours[start].Time+3600 <= now {
		start++
	}

	list := make([]any, 0, weather.ForecastPeriods)
	for i := start; i+periodHours <= len(hours) && len(list) < weather.ForecastPeriods; i += periodHours {
		first := hours[i]
		lo, hi := math.Inf(1), math.Inf(-1)
		var rain, snow float64
		for _, h := range hours[i : i+periodHours] {
			lo = math.Min(lo, h.Temp)
			hi = math.Max(hi, h.Temp)
			rain += h.Rain
			snow += h.Snow
		}
		list = append(list, map[string]any{
			"dt": float64(first.Time),
			"main": map[string]any{
				"temp":     first.Temp,
				"temp_min": lo,
				"temp_max": hi,
				"pressure": first.Pressure,
				"humidity": first.Humidity,
			},
			"weather": []any{map[string]any{"icon": first.Icon}},
			"rain":    map[string]any{"3h": rain},
			"snow":    map[string]any{"3h": snow},
		})
	}
	return weather.NewTree(map[string]any{"cnt": float64(len(list)), "list": list})
}
