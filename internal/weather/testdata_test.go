package weather

import "fmt"

const currentJSON = `{
  "lat": 51.51, "lon": -0.13,
  "timezone": "Europe/London",
  "timezone_offset": 3600,
  "current": {
    "dt": 1718445600,
    "sunrise": 1718423000,
    "sunset": 1718482000,
    "temp": 21.4,
    "feels_like": 20.9,
    "pressure": 1013,
    "humidity": 55,
    "dew_point": 12.1,
    "uvi": 6.2,
    "clouds": 40,
    "visibility": 10000,
    "wind_speed": 4.6,
    "wind_deg": 250,
    "weather": [{"id": 500, "main": "Rain", "description": "light rain", "icon": "10d"}]
  }
}`

// forecastDoc builds a decoded forecast document with n periods. Period i has
// temp 10+i, temp_min 5+i, temp_max 15+i, pressure from pressures (or 1000),
// humidity 50, rain 0.5 and no snow key.
func forecastDoc(n int, pressures ...float64) map[string]any {
	list := make([]any, n)
	for i := range list {
		p := 1000.0
		if i < len(pressures) {
			p = pressures[i]
		}
		list[i] = map[string]any{
			"dt": float64(1718445600 + i*10800),
			"main": map[string]any{
				"temp":     float64(10 + i),
				"temp_min": float64(5 + i),
				"temp_max": float64(15 + i),
				"pressure": p,
				"humidity": 50.0,
			},
			"weather": []any{map[string]any{"icon": fmt.Sprintf("%02dd", i%4+1)}},
			"rain":    map[string]any{"3h": 0.5},
		}
	}
	return map[string]any{"cnt": float64(n), "list": list}
}
