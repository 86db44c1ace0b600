package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"

	"github.com/i474232898/weather-display/internal/units"
	"github.com/i474232898/weather-display/internal/weather"
)

// weatherAPIDoc starts its hourly rows at start, with the location two
// hours ahead of UTC.
func weatherAPIDoc(start int64, days int) map[string]any {
	forecastDays := make([]any, days)
	for d := range forecastDays {
		hours := make([]any, 24)
		for h := range hours {
			i := d*24 + h
			hours[h] = map[string]any{
				"time_epoch":  start + int64(i)*3600,
				"temp_c":      float64(i % 6),
				"temp_f":      float64(50 + i%6),
				"humidity":    70,
				"pressure_mb": 1000 + float64(i),
				"is_day":      i % 2,
				"precip_mm":   0.5,
				"snow_cm":     0.1,
				"condition":   map[string]any{"text": "Patchy rain possible"},
			}
		}
		forecastDays[d] = map[string]any{
			"date":  time.Unix(start, 0).UTC().AddDate(0, 0, d).Format("2006-01-02"),
			"astro": map[string]any{"sunrise": "04:43 AM", "sunset": "09:21 PM"},
			"hour":  hours,
		}
	}
	return map[string]any{
		"location": map[string]any{
			"localtime_epoch": start + 120,
			"localtime":       time.Unix(start+120+7200, 0).UTC().Format("2006-01-02 15:04"),
		},
		"current": map[string]any{
			"last_updated_epoch": start,
			"temp_c":             21.4,
			"temp_f":             70.5,
			"feelslike_c":        20.9,
			"feelslike_f":        69.6,
			"humidity":           55,
			"pressure_mb":        1013,
			"wind_kph":           18,
			"wind_mph":           11.2,
			"wind_degree":        250,
			"cloud":              40,
			"vis_km":             10,
			"uv":                 6,
			"is_day":             1,
			"condition":          map[string]any{"text": "Partly cloudy"},
		},
		"forecast": map[string]any{"forecastday": forecastDays},
	}
}

func TestWeatherAPIFetchCurrent(t *testing.T) {
	start := int64(1718445600) // 2024-06-15 10:00 UTC
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast.json", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "secret", q.Get("key"))
		assert.Equal(t, "London,GB", q.Get("q"))
		assert.Equal(t, "1", q.Get("days"))
		assert.Equal(t, "no", q.Get("aqi"))
		_ = json.NewEncoder(w).Encode(weatherAPIDoc(start, 1))
	}))
	defer srv.Close()

	p := NewWeatherAPIProvider(srv.Client(), "secret", units.Metric)
	p.baseURL = srv.URL
	tree, err := p.FetchCurrent(context.Background(), weather.Location{City: "London", Country: "GB"})
	require.NoError(t, err)

	assert.Equal(t, int64(7200), tree.Int("timezone_offset"))
	assert.Equal(t, start, tree.Int("current.dt"))
	assert.Equal(t, 21.4, tree.Float("current.temp"))
	assert.InDelta(t, 5.0, tree.Float("current.wind_speed"), 1e-9)
	assert.Equal(t, int64(10000), tree.Int("current.visibility"))
	assert.Equal(t, int64(40), tree.Int("current.clouds"))
	assert.Equal(t, time.Date(2024, 6, 15, 2, 43, 0, 0, time.UTC).Unix(), tree.Int("current.sunrise"))
	assert.Equal(t, time.Date(2024, 6, 15, 19, 21, 0, 0, time.UTC).Unix(), tree.Int("current.sunset"))
	assert.Equal(t, "02d", tree.String("current.weather[0].icon"))
	assert.Equal(t, "partly cloudy", tree.String("current.weather[0].description"))
}

func TestWeatherAPIForecastFoldsPeriods(t *testing.T) {
	start := int64(1718445600)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "4", q.Get("days"))
		assert.Equal(t, "51.507200,-0.127600", q.Get("q"))
		_ = json.NewEncoder(w).Encode(weatherAPIDoc(start, 4))
	}))
	defer srv.Close()

	p := NewWeatherAPIProvider(srv.Client(), "secret", units.Metric)
	p.baseURL = srv.URL
	p.now = func() time.Time { return time.Unix(start+2*3600+60, 0) }

	tree, err := p.FetchForecast(context.Background(), london)
	require.NoError(t, err)
	assert.Equal(t, weather.ForecastPeriods, tree.Len("list"))

	assert.Equal(t, start+2*3600, tree.Int("list[0].dt"))
	assert.Equal(t, 2.0, tree.Float("list[0].main.temp"))
	assert.Equal(t, 2.0, tree.Float("list[0].main.temp_min"))
	assert.Equal(t, 4.0, tree.Float("list[0].main.temp_max"))
	assert.Equal(t, 1002.0, tree.Float("list[0].main.pressure"))
	assert.InDelta(t, 1.5, tree.Float("list[0].rain.3h"), 1e-9)
	assert.InDelta(t, 3.0, tree.Float("list[0].snow.3h"), 1e-9)
	assert.Equal(t, "10n", tree.String("list[0].weather[0].icon"))
	assert.Equal(t, "10d", tree.String("list[1].weather[0].icon"))
}

func TestWeatherAPIImperialTemperatures(t *testing.T) {
	start := int64(1718445600)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(weatherAPIDoc(start, 4))
	}))
	defer srv.Close()

	p := NewWeatherAPIProvider(srv.Client(), "secret", units.Imperial)
	p.baseURL = srv.URL
	p.now = func() time.Time { return time.Unix(start, 0) }

	cur, err := p.FetchCurrent(context.Background(), london)
	require.NoError(t, err)
	assert.Equal(t, 70.5, cur.Float("current.temp"))
	assert.Equal(t, 11.2, cur.Float("current.wind_speed"))

	fc, err := p.FetchForecast(context.Background(), london)
	require.NoError(t, err)
	assert.Equal(t, 50.0, fc.Float("list[0].main.temp"))
	assert.Equal(t, 52.0, fc.Float("list[0].main.temp_max"))
}

func TestWeatherAPIPreconditions(t *testing.T) {
	p := NewWeatherAPIProvider(http.DefaultClient, "", units.Metric)
	_, err := p.FetchCurrent(context.Background(), london)
	require.Error(t, err)

	p = NewWeatherAPIProvider(http.DefaultClient, "secret", units.Metric)
	_, err = p.FetchForecast(context.Background(), weather.Location{})
	assert.True(t, errors.Is(err, errNoLocation))
}

func TestWeatherAPIRejectsBadLocaltime(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"location":{"localtime":"soon"}}`))
	}))
	defer srv.Close()

	p := NewWeatherAPIProvider(srv.Client(), "secret", units.Metric)
	p.baseURL = srv.URL
	_, err := p.FetchCurrent(context.Background(), london)
	assert.ErrorIs(t, err, weather.ErrDecode)
}

func TestWeatherAPIQuery(t *testing.T) {
	assert.Equal(t, "London,GB", weatherAPIQuery(weather.Location{City: "London", Country: "GB"}))
	assert.Equal(t, "Oslo", weatherAPIQuery(weather.Location{City: "Oslo"}))
	assert.Equal(t, "1.500000,2.250000", weatherAPIQuery(weather.Location{City: "X", Lat: ptr.To(1.5), Lon: ptr.To(2.25)}))
	assert.Empty(t, weatherAPIQuery(weather.Location{Country: "GB"}))
}

func TestUTCOffset(t *testing.T) {
	epoch := time.Date(2024, 6, 15, 3, 35, 20, 0, time.UTC).Unix()
	off, err := utcOffset("2024-06-15 9:05", epoch)
	require.NoError(t, err)
	assert.Equal(t, int64(19800), off)

	off, err = utcOffset("2024-06-14 23:02", time.Date(2024, 6, 15, 3, 2, 0, 0, time.UTC).Unix())
	require.NoError(t, err)
	assert.Equal(t, int64(-14400), off)

	_, err = utcOffset("", 0)
	assert.Error(t, err)
}

func TestAstroEpoch(t *testing.T) {
	assert.Equal(t, time.Date(2024, 6, 15, 21, 21, 0, 0, time.UTC).Unix(), astroEpoch("2024-06-15", "09:21 PM", 0))
	assert.Equal(t, time.Date(2024, 6, 15, 4, 43, 0, 0, time.UTC).Unix(), astroEpoch("2024-06-15", "10:13 AM", 19800))
	assert.Zero(t, astroEpoch("2024-06-15", "No sunrise", 0))
}

func TestConditionIcon(t *testing.T) {
	tests := []struct {
		text string
		day  bool
		want string
	}{
		{"Sunny", true, "01d"},
		{"Clear", false, "01n"},
		{"Partly cloudy", true, "02d"},
		{"Cloudy", true, "03d"},
		{"Overcast", false, "04n"},
		{"Mist", true, "50d"},
		{"Freezing fog", false, "50n"},
		{"Light rain shower", true, "09d"},
		{"Patchy light drizzle", true, "09d"},
		{"Moderate rain", false, "10n"},
		{"Light sleet showers", true, "13d"},
		{"Blizzard", true, "13d"},
		{"Patchy light rain with thunder", false, "11n"},
		{"", true, ""},
		{"Volcanic ash", true, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, conditionIcon(tt.text, tt.day), tt.text)
	}
}

func TestFoldPeriodsDropsPartialPeriod(t *testing.T) {
	hours := make([]hourSample, 7)
	for i := range hours {
		hours[i] = hourSample{Time: int64(i) * 3600, Temp: float64(i), Rain: 1}
	}
	tree := foldPeriods(hours, 0)
	assert.Equal(t, 2, tree.Len("list"))
	assert.Equal(t, int64(2), tree.Int("cnt"))
	assert.Equal(t, 5.0, tree.Float("list[1].main.temp_max"))
	assert.Equal(t, 3.0, tree.Float("list[1].rain.3h"))

	assert.Zero(t, foldPeriods(hours, 7*3600).Len("list"))
}
