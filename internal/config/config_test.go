package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-display/internal/astro"
	"github.com/i474232898/weather-display/internal/units"
)

var keys = []string{
	"WEATHER_PROVIDER", "OPENWEATHER_API_KEY", "WEATHERAPI_API_KEY", "GEOCODER_API_KEY", "WEATHER_CURRENT_FILE",
	"WEATHER_FORECAST_FILE", "WEATHER_LOCATION_CITY", "WEATHER_LOCATION_COUNTRY", "WEATHER_LAT",
	"WEATHER_LON", "WEATHER_UNITS", "WEATHER_LANGUAGE", "HEMISPHERE", "CANVAS_WIDTH", "CANVAS_HEIGHT",
	"FETCH_INTERVAL", "HTTP_TIMEOUT", "PROVIDER_RPS", "PROVIDER_BURST", "STORE_BACKEND",
	"STORE_MAX_HISTORY", "STORE_MAX_AGE", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "PORT",
	"WAKEUP_HOUR", "SLEEP_HOUR",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENWEATHER_API_KEY", "secret")
	t.Setenv("WEATHER_LOCATION_CITY", "London")
	t.Setenv("WEATHER_LOCATION_COUNTRY", "GB")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "openweather", cfg.Provider)
	assert.Equal(t, units.Metric, cfg.Units)
	assert.Equal(t, astro.North, cfg.Hemisphere)
	assert.Equal(t, 960, cfg.CanvasWidth)
	assert.Equal(t, 540, cfg.CanvasHeight)
	assert.Equal(t, 30*time.Minute, cfg.FetchInterval)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 1.0, cfg.ProviderRPS)
	assert.Equal(t, 2, cfg.ProviderBurst)
	assert.Equal(t, "memory", cfg.StoreBackend)
	assert.Equal(t, 48, cfg.StoreMaxHistory)
	assert.Equal(t, 24*time.Hour, cfg.StoreMaxAge)
	assert.Equal(t, 7, cfg.WakeupHour)
	assert.Equal(t, 23, cfg.SleepHour)
	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.Location.HasCoordinates())
	assert.True(t, cfg.NeedsCoordinates())
}

func TestWeatherAPIProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("WEATHER_PROVIDER", "weatherapi")
	t.Setenv("WEATHERAPI_API_KEY", "secret")
	t.Setenv("WEATHER_LOCATION_CITY", "Oslo")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "weatherapi", cfg.Provider)
	assert.Equal(t, "secret", cfg.WeatherAPIKey)
	assert.False(t, cfg.NeedsCoordinates())
}

func TestOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("WEATHER_PROVIDER", "OpenMeteo")
	t.Setenv("WEATHER_LAT", "-33.87")
	t.Setenv("WEATHER_LON", "151.21")
	t.Setenv("WEATHER_UNITS", "imperial")
	t.Setenv("HEMISPHERE", "s")
	t.Setenv("FETCH_INTERVAL", "15m")
	t.Setenv("PROVIDER_RPS", "0.5")
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("REDIS_DB", "3")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "openmeteo", cfg.Provider)
	require.True(t, cfg.Location.HasCoordinates())
	assert.Equal(t, -33.87, *cfg.Location.Lat)
	assert.Equal(t, 151.21, *cfg.Location.Lon)
	assert.Equal(t, units.Imperial, cfg.Units)
	assert.Equal(t, astro.South, cfg.Hemisphere)
	assert.Equal(t, 15*time.Minute, cfg.FetchInterval)
	assert.Equal(t, 0.5, cfg.ProviderRPS)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing api key", map[string]string{"WEATHER_LOCATION_CITY": "London"}},
		{"missing location", map[string]string{"OPENWEATHER_API_KEY": "k"}},
		{"lat without lon", map[string]string{"OPENWEATHER_API_KEY": "k", "WEATHER_LAT": "10"}},
		{"lat out of range", map[string]string{"OPENWEATHER_API_KEY": "k", "WEATHER_LAT": "91", "WEATHER_LON": "0"}},
		{"unknown units", map[string]string{"OPENWEATHER_API_KEY": "k", "WEATHER_LOCATION_CITY": "London", "WEATHER_UNITS": "kelvin"}},
		{"unknown hemisphere", map[string]string{"OPENWEATHER_API_KEY": "k", "WEATHER_LOCATION_CITY": "London", "HEMISPHERE": "east"}},
		{"bad interval", map[string]string{"OPENWEATHER_API_KEY": "k", "WEATHER_LOCATION_CITY": "London", "FETCH_INTERVAL": "often"}},
		{"unknown provider", map[string]string{"WEATHER_PROVIDER": "darksky", "WEATHER_LOCATION_CITY": "London"}},
		{"weatherapi without key", map[string]string{"WEATHER_PROVIDER": "weatherapi", "WEATHER_LOCATION_CITY": "London"}},
		{"file provider without paths", map[string]string{"WEATHER_PROVIDER": "file", "WEATHER_LOCATION_CITY": "London"}},
		{"wake hour out of range", map[string]string{"OPENWEATHER_API_KEY": "k", "WEATHER_LOCATION_CITY": "London", "WAKEUP_HOUR": "24"}},
		{"tiny canvas", map[string]string{"OPENWEATHER_API_KEY": "k", "WEATHER_LOCATION_CITY": "London", "CANVAS_WIDTH": "100"}},
		{"unknown store", map[string]string{"OPENWEATHER_API_KEY": "k", "WEATHER_LOCATION_CITY": "London", "STORE_BACKEND": "s3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
