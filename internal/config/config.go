package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"k8s.io/utils/ptr"

	"github.com/i474232898/weather-display/internal/astro"
	"github.com/i474232898/weather-display/internal/units"
	"github.com/i474232898/weather-display/internal/weather"
)

type AppConfig struct {
	// Provider selects where documents come from: openweather, openmeteo,
	// weatherapi or file.
	Provider          string `validate:"oneof=openweather openmeteo weatherapi file"`
	OpenWeatherAPIKey string `validate:"required_if=Provider openweather"`
	WeatherAPIKey     string `validate:"required_if=Provider weatherapi"`
	GeocoderAPIKey    string
	CurrentFile       string `validate:"required_if=Provider file"`
	ForecastFile      string `validate:"required_if=Provider file"`

	Location   weather.Location
	Units      units.Mode
	Language   string `validate:"required"`
	Hemisphere astro.Hemisphere

	CanvasWidth  int `validate:"min=320"`
	CanvasHeight int `validate:"min=240"`

	// FetchInterval controls how often a render pass runs.
	FetchInterval time.Duration `validate:"gt=0"`
	HTTPTimeout   time.Duration `validate:"gt=0"`
	ProviderRPS   float64       `validate:"gt=0"`
	ProviderBurst int           `validate:"min=1"`

	WakeupHour int `validate:"min=0,max=23"`
	SleepHour  int `validate:"min=0,max=23"`

	StoreBackend    string        `validate:"oneof=memory redis"`
	StoreMaxHistory int           `validate:"min=0"` // max number of frames kept (0 = unlimited)
	StoreMaxAge     time.Duration `validate:"min=0"` // max age of frames (0 = unlimited)

	RedisAddr     string `validate:"required_if=StoreBackend redis"`
	RedisPassword string
	RedisDB       int `validate:"min=0"`

	Port string `validate:"required,numeric"`
}

var validate = validator.New()

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	return FromEnv()
}

// FromEnv builds and validates the configuration from the process
// environment only.
func FromEnv() (*AppConfig, error) {
	cfg := &AppConfig{
		Provider:          strings.ToLower(getenvDefault("WEATHER_PROVIDER", "openweather")),
		OpenWeatherAPIKey: os.Getenv("OPENWEATHER_API_KEY"),
		WeatherAPIKey:     os.Getenv("WEATHERAPI_API_KEY"),
		GeocoderAPIKey:    os.Getenv("GEOCODER_API_KEY"),
		CurrentFile:       os.Getenv("WEATHER_CURRENT_FILE"),
		ForecastFile:      os.Getenv("WEATHER_FORECAST_FILE"),
		Language:          getenvDefault("WEATHER_LANGUAGE", "en"),
		CanvasWidth:       getenvInt("CANVAS_WIDTH", 960),
		CanvasHeight:      getenvInt("CANVAS_HEIGHT", 540),
		ProviderBurst:     getenvInt("PROVIDER_BURST", 2),
		WakeupHour:        getenvInt("WAKEUP_HOUR", 7),
		SleepHour:         getenvInt("SLEEP_HOUR", 23),
		StoreBackend:      strings.ToLower(getenvDefault("STORE_BACKEND", "memory")),
		StoreMaxHistory:   getenvInt("STORE_MAX_HISTORY", 48), // a day at 30-minute passes
		RedisAddr:         getenvDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		RedisDB:           getenvInt("REDIS_DB", 0),
		Port:              getenvDefault("PORT", "8080"),
	}

	var err error
	if cfg.Units, err = units.ParseMode(getenvDefault("WEATHER_UNITS", "metric")); err != nil {
		return nil, fmt.Errorf("invalid WEATHER_UNITS: %w", err)
	}
	if cfg.Hemisphere, err = astro.ParseHemisphere(getenvDefault("HEMISPHERE", "north")); err != nil {
		return nil, fmt.Errorf("invalid HEMISPHERE: %w", err)
	}
	if cfg.FetchInterval, err = getenvDuration("FETCH_INTERVAL", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.StoreMaxAge, err = getenvDuration("STORE_MAX_AGE", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.ProviderRPS, err = getenvFloat("PROVIDER_RPS", 1); err != nil {
		return nil, err
	}
	if cfg.Location, err = loadLocation(); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// NeedsCoordinates reports whether the provider can only query by latitude
// and longitude, so a city-only location has to be geocoded first.
func (c *AppConfig) NeedsCoordinates() bool {
	return c.Provider == "openweather" || c.Provider == "openmeteo"
}

func loadLocation() (weather.Location, error) {
	loc := weather.Location{
		City:    strings.TrimSpace(os.Getenv("WEATHER_LOCATION_CITY")),
		Country: strings.TrimSpace(os.Getenv("WEATHER_LOCATION_COUNTRY")),
	}

	lat, lon := os.Getenv("WEATHER_LAT"), os.Getenv("WEATHER_LON")
	if (lat == "") != (lon == "") {
		return loc, fmt.Errorf("WEATHER_LAT and WEATHER_LON must be set together")
	}
	if lat != "" {
		la, err := strconv.ParseFloat(lat, 64)
		if err != nil || la < -90 || la > 90 {
			return loc, fmt.Errorf("invalid WEATHER_LAT %q", lat)
		}
		lo, err := strconv.ParseFloat(lon, 64)
		if err != nil || lo < -180 || lo > 180 {
			return loc, fmt.Errorf("invalid WEATHER_LON %q", lon)
		}
		loc.Lat, loc.Lon = ptr.To(la), ptr.To(lo)
	}

	if loc.City == "" && !loc.HasCoordinates() {
		return loc, fmt.Errorf("either WEATHER_LOCATION_CITY or WEATHER_LAT/WEATHER_LON is required")
	}
	return loc, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
