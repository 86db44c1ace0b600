package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-display/internal/units"
	"github.com/i474232898/weather-display/internal/weather"
)

const (
	openMeteoBaseURL = "https://api.open-meteo.com/v1/forecast"
	// snowfall is reported in centimetres
	cmToMM = 10
)

var openMeteoHourly = []string{
	"temperature_2m", "relative_humidity_2m", "pressure_msl",
	"weather_code", "is_day", "rain", "snowfall",
}

var openMeteoCurrent = []string{
	"temperature_2m", "relative_humidity_2m", "apparent_temperature", "dew_point_2m",
	"is_day", "weather_code", "cloud_cover", "pressure_msl", "visibility",
	"wind_speed_10m", "wind_direction_10m", "uv_index",
}

// OpenMeteoProvider needs no API key. It translates Open-Meteo responses
// into the same document shape the OpenWeatherMap provider returns, so the
// normalizer does not care which one is configured.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	units   units.Mode
	now     func() time.Time
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(client *http.Client, mode units.Mode) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: openMeteoBaseURL,
		units:   mode,
		now:     time.Now,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: defaultBackoff,
		},
		circuit: newCircuit("openmeteo"),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

type openMeteoResponse struct {
	UTCOffsetSeconds float64 `json:"utc_offset_seconds"`
	Current          struct {
		Time          int64   `json:"time"`
		Temperature   float64 `json:"temperature_2m"`
		Humidity      float64 `json:"relative_humidity_2m"`
		Apparent      float64 `json:"apparent_temperature"`
		DewPoint      float64 `json:"dew_point_2m"`
		IsDay         int     `json:"is_day"`
		WeatherCode   int     `json:"weather_code"`
		CloudCover    float64 `json:"cloud_cover"`
		Pressure      float64 `json:"pressure_msl"`
		Visibility    float64 `json:"visibility"`
		WindSpeed     float64 `json:"wind_speed_10m"`
		WindDirection float64 `json:"wind_direction_10m"`
		UVIndex       float64 `json:"uv_index"`
	} `json:"current"`
	Hourly struct {
		Time        []int64   `json:"time"`
		Temperature []float64 `json:"temperature_2m"`
		Humidity    []float64 `json:"relative_humidity_2m"`
		Pressure    []float64 `json:"pressure_msl"`
		WeatherCode []int     `json:"weather_code"`
		IsDay       []int     `json:"is_day"`
		Rain        []float64 `json:"rain"`
		Snowfall    []float64 `json:"snowfall"`
	} `json:"hourly"`
	Daily struct {
		Sunrise []int64 `json:"sunrise"`
		Sunset  []int64 `json:"sunset"`
	} `json:"daily"`
}

func (p *OpenMeteoProvider) FetchCurrent(ctx context.Context, loc weather.Location) (weather.Tree, error) {
	r, err := p.fetch(ctx, loc, url.Values{
		"current":       {strings.Join(openMeteoCurrent, ",")},
		"daily":         {"sunrise,sunset"},
		"forecast_days": {"1"},
	})
	if err != nil {
		return nil, err
	}
	c := r.Current
	var sunrise, sunset float64
	if len(r.Daily.Sunrise) > 0 && len(r.Daily.Sunset) > 0 {
		sunrise, sunset = float64(r.Daily.Sunrise[0]), float64(r.Daily.Sunset[0])
	}
	return weather.NewTree(map[string]any{
		"timezone_offset": r.UTCOffsetSeconds,
		"current": map[string]any{
			"dt":         float64(c.Time),
			"sunrise":    sunrise,
			"sunset":     sunset,
			"temp":       c.Temperature,
			"feels_like": c.Apparent,
			"pressure":   c.Pressure,
			"humidity":   c.Humidity,
			"dew_point":  c.DewPoint,
			"uvi":        c.UVIndex,
			"clouds":     c.CloudCover,
			"visibility": c.Visibility,
			"wind_speed": c.WindSpeed,
			"wind_deg":   c.WindDirection,
			"weather": []any{map[string]any{
				"description": wmoDescription(c.WeatherCode),
				"icon":        wmoIcon(c.WeatherCode, c.IsDay == 1),
			}},
		},
	}), nil
}

// FetchForecast folds the hourly series into 3-hour periods.
func (p *OpenMeteoProvider) FetchForecast(ctx context.Context, loc weather.Location) (weather.Tree, error) {
	r, err := p.fetch(ctx, loc, url.Values{
		"hourly":        {strings.Join(openMeteoHourly, ",")},
		"forecast_days": {"5"},
	})
	if err != nil {
		return nil, err
	}
	h := r.Hourly
	n := len(h.Time)
	if len(h.Temperature) < n || len(h.Humidity) < n || len(h.Pressure) < n ||
		len(h.WeatherCode) < n || len(h.IsDay) < n || len(h.Rain) < n || len(h.Snowfall) < n {
		return nil, fmt.Errorf("openmeteo forecast: %w: hourly arrays differ in length", weather.ErrDecode)
	}

	hours := make([]hourSample, n)
	for i := range hours {
		hours[i] = hourSample{
			Time:     h.Time[i],
			Temp:     h.Temperature[i],
			Humidity: h.Humidity[i],
			Pressure: h.Pressure[i],
			Icon:     wmoIcon(h.WeatherCode[i], h.IsDay[i] == 1),
			Rain:     h.Rain[i],
			Snow:     h.Snowfall[i] * cmToMM,
		}
	}
	return foldPeriods(hours, p.now().Unix()), nil
}

func (p *OpenMeteoProvider) fetch(ctx context.Context, loc weather.Location, values url.Values) (*openMeteoResponse, error) {
	if !loc.HasCoordinates() {
		return nil, fmt.Errorf("openmeteo: %w", errNoCoordinates)
	}

	buildRequest := func() (*http.Request, error) {
		q := url.Values{}
		for k, v := range values {
			q[k] = v
		}
		q.Set("latitude", strconv.FormatFloat(*loc.Lat, 'f', -1, 64))
		q.Set("longitude", strconv.FormatFloat(*loc.Lon, 'f', -1, 64))
		q.Set("timezone", "auto")
		q.Set("timeformat", "unixtime")
		if p.units.IsMetric() {
			q.Set("wind_speed_unit", "ms")
		} else {
			q.Set("temperature_unit", "fahrenheit")
			q.Set("wind_speed_unit", "mph")
		}
		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", p.baseURL, q.Encode()), nil)
	}

	body, err := fetchDocument(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, fmt.Errorf("openmeteo: %w", err)
	}
	var r openMeteoResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("openmeteo: %w: %v", weather.ErrDecode, err)
	}
	return &r, nil
}

// wmoIcon maps a WMO weather interpretation code onto an OpenWeatherMap
// icon code. Unknown codes map to "" and render as no data.
func wmoIcon(code int, day bool) string {
	var base string
	switch {
	case code == 0:
		base = "01"
	case code == 1:
		base = "02"
	case code == 2:
		base = "03"
	case code == 3:
		base = "04"
	case code == 45 || code == 48:
		base = "50"
	case code >= 51 && code <= 57, code >= 80 && code <= 82:
		base = "09"
	case code >= 61 && code <= 67:
		base = "10"
	case code >= 71 && code <= 77, code == 85 || code == 86:
		base = "13"
	case code >= 95 && code <= 99:
		base = "11"
	default:
		return ""
	}
	if day {
		return base + "d"
	}
	return base + "n"
}

func wmoDescription(code int) string {
	switch {
	case code == 0:
		return "clear sky"
	case code == 1:
		return "mainly clear"
	case code == 2:
		return "partly cloudy"
	case code == 3:
		return "overcast"
	case code == 45 || code == 48:
		return "fog"
	case code >= 51 && code <= 57:
		return "drizzle"
	case code >= 61 && code <= 67:
		return "rain"
	case code >= 71 && code <= 77:
		return "snow"
	case code >= 80 && code <= 82:
		return "rain showers"
	case code == 85 || code == 86:
		return "snow showers"
	case code >= 95 && code <= 99:
		return "thunderstorm"
	default:
		return ""
	}
}
