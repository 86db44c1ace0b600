package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-display/internal/common"
	"github.com/i474232898/weather-display/internal/units"
	"github.com/i474232898/weather-display/internal/weather"
)

const (
	weatherAPIBaseURL      = "https://api.weatherapi.com/v1"
	// one day more than the 72 hours the forecast needs, since folding
	// starts at the current hour
	weatherAPIForecastDays = 4
	kphToMS                = 1 / 3.6
)

// WeatherAPIProvider fetches WeatherAPI.com's forecast endpoint and folds it
// into the OpenWeatherMap document shape. It accepts a city name, so it
// works without geocoding.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	units   units.Mode
	now     func() time.Time
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewWeatherAPIProvider(client *http.Client, apiKey string, mode units.Mode) *WeatherAPIProvider {
	return &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: weatherAPIBaseURL,
		units:   mode,
		now:     time.Now,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: defaultBackoff,
		},
		circuit: newCircuit("weatherapi"),
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

type weatherAPICondition struct {
	Text string `json:"text"`
}

type weatherAPIHour struct {
	TimeEpoch  int64               `json:"time_epoch"`
	TempC      float64             `json:"temp_c"`
	TempF      float64             `json:"temp_f"`
	Humidity   float64             `json:"humidity"`
	PressureMb float64             `json:"pressure_mb"`
	IsDay      int                 `json:"is_day"`
	PrecipMm   float64             `json:"precip_mm"`
	SnowCm     float64             `json:"snow_cm"`
	Condition  weatherAPICondition `json:"condition"`
}

type weatherAPIResponse struct {
	Location struct {
		LocaltimeEpoch int64  `json:"localtime_epoch"`
		Localtime      string `json:"localtime"`
	} `json:"location"`
	Current struct {
		LastUpdatedEpoch int64               `json:"last_updated_epoch"`
		TempC            float64             `json:"temp_c"`
		TempF            float64             `json:"temp_f"`
		FeelsLikeC       float64             `json:"feelslike_c"`
		FeelsLikeF       float64             `json:"feelslike_f"`
		DewPointC        float64             `json:"dewpoint_c"`
		DewPointF        float64             `json:"dewpoint_f"`
		Humidity         float64             `json:"humidity"`
		PressureMb       float64             `json:"pressure_mb"`
		WindKph          float64             `json:"wind_kph"`
		WindMph          float64             `json:"wind_mph"`
		WindDegree       float64             `json:"wind_degree"`
		Cloud            float64             `json:"cloud"`
		VisKm            float64             `json:"vis_km"`
		UV               float64             `json:"uv"`
		IsDay            int                 `json:"is_day"`
		Condition        weatherAPICondition `json:"condition"`
	} `json:"current"`
	Forecast struct {
		Forecastday []struct {
			Date  string `json:"date"`
			Astro struct {
				Sunrise string `json:"sunrise"`
				Sunset  string `json:"sunset"`
			} `json:"astro"`
			Hour []weatherAPIHour `json:"hour"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

func (p *WeatherAPIProvider) FetchCurrent(ctx context.Context, loc weather.Location) (weather.Tree, error) {
	r, err := p.fetch(ctx, loc, 1)
	if err != nil {
		return nil, err
	}
	offset, err := utcOffset(r.Location.Localtime, r.Location.LocaltimeEpoch)
	if err != nil {
		return nil, fmt.Errorf("weatherapi current: %w: localtime %q", weather.ErrDecode, r.Location.Localtime)
	}

	var sunrise, sunset int64
	if days := r.Forecast.Forecastday; len(days) > 0 {
		sunrise = astroEpoch(days[0].Date, days[0].Astro.Sunrise, offset)
		sunset = astroEpoch(days[0].Date, days[0].Astro.Sunset, offset)
	}

	c := r.Current
	temp, feels, dew, wind := c.TempC, c.FeelsLikeC, c.DewPointC, c.WindKph*kphToMS
	if !p.units.IsMetric() {
		temp, feels, dew, wind = c.TempF, c.FeelsLikeF, c.DewPointF, c.WindMph
	}
	return weather.NewTree(map[string]any{
		"timezone_offset": float64(offset),
		"current": map[string]any{
			"dt":         float64(c.LastUpdatedEpoch),
			"sunrise":    float64(sunrise),
			"sunset":     float64(sunset),
			"temp":       temp,
			"feels_like": feels,
			"pressure":   c.PressureMb,
			"humidity":   c.Humidity,
			"dew_point":  dew,
			"uvi":        c.UV,
			"clouds":     c.Cloud,
			"visibility": c.VisKm * 1000,
			"wind_speed": wind,
			"wind_deg":   c.WindDegree,
			"weather": []any{map[string]any{
				"description": strings.ToLower(c.Condition.Text),
				"icon":        conditionIcon(c.Condition.Text, c.IsDay == 1),
			}},
		},
	}), nil
}

func (p *WeatherAPIProvider) FetchForecast(ctx context.Context, loc weather.Location) (weather.Tree, error) {
	r, err := p.fetch(ctx, loc, weatherAPIForecastDays)
	if err != nil {
		return nil, err
	}
	var hours []hourSample
	for _, day := range r.Forecast.Forecastday {
		for _, h := range day.Hour {
			temp := h.TempC
			if !p.units.IsMetric() {
				temp = h.TempF
			}
			hours = append(hours, hourSample{
				Time:     h.TimeEpoch,
				Temp:     temp,
				Humidity: h.Humidity,
				Pressure: h.PressureMb,
				Icon:     conditionIcon(h.Condition.Text, h.IsDay == 1),
				Rain:     h.PrecipMm,
				Snow:     h.SnowCm * cmToMM,
			})
		}
	}
	return foldPeriods(hours, p.now().Unix()), nil
}

func (p *WeatherAPIProvider) fetch(ctx context.Context, loc weather.Location, days int) (*weatherAPIResponse, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("weatherapi api key is not configured")
	}
	q := weatherAPIQuery(loc)
	if q == "" {
		return nil, fmt.Errorf("weatherapi: %w", errNoLocation)
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("key", p.apiKey)
		values.Set("q", q)
		values.Set("days", strconv.Itoa(days))
		values.Set("aqi", "no")
		values.Set("alerts", "no")
		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s/forecast.json?%s", p.baseURL, values.Encode()), nil)
	}

	body, err := fetchDocument(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, fmt.Errorf("weatherapi: %w", err)
	}
	var r weatherAPIResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("weatherapi: %w: %v", weather.ErrDecode, err)
	}
	return &r, nil
}

// weatherAPIQuery accepts "lat,lon" or "city,country".
func weatherAPIQuery(loc weather.Location) string {
	if loc.HasCoordinates() {
		return fmt.Sprintf("%f,%f", *loc.Lat, *loc.Lon)
	}
	if loc.City == "" {
		return ""
	}
	if loc.Country != "" {
		return loc.City + "," + loc.Country
	}
	return loc.City
}

// utcOffset derives the offset in seconds from the location's wall clock,
// which is reported to the minute, rounded to a quarter hour.
func utcOffset(localtime string, epoch int64) (int64, error) {
	wall, err := time.Parse("2006-01-02 15:04", localtime)
	if err != nil {
		return 0, err
	}
	const quarter = 15 * 60
	return int64(math.Round(float64(wall.Unix()-epoch)/quarter)) * quarter, nil
}

// astroEpoch turns a local "05:43 AM" on date into a Unix time. Polar days
// report no sunrise and give 0.
func astroEpoch(date, clock string, offset int64) int64 {
	wall, err := time.Parse("2006-01-02 3:04 PM", date+" "+clock)
	if err != nil {
		return 0
	}
	return wall.Unix() - offset
}

// conditionIcon maps WeatherAPI's English condition text onto an
// OpenWeatherMap icon code. Unmatched text maps to "" and renders as no data.
func conditionIcon(text string, day bool) string {
	var base string
	switch {
	case common.HasAny(text, "thunder"):
		base = "11"
	case common.HasAny(text, "snow", "sleet", "blizzard", "ice pellets"):
		base = "13"
	case common.HasAny(text, "shower", "drizzle"):
		base = "09"
	case common.HasAny(text, "rain"):
		base = "10"
	case common.HasAny(text, "mist", "fog", "haze"):
		base = "50"
	case common.HasAny(text, "overcast"):
		base = "04"
	case common.HasAny(text, "partly"):
		base = "02"
	case common.HasAny(text, "cloud"):
		base = "03"
	case common.HasAny(text, "sunny", "clear"):
		base = "01"
	default:
		return ""
	}
	if day {
		return base + "d"
	}
	return base + "n"
}
