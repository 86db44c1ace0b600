package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-display/internal/units"
	"github.com/i474232898/weather-display/internal/weather"
)

const openWeatherBaseURL = "https://api.openweathermap.org/data/2.5"

// OpenWeatherProvider fetches the One Call current conditions and the 5 day
// / 3 hour forecast from OpenWeatherMap.
type OpenWeatherProvider struct {
	name     string
	apiKey   string
	baseURL  string
	units    units.Mode
	language string
	httpCfg  HTTPClientConfig
	circuit  *gobreaker.CircuitBreaker
}

// OpenWeatherOption customizes an OpenWeatherProvider.
type OpenWeatherOption func(*OpenWeatherProvider)

// WithBaseURL points the provider at another host, e.g. a test server.
func WithBaseURL(u string) OpenWeatherOption {
	return func(p *OpenWeatherProvider) { p.baseURL = u }
}

// WithBackoff replaces the retry policy.
func WithBackoff(b BackoffConfig) OpenWeatherOption {
	return func(p *OpenWeatherProvider) { p.httpCfg.Backoff = b }
}

func NewOpenWeatherProvider(client *http.Client, apiKey string, mode units.Mode, language string, opts ...OpenWeatherOption) *OpenWeatherProvider {
	p := &OpenWeatherProvider{
		name:     "openweathermap",
		apiKey:   apiKey,
		baseURL:  openWeatherBaseURL,
		units:    mode,
		language: language,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: defaultBackoff,
		},
		circuit: newCircuit("openweather"),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// FetchCurrent requests the One Call document without the minutely, hourly,
// daily and alert blocks.
func (p *OpenWeatherProvider) FetchCurrent(ctx context.Context, loc weather.Location) (weather.Tree, error) {
	return p.fetch(ctx, "onecall", loc, url.Values{"exclude": {"minutely,hourly,alerts,daily"}})
}

// FetchForecast requests the 3-hour forecast list.
func (p *OpenWeatherProvider) FetchForecast(ctx context.Context, loc weather.Location) (weather.Tree, error) {
	return p.fetch(ctx, "forecast", loc, url.Values{})
}

func (p *OpenWeatherProvider) fetch(ctx context.Context, endpoint string, loc weather.Location, values url.Values) (weather.Tree, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("openweather api key is not configured")
	}
	if !loc.HasCoordinates() {
		return nil, fmt.Errorf("openweather %s: %w", endpoint, errNoCoordinates)
	}

	buildRequest := func() (*http.Request, error) {
		q := url.Values{}
		for k, v := range values {
			q[k] = v
		}
		q.Set("lat", strconv.FormatFloat(*loc.Lat, 'f', -1, 64))
		q.Set("lon", strconv.FormatFloat(*loc.Lon, 'f', -1, 64))
		q.Set("appid", p.apiKey)
		q.Set("mode", "json")
		q.Set("units", string(p.units))
		if p.language != "" {
			q.Set("lang", p.language)
		}
		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s/%s?%s", p.baseURL, endpoint, q.Encode()), nil)
	}

	body, err := fetchDocument(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, fmt.Errorf("openweather %s: %w", endpoint, err)
	}
	return weather.DecodeTree(body)
}
