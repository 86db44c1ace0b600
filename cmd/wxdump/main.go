// Command wxdump fetches (or loads) the two weather documents once, prints
// the normalized records and writes the rendered display as a PNG.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/i474232898/weather-display/internal/astro"
	"github.com/i474232898/weather-display/internal/config"
	"github.com/i474232898/weather-display/internal/geocode"
	"github.com/i474232898/weather-display/internal/layout"
	"github.com/i474232898/weather-display/internal/surface"
	"github.com/i474232898/weather-display/internal/units"
	"github.com/i474232898/weather-display/internal/weather"
	"github.com/i474232898/weather-display/internal/weather/providers"
)

func main() {
	currentFlag := flag.String("current", "", "Path to a saved current-conditions document")
	forecastFlag := flag.String("forecast", "", "Path to a saved forecast document")
	outFlag := flag.String("out", "display.png", "Where to write the rendered PNG (empty to skip)")
	unitsFlag := flag.String("units", "", "metric or imperial (defaults to WEATHER_UNITS)")
	southFlag := flag.Bool("south", false, "Mirror the moon for the southern hemisphere")
	cityFlag := flag.String("city", "", "Location name drawn on the display")
	widthFlag := flag.Int("width", 960, "Canvas width")
	heightFlag := flag.Int("height", 540, "Canvas height")
	flagNoColor := flag.Bool("no-color", false, "Disable color output")
	flag.Parse()

	if *flagNoColor {
		color.NoColor = true
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	provider, loc, mode, hemisphere, err := setup(ctx, *currentFlag, *forecastFlag, *unitsFlag)
	if err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	if *southFlag {
		hemisphere = astro.South
	}
	if *cityFlag != "" {
		loc.City = *cityFlag
	}

	current, err := provider.FetchCurrent(ctx, loc)
	if err != nil {
		log.Fatalf("ERROR: current conditions: %v", err)
	}
	forecast, err := provider.FetchForecast(ctx, loc)
	if err != nil {
		log.Fatalf("ERROR: forecast: %v", err)
	}

	rs := weather.NewNormalizer(mode).Normalize(current, forecast)
	writeRecords(os.Stdout, rs, loc.Name())

	if *outFlag == "" {
		return
	}
	if err := render(*outFlag, rs, loc, hemisphere, *widthFlag, *heightFlag); err != nil {
		log.Fatalf("ERROR: %v", err)
	}
	fmt.Printf("wrote %s\n", *outFlag)
}

// setup picks the file provider when both paths are given and falls back
// to the configured live provider otherwise.
func setup(ctx context.Context, currentPath, forecastPath, unitFlag string) (weather.Provider, weather.Location, units.Mode, astro.Hemisphere, error) {
	if currentPath != "" || forecastPath != "" {
		if currentPath == "" || forecastPath == "" {
			return nil, weather.Location{}, "", "", fmt.Errorf("-current and -forecast must be given together")
		}
		mode := units.Metric
		if unitFlag != "" {
			m, err := units.ParseMode(unitFlag)
			if err != nil {
				return nil, weather.Location{}, "", "", err
			}
			mode = m
		}
		return providers.NewFileProvider(currentPath, forecastPath), weather.Location{}, mode, astro.North, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, weather.Location{}, "", "", err
	}
	mode := cfg.Units
	if unitFlag != "" {
		if mode, err = units.ParseMode(unitFlag); err != nil {
			return nil, weather.Location{}, "", "", err
		}
	}

	loc := cfg.Location
	if cfg.NeedsCoordinates() && !loc.HasCoordinates() {
		r, err := geocode.NewResolver(cfg.GeocoderAPIKey)
		if err != nil {
			return nil, weather.Location{}, "", "", err
		}
		if loc, err = r.Resolve(ctx, loc); err != nil {
			return nil, weather.Location{}, "", "", err
		}
	}

	client := &http.Client{Timeout: cfg.HTTPTimeout}
	var p weather.Provider
	switch cfg.Provider {
	case "openmeteo":
		p = providers.NewOpenMeteoProvider(client, mode)
	case "weatherapi":
		p = providers.NewWeatherAPIProvider(client, cfg.WeatherAPIKey, mode)
	case "file":
		p = providers.NewFileProvider(cfg.CurrentFile, cfg.ForecastFile)
	default:
		p = providers.NewOpenWeatherProvider(client, cfg.OpenWeatherAPIKey, mode, cfg.Language)
	}
	return p, loc, mode, cfg.Hemisphere, nil
}

func render(path string, rs *weather.RecordSet, loc weather.Location, h astro.Hemisphere, width, height int) error {
	r := surface.NewRaster(width, height)
	defer r.Close()

	layout.NewComposer(layout.NewTable(width, height), h).Compose(r, layout.Scene{
		Records:  rs,
		Location: loc.Name(),
		Now:      time.Now(),
	})

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := r.EncodePNG(f); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
