package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/weather-display/internal/api/http"
	"github.com/i474232898/weather-display/internal/config"
	"github.com/i474232898/weather-display/internal/display"
	"github.com/i474232898/weather-display/internal/geocode"
	"github.com/i474232898/weather-display/internal/scheduler"
	"github.com/i474232898/weather-display/internal/store"
	"github.com/i474232898/weather-display/internal/weather"
	"github.com/i474232898/weather-display/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	frames, err := newStore(cfg)
	if err != nil {
		log.Fatalf("failed to open frame store: %v", err)
	}

	provider := newProvider(cfg, httpClient)

	// Geocoding is only needed when the provider queries by coordinates and
	// the location has none.
	var resolver display.Resolver
	if cfg.NeedsCoordinates() && !cfg.Location.HasCoordinates() {
		r, err := geocode.NewResolver(cfg.GeocoderAPIKey)
		if err != nil {
			log.Fatalf("location %s has no coordinates: %v", cfg.Location.Key(), err)
		}
		resolver = r
	}

	// Core service: fetch, normalize, compose, encode, store.
	service := display.NewService(frames, provider, resolver, display.Options{
		Location:   cfg.Location,
		Units:      cfg.Units,
		Hemisphere: cfg.Hemisphere,
		Width:      cfg.CanvasWidth,
		Height:     cfg.CanvasHeight,
		WakeupHour: cfg.WakeupHour,
		SleepHour:  cfg.SleepHour,
	})

	// Scheduler that periodically renders a new frame.
	sched := scheduler.New(cfg.FetchInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-display",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "ok",
			"service":  "weather-display",
			"provider": provider.Name(),
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()
	log.Printf("INFO: listening on :%s, rendering %s every %s", cfg.Port, cfg.Location.Key(), cfg.FetchInterval)

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}

func newProvider(cfg *config.AppConfig, client *http.Client) weather.Provider {
	var p weather.Provider
	switch cfg.Provider {
	case "file":
		return providers.NewFileProvider(cfg.CurrentFile, cfg.ForecastFile)
	case "openmeteo":
		p = providers.NewOpenMeteoProvider(client, cfg.Units)
	case "weatherapi":
		p = providers.NewWeatherAPIProvider(client, cfg.WeatherAPIKey, cfg.Units)
	default:
		p = providers.NewOpenWeatherProvider(client, cfg.OpenWeatherAPIKey, cfg.Units, cfg.Language)
	}
	return providers.NewRateLimited(p, cfg.ProviderRPS, cfg.ProviderBurst)
}

func newStore(cfg *config.AppConfig) (display.Store, error) {
	if cfg.StoreBackend != "redis" {
		return store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	s := store.NewRedisStore(client, cfg.StoreMaxHistory, cfg.StoreMaxAge)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Ping(ctx); err != nil {
		return nil, err
	}
	log.Printf("INFO: connected to redis at %s", cfg.RedisAddr)
	return s, nil
}
