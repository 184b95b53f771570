package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/neersanchay/internal/api/http"
	"github.com/i474232898/neersanchay/internal/assessment"
	"github.com/i474232898/neersanchay/internal/config"
	"github.com/i474232898/neersanchay/internal/estimate"
	"github.com/i474232898/neersanchay/internal/geolocation"
	"github.com/i474232898/neersanchay/internal/metrics"
	"github.com/i474232898/neersanchay/internal/navigation"
	"github.com/i474232898/neersanchay/internal/scheduler"
	"github.com/i474232898/neersanchay/internal/store"
)

func runServe(portOverride string) error {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return err
	}
	if portOverride != "" {
		cfg.Port = portOverride
	}

	// Setup structured logging
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(log)

	engine, err := loadEngine(cfg.SeasonalProfileFile)
	if err != nil {
		slog.Error("failed to load seasonal profile", "file", cfg.SeasonalProfileFile, "error", err)
		return err
	}

	// Shared HTTP client for outbound geocoding calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}
	locator := buildLocator(cfg, httpClient)

	ctrl := navigation.NewController(navigation.Options{
		StatusDismissAfter:         cfg.StatusDismissAfter,
		RedirectStatusDismissAfter: cfg.RedirectStatusDismissAfter,
	})
	sessions := store.NewSessionStore(ctrl, cfg.SessionIdleTimeout, nil)
	collector := metrics.NewCollector("neersanchay")

	service := assessment.NewService(sessions, engine, locator, collector, assessment.Options{
		CalculationDelay: cfg.CalculationDelay,
		LocateTimeout:    cfg.GeolocationTimeout,
		Logger:           log,
	})

	sched := scheduler.New(service, cfg.SweepInterval, log)
	if err := sched.Start(); err != nil {
		slog.Error("failed to start scheduler", "error", err)
		return err
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "neersanchay",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		// Submissions hold the request for the calculating delay.
		WriteTimeout: 10*time.Second + cfg.CalculationDelay,
		ErrorHandler: httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "neersanchay",
			"profile": engine.Profile().Name,
			"locator": locator.Name(),
		})
	})

	httpapi.RegisterRoutes(app, service, collector)

	slog.Info("starting neersanchay",
		"port", cfg.Port,
		"locator", locator.Name(),
		"calculation_delay", cfg.CalculationDelay.String(),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(":" + cfg.Port)
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("fiber server stopped", "error", err)
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("error during shutdown", "error", err)
		return err
	}
	slog.Info("shutdown complete")
	return nil
}

func loadEngine(profileFile string) (*estimate.Engine, error) {
	if profileFile == "" {
		return estimate.Default(), nil
	}
	p, err := estimate.LoadProfile(profileFile)
	if err != nil {
		return nil, err
	}
	return estimate.NewEngine(p), nil
}

// buildLocator orders the geocoders before the static host position so a
// typed place name wins over the fallback.
func buildLocator(cfg *config.AppConfig, client *http.Client) geolocation.Chain {
	var chain geolocation.Chain
	if cfg.GeocoderAPIKey != "" {
		chain = append(chain, geolocation.NewGoogleLocator(cfg.GeocoderAPIKey))
	}
	if cfg.OpenMeteoURL != "" {
		chain = append(chain, geolocation.NewOpenMeteoLocator(client, cfg.OpenMeteoURL))
	}
	if cfg.HostLatitude != nil && cfg.HostLongitude != nil {
		chain = append(chain, geolocation.StaticLocator{Position: geolocation.Position{
			Latitude:  *cfg.HostLatitude,
			Longitude: *cfg.HostLongitude,
		}})
	}
	return chain
}
