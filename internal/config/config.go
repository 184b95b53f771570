package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port string

	// CalculationDelay is the pause before a submitted assessment is shown.
	CalculationDelay time.Duration

	// Status message lifetimes.
	StatusDismissAfter         time.Duration
	RedirectStatusDismissAfter time.Duration

	GeolocationTimeout time.Duration

	// SessionIdleTimeout resets an untouched session (0 = never).
	SessionIdleTimeout time.Duration
	SweepInterval      time.Duration

	// Outbound geocoding.
	HTTPTimeout    time.Duration
	GeocoderAPIKey string
	OpenMeteoURL   string

	// Host position for the static locator; both must be set to enable it.
	HostLatitude  *float64
	HostLongitude *float64

	SeasonalProfileFile string
	LogLevel            slog.Level
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from the current environment only.
func FromEnv() (*AppConfig, error) {
	cfg := &AppConfig{
		Port:                getenvDefault("PORT", "8080"),
		GeocoderAPIKey:      os.Getenv("GEOCODER_API_KEY"),
		OpenMeteoURL:        getenvDefault("OPEN_METEO_GEOCODING_URL", "https://geocoding-api.open-meteo.com/v1/search"),
		SeasonalProfileFile: os.Getenv("SEASONAL_PROFILE_FILE"),
	}

	durations := []struct {
		key string
		def string
		dst *time.Duration
	}{
		{"CALCULATION_DELAY", "1500ms", &cfg.CalculationDelay},
		{"STATUS_DISMISS_AFTER", "2s", &cfg.StatusDismissAfter},
		{"REDIRECT_STATUS_DISMISS_AFTER", "500ms", &cfg.RedirectStatusDismissAfter},
		{"GEOLOCATION_TIMEOUT", "8s", &cfg.GeolocationTimeout},
		{"SESSION_IDLE_TIMEOUT", "0s", &cfg.SessionIdleTimeout},
		{"SWEEP_INTERVAL", "1s", &cfg.SweepInterval},
		{"HTTP_TIMEOUT", "5s", &cfg.HTTPTimeout},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(getenvDefault(d.key, d.def))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.key, err)
		}
		*d.dst = v
	}

	var err error
	if cfg.HostLatitude, err = getenvFloat("HOST_LATITUDE"); err != nil {
		return nil, err
	}
	if cfg.HostLongitude, err = getenvFloat("HOST_LONGITUDE"); err != nil {
		return nil, err
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getenvDefault("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and combinations.
func (c *AppConfig) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.CalculationDelay < 0 {
		errs = append(errs, errors.New("CALCULATION_DELAY must not be negative"))
	}
	if c.StatusDismissAfter <= 0 || c.RedirectStatusDismissAfter <= 0 {
		errs = append(errs, errors.New("status dismiss durations must be positive"))
	}
	if c.GeolocationTimeout <= 0 {
		errs = append(errs, errors.New("GEOLOCATION_TIMEOUT must be positive"))
	}
	if c.SessionIdleTimeout < 0 {
		errs = append(errs, errors.New("SESSION_IDLE_TIMEOUT must not be negative"))
	}
	if c.SweepInterval <= 0 {
		errs = append(errs, errors.New("SWEEP_INTERVAL must be positive"))
	}
	if c.HTTPTimeout <= 0 {
		errs = append(errs, errors.New("HTTP_TIMEOUT must be positive"))
	}
	if (c.HostLatitude == nil) != (c.HostLongitude == nil) {
		errs = append(errs, errors.New("HOST_LATITUDE and HOST_LONGITUDE must be set together"))
	}
	if c.HostLatitude != nil && (*c.HostLatitude < -90 || *c.HostLatitude > 90) {
		errs = append(errs, errors.New("HOST_LATITUDE out of range"))
	}
	if c.HostLongitude != nil && (*c.HostLongitude < -180 || *c.HostLongitude > 180) {
		errs = append(errs, errors.New("HOST_LONGITUDE out of range"))
	}
	return errors.Join(errs...)
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvFloat(key string) (*float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return &f, nil
}
