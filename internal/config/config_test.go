package config

import (
	"log/slog"
	"testing"
	"time"
)

var keys = []string{
	"PORT", "CALCULATION_DELAY", "STATUS_DISMISS_AFTER", "REDIRECT_STATUS_DISMISS_AFTER",
	"GEOLOCATION_TIMEOUT", "SESSION_IDLE_TIMEOUT", "SWEEP_INTERVAL", "HTTP_TIMEOUT",
	"GEOCODER_API_KEY", "OPEN_METEO_GEOCODING_URL", "HOST_LATITUDE", "HOST_LONGITUDE",
	"SEASONAL_PROFILE_FILE", "LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error: %v", err)
	}
	if cfg.Port != "8080" || cfg.CalculationDelay != 1500*time.Millisecond {
		t.Errorf("port %q delay %v", cfg.Port, cfg.CalculationDelay)
	}
	if cfg.StatusDismissAfter != 2*time.Second || cfg.RedirectStatusDismissAfter != 500*time.Millisecond {
		t.Errorf("dismiss %v / %v", cfg.StatusDismissAfter, cfg.RedirectStatusDismissAfter)
	}
	if cfg.GeolocationTimeout != 8*time.Second || cfg.SessionIdleTimeout != 0 {
		t.Errorf("geo timeout %v idle %v", cfg.GeolocationTimeout, cfg.SessionIdleTimeout)
	}
	if cfg.HostLatitude != nil || cfg.LogLevel != slog.LevelInfo {
		t.Errorf("host lat %v level %v", cfg.HostLatitude, cfg.LogLevel)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("CALCULATION_DELAY", "0s")
	t.Setenv("HOST_LATITUDE", "18.5204")
	t.Setenv("HOST_LONGITUDE", "73.8567")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error: %v", err)
	}
	if cfg.Port != "9090" || cfg.CalculationDelay != 0 {
		t.Errorf("port %q delay %v", cfg.Port, cfg.CalculationDelay)
	}
	if cfg.HostLatitude == nil || *cfg.HostLatitude != 18.5204 || *cfg.HostLongitude != 73.8567 {
		t.Errorf("host position not parsed")
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("level = %v", cfg.LogLevel)
	}
}

func TestFromEnvErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad duration", map[string]string{"CALCULATION_DELAY": "soon"}},
		{"negative delay", map[string]string{"CALCULATION_DELAY": "-1s"}},
		{"zero sweep", map[string]string{"SWEEP_INTERVAL": "0s"}},
		{"latitude alone", map[string]string{"HOST_LATITUDE": "18.5"}},
		{"latitude out of range", map[string]string{"HOST_LATITUDE": "95", "HOST_LONGITUDE": "10"}},
		{"bad float", map[string]string{"HOST_LATITUDE": "north"}},
		{"bad level", map[string]string{"LOG_LEVEL": "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := FromEnv(); err == nil {
				t.Error("FromEnv() returned nil error")
			}
		})
	}
}
