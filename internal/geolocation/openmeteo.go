package geolocation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

// DefaultOpenMeteoURL is the public Open-Meteo geocoding search endpoint.
const DefaultOpenMeteoURL = "https://geocoding-api.open-meteo.com/v1/search"

// OpenMeteoLocator resolves a place name through the Open-Meteo geocoding
// API. It needs no API key.
type OpenMeteoLocator struct {
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoLocator(client *http.Client, baseURL string) *OpenMeteoLocator {
	if baseURL == "" {
		baseURL = DefaultOpenMeteoURL
	}
	return &OpenMeteoLocator{
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      2,
				InitialInterval: 250 * time.Millisecond,
				MaxInterval:     2 * time.Second,
			},
		},
		circuit: newBreaker("openmeteo-geocoding"),
	}
}

func (l *OpenMeteoLocator) Name() string {
	return "openmeteo"
}

func (l *OpenMeteoLocator) Locate(ctx context.Context, hint string) (Position, error) {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return Position{}, fmt.Errorf("%w: openmeteo needs a place name", ErrUnavailable)
	}

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("name", hint)
		values.Set("count", "1")
		values.Set("language", "en")
		values.Set("format", "json")
		return http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+"?"+values.Encode(), nil)
	}

	resp, err := doRequestWithResilience(ctx, l.httpCfg, l.circuit, buildRequest)
	if err != nil {
		return Position{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Results []struct {
			Name      string  `json:"name"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
			Country   string  `json:"country"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Position{}, fmt.Errorf("decode geocoding response: %w", err)
	}
	if len(payload.Results) == 0 {
		return Position{}, fmt.Errorf("%w: no match for %q", ErrUnavailable, hint)
	}

	r := payload.Results[0]
	p := Position{Latitude: r.Latitude, Longitude: r.Longitude}
	if !p.Valid() {
		return Position{}, fmt.Errorf("%w: out of range coordinates for %q", ErrUnavailable, hint)
	}
	return p, nil
}
