package geolocation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kelvins/geocoder"
	"github.com/sony/gobreaker"
)

// geocoder keeps its key in a package variable, so one lookup at a time
// may hold it.
var googleKeySem = make(chan struct{}, 1)

// GoogleLocator geocodes a place name with the Google Geocoding API.
type GoogleLocator struct {
	apiKey  string
	circuit *gobreaker.CircuitBreaker
	geocode func(geocoder.Address) (geocoder.Location, error)
}

// NewGoogleLocator returns a locator using apiKey. An empty key makes every
// lookup report ErrUnsupported.
func NewGoogleLocator(apiKey string) *GoogleLocator {
	return &GoogleLocator{
		apiKey:  apiKey,
		circuit: newBreaker("google-geocoding"),
		geocode: geocoder.Geocoding,
	}
}

func (l *GoogleLocator) Name() string {
	return "google"
}

// Locate geocodes hint. It returns when ctx ends even if the request to
// Google is still outstanding.
func (l *GoogleLocator) Locate(ctx context.Context, hint string) (Position, error) {
	if l.apiKey == "" {
		return Position{}, ErrUnsupported
	}
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return Position{}, fmt.Errorf("%w: google needs a place name", ErrUnavailable)
	}

	select {
	case googleKeySem <- struct{}{}:
	case <-ctx.Done():
		return Position{}, contextError(ctx.Err())
	}

	type outcome struct {
		pos Position
		err error
	}
	done := make(chan outcome, 1)

	go func() {
		defer func() { <-googleKeySem }()

		result, err := l.circuit.Execute(func() (interface{}, error) {
			geocoder.ApiKey = l.apiKey
			return l.geocode(geocoder.Address{City: hint})
		})
		switch {
		case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
			done <- outcome{err: fmt.Errorf("%w: %v", errCircuitOpen, err)}
			return
		case err != nil:
			done <- outcome{err: fmt.Errorf("%w: %v", ErrUnavailable, err)}
			return
		}

		loc, ok := result.(geocoder.Location)
		if !ok {
			done <- outcome{err: fmt.Errorf("unexpected result type from circuit breaker")}
			return
		}
		done <- outcome{pos: Position{Latitude: loc.Latitude, Longitude: loc.Longitude}}
	}()

	select {
	case <-ctx.Done():
		return Position{}, contextError(ctx.Err())
	case o := <-done:
		return o.pos, o.err
	}
}
