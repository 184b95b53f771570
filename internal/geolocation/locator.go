package geolocation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnsupported means no location capability is configured.
	ErrUnsupported      = errors.New("geolocation not supported")
	ErrPermissionDenied = errors.New("geolocation permission denied")
	ErrUnavailable      = errors.New("position unavailable")
	ErrTimeout          = errors.New("geolocation timed out")
)

// Position is a WGS84 coordinate pair.
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// String formats the position the way the assessment form stores it.
func (p Position) String() string {
	return fmt.Sprintf("%.5f, %.5f", p.Latitude, p.Longitude)
}

// Valid reports whether both coordinates are in range.
func (p Position) Valid() bool {
	return p.Latitude >= -90 && p.Latitude <= 90 && p.Longitude >= -180 && p.Longitude <= 180
}

// ParsePosition reads a "lat, lon" pair.
func ParsePosition(s string) (Position, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Position{}, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Position{}, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Position{}, false
	}
	p := Position{Latitude: lat, Longitude: lon}
	return p, p.Valid()
}

// Locator resolves a position. The hint is whatever the user typed in the
// location field so far and may be empty.
type Locator interface {
	Name() string
	Locate(ctx context.Context, hint string) (Position, error)
}

// Browser PositionError codes.
const (
	CodePermissionDenied    = 1
	CodePositionUnavailable = 2
	CodeTimeout             = 3
)

// FromBrowserCode maps a browser geolocation error code to an error.
func FromBrowserCode(code int) error {
	switch code {
	case CodePermissionDenied:
		return ErrPermissionDenied
	case CodeTimeout:
		return ErrTimeout
	default:
		return ErrUnavailable
	}
}

// StaticLocator always reports the configured host position.
type StaticLocator struct {
	Position Position
}

func (s StaticLocator) Name() string {
	return "static"
}

func (s StaticLocator) Locate(ctx context.Context, _ string) (Position, error) {
	if err := ctx.Err(); err != nil {
		return Position{}, contextError(err)
	}
	return s.Position, nil
}

// Chain tries each locator in order and returns the first position found.
// Hints that already are coordinates are returned without a lookup.
type Chain []Locator

func (c Chain) Name() string {
	names := make([]string, 0, len(c))
	for _, l := range c {
		names = append(names, l.Name())
	}
	return strings.Join(names, ",")
}

func (c Chain) Locate(ctx context.Context, hint string) (Position, error) {
	if p, ok := ParsePosition(hint); ok {
		return p, nil
	}
	if len(c) == 0 {
		return Position{}, ErrUnsupported
	}

	var lastErr error
	for _, l := range c {
		p, err := l.Locate(ctx, hint)
		if err == nil {
			return p, nil
		}
		if errors.Is(err, ErrTimeout) {
			return Position{}, err
		}
		lastErr = fmt.Errorf("%s: %w", l.Name(), err)
	}
	return Position{}, lastErr
}

func contextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	return err
}
