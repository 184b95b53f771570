package assessment

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/i474232898/neersanchay/internal/estimate"
	"github.com/i474232898/neersanchay/internal/geolocation"
	"github.com/i474232898/neersanchay/internal/metrics"
	"github.com/i474232898/neersanchay/internal/navigation"
	"github.com/i474232898/neersanchay/internal/store"
)

// ErrDiscarded is returned when the session was reset while an operation
// was running and its outcome was thrown away.
var ErrDiscarded = errors.New("session changed before the operation finished")

// Options configure a Service.
type Options struct {
	// CalculationDelay is the pause between accepting a submission and
	// showing its result.
	CalculationDelay time.Duration
	LocateTimeout    time.Duration
	Logger           *slog.Logger
}

// Service orchestrates the session, the estimation engine and the location
// collaborator for the HTTP layer.
type Service struct {
	store   *store.SessionStore
	engine  *estimate.Engine
	locator geolocation.Locator
	metrics *metrics.Collector
	log     *slog.Logger

	delay         time.Duration
	locateTimeout time.Duration
}

// NewService creates a new Service. locator may be nil, in which case host
// lookups report that geolocation is unsupported.
func NewService(st *store.SessionStore, engine *estimate.Engine, locator geolocation.Locator, m *metrics.Collector, opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.LocateTimeout <= 0 {
		opts.LocateTimeout = 8 * time.Second
	}
	if engine == nil {
		engine = estimate.Default()
	}
	return &Service{
		store:         st,
		engine:        engine,
		locator:       locator,
		metrics:       m,
		log:           opts.Logger.With("component", "assessment"),
		delay:         opts.CalculationDelay,
		locateTimeout: opts.LocateTimeout,
	}
}

func (s *Service) Engine() *estimate.Engine {
	return s.engine
}

func (s *Service) View() navigation.View {
	return s.store.View()
}

func (s *Service) Current() (navigation.Assessment, error) {
	return s.store.Current()
}

func (s *Service) Navigate(id string) navigation.View {
	var screen navigation.Screen
	_ = s.store.Update(func(c *navigation.Controller) error {
		screen = c.Navigate(navigation.ParseScreen(id))
		return nil
	})
	s.metrics.RecordTransition(string(screen))
	return s.store.View()
}

func (s *Service) SignIn(creds navigation.SignInCredentials) (navigation.View, error) {
	var user *navigation.User
	err := s.store.Update(func(c *navigation.Controller) error {
		var err error
		user, err = c.SignIn(creds)
		return err
	})
	return s.afterAuth("signin", user, err)
}

func (s *Service) SignUp(creds navigation.SignUpCredentials) (navigation.View, error) {
	var user *navigation.User
	err := s.store.Update(func(c *navigation.Controller) error {
		var err error
		user, err = c.SignUp(creds)
		return err
	})
	return s.afterAuth("signup", user, err)
}

func (s *Service) afterAuth(kind string, user *navigation.User, err error) (navigation.View, error) {
	if err != nil {
		s.metrics.RecordSignIn(kind, "rejected")
		s.log.Info("credentials rejected", "kind", kind, "reason", err.Error())
		return s.store.View(), err
	}
	s.metrics.RecordSignIn(kind, "ok")
	s.metrics.RecordTransition(string(navigation.ScreenDashboard))
	s.log.Info("user signed in", "kind", kind, "user_id", user.ID)
	return s.store.View(), nil
}

func (s *Service) SignOut() navigation.View {
	_ = s.store.Update(func(c *navigation.Controller) error {
		c.SignOut()
		return nil
	})
	s.metrics.RecordTransition(string(navigation.ScreenLanding))
	s.log.Info("user signed out")
	return s.store.View()
}

// Submit validates the form, waits out the calculating delay and records
// the result. The delay is not interrupted when the caller goes away.
func (s *Service) Submit(in estimate.Input) (navigation.Assessment, error) {
	var (
		ticket navigation.Ticket
		norm   estimate.Input
	)
	err := s.store.Update(func(c *navigation.Controller) error {
		var err error
		ticket, norm, err = c.BeginSubmission(in)
		return err
	})
	if err != nil {
		var verr *estimate.ValidationError
		if errors.As(err, &verr) {
			for _, f := range verr.Fields {
				s.metrics.RecordValidationFailure(f.Field)
			}
			s.log.Info("submission rejected", "error", err.Error())
		}
		return navigation.Assessment{}, err
	}

	timer := s.metrics.NewTimer(s.metrics.CalculationDuration)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	res := s.engine.Estimate(norm)

	var applied bool
	_ = s.store.Update(func(c *navigation.Controller) error {
		applied = c.CompleteSubmission(ticket, norm, res)
		return nil
	})
	elapsed := timer.ObserveDuration()

	if !applied {
		s.log.Info("discarding stale assessment", "ticket", uint64(ticket))
		return navigation.Assessment{}, ErrDiscarded
	}

	s.metrics.RecordAssessment(string(res.SustainabilityRating))
	s.metrics.RecordTransition(string(navigation.ScreenResults))
	s.log.Info("assessment completed",
		"annual_litres", res.AnnualHarvestLitres,
		"tank_litres", res.SuggestedTankLitres,
		"rating", res.SustainabilityRating,
		"elapsed", elapsed.String(),
	)
	return s.store.Current()
}

func (s *Service) EditInputs() (navigation.View, error) {
	err := s.store.Update(func(c *navigation.Controller) error {
		return c.EditInputs()
	})
	if err == nil {
		s.metrics.RecordTransition(string(navigation.ScreenDashboard))
	}
	return s.store.View(), err
}

// Estimate runs the engine without touching the session.
func (s *Service) Estimate(in estimate.Input) (estimate.Report, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return estimate.Report{}, err
	}
	return s.engine.NewReport(in, s.engine.Estimate(in)), nil
}

// Report builds the results view of an assessment.
func (s *Service) Report(a navigation.Assessment) estimate.Report {
	return s.engine.NewReport(a.Input, a.Result)
}

// Locate asks the host locator for a position, bounded by the lookup
// timeout. Failures are reflected in the session status.
func (s *Service) Locate(ctx context.Context, hint string) (geolocation.Position, error) {
	ticket, err := s.beginLocate()
	if err != nil {
		return geolocation.Position{}, err
	}

	var (
		pos    geolocation.Position
		source = "host"
	)
	if s.locator == nil {
		err = geolocation.ErrUnsupported
	} else {
		source = s.locator.Name()
		ctx, cancel := context.WithTimeout(ctx, s.locateTimeout)
		timer := s.metrics.NewTimer(s.metrics.LocationDuration)
		pos, err = s.locator.Locate(ctx, hint)
		timer.ObserveDuration()
		cancel()
	}

	return pos, s.finishLocate(ticket, source, pos, err)
}

// DeviceReport is what the browser's geolocation API produced.
type DeviceReport struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	ErrorCode int      `json:"errorCode"`
}

// ReportDevice applies a position or error reported by the client.
func (s *Service) ReportDevice(r DeviceReport) (geolocation.Position, error) {
	ticket, err := s.beginLocate()
	if err != nil {
		return geolocation.Position{}, err
	}

	var pos geolocation.Position
	switch {
	case r.ErrorCode != 0:
		err = geolocation.FromBrowserCode(r.ErrorCode)
	case r.Latitude == nil || r.Longitude == nil:
		err = geolocation.ErrUnsupported
	default:
		pos = geolocation.Position{Latitude: *r.Latitude, Longitude: *r.Longitude}
		if !pos.Valid() {
			err = geolocation.ErrUnavailable
		}
	}
	return pos, s.finishLocate(ticket, "device", pos, err)
}

func (s *Service) beginLocate() (navigation.Ticket, error) {
	var ticket navigation.Ticket
	err := s.store.Update(func(c *navigation.Controller) error {
		var err error
		ticket, err = c.BeginLocate()
		return err
	})
	return ticket, err
}

func (s *Service) finishLocate(ticket navigation.Ticket, source string, pos geolocation.Position, lookupErr error) error {
	var applied bool
	_ = s.store.Update(func(c *navigation.Controller) error {
		if lookupErr != nil {
			applied = c.FailLocate(ticket, lookupErr)
		} else {
			applied = c.CompleteLocate(ticket, pos)
		}
		return nil
	})

	outcome := locateOutcome(lookupErr)
	s.metrics.RecordLocation(source, outcome)
	if lookupErr != nil {
		s.log.Warn("location lookup failed", "source", source, "outcome", outcome, "error", lookupErr.Error())
	} else {
		s.log.Info("location acquired", "source", source, "position", pos.String())
	}

	if !applied {
		return ErrDiscarded
	}
	return lookupErr
}

func locateOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, geolocation.ErrUnsupported):
		return "unsupported"
	case errors.Is(err, geolocation.ErrPermissionDenied):
		return "denied"
	case errors.Is(err, geolocation.ErrTimeout):
		return "timeout"
	case errors.Is(err, geolocation.ErrUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}

// Sweep expires status messages and resets an idle session.
func (s *Service) Sweep() store.SweepResult {
	res := s.store.Sweep()
	if res.SessionReset {
		s.metrics.SessionResets.Inc()
		s.metrics.RecordTransition(string(navigation.ScreenLanding))
		s.log.Info("idle session reset")
	}
	return res
}
