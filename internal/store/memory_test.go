package store

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/i474232898/neersanchay/internal/estimate"
	"github.com/i474232898/neersanchay/internal/navigation"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newStore(idle time.Duration) (*SessionStore, *clock) {
	clk := &clock{t: time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)}
	ctrl := navigation.NewController(navigation.Options{Now: clk.Now})
	return NewSessionStore(ctrl, idle, clk.Now), clk
}

func signIn(c *navigation.Controller) error {
	_, err := c.SignIn(navigation.SignInCredentials{Password: "pw"})
	return err
}

func TestCurrentWithoutAssessment(t *testing.T) {
	s, _ := newStore(0)
	if _, err := s.Current(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Current() err = %v, want ErrNotFound", err)
	}
}

func TestCurrentAfterSubmission(t *testing.T) {
	s, _ := newStore(0)
	err := s.Update(func(c *navigation.Controller) error {
		if err := signIn(c); err != nil {
			return err
		}
		in := estimate.Input{Location: "Pune", RooftopArea: 100, RoofMaterial: "RCC", Rainfall: 800, SoilType: "Clay", HouseholdDemand: 4}
		ticket, in, err := c.BeginSubmission(in)
		if err != nil {
			return err
		}
		c.CompleteSubmission(ticket, in, estimate.Estimate(in))
		return nil
	})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	a, err := s.Current()
	if err != nil {
		t.Fatalf("Current() error: %v", err)
	}
	if a.Result.SuggestedTankLitres != 3000 {
		t.Errorf("tank = %d, want 3000", a.Result.SuggestedTankLitres)
	}
}

func TestSweep(t *testing.T) {
	tests := []struct {
		name      string
		idle      time.Duration
		signIn    bool
		locating  bool
		wait      time.Duration
		wantReset bool
	}{
		{name: "idle session is reset", idle: time.Minute, signIn: true, wait: time.Minute, wantReset: true},
		{name: "recent activity is kept", idle: time.Minute, signIn: true, wait: 30 * time.Second},
		{name: "idle reset disabled", idle: 0, signIn: true, wait: time.Hour},
		{name: "pristine session untouched", idle: time.Minute, wait: time.Hour},
		{name: "busy session kept", idle: time.Minute, signIn: true, locating: true, wait: time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, clk := newStore(tt.idle)
			_ = s.Update(func(c *navigation.Controller) error {
				if tt.signIn {
					if err := signIn(c); err != nil {
						return err
					}
				}
				if tt.locating {
					_, err := c.BeginLocate()
					return err
				}
				return nil
			})

			clk.Advance(tt.wait)
			res := s.Sweep()
			if res.SessionReset != tt.wantReset {
				t.Fatalf("SessionReset = %v, want %v", res.SessionReset, tt.wantReset)
			}

			v := s.View()
			if tt.wantReset && (v.Screen != navigation.ScreenLanding || v.User != nil) {
				t.Errorf("view after reset = %+v", v)
			}
			if !tt.wantReset && tt.signIn && v.User == nil {
				t.Error("sweep dropped an active user")
			}
		})
	}
}

func TestSweepExpiresStatus(t *testing.T) {
	s, clk := newStore(0)
	_ = s.Update(func(c *navigation.Controller) error {
		if err := signIn(c); err != nil {
			return err
		}
		ticket, err := c.BeginLocate()
		if err != nil {
			return err
		}
		c.FailLocate(ticket, errors.New("boom"))
		return nil
	})

	if res := s.Sweep(); res.StatusExpired {
		t.Error("fresh status expired")
	}
	clk.Advance(navigation.DefaultStatusDismissAfter)
	if res := s.Sweep(); !res.StatusExpired {
		t.Error("stale status not expired")
	}
}

func TestConcurrentUpdates(t *testing.T) {
	s, _ := newStore(0)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			screens := navigation.Screens()
			_ = s.Update(func(c *navigation.Controller) error {
				c.Navigate(screens[i%len(screens)])
				return nil
			})
			_ = s.View()
		}(i)
	}
	wg.Wait()
	if !s.View().Screen.Known() {
		t.Error("store ended on an unknown screen")
	}
}
