package scheduler

import (
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/i474232898/neersanchay/internal/store"
)

type countingSweeper struct {
	calls int32
}

func (c *countingSweeper) Sweep() store.SweepResult {
	atomic.AddInt32(&c.calls, 1)
	return store.SweepResult{StatusExpired: true}
}

func TestSchedulerRunsSweep(t *testing.T) {
	sw := &countingSweeper{}
	s := New(sw, time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer s.Stop()

	// gocron runs the first iteration immediately.
	deadline := time.Now().Add(2 * time.Second)
	for atomic.LoadInt32(&sw.calls) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("sweep never ran")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestStopWithoutStart(t *testing.T) {
	s := New(&countingSweeper{}, time.Second, nil)
	s.Stop()
}
