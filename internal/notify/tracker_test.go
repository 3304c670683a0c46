// ABOUTME: Tests for the training session tracker.
// ABOUTME: Drives tick directly instead of waiting on the cron cadence.
package notify

import (
	"sync"
	"testing"
	"time"
)

// recorder captures tracker callbacks for assertions.
type recorder struct {
	mu      sync.Mutex
	updates []time.Duration
	cleared []string
}

func (r *recorder) notify(_ string, _ int64, elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, elapsed)
}

func (r *recorder) clear(trainingID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cleared = append(r.cleared, trainingID)
}

func TestTrackerTickReportsElapsedMinutes(t *testing.T) {
	rec := &recorder{}
	tracker := NewTracker(rec.notify, rec.clear)

	start := time.Now().Add(-5*time.Minute - 10*time.Second).UnixMilli()
	tracker.TrainingStarted("t1", start)
	defer tracker.TrainingEnded()

	if !tracker.Tracking() {
		t.Fatal("tracker not tracking after start")
	}

	tracker.tick()

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.updates) != 1 {
		t.Fatalf("expected 1 update, got %d", len(rec.updates))
	}
	if rec.updates[0] != 5*time.Minute {
		t.Errorf("got elapsed %v, want 5m", rec.updates[0])
	}
}

func TestTrackerTickBeforeStartIsNoop(t *testing.T) {
	rec := &recorder{}
	tracker := NewTracker(rec.notify, rec.clear)

	tracker.tick()

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.updates) != 0 {
		t.Errorf("tick without session produced %d updates", len(rec.updates))
	}
}

func TestTrackerEndedInvokesClear(t *testing.T) {
	rec := &recorder{}
	tracker := NewTracker(rec.notify, rec.clear)

	tracker.TrainingStarted("t1", time.Now().UnixMilli())
	tracker.TrainingEnded()

	if tracker.Tracking() {
		t.Error("tracker still tracking after end")
	}
	rec.mu.Lock()
	cleared := append([]string(nil), rec.cleared...)
	rec.mu.Unlock()
	if len(cleared) != 1 || cleared[0] != "t1" {
		t.Errorf("clear callback not invoked: %v", cleared)
	}

	// Ending twice must not re-fire the clear callback
	tracker.TrainingEnded()
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.cleared) != 1 {
		t.Errorf("clear fired again on second end: %v", rec.cleared)
	}
}

func TestTrackerRestartReplacesSession(t *testing.T) {
	rec := &recorder{}
	tracker := NewTracker(rec.notify, rec.clear)

	tracker.TrainingStarted("t1", time.Now().UnixMilli())
	tracker.TrainingStarted("t2", time.Now().UnixMilli())
	defer tracker.TrainingEnded()

	tracker.tick()

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.updates) != 1 {
		t.Fatalf("expected 1 update, got %d", len(rec.updates))
	}
}

func TestTrackerFutureStartClampsToZero(t *testing.T) {
	rec := &recorder{}
	tracker := NewTracker(rec.notify, nil)

	tracker.TrainingStarted("t1", time.Now().Add(time.Hour).UnixMilli())
	defer tracker.TrainingEnded()

	tracker.tick()

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.updates) != 1 || rec.updates[0] != 0 {
		t.Errorf("future start not clamped: %v", rec.updates)
	}
}
