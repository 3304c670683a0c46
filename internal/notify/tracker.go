// ABOUTME: Tracker reports elapsed time for the active training session.
// ABOUTME: A cron job fires every minute while a session is open.
package notify

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"
)

// Func receives elapsed-time updates for the tracked training.
type Func func(trainingID string, startTime int64, elapsed time.Duration)

// ClearFunc is invoked once when tracking stops.
type ClearFunc func(trainingID string)

// Tracker fires a minute-cadence callback while a training session is open.
// It knows nothing about the store: callers hand it the id and start time
// when a session begins and tell it when the session ends.
type Tracker struct {
	mu         sync.Mutex
	cron       *cron.Cron
	trainingID string
	startTime  int64
	notify     Func
	clear      ClearFunc
}

// NewTracker builds a Tracker with the given callbacks. clear may be nil.
func NewTracker(notify Func, clear ClearFunc) *Tracker {
	return &Tracker{notify: notify, clear: clear}
}

// TrainingStarted begins tracking the session. A previous session still
// being tracked is stopped first.
func (t *Tracker) TrainingStarted(trainingID string, startTime int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	t.trainingID = trainingID
	t.startTime = startTime

	c := cron.New()
	if _, err := c.AddFunc("@every 1m", t.tick); err != nil {
		log.Error("schedule training tracker", "error", err)
		return
	}
	c.Start()
	t.cron = c
	log.Debug("tracking training", "id", trainingID)
}

// TrainingEnded stops the job and invokes the clear callback.
func (t *Tracker) TrainingEnded() {
	t.mu.Lock()
	trainingID := t.trainingID
	t.stopLocked()
	t.trainingID = ""
	t.startTime = 0
	clear := t.clear
	t.mu.Unlock()

	if trainingID != "" && clear != nil {
		clear(trainingID)
	}
}

// Tracking reports whether a session is currently tracked.
func (t *Tracker) Tracking() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.trainingID != ""
}

// tick computes elapsed time since session start and notifies.
func (t *Tracker) tick() {
	t.mu.Lock()
	trainingID := t.trainingID
	startTime := t.startTime
	notify := t.notify
	t.mu.Unlock()

	if trainingID == "" || notify == nil {
		return
	}
	elapsed := time.Since(time.UnixMilli(startTime)).Truncate(time.Minute)
	if elapsed < 0 {
		elapsed = 0
	}
	notify(trainingID, startTime, elapsed)
}

func (t *Tracker) stopLocked() {
	if t.cron != nil {
		t.cron.Stop()
		t.cron = nil
	}
}
