// ABOUTME: Training model for workout sessions bounded by start/end timestamps.
// ABOUTME: EndTime zero persists the "still in progress" state.
package models

import (
	"fmt"

	"github.com/mwestbrook/liftlog/internal/ident"
)

// Training represents one workout session. An EndTime of zero means the
// session is still open; callers use Active and Finish instead of comparing
// the sentinel directly.
type Training struct {
	ID        string  `json:"id" yaml:"id"`
	Name      *string `json:"name,omitempty" yaml:"name,omitempty"`
	WarmUp    *string `json:"warmUp,omitempty" yaml:"warmUp,omitempty"`
	CalmDown  *string `json:"calmDown,omitempty" yaml:"calmDown,omitempty"`
	StartTime int64   `json:"startTime" yaml:"startTime"`
	EndTime   int64   `json:"endTime" yaml:"endTime"`
	Notes     *string `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt int64   `json:"createdAt" yaml:"createdAt"`
}

// Active reports whether the session is still open.
func (t *Training) Active() bool {
	return t.EndTime == 0
}

// Finish closes the session at the given timestamp.
func (t *Training) Finish(endTime int64) {
	t.EndTime = endTime
}

// TrainingInput is the caller-supplied shape for creating a training.
// StartTime defaults to now when zero; EndTime zero starts the session open.
type TrainingInput struct {
	Name      *string
	WarmUp    *string
	CalmDown  *string
	StartTime int64
	EndTime   int64
	Notes     *string
}

// Validate checks the input before it reaches the store.
func (in TrainingInput) Validate() error {
	if in.StartTime < 0 {
		return fmt.Errorf("start time must not be negative, got %d", in.StartTime)
	}
	if in.EndTime < 0 {
		return fmt.Errorf("end time must not be negative, got %d", in.EndTime)
	}
	return nil
}

// NewTraining builds a Training from input, generating the ID and creation
// timestamp and defaulting StartTime to the current time.
func NewTraining(in TrainingInput) *Training {
	start := in.StartTime
	if start == 0 {
		start = ident.Timestamp()
	}
	return &Training{
		ID:        ident.NewID(),
		Name:      in.Name,
		WarmUp:    in.WarmUp,
		CalmDown:  in.CalmDown,
		StartTime: start,
		EndTime:   in.EndTime,
		Notes:     in.Notes,
		CreatedAt: ident.Timestamp(),
	}
}

// TrainingUpdate carries optional replacement fields for a training.
type TrainingUpdate struct {
	Name      *string
	WarmUp    *string
	CalmDown  *string
	StartTime *int64
	EndTime   *int64
	Notes     *string
}

// Apply merges the update over an existing training.
func (u TrainingUpdate) Apply(t *Training) {
	if u.Name != nil {
		t.Name = u.Name
	}
	if u.WarmUp != nil {
		t.WarmUp = u.WarmUp
	}
	if u.CalmDown != nil {
		t.CalmDown = u.CalmDown
	}
	if u.StartTime != nil {
		t.StartTime = *u.StartTime
	}
	if u.EndTime != nil {
		t.EndTime = *u.EndTime
	}
	if u.Notes != nil {
		t.Notes = u.Notes
	}
}

// Validate checks the update fields that carry constraints.
func (u TrainingUpdate) Validate() error {
	if u.StartTime != nil && *u.StartTime < 0 {
		return fmt.Errorf("start time must not be negative, got %d", *u.StartTime)
	}
	if u.EndTime != nil && *u.EndTime < 0 {
		return fmt.Errorf("end time must not be negative, got %d", *u.EndTime)
	}
	return nil
}
