// ABOUTME: Set model, one exercise slot within a training.
// ABOUTME: Ordered by OrderInTraining; owns an ordered sequence of rounds.
package models

import (
	"fmt"

	"github.com/mwestbrook/liftlog/internal/ident"
)

// Set represents one exercise slot within a training session.
type Set struct {
	ID              string  `json:"id" yaml:"id"`
	TrainingID      string  `json:"trainingId" yaml:"trainingId"`
	ExerciseID      string  `json:"exerciseId" yaml:"exerciseId"`
	OrderInTraining int     `json:"orderInTraining" yaml:"orderInTraining"`
	RestPeriod      *int    `json:"restPeriod,omitempty" yaml:"restPeriod,omitempty"`
	Notes           *string `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt       int64   `json:"createdAt" yaml:"createdAt"`
}

// SetInput is the caller-supplied shape for creating a set.
type SetInput struct {
	TrainingID      string
	ExerciseID      string
	OrderInTraining int
	RestPeriod      *int
	Notes           *string
}

// Validate checks the input before it reaches the store.
func (in SetInput) Validate() error {
	if in.TrainingID == "" {
		return fmt.Errorf("set training id is required")
	}
	if in.ExerciseID == "" {
		return fmt.Errorf("set exercise id is required")
	}
	if in.OrderInTraining < 0 {
		return fmt.Errorf("order in training must not be negative, got %d", in.OrderInTraining)
	}
	if in.RestPeriod != nil && *in.RestPeriod < 0 {
		return fmt.Errorf("rest period must not be negative, got %d", *in.RestPeriod)
	}
	return nil
}

// NewSet builds a Set from input, generating the ID and creation timestamp.
func NewSet(in SetInput) *Set {
	return &Set{
		ID:              ident.NewID(),
		TrainingID:      in.TrainingID,
		ExerciseID:      in.ExerciseID,
		OrderInTraining: in.OrderInTraining,
		RestPeriod:      in.RestPeriod,
		Notes:           in.Notes,
		CreatedAt:       ident.Timestamp(),
	}
}

// SetUpdate carries optional replacement fields for a set.
type SetUpdate struct {
	TrainingID      *string
	ExerciseID      *string
	OrderInTraining *int
	RestPeriod      *int
	Notes           *string
}

// Apply merges the update over an existing set.
func (u SetUpdate) Apply(s *Set) {
	if u.TrainingID != nil {
		s.TrainingID = *u.TrainingID
	}
	if u.ExerciseID != nil {
		s.ExerciseID = *u.ExerciseID
	}
	if u.OrderInTraining != nil {
		s.OrderInTraining = *u.OrderInTraining
	}
	if u.RestPeriod != nil {
		s.RestPeriod = u.RestPeriod
	}
	if u.Notes != nil {
		s.Notes = u.Notes
	}
}

// Validate checks the update fields that carry constraints.
func (u SetUpdate) Validate() error {
	if u.TrainingID != nil && *u.TrainingID == "" {
		return fmt.Errorf("set training id cannot be empty")
	}
	if u.ExerciseID != nil && *u.ExerciseID == "" {
		return fmt.Errorf("set exercise id cannot be empty")
	}
	if u.OrderInTraining != nil && *u.OrderInTraining < 0 {
		return fmt.Errorf("order in training must not be negative, got %d", *u.OrderInTraining)
	}
	if u.RestPeriod != nil && *u.RestPeriod < 0 {
		return fmt.Errorf("rest period must not be negative, got %d", *u.RestPeriod)
	}
	return nil
}
