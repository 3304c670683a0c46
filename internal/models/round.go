// ABOUTME: Round model, one weight-by-reps entry within a set.
// ABOUTME: Ordered by OrderInSet within its owning set.
package models

import (
	"fmt"

	"github.com/mwestbrook/liftlog/internal/ident"
)

// Round represents one performed weight/reps entry within a set.
type Round struct {
	ID         string  `json:"id" yaml:"id"`
	SetID      string  `json:"setId" yaml:"setId"`
	OrderInSet int     `json:"orderInSet" yaml:"orderInSet"`
	Weight     float64 `json:"weight" yaml:"weight"`
	Reps       int     `json:"reps" yaml:"reps"`
	Notes      *string `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt  int64   `json:"createdAt" yaml:"createdAt"`
}

// RoundInput is the caller-supplied shape for creating a round.
type RoundInput struct {
	SetID      string
	OrderInSet int
	Weight     float64
	Reps       int
	Notes      *string
}

// Validate checks the input before it reaches the store.
func (in RoundInput) Validate() error {
	if in.SetID == "" {
		return fmt.Errorf("round set id is required")
	}
	if in.OrderInSet < 0 {
		return fmt.Errorf("order in set must not be negative, got %d", in.OrderInSet)
	}
	if in.Weight < 0 {
		return fmt.Errorf("weight must not be negative, got %v", in.Weight)
	}
	if in.Reps < 0 {
		return fmt.Errorf("reps must not be negative, got %d", in.Reps)
	}
	return nil
}

// NewRound builds a Round from input, generating the ID and creation timestamp.
func NewRound(in RoundInput) *Round {
	return &Round{
		ID:         ident.NewID(),
		SetID:      in.SetID,
		OrderInSet: in.OrderInSet,
		Weight:     in.Weight,
		Reps:       in.Reps,
		Notes:      in.Notes,
		CreatedAt:  ident.Timestamp(),
	}
}

// RoundUpdate carries optional replacement fields for a round.
type RoundUpdate struct {
	SetID      *string
	OrderInSet *int
	Weight     *float64
	Reps       *int
	Notes      *string
}

// Apply merges the update over an existing round.
func (u RoundUpdate) Apply(r *Round) {
	if u.SetID != nil {
		r.SetID = *u.SetID
	}
	if u.OrderInSet != nil {
		r.OrderInSet = *u.OrderInSet
	}
	if u.Weight != nil {
		r.Weight = *u.Weight
	}
	if u.Reps != nil {
		r.Reps = *u.Reps
	}
	if u.Notes != nil {
		r.Notes = u.Notes
	}
}

// Validate checks the update fields that carry constraints.
func (u RoundUpdate) Validate() error {
	if u.SetID != nil && *u.SetID == "" {
		return fmt.Errorf("round set id cannot be empty")
	}
	if u.OrderInSet != nil && *u.OrderInSet < 0 {
		return fmt.Errorf("order in set must not be negative, got %d", *u.OrderInSet)
	}
	if u.Weight != nil && *u.Weight < 0 {
		return fmt.Errorf("weight must not be negative, got %v", *u.Weight)
	}
	if u.Reps != nil && *u.Reps < 0 {
		return fmt.Errorf("reps must not be negative, got %d", *u.Reps)
	}
	return nil
}
