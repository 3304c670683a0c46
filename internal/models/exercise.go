// ABOUTME: Exercise model for the movement library.
// ABOUTME: Exercises are named definitions reusable across trainings.
package models

import (
	"fmt"

	"github.com/mwestbrook/liftlog/internal/ident"
)

// WeightUnit is the unit an exercise's weights are entered in.
type WeightUnit string

const (
	WeightUnitKg WeightUnit = "kg"
	WeightUnitLb WeightUnit = "lb"
)

// DefaultSteps is the UI increment granularity applied when none is given.
const DefaultSteps = 1.0

// Exercise represents a named movement definition.
type Exercise struct {
	ID          string     `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Description *string    `json:"description,omitempty" yaml:"description,omitempty"`
	Type        *string    `json:"type,omitempty" yaml:"type,omitempty"`
	BodyPart    *string    `json:"bodyPart,omitempty" yaml:"bodyPart,omitempty"`
	WeightUnit  WeightUnit `json:"weightUnit" yaml:"weightUnit"`
	Steps       float64    `json:"steps" yaml:"steps"`
	CreatedAt   int64      `json:"createdAt" yaml:"createdAt"`
}

// ExerciseInput is the caller-supplied shape for creating an exercise.
// WeightUnit defaults to kg and Steps to 1 when left zero.
type ExerciseInput struct {
	Name        string
	Description *string
	Type        *string
	BodyPart    *string
	WeightUnit  WeightUnit
	Steps       float64
}

// Validate checks the input before it reaches the store.
func (in ExerciseInput) Validate() error {
	if in.Name == "" {
		return fmt.Errorf("exercise name is required")
	}
	if in.WeightUnit != "" && in.WeightUnit != WeightUnitKg && in.WeightUnit != WeightUnitLb {
		return fmt.Errorf("invalid weight unit %q", in.WeightUnit)
	}
	if in.Steps < 0 {
		return fmt.Errorf("steps must be positive, got %v", in.Steps)
	}
	return nil
}

// NewExercise builds an Exercise from input, applying defaults and
// generating the ID and creation timestamp.
func NewExercise(in ExerciseInput) *Exercise {
	unit := in.WeightUnit
	if unit == "" {
		unit = WeightUnitKg
	}
	steps := in.Steps
	if steps == 0 {
		steps = DefaultSteps
	}
	return &Exercise{
		ID:          ident.NewID(),
		Name:        in.Name,
		Description: in.Description,
		Type:        in.Type,
		BodyPart:    in.BodyPart,
		WeightUnit:  unit,
		Steps:       steps,
		CreatedAt:   ident.Timestamp(),
	}
}

// ExerciseUpdate carries optional replacement fields for an exercise.
// Present fields replace the stored value; absent fields are preserved.
type ExerciseUpdate struct {
	Name        *string
	Description *string
	Type        *string
	BodyPart    *string
	WeightUnit  *WeightUnit
	Steps       *float64
}

// Apply merges the update over an existing exercise.
func (u ExerciseUpdate) Apply(e *Exercise) {
	if u.Name != nil {
		e.Name = *u.Name
	}
	if u.Description != nil {
		e.Description = u.Description
	}
	if u.Type != nil {
		e.Type = u.Type
	}
	if u.BodyPart != nil {
		e.BodyPart = u.BodyPart
	}
	if u.WeightUnit != nil {
		e.WeightUnit = *u.WeightUnit
	}
	if u.Steps != nil {
		e.Steps = *u.Steps
	}
}

// Validate checks the update fields that carry constraints.
func (u ExerciseUpdate) Validate() error {
	if u.Name != nil && *u.Name == "" {
		return fmt.Errorf("exercise name cannot be empty")
	}
	if u.WeightUnit != nil && *u.WeightUnit != WeightUnitKg && *u.WeightUnit != WeightUnitLb {
		return fmt.Errorf("invalid weight unit %q", *u.WeightUnit)
	}
	if u.Steps != nil && *u.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %v", *u.Steps)
	}
	return nil
}
