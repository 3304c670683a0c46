// ABOUTME: Tests for Exercise model construction and validation.
// ABOUTME: Verifies defaults for weight unit and steps.
package models

import "testing"

func TestNewExerciseDefaults(t *testing.T) {
	e := NewExercise(ExerciseInput{Name: "Bench Press"})

	if e.ID == "" {
		t.Error("expected generated ID")
	}
	if e.CreatedAt == 0 {
		t.Error("expected creation timestamp")
	}
	if e.WeightUnit != WeightUnitKg {
		t.Errorf("expected default unit kg, got %q", e.WeightUnit)
	}
	if e.Steps != 1 {
		t.Errorf("expected default steps 1, got %v", e.Steps)
	}
}

func TestNewExerciseExplicitFields(t *testing.T) {
	e := NewExercise(ExerciseInput{Name: "Squat", WeightUnit: WeightUnitLb, Steps: 2.5})

	if e.WeightUnit != WeightUnitLb {
		t.Errorf("expected lb, got %q", e.WeightUnit)
	}
	if e.Steps != 2.5 {
		t.Errorf("expected steps 2.5, got %v", e.Steps)
	}
}

func TestExerciseInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   ExerciseInput
		wantErr bool
	}{
		{"valid", ExerciseInput{Name: "Deadlift"}, false},
		{"missing name", ExerciseInput{}, true},
		{"bad unit", ExerciseInput{Name: "Deadlift", WeightUnit: "st"}, true},
		{"negative steps", ExerciseInput{Name: "Deadlift", Steps: -1}, true},
		{"fractional steps", ExerciseInput{Name: "Deadlift", Steps: 0.5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExerciseUpdateApply(t *testing.T) {
	e := NewExercise(ExerciseInput{Name: "Row"})
	desc := "cable variant"
	steps := 5.0

	ExerciseUpdate{Description: &desc, Steps: &steps}.Apply(e)

	if e.Name != "Row" {
		t.Errorf("name should be preserved, got %q", e.Name)
	}
	if e.Description == nil || *e.Description != desc {
		t.Errorf("description not applied: %v", e.Description)
	}
	if e.Steps != 5.0 {
		t.Errorf("steps not applied: %v", e.Steps)
	}
	if e.WeightUnit != WeightUnitKg {
		t.Errorf("unit should be preserved, got %q", e.WeightUnit)
	}
}
