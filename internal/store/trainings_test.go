// ABOUTME: Tests for training CRUD, time-ordered listings, and the active scan.
// ABOUTME: Covers the cascade delete across sets and rounds.
package store

import (
	"errors"
	"testing"
	"time"

	"github.com/mwestbrook/liftlog/internal/models"
)

func TestCreateAndGetTraining(t *testing.T) {
	s := newTestStore(t)

	tr, err := s.CreateTraining(models.TrainingInput{
		Name:      strPtr("push day"),
		StartTime: 1000,
		EndTime:   2000,
	})
	if err != nil {
		t.Fatalf("CreateTraining failed: %v", err)
	}

	got, err := s.GetTraining(tr.ID)
	if err != nil {
		t.Fatalf("GetTraining failed: %v", err)
	}
	if got.StartTime != 1000 || got.EndTime != 2000 {
		t.Errorf("timestamps mismatch: %+v", got)
	}
	if got.Name == nil || *got.Name != "push day" {
		t.Errorf("name mismatch: %v", got.Name)
	}
}

func TestTrainingsByStartTime(t *testing.T) {
	s := newTestStore(t)

	for _, start := range []int64{3000, 1000, 2000} {
		if _, err := s.CreateTraining(models.TrainingInput{StartTime: start, EndTime: start + 100}); err != nil {
			t.Fatalf("CreateTraining failed: %v", err)
		}
	}

	trainings, err := s.TrainingsByStartTime(0)
	if err != nil {
		t.Fatalf("TrainingsByStartTime failed: %v", err)
	}
	if len(trainings) != 3 {
		t.Fatalf("expected 3 trainings, got %d", len(trainings))
	}
	for i, want := range []int64{3000, 2000, 1000} {
		if trainings[i].StartTime != want {
			t.Errorf("position %d: got start %d, want %d", i, trainings[i].StartTime, want)
		}
	}

	limited, err := s.TrainingsByStartTime(2)
	if err != nil {
		t.Fatalf("TrainingsByStartTime with limit failed: %v", err)
	}
	if len(limited) != 2 || limited[0].StartTime != 3000 {
		t.Errorf("limit not applied: %d entries", len(limited))
	}
}

func TestTrainingsByDateRange(t *testing.T) {
	s := newTestStore(t)

	for _, start := range []int64{1000, 2000, 3000, 4000} {
		if _, err := s.CreateTraining(models.TrainingInput{StartTime: start, EndTime: start + 100}); err != nil {
			t.Fatalf("CreateTraining failed: %v", err)
		}
	}

	// Bounds are inclusive
	got, err := s.TrainingsByDateRange(2000, 3000)
	if err != nil {
		t.Fatalf("TrainingsByDateRange failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 trainings in range, got %d", len(got))
	}
	if got[0].StartTime != 3000 || got[1].StartTime != 2000 {
		t.Errorf("range results not sorted descending: %d, %d", got[0].StartTime, got[1].StartTime)
	}
}

func TestActiveTraining(t *testing.T) {
	s := newTestStore(t)

	now := time.Now().UnixMilli()

	// Every training finished in the past: no active session
	if _, err := s.CreateTraining(models.TrainingInput{StartTime: now - 10000, EndTime: now - 5000}); err != nil {
		t.Fatalf("CreateTraining failed: %v", err)
	}
	if _, err := s.ActiveTraining(); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound with no active training, got %v", err)
	}

	// One open session: exactly that one is returned
	open, err := s.CreateTraining(models.TrainingInput{StartTime: now - 1000, EndTime: 0})
	if err != nil {
		t.Fatalf("CreateTraining failed: %v", err)
	}
	active, err := s.ActiveTraining()
	if err != nil {
		t.Fatalf("ActiveTraining failed: %v", err)
	}
	if active.ID != open.ID {
		t.Errorf("wrong active training: got %s, want %s", active.ID, open.ID)
	}
	if !active.Active() {
		t.Error("returned training should report Active()")
	}
}

func TestFinishTraining(t *testing.T) {
	s := newTestStore(t)

	tr, err := s.CreateTraining(models.TrainingInput{StartTime: 1000, EndTime: 0})
	if err != nil {
		t.Fatalf("CreateTraining failed: %v", err)
	}

	finished, err := s.FinishTraining(tr.ID, 5000)
	if err != nil {
		t.Fatalf("FinishTraining failed: %v", err)
	}
	if finished.Active() {
		t.Error("finished training still reports active")
	}
	if finished.EndTime != 5000 {
		t.Errorf("end time not applied: %d", finished.EndTime)
	}

	if _, err := s.FinishTraining(tr.ID, 0); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for zero end time, got %v", err)
	}
}

func TestUpdateTrainingMissingID(t *testing.T) {
	s := newTestStore(t)

	end := int64(5000)
	_, err := s.UpdateTraining("missing", models.TrainingUpdate{EndTime: &end})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteTrainingCascade(t *testing.T) {
	s := newTestStore(t)

	ex, err := s.CreateExercise(models.ExerciseInput{Name: "Squat"})
	if err != nil {
		t.Fatalf("CreateExercise failed: %v", err)
	}
	tr, err := s.CreateTraining(models.TrainingInput{StartTime: 1000, EndTime: 0})
	if err != nil {
		t.Fatalf("CreateTraining failed: %v", err)
	}
	set, err := s.CreateSet(models.SetInput{TrainingID: tr.ID, ExerciseID: ex.ID})
	if err != nil {
		t.Fatalf("CreateSet failed: %v", err)
	}
	round, err := s.CreateRound(models.RoundInput{SetID: set.ID, Weight: 100, Reps: 5})
	if err != nil {
		t.Fatalf("CreateRound failed: %v", err)
	}

	if err := s.DeleteTrainingCascade(tr.ID); err != nil {
		t.Fatalf("DeleteTrainingCascade failed: %v", err)
	}

	if _, err := s.GetTraining(tr.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("training survived cascade: %v", err)
	}
	if _, err := s.GetSet(set.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("set survived cascade: %v", err)
	}
	if _, err := s.GetRound(round.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("round survived cascade: %v", err)
	}

	// The exercise is unreferenced again and may be deleted
	if err := s.DeleteExercise(ex.ID); err != nil {
		t.Errorf("exercise still considered in use after cascade: %v", err)
	}
}

func TestDeleteTrainingIdempotent(t *testing.T) {
	s := newTestStore(t)

	if err := s.DeleteTraining("missing"); err != nil {
		t.Errorf("delete of missing training should be a no-op, got %v", err)
	}
	if err := s.DeleteTrainingCascade("missing"); err != nil {
		t.Errorf("cascade delete of missing training should be a no-op, got %v", err)
	}
}
