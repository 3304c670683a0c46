// ABOUTME: Tests for composite queries: training details, exercise history,
// ABOUTME: last-used weight with exclusion, and the bulk training constructor.
package store

import (
	"errors"
	"testing"

	"github.com/mwestbrook/liftlog/internal/models"
)

// seedTrainingWithRounds creates one training at startTime holding a single
// set for the exercise with the given round weights.
func seedTrainingWithRounds(t *testing.T, s *Store, exerciseID string, startTime int64, weights ...float64) *models.Training {
	t.Helper()
	tr, err := s.CreateTraining(models.TrainingInput{StartTime: startTime, EndTime: startTime + 3600000})
	if err != nil {
		t.Fatalf("CreateTraining failed: %v", err)
	}
	set, err := s.CreateSet(models.SetInput{TrainingID: tr.ID, ExerciseID: exerciseID})
	if err != nil {
		t.Fatalf("CreateSet failed: %v", err)
	}
	for i, w := range weights {
		if _, err := s.CreateRound(models.RoundInput{SetID: set.ID, OrderInSet: i, Weight: w, Reps: 5}); err != nil {
			t.Fatalf("CreateRound failed: %v", err)
		}
	}
	return tr
}

func TestTrainingDetails(t *testing.T) {
	s := newTestStore(t)
	ex, tr := seedSetFixture(t, s)

	second, err := s.CreateSet(models.SetInput{TrainingID: tr.ID, ExerciseID: ex.ID, OrderInTraining: 1})
	if err != nil {
		t.Fatalf("CreateSet failed: %v", err)
	}
	first, err := s.CreateSet(models.SetInput{TrainingID: tr.ID, ExerciseID: ex.ID, OrderInTraining: 0})
	if err != nil {
		t.Fatalf("CreateSet failed: %v", err)
	}
	if _, err := s.CreateRound(models.RoundInput{SetID: first.ID, Weight: 100, Reps: 5}); err != nil {
		t.Fatalf("CreateRound failed: %v", err)
	}

	details, err := s.TrainingDetails(tr.ID)
	if err != nil {
		t.Fatalf("TrainingDetails failed: %v", err)
	}
	if details.Training.ID != tr.ID {
		t.Errorf("wrong training: %s", details.Training.ID)
	}
	if len(details.Sets) != 2 {
		t.Fatalf("expected 2 sets, got %d", len(details.Sets))
	}
	if details.Sets[0].ID != first.ID || details.Sets[1].ID != second.ID {
		t.Error("sets not in position order")
	}
	if details.Sets[0].Exercise.Name != ex.Name {
		t.Errorf("exercise not hydrated: %+v", details.Sets[0].Exercise)
	}
	if len(details.Sets[0].Rounds) != 1 || details.Sets[0].Rounds[0].Weight != 100 {
		t.Errorf("rounds not hydrated: %+v", details.Sets[0].Rounds)
	}
}

func TestHistoryOrdering(t *testing.T) {
	s := newTestStore(t)
	ex, err := s.CreateExercise(models.ExerciseInput{Name: "Overhead Press"})
	if err != nil {
		t.Fatalf("CreateExercise failed: %v", err)
	}

	older := seedTrainingWithRounds(t, s, ex.ID, 1000, 40)
	newer := seedTrainingWithRounds(t, s, ex.ID, 2000, 42.5)

	history, err := s.History(ex.ID)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history.History) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(history.History))
	}
	if history.History[0].Training.ID != newer.ID || history.History[1].Training.ID != older.ID {
		t.Error("history not sorted most recent first")
	}
	if len(history.History[0].Sets) != 1 || history.History[0].Sets[0].Rounds[0].Weight != 42.5 {
		t.Errorf("history sets not hydrated: %+v", history.History[0].Sets)
	}
}

func TestHistorySkipsDeletedTraining(t *testing.T) {
	s := newTestStore(t)
	ex, err := s.CreateExercise(models.ExerciseInput{Name: "Curl"})
	if err != nil {
		t.Fatalf("CreateExercise failed: %v", err)
	}

	kept := seedTrainingWithRounds(t, s, ex.ID, 1000, 20)
	gone := seedTrainingWithRounds(t, s, ex.ID, 2000, 22.5)

	// Delete only the training record; its sets stay behind
	if err := s.DeleteTraining(gone.ID); err != nil {
		t.Fatalf("DeleteTraining failed: %v", err)
	}

	history, err := s.History(ex.ID)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history.History) != 1 || history.History[0].Training.ID != kept.ID {
		t.Errorf("orphaned sets not skipped: %d entries", len(history.History))
	}
}

func TestLastUsedWeightExcludesCurrentTraining(t *testing.T) {
	s := newTestStore(t)
	ex, err := s.CreateExercise(models.ExerciseInput{Name: "Lat Pulldown"})
	if err != nil {
		t.Fatalf("CreateExercise failed: %v", err)
	}

	seedTrainingWithRounds(t, s, ex.ID, 1000, 10)
	current := seedTrainingWithRounds(t, s, ex.ID, 2000, 20)

	// The in-progress training must not see its own entries as history
	last, err := s.LastUsedWeight(ex.ID, current.ID)
	if err != nil {
		t.Fatalf("LastUsedWeight failed: %v", err)
	}
	if last.Weight != 10 {
		t.Errorf("exclusion ignored: got weight %v, want 10", last.Weight)
	}

	// Without exclusion the newest entry wins
	last, err = s.LastUsedWeight(ex.ID, "")
	if err != nil {
		t.Fatalf("LastUsedWeight failed: %v", err)
	}
	if last.Weight != 20 {
		t.Errorf("got weight %v, want 20", last.Weight)
	}
}

func TestLastUsedWeightTakesLastRoundOfLastSet(t *testing.T) {
	s := newTestStore(t)
	ex, err := s.CreateExercise(models.ExerciseInput{Name: "Bench Press"})
	if err != nil {
		t.Fatalf("CreateExercise failed: %v", err)
	}

	tr, err := s.CreateTraining(models.TrainingInput{StartTime: 1000, EndTime: 5000})
	if err != nil {
		t.Fatalf("CreateTraining failed: %v", err)
	}
	warmup, err := s.CreateSet(models.SetInput{TrainingID: tr.ID, ExerciseID: ex.ID, OrderInTraining: 0})
	if err != nil {
		t.Fatalf("CreateSet failed: %v", err)
	}
	working, err := s.CreateSet(models.SetInput{TrainingID: tr.ID, ExerciseID: ex.ID, OrderInTraining: 1})
	if err != nil {
		t.Fatalf("CreateSet failed: %v", err)
	}
	if _, err := s.CreateRound(models.RoundInput{SetID: warmup.ID, Weight: 40, Reps: 10}); err != nil {
		t.Fatalf("CreateRound failed: %v", err)
	}
	if _, err := s.CreateRound(models.RoundInput{SetID: working.ID, OrderInSet: 0, Weight: 60, Reps: 8}); err != nil {
		t.Fatalf("CreateRound failed: %v", err)
	}
	if _, err := s.CreateRound(models.RoundInput{SetID: working.ID, OrderInSet: 1, Weight: 62.5, Reps: 6}); err != nil {
		t.Fatalf("CreateRound failed: %v", err)
	}

	last, err := s.LastUsedWeight(ex.ID, "")
	if err != nil {
		t.Fatalf("LastUsedWeight failed: %v", err)
	}
	if last.Weight != 62.5 || last.Reps != 6 || last.Date != 1000 {
		t.Errorf("got %+v, want weight 62.5, reps 6, date 1000", last)
	}
}

func TestLastUsedWeightNoHistory(t *testing.T) {
	s := newTestStore(t)
	ex, err := s.CreateExercise(models.ExerciseInput{Name: "Dip"})
	if err != nil {
		t.Fatalf("CreateExercise failed: %v", err)
	}

	if _, err := s.LastUsedWeight(ex.ID, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound with no history, got %v", err)
	}

	// A last set with zero rounds counts as no history
	seedTrainingWithRounds(t, s, ex.ID, 1000)
	if _, err := s.LastUsedWeight(ex.ID, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound with empty last set, got %v", err)
	}
}

func TestLastSetRounds(t *testing.T) {
	s := newTestStore(t)
	ex, err := s.CreateExercise(models.ExerciseInput{Name: "Leg Press"})
	if err != nil {
		t.Fatalf("CreateExercise failed: %v", err)
	}

	seedTrainingWithRounds(t, s, ex.ID, 1000, 120, 130, 140)

	last, err := s.LastSetRounds(ex.ID, "")
	if err != nil {
		t.Fatalf("LastSetRounds failed: %v", err)
	}
	if len(last.Rounds) != 3 || last.Date != 1000 {
		t.Fatalf("got %d rounds at date %d", len(last.Rounds), last.Date)
	}
	for i, want := range []float64{120, 130, 140} {
		if last.Rounds[i].Weight != want {
			t.Errorf("round %d: got weight %v, want %v", i, last.Rounds[i].Weight, want)
		}
	}
}

func TestAddCompleteTraining(t *testing.T) {
	s := newTestStore(t)

	squat, err := s.CreateExercise(models.ExerciseInput{Name: "Squat"})
	if err != nil {
		t.Fatalf("CreateExercise failed: %v", err)
	}
	bench, err := s.CreateExercise(models.ExerciseInput{Name: "Bench Press"})
	if err != nil {
		t.Fatalf("CreateExercise failed: %v", err)
	}

	details, err := s.AddCompleteTraining(CompleteTrainingInput{
		Training: models.TrainingInput{Name: strPtr("imported"), StartTime: 1000, EndTime: 5000},
		Exercises: []ExerciseGroup{
			{ExerciseID: squat.ID, Sets: []SetSpec{
				{Rounds: []RoundSpec{{Weight: 100, Reps: 5}, {Weight: 105, Reps: 3}}},
				{Rounds: []RoundSpec{{Weight: 105, Reps: 3}}},
			}},
			{ExerciseID: bench.ID, Sets: []SetSpec{
				{Rounds: []RoundSpec{{Weight: 60, Reps: 8}}},
			}},
		},
	})
	if err != nil {
		t.Fatalf("AddCompleteTraining failed: %v", err)
	}

	if len(details.Sets) != 3 {
		t.Fatalf("expected 3 sets, got %d", len(details.Sets))
	}
	// Positions run sequentially across exercise groups
	for i, set := range details.Sets {
		if set.OrderInTraining != i {
			t.Errorf("set %d: got order %d", i, set.OrderInTraining)
		}
	}
	if details.Sets[2].Exercise.ID != bench.ID {
		t.Errorf("group order not preserved: %s", details.Sets[2].Exercise.Name)
	}
	if len(details.Sets[0].Rounds) != 2 || details.Sets[0].Rounds[1].OrderInSet != 1 {
		t.Errorf("rounds not positioned: %+v", details.Sets[0].Rounds)
	}

	// Everything is queryable afterwards
	persisted, err := s.TrainingDetails(details.Training.ID)
	if err != nil {
		t.Fatalf("TrainingDetails failed: %v", err)
	}
	if len(persisted.Sets) != 3 {
		t.Errorf("persisted training has %d sets", len(persisted.Sets))
	}
}

func TestAddCompleteTrainingUnknownExerciseAborts(t *testing.T) {
	s := newTestStore(t)

	squat, err := s.CreateExercise(models.ExerciseInput{Name: "Squat"})
	if err != nil {
		t.Fatalf("CreateExercise failed: %v", err)
	}

	_, err = s.AddCompleteTraining(CompleteTrainingInput{
		Training: models.TrainingInput{StartTime: 1000, EndTime: 5000},
		Exercises: []ExerciseGroup{
			{ExerciseID: squat.ID, Sets: []SetSpec{{Rounds: []RoundSpec{{Weight: 100, Reps: 5}}}}},
			{ExerciseID: "missing", Sets: []SetSpec{{Rounds: []RoundSpec{{Weight: 60, Reps: 8}}}}},
		},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown exercise, got %v", err)
	}

	// Nothing from the failed bulk create may survive
	trainings, err := s.AllTrainings()
	if err != nil {
		t.Fatalf("AllTrainings failed: %v", err)
	}
	if len(trainings) != 0 {
		t.Errorf("training committed despite failure: %d", len(trainings))
	}
	sets, err := s.AllSets()
	if err != nil {
		t.Fatalf("AllSets failed: %v", err)
	}
	if len(sets) != 0 {
		t.Errorf("sets committed despite failure: %d", len(sets))
	}
	rounds, err := s.AllRounds()
	if err != nil {
		t.Fatalf("AllRounds failed: %v", err)
	}
	if len(rounds) != 0 {
		t.Errorf("rounds committed despite failure: %d", len(rounds))
	}
}
