// ABOUTME: Cross-entity queries composed from the per-entity repositories.
// ABOUTME: Nested training detail, exercise history, last-used lookups, bulk create.
package store

import (
	"fmt"
	"sort"

	badger "github.com/dgraph-io/badger/v3"
	"github.com/mwestbrook/liftlog/internal/models"
)

// SetDetail is a set hydrated with its exercise record and ordered rounds.
type SetDetail struct {
	models.Set `yaml:",inline"`
	Exercise   models.Exercise `json:"exercise" yaml:"exercise"`
	Rounds     []models.Round  `json:"rounds" yaml:"rounds"`
}

// TrainingWithDetails is a training hydrated with its ordered sets.
type TrainingWithDetails struct {
	models.Training `yaml:",inline"`
	Sets            []SetDetail `json:"sets" yaml:"sets"`
}

// SetWithRounds is a set hydrated with its ordered rounds only.
type SetWithRounds struct {
	models.Set `yaml:",inline"`
	Rounds     []models.Round `json:"rounds" yaml:"rounds"`
}

// HistoryEntry groups one training's sets of a single exercise.
type HistoryEntry struct {
	Training models.Training `json:"training" yaml:"training"`
	Sets     []SetWithRounds `json:"sets" yaml:"sets"`
}

// ExerciseHistory is every appearance of an exercise across trainings,
// most recent training first.
type ExerciseHistory struct {
	Exercise models.Exercise `json:"exercise" yaml:"exercise"`
	History  []HistoryEntry  `json:"history" yaml:"history"`
}

// LastUsed is the weight/reps of the final round of the final set the
// exercise was last performed with, dated by that training's start time.
type LastUsed struct {
	Weight float64 `json:"weight" yaml:"weight"`
	Reps   int     `json:"reps" yaml:"reps"`
	Date   int64   `json:"date" yaml:"date"`
}

// LastSet is the full round sequence of the set the exercise was last
// performed with, dated by that training's start time.
type LastSet struct {
	Rounds []models.Round `json:"rounds" yaml:"rounds"`
	Date   int64          `json:"date" yaml:"date"`
}

// TrainingDetails loads a training with its sets in position order, each
// carrying the full exercise record and ordered rounds. A set whose
// exercise has been deleted out-of-band fails the lookup; dangling
// references are a data defect, not a display case.
func (s *Store) TrainingDetails(trainingID string) (*TrainingWithDetails, error) {
	tr, err := s.GetTraining(trainingID)
	if err != nil {
		return nil, err
	}

	sets, err := s.SetsByTrainingID(trainingID)
	if err != nil {
		return nil, err
	}

	details := &TrainingWithDetails{Training: *tr}
	for _, set := range sets {
		ex, err := s.GetExercise(set.ExerciseID)
		if err != nil {
			return nil, fmt.Errorf("set %s references exercise %s: %w", set.ID, set.ExerciseID, err)
		}
		rounds, err := s.RoundsBySetID(set.ID)
		if err != nil {
			return nil, err
		}
		details.Sets = append(details.Sets, SetDetail{
			Set:      *set,
			Exercise: *ex,
			Rounds:   derefRounds(rounds),
		})
	}
	return details, nil
}

// History gathers every set referencing the exercise, grouped by owning
// training and sorted most recent training first. Sets within a group are
// in position order. Trainings deleted out from under their sets are
// skipped.
func (s *Store) History(exerciseID string) (*ExerciseHistory, error) {
	ex, err := s.GetExercise(exerciseID)
	if err != nil {
		return nil, err
	}

	sets, err := s.SetsByExerciseID(exerciseID)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]*models.Set)
	var trainingIDs []string
	for _, set := range sets {
		if _, ok := grouped[set.TrainingID]; !ok {
			trainingIDs = append(trainingIDs, set.TrainingID)
		}
		grouped[set.TrainingID] = append(grouped[set.TrainingID], set)
	}

	history := &ExerciseHistory{Exercise: *ex}
	for _, trainingID := range trainingIDs {
		tr, err := s.GetTraining(trainingID)
		if err != nil {
			continue
		}

		group := grouped[trainingID]
		sort.Slice(group, func(i, j int) bool {
			return group[i].OrderInTraining < group[j].OrderInTraining
		})

		entry := HistoryEntry{Training: *tr}
		for _, set := range group {
			rounds, err := s.RoundsBySetID(set.ID)
			if err != nil {
				return nil, err
			}
			entry.Sets = append(entry.Sets, SetWithRounds{
				Set:    *set,
				Rounds: derefRounds(rounds),
			})
		}
		history.History = append(history.History, entry)
	}

	sort.Slice(history.History, func(i, j int) bool {
		return history.History[i].Training.StartTime > history.History[j].Training.StartTime
	})
	return history, nil
}

// LastUsedWeight returns the weight and reps of the last round of the last
// set the exercise was performed with, skipping excludeTrainingID so an
// in-progress session does not see its own entries as history. Pass an
// empty excludeTrainingID to consider every training. ErrNotFound when no
// history remains or the last set has no rounds.
func (s *Store) LastUsedWeight(exerciseID, excludeTrainingID string) (*LastUsed, error) {
	entry, err := s.lastHistoryEntry(exerciseID, excludeTrainingID)
	if err != nil {
		return nil, err
	}

	lastSet := entry.Sets[len(entry.Sets)-1]
	if len(lastSet.Rounds) == 0 {
		return nil, fmt.Errorf("last used weight: %w", ErrNotFound)
	}
	lastRound := lastSet.Rounds[len(lastSet.Rounds)-1]

	return &LastUsed{
		Weight: lastRound.Weight,
		Reps:   lastRound.Reps,
		Date:   entry.Training.StartTime,
	}, nil
}

// LastSetRounds returns the whole round sequence of the last set the
// exercise was performed with, for display next to round entry. Same
// exclusion and absence rules as LastUsedWeight.
func (s *Store) LastSetRounds(exerciseID, excludeTrainingID string) (*LastSet, error) {
	entry, err := s.lastHistoryEntry(exerciseID, excludeTrainingID)
	if err != nil {
		return nil, err
	}

	lastSet := entry.Sets[len(entry.Sets)-1]
	if len(lastSet.Rounds) == 0 {
		return nil, fmt.Errorf("last set: %w", ErrNotFound)
	}

	return &LastSet{
		Rounds: lastSet.Rounds,
		Date:   entry.Training.StartTime,
	}, nil
}

// lastHistoryEntry returns the most recent history group after exclusion.
func (s *Store) lastHistoryEntry(exerciseID, excludeTrainingID string) (*HistoryEntry, error) {
	history, err := s.History(exerciseID)
	if err != nil {
		return nil, err
	}

	for i := range history.History {
		entry := &history.History[i]
		if excludeTrainingID != "" && entry.Training.ID == excludeTrainingID {
			continue
		}
		if len(entry.Sets) == 0 {
			continue
		}
		return entry, nil
	}
	return nil, fmt.Errorf("exercise history: %w", ErrNotFound)
}

// RoundSpec describes one round of a bulk-created training.
type RoundSpec struct {
	Weight float64
	Reps   int
	Notes  *string
}

// SetSpec describes one set of a bulk-created training.
type SetSpec struct {
	RestPeriod *int
	Notes      *string
	Rounds     []RoundSpec
}

// ExerciseGroup pairs an exercise with the sets performed for it.
type ExerciseGroup struct {
	ExerciseID string
	Sets       []SetSpec
}

// CompleteTrainingInput is the bulk-constructor input: one training plus
// exercise groups in performance order.
type CompleteTrainingInput struct {
	Training  models.TrainingInput
	Exercises []ExerciseGroup
}

// Validate checks every nested round and set before any write happens.
func (in CompleteTrainingInput) Validate() error {
	if err := in.Training.Validate(); err != nil {
		return err
	}
	for _, group := range in.Exercises {
		if group.ExerciseID == "" {
			return fmt.Errorf("exercise group missing exercise id")
		}
		for _, set := range group.Sets {
			if set.RestPeriod != nil && *set.RestPeriod < 0 {
				return fmt.Errorf("rest period must not be negative, got %d", *set.RestPeriod)
			}
			for _, round := range set.Rounds {
				if round.Weight < 0 {
					return fmt.Errorf("weight must not be negative, got %v", round.Weight)
				}
				if round.Reps < 0 {
					return fmt.Errorf("reps must not be negative, got %d", round.Reps)
				}
			}
		}
	}
	return nil
}

// AddCompleteTraining creates a training with all its sets and rounds in
// one transaction. Set positions are assigned sequentially from zero across
// groups; round positions from zero within each set. An unknown exercise id
// fails the whole operation with nothing committed.
func (s *Store) AddCompleteTraining(in CompleteTrainingInput) (*TrainingWithDetails, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	tr := models.NewTraining(in.Training)
	details := &TrainingWithDetails{Training: *tr}

	err := s.db.Update(func(txn *badger.Txn) error {
		if err := putJSON(txn, trainingKey(tr.ID), tr); err != nil {
			return err
		}

		order := 0
		for _, group := range in.Exercises {
			ex, err := getJSON[models.Exercise](txn, exerciseKey(group.ExerciseID))
			if err != nil {
				return fmt.Errorf("exercise %s: %w", group.ExerciseID, err)
			}

			for _, setSpec := range group.Sets {
				set := models.NewSet(models.SetInput{
					TrainingID:      tr.ID,
					ExerciseID:      group.ExerciseID,
					OrderInTraining: order,
					RestPeriod:      setSpec.RestPeriod,
					Notes:           setSpec.Notes,
				})
				order++
				if err := createSetTxn(txn, set); err != nil {
					return err
				}

				var rounds []models.Round
				for i, roundSpec := range setSpec.Rounds {
					round := models.NewRound(models.RoundInput{
						SetID:      set.ID,
						OrderInSet: i,
						Weight:     roundSpec.Weight,
						Reps:       roundSpec.Reps,
						Notes:      roundSpec.Notes,
					})
					if err := createRoundTxn(txn, round); err != nil {
						return err
					}
					rounds = append(rounds, *round)
				}

				details.Sets = append(details.Sets, SetDetail{
					Set:      *set,
					Exercise: *ex,
					Rounds:   rounds,
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("add complete training: %w", err)
	}
	return details, nil
}

func derefRounds(rounds []*models.Round) []models.Round {
	out := make([]models.Round, 0, len(rounds))
	for _, r := range rounds {
		out = append(out, *r)
	}
	return out
}
