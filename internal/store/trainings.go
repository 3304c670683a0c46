// ABOUTME: Training CRUD, time-ordered listings, and the active-session scan.
// ABOUTME: Cascade delete removes rounds, sets, and the training in one transaction.
package store

import (
	"fmt"
	"sort"

	badger "github.com/dgraph-io/badger/v3"
	"github.com/mwestbrook/liftlog/internal/ident"
	"github.com/mwestbrook/liftlog/internal/models"
)

// CreateTraining persists a new training session.
func (s *Store) CreateTraining(in models.TrainingInput) (*models.Training, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	tr := models.NewTraining(in)
	err := s.db.Update(func(txn *badger.Txn) error {
		return putJSON(txn, trainingKey(tr.ID), tr)
	})
	if err != nil {
		return nil, fmt.Errorf("create training: %w", err)
	}
	return tr, nil
}

// GetTraining returns the training with the given id, or ErrNotFound.
func (s *Store) GetTraining(id string) (*models.Training, error) {
	var tr *models.Training
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		tr, err = getJSON[models.Training](txn, trainingKey(id))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get training: %w", err)
	}
	return tr, nil
}

// AllTrainings returns every training in physical store order.
func (s *Store) AllTrainings() ([]*models.Training, error) {
	var out []*models.Training
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		out, err = scanJSON[models.Training](txn, []byte(trainingPrefix))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list trainings: %w", err)
	}
	return out, nil
}

// TrainingsByStartTime returns trainings sorted by start time descending,
// capped to limit when limit is positive.
func (s *Store) TrainingsByStartTime(limit int) ([]*models.Training, error) {
	trainings, err := s.AllTrainings()
	if err != nil {
		return nil, err
	}

	sort.Slice(trainings, func(i, j int) bool {
		return trainings[i].StartTime > trainings[j].StartTime
	})

	if limit > 0 && len(trainings) > limit {
		trainings = trainings[:limit]
	}
	return trainings, nil
}

// TrainingsByDateRange returns trainings whose start time falls within
// [start, end], sorted by start time descending.
func (s *Store) TrainingsByDateRange(start, end int64) ([]*models.Training, error) {
	trainings, err := s.AllTrainings()
	if err != nil {
		return nil, err
	}

	var out []*models.Training
	for _, tr := range trainings {
		if tr.StartTime >= start && tr.StartTime <= end {
			out = append(out, tr)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime > out[j].StartTime
	})
	return out, nil
}

// TrainingCount returns the total number of recorded trainings.
func (s *Store) TrainingCount() (int, error) {
	trainings, err := s.AllTrainings()
	if err != nil {
		return 0, err
	}
	return len(trainings), nil
}

// ActiveTraining returns the training that has started but not ended, or
// ErrNotFound when none is in progress. At most one active training exists
// by invariant; should that ever be violated, the earliest start wins.
func (s *Store) ActiveTraining() (*models.Training, error) {
	trainings, err := s.AllTrainings()
	if err != nil {
		return nil, err
	}

	now := ident.Timestamp()
	var matches []*models.Training
	for _, tr := range trainings {
		if tr.StartTime <= now && (tr.Active() || tr.EndTime > now) {
			matches = append(matches, tr)
		}
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("active training: %w", ErrNotFound)
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].StartTime < matches[j].StartTime
	})
	return matches[0], nil
}

// UpdateTraining merges the partial fields over the stored record.
// Fails with ErrNotFound for an unknown id.
func (s *Store) UpdateTraining(id string, u models.TrainingUpdate) (*models.Training, error) {
	if err := u.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var tr *models.Training
	err := s.db.Update(func(txn *badger.Txn) error {
		var err error
		tr, err = getJSON[models.Training](txn, trainingKey(id))
		if err != nil {
			return err
		}
		u.Apply(tr)
		return putJSON(txn, trainingKey(id), tr)
	})
	if err != nil {
		return nil, fmt.Errorf("update training: %w", err)
	}
	return tr, nil
}

// DeleteTraining removes only the training record by id; a missing id is
// a no-op. Use DeleteTrainingCascade to also remove owned sets and rounds.
func (s *Store) DeleteTraining(id string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(trainingKey(id))
	})
	if err != nil {
		return fmt.Errorf("delete training: %w", err)
	}
	return nil
}

// DeleteTrainingCascade removes the training together with its sets and
// their rounds. The whole cascade runs in one transaction: either every
// record disappears or none does.
func (s *Store) DeleteTrainingCascade(id string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		setIDs, err := indexValues(txn, setTrainingIdxPrefix(id))
		if err != nil {
			return err
		}

		for _, setID := range setIDs {
			if err := deleteRoundsBySetTxn(txn, setID); err != nil {
				return err
			}
			if err := deleteSetTxn(txn, setID); err != nil {
				return err
			}
		}
		return txn.Delete(trainingKey(id))
	})
	if err != nil {
		return fmt.Errorf("delete training cascade: %w", err)
	}
	return nil
}

// FinishTraining closes the active session at the given timestamp.
func (s *Store) FinishTraining(id string, endTime int64) (*models.Training, error) {
	if endTime <= 0 {
		return nil, fmt.Errorf("%w: end time must be positive, got %d", ErrInvalidInput, endTime)
	}
	return s.UpdateTraining(id, models.TrainingUpdate{EndTime: &endTime})
}
