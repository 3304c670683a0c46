// ABOUTME: Set CRUD and indexed lookups by training, exercise, and both.
// ABOUTME: Index keys are maintained in the same transaction as the record.
package store

import (
	"errors"
	"fmt"
	"sort"

	badger "github.com/dgraph-io/badger/v3"
	"github.com/mwestbrook/liftlog/internal/models"
)

// CreateSet persists a new set together with its three index entries.
func (s *Store) CreateSet(in models.SetInput) (*models.Set, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	set := models.NewSet(in)
	err := s.db.Update(func(txn *badger.Txn) error {
		return createSetTxn(txn, set)
	})
	if err != nil {
		return nil, fmt.Errorf("create set: %w", err)
	}
	return set, nil
}

func createSetTxn(txn *badger.Txn, set *models.Set) error {
	if err := putJSON(txn, setKey(set.ID), set); err != nil {
		return err
	}
	for _, key := range setIndexKeys(set) {
		if err := txn.Set(key, []byte(set.ID)); err != nil {
			return err
		}
	}
	return nil
}

func setIndexKeys(set *models.Set) [][]byte {
	return [][]byte{
		setTrainingIdxKey(set.TrainingID, set.ID),
		setExerciseIdxKey(set.ExerciseID, set.ID),
		setExTrainingIdxKey(set.ExerciseID, set.TrainingID, set.ID),
	}
}

// GetSet returns the set with the given id, or ErrNotFound.
func (s *Store) GetSet(id string) (*models.Set, error) {
	var set *models.Set
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		set, err = getJSON[models.Set](txn, setKey(id))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get set: %w", err)
	}
	return set, nil
}

// AllSets returns every set in physical store order.
func (s *Store) AllSets() ([]*models.Set, error) {
	var out []*models.Set
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		out, err = scanJSON[models.Set](txn, []byte(setPrefix))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	return out, nil
}

// SetsByTrainingID returns a training's sets ordered by position.
func (s *Store) SetsByTrainingID(trainingID string) ([]*models.Set, error) {
	sets, err := s.setsByIndex(setTrainingIdxPrefix(trainingID))
	if err != nil {
		return nil, fmt.Errorf("sets by training: %w", err)
	}
	sortSetsByOrder(sets)
	return sets, nil
}

// SetsByExerciseID returns every set referencing the exercise, across all
// trainings, in physical index order.
func (s *Store) SetsByExerciseID(exerciseID string) ([]*models.Set, error) {
	sets, err := s.setsByIndex(setExerciseIdxPrefix(exerciseID))
	if err != nil {
		return nil, fmt.Errorf("sets by exercise: %w", err)
	}
	return sets, nil
}

// SetsByExerciseAndTraining returns the sets for one exercise within one
// training, ordered by position.
func (s *Store) SetsByExerciseAndTraining(exerciseID, trainingID string) ([]*models.Set, error) {
	sets, err := s.setsByIndex(setExTrainingIdxPrefix(exerciseID, trainingID))
	if err != nil {
		return nil, fmt.Errorf("sets by exercise and training: %w", err)
	}
	sortSetsByOrder(sets)
	return sets, nil
}

func (s *Store) setsByIndex(prefix []byte) ([]*models.Set, error) {
	var sets []*models.Set
	err := s.db.View(func(txn *badger.Txn) error {
		ids, err := indexValues(txn, prefix)
		if err != nil {
			return err
		}
		for _, id := range ids {
			set, err := getJSON[models.Set](txn, setKey(id))
			if err != nil {
				return fmt.Errorf("set %s: %w", id, err)
			}
			sets = append(sets, set)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sets, nil
}

func sortSetsByOrder(sets []*models.Set) {
	sort.Slice(sets, func(i, j int) bool {
		return sets[i].OrderInTraining < sets[j].OrderInTraining
	})
}

// UpdateSet merges the partial fields over the stored record, rewriting
// index entries when the owning training or exercise changes.
// Fails with ErrNotFound for an unknown id.
func (s *Store) UpdateSet(id string, u models.SetUpdate) (*models.Set, error) {
	if err := u.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var set *models.Set
	err := s.db.Update(func(txn *badger.Txn) error {
		var err error
		set, err = getJSON[models.Set](txn, setKey(id))
		if err != nil {
			return err
		}

		oldKeys := setIndexKeys(set)
		u.Apply(set)
		newKeys := setIndexKeys(set)

		for i := range oldKeys {
			if string(oldKeys[i]) == string(newKeys[i]) {
				continue
			}
			if err := txn.Delete(oldKeys[i]); err != nil {
				return err
			}
			if err := txn.Set(newKeys[i], []byte(set.ID)); err != nil {
				return err
			}
		}
		return putJSON(txn, setKey(id), set)
	})
	if err != nil {
		return nil, fmt.Errorf("update set: %w", err)
	}
	return set, nil
}

// DeleteSet removes a set and its index entries; a missing id is a no-op.
func (s *Store) DeleteSet(id string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return deleteSetTxn(txn, id)
	})
	if err != nil {
		return fmt.Errorf("delete set: %w", err)
	}
	return nil
}

// deleteSetTxn removes one set record plus its index entries.
func deleteSetTxn(txn *badger.Txn, id string) error {
	set, err := getJSON[models.Set](txn, setKey(id))
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	for _, key := range setIndexKeys(set) {
		if err := txn.Delete(key); err != nil {
			return err
		}
	}
	return txn.Delete(setKey(id))
}

// DeleteSetsByTrainingID removes every set owned by the training in one
// all-or-nothing transaction. Rounds are untouched; callers needing the
// full cascade use DeleteTrainingCascade.
func (s *Store) DeleteSetsByTrainingID(trainingID string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		ids, err := indexValues(txn, setTrainingIdxPrefix(trainingID))
		if err != nil {
			return err
		}
		for _, id := range ids {
			if err := deleteSetTxn(txn, id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete sets by training: %w", err)
	}
	return nil
}
