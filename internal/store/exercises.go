// ABOUTME: Exercise CRUD and name-indexed lookups.
// ABOUTME: Enforces name uniqueness and the referenced-by-sets delete policy.
package store

import (
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v3"
	"github.com/mwestbrook/liftlog/internal/models"
)

// CreateExercise persists a new exercise. A name collision fails with
// ErrDuplicateName rather than overwriting the existing record.
func (s *Store) CreateExercise(in models.ExerciseInput) (*models.Exercise, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	ex := models.NewExercise(in)
	err := s.db.Update(func(txn *badger.Txn) error {
		return createExerciseTxn(txn, ex)
	})
	if err != nil {
		return nil, fmt.Errorf("create exercise: %w", err)
	}
	return ex, nil
}

// createExerciseTxn writes the record and claims the unique name index entry.
func createExerciseTxn(txn *badger.Txn, ex *models.Exercise) error {
	nameKey := exerciseNameKey(ex.Name)
	_, err := txn.Get(nameKey)
	if err == nil {
		return fmt.Errorf("exercise %q: %w", ex.Name, ErrDuplicateName)
	}
	if !errors.Is(err, badger.ErrKeyNotFound) {
		return err
	}

	if err := putJSON(txn, exerciseKey(ex.ID), ex); err != nil {
		return err
	}
	return txn.Set(nameKey, []byte(ex.ID))
}

// GetExercise returns the exercise with the given id, or ErrNotFound.
func (s *Store) GetExercise(id string) (*models.Exercise, error) {
	var ex *models.Exercise
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		ex, err = getJSON[models.Exercise](txn, exerciseKey(id))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get exercise: %w", err)
	}
	return ex, nil
}

// GetExerciseByName resolves an exercise through the unique name index.
func (s *Store) GetExerciseByName(name string) (*models.Exercise, error) {
	var ex *models.Exercise
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(exerciseNameKey(name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		id, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		ex, err = getJSON[models.Exercise](txn, exerciseKey(string(id)))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get exercise by name: %w", err)
	}
	return ex, nil
}

// ExerciseNameExists reports whether an exercise with the name exists.
func (s *Store) ExerciseNameExists(name string) (bool, error) {
	_, err := s.GetExerciseByName(name)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AllExercises returns every exercise in physical store order.
func (s *Store) AllExercises() ([]*models.Exercise, error) {
	var out []*models.Exercise
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		out, err = scanJSON[models.Exercise](txn, []byte(exercisePrefix))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	return out, nil
}

// UpdateExercise merges the partial fields over the stored record. Fails
// with ErrNotFound for an unknown id; a rename to a taken name fails with
// ErrDuplicateName and moves the name index entry otherwise.
func (s *Store) UpdateExercise(id string, u models.ExerciseUpdate) (*models.Exercise, error) {
	if err := u.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var ex *models.Exercise
	err := s.db.Update(func(txn *badger.Txn) error {
		var err error
		ex, err = getJSON[models.Exercise](txn, exerciseKey(id))
		if err != nil {
			return err
		}

		oldName := ex.Name
		u.Apply(ex)

		if ex.Name != oldName {
			nameKey := exerciseNameKey(ex.Name)
			if _, err := txn.Get(nameKey); err == nil {
				return fmt.Errorf("exercise %q: %w", ex.Name, ErrDuplicateName)
			} else if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
			if err := txn.Delete(exerciseNameKey(oldName)); err != nil {
				return err
			}
			if err := txn.Set(nameKey, []byte(ex.ID)); err != nil {
				return err
			}
		}

		return putJSON(txn, exerciseKey(id), ex)
	})
	if err != nil {
		return nil, fmt.Errorf("update exercise: %w", err)
	}
	return ex, nil
}

// DeleteExercise removes an exercise by id. Deleting an exercise that any
// set still references fails with ErrExerciseInUse; a missing id is a no-op.
func (s *Store) DeleteExercise(id string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		ex, err := getJSON[models.Exercise](txn, exerciseKey(id))
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		refs, err := indexValues(txn, setExerciseIdxPrefix(id))
		if err != nil {
			return err
		}
		if len(refs) > 0 {
			return fmt.Errorf("exercise %q referenced by %d sets: %w", ex.Name, len(refs), ErrExerciseInUse)
		}

		if err := txn.Delete(exerciseNameKey(ex.Name)); err != nil {
			return err
		}
		return txn.Delete(exerciseKey(id))
	})
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	return nil
}
