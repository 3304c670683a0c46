// ABOUTME: Singleton user record access.
// ABOUTME: SaveUser upserts, preserving the original creation timestamp.
package store

import (
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v3"
	"github.com/mwestbrook/liftlog/internal/ident"
	"github.com/mwestbrook/liftlog/internal/models"
)

// GetUser returns the singleton user record, or ErrNotFound when no
// profile has been saved yet.
func (s *Store) GetUser() (*models.User, error) {
	var user *models.User
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		user, err = getJSON[models.User](txn, []byte(userKey))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// SaveUser creates or replaces the user record. The creation timestamp of
// an existing record is preserved; UpdatedAt is always refreshed.
func (s *Store) SaveUser(in models.UserInput) (*models.User, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	now := ident.Timestamp()
	user := &models.User{
		ID:        models.UserID,
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		existing, err := getJSON[models.User](txn, []byte(userKey))
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		if existing != nil {
			user.CreatedAt = existing.CreatedAt
		}
		return putJSON(txn, []byte(userKey), user)
	})
	if err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return user, nil
}

// HasUser reports whether a user record exists.
func (s *Store) HasUser() (bool, error) {
	_, err := s.GetUser()
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// DeleteUser removes the user record; a missing record is a no-op.
func (s *Store) DeleteUser() error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(userKey))
	})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
