// ABOUTME: Round CRUD and the set-scoped index lookup.
// ABOUTME: Rounds are ordered within their owning set by OrderInSet.
package store

import (
	"errors"
	"fmt"
	"sort"

	badger "github.com/dgraph-io/badger/v3"
	"github.com/mwestbrook/liftlog/internal/models"
)

// CreateRound persists a new round together with its set index entry.
func (s *Store) CreateRound(in models.RoundInput) (*models.Round, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	round := models.NewRound(in)
	err := s.db.Update(func(txn *badger.Txn) error {
		return createRoundTxn(txn, round)
	})
	if err != nil {
		return nil, fmt.Errorf("create round: %w", err)
	}
	return round, nil
}

func createRoundTxn(txn *badger.Txn, round *models.Round) error {
	if err := putJSON(txn, roundKey(round.ID), round); err != nil {
		return err
	}
	return txn.Set(roundSetIdxKey(round.SetID, round.ID), []byte(round.ID))
}

// GetRound returns the round with the given id, or ErrNotFound.
func (s *Store) GetRound(id string) (*models.Round, error) {
	var round *models.Round
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		round, err = getJSON[models.Round](txn, roundKey(id))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get round: %w", err)
	}
	return round, nil
}

// AllRounds returns every round in physical store order.
func (s *Store) AllRounds() ([]*models.Round, error) {
	var out []*models.Round
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		out, err = scanJSON[models.Round](txn, []byte(roundPrefix))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}
	return out, nil
}

// RoundsBySetID returns a set's rounds ordered by position.
func (s *Store) RoundsBySetID(setID string) ([]*models.Round, error) {
	var rounds []*models.Round
	err := s.db.View(func(txn *badger.Txn) error {
		ids, err := indexValues(txn, roundSetIdxPrefix(setID))
		if err != nil {
			return err
		}
		for _, id := range ids {
			round, err := getJSON[models.Round](txn, roundKey(id))
			if err != nil {
				return fmt.Errorf("round %s: %w", id, err)
			}
			rounds = append(rounds, round)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("rounds by set: %w", err)
	}

	sort.Slice(rounds, func(i, j int) bool {
		return rounds[i].OrderInSet < rounds[j].OrderInSet
	})
	return rounds, nil
}

// UpdateRound merges the partial fields over the stored record, moving the
// set index entry when the owning set changes.
// Fails with ErrNotFound for an unknown id.
func (s *Store) UpdateRound(id string, u models.RoundUpdate) (*models.Round, error) {
	if err := u.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var round *models.Round
	err := s.db.Update(func(txn *badger.Txn) error {
		var err error
		round, err = getJSON[models.Round](txn, roundKey(id))
		if err != nil {
			return err
		}

		oldSetID := round.SetID
		u.Apply(round)

		if round.SetID != oldSetID {
			if err := txn.Delete(roundSetIdxKey(oldSetID, round.ID)); err != nil {
				return err
			}
			if err := txn.Set(roundSetIdxKey(round.SetID, round.ID), []byte(round.ID)); err != nil {
				return err
			}
		}
		return putJSON(txn, roundKey(id), round)
	})
	if err != nil {
		return nil, fmt.Errorf("update round: %w", err)
	}
	return round, nil
}

// DeleteRound removes a round and its index entry; a missing id is a no-op.
func (s *Store) DeleteRound(id string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return deleteRoundTxn(txn, id)
	})
	if err != nil {
		return fmt.Errorf("delete round: %w", err)
	}
	return nil
}

func deleteRoundTxn(txn *badger.Txn, id string) error {
	round, err := getJSON[models.Round](txn, roundKey(id))
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := txn.Delete(roundSetIdxKey(round.SetID, round.ID)); err != nil {
		return err
	}
	return txn.Delete(roundKey(id))
}

// DeleteRoundsBySetID removes every round owned by the set in one
// all-or-nothing transaction.
func (s *Store) DeleteRoundsBySetID(setID string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return deleteRoundsBySetTxn(txn, setID)
	})
	if err != nil {
		return fmt.Errorf("delete rounds by set: %w", err)
	}
	return nil
}

func deleteRoundsBySetTxn(txn *badger.Txn, setID string) error {
	ids, err := indexValues(txn, roundSetIdxPrefix(setID))
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := deleteRoundTxn(txn, id); err != nil {
			return err
		}
	}
	return nil
}
