// ABOUTME: Full-store backup export and import.
// ABOUTME: Version-2 JSON snapshot is canonical; YAML export for humans.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v3"
	"github.com/mwestbrook/liftlog/internal/ident"
	"github.com/mwestbrook/liftlog/internal/models"
	"gopkg.in/yaml.v3"
)

// BackupVersion is the current export document version.
const BackupVersion = 2

// BackupData is the full record set of all five stores.
type BackupData struct {
	User      *models.User      `json:"user,omitempty" yaml:"user,omitempty"`
	Exercises []models.Exercise `json:"exercises" yaml:"exercises"`
	Trainings []models.Training `json:"trainings" yaml:"trainings"`
	Sets      []models.Set      `json:"sets" yaml:"sets"`
	Rounds    []models.Round    `json:"rounds" yaml:"rounds"`
}

// Backup is the export document envelope.
type Backup struct {
	Version    int         `json:"version" yaml:"version"`
	ExportedAt int64       `json:"exportedAt" yaml:"exportedAt"`
	Data       *BackupData `json:"data" yaml:"data"`
}

// Export snapshots all five stores in one read transaction.
func (s *Store) Export() (*Backup, error) {
	data := &BackupData{}
	err := s.db.View(func(txn *badger.Txn) error {
		user, err := getJSON[models.User](txn, []byte(userKey))
		if err == nil {
			data.User = user
		} else if !errors.Is(err, ErrNotFound) {
			return err
		}

		exercises, err := scanJSON[models.Exercise](txn, []byte(exercisePrefix))
		if err != nil {
			return err
		}
		for _, ex := range exercises {
			data.Exercises = append(data.Exercises, *ex)
		}

		trainings, err := scanJSON[models.Training](txn, []byte(trainingPrefix))
		if err != nil {
			return err
		}
		for _, tr := range trainings {
			data.Trainings = append(data.Trainings, *tr)
		}

		sets, err := scanJSON[models.Set](txn, []byte(setPrefix))
		if err != nil {
			return err
		}
		for _, set := range sets {
			data.Sets = append(data.Sets, *set)
		}

		rounds, err := scanJSON[models.Round](txn, []byte(roundPrefix))
		if err != nil {
			return err
		}
		for _, round := range rounds {
			data.Rounds = append(data.Rounds, *round)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	return &Backup{
		Version:    BackupVersion,
		ExportedAt: ident.Timestamp(),
		Data:       data,
	}, nil
}

// ExportJSON renders the backup document as indented JSON, the canonical
// interchange format understood by Import.
func (s *Store) ExportJSON() ([]byte, error) {
	backup, err := s.Export()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(backup, "", "  ")
}

// ExportYAML renders the backup document as YAML.
func (s *Store) ExportYAML() ([]byte, error) {
	backup, err := s.Export()
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(backup)
}

// Import replaces the entire store contents with the backup document in
// one transaction: all five stores are cleared, then every record is
// re-inserted with its original id and timestamps. The user record is
// restored only when present in the document. Documents missing the
// version or data fields are rejected with ErrBadImport.
func (s *Store) Import(backup *Backup) error {
	if backup == nil || backup.Version == 0 || backup.Data == nil {
		return fmt.Errorf("import: %w", ErrBadImport)
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		if err := clearTxn(txn, true); err != nil {
			return err
		}

		for i := range backup.Data.Exercises {
			if err := createExerciseTxn(txn, &backup.Data.Exercises[i]); err != nil {
				return err
			}
		}
		for i := range backup.Data.Trainings {
			tr := &backup.Data.Trainings[i]
			if err := putJSON(txn, trainingKey(tr.ID), tr); err != nil {
				return err
			}
		}
		for i := range backup.Data.Sets {
			if err := createSetTxn(txn, &backup.Data.Sets[i]); err != nil {
				return err
			}
		}
		for i := range backup.Data.Rounds {
			if err := createRoundTxn(txn, &backup.Data.Rounds[i]); err != nil {
				return err
			}
		}
		if backup.Data.User != nil {
			if err := putJSON(txn, []byte(userKey), backup.Data.User); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	return nil
}

// ImportJSON parses and imports a JSON backup document.
func (s *Store) ImportJSON(data []byte) error {
	var backup Backup
	if err := json.Unmarshal(data, &backup); err != nil {
		return fmt.Errorf("%w: parse document: %v", ErrBadImport, err)
	}
	return s.Import(&backup)
}

// ClearAll wipes the four data stores and their indexes. The user record
// is kept; only a full import replaces it.
func (s *Store) ClearAll() error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return clearTxn(txn, false)
	})
	if err != nil {
		return fmt.Errorf("clear all: %w", err)
	}
	return nil
}

func clearTxn(txn *badger.Txn, includeUser bool) error {
	prefixes := []string{
		exercisePrefix, trainingPrefix, setPrefix, roundPrefix,
		idxExerciseName, idxSetTraining, idxSetExercise, idxSetExTraining, idxRoundSet,
	}
	for _, prefix := range prefixes {
		if err := deletePrefix(txn, []byte(prefix)); err != nil {
			return err
		}
	}
	if includeUser {
		return txn.Delete([]byte(userKey))
	}
	return nil
}
