// ABOUTME: Tests for the singleton user record.
// ABOUTME: Covers upsert timestamp handling and presence checks.
package store

import (
	"errors"
	"testing"

	"github.com/mwestbrook/liftlog/internal/models"
)

func TestUserLifecycle(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.GetUser(); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound before save, got %v", err)
	}
	has, err := s.HasUser()
	if err != nil {
		t.Fatalf("HasUser failed: %v", err)
	}
	if has {
		t.Error("HasUser true before save")
	}

	user, err := s.SaveUser(models.UserInput{Name: "Alex"})
	if err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}
	if user.ID != models.UserID {
		t.Errorf("user id not fixed: %s", user.ID)
	}
	if user.CreatedAt == 0 || user.UpdatedAt == 0 {
		t.Errorf("timestamps not set: %+v", user)
	}

	got, err := s.GetUser()
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if got.Name != "Alex" {
		t.Errorf("name mismatch: %s", got.Name)
	}

	// Upsert keeps the original creation timestamp
	updated, err := s.SaveUser(models.UserInput{Name: "Sam"})
	if err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}
	if updated.Name != "Sam" {
		t.Errorf("name not replaced: %s", updated.Name)
	}
	if updated.CreatedAt != user.CreatedAt {
		t.Errorf("creation timestamp changed: %d -> %d", user.CreatedAt, updated.CreatedAt)
	}

	if err := s.DeleteUser(); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}
	if _, err := s.GetUser(); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSaveUserValidation(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.SaveUser(models.UserInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty name, got %v", err)
	}
}
