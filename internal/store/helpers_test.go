// ABOUTME: Shared helpers for store tests.
// ABOUTME: Every test gets an isolated in-memory badger instance.
package store

import "testing"

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory failed: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return s
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
