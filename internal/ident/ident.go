// ABOUTME: Identity and timestamp helpers used by every create operation.
// ABOUTME: Provides random unique string IDs and wall-clock millisecond stamps.
package ident

import (
	"time"

	"github.com/google/uuid"
)

// NewID returns a new random identifier. IDs are unique with overwhelming
// probability and carry no ordering information.
func NewID() string {
	return uuid.NewString()
}

// Timestamp returns the current wall-clock time as milliseconds since epoch.
func Timestamp() int64 {
	return time.Now().UnixMilli()
}
