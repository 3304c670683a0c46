// ABOUTME: User model, a singleton profile record with a fixed id.
// ABOUTME: There is at most one user per store.
package models

import "fmt"

// UserID is the fixed key of the singleton user record.
const UserID = "user"

// User holds the single on-device profile.
type User struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	CreatedAt int64  `json:"createdAt" yaml:"createdAt"`
	UpdatedAt int64  `json:"updatedAt" yaml:"updatedAt"`
}

// UserInput is the caller-supplied shape for saving the user.
type UserInput struct {
	Name string
}

// Validate checks the input before it reaches the store.
func (in UserInput) Validate() error {
	if in.Name == "" {
		return fmt.Errorf("user name is required")
	}
	return nil
}
