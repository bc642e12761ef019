package domain

import "github.com/google/uuid"

// generateID creates a new unique link identifier.
func generateID() string {
	return uuid.NewString()
}
