package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/tatibku/backend/internal/domain"
)

// ResolveClass maps a free-text class label to a known class id by exact,
// case-insensitive match on the class name. No fuzzy matching: a miss
// resolves to nil and the validator treats that as a blocking error.
func ResolveClass(className string, knownClasses []domain.Kelas) *uuid.UUID {
	label := strings.ToLower(strings.TrimSpace(className))
	if label == "" {
		return nil
	}
	for i := range knownClasses {
		if strings.ToLower(strings.TrimSpace(knownClasses[i].Nama)) == label {
			id := knownClasses[i].ID
			return &id
		}
	}
	return nil
}
