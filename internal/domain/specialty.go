package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/spec-kit/clinic-directory/pkg/util"
)

// Specialty is a catalog entry doctors are classified under.
// Read-mostly; there is no delete operation, only the active flag.
type Specialty struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	Active      bool
}

// NewSpecialty builds a validated specialty.
func NewSpecialty(name, description string) (*Specialty, error) {
	specialty := &Specialty{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
		Active:      true,
	}
	if err := specialty.Validate(); err != nil {
		return nil, err
	}
	return specialty, nil
}

// Validate enforces the specialty invariants.
func (s *Specialty) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return apperrors.NewValidationError("specialty name cannot be empty", nil)
	}
	if strings.TrimSpace(s.Description) == "" {
		return apperrors.NewValidationError("specialty description cannot be empty", nil)
	}
	return nil
}
