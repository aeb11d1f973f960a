package domain

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	apperrors "github.com/spec-kit/clinic-directory/pkg/util"
)

// AccountRole enumerates the kinds of people the directory registers.
type AccountRole string

const (
	RoleAdministrator AccountRole = "ADMIN"
	RoleDoctor        AccountRole = "DOCTOR"
	RolePatient       AccountRole = "PATIENT"
)

// Valid reports whether the role is one of the known values.
func (r AccountRole) Valid() bool {
	switch r {
	case RoleAdministrator, RoleDoctor, RolePatient:
		return true
	}
	return false
}

// Account is the identity record behind every registered person.
type Account struct {
	ID           string
	Name         string
	Email        string
	CPF          string
	PasswordHash string
	Role         AccountRole
	CreatedAt    time.Time
	LastLoginAt  *time.Time
	Active       bool
}

// NewAccount builds a validated account. The password hash must come from
// auth.HashPassword; plaintext never reaches this constructor.
func NewAccount(name, email, cpf, passwordHash string, role AccountRole) (*Account, error) {
	account := &Account{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		CPF:          cpf,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
		Active:       true,
	}
	if err := account.Validate(); err != nil {
		return nil, err
	}
	return account, nil
}

// UpdateProfile replaces the mutable fields and revalidates. ID, CreatedAt
// and LastLoginAt are never touched.
func (a *Account) UpdateProfile(name, email, cpf, passwordHash string, role AccountRole) error {
	a.Name = name
	a.Email = email
	a.CPF = cpf
	a.PasswordHash = passwordHash
	a.Role = role
	return a.Validate()
}

// RecordLogin stamps the moment of a successful authentication.
func (a *Account) RecordLogin(now time.Time) {
	t := now.UTC()
	a.LastLoginAt = &t
}

// Validate enforces the account invariants.
func (a *Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return apperrors.NewValidationError("name cannot be empty", nil)
	}
	if strings.TrimSpace(a.Email) == "" {
		return apperrors.NewValidationError("email cannot be empty", nil)
	}
	if !strings.Contains(a.Email, "@") || !strings.Contains(a.Email, ".") {
		return apperrors.NewValidationError("email is not valid", nil)
	}
	if strings.TrimSpace(a.CPF) == "" {
		return apperrors.NewValidationError("cpf cannot be empty", nil)
	}
	if len(a.CPF) != 11 {
		return apperrors.NewValidationError("cpf must contain exactly 11 digits", nil)
	}
	for _, r := range a.CPF {
		if !unicode.IsDigit(r) {
			return apperrors.NewValidationError("cpf must contain only digits", nil)
		}
	}
	if a.PasswordHash == "" {
		return apperrors.NewValidationError("password cannot be empty", nil)
	}
	if !a.Role.Valid() {
		return apperrors.NewValidationError("unknown account role", nil)
	}
	return nil
}
