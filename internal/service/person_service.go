package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/clinic-directory/internal/auth"
	"github.com/spec-kit/clinic-directory/internal/config"
	"github.com/spec-kit/clinic-directory/internal/domain"
	"github.com/spec-kit/clinic-directory/internal/events"
	"github.com/spec-kit/clinic-directory/internal/repository"
	apperrors "github.com/spec-kit/clinic-directory/pkg/util"
)

// RegisterPersonInput carries the registration payload. Doctor is required
// iff Role is RoleDoctor.
type RegisterPersonInput struct {
	Name     string
	Email    string
	Password string
	CPF      string
	Role     domain.AccountRole
	Doctor   *DoctorInput
}

// UpdatePersonInput carries the update payload, keyed by account id.
type UpdatePersonInput struct {
	ID       string
	Name     string
	Email    string
	Password string
	CPF      string
	Role     domain.AccountRole
	Doctor   *DoctorInput
}

// PersonProfile is what registration and update return: the account plus
// the doctor extension when one exists.
type PersonProfile struct {
	Account *domain.Account
	Doctor  *domain.Doctor
}

// PersonService orchestrates account plus doctor registration, enforcing
// cross-entity uniqueness of email and cpf.
type PersonService struct {
	accounts   repository.AccountRepository
	doctors    *DoctorService
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewPersonService builds the service.
func NewPersonService(cfg config.Config, accounts repository.AccountRepository, doctors *DoctorService, dispatcher events.Dispatcher) *PersonService {
	return &PersonService{
		accounts:   accounts,
		doctors:    doctors,
		dispatcher: dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates an account and, for doctors, the doctor extension.
// Email is checked before cpf. When the role is doctor but the payload is
// missing, the account stays persisted: account and doctor creation are
// deliberately not wrapped in one atomic unit, matching the upstream
// contract.
func (s *PersonService) Register(ctx context.Context, input RegisterPersonInput) (*PersonProfile, error) {
	if _, err := s.accounts.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewConflict("email already in use", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if _, err := s.accounts.GetByCPF(ctx, input.CPF); err == nil {
		return nil, apperrors.NewConflict("cpf already in use", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	account, err := domain.NewAccount(input.Name, input.Email, input.CPF, hash, input.Role)
	if err != nil {
		return nil, err
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	profile := &PersonProfile{Account: account}

	if input.Role == domain.RoleDoctor {
		if input.Doctor == nil {
			return nil, apperrors.NewConflict("doctor data required for role 'DOCTOR'", nil)
		}
		doctor, err := s.doctors.Register(ctx, account.ID, *input.Doctor)
		if err != nil {
			return nil, err
		}
		profile.Doctor = doctor
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAccountRegistered,
		SubjectID: account.ID,
		Timestamp: time.Now().UTC(),
		Payload: events.AccountRegisteredPayload{
			Email: account.Email,
			Name:  account.Name,
			Role:  account.Role,
		},
	})

	return profile, nil
}

// Update rewrites an existing account. Email and cpf conflicts are checked
// against any other account; matching the account itself is allowed.
func (s *PersonService) Update(ctx context.Context, input UpdatePersonInput) (*PersonProfile, error) {
	account, err := s.accounts.GetByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("account", map[string]any{"id": input.ID})
		}
		return nil, err
	}

	if existing, err := s.accounts.GetByEmail(ctx, input.Email); err == nil {
		if existing.ID != account.ID {
			return nil, apperrors.NewConflict("email already in use", nil)
		}
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if existing, err := s.accounts.GetByCPF(ctx, input.CPF); err == nil {
		if existing.ID != account.ID {
			return nil, apperrors.NewConflict("cpf already in use", nil)
		}
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	if err := account.UpdateProfile(input.Name, input.Email, input.CPF, hash, input.Role); err != nil {
		return nil, err
	}
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}

	profile := &PersonProfile{Account: account}

	if input.Role == domain.RoleDoctor {
		if input.Doctor == nil {
			return nil, apperrors.NewConflict("doctor data required for role 'DOCTOR'", nil)
		}
		doctor, err := s.doctors.Update(ctx, account.ID, *input.Doctor)
		if err != nil {
			return nil, err
		}
		profile.Doctor = doctor
	}

	return profile, nil
}
