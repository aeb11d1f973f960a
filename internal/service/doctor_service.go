package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/clinic-directory/internal/cache"
	"github.com/spec-kit/clinic-directory/internal/config"
	"github.com/spec-kit/clinic-directory/internal/domain"
	"github.com/spec-kit/clinic-directory/internal/events"
	"github.com/spec-kit/clinic-directory/internal/repository"
	apperrors "github.com/spec-kit/clinic-directory/pkg/util"
)

const doctorsBySpecialtyKeyPrefix = "specialty_doctors_"

func doctorsBySpecialtyKey(specialtyID string) string {
	return doctorsBySpecialtyKeyPrefix + specialtyID
}

// DoctorInput carries the doctor-specific registration payload.
type DoctorInput struct {
	LicenseNumber   string
	SpecialtyID     string
	ConsultationFee decimal.Decimal
}

// DoctorListing is the public shape of a doctor in a specialty listing;
// it is also the serialization contract for the cache.
type DoctorListing struct {
	AccountID       string             `json:"account_id"`
	Name            string             `json:"name"`
	Email           string             `json:"email"`
	CPF             string             `json:"cpf"`
	Role            domain.AccountRole `json:"role"`
	CreatedAt       time.Time          `json:"created_at"`
	LastLoginAt     *time.Time         `json:"last_login_at,omitempty"`
	LicenseNumber   string             `json:"license_number"`
	SpecialtyID     string             `json:"specialty_id"`
	ConsultationFee decimal.Decimal    `json:"consultation_fee"`
}

// DoctorService manages doctor extensions and the doctors-by-specialty
// listing cache.
type DoctorService struct {
	doctors    repository.DoctorRepository
	accounts   repository.AccountRepository
	cache      *cache.Cache
	cacheTTL   time.Duration
	dispatcher events.Dispatcher
}

// NewDoctorService builds the service.
func NewDoctorService(cfg config.Config, doctors repository.DoctorRepository, accounts repository.AccountRepository, c *cache.Cache, dispatcher events.Dispatcher) *DoctorService {
	return &DoctorService{
		doctors:    doctors,
		accounts:   accounts,
		cache:      c,
		cacheTTL:   cfg.Cache.TTL(),
		dispatcher: dispatcher,
	}
}

// Register creates the doctor extension for an account. The license number
// is globally unique; the new doctor's specialty listing is invalidated
// before returning.
func (s *DoctorService) Register(ctx context.Context, accountID string, input DoctorInput) (*domain.Doctor, error) {
	if _, err := s.doctors.GetByLicense(ctx, input.LicenseNumber); err == nil {
		return nil, apperrors.NewConflict("license number already in use", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	doctor, err := domain.NewDoctor(accountID, input.SpecialtyID, input.LicenseNumber, input.ConsultationFee)
	if err != nil {
		return nil, err
	}
	if err := s.doctors.Create(ctx, doctor); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, doctorsBySpecialtyKey(doctor.SpecialtyID))

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventDoctorRegistered,
		SubjectID: doctor.ID,
		Timestamp: time.Now().UTC(),
		Payload: events.DoctorRegisteredPayload{
			AccountID:     doctor.AccountID,
			LicenseNumber: doctor.LicenseNumber,
			SpecialtyID:   doctor.SpecialtyID,
		},
	})

	return doctor, nil
}

// Update changes the doctor record owned by the account. A doctor can move
// between specialties, so both the old and the new specialty listings are
// invalidated; a stale entry must not linger under either key.
func (s *DoctorService) Update(ctx context.Context, accountID string, input DoctorInput) (*domain.Doctor, error) {
	doctor, err := s.doctors.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("doctor", map[string]any{"account_id": accountID})
		}
		return nil, err
	}

	if existing, err := s.doctors.GetByLicense(ctx, input.LicenseNumber); err == nil {
		if existing.ID != doctor.ID {
			return nil, apperrors.NewConflict("license number already in use", nil)
		}
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	oldSpecialtyID := doctor.SpecialtyID
	if err := doctor.UpdateDetails(input.LicenseNumber, input.SpecialtyID, input.ConsultationFee); err != nil {
		return nil, err
	}
	if err := s.doctors.Update(ctx, doctor); err != nil {
		return nil, err
	}

	keys := []string{doctorsBySpecialtyKey(oldSpecialtyID)}
	if doctor.SpecialtyID != oldSpecialtyID {
		keys = append(keys, doctorsBySpecialtyKey(doctor.SpecialtyID))
	}
	s.cache.Invalidate(ctx, keys...)

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventDoctorUpdated,
		SubjectID: doctor.ID,
		Timestamp: time.Now().UTC(),
		Payload: events.DoctorUpdatedPayload{
			AccountID:      doctor.AccountID,
			LicenseNumber:  doctor.LicenseNumber,
			OldSpecialtyID: oldSpecialtyID,
			NewSpecialtyID: doctor.SpecialtyID,
		},
	})

	return doctor, nil
}

// ListBySpecialty returns the doctors of a specialty joined with their
// account data, served from cache when possible. Doctors whose owning
// account record has gone missing are skipped rather than failing the
// whole listing.
func (s *DoctorService) ListBySpecialty(ctx context.Context, specialtyID string) ([]DoctorListing, error) {
	return cache.GetOrCompute(ctx, s.cache, doctorsBySpecialtyKey(specialtyID), s.cacheTTL, func(ctx context.Context) ([]DoctorListing, error) {
		doctors, err := s.doctors.ListBySpecialty(ctx, specialtyID)
		if err != nil {
			return nil, err
		}

		listings := make([]DoctorListing, 0, len(doctors))
		for _, doctor := range doctors {
			account, err := s.accounts.GetByID(ctx, doctor.AccountID)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					continue
				}
				return nil, err
			}
			listings = append(listings, DoctorListing{
				AccountID:       account.ID,
				Name:            account.Name,
				Email:           account.Email,
				CPF:             account.CPF,
				Role:            account.Role,
				CreatedAt:       account.CreatedAt,
				LastLoginAt:     account.LastLoginAt,
				LicenseNumber:   doctor.LicenseNumber,
				SpecialtyID:     doctor.SpecialtyID,
				ConsultationFee: doctor.ConsultationFee,
			})
		}
		return listings, nil
	})
}
