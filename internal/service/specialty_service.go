package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/clinic-directory/internal/cache"
	"github.com/spec-kit/clinic-directory/internal/config"
	"github.com/spec-kit/clinic-directory/internal/domain"
	"github.com/spec-kit/clinic-directory/internal/events"
	"github.com/spec-kit/clinic-directory/internal/repository"
	apperrors "github.com/spec-kit/clinic-directory/pkg/util"
)

// allSpecialtiesKey caches the full catalog listing under a single key.
const allSpecialtiesKey = "specialties_all"

// SpecialtyView is the public shape of a catalog entry; it is also the
// serialization contract for the cache.
type SpecialtyView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// SpecialtyService serves the specialty catalog through a read-through
// cache and invalidates it on writes.
type SpecialtyService struct {
	specialties repository.SpecialtyRepository
	cache       *cache.Cache
	cacheTTL    time.Duration
	dispatcher  events.Dispatcher
}

// NewSpecialtyService builds the service.
func NewSpecialtyService(cfg config.Config, specialties repository.SpecialtyRepository, c *cache.Cache, dispatcher events.Dispatcher) *SpecialtyService {
	return &SpecialtyService{
		specialties: specialties,
		cache:       c,
		cacheTTL:    cfg.Cache.TTL(),
		dispatcher:  dispatcher,
	}
}

// ListAll returns the active specialties, served from cache when possible.
func (s *SpecialtyService) ListAll(ctx context.Context) ([]SpecialtyView, error) {
	return cache.GetOrCompute(ctx, s.cache, allSpecialtiesKey, s.cacheTTL, func(ctx context.Context) ([]SpecialtyView, error) {
		specialties, err := s.specialties.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		views := make([]SpecialtyView, 0, len(specialties))
		for _, specialty := range specialties {
			views = append(views, specialtyView(specialty))
		}
		return views, nil
	})
}

// GetByID returns a single active specialty, uncached.
func (s *SpecialtyService) GetByID(ctx context.Context, id string) (*SpecialtyView, error) {
	specialty, err := s.specialties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("specialty", map[string]any{"id": id})
		}
		return nil, err
	}
	view := specialtyView(specialty)
	return &view, nil
}

// Create adds a catalog entry and invalidates the listing cache before
// returning, so no subsequent read can serve a pre-creation snapshot.
func (s *SpecialtyService) Create(ctx context.Context, name, description string) (*SpecialtyView, error) {
	specialty, err := domain.NewSpecialty(name, description)
	if err != nil {
		return nil, err
	}
	if err := s.specialties.Create(ctx, specialty); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, allSpecialtiesKey)

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventSpecialtyCreated,
		SubjectID: specialty.ID,
		Timestamp: time.Now().UTC(),
		Payload:   events.SpecialtyCreatedPayload{Name: specialty.Name},
	})

	view := specialtyView(specialty)
	return &view, nil
}

func specialtyView(specialty *domain.Specialty) SpecialtyView {
	return SpecialtyView{
		ID:          specialty.ID,
		Name:        specialty.Name,
		Description: specialty.Description,
		CreatedAt:   specialty.CreatedAt,
	}
}
