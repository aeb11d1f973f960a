package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/clinic-directory/internal/domain"
	"github.com/spec-kit/clinic-directory/internal/events"
	apperrors "github.com/spec-kit/clinic-directory/pkg/util"
)

func newSpecialtyService(repo *fakeSpecialtyRepo, backend *memBackend) *SpecialtyService {
	return NewSpecialtyService(testConfig(), repo, newTestCache(backend), events.NewInMemoryDispatcher())
}

func TestListAllCachesResult(t *testing.T) {
	specialty, err := domain.NewSpecialty("Cardiologia", "Cuidados com o coração")
	require.NoError(t, err)
	repo := newFakeSpecialtyRepo(specialty)
	backend := newMemBackend()
	svc := newSpecialtyService(repo, backend)

	views, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Cardiologia", views[0].Name)
	assert.True(t, backend.has("specialties_all"))

	// Second read is served from the cache: mutate the store behind the
	// cache's back and expect the old listing.
	delete(repo.specialties, specialty.ID)
	cached, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, cached, 1)
}

func TestCreateInvalidatesListing(t *testing.T) {
	repo := newFakeSpecialtyRepo()
	backend := newMemBackend()
	svc := newSpecialtyService(repo, backend)

	// Warm the cache with the pre-creation snapshot.
	_, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.True(t, backend.has("specialties_all"))

	created, err := svc.Create(context.Background(), "Cardiologia", "Cuidados com o coração")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	// The listing key is gone before Create returns; the next read must
	// not serve the stale snapshot.
	assert.False(t, backend.has("specialties_all"))
	views, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Cardiologia", views[0].Name)
}

func TestCreateValidation(t *testing.T) {
	repo := newFakeSpecialtyRepo()
	svc := newSpecialtyService(repo, newMemBackend())

	_, err := svc.Create(context.Background(), "", "Cuidados com o coração")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
	assert.Zero(t, repo.creates)
}

func TestGetByID(t *testing.T) {
	specialty, err := domain.NewSpecialty("Cardiologia", "Cuidados com o coração")
	require.NoError(t, err)
	svc := newSpecialtyService(newFakeSpecialtyRepo(specialty), newMemBackend())

	view, err := svc.GetByID(context.Background(), specialty.ID)
	require.NoError(t, err)
	assert.Equal(t, specialty.ID, view.ID)

	_, err = svc.GetByID(context.Background(), "missing")
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

func TestGetByIDSkipsInactive(t *testing.T) {
	specialty, err := domain.NewSpecialty("Cardiologia", "Cuidados com o coração")
	require.NoError(t, err)
	specialty.Active = false
	svc := newSpecialtyService(newFakeSpecialtyRepo(specialty), newMemBackend())

	// Specialty reads filter on the active flag; account and doctor
	// reads deliberately do not.
	_, err = svc.GetByID(context.Background(), specialty.ID)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}
