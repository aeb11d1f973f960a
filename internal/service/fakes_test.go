package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/clinic-directory/internal/auth"
	"github.com/spec-kit/clinic-directory/internal/cache"
	"github.com/spec-kit/clinic-directory/internal/config"
	"github.com/spec-kit/clinic-directory/internal/domain"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			JWTIssuer:             "clinic-directory",
			JWTAudience:           "clinic-directory-clients",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            bcrypt.MinCost,
		},
		Cache: config.CacheConfig{TTLMinutes: 30},
	}
}

func mustHash(password string) string {
	hash, err := auth.HashPassword(password, bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return hash
}

// fakeAccountRepo is an in-memory AccountRepository that counts writes so
// tests can assert the zero-writes-on-failure property.
type fakeAccountRepo struct {
	accounts map[string]*domain.Account
	creates  int
	updates  int
}

func newFakeAccountRepo(accounts ...*domain.Account) *fakeAccountRepo {
	repo := &fakeAccountRepo{accounts: make(map[string]*domain.Account)}
	for _, account := range accounts {
		repo.accounts[account.ID] = account
	}
	return repo
}

func (r *fakeAccountRepo) Create(_ context.Context, account *domain.Account) error {
	r.creates++
	r.accounts[account.ID] = account
	return nil
}

func (r *fakeAccountRepo) Update(_ context.Context, account *domain.Account) error {
	r.updates++
	if _, ok := r.accounts[account.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.accounts[account.ID] = account
	return nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	if account, ok := r.accounts[id]; ok {
		return account, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, account := range r.accounts {
		if account.Email == email {
			return account, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeAccountRepo) GetByCPF(_ context.Context, cpf string) (*domain.Account, error) {
	for _, account := range r.accounts {
		if account.CPF == cpf {
			return account, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// fakeDoctorRepo is an in-memory DoctorRepository.
type fakeDoctorRepo struct {
	doctors map[string]*domain.Doctor
	creates int
	updates int
}

func newFakeDoctorRepo(doctors ...*domain.Doctor) *fakeDoctorRepo {
	repo := &fakeDoctorRepo{doctors: make(map[string]*domain.Doctor)}
	for _, doctor := range doctors {
		repo.doctors[doctor.ID] = doctor
	}
	return repo
}

func (r *fakeDoctorRepo) Create(_ context.Context, doctor *domain.Doctor) error {
	r.creates++
	r.doctors[doctor.ID] = doctor
	return nil
}

func (r *fakeDoctorRepo) Update(_ context.Context, doctor *domain.Doctor) error {
	r.updates++
	if _, ok := r.doctors[doctor.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.doctors[doctor.ID] = doctor
	return nil
}

func (r *fakeDoctorRepo) GetByID(_ context.Context, id string) (*domain.Doctor, error) {
	if doctor, ok := r.doctors[id]; ok {
		return doctor, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeDoctorRepo) GetByAccountID(_ context.Context, accountID string) (*domain.Doctor, error) {
	for _, doctor := range r.doctors {
		if doctor.AccountID == accountID {
			return doctor, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeDoctorRepo) GetByLicense(_ context.Context, licenseNumber string) (*domain.Doctor, error) {
	for _, doctor := range r.doctors {
		if doctor.LicenseNumber == licenseNumber {
			return doctor, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeDoctorRepo) ListBySpecialty(_ context.Context, specialtyID string) ([]*domain.Doctor, error) {
	var doctors []*domain.Doctor
	for _, doctor := range r.doctors {
		if doctor.SpecialtyID == specialtyID {
			doctors = append(doctors, doctor)
		}
	}
	return doctors, nil
}

// fakeSpecialtyRepo is an in-memory SpecialtyRepository.
type fakeSpecialtyRepo struct {
	specialties map[string]*domain.Specialty
	creates     int
}

func newFakeSpecialtyRepo(specialties ...*domain.Specialty) *fakeSpecialtyRepo {
	repo := &fakeSpecialtyRepo{specialties: make(map[string]*domain.Specialty)}
	for _, specialty := range specialties {
		repo.specialties[specialty.ID] = specialty
	}
	return repo
}

func (r *fakeSpecialtyRepo) Create(_ context.Context, specialty *domain.Specialty) error {
	r.creates++
	r.specialties[specialty.ID] = specialty
	return nil
}

func (r *fakeSpecialtyRepo) GetByID(_ context.Context, id string) (*domain.Specialty, error) {
	if specialty, ok := r.specialties[id]; ok && specialty.Active {
		return specialty, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeSpecialtyRepo) ListAll(_ context.Context) ([]*domain.Specialty, error) {
	var specialties []*domain.Specialty
	for _, specialty := range r.specialties {
		if specialty.Active {
			specialties = append(specialties, specialty)
		}
	}
	return specialties, nil
}

// memBackend is an in-memory cache.Backend recording deletions.
type memBackend struct {
	entries map[string][]byte
	dels    []string
}

func newMemBackend() *memBackend {
	return &memBackend{entries: make(map[string][]byte)}
}

func (b *memBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	data, ok := b.entries[key]
	return data, ok, nil
}

func (b *memBackend) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	b.entries[key] = value
	return nil
}

func (b *memBackend) Del(_ context.Context, keys ...string) error {
	b.dels = append(b.dels, keys...)
	for _, key := range keys {
		delete(b.entries, key)
	}
	return nil
}

func (b *memBackend) has(key string) bool {
	_, ok := b.entries[key]
	return ok
}

func newTestCache(backend *memBackend) *cache.Cache {
	return cache.New(backend, zap.NewNop())
}
