package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/clinic-directory/internal/auth"
	"github.com/spec-kit/clinic-directory/internal/config"
	"github.com/spec-kit/clinic-directory/internal/domain"
	"github.com/spec-kit/clinic-directory/internal/repository"
	apperrors "github.com/spec-kit/clinic-directory/pkg/util"
)

// AuthService coordinates the login variants, token validation, profile
// lookup and password changes. Each entry point is a single
// request/response transaction; failure paths make zero writes.
type AuthService struct {
	accounts   repository.AccountRepository
	doctors    repository.DoctorRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for the auth service.
type AuthDependencies struct {
	AccountRepo repository.AccountRepository
	DoctorRepo  repository.DoctorRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		accounts:   deps.AccountRepo,
		doctors:    deps.DoctorRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience, cfg.Auth.AccessTokenTTL()),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// LoginByEmail authenticates by email and password. A missing account and
// a wrong password produce the same error so callers cannot enumerate
// registered emails.
func (s *AuthService) LoginByEmail(ctx context.Context, email, password string) (*domain.Credential, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}
	if !auth.ComparePassword(account.PasswordHash, password) {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	return s.finishLogin(ctx, account)
}

// LoginByCPF authenticates by cpf and password, same flow as by email.
func (s *AuthService) LoginByCPF(ctx context.Context, cpf, password string) (*domain.Credential, error) {
	account, err := s.accounts.GetByCPF(ctx, cpf)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}
	if !auth.ComparePassword(account.PasswordHash, password) {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	return s.finishLogin(ctx, account)
}

// LoginByLicense authenticates a doctor by license number. An account that
// is not a doctor must never authenticate through this path, even with the
// correct password.
func (s *AuthService) LoginByLicense(ctx context.Context, licenseNumber, password string) (*domain.Credential, error) {
	doctor, err := s.doctors.GetByLicense(ctx, licenseNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}

	account, err := s.accounts.GetByID(ctx, doctor.AccountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Doctor without an owning account is an internal
			// inconsistency, still surfaced as an auth failure.
			return nil, apperrors.NewUnauthorized("account not found")
		}
		return nil, err
	}

	if !auth.ComparePassword(account.PasswordHash, password) {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if account.Role != domain.RoleDoctor {
		return nil, apperrors.NewUnauthorized("account is not a doctor")
	}
	return s.finishLogin(ctx, account)
}

// finishLogin records the login, persists it, and issues the credential
// bundle. The single account update here is the only write a login makes.
func (s *AuthService) finishLogin(ctx context.Context, account *domain.Account) (*domain.Credential, error) {
	account.RecordLogin(time.Now())
	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokenMgr.Issue(account)
	if err != nil {
		return nil, err
	}
	refreshToken, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	return &domain.Credential{
		Token:        token,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		DisplayName:  account.Name,
		Role:         account.Role,
	}, nil
}

// ValidateToken delegates to the token manager; pure, no store access.
func (s *AuthService) ValidateToken(token string) bool {
	return s.tokenMgr.Validate(token)
}

// CurrentAccount returns the account behind an email. The password hash is
// on the returned record; the HTTP layer never serializes it.
func (s *AuthService) CurrentAccount(ctx context.Context, email string) (*domain.Account, error) {
	if strings.TrimSpace(email) == "" {
		return nil, apperrors.NewValidationError("email cannot be empty", nil)
	}
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("account", map[string]any{"email": email})
		}
		return nil, err
	}
	return account, nil
}

// ChangePassword verifies the current password before rehashing and
// persisting the new one. Every failing step leaves the store untouched.
func (s *AuthService) ChangePassword(ctx context.Context, email, currentPassword, newPassword string) error {
	if strings.TrimSpace(email) == "" {
		return apperrors.NewValidationError("email cannot be empty", nil)
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("account", map[string]any{"email": email})
		}
		return err
	}

	if !auth.ComparePassword(account.PasswordHash, currentPassword) {
		return apperrors.NewUnauthorized("current password incorrect")
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	account.PasswordHash = hash
	return s.accounts.Update(ctx, account)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
