package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-directory/internal/api/dto"
	"github.com/spec-kit/clinic-directory/internal/auth"
	"github.com/spec-kit/clinic-directory/internal/service"
	apperrors "github.com/spec-kit/clinic-directory/pkg/util"
)

// AuthHandler exposes the login and account-access endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// LoginByEmail handles POST /auth/login.
func (h *AuthHandler) LoginByEmail(c *fiber.Ctx) error {
	var req dto.EmailLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	credential, err := h.auth.LoginByEmail(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCredentialResponse(credential)})
}

// LoginByCPF handles POST /auth/login/cpf.
func (h *AuthHandler) LoginByCPF(c *fiber.Ctx) error {
	var req dto.CPFLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.CPF == "" || req.Password == "" {
		return apperrors.NewValidationError("cpf and password required", nil)
	}

	credential, err := h.auth.LoginByCPF(c.Context(), req.CPF, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCredentialResponse(credential)})
}

// LoginByLicense handles POST /auth/login/license.
func (h *AuthHandler) LoginByLicense(c *fiber.Ctx) error {
	var req dto.LicenseLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.LicenseNumber == "" || req.Password == "" {
		return apperrors.NewValidationError("license number and password required", nil)
	}

	credential, err := h.auth.LoginByLicense(c.Context(), req.LicenseNumber, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCredentialResponse(credential)})
}

// ValidateToken handles POST /auth/validate.
func (h *AuthHandler) ValidateToken(c *fiber.Ctx) error {
	var req dto.ValidateTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"valid": h.auth.ValidateToken(req.Token)}})
}

// Me handles GET /auth/me for the authenticated account.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	account, err := h.auth.CurrentAccount(c.Context(), principal.Account.Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewProfileResponse(account, nil)})
}

// ChangePassword handles POST /auth/password/change.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.PasswordChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if err := h.auth.ChangePassword(c.Context(), principal.Account.Email, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"changed": true}})
}
