package dto

import (
	"time"

	"github.com/spec-kit/clinic-directory/internal/domain"
)

// EmailLoginRequest payload for email login.
type EmailLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CPFLoginRequest payload for cpf login.
type CPFLoginRequest struct {
	CPF      string `json:"cpf"`
	Password string `json:"password"`
}

// LicenseLoginRequest payload for doctor license login.
type LicenseLoginRequest struct {
	LicenseNumber string `json:"license_number"`
	Password      string `json:"password"`
}

// ValidateTokenRequest payload for token validation.
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// PasswordChangeRequest payload for authenticated password changes.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// CredentialResponse is the bundle returned on successful login.
type CredentialResponse struct {
	Token        string             `json:"token"`
	RefreshToken string             `json:"refresh_token"`
	ExpiresAt    time.Time          `json:"expires_at"`
	DisplayName  string             `json:"display_name"`
	Role         domain.AccountRole `json:"role"`
}

// NewCredentialResponse maps a credential bundle.
func NewCredentialResponse(credential *domain.Credential) CredentialResponse {
	return CredentialResponse{
		Token:        credential.Token,
		RefreshToken: credential.RefreshToken,
		ExpiresAt:    credential.ExpiresAt,
		DisplayName:  credential.DisplayName,
		Role:         credential.Role,
	}
}
