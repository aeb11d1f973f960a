package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spec-kit/clinic-directory/internal/domain"
	"github.com/spec-kit/clinic-directory/internal/service"
)

// DoctorPayload is the doctor-specific part of registration and update
// requests; required when role is DOCTOR.
type DoctorPayload struct {
	LicenseNumber   string          `json:"license_number"`
	SpecialtyID     string          `json:"specialty_id"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
}

// RegisterPersonRequest payload for new registrations.
type RegisterPersonRequest struct {
	Name     string             `json:"name"`
	Email    string             `json:"email"`
	Password string             `json:"password"`
	CPF      string             `json:"cpf"`
	Role     domain.AccountRole `json:"role"`
	Doctor   *DoctorPayload     `json:"doctor,omitempty"`
}

// UpdatePersonRequest payload for registration updates.
type UpdatePersonRequest struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Email    string             `json:"email"`
	Password string             `json:"password"`
	CPF      string             `json:"cpf"`
	Role     domain.AccountRole `json:"role"`
	Doctor   *DoctorPayload     `json:"doctor,omitempty"`
}

// DoctorResponse is the embedded doctor sub-record of a profile.
type DoctorResponse struct {
	LicenseNumber   string          `json:"license_number"`
	SpecialtyID     string          `json:"specialty_id"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
}

// ProfileResponse is the public account shape; no password hash.
type ProfileResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	CPF         string             `json:"cpf"`
	Role        domain.AccountRole `json:"role"`
	CreatedAt   time.Time          `json:"created_at"`
	LastLoginAt *time.Time         `json:"last_login_at,omitempty"`
	Doctor      *DoctorResponse    `json:"doctor,omitempty"`
}

// DoctorServiceInput converts the payload for the service layer.
func (p *DoctorPayload) DoctorServiceInput() *service.DoctorInput {
	if p == nil {
		return nil
	}
	return &service.DoctorInput{
		LicenseNumber:   p.LicenseNumber,
		SpecialtyID:     p.SpecialtyID,
		ConsultationFee: p.ConsultationFee,
	}
}

// NewProfileResponse maps an account and optional doctor extension.
func NewProfileResponse(account *domain.Account, doctor *domain.Doctor) ProfileResponse {
	response := ProfileResponse{
		ID:          account.ID,
		Name:        account.Name,
		Email:       account.Email,
		CPF:         account.CPF,
		Role:        account.Role,
		CreatedAt:   account.CreatedAt,
		LastLoginAt: account.LastLoginAt,
	}
	if doctor != nil {
		response.Doctor = &DoctorResponse{
			LicenseNumber:   doctor.LicenseNumber,
			SpecialtyID:     doctor.SpecialtyID,
			ConsultationFee: doctor.ConsultationFee,
		}
	}
	return response
}
