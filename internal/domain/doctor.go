package domain

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	apperrors "github.com/spec-kit/clinic-directory/pkg/util"
)

// Doctor extends an Account with the professional registration data.
// Exactly one Doctor exists per account with RoleDoctor.
type Doctor struct {
	ID              string
	AccountID       string
	SpecialtyID     string
	LicenseNumber   string
	ConsultationFee decimal.Decimal
}

// NewDoctor builds a validated doctor record bound to an existing account.
func NewDoctor(accountID, specialtyID, licenseNumber string, consultationFee decimal.Decimal) (*Doctor, error) {
	doctor := &Doctor{
		ID:              uuid.NewString(),
		AccountID:       accountID,
		SpecialtyID:     specialtyID,
		LicenseNumber:   licenseNumber,
		ConsultationFee: consultationFee,
	}
	if err := doctor.Validate(); err != nil {
		return nil, err
	}
	return doctor, nil
}

// UpdateDetails replaces license, specialty and fee, then revalidates.
// The owning account never changes.
func (d *Doctor) UpdateDetails(licenseNumber, specialtyID string, consultationFee decimal.Decimal) error {
	d.LicenseNumber = licenseNumber
	d.SpecialtyID = specialtyID
	d.ConsultationFee = consultationFee
	return d.Validate()
}

// Validate enforces the doctor invariants.
func (d *Doctor) Validate() error {
	if strings.TrimSpace(d.LicenseNumber) == "" {
		return apperrors.NewValidationError("license number cannot be empty", nil)
	}
	if strings.TrimSpace(d.AccountID) == "" {
		return apperrors.NewValidationError("account id cannot be empty", nil)
	}
	if strings.TrimSpace(d.SpecialtyID) == "" {
		return apperrors.NewValidationError("specialty id cannot be empty", nil)
	}
	if !d.ConsultationFee.IsPositive() {
		return apperrors.NewValidationError("consultation fee must be greater than zero", nil)
	}
	return nil
}
