package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/clinic-directory/pkg/util"
)

func TestNewDoctor(t *testing.T) {
	doctor, err := NewDoctor("account-1", "specialty-1", "CRM12345", decimal.NewFromInt(250))
	require.NoError(t, err)

	assert.NotEmpty(t, doctor.ID)
	assert.Equal(t, "account-1", doctor.AccountID)
	assert.Equal(t, "CRM12345", doctor.LicenseNumber)
}

func TestNewDoctorValidation(t *testing.T) {
	cases := []struct {
		name        string
		accountID   string
		specialtyID string
		license     string
		fee         decimal.Decimal
	}{
		{"empty license", "account-1", "specialty-1", "", decimal.NewFromInt(250)},
		{"empty account id", "", "specialty-1", "CRM12345", decimal.NewFromInt(250)},
		{"empty specialty id", "account-1", "", "CRM12345", decimal.NewFromInt(250)},
		{"zero fee", "account-1", "specialty-1", "CRM12345", decimal.Zero},
		{"negative fee", "account-1", "specialty-1", "CRM12345", decimal.NewFromInt(-10)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doctor, err := NewDoctor(tc.accountID, tc.specialtyID, tc.license, tc.fee)
			require.Error(t, err)
			assert.Nil(t, doctor)
			assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
		})
	}
}

func TestDoctorUpdateDetails(t *testing.T) {
	doctor, err := NewDoctor("account-1", "specialty-1", "CRM12345", decimal.NewFromInt(250))
	require.NoError(t, err)

	require.NoError(t, doctor.UpdateDetails("CRM99999", "specialty-2", decimal.NewFromFloat(310.50)))
	assert.Equal(t, "CRM99999", doctor.LicenseNumber)
	assert.Equal(t, "specialty-2", doctor.SpecialtyID)
	assert.Equal(t, "account-1", doctor.AccountID)

	err = doctor.UpdateDetails("CRM99999", "specialty-2", decimal.Zero)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
}
