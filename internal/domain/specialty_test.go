package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/clinic-directory/pkg/util"
)

func TestNewSpecialty(t *testing.T) {
	specialty, err := NewSpecialty("Cardiologia", "Cuidados com o coração")
	require.NoError(t, err)

	assert.NotEmpty(t, specialty.ID)
	assert.True(t, specialty.Active)
	assert.Equal(t, "Cardiologia", specialty.Name)
}

func TestNewSpecialtyValidation(t *testing.T) {
	cases := []struct {
		name        string
		specialty   string
		description string
	}{
		{"empty name", "", "Cuidados com o coração"},
		{"blank name", "   ", "Cuidados com o coração"},
		{"empty description", "Cardiologia", ""},
		{"blank description", "Cardiologia", "  "},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			specialty, err := NewSpecialty(tc.specialty, tc.description)
			require.Error(t, err)
			assert.Nil(t, specialty)
			assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
		})
	}
}
