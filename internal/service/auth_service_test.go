package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/clinic-directory/internal/auth"
	"github.com/spec-kit/clinic-directory/internal/domain"
	apperrors "github.com/spec-kit/clinic-directory/pkg/util"
)

func newTestAccount(t *testing.T, email, cpf, password string, role domain.AccountRole) *domain.Account {
	t.Helper()
	account, err := domain.NewAccount("Conta Teste", email, cpf, mustHash(password), role)
	require.NoError(t, err)
	return account
}

func TestLoginByEmail(t *testing.T) {
	account := newTestAccount(t, "teste@teste.com", "12345678901", "Senha123!", domain.RolePatient)
	accounts := newFakeAccountRepo(account)
	svc := NewAuthService(testConfig(), AuthDependencies{AccountRepo: accounts, DoctorRepo: newFakeDoctorRepo()})

	credential, err := svc.LoginByEmail(context.Background(), "teste@teste.com", "Senha123!")
	require.NoError(t, err)

	assert.NotEmpty(t, credential.Token)
	assert.NotEmpty(t, credential.RefreshToken)
	assert.Equal(t, "Conta Teste", credential.DisplayName)
	assert.Equal(t, domain.RolePatient, credential.Role)
	assert.True(t, svc.ValidateToken(credential.Token))

	// Exactly one write: the last_login_at stamp.
	assert.Equal(t, 1, accounts.updates)
	require.NotNil(t, account.LastLoginAt)
}

func TestLoginByEmailWrongPassword(t *testing.T) {
	account := newTestAccount(t, "teste@teste.com", "12345678901", "Senha123!", domain.RolePatient)
	accounts := newFakeAccountRepo(account)
	svc := NewAuthService(testConfig(), AuthDependencies{AccountRepo: accounts, DoctorRepo: newFakeDoctorRepo()})

	_, err := svc.LoginByEmail(context.Background(), "teste@teste.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeUnauthorized, apperrors.CodeOf(err))
	assert.Zero(t, accounts.updates)
	assert.Nil(t, account.LastLoginAt)
}

func TestLoginByEmailUnknownAccountSameError(t *testing.T) {
	account := newTestAccount(t, "teste@teste.com", "12345678901", "Senha123!", domain.RolePatient)
	accounts := newFakeAccountRepo(account)
	svc := NewAuthService(testConfig(), AuthDependencies{AccountRepo: accounts, DoctorRepo: newFakeDoctorRepo()})

	_, missErr := svc.LoginByEmail(context.Background(), "nobody@teste.com", "Senha123!")
	_, wrongErr := svc.LoginByEmail(context.Background(), "teste@teste.com", "wrong")

	// Missing account and wrong password must be indistinguishable.
	require.Error(t, missErr)
	require.Error(t, wrongErr)
	assert.Equal(t, wrongErr.Error(), missErr.Error())
	assert.Zero(t, accounts.updates)
}

func TestLoginByCPF(t *testing.T) {
	account := newTestAccount(t, "teste@teste.com", "12345678901", "Senha123!", domain.RoleAdministrator)
	accounts := newFakeAccountRepo(account)
	svc := NewAuthService(testConfig(), AuthDependencies{AccountRepo: accounts, DoctorRepo: newFakeDoctorRepo()})

	credential, err := svc.LoginByCPF(context.Background(), "12345678901", "Senha123!")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdministrator, credential.Role)
	assert.Equal(t, 1, accounts.updates)

	_, err = svc.LoginByCPF(context.Background(), "00000000000", "Senha123!")
	assert.Equal(t, apperrors.CodeUnauthorized, apperrors.CodeOf(err))
}

func TestLoginByLicense(t *testing.T) {
	account := newTestAccount(t, "dra@teste.com", "12345678901", "Senha123!", domain.RoleDoctor)
	doctor, err := domain.NewDoctor(account.ID, "specialty-1", "CRM12345", decimal.NewFromInt(250))
	require.NoError(t, err)

	accounts := newFakeAccountRepo(account)
	doctors := newFakeDoctorRepo(doctor)
	svc := NewAuthService(testConfig(), AuthDependencies{AccountRepo: accounts, DoctorRepo: doctors})

	credential, err := svc.LoginByLicense(context.Background(), "CRM12345", "Senha123!")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleDoctor, credential.Role)
	assert.Equal(t, 1, accounts.updates)
}

func TestLoginByLicenseRoleGuard(t *testing.T) {
	// License bound to a patient account: correct password must still fail.
	account := newTestAccount(t, "paciente@teste.com", "12345678901", "Senha123!", domain.RolePatient)
	doctor := &domain.Doctor{ID: "doctor-1", AccountID: account.ID, SpecialtyID: "specialty-1", LicenseNumber: "CRM12345", ConsultationFee: decimal.NewFromInt(250)}

	accounts := newFakeAccountRepo(account)
	doctors := newFakeDoctorRepo(doctor)
	svc := NewAuthService(testConfig(), AuthDependencies{AccountRepo: accounts, DoctorRepo: doctors})

	_, err := svc.LoginByLicense(context.Background(), "CRM12345", "Senha123!")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeUnauthorized, apperrors.CodeOf(err))
	assert.Zero(t, accounts.updates)
}

func TestLoginByLicenseOrphanDoctor(t *testing.T) {
	doctor := &domain.Doctor{ID: "doctor-1", AccountID: "gone", SpecialtyID: "specialty-1", LicenseNumber: "CRM12345", ConsultationFee: decimal.NewFromInt(250)}
	accounts := newFakeAccountRepo()
	svc := NewAuthService(testConfig(), AuthDependencies{AccountRepo: accounts, DoctorRepo: newFakeDoctorRepo(doctor)})

	_, err := svc.LoginByLicense(context.Background(), "CRM12345", "Senha123!")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeUnauthorized, apperrors.CodeOf(err))
}

func TestValidateTokenPure(t *testing.T) {
	svc := NewAuthService(testConfig(), AuthDependencies{AccountRepo: newFakeAccountRepo(), DoctorRepo: newFakeDoctorRepo()})
	assert.False(t, svc.ValidateToken("garbage"))
}

func TestCurrentAccount(t *testing.T) {
	account := newTestAccount(t, "teste@teste.com", "12345678901", "Senha123!", domain.RolePatient)
	svc := NewAuthService(testConfig(), AuthDependencies{AccountRepo: newFakeAccountRepo(account), DoctorRepo: newFakeDoctorRepo()})

	found, err := svc.CurrentAccount(context.Background(), "teste@teste.com")
	require.NoError(t, err)
	assert.Equal(t, account.ID, found.ID)

	_, err = svc.CurrentAccount(context.Background(), "")
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))

	_, err = svc.CurrentAccount(context.Background(), "nobody@teste.com")
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))
}

func TestChangePassword(t *testing.T) {
	account := newTestAccount(t, "teste@teste.com", "12345678901", "Senha123!", domain.RolePatient)
	oldHash := account.PasswordHash
	accounts := newFakeAccountRepo(account)
	svc := NewAuthService(testConfig(), AuthDependencies{AccountRepo: accounts, DoctorRepo: newFakeDoctorRepo()})

	require.NoError(t, svc.ChangePassword(context.Background(), "teste@teste.com", "Senha123!", "NovaSenha456!"))
	assert.Equal(t, 1, accounts.updates)
	assert.NotEqual(t, oldHash, account.PasswordHash)
	assert.True(t, auth.ComparePassword(account.PasswordHash, "NovaSenha456!"))
	assert.False(t, auth.ComparePassword(account.PasswordHash, "Senha123!"))
}

func TestChangePasswordFailures(t *testing.T) {
	account := newTestAccount(t, "teste@teste.com", "12345678901", "Senha123!", domain.RolePatient)
	oldHash := account.PasswordHash
	accounts := newFakeAccountRepo(account)
	svc := NewAuthService(testConfig(), AuthDependencies{AccountRepo: accounts, DoctorRepo: newFakeDoctorRepo()})

	err := svc.ChangePassword(context.Background(), "", "Senha123!", "NovaSenha456!")
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))

	err = svc.ChangePassword(context.Background(), "nobody@teste.com", "Senha123!", "NovaSenha456!")
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))

	err = svc.ChangePassword(context.Background(), "teste@teste.com", "wrong", "NovaSenha456!")
	assert.Equal(t, apperrors.CodeUnauthorized, apperrors.CodeOf(err))

	err = svc.ChangePassword(context.Background(), "teste@teste.com", "Senha123!", "")
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))

	// None of the failing paths wrote anything.
	assert.Zero(t, accounts.updates)
	assert.Equal(t, oldHash, account.PasswordHash)
}
