package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/clinic-directory/internal/domain"
)

func testAccount() *domain.Account {
	return &domain.Account{
		ID:    "5f1c0f0a-9b1e-4b56-a6a7-3f5b1e2d4c8e",
		Name:  "Dra. Ana Souza",
		Email: "teste@teste.com",
		Role:  domain.RoleDoctor,
	}
}

func TestIssueAndValidate(t *testing.T) {
	tm := NewTokenManager("test-secret", "clinic-directory", "clinic-directory-clients", time.Hour)

	token, expiresAt, err := tm.Issue(testAccount())
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	assert.True(t, tm.Validate(token))

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "5f1c0f0a-9b1e-4b56-a6a7-3f5b1e2d4c8e", claims.Subject)
	assert.Equal(t, "teste@teste.com", claims.Email)
	assert.Equal(t, "Dra. Ana Souza", claims.Name)
	assert.Equal(t, domain.RoleDoctor, claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", "clinic-directory", "clinic-directory-clients", time.Hour)

	assert.False(t, tm.Validate(""))
	assert.False(t, tm.Validate("garbage"))
	assert.False(t, tm.Validate("a.b.c"))
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuing := NewTokenManager("secret-one", "clinic-directory", "clinic-directory-clients", time.Hour)
	verifying := NewTokenManager("secret-two", "clinic-directory", "clinic-directory-clients", time.Hour)

	token, _, err := issuing.Issue(testAccount())
	require.NoError(t, err)
	assert.True(t, issuing.Validate(token))
	assert.False(t, verifying.Validate(token))
}

func TestValidateRejectsIssuerAndAudienceMismatch(t *testing.T) {
	issuing := NewTokenManager("test-secret", "clinic-directory", "clinic-directory-clients", time.Hour)
	wrongIssuer := NewTokenManager("test-secret", "someone-else", "clinic-directory-clients", time.Hour)
	wrongAudience := NewTokenManager("test-secret", "clinic-directory", "other-clients", time.Hour)

	token, _, err := issuing.Issue(testAccount())
	require.NoError(t, err)
	assert.False(t, wrongIssuer.Validate(token))
	assert.False(t, wrongAudience.Validate(token))
}

func TestValidateRejectsExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", "clinic-directory", "clinic-directory-clients", 10*time.Millisecond)

	token, _, err := tm.Issue(testAccount())
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	assert.False(t, tm.Validate(token))
}

func TestJTIUniquePerToken(t *testing.T) {
	tm := NewTokenManager("test-secret", "clinic-directory", "clinic-directory-clients", time.Hour)
	account := testAccount()

	first, _, err := tm.Issue(account)
	require.NoError(t, err)
	second, _, err := tm.Issue(account)
	require.NoError(t, err)

	firstClaims, err := tm.Parse(first)
	require.NoError(t, err)
	secondClaims, err := tm.Parse(second)
	require.NoError(t, err)
	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}

func TestGenerateRefreshTokenPairwiseDistinct(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		token, err := GenerateRefreshToken()
		require.NoError(t, err)
		require.NotEmpty(t, token)

		_, dup := seen[token]
		require.False(t, dup, "refresh token collision after %d draws", i)
		seen[token] = struct{}{}
	}
}
