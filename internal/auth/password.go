package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/spec-kit/clinic-directory/pkg/util"
)

// HashPassword hashes a plaintext password with the configured bcrypt cost.
// An empty or whitespace-only password is a domain violation, rejected
// before any hashing work happens.
func HashPassword(password string, cost int) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", apperrors.NewValidationError("password cannot be empty", nil)
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	return string(hashed), nil
}

// ComparePassword verifies a candidate password against a stored digest.
// Malformed digests compare as false; this never errors outward.
func ComparePassword(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
