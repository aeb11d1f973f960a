package domain

import "time"

// Credential is the bundle returned on a successful login. The refresh
// token is opaque and has no redemption path in this service; it is issued
// for the caller to hold but never validated or persisted here.
type Credential struct {
	Token        string
	RefreshToken string
	ExpiresAt    time.Time
	DisplayName  string
	Role         AccountRole
}
