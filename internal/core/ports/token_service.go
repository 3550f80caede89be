package ports

// TokenPayload is the identity carried inside a session token.
type TokenPayload struct {
	UserID string
	Email  string
}

// TokenService issues and verifies signed, self-contained session tokens.
// No token state is held server-side; a token stays valid until its embedded
// expiry regardless of logout.
type TokenService interface {
	Issue(payload TokenPayload) (string, error)
	// Verify returns the decoded payload, or domain.ErrInvalidToken on any
	// failure (bad signature, malformed, expired).
	Verify(token string) (*TokenPayload, error)
}
