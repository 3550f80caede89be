package domain

import "errors"

// SessionCookieName is the cookie carrying the signed session token.
// The name is part of the wire contract with the front end.
const SessionCookieName = "token"

// ErrInvalidToken is the uniform outcome for any token verification failure.
// Malformed, tampered, and expired tokens are deliberately indistinguishable
// to callers.
var ErrInvalidToken = errors.New("invalid token")
