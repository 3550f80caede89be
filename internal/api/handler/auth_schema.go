package handler

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// userData is the safe identity payload echoed to the client. Field names are
// part of the wire contract with the front end.
type userData struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// authResponse is returned by both Register and Login.
type authResponse struct {
	Message  string   `json:"message"`
	UserData userData `json:"userData"`
	Token    string   `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// verifyResponse reports session state. Absence of a session is a valid,
// expected state; Verify never returns an error status.
type verifyResponse struct {
	Message       string    `json:"message"`
	Authenticated bool      `json:"authenticated"`
	TokenPresent  bool      `json:"tokenPresent"`
	UserData      *userData `json:"userData,omitempty"`
}
