package dto

// LoginRequest is optional: the password is only checked when the server
// has an admin password hash configured.
type LoginRequest struct {
	Password string `json:"password"`
}

type AuthResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
}
