package dto

// LoginRequest is the body for POST /api/auth/login (local accounts).
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SSORequest is the body for POST /api/auth/sso, sent by the identity
// gateway after a successful external handshake.
type SSORequest struct {
	Subject  string `json:"subject"` // stable external identity
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// UserResponse is a user without credentials.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// LoginResponse carries the session token and the resolved user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
