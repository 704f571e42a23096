package models

// LoginRequest is the email/password login payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GoogleLoginRequest carries a Google ID token from the dashboard
type GoogleLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// LoginResponse is returned after a successful login
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// BootstrapRequest creates the first admin account. Guarded by the
// SETUP_TOKEN environment variable.
type BootstrapRequest struct {
	SetupToken string `json:"setupToken" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	FullName   string `json:"fullName" validate:"required"`
}

// CreateUserRequest is used by admins to provision staff accounts
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"fullName" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=admin manager viewer"`
}
