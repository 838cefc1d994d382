package ports

import "context"

// AuthResult is the uniform outcome envelope for all identity operations.
// Token is present only on success; Message carries the failure reason or an
// informational success note. Internal error text never appears here.
type AuthResult struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
}

// AuthService defines the identity use cases. All methods follow the
// result-object error strategy: failures, expected or not, are converted
// into an AuthResult and never returned as errors.
type AuthService interface {
	Register(ctx context.Context, username, password, role string) *AuthResult
	Login(ctx context.Context, username, password string) *AuthResult
	SetRole(ctx context.Context, username, role string) *AuthResult
}

// PasswordHasher is the one-way hashing capability used for stored
// credentials. Implementations must be salted and computationally costly
// (bcrypt or argon2 class).
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}
