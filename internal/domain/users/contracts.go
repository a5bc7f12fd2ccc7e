package users

import (
	"context"
)

// AuthService resolves the caller of a request.
type AuthService interface {
	// Authenticate verifies the Authorization header value and returns the matching user,
	// provisioning it on first sight. Failures are errs.ErrUnauthorized errors.
	Authenticate(ctx context.Context, authorization string) (*User, error)

	// DevBypassActive reports whether token verification is skipped.
	DevBypassActive() bool
}

// TokenVerifier verifies identity provider ID tokens
type TokenVerifier interface {
	// Verify checks the signature, expiry and audience of idToken and returns the identity it carries.
	Verify(ctx context.Context, idToken string) (*Identity, error)
}

// UserRepository defines the interface for User-related operations
type UserRepository interface {
	// GetByFirebaseUID retrieves a User by Firebase uid; errs.ErrNotFound when absent
	GetByFirebaseUID(ctx context.Context, firebaseUID string) (*User, error)
	// Create adds a new User to the database
	Create(ctx context.Context, user *User) error
}
