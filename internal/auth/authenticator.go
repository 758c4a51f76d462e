package auth

import (
	"context"

	"github.com/mmynk/hisaab/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods
// without changing the service layer code.
type Authenticator interface {
	// RegisterOrLogin logs in an existing user, or creates the account when
	// the username is new. A known username with the wrong credential fails
	// with ErrInvalidCredentials and no account is touched.
	RegisterOrLogin(ctx context.Context, username, credential string) (*models.User, bool, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
