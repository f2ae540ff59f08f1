package storage

import (
	"context"

	"github.com/fallou/teranga/pkg/api"
)

// CredentialStorage defines the durable client-side store for session state.
// It holds exactly one record: the current credential pair, the cached user
// profile and the device id. Only the session controller and the transport's
// refresh handler write to it; every outbound request reads from it.
type CredentialStorage interface {
	// SaveCredentials stores the credential pair. An empty refresh token
	// keeps the previously stored one (the server did not rotate it).
	SaveCredentials(ctx context.Context, creds *Credentials) error

	// GetCredentials retrieves the stored credential pair.
	// Returns ErrCredentialsNotFound if nothing is stored.
	GetCredentials(ctx context.Context) (*Credentials, error)

	// SaveProfile caches the user profile alongside the credentials.
	SaveProfile(ctx context.Context, user *api.User) error

	// GetProfile retrieves the cached user profile.
	// Returns ErrProfileNotFound if nothing is cached.
	GetProfile(ctx context.Context) (*api.User, error)

	// SaveDeviceID persists the generated device id.
	SaveDeviceID(ctx context.Context, deviceID string) error

	// GetDeviceID retrieves the persisted device id, empty if none.
	GetDeviceID(ctx context.Context) (string, error)

	// Clear removes credentials, profile and nothing else (logout).
	Clear(ctx context.Context) error
}

// Credentials represents the stored credential pair.
// Both tokens are opaque bearer strings; expiry is discovered reactively
// via a 401 response, no expiry metadata is kept client-side.
type Credentials struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}
