package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/fallou/teranga/internal/client/storage"
	"github.com/fallou/teranga/pkg/api"
)

// Fixed keys inside the session bucket
var (
	keyCredentials = []byte("credentials")
	keyProfile     = []byte("profile")
	keyDeviceID    = []byte("device_id")
)

// SaveCredentials stores the credential pair.
// An empty refresh token keeps the previously stored one (the server
// only returns a refresh token when it rotates it).
func (s *Storage) SaveCredentials(ctx context.Context, creds *storage.Credentials) error {
	if creds == nil {
		return fmt.Errorf("credentials are nil")
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		toStore := *creds

		// Preserve the existing refresh token when the new pair has none
		if toStore.RefreshToken == "" {
			if data := bucket.Get(keyCredentials); data != nil {
				var prev storage.Credentials
				if err := json.Unmarshal(data, &prev); err == nil {
					toStore.RefreshToken = prev.RefreshToken
				}
			}
		}

		data, err := json.Marshal(&toStore)
		if err != nil {
			return fmt.Errorf("failed to marshal credentials: %w", err)
		}

		if err := bucket.Put(keyCredentials, data); err != nil {
			return fmt.Errorf("failed to save credentials: %w", err)
		}

		return nil
	})
}

// GetCredentials retrieves the stored credential pair
func (s *Storage) GetCredentials(ctx context.Context) (*storage.Credentials, error) {
	var creds *storage.Credentials

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		data := bucket.Get(keyCredentials)
		if data == nil {
			return storage.ErrCredentialsNotFound
		}

		creds = &storage.Credentials{}
		if err := json.Unmarshal(data, creds); err != nil {
			return fmt.Errorf("failed to unmarshal credentials: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return creds, nil
}

// SaveProfile caches the user profile alongside the credentials
func (s *Storage) SaveProfile(ctx context.Context, user *api.User) error {
	if user == nil {
		return fmt.Errorf("user is nil")
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		data, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("failed to marshal profile: %w", err)
		}

		if err := bucket.Put(keyProfile, data); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}

		return nil
	})
}

// GetProfile retrieves the cached user profile
func (s *Storage) GetProfile(ctx context.Context) (*api.User, error) {
	var user *api.User

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		data := bucket.Get(keyProfile)
		if data == nil {
			return storage.ErrProfileNotFound
		}

		user = &api.User{}
		if err := json.Unmarshal(data, user); err != nil {
			return fmt.Errorf("failed to unmarshal profile: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// SaveDeviceID persists the generated device id.
// The device id survives Clear so repeated logins on the same machine
// keep a stable identity.
func (s *Storage) SaveDeviceID(ctx context.Context, deviceID string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		if err := bucket.Put(keyDeviceID, []byte(deviceID)); err != nil {
			return fmt.Errorf("failed to save device id: %w", err)
		}

		return nil
	})
}

// GetDeviceID retrieves the persisted device id, empty if none
func (s *Storage) GetDeviceID(ctx context.Context) (string, error) {
	var deviceID string

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		if data := bucket.Get(keyDeviceID); data != nil {
			deviceID = string(data)
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	return deviceID, nil
}

// Clear removes credentials and profile (logout). The device id is kept.
func (s *Storage) Clear(ctx context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		if err := bucket.Delete(keyCredentials); err != nil {
			return fmt.Errorf("failed to delete credentials: %w", err)
		}
		if err := bucket.Delete(keyProfile); err != nil {
			return fmt.Errorf("failed to delete profile: %w", err)
		}

		return nil
	})
}
