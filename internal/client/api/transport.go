package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"golang.org/x/sync/singleflight"

	"github.com/fallou/teranga/internal/client/storage"
	pkgapi "github.com/fallou/teranga/pkg/api"
)

// RefreshFunc exchanges a refresh token for new credentials.
// It is satisfied by a bare Client.Refresh wrapped to pass the token.
type RefreshFunc func(ctx context.Context, refreshToken string) (*pkgapi.RefreshResponse, error)

// Transport is an http.RoundTripper that attaches the stored access token
// to outgoing requests and transparently refreshes it on 401 responses.
//
// Concurrent requests that hit the same expiry share a single refresh call
// through singleflight; every waiter replays with the token that call
// produced. A request is replayed at most once: if the replay comes back
// 401 again the response is returned as-is.
type Transport struct {
	base             http.RoundTripper
	store            storage.CredentialStorage
	refresh          RefreshFunc
	onSessionExpired func()

	sf singleflight.Group
}

var _ http.RoundTripper = (*Transport)(nil)

// TransportOption configures the Transport
type TransportOption func(*Transport)

// WithBase sets the underlying round tripper
func WithBase(rt http.RoundTripper) TransportOption {
	return func(t *Transport) { t.base = rt }
}

// WithSessionExpiredHook registers a callback invoked exactly once when a
// refresh attempt fails and the stored credentials are cleared.
func WithSessionExpiredHook(fn func()) TransportOption {
	return func(t *Transport) { t.onSessionExpired = fn }
}

// NewTransport creates an authenticating transport
func NewTransport(store storage.CredentialStorage, refresh RefreshFunc, opts ...TransportOption) *Transport {
	t := &Transport{
		base:    http.DefaultTransport,
		store:   store,
		refresh: refresh,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// RoundTrip implements http.RoundTripper
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	var token string
	if creds, err := t.store.GetCredentials(ctx); err == nil {
		token = creds.AccessToken
	}

	resp, err := t.base.RoundTrip(withBearer(req, token))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	creds, err := t.store.GetCredentials(ctx)
	if err != nil || creds.RefreshToken == "" {
		return resp, nil
	}

	// A request whose body cannot be rewound cannot be replayed.
	if req.Body != nil && req.GetBody == nil {
		return resp, nil
	}

	newToken, err := t.refreshAccessToken(ctx, creds.RefreshToken)
	if err != nil {
		drainBody(resp)
		return nil, fmt.Errorf("%w: %w", ErrSessionExpired, err)
	}
	drainBody(resp)

	retry := withBearer(req, newToken)
	if req.GetBody != nil {
		body, bodyErr := req.GetBody()
		if bodyErr != nil {
			return nil, fmt.Errorf("failed to rewind request body: %w", bodyErr)
		}
		retry.Body = body
	}

	// Single replay, returned as-is even if it fails with 401 again.
	return t.base.RoundTrip(retry)
}

// refreshAccessToken performs the refresh exchange, collapsing concurrent
// callers into one server round trip.
func (t *Transport) refreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	v, err, _ := t.sf.Do("refresh", func() (interface{}, error) {
		resp, refreshErr := t.refresh(ctx, refreshToken)
		if refreshErr != nil {
			// Clear and notify inside the flight so each happens exactly
			// once no matter how many requests were waiting.
			if clearErr := t.store.Clear(ctx); clearErr != nil {
				slog.Error("failed to clear credentials after refresh failure", "error", clearErr)
			}
			if t.onSessionExpired != nil {
				t.onSessionExpired()
			}
			return nil, refreshErr
		}

		creds := &storage.Credentials{
			AccessToken:  resp.AccessToken,
			RefreshToken: resp.RefreshToken,
		}
		if saveErr := t.store.SaveCredentials(ctx, creds); saveErr != nil {
			return nil, fmt.Errorf("failed to persist refreshed credentials: %w", saveErr)
		}
		return resp.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// withBearer clones the request with the Authorization header set
func withBearer(req *http.Request, token string) *http.Request {
	clone := req.Clone(req.Context())
	if token != "" {
		clone.Header.Set("Authorization", "Bearer "+token)
	}
	return clone
}

// drainBody releases a response body so the connection can be reused
func drainBody(resp *http.Response) {
	if resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
