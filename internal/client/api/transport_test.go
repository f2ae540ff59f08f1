package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fallou/teranga/internal/client/storage"
	pkgapi "github.com/fallou/teranga/pkg/api"
)

// memStore is an in-memory CredentialStorage for transport tests.
type memStore struct {
	mu       sync.Mutex
	creds    *storage.Credentials
	profile  *pkgapi.User
	deviceID string
}

func (m *memStore) SaveCredentials(_ context.Context, creds *storage.Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *creds
	if stored.RefreshToken == "" && m.creds != nil {
		stored.RefreshToken = m.creds.RefreshToken
	}
	m.creds = &stored
	return nil
}

func (m *memStore) GetCredentials(_ context.Context) (*storage.Credentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.creds == nil {
		return nil, storage.ErrCredentialsNotFound
	}
	c := *m.creds
	return &c, nil
}

func (m *memStore) SaveProfile(_ context.Context, user *pkgapi.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := *user
	m.profile = &u
	return nil
}

func (m *memStore) GetProfile(_ context.Context) (*pkgapi.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.profile == nil {
		return nil, storage.ErrProfileNotFound
	}
	u := *m.profile
	return &u, nil
}

func (m *memStore) SaveDeviceID(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deviceID = id
	return nil
}

func (m *memStore) GetDeviceID(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deviceID, nil
}

func (m *memStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = nil
	m.profile = nil
	return nil
}

func newMemStore(access, refresh string) *memStore {
	s := &memStore{}
	if access != "" || refresh != "" {
		s.creds = &storage.Credentials{AccessToken: access, RefreshToken: refresh}
	}
	return s
}

func TestTransport_AttachesBearer(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store := newMemStore("T1", "R1")
	tr := NewTransport(store, nil)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := tr.RoundTrip(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Bearer T1", gotAuth)
}

func TestTransport_NoCredentials(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tr := NewTransport(newMemStore("", ""), nil)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := tr.RoundTrip(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Empty(t, gotAuth)
}

func TestTransport_RefreshAndReplay(t *testing.T) {
	var requests []struct {
		auth string
		body string
	}
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		requests = append(requests, struct {
			auth string
			body string
		}{r.Header.Get("Authorization"), string(body)})
		auth := r.Header.Get("Authorization")
		mu.Unlock()
		if auth != "Bearer T2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store := newMemStore("T1", "R1")

	var refreshCalls atomic.Int32
	refresh := func(_ context.Context, refreshToken string) (*pkgapi.RefreshResponse, error) {
		refreshCalls.Add(1)
		assert.Equal(t, "R1", refreshToken)
		return &pkgapi.RefreshResponse{AccessToken: "T2"}, nil
	}

	tr := NewTransport(store, refresh)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, srv.URL,
		strings.NewReader(`{"payload":"hello"}`))
	require.NoError(t, err)

	resp, err := tr.RoundTrip(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(1), refreshCalls.Load())

	require.Len(t, requests, 2)
	assert.Equal(t, "Bearer T1", requests[0].auth)
	assert.Equal(t, "Bearer T2", requests[1].auth)
	assert.Equal(t, `{"payload":"hello"}`, requests[1].body, "replay must carry the original body")

	creds, err := store.GetCredentials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "T2", creds.AccessToken)
	assert.Equal(t, "R1", creds.RefreshToken, "refresh token kept when not rotated")
}

func TestTransport_ConcurrentExpiry(t *testing.T) {
	const n = 10

	// Hold every first-attempt request on a barrier so all of them see the
	// stale token before the first refresh can complete.
	var arrived sync.WaitGroup
	arrived.Add(n)
	release := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer T2" {
			w.WriteHeader(http.StatusOK)
			return
		}
		arrived.Done()
		<-release
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := newMemStore("T1", "R1")

	var refreshCalls atomic.Int32
	refresh := func(_ context.Context, _ string) (*pkgapi.RefreshResponse, error) {
		refreshCalls.Add(1)
		time.Sleep(50 * time.Millisecond)
		return &pkgapi.RefreshResponse{AccessToken: "T2", RefreshToken: "R2"}, nil
	}

	tr := NewTransport(store, refresh)

	go func() {
		arrived.Wait()
		close(release)
	}()

	var wg sync.WaitGroup
	statuses := make([]int, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL, nil)
			if err != nil {
				errs[i] = err
				return
			}
			resp, err := tr.RoundTrip(req)
			if err != nil {
				errs[i] = err
				return
			}
			statuses[i] = resp.StatusCode
			resp.Body.Close()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), refreshCalls.Load(), "concurrent 401s must share one refresh")
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, http.StatusOK, statuses[i])
	}

	creds, err := store.GetCredentials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "T2", creds.AccessToken)
	assert.Equal(t, "R2", creds.RefreshToken)
}

func TestTransport_RefreshFailure(t *testing.T) {
	const n = 8

	var arrived sync.WaitGroup
	arrived.Add(n)
	release := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		arrived.Done()
		<-release
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := newMemStore("T1", "R1")

	var refreshCalls atomic.Int32
	refresh := func(_ context.Context, _ string) (*pkgapi.RefreshResponse, error) {
		refreshCalls.Add(1)
		time.Sleep(50 * time.Millisecond)
		return nil, &Error{StatusCode: http.StatusUnauthorized, Message: "refresh token expired"}
	}

	var hookCalls atomic.Int32
	tr := NewTransport(store, refresh, WithSessionExpiredHook(func() {
		hookCalls.Add(1)
	}))

	go func() {
		arrived.Wait()
		close(release)
	}()

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL, nil)
			if err != nil {
				errs[i] = err
				return
			}
			resp, err := tr.RoundTrip(req) //nolint:bodyclose // err path returns nil resp
			if err == nil {
				resp.Body.Close()
			}
			errs[i] = err
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), refreshCalls.Load())
	assert.Equal(t, int32(1), hookCalls.Load(), "expiry hook must fire exactly once")
	for i := 0; i < n; i++ {
		require.Error(t, errs[i])
		assert.ErrorIs(t, errs[i], ErrSessionExpired)
	}

	_, err := store.GetCredentials(context.Background())
	assert.ErrorIs(t, err, storage.ErrCredentialsNotFound, "credentials cleared on refresh failure")
}

func TestTransport_NoSecondRefresh(t *testing.T) {
	var requestCount atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := newMemStore("T1", "R1")

	var refreshCalls atomic.Int32
	refresh := func(_ context.Context, _ string) (*pkgapi.RefreshResponse, error) {
		refreshCalls.Add(1)
		return &pkgapi.RefreshResponse{AccessToken: "T2"}, nil
	}

	tr := NewTransport(store, refresh)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := tr.RoundTrip(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "second 401 is returned, not retried")
	assert.Equal(t, int32(1), refreshCalls.Load())
	assert.Equal(t, int32(2), requestCount.Load())
}

func TestTransport_NoRefreshToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := newMemStore("T1", "")

	var refreshCalls atomic.Int32
	refresh := func(_ context.Context, _ string) (*pkgapi.RefreshResponse, error) {
		refreshCalls.Add(1)
		return &pkgapi.RefreshResponse{AccessToken: "T2"}, nil
	}

	tr := NewTransport(store, refresh)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := tr.RoundTrip(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, int32(0), refreshCalls.Load())
}

func TestTransport_NonAuthErrorsPassThrough(t *testing.T) {
	var requestCount atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requestCount.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	store := newMemStore("T1", "R1")

	var refreshCalls atomic.Int32
	refresh := func(_ context.Context, _ string) (*pkgapi.RefreshResponse, error) {
		refreshCalls.Add(1)
		return &pkgapi.RefreshResponse{AccessToken: "T2"}, nil
	}

	tr := NewTransport(store, refresh)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := tr.RoundTrip(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, int32(1), requestCount.Load())
	assert.Equal(t, int32(0), refreshCalls.Load())
}

func TestTransport_RefreshWiredToClient(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/users/refresh", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"T2","refresh_token":"R2"}`))
	})
	mux.HandleFunc("/api/v1/users/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer T2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":1,"name":"A","email":"a@b.com"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := newMemStore("T1", "R1")

	// A bare client performs the refresh exchange so the refresh request
	// itself never passes through the auth transport.
	bare := NewClient(srv.URL)
	refresh := func(ctx context.Context, refreshToken string) (*pkgapi.RefreshResponse, error) {
		return bare.Refresh(ctx, pkgapi.RefreshRequest{RefreshToken: refreshToken})
	}

	authClient := NewClient(srv.URL, WithTransport(NewTransport(store, refresh)))

	user, err := authClient.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A", user.Name)

	creds, err := store.GetCredentials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "T2", creds.AccessToken)
	assert.Equal(t, "R2", creds.RefreshToken)
}

func TestErrSessionExpired_ThroughClientDo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := newMemStore("T1", "R1")
	refresh := func(_ context.Context, _ string) (*pkgapi.RefreshResponse, error) {
		return nil, errors.New("refresh rejected")
	}

	client := NewClient(srv.URL, WithTransport(NewTransport(store, refresh)))

	_, err := client.Me(context.Background())
	require.Error(t, err)
	// http.Client wraps transport errors in *url.Error; the sentinel must
	// still be reachable through errors.Is.
	assert.ErrorIs(t, err, ErrSessionExpired)
}
