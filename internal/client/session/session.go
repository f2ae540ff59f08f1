package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/fallou/teranga/internal/client/api"
	"github.com/fallou/teranga/internal/client/storage"
	"github.com/fallou/teranga/internal/validation"
	pkgapi "github.com/fallou/teranga/pkg/api"
)

// State is the lifecycle state of the client session.
type State int

const (
	StateUninitialized State = iota
	StateChecking
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateChecking:
		return "checking"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Route names an application entry point the controller navigates to after
// a session transition.
type Route string

const (
	RouteLanding   Route = "/"
	RouteAuth      Route = "/auth"
	RouteDashboard Route = "/dashboard"
)

// Navigator receives navigation side effects of session transitions.
// The CLI prints a hint for the route, tests record the calls.
type Navigator interface {
	NavigateTo(route Route)
}

// Controller presents login, registration, logout and session verification
// as coherent operations with consistent side effects on the credential
// store and on navigation.
type Controller struct {
	client *api.Client
	store  storage.CredentialStorage
	nav    Navigator

	mu    sync.Mutex
	state State
	user  *pkgapi.User
}

// NewController creates a session controller in StateUninitialized
func NewController(client *api.Client, store storage.CredentialStorage, nav Navigator) *Controller {
	return &Controller{
		client: client,
		store:  store,
		nav:    nav,
		state:  StateUninitialized,
	}
}

// State returns the current lifecycle state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// User returns the current user profile, nil when unauthenticated
func (c *Controller) User() *pkgapi.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user
}

// IsAuthenticated reports whether the session holds a confirmed user
func (c *Controller) IsAuthenticated() bool {
	return c.State() == StateAuthenticated
}

// Login authenticates with email and password. On success it stores both
// credentials and the profile, moves to StateAuthenticated and navigates to
// the dashboard. On failure the state is left as it was and the error is
// surfaced for display; there is no automatic retry.
func (c *Controller) Login(ctx context.Context, email, password string) (*pkgapi.User, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("invalid email: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	resp, err := c.client.Login(ctx, pkgapi.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	if err := c.establishSession(ctx, resp); err != nil {
		return nil, err
	}

	c.nav.NavigateTo(RouteDashboard)
	return &resp.User, nil
}

// Register creates an account. Same contract as Login, against the
// registration endpoint.
func (c *Controller) Register(ctx context.Context, name, email, password string) (*pkgapi.User, error) {
	if err := validation.ValidateName(name); err != nil {
		return nil, fmt.Errorf("invalid name: %w", err)
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("invalid email: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	resp, err := c.client.Register(ctx, pkgapi.RegisterRequest{Name: name, Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	if err := c.establishSession(ctx, resp); err != nil {
		return nil, err
	}

	c.nav.NavigateTo(RouteDashboard)
	return &resp.User, nil
}

// establishSession persists credentials and profile and moves to
// StateAuthenticated
func (c *Controller) establishSession(ctx context.Context, resp *pkgapi.AuthResponse) error {
	creds := &storage.Credentials{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}
	if err := c.store.SaveCredentials(ctx, creds); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	user := resp.User
	if err := c.store.SaveProfile(ctx, &user); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	if err := c.ensureDeviceID(ctx); err != nil {
		// A missing device id never blocks a login
		slog.Warn("failed to ensure device id", "error", err)
	}

	c.mu.Lock()
	c.state = StateAuthenticated
	c.user = &user
	c.mu.Unlock()

	return nil
}

// ensureDeviceID generates and persists a device id on the first login on
// this machine; later logins reuse it
func (c *Controller) ensureDeviceID(ctx context.Context) error {
	deviceID, err := c.store.GetDeviceID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get device id: %w", err)
	}
	if deviceID != "" {
		return nil
	}
	return c.store.SaveDeviceID(ctx, uuid.New().String())
}

// Logout notifies the server (best effort), unconditionally clears all
// stored session state, moves to StateUnauthenticated and navigates to the
// landing page.
func (c *Controller) Logout(ctx context.Context) error {
	if err := c.client.Logout(ctx); err != nil {
		// Server-side logout is best effort, never surfaced
		slog.Warn("failed to logout on server", "error", err)
	}

	if err := c.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear local session: %w", err)
	}

	c.mu.Lock()
	c.state = StateUnauthenticated
	c.user = nil
	c.mu.Unlock()

	c.nav.NavigateTo(RouteLanding)
	return nil
}

// CheckSession verifies the stored session at application start. With no
// stored access credential it resolves to StateUnauthenticated without any
// network call. Otherwise the cached profile is restored optimistically and
// the who-am-I endpoint decides: success overwrites the cached profile, any
// failure clears storage and resolves to StateUnauthenticated.
func (c *Controller) CheckSession(ctx context.Context) State {
	c.mu.Lock()
	c.state = StateChecking
	c.mu.Unlock()

	creds, err := c.store.GetCredentials(ctx)
	if err != nil || creds.AccessToken == "" {
		if err != nil && !errors.Is(err, storage.ErrCredentialsNotFound) {
			slog.Error("failed to read credentials", "error", err)
		}
		return c.resolveUnauthenticated(ctx, false)
	}

	// Optimistic restore of the cached profile before server confirmation
	if cached, err := c.store.GetProfile(ctx); err == nil {
		c.mu.Lock()
		c.user = cached
		c.mu.Unlock()
	}

	user, err := c.client.Me(ctx)
	if err != nil {
		slog.Debug("session check failed", "error", err)
		return c.resolveUnauthenticated(ctx, true)
	}

	// The server's profile supersedes the cached one
	if err := c.store.SaveProfile(ctx, user); err != nil {
		slog.Warn("failed to cache profile", "error", err)
	}

	c.mu.Lock()
	c.state = StateAuthenticated
	c.user = user
	c.mu.Unlock()

	return StateAuthenticated
}

// resolveUnauthenticated finishes a session check in the unauthenticated
// state, clearing storage when requested
func (c *Controller) resolveUnauthenticated(ctx context.Context, clear bool) State {
	if clear {
		if err := c.store.Clear(ctx); err != nil {
			slog.Error("failed to clear session storage", "error", err)
		}
	}

	c.mu.Lock()
	c.state = StateUnauthenticated
	c.user = nil
	c.mu.Unlock()

	return StateUnauthenticated
}

// HandleSessionExpired is the transport's session-expired hook. A fatal
// refresh failure forces the session into StateUnauthenticated and is the
// only error that triggers an unsolicited navigation.
func (c *Controller) HandleSessionExpired() {
	c.mu.Lock()
	c.state = StateUnauthenticated
	c.user = nil
	c.mu.Unlock()

	c.nav.NavigateTo(RouteAuth)
}
