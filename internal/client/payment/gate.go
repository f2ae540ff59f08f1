package payment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fallou/teranga/internal/client/api"
	pkgapi "github.com/fallou/teranga/pkg/api"
)

// AuthState exposes the session information the gate needs.
// Implemented by the session controller.
type AuthState interface {
	IsAuthenticated() bool
}

// Gate decides, per content item, whether the current session may view it,
// and mediates the checkout hand-off for gated items.
type Gate struct {
	client *api.Client
	auth   AuthState
}

// NewGate creates an entitlement gate
func NewGate(client *api.Client, auth AuthState) *Gate {
	return &Gate{
		client: client,
		auth:   auth,
	}
}

// HasAccess reports whether the current session may view the content item.
// Free content is always accessible without a network call. Gated content
// requires an authenticated session and a positive server entitlement
// check; any failure of that check denies access (fail-closed). The result
// is never cached, every call re-asks the server.
func (g *Gate) HasAccess(ctx context.Context, contentID int64, tier pkgapi.AccessTier) (bool, error) {
	if !tier.Gated() {
		return true, nil
	}

	if !g.auth.IsAuthenticated() {
		return false, nil
	}

	access, err := g.client.CheckContentAccess(ctx, contentID)
	if err != nil {
		// Fail closed: an unanswered entitlement check is a denial
		slog.Debug("entitlement check failed", "content_id", contentID, "error", err)
		return false, fmt.Errorf("entitlement check failed: %w", err)
	}

	return access.HasAccess, nil
}
