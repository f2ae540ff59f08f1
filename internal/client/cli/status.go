package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fallou/teranga/internal/client/session"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Session Status ===")
	c.io.Println()

	state := c.session.CheckSession(ctx)
	if state != session.StateAuthenticated {
		c.io.Println("Status: Not authenticated")
		c.io.Println()
		c.io.Println("Run 'teranga login' to authenticate.")
		return nil
	}

	user := c.session.User()
	c.io.Println("Status: Authenticated")
	c.io.Printf("Name:  %s\n", user.Name)
	c.io.Printf("Email: %s\n", user.Email)
	if user.Role != "" {
		c.io.Printf("Role:  %s\n", user.Role)
	}

	creds, err := c.store.GetCredentials(ctx)
	if err != nil {
		return fmt.Errorf("failed to get credentials: %w", err)
	}

	expiresAt, err := session.TokenExpiry(creds.AccessToken)
	if err == nil {
		c.io.Printf("Token expires: %s\n", expiresAt.Format(time.RFC3339))
		remaining := time.Until(expiresAt)
		if remaining > 0 {
			c.io.Printf("Time remaining: %s\n", remaining.Round(time.Second))
		} else {
			c.io.Println("Token has expired. It will be refreshed on the next request.")
		}
	}

	if deviceID, err := c.store.GetDeviceID(ctx); err == nil && deviceID != "" {
		c.io.Printf("Device: %s\n", deviceID)
	}

	return nil
}
