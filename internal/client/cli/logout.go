package cli

import (
	"context"
)

func (c *Cli) runLogout(ctx context.Context) error {
	if err := c.session.Logout(ctx); err != nil {
		return err
	}

	c.io.Println("✓ Logged out.")
	c.io.Println("Local session data has been removed.")

	return nil
}
