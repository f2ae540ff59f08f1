package cli

import (
	"context"
	"fmt"
)

// Run dispatches a CLI command. The caller decides how to report the
// returned error.
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return c.runRegister(ctx)
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "contents":
		return c.runContents(ctx, args)
	case "show":
		return c.runShow(ctx, args)
	case "publish":
		return c.runPublish(ctx)
	case "unlock":
		return c.runUnlock(ctx, args)
	case "verify":
		return c.runVerify(ctx, args)
	case "transactions":
		return c.runTransactions(ctx)
	case "transaction":
		return c.runTransaction(ctx, args)
	case "cancel":
		return c.runCancel(ctx, args)
	case "regions":
		return c.runRegions(ctx)
	case "types":
		return c.runTypes(ctx, args)
	case "languages":
		return c.runLanguages(ctx)
	default:
		PrintUsage(c.io)
		return fmt.Errorf("unknown command: %s", command)
	}
}
