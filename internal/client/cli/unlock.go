package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/fallou/teranga/internal/client/payment"
)

// unlockWaitTimeout bounds how long the client waits for the payment
// provider to redirect back to the local callback listener.
const unlockWaitTimeout = 5 * time.Minute

func (c *Cli) runUnlock(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing content id. Usage: teranga unlock <id>")
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid content id: %s", args[0])
	}

	if !c.session.IsAuthenticated() {
		c.session.CheckSession(ctx)
	}
	if !c.session.IsAuthenticated() {
		return fmt.Errorf("not authenticated. Please run 'teranga login' first")
	}

	content, err := c.apiClient.GetContent(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get content: %w", err)
	}

	if !content.AccessTier.Gated() {
		c.io.Printf("'%s' is free. Run 'teranga show %d' to read it.\n", content.Title, content.ID)
		return nil
	}

	allowed, err := c.gate.HasAccess(ctx, content.ID, content.AccessTier)
	if err != nil {
		// Treated as locked; the purchase flow below settles it
		slog.Debug("entitlement check failed", "content_id", content.ID, "error", err)
		allowed = false
	}
	if allowed {
		c.io.Printf("You already have access to '%s'.\n", content.Title)
		return nil
	}

	c.io.Printf("=== Unlock: %s ===\n", content.Title)
	c.io.Println()
	c.io.Printf("Price: %.0f %s\n", content.Price, c.cfg.Payment.Currency)
	c.io.Println()

	confirm, err := c.io.ReadInput("Proceed with payment? [y/N]: ")
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}
	if confirm != "y" && confirm != "Y" {
		c.io.Println("Canceled.")
		return nil
	}

	listener, err := payment.NewCallbackListener(c.cfg.Callback.Addr())
	if err != nil {
		return fmt.Errorf("failed to start callback listener: %w", err)
	}
	defer func() {
		_ = listener.Close()
	}()

	handoff, err := c.gate.Checkout(ctx, payment.CheckoutParams{
		ContentID:   content.ID,
		Amount:      content.Price,
		Currency:    c.cfg.Payment.Currency,
		Description: content.Title,
		CallbackURL: listener.CallbackURL(),
	})
	if err != nil {
		return fmt.Errorf("failed to initiate payment: %w", err)
	}

	if handoff.Completed {
		c.io.Println()
		c.io.Println("✓ Payment completed.")
		return c.reportOutcome(ctx, handoff.TransactionID)
	}

	c.io.Println()
	c.io.Println("Open this URL in your browser to complete the payment:")
	c.io.Println()
	c.io.Printf("  %s\n", handoff.PaymentURL)
	c.io.Println()
	c.io.Println("Waiting for the payment provider to redirect back...")

	waitCtx, cancel := context.WithTimeout(ctx, unlockWaitTimeout)
	defer cancel()

	transactionID, err := listener.Wait(waitCtx)
	if err != nil {
		c.io.Println()
		c.io.Printf("No callback received: %v\n", err)
		c.io.Printf("You can check later with 'teranga verify %d'.\n", handoff.TransactionID)
		return nil
	}

	return c.reportOutcome(ctx, transactionID)
}

func (c *Cli) reportOutcome(ctx context.Context, transactionID int64) error {
	result, err := c.gate.VerifyTransaction(ctx, transactionID)
	if err != nil {
		return fmt.Errorf("failed to verify transaction: %w", err)
	}

	c.io.Println()
	switch result.Outcome {
	case payment.OutcomeGranted:
		c.io.Println("✓ Payment approved. Access granted!")
		c.io.Println("Run 'teranga show <id>' to read the content.")
	case payment.OutcomeDenied:
		c.io.Printf("✗ Payment %s. Access was not granted.\n", result.Status)
	case payment.OutcomeAwaiting:
		c.io.Println("Payment is still pending.")
		c.io.Printf("Check again with 'teranga verify %d'.\n", transactionID)
	default:
		c.io.Printf("Unrecognized payment status: %s\n", result.Status)
		c.io.Printf("Check again with 'teranga verify %d'.\n", transactionID)
	}

	return nil
}
