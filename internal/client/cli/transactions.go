package cli

import (
	"context"
	"fmt"
	"strconv"
)

func (c *Cli) runVerify(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing transaction id. Usage: teranga verify <tx-id>")
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid transaction id: %s", args[0])
	}

	return c.reportOutcome(ctx, id)
}

func (c *Cli) runTransactions(ctx context.Context) error {
	transactions, err := c.apiClient.ListTransactions(ctx)
	if err != nil {
		return fmt.Errorf("failed to list transactions: %w", err)
	}

	c.io.Println("=== Transactions ===")
	c.io.Println()

	if len(transactions) == 0 {
		c.io.Println("No transactions found.")
		return nil
	}

	for _, tx := range transactions {
		c.io.Printf("- #%d  content %d  %.0f %s  %s\n",
			tx.ID, tx.ContentID, tx.Amount, tx.Currency, tx.Status)
	}
	c.io.Println()
	c.io.Println("Use 'teranga verify <tx-id>' for details.")

	return nil
}

func (c *Cli) runTransaction(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing transaction id. Usage: teranga transaction <tx-id>")
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid transaction id: %s", args[0])
	}

	tx, err := c.apiClient.GetTransaction(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get transaction: %w", err)
	}

	c.io.Printf("=== Transaction #%d ===\n", tx.ID)
	c.io.Println()
	c.io.Printf("Content: %d\n", tx.ContentID)
	c.io.Printf("Amount:  %.0f %s\n", tx.Amount, tx.Currency)
	c.io.Printf("Status:  %s\n", tx.Status)
	if tx.PaymentMethod != "" {
		c.io.Printf("Method:  %s\n", tx.PaymentMethod)
	}
	if tx.CreatedAt != "" {
		c.io.Printf("Created: %s\n", tx.CreatedAt)
	}

	return nil
}

func (c *Cli) runCancel(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing transaction id. Usage: teranga cancel <tx-id>")
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid transaction id: %s", args[0])
	}

	if err := c.apiClient.CancelTransaction(ctx, id); err != nil {
		return fmt.Errorf("failed to cancel transaction: %w", err)
	}

	c.io.Printf("✓ Transaction #%d canceled.\n", id)
	return nil
}
