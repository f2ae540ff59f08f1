package cli

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"strconv"
	"text/template"

	pkgapi "github.com/fallou/teranga/pkg/api"
)

func (c *Cli) runContents(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("contents", flag.ContinueOnError)
	regionID := fs.Int64("region", 0, "Filter by region id")
	typeID := fs.Int64("type", 0, "Filter by content type id")
	status := fs.String("status", "", "Filter by status (pending, published, rejected)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	contents, err := c.apiClient.ListContents(ctx, pkgapi.ContentFilter{
		RegionID: *regionID,
		TypeID:   *typeID,
		Status:   pkgapi.ContentStatus(*status),
	})
	if err != nil {
		return fmt.Errorf("failed to list contents: %w", err)
	}

	tmpl, err := template.New("contents").Parse(contentsListTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return tmpl.Execute(c.io, contents)
}

func (c *Cli) runShow(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing content id. Usage: teranga show <id>")
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid content id: %s", args[0])
	}

	content, err := c.apiClient.GetContent(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get content: %w", err)
	}

	allowed, err := c.gate.HasAccess(ctx, content.ID, content.AccessTier)
	if err != nil {
		// An unanswered entitlement check never unlocks content
		slog.Debug("entitlement check failed", "content_id", content.ID, "error", err)
		allowed = false
	}

	if !allowed {
		c.io.Printf("=== %s ===\n", content.Title)
		c.io.Println()
		c.io.Printf("This content is %s.\n", content.AccessTier)
		if content.Price > 0 {
			c.io.Printf("Unlock price: %.0f %s\n", content.Price, c.cfg.Payment.Currency)
		}
		c.io.Println()
		if c.session.IsAuthenticated() {
			c.io.Printf("Run 'teranga unlock %d' to purchase access.\n", content.ID)
		} else {
			c.io.Println("Run 'teranga login' first, then unlock it.")
		}
		return nil
	}

	tmpl, err := template.New("content").Parse(contentDetailTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return tmpl.Execute(c.io, content)
}
