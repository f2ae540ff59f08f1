package cli

import (
	"context"
	"fmt"
	"strconv"

	pkgapi "github.com/fallou/teranga/pkg/api"
)

func (c *Cli) runPublish(ctx context.Context) error {
	if !c.session.IsAuthenticated() {
		c.session.CheckSession(ctx)
	}
	if !c.session.IsAuthenticated() {
		return fmt.Errorf("not authenticated. Please run 'teranga login' first")
	}

	c.io.Println("=== Publish Content ===")
	c.io.Println()

	title, err := c.io.ReadInput("Title: ")
	if err != nil {
		return fmt.Errorf("failed to read title: %w", err)
	}
	if title == "" {
		return fmt.Errorf("title is required")
	}

	body, err := c.io.ReadInput("Text: ")
	if err != nil {
		return fmt.Errorf("failed to read text: %w", err)
	}

	typeID, err := c.readID("Content type id (see 'teranga types'): ")
	if err != nil {
		return err
	}

	regionID, err := c.readID("Region id (see 'teranga regions'): ")
	if err != nil {
		return err
	}

	languageID, err := c.readID("Language id (see 'teranga languages'): ")
	if err != nil {
		return err
	}

	tierInput, err := c.io.ReadInput("Access tier (free, premium, private, subscription) [free]: ")
	if err != nil {
		return fmt.Errorf("failed to read access tier: %w", err)
	}
	tier := pkgapi.AccessTier(tierInput)
	if tierInput == "" {
		tier = pkgapi.AccessFree
	}
	switch tier {
	case pkgapi.AccessFree, pkgapi.AccessPremium, pkgapi.AccessPrivate, pkgapi.AccessSubscription:
	default:
		return fmt.Errorf("unknown access tier: %s", tierInput)
	}

	var price float64
	if tier.Gated() {
		priceInput, err := c.io.ReadInput(fmt.Sprintf("Price (%s): ", c.cfg.Payment.Currency))
		if err != nil {
			return fmt.Errorf("failed to read price: %w", err)
		}
		price, err = strconv.ParseFloat(priceInput, 64)
		if err != nil || price < 0 {
			return fmt.Errorf("invalid price: %s", priceInput)
		}
	}

	c.io.Println()
	c.io.Println("Submitting...")

	content, err := c.apiClient.CreateContent(ctx, pkgapi.CreateContentRequest{
		Title:      title,
		Body:       body,
		TypeID:     typeID,
		RegionID:   regionID,
		LanguageID: languageID,
		AccessTier: tier,
		Price:      price,
	})
	if err != nil {
		return fmt.Errorf("failed to create content: %w", err)
	}

	c.io.Println()
	c.io.Println("✓ Content submitted!")
	c.io.Printf("ID:     %d\n", content.ID)
	c.io.Printf("Status: %s\n", content.Status)
	c.io.Println()
	c.io.Println("Your content will be visible once a moderator approves it.")

	return nil
}

func (c *Cli) readID(prompt string) (int64, error) {
	input, err := c.io.ReadInput(prompt)
	if err != nil {
		return 0, fmt.Errorf("failed to read input: %w", err)
	}
	id, err := strconv.ParseInt(input, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id: %s", input)
	}
	return id, nil
}
