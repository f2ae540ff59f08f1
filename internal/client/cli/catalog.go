package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/template"
)

func (c *Cli) runRegions(ctx context.Context) error {
	regions, err := c.apiClient.ListRegions(ctx)
	if err != nil {
		return fmt.Errorf("failed to list regions: %w", err)
	}

	c.io.Println("=== Regions ===")
	c.io.Println()
	for _, r := range regions {
		c.io.Printf("- [%d] %s\n", r.ID, r.Name)
		if r.Description != "" {
			c.io.Printf("      %s\n", r.Description)
		}
	}
	return nil
}

// runTypes lists the content taxonomy; with an id argument it lists the
// contents of that type instead.
func (c *Cli) runTypes(ctx context.Context, args []string) error {
	if len(args) > 0 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid content type id: %s", args[0])
		}

		contents, err := c.apiClient.ListContentsByType(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to list contents by type: %w", err)
		}

		tmpl, err := template.New("contents").Parse(contentsListTemplate)
		if err != nil {
			return fmt.Errorf("failed to parse template: %w", err)
		}
		return tmpl.Execute(c.io, contents)
	}

	types, err := c.apiClient.ListContentTypes(ctx)
	if err != nil {
		return fmt.Errorf("failed to list content types: %w", err)
	}

	c.io.Println("=== Content Types ===")
	c.io.Println()
	for _, t := range types {
		c.io.Printf("- [%d] %s\n", t.ID, t.Name)
	}
	c.io.Println()
	c.io.Println("Use 'teranga types <id>' to list contents of a type.")
	return nil
}

func (c *Cli) runLanguages(ctx context.Context) error {
	languages, err := c.apiClient.ListLanguages(ctx)
	if err != nil {
		return fmt.Errorf("failed to list languages: %w", err)
	}

	c.io.Println("=== Languages ===")
	c.io.Println()
	for _, l := range languages {
		c.io.Printf("- [%d] %s (%s)\n", l.ID, l.Name, l.Code)
	}
	return nil
}
