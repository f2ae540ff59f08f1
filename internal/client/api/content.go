package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	pkgapi "github.com/fallou/teranga/pkg/api"
)

// ListContents returns the published content catalog, optionally filtered
// by region, content type or status.
func (c *Client) ListContents(ctx context.Context, filter pkgapi.ContentFilter) ([]pkgapi.Content, error) {
	params := url.Values{}
	if filter.RegionID != 0 {
		params.Set("region_id", strconv.FormatInt(filter.RegionID, 10))
	}
	if filter.TypeID != 0 {
		params.Set("typecontenu_id", strconv.FormatInt(filter.TypeID, 10))
	}
	if filter.Status != "" {
		params.Set("statut", string(filter.Status))
	}

	path := "/api/v1/contenus"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var resp pkgapi.ContentsResponse
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("list contents request failed: %w", err)
	}
	return resp.Data, nil
}

// GetContent returns a single content item by id
func (c *Client) GetContent(ctx context.Context, id int64) (*pkgapi.Content, error) {
	var resp pkgapi.ContentResponse
	path := fmt.Sprintf("/api/v1/contenus/%d", id)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("get content request failed: %w", err)
	}
	return &resp.Data, nil
}

// CreateContent submits a new content item for moderation
func (c *Client) CreateContent(ctx context.Context, req pkgapi.CreateContentRequest) (*pkgapi.Content, error) {
	var resp pkgapi.ContentResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/contenus", req, &resp); err != nil {
		return nil, fmt.Errorf("create content request failed: %w", err)
	}
	return &resp.Data, nil
}

// ListRegions returns all regions
func (c *Client) ListRegions(ctx context.Context) ([]pkgapi.Region, error) {
	var resp struct {
		Success bool            `json:"success"`
		Data    []pkgapi.Region `json:"data"`
	}
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/regions", nil, &resp); err != nil {
		return nil, fmt.Errorf("list regions request failed: %w", err)
	}
	return resp.Data, nil
}

// ListLanguages returns all languages
func (c *Client) ListLanguages(ctx context.Context) ([]pkgapi.Language, error) {
	var resp []pkgapi.Language
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/langues", nil, &resp); err != nil {
		return nil, fmt.Errorf("list languages request failed: %w", err)
	}
	return resp, nil
}

// ListContentTypes returns all content types
func (c *Client) ListContentTypes(ctx context.Context) ([]pkgapi.ContentType, error) {
	var resp []pkgapi.ContentType
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/types-contenu", nil, &resp); err != nil {
		return nil, fmt.Errorf("list content types request failed: %w", err)
	}
	return resp, nil
}

// ListContentsByType returns content items of a given type
func (c *Client) ListContentsByType(ctx context.Context, typeID int64) ([]pkgapi.Content, error) {
	var resp []pkgapi.Content
	path := fmt.Sprintf("/api/v1/typecontenus/%d", typeID)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("list contents by type request failed: %w", err)
	}
	return resp, nil
}
