package api

import (
	"context"
	"fmt"
	"net/http"

	pkgapi "github.com/fallou/teranga/pkg/api"
)

// InitiatePayment starts a payment flow for a content item
func (c *Client) InitiatePayment(ctx context.Context, req pkgapi.PaymentInitRequest) (*pkgapi.PaymentInitResponse, error) {
	var resp pkgapi.PaymentInitResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/payments/initiate", req, &resp); err != nil {
		return nil, fmt.Errorf("initiate payment request failed: %w", err)
	}
	return &resp, nil
}

// VerifyPayment returns the current status of a transaction
func (c *Client) VerifyPayment(ctx context.Context, transactionID int64) (*pkgapi.PaymentVerifyResponse, error) {
	var resp pkgapi.PaymentVerifyResponse
	path := fmt.Sprintf("/api/v1/payments/verify/%d", transactionID)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("verify payment request failed: %w", err)
	}
	return &resp, nil
}

// CheckContentAccess asks the server whether the current user may read
// a gated content item.
func (c *Client) CheckContentAccess(ctx context.Context, contentID int64) (*pkgapi.ContentAccess, error) {
	var resp pkgapi.ContentAccess
	path := fmt.Sprintf("/api/v1/payments/access/%d", contentID)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("check content access request failed: %w", err)
	}
	return &resp, nil
}

// ListTransactions returns the transaction history of the current user
func (c *Client) ListTransactions(ctx context.Context) ([]pkgapi.Transaction, error) {
	var resp []pkgapi.Transaction
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/payments/transactions", nil, &resp); err != nil {
		return nil, fmt.Errorf("list transactions request failed: %w", err)
	}
	return resp, nil
}

// GetTransaction returns a single transaction by id
func (c *Client) GetTransaction(ctx context.Context, id int64) (*pkgapi.Transaction, error) {
	var resp pkgapi.Transaction
	path := fmt.Sprintf("/api/v1/payments/transactions/%d", id)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("get transaction request failed: %w", err)
	}
	return &resp, nil
}

// CancelTransaction cancels a pending transaction
func (c *Client) CancelTransaction(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/v1/payments/cancel/%d", id)
	if err := c.doRequest(ctx, http.MethodPost, path, nil, nil); err != nil {
		return fmt.Errorf("cancel transaction request failed: %w", err)
	}
	return nil
}
