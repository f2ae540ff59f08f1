package payment

import (
	"context"
	"fmt"

	pkgapi "github.com/fallou/teranga/pkg/api"
)

// CheckoutParams describes a checkout attempt for one content item
type CheckoutParams struct {
	ContentID   int64
	Amount      float64
	Currency    string
	Description string
	CallbackURL string
}

// Handoff is the result of a successful checkout initiation. When
// PaymentURL is set the user must complete the payment on the hosted page;
// control returns through the callback redirect. When it is empty the
// initiation itself completed the payment.
type Handoff struct {
	TransactionID int64
	PaymentURL    string
	Completed     bool
}

// Checkout initiates a payment for a gated content item. Failures are
// surfaced with the server-provided message; there is no retry beyond a
// fresh checkout attempt.
func (g *Gate) Checkout(ctx context.Context, params CheckoutParams) (*Handoff, error) {
	resp, err := g.client.InitiatePayment(ctx, pkgapi.PaymentInitRequest{
		ContentID:   params.ContentID,
		Amount:      params.Amount,
		Currency:    params.Currency,
		Description: params.Description,
		CallbackURL: params.CallbackURL,
	})
	if err != nil {
		return nil, fmt.Errorf("payment initiation failed: %w", err)
	}

	return &Handoff{
		TransactionID: resp.TransactionID,
		PaymentURL:    resp.PaymentURL,
		Completed:     resp.PaymentURL == "",
	}, nil
}

// Outcome is the terminal UI outcome of a checkout verification.
type Outcome int

const (
	// OutcomeGranted means the payment was approved, access is granted
	OutcomeGranted Outcome = iota
	// OutcomeDenied means the payment was declined or canceled, a retry
	// may be offered
	OutcomeDenied
	// OutcomeAwaiting means the payment is still processing, a manual
	// re-check may be offered
	OutcomeAwaiting
	// OutcomeUnknown covers any status this client does not recognize
	OutcomeUnknown
)

func (o Outcome) String() string {
	switch o {
	case OutcomeGranted:
		return "granted"
	case OutcomeDenied:
		return "denied"
	case OutcomeAwaiting:
		return "awaiting"
	case OutcomeUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// OutcomeForStatus maps a transaction status to its UI outcome. The
// mapping is total: an unrecognized status maps to OutcomeUnknown, never
// to a failure.
func OutcomeForStatus(status pkgapi.TransactionStatus) Outcome {
	switch status {
	case pkgapi.TransactionApproved:
		return OutcomeGranted
	case pkgapi.TransactionDeclined, pkgapi.TransactionCanceled:
		return OutcomeDenied
	case pkgapi.TransactionPending:
		return OutcomeAwaiting
	default:
		return OutcomeUnknown
	}
}

// VerifyResult is the reconciled result of a checkout verification
type VerifyResult struct {
	Outcome     Outcome
	Status      pkgapi.TransactionStatus
	Transaction pkgapi.Transaction
}

// VerifyTransaction asks the payment service for the transaction status
// and maps it to a UI outcome. There is no automatic polling, re-checks
// are user initiated.
func (g *Gate) VerifyTransaction(ctx context.Context, transactionID int64) (*VerifyResult, error) {
	resp, err := g.client.VerifyPayment(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("payment verification failed: %w", err)
	}

	return &VerifyResult{
		Outcome:     OutcomeForStatus(resp.Status),
		Status:      resp.Status,
		Transaction: resp.Transaction,
	}, nil
}
