package api

// TransactionStatus is the payment provider's view of a transaction.
type TransactionStatus string

const (
	TransactionPending  TransactionStatus = "pending"
	TransactionApproved TransactionStatus = "approved"
	TransactionDeclined TransactionStatus = "declined"
	TransactionCanceled TransactionStatus = "canceled"
)

// Transaction represents a payment transaction for a content unlock.
// The status is owned by the payment service; the client only observes it.
type Transaction struct {
	ID            int64             `json:"id"`
	UserID        int64             `json:"user_id"`
	ContentID     int64             `json:"content_id"`
	Amount        float64           `json:"amount"`
	Currency      string            `json:"currency"`
	Status        TransactionStatus `json:"status"`
	PaymentMethod string            `json:"payment_method,omitempty"`
	CreatedAt     string            `json:"created_at"`
	UpdatedAt     string            `json:"updated_at"`
}

// PaymentInitRequest represents a checkout initiation payload
type PaymentInitRequest struct {
	ContentID   int64   `json:"content_id"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency,omitempty"`
	Description string  `json:"description,omitempty"`
	CallbackURL string  `json:"callback_url,omitempty"`
}

// PaymentInitResponse represents the checkout initiation result.
// PaymentURL may be empty, in which case initiation itself completed the payment.
type PaymentInitResponse struct {
	TransactionID int64  `json:"transaction_id"`
	PaymentURL    string `json:"payment_url,omitempty"`
	Token         string `json:"token"`
}

// PaymentVerifyResponse represents the verification result for a transaction
type PaymentVerifyResponse struct {
	Status      TransactionStatus `json:"status"`
	Transaction Transaction       `json:"transaction"`
}

// ContentAccess represents the server-side entitlement check result
type ContentAccess struct {
	ContentID   int64        `json:"content_id"`
	HasAccess   bool         `json:"has_access"`
	Transaction *Transaction `json:"transaction,omitempty"`
}
