package payment

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// callbackPath is the fixed local route the payment page redirects back to
const callbackPath = "/payment/callback"

// callbackEvent carries the outcome of one callback redirect
type callbackEvent struct {
	err           error
	transactionID int64
}

// CallbackListener is the local return path of the checkout hand-off. It
// serves the fixed callback route on a loopback address, extracts the
// transaction identifier from the redirect, and hands it to the waiting
// checkout flow. A one-time state token in the URL rejects stray requests.
type CallbackListener struct {
	server *http.Server
	ln     net.Listener
	state  string
	events chan callbackEvent
}

// NewCallbackListener binds the listener on addr (host:port, port may be 0)
func NewCallbackListener(addr string) (*CallbackListener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to bind callback listener: %w", err)
	}

	l := &CallbackListener{
		ln:     ln,
		state:  uuid.New().String(),
		events: make(chan callbackEvent, 1),
	}

	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, l.handleCallback)

	l.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if serveErr := l.server.Serve(ln); serveErr != nil && serveErr != http.ErrServerClosed {
			select {
			case l.events <- callbackEvent{err: serveErr}:
			default:
			}
		}
	}()

	return l, nil
}

// CallbackURL returns the URL the payment service should redirect back to
func (l *CallbackListener) CallbackURL() string {
	return fmt.Sprintf("http://%s%s?state=%s", l.ln.Addr().String(), callbackPath, l.state)
}

// Wait blocks until the redirect arrives or ctx is done, returning the
// transaction id carried by the redirect
func (l *CallbackListener) Wait(ctx context.Context) (int64, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case ev := <-l.events:
		if ev.err != nil {
			return 0, ev.err
		}
		return ev.transactionID, nil
	}
}

// Close shuts the listener down
func (l *CallbackListener) Close() error {
	return l.server.Close()
}

// handleCallback processes the redirect from the hosted payment page
func (l *CallbackListener) handleCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if query.Get("state") != l.state {
		http.Error(w, "unknown callback state", http.StatusForbidden)
		return
	}

	rawID := query.Get("transaction_id")
	if rawID == "" {
		l.deliver(callbackEvent{err: fmt.Errorf("callback is missing transaction_id")})
		http.Error(w, "missing transaction_id", http.StatusBadRequest)
		return
	}

	transactionID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		l.deliver(callbackEvent{err: fmt.Errorf("invalid transaction_id %q: %w", rawID, err)})
		http.Error(w, "invalid transaction_id", http.StatusBadRequest)
		return
	}

	l.deliver(callbackEvent{transactionID: transactionID})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = fmt.Fprint(w, "<html><body><h3>Payment received.</h3><p>You can return to the terminal.</p></body></html>")
}

// deliver hands the first event to the waiter, later ones are dropped
func (l *CallbackListener) deliver(ev callbackEvent) {
	select {
	case l.events <- ev:
	default:
	}
}
