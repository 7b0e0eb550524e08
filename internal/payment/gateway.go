package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/pawmart/storefront-backend/internal/config"
	"github.com/sony/gobreaker/v2"
)

var (
	// ErrGatewayUnavailable means the gateway is not configured or its
	// circuit breaker is open. Checkout submission is blocked until it
	// recovers; the cart must be left untouched.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")

	// ErrPaymentDeclined means the gateway processed the request but the
	// charge did not go through. The wrapped message carries the
	// gateway-provided description.
	ErrPaymentDeclined = errors.New("payment declined")
)

// Prefill carries customer details shown in the gateway's checkout UI.
type Prefill struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

// CollectRequest asks the gateway to collect a payment.
// Amounts are in minor units (cents) to avoid float drift on the wire.
type CollectRequest struct {
	AmountMinorUnits int64   `json:"amount"`
	Currency         string  `json:"currency"`
	Description      string  `json:"description"`
	Prefill          Prefill `json:"prefill"`
}

// Gateway is the narrow contract the checkout flow depends on. Exactly
// one of (paymentID, error) carries the outcome.
type Gateway interface {
	Collect(ctx context.Context, req CollectRequest) (paymentID string, err error)
}

// HTTPGateway calls a third-party payment endpoint over HTTP, guarded by
// a circuit breaker so a flapping gateway degrades to the unavailable
// state instead of hammering the remote side.
type HTTPGateway struct {
	client    *http.Client
	endpoint  string
	keyID     string
	keySecret string
	currency  string
	breaker   *gobreaker.CircuitBreaker[string]
	logger    *slog.Logger
}

// NewHTTPGateway creates a gateway client from configuration. An empty
// endpoint yields a client that always reports ErrGatewayUnavailable.
func NewHTTPGateway(cfg config.PaymentConfig, logger *slog.Logger) *HTTPGateway {
	settings := gobreaker.Settings{
		Name:     "payment-gateway",
		Interval: time.Minute,
		Timeout:  30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		IsSuccessful: func(err error) bool {
			// A decline is a valid gateway answer, not a gateway outage.
			return err == nil || errors.Is(err, ErrPaymentDeclined)
		},
	}

	return &HTTPGateway{
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMs) * time.Millisecond,
		},
		endpoint:  cfg.Endpoint,
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		currency:  cfg.Currency,
		breaker:   gobreaker.NewCircuitBreaker[string](settings),
		logger:    logger,
	}
}

// Collect posts the charge request and returns the gateway payment id.
func (g *HTTPGateway) Collect(ctx context.Context, req CollectRequest) (string, error) {
	if g.endpoint == "" {
		return "", ErrGatewayUnavailable
	}
	if req.Currency == "" {
		req.Currency = g.currency
	}

	paymentID, err := g.breaker.Execute(func() (string, error) {
		return g.collect(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		g.logger.Warn("payment gateway circuit open", "error", err)
		return "", ErrGatewayUnavailable
	}
	return paymentID, err
}

func (g *HTTPGateway) collect(ctx context.Context, req CollectRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal collect request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create collect request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(g.keyID, g.keySecret)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("payment gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read gateway response: %w", err)
	}

	var parsed struct {
		PaymentID   string `json:"paymentId"`
		Description string `json:"description"`
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &parsed); err != nil {
			return "", fmt.Errorf("decode gateway response: %w", err)
		}
	}

	switch {
	case resp.StatusCode == http.StatusOK && parsed.PaymentID != "":
		return parsed.PaymentID, nil
	case resp.StatusCode == http.StatusPaymentRequired || resp.StatusCode == http.StatusUnprocessableEntity:
		if parsed.Description == "" {
			parsed.Description = "payment was not completed"
		}
		return "", fmt.Errorf("%w: %s", ErrPaymentDeclined, parsed.Description)
	default:
		return "", fmt.Errorf("unexpected gateway status %d", resp.StatusCode)
	}
}
