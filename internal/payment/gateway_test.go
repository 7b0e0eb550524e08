package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pawmart/storefront-backend/internal/config"
	"github.com/pawmart/storefront-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) config.PaymentConfig {
	return config.PaymentConfig{
		Endpoint:  endpoint,
		KeyID:     "key_test",
		KeySecret: "secret_test",
		Currency:  "USD",
		TimeoutMs: 2000,
	}
}

func testRequest() CollectRequest {
	return CollectRequest{
		AmountMinorUnits: 14934,
		Currency:         "USD",
		Description:      "PawMart order (2 items)",
		Prefill:          Prefill{Name: "Asha Patel", Email: "asha@example.com", Contact: "5035550142"},
	}
}

func TestCollect_NotConfigured(t *testing.T) {
	gateway := NewHTTPGateway(testConfig(""), logger.New("error"))

	_, err := gateway.Collect(context.Background(), testRequest())

	assert.ErrorIs(t, err, ErrGatewayUnavailable)
}

func TestCollect_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "key_test", user)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"paymentId":"pay_abc123"}`))
	}))
	defer srv.Close()

	gateway := NewHTTPGateway(testConfig(srv.URL), logger.New("error"))

	paymentID, err := gateway.Collect(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, "pay_abc123", paymentID)
}

func TestCollect_Declined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"description":"insufficient funds"}`))
	}))
	defer srv.Close()

	gateway := NewHTTPGateway(testConfig(srv.URL), logger.New("error"))

	_, err := gateway.Collect(context.Background(), testRequest())

	assert.ErrorIs(t, err, ErrPaymentDeclined)
	assert.Contains(t, err.Error(), "insufficient funds")
}

func TestCollect_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	gateway := NewHTTPGateway(testConfig(srv.URL), logger.New("error"))

	// Three consecutive upstream failures trip the breaker.
	for i := 0; i < 3; i++ {
		_, err := gateway.Collect(context.Background(), testRequest())
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrGatewayUnavailable)
	}

	_, err := gateway.Collect(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrGatewayUnavailable)
}

// Declines are valid gateway answers and must not trip the breaker.
func TestCollect_DeclinesDoNotOpenBreaker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"description":"card expired"}`))
	}))
	defer srv.Close()

	gateway := NewHTTPGateway(testConfig(srv.URL), logger.New("error"))

	for i := 0; i < 5; i++ {
		_, err := gateway.Collect(context.Background(), testRequest())
		assert.ErrorIs(t, err, ErrPaymentDeclined)
	}
}
