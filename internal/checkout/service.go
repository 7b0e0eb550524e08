package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/pawmart/storefront-backend/internal/cart"
	"github.com/pawmart/storefront-backend/internal/models"
	"github.com/pawmart/storefront-backend/internal/payment"
)

// orderIDPrefix marks storefront order ids. The id itself is a UUID, not
// a timestamp, so rapid repeated submissions cannot collide.
const orderIDPrefix = "PET-"

var errIllegalTransition = errors.New("illegal checkout status transition")

// Result is the outcome of a checkout submission. FieldErrors is
// populated when validation fails; Confirmation when payment succeeds.
// Status reflects where the attempt ended up.
type Result struct {
	Status       Status
	FieldErrors  map[string]string
	Confirmation *models.OrderConfirmation
}

// Service drives the checkout flow: validate the form, compute the order
// summary, hand off to the payment gateway, and clear the cart on
// success. A failed or dismissed payment leaves the cart intact.
type Service struct {
	cart    *cart.Store
	gateway payment.Gateway
	logger  *slog.Logger
	now     func() time.Time
}

// NewService creates a checkout service.
func NewService(cartStore *cart.Store, gateway payment.Gateway, logger *slog.Logger) *Service {
	return &Service{
		cart:    cartStore,
		gateway: gateway,
		logger:  logger,
		now:     time.Now,
	}
}

// Submit runs one checkout attempt for the user's current cart.
//
// Validation failures are not errors: they come back in
// Result.FieldErrors with Status FORM and the gateway is never invoked.
// Gateway problems are returned as errors: payment.ErrGatewayUnavailable
// when the gateway cannot be reached at all, payment.ErrPaymentDeclined
// (wrapped, with the gateway description) when the charge fails. In both
// cases the cart is preserved so the user can retry.
func (s *Service) Submit(ctx context.Context, userID string, form models.CheckoutForm) (*Result, error) {
	items := s.cart.Items(userID)

	fieldErrs := Validate(form, len(items) == 0, s.now())
	if len(fieldErrs) > 0 {
		return &Result{Status: StatusForm, FieldErrors: fieldErrs}, nil
	}

	summary := cart.ComputeOrderSummary(items, form.SelectedShippingMethod, 0)

	status := StatusForm
	if !CanTransitionTo(status, StatusPaymentPending) {
		return nil, errIllegalTransition
	}
	status = StatusPaymentPending

	// Currency is filled in by the gateway from its own configuration.
	paymentID, err := s.gateway.Collect(ctx, payment.CollectRequest{
		AmountMinorUnits: int64(math.Round(summary.Total * 100)),
		Description:      fmt.Sprintf("PawMart order (%d items)", summary.ItemCount),
		Prefill: payment.Prefill{
			Name:    form.FirstName + " " + form.LastName,
			Email:   form.Email,
			Contact: form.PhoneNumber,
		},
	})
	if err != nil {
		// Back to the editable form, cart untouched.
		if errors.Is(err, payment.ErrGatewayUnavailable) {
			s.logger.Warn("checkout blocked, payment gateway unavailable", "user_id", userID)
			return nil, err
		}
		s.logger.Info("payment failed", "user_id", userID, "error", err)
		return nil, err
	}

	if !CanTransitionTo(status, StatusConfirmed) {
		return nil, errIllegalTransition
	}

	// Only actual payment success clears the cart.
	s.cart.ClearCart(userID)

	confirmation := &models.OrderConfirmation{
		OrderID:           orderIDPrefix + uuid.New().String(),
		TotalCost:         summary.Total,
		EstimatedDelivery: estimatedDelivery(form.SelectedShippingMethod, s.now()),
	}

	s.logger.Info("order confirmed",
		"user_id", userID,
		"order_id", confirmation.OrderID,
		"payment_id", paymentID,
		"total", confirmation.TotalCost,
	)

	return &Result{Status: StatusConfirmed, Confirmation: confirmation}, nil
}

// estimatedDelivery returns the display date for the shipping method:
// next-day ships in 1 day, express in 3, standard in 7.
func estimatedDelivery(method models.ShippingMethod, now time.Time) string {
	days := 7
	switch method {
	case models.ShippingNextDay:
		days = 1
	case models.ShippingExpress:
		days = 3
	}
	return now.AddDate(0, 0, days).Format("Mon, 02 Jan 2006")
}
