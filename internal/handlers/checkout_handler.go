package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pawmart/storefront-backend/internal/checkout"
	"github.com/pawmart/storefront-backend/internal/models"
	"github.com/pawmart/storefront-backend/internal/payment"
)

// CheckoutHandler handles checkout submission
type CheckoutHandler struct {
	service *checkout.Service
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(service *checkout.Service, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		logger:  logger,
	}
}

// validationResponse carries the per-field error map back to the form.
type validationResponse struct {
	Errors map[string]string `json:"errors"`
}

// Submit handles POST /api/checkout.
//
// Responses:
//   - 200: order confirmed
//   - 422: validation failed, body carries the field error map
//   - 402: the gateway declined the payment; cart is preserved
//   - 503: payment gateway unavailable, submission blocked
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var form models.CheckoutForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		h.logger.Error("failed to decode checkout form", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	result, err := h.service.Submit(r.Context(), userID(r), form)
	if err != nil {
		if errors.Is(err, payment.ErrGatewayUnavailable) {
			WriteError(w, http.StatusServiceUnavailable, "Payment gateway is unavailable, please try again later", h.logger)
			return
		}
		if errors.Is(err, payment.ErrPaymentDeclined) {
			WriteError(w, http.StatusPaymentRequired, err.Error(), h.logger)
			return
		}
		h.logger.Error("checkout failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	if result.Status != checkout.StatusConfirmed {
		WriteJSON(w, http.StatusUnprocessableEntity, validationResponse{Errors: result.FieldErrors}, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, result.Confirmation, h.logger)
}
