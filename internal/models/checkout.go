package models

// PaymentMethod selects how the order total is collected.
type PaymentMethod string

const (
	PaymentCredit    PaymentMethod = "credit"
	PaymentPaypal    PaymentMethod = "paypal"
	PaymentApplePay  PaymentMethod = "applepay"
	PaymentGooglePay PaymentMethod = "googlepay"
)

// IsValid reports whether the method is one of the supported options.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCredit, PaymentPaypal, PaymentApplePay, PaymentGooglePay:
		return true
	}
	return false
}

// CheckoutForm carries the shipping address, payment selection and card
// fields submitted from the checkout page. It is transient: created when
// the checkout view is entered and discarded once the order is placed
// or abandoned. Card fields are only required for the credit method.
type CheckoutForm struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	StreetAddress string `json:"streetAddress"`
	Apartment     string `json:"apartment,omitempty"`
	City          string `json:"city"`
	State         string `json:"state"`
	ZipCode       string `json:"zipCode"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phoneNumber"`

	CardName   string `json:"cardName,omitempty"`
	CardNumber string `json:"cardNumber,omitempty"`
	ExpiryDate string `json:"expiryDate,omitempty"` // MM/YY
	CVV        string `json:"cvv,omitempty"`

	SelectedShippingMethod ShippingMethod `json:"selectedShippingMethod"`
	SelectedPaymentMethod  PaymentMethod  `json:"selectedPaymentMethod"`
	AgreementAccepted      bool           `json:"agreementAccepted"`
}

// OrderConfirmation is returned to the client after a successful payment.
// The order id is a display convenience, not a persisted identifier.
type OrderConfirmation struct {
	OrderID           string  `json:"orderId"`
	TotalCost         float64 `json:"totalCost"`
	EstimatedDelivery string  `json:"estimatedDelivery"`
}
