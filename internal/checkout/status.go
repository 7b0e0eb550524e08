package checkout

// Status tracks a checkout attempt through the payment hand-off.
type Status string

const (
	StatusForm           Status = "FORM"
	StatusPaymentPending Status = "PAYMENT_PENDING"
	StatusConfirmed      Status = "CONFIRMED"
)

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == StatusConfirmed
}

// String representation (for logging)
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo reports whether moving from one status to another is a
// legal step. A failed or dismissed payment returns to FORM with the cart
// intact; only a successful payment reaches CONFIRMED.
func CanTransitionTo(from, to Status) bool {
	switch from {
	case StatusForm:
		return to == StatusPaymentPending
	case StatusPaymentPending:
		return to == StatusConfirmed || to == StatusForm
	default:
		return false
	}
}
