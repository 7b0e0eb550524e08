package checkout

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pawmart/storefront-backend/internal/models"
)

var (
	zipPattern    = regexp.MustCompile(`^\d{5,6}$`)
	emailPattern  = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
	phoneChars    = regexp.MustCompile(`^\+?[\d\s\-()]+$`)
	expiryPattern = regexp.MustCompile(`^(\d{2})/(\d{2})$`)
	cvvPattern    = regexp.MustCompile(`^\d{3,4}$`)
	digitsOnly    = regexp.MustCompile(`^\d+$`)
)

// Validate applies every checkout rule and returns one message per
// failing field, keyed by the form field name. An empty map means the
// form may be submitted. All rules are evaluated (no short-circuit) so
// the UI can show every problem at once. String fields are trimmed
// before the emptiness check.
func Validate(form models.CheckoutForm, cartEmpty bool, now time.Time) map[string]string {
	errs := make(map[string]string)

	if cartEmpty {
		errs["cart"] = "Your cart is empty"
	}

	requireField(errs, "firstName", form.FirstName, "First name is required")
	requireField(errs, "lastName", form.LastName, "Last name is required")
	requireField(errs, "streetAddress", form.StreetAddress, "Street address is required")
	requireField(errs, "city", form.City, "City is required")
	requireField(errs, "state", form.State, "State is required")

	zip := strings.TrimSpace(form.ZipCode)
	switch {
	case zip == "":
		errs["zipCode"] = "Zip code is required"
	case !zipPattern.MatchString(zip):
		errs["zipCode"] = "Zip code must be 5 or 6 digits"
	}

	email := strings.TrimSpace(form.Email)
	switch {
	case email == "":
		errs["email"] = "Email is required"
	case !emailPattern.MatchString(email):
		errs["email"] = "Email address is not valid"
	}

	phone := strings.TrimSpace(form.PhoneNumber)
	switch {
	case phone == "":
		errs["phoneNumber"] = "Phone number is required"
	case !validPhone(phone):
		errs["phoneNumber"] = "Phone number is not valid"
	}

	if !form.SelectedShippingMethod.IsValid() {
		errs["shippingMethod"] = "Select a shipping method"
	}

	if !form.SelectedPaymentMethod.IsValid() {
		errs["paymentMethod"] = "Select a payment method"
	}

	if form.SelectedPaymentMethod == models.PaymentCredit {
		validateCardFields(errs, form, now)
	}

	if !form.AgreementAccepted {
		errs["agreement"] = "You must accept the terms and conditions"
	}

	return errs
}

// validateCardFields checks the card branch, required only for the
// credit payment method.
func validateCardFields(errs map[string]string, form models.CheckoutForm, now time.Time) {
	requireField(errs, "cardName", form.CardName, "Name on card is required")

	number := strings.ReplaceAll(strings.TrimSpace(form.CardNumber), " ", "")
	switch {
	case number == "":
		errs["cardNumber"] = "Card number is required"
	case !digitsOnly.MatchString(number):
		errs["cardNumber"] = "Card number must contain only digits"
	case len(number) < 13 || len(number) > 19:
		errs["cardNumber"] = "Card number must be 13 to 19 digits"
	}

	expiry := strings.TrimSpace(form.ExpiryDate)
	switch {
	case expiry == "":
		errs["expiryDate"] = "Expiry date is required"
	case !validExpiry(expiry, now):
		errs["expiryDate"] = "Expiry date must be a valid MM/YY in the future"
	}

	cvv := strings.TrimSpace(form.CVV)
	switch {
	case cvv == "":
		errs["cvv"] = "CVV is required"
	case !cvvPattern.MatchString(cvv):
		errs["cvv"] = "CVV must be 3 or 4 digits"
	}
}

func requireField(errs map[string]string, field, value, message string) {
	if strings.TrimSpace(value) == "" {
		errs[field] = message
	}
}

// validPhone accepts at least 10 digits with an optional leading "+" and
// spaces, dashes or parentheses as separators.
func validPhone(phone string) bool {
	if !phoneChars.MatchString(phone) {
		return false
	}
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 10
}

// validExpiry accepts MM/YY with month in [01,12] and a (month, year)
// pair not strictly before the current one.
func validExpiry(expiry string, now time.Time) bool {
	m := expiryPattern.FindStringSubmatch(expiry)
	if m == nil {
		return false
	}

	month, _ := strconv.Atoi(m[1])
	if month < 1 || month > 12 {
		return false
	}
	year, _ := strconv.Atoi(m[2])
	year += 2000

	if year < now.Year() {
		return false
	}
	if year == now.Year() && month < int(now.Month()) {
		return false
	}
	return true
}
