package checkout

import (
	"regexp"
	"strings"
)

// Field validators shared by the two form groups. Each returns a display
// message, or "" when the value passes.

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-()]+$`)
)

func validatePayment(m PaymentMethod) string {
	if m != PaymentOnline && m != PaymentCash {
		return "select a payment method"
	}
	return ""
}

func validateAddress(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "address is required"
	}
	return ""
}

func validateEmail(raw string) string {
	if raw == "" {
		return "email is required"
	}
	if !emailPattern.MatchString(strings.TrimSpace(raw)) {
		return "invalid email format"
	}
	return ""
}

func validatePhone(raw string) string {
	if raw == "" {
		return "phone is required"
	}
	if !phonePattern.MatchString(strings.TrimSpace(raw)) {
		return "invalid phone format"
	}
	return ""
}
