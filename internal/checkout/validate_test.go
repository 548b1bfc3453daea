package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		valid bool
	}{
		{"simple address", "a@b.co", true},
		{"longer address", "user.name@example.com", true},
		{"surrounding whitespace is trimmed", "  u@x.com  ", true},
		{"empty", "", false},
		{"no at sign", "not-an-email", false},
		{"no dot after at", "user@host", false},
		{"whitespace inside", "u ser@x.com", false},
		{"double at", "u@@x.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validateEmail(tt.email)
			if tt.valid {
				assert.Empty(t, msg)
			} else {
				assert.NotEmpty(t, msg)
			}
		})
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		valid bool
	}{
		{"digits only", "123456", true},
		{"international format", "+1 (555) 123-4567", true},
		{"plus prefix", "+123456", true},
		{"empty", "", false},
		{"letters", "call me", false},
		{"plus in the middle", "12+34", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validatePhone(tt.phone)
			if tt.valid {
				assert.Empty(t, msg)
			} else {
				assert.NotEmpty(t, msg)
			}
		})
	}
}

func TestValidateAddress(t *testing.T) {
	assert.Empty(t, validateAddress("Main St 1"))
	assert.NotEmpty(t, validateAddress(""))
	assert.NotEmpty(t, validateAddress("   "), "whitespace-only address is empty after trimming")
}

func TestValidatePayment(t *testing.T) {
	assert.Empty(t, validatePayment(PaymentOnline))
	assert.Empty(t, validatePayment(PaymentCash))
	assert.NotEmpty(t, validatePayment(""))
	assert.NotEmpty(t, validatePayment("bitcoin"))
}

func TestParsePaymentMethod(t *testing.T) {
	m, ok := ParsePaymentMethod("online")
	assert.True(t, ok)
	assert.Equal(t, PaymentOnline, m)

	m, ok = ParsePaymentMethod("cash")
	assert.True(t, ok)
	assert.Equal(t, PaymentCash, m)

	_, ok = ParsePaymentMethod("card")
	assert.False(t, ok)
}
