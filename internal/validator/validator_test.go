package validator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomTags(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		tag     string
		valid   []string
		invalid []string
	}{
		{
			tag:     "stripe_customer_id",
			valid:   []string{"cus_123", "cus_NffrFeUfNV2Hib"},
			invalid: []string{"", "cus_", "cust_123", "123", "cus_12 3"},
		},
		{
			tag:     "stripe_public_key",
			valid:   []string{"pk_test_51H8abc", "pk_51H8abc"},
			invalid: []string{"", "pk_", "pk_live_", "sk_test_123", "pk_test_abc-def"},
		},
		{
			tag:     "stripe_secret_key",
			valid:   []string{"sk_test_123", "sk_live_abc", "rk_test_abc"},
			invalid: []string{"", "pk_test_123", "sk_"},
		},
		{
			tag:     "stripe_webhook_secret",
			valid:   []string{"whsec_abc123"},
			invalid: []string{"", "whsec_", "sk_test_123"},
		},
		{
			tag:     "stripe_price",
			valid:   []string{"price_1MoBy5LkdIwHu7ixZhnattbh"},
			invalid: []string{"", "prod_123", "price_"},
		},
		{
			tag:     "currency_code",
			valid:   []string{"usd", "brl"},
			invalid: []string{"", "USD", "us", "dollars"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			for _, value := range tt.valid {
				assert.NoError(t, v.Var(value, tt.tag), "value %q", value)
			}
			for _, value := range tt.invalid {
				assert.Error(t, v.Var(value, tt.tag), "value %q", value)
			}
		})
	}
}

func TestNoHTML(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Var("2 tickets for Saturday", "no_html"))
	assert.NoError(t, v.Var("Tom & Jerry's matinee", "no_html"))
	assert.Error(t, v.Var("<script>alert(1)</script>tickets", "no_html"))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "tickets", SanitizeString("  <b>tickets</b> "))
	assert.Equal(t, "", SanitizeString("<script>alert(1)</script>"))
}

func TestValidationMessage(t *testing.T) {
	v := NewValidator()

	input := struct {
		Price    string `validate:"stripe_price"`
		Quantity int64  `validate:"gt=0"`
	}{
		Price:    "prod_123",
		Quantity: 0,
	}

	err := v.Struct(input)

	var validationErrors validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrors))
	require.Len(t, validationErrors, 2)

	assert.Equal(t, "must be a stripe price id (price_...)", ValidationMessage(validationErrors[0]))
	assert.Equal(t, "must be greater than 0", ValidationMessage(validationErrors[1]))
}
