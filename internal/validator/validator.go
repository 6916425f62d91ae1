package validator

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	customerIDRgx    = regexp.MustCompile(`^cus_\w+$`)
	publicKeyRgx     = regexp.MustCompile(`^pk_(test_)?[A-Za-z0-9]+$`)
	secretKeyRgx     = regexp.MustCompile(`^(sk|rk)_(test_|live_)?[A-Za-z0-9]+$`)
	webhookSecretRgx = regexp.MustCompile(`^whsec_[A-Za-z0-9]+$`)
	priceIDRgx       = regexp.MustCompile(`^price_\w+$`)
	currencyRgx      = regexp.MustCompile(`^[a-z]{3}$`)

	sanitizer = bluemonday.StrictPolicy()
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("stripe_customer_id", matches(customerIDRgx))
	validator.RegisterValidation("stripe_public_key", matches(publicKeyRgx))
	validator.RegisterValidation("stripe_secret_key", matches(secretKeyRgx))
	validator.RegisterValidation("stripe_webhook_secret", matches(webhookSecretRgx))
	validator.RegisterValidation("stripe_price", matches(priceIDRgx))
	validator.RegisterValidation("currency_code", matches(currencyRgx))
	validator.RegisterValidation("no_html", validateNoHTML)

	return validator
}

func matches(rgx *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return rgx.MatchString(fl.Field().String())
	}
}

func validateNoHTML(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return html.UnescapeString(sanitizer.Sanitize(value)) == value
}

// SanitizeString strips every HTML element from s. Text that ends up on
// Stripe receipts and dashboards goes through here.
func SanitizeString(s string) string {
	return strings.TrimSpace(html.UnescapeString(sanitizer.Sanitize(s)))
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())
	case "stripe_customer_id":
		return "must be a stripe customer id (cus_...)"
	case "stripe_public_key":
		return "must be a stripe publishable key (pk_...)"
	case "stripe_secret_key":
		return "must be a stripe secret or restricted key (sk_... or rk_...)"
	case "stripe_webhook_secret":
		return "must be a stripe webhook signing secret (whsec_...)"
	case "stripe_price":
		return "must be a stripe price id (price_...)"
	case "currency_code":
		return "must be a lowercase 3-letter currency code"
	case "iso3166_1_alpha2":
		return "must be a 2-letter country code"
	case "no_html":
		return "must not contain html"
	case "e164":
		return "must be a phone number in E.164 format"
	default:
		return "is invalid"
	}
}
