package checkout

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"

	"github.com/metinatakli/stripe-checkout/internal/domain"
	"github.com/stripe/stripe-go/v82"
)

const DefaultPaymentMethodType = "card"

// MethodStrategy tells Stripe how to pick payment methods. Automatic and an
// explicit type list are mutually exclusive.
type MethodStrategy struct {
	Automatic bool     `json:"automatic"`
	Types     []string `json:"types,omitempty"`
}

type IntentExtras struct {
	Amount      int64
	Description string
	Metadata    map[string]string
}

// PaymentIntentParameters is encoded to JSON to derive the idempotency key,
// so the field order here is part of the key.
type PaymentIntentParameters struct {
	Currency       string            `json:"currency"`
	Methods        MethodStrategy    `json:"payment_methods"`
	CustomerID     string            `json:"customer,omitempty"`
	Amount         int64             `json:"amount"`
	Description    string            `json:"description,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	IdempotencyKey string            `json:"-"`
}

func BuildPaymentIntentParameters(
	currency string,
	automaticMethods bool,
	explicitMethodTypes []string,
	customerID string,
	extra IntentExtras) (*PaymentIntentParameters, error) {

	if automaticMethods && len(explicitMethodTypes) > 0 {
		return nil, domain.NewConfigurationError(
			"payment methods",
			"automatic payment methods and explicit payment method types are mutually exclusive",
		)
	}

	currency = strings.ToLower(strings.TrimSpace(currency))
	if !isCurrencyCode(currency) {
		return nil, domain.NewConfigurationError("currency", "%q is not a 3-letter currency code", currency)
	}

	methods := MethodStrategy{Automatic: automaticMethods}
	if !automaticMethods {
		methods.Types = explicitMethodTypes
		if len(methods.Types) == 0 {
			methods.Types = []string{DefaultPaymentMethodType}
		}
	}

	return &PaymentIntentParameters{
		Currency:    currency,
		Methods:     methods,
		CustomerID:  customerID,
		Amount:      extra.Amount,
		Description: extra.Description,
		Metadata:    extra.Metadata,
	}, nil
}

// DeriveIdempotencyKey hashes the caller id, the caller's secret and the
// canonical form of the parameters. Anonymous callers pass a zero id and an
// empty secret.
func DeriveIdempotencyKey(params *PaymentIntentParameters, userID int, secret string) (string, error) {
	canonical, err := json.Marshal(params)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if userID > 0 {
		b.WriteString(strconv.Itoa(userID))
	}
	b.WriteString(secret)
	b.Write(canonical)

	sum := sha256.Sum256([]byte(b.String()))

	return hex.EncodeToString(sum[:]), nil
}

func (p *PaymentIntentParameters) StripeParams() *stripe.PaymentIntentParams {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(p.Amount),
		Currency: stripe.String(p.Currency),
	}

	if p.Methods.Automatic {
		params.AutomaticPaymentMethods = &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		}
	} else {
		params.PaymentMethodTypes = stripe.StringSlice(p.Methods.Types)
	}

	if p.CustomerID != "" {
		params.Customer = stripe.String(p.CustomerID)
	}
	if p.Description != "" {
		params.Description = stripe.String(p.Description)
	}
	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}
	if p.IdempotencyKey != "" {
		params.SetIdempotencyKey(p.IdempotencyKey)
	}

	return params
}

func (p *PaymentIntentParameters) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("currency", p.Currency),
		slog.Bool("automatic_methods", p.Methods.Automatic),
		slog.Any("method_types", p.Methods.Types),
		slog.String("customer", p.CustomerID),
		slog.Int64("amount", p.Amount),
		slog.String("description", p.Description),
		slog.String("idempotency_key", p.IdempotencyKey),
	)
}

func isCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}

	for _, ch := range code {
		if ch < 'a' || ch > 'z' {
			return false
		}
	}

	return true
}
