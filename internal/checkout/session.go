package checkout

import (
	"log/slog"
	"strings"
	"time"

	"github.com/metinatakli/stripe-checkout/internal/domain"
	"github.com/stripe/stripe-go/v82"
)

type Mode string

const (
	ModePayment      Mode = "payment"
	ModeSubscription Mode = "subscription"
)

type UIMode string

const (
	UIModeHosted   UIMode = "hosted"
	UIModeEmbedded UIMode = "embedded"
)

// Flow selects which processor object a checkout creates.
type Flow string

const (
	FlowSession Flow = "session"
	FlowIntent  Flow = "intent"
)

const (
	MinExpireMinutes = 30
	MaxExpireMinutes = 24 * 60

	// SessionIDPlaceholder is replaced by Stripe with the real session id on redirect.
	SessionIDPlaceholder = "{CHECKOUT_SESSION_ID}"
)

// LineItem is passed to Stripe as is; its shape is dictated by the Checkout API.
type LineItem = stripe.CheckoutSessionLineItemParams

// SessionConfig holds the hooks a checkout session is built from.
type SessionConfig struct {
	Mode          Mode
	UIMode        UIMode
	ExpireMinutes int
	LineItems     func() []*LineItem
	SuccessURL    func() string
	CancelURL     func() string
	ReturnURL     func() string
}

type SessionParameters struct {
	Mode       Mode
	UIMode     UIMode
	LineItems  []*LineItem
	ExpiresAt  int64
	SuccessURL string
	CancelURL  string
	ReturnURL  string
	CustomerID string
}

func ValidateSessionSettings(mode Mode, uiMode UIMode, expireMinutes int) error {
	switch mode {
	case ModePayment, ModeSubscription:
	default:
		return domain.NewConfigurationError("mode", "%q is not one of [%s %s]", mode, ModePayment, ModeSubscription)
	}

	switch uiMode {
	case UIModeHosted, UIModeEmbedded:
	default:
		return domain.NewConfigurationError("ui mode", "%q is not one of [%s %s]", uiMode, UIModeHosted, UIModeEmbedded)
	}

	if expireMinutes < MinExpireMinutes || expireMinutes > MaxExpireMinutes {
		return domain.NewConfigurationError(
			"expire minutes",
			"must be between %d and %d (24h), got %d",
			MinExpireMinutes,
			MaxExpireMinutes,
			expireMinutes,
		)
	}

	return nil
}

func BuildSessionParameters(cfg SessionConfig, now time.Time) (*SessionParameters, error) {
	err := ValidateSessionSettings(cfg.Mode, cfg.UIMode, cfg.ExpireMinutes)
	if err != nil {
		return nil, err
	}

	if cfg.LineItems == nil {
		return nil, domain.NewConfigurationError("line items", "a line items provider is required")
	}

	lineItems := cfg.LineItems()
	if len(lineItems) == 0 {
		return nil, domain.NewConfigurationError("line items", "at least one line item is required")
	}

	for i, item := range lineItems {
		if item == nil {
			return nil, domain.NewConfigurationError("line items", "line item %d is empty", i)
		}
	}

	params := &SessionParameters{
		Mode:      cfg.Mode,
		UIMode:    cfg.UIMode,
		LineItems: lineItems,
		ExpiresAt: now.Add(time.Duration(cfg.ExpireMinutes) * time.Minute).Unix(),
	}

	switch cfg.UIMode {
	case UIModeHosted:
		if cfg.SuccessURL == nil || cfg.CancelURL == nil {
			return nil, domain.NewConfigurationError("urls", "hosted checkout requires success and cancel urls")
		}

		params.SuccessURL = cfg.SuccessURL()
		params.CancelURL = cfg.CancelURL()

		if params.SuccessURL == "" || params.CancelURL == "" {
			return nil, domain.NewConfigurationError("urls", "hosted checkout requires success and cancel urls")
		}
	case UIModeEmbedded:
		if cfg.ReturnURL == nil {
			return nil, domain.NewConfigurationError("urls", "embedded checkout requires a return url")
		}

		params.ReturnURL = cfg.ReturnURL()

		if !strings.Contains(params.ReturnURL, SessionIDPlaceholder) {
			return nil, domain.NewConfigurationError(
				"urls",
				"return url %q must contain the %s placeholder",
				params.ReturnURL,
				SessionIDPlaceholder,
			)
		}
	}

	return params, nil
}

func (p *SessionParameters) StripeParams() *stripe.CheckoutSessionParams {
	params := &stripe.CheckoutSessionParams{
		Mode:      stripe.String(string(p.Mode)),
		UIMode:    stripe.String(string(p.UIMode)),
		LineItems: p.LineItems,
		ExpiresAt: stripe.Int64(p.ExpiresAt),
	}

	if p.SuccessURL != "" {
		params.SuccessURL = stripe.String(p.SuccessURL)
	}
	if p.CancelURL != "" {
		params.CancelURL = stripe.String(p.CancelURL)
	}
	if p.ReturnURL != "" {
		params.ReturnURL = stripe.String(p.ReturnURL)
	}
	if p.CustomerID != "" {
		params.Customer = stripe.String(p.CustomerID)
	}

	return params
}

// LogValue keeps line item pointers out of the logs.
func (p *SessionParameters) LogValue() slog.Value {
	prices := make([]string, 0, len(p.LineItems))
	for _, item := range p.LineItems {
		if item != nil && item.Price != nil {
			prices = append(prices, *item.Price)
		}
	}

	return slog.GroupValue(
		slog.String("mode", string(p.Mode)),
		slog.String("ui_mode", string(p.UIMode)),
		slog.Any("prices", prices),
		slog.Int("line_items", len(p.LineItems)),
		slog.Int64("expires_at", p.ExpiresAt),
		slog.String("success_url", p.SuccessURL),
		slog.String("cancel_url", p.CancelURL),
		slog.String("return_url", p.ReturnURL),
		slog.String("customer", p.CustomerID),
	)
}

// Static wraps a fixed value as a URL hook.
func Static(value string) func() string {
	return func() string {
		return value
	}
}

type URLs struct {
	Success string
	Cancel  string
	Return  string
}

// DefaultURLs builds the success, cancel and return pages served by this
// service for the given origin (scheme and host).
func DefaultURLs(origin string) URLs {
	origin = strings.TrimRight(origin, "/")

	return URLs{
		Success: origin + "/checkout/success",
		Cancel:  origin + "/checkout/cancel",
		Return:  origin + "/checkout/return?session_id=" + SessionIDPlaceholder,
	}
}

// TemplateFor returns the markup the rendering layer should use for a flow.
func TemplateFor(flow Flow, uiMode UIMode) string {
	if flow == FlowIntent {
		return "checkouts/checkout-custom.html"
	}

	if uiMode == UIModeHosted {
		return "checkouts/checkout-hosted.html"
	}

	return "checkouts/checkout-embedded.html"
}

// FailureTarget is where a caller is sent when the processor rejects a create call.
func FailureTarget(configured, referer string) string {
	if configured != "" {
		return configured
	}
	if referer != "" {
		return referer
	}

	return "/"
}
