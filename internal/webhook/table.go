package webhook

import (
	"context"

	"github.com/stripe/stripe-go/v82"
)

// HandlerFunc reacts to the object carried by a verified event.
type HandlerFunc func(ctx context.Context, data *stripe.EventData) error

type handlerKind int

const (
	kindIgnore handlerKind = iota
	kindFunc
	kindNamed
)

// Handler is what an event type maps to: a function, the name of a
// registered handler, or nothing at all (acknowledged without side effects).
type Handler struct {
	kind handlerKind
	fn   HandlerFunc
	name string
}

// Ignore acknowledges an event without doing anything.
var Ignore = Handler{kind: kindIgnore}

func Func(fn HandlerFunc) Handler {
	if fn == nil {
		return Ignore
	}

	return Handler{kind: kindFunc, fn: fn}
}

// Named refers to a handler in the dispatcher's registry. Unknown names are
// rejected when the dispatcher is built.
func Named(name string) Handler {
	return Handler{kind: kindNamed, name: name}
}

func (h Handler) IsIgnore() bool {
	return h.kind == kindIgnore
}

func (h Handler) String() string {
	switch h.kind {
	case kindFunc:
		return "func"
	case kindNamed:
		return "named:" + h.name
	}

	return "ignore"
}

// Table maps event types to handlers.
type Table map[stripe.EventType]Handler

// Registry is the closed set of handlers Named references resolve against.
type Registry map[string]HandlerFunc

// DefaultTable returns a new table with every event type this service
// subscribes to mapped to Ignore.
func DefaultTable() Table {
	return Table{
		stripe.EventTypeCheckoutSessionAsyncPaymentFailed:    Ignore,
		stripe.EventTypeCheckoutSessionAsyncPaymentSucceeded: Ignore,
		stripe.EventTypeCheckoutSessionCompleted:             Ignore,
		stripe.EventTypeCheckoutSessionExpired:               Ignore,
		stripe.EventTypeCustomerCreated:                      Ignore,
		stripe.EventTypeCustomerDeleted:                      Ignore,
		stripe.EventTypePaymentIntentAmountCapturableUpdated: Ignore,
		stripe.EventTypePaymentIntentCanceled:                Ignore,
		stripe.EventTypePaymentIntentCreated:                 Ignore,
		stripe.EventTypePaymentIntentPartiallyFunded:         Ignore,
		stripe.EventTypePaymentIntentPaymentFailed:           Ignore,
		stripe.EventTypePaymentIntentProcessing:              Ignore,
		stripe.EventTypePaymentIntentRequiresAction:          Ignore,
		stripe.EventTypePaymentIntentSucceeded:               Ignore,
	}
}

// Merge returns a new table holding base with overrides applied on top.
// Neither argument is modified.
func Merge(base, overrides Table) Table {
	merged := make(Table, len(base)+len(overrides))

	for eventType, handler := range base {
		merged[eventType] = handler
	}
	for eventType, handler := range overrides {
		merged[eventType] = handler
	}

	return merged
}
