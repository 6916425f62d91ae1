package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/metinatakli/stripe-checkout/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
)

const (
	MessageSessionExpired = "session expired."
	MessageSomethingWrong = "something went wrong! please, try again."
)

type ReturnQuery struct {
	SessionID                 string
	PaymentIntentID           string
	PaymentIntentClientSecret string
}

type ReturnOutcome struct {
	Status        string
	CustomerEmail string
	Total         json.Number
}

// ReturnResult carries an outcome to display, or no outcome at all when the
// caller has to be sent back to the checkout page (optionally with a message).
type ReturnResult struct {
	Outcome *ReturnOutcome
	Message string
}

func (r ReturnResult) Redirect() bool {
	return r.Outcome == nil
}

type ReturnResolver struct {
	processor domain.PaymentProcessor
}

func NewReturnResolver(processor domain.PaymentProcessor) *ReturnResolver {
	return &ReturnResolver{
		processor: processor,
	}
}

// Resolve looks up the status of the object named in the return query.
// Processor errors are not retried.
func (r *ReturnResolver) Resolve(ctx context.Context, q ReturnQuery) (ReturnResult, error) {
	switch {
	case q.SessionID != "":
		session, err := r.processor.GetCheckoutSession(ctx, q.SessionID)
		if err != nil {
			return ReturnResult{}, fmt.Errorf("%w: checkout session %s: %w", domain.ErrProcessorRetrieve, q.SessionID, err)
		}

		return sessionResult(session), nil

	case q.PaymentIntentID != "" && q.PaymentIntentClientSecret != "":
		intent, err := r.processor.GetPaymentIntent(ctx, q.PaymentIntentID, "customer")
		if err != nil {
			return ReturnResult{}, fmt.Errorf("%w: payment intent %s: %w", domain.ErrProcessorRetrieve, q.PaymentIntentID, err)
		}

		return intentResult(intent), nil
	}

	return ReturnResult{Message: MessageSomethingWrong}, nil
}

func sessionResult(session *stripe.CheckoutSession) ReturnResult {
	switch session.Status {
	case stripe.CheckoutSessionStatusOpen:
		return ReturnResult{}
	case stripe.CheckoutSessionStatusComplete:
		email := session.CustomerEmail
		if email == "" && session.CustomerDetails != nil {
			email = session.CustomerDetails.Email
		}

		return ReturnResult{
			Outcome: &ReturnOutcome{
				Status:        string(session.Status),
				CustomerEmail: email,
				Total:         json.Number(strconv.FormatInt(session.AmountTotal, 10)),
			},
		}
	case stripe.CheckoutSessionStatusExpired:
		return ReturnResult{Message: MessageSessionExpired}
	}

	return ReturnResult{Message: MessageSomethingWrong}
}

func intentResult(intent *stripe.PaymentIntent) ReturnResult {
	var email string
	if intent.Customer != nil {
		email = intent.Customer.Email
	}

	total := decimal.New(intent.Amount, -2).StringFixed(2)

	return ReturnResult{
		Outcome: &ReturnOutcome{
			Status:        string(intent.Status),
			CustomerEmail: email,
			Total:         json.Number(total),
		},
	}
}
