package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound          = errors.New("record not found")
	ErrUserAlreadyExists       = errors.New("a user with the given email, username or phone already exists")
	ErrCustomerAlreadyExists   = errors.New("a stripe customer is already bound to the user")
	ErrCustomerNotDeleted      = errors.New("the stripe customer was not deleted")
	ErrProcessorCreate         = errors.New("payment processor rejected the create call")
	ErrProcessorRetrieve       = errors.New("payment processor status lookup failed")
	ErrInvalidPayload          = errors.New("invalid webhook payload")
	ErrSignatureVerification   = errors.New("webhook signature verification failed")
	ErrEventDecode             = errors.New("webhook event data could not be decoded")
	ErrInvalidCredentials      = errors.New("invalid authentication credentials")
	ErrUnsupportedCheckoutFlow = errors.New("unsupported checkout flow")
)

// ConfigurationError reports a static misconfiguration of a checkout builder
// or of the webhook handler table. It is expected to surface at startup.
type ConfigurationError struct {
	Field  string
	Reason string
}

func NewConfigurationError(field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{
		Field:  field,
		Reason: fmt.Sprintf(format, args...),
	}
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration of %s: %s", e.Field, e.Reason)
}
