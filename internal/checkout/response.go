package checkout

// Appearance styles the Payment Element rendered for the intent flow.
type Appearance struct {
	Theme  string `json:"theme"`
	Labels string `json:"labels"`
}

var DefaultAppearance = Appearance{
	Theme:  "stripe",
	Labels: "floating",
}

// ArtifactResponse is what the browser receives after a successful create call.
// Only the fields relevant to the flow and UI mode are set.
type ArtifactResponse struct {
	CheckoutSessionURL string      `json:"checkoutSessionURL,omitempty"`
	ClientSecret       string      `json:"clientSecret,omitempty"`
	Appearance         *Appearance `json:"appearance,omitempty"`
}

// ShapeResponse maps a successful outcome to the payload expected by the
// checkout page. Hosted sessions redirect to Stripe, embedded sessions and
// intents mount a client side element with the client secret.
func ShapeResponse(outcome Outcome, uiMode UIMode, appearance Appearance) ArtifactResponse {
	if outcome.Intent != nil {
		return ArtifactResponse{
			ClientSecret: outcome.Intent.ClientSecret,
			Appearance:   &appearance,
		}
	}

	if outcome.Session == nil {
		return ArtifactResponse{}
	}

	if uiMode == UIModeHosted {
		return ArtifactResponse{CheckoutSessionURL: outcome.Session.URL}
	}

	return ArtifactResponse{ClientSecret: outcome.Session.ClientSecret}
}
