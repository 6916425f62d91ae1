package currency

import "strings"

const DefaultCurrency = "usd"

var localeCurrencies = map[string]string{
	"pt":    "eur",
	"pt-BR": "brl",
	"en":    "usd",
	"en-US": "usd",
	"en-GB": "gbp",
	"es":    "eur",
	"es-ES": "eur",
	"es-MX": "mxn",
}

type Resolver struct {
	fallback string
}

func NewResolver(fallback string) *Resolver {
	fallback = strings.ToLower(strings.TrimSpace(fallback))
	if fallback == "" {
		fallback = DefaultCurrency
	}

	return &Resolver{
		fallback: fallback,
	}
}

// Resolve maps the preferred locale of an Accept-Language header to a
// lower-cased currency code. A non-empty override always wins and is only
// lower-cased, never trimmed or checked against the locale table.
func (r *Resolver) Resolve(acceptLanguage, override string) string {
	if override != "" {
		return strings.ToLower(override)
	}

	locale := PreferredLocale(acceptLanguage)
	if locale == "" {
		return r.fallback
	}

	currency, ok := localeCurrencies[locale]
	if !ok {
		return r.fallback
	}

	return currency
}

// PreferredLocale returns the first language tag of an Accept-Language header.
func PreferredLocale(acceptLanguage string) string {
	first, _, _ := strings.Cut(acceptLanguage, ",")
	tag, _, _ := strings.Cut(first, ";")

	return strings.TrimSpace(tag)
}
