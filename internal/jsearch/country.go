package jsearch

import (
	"strings"

	"hackhub/internal/config"
)

// CountryResolver infers the JSearch country code from a free-text location.
type CountryResolver struct {
	rules    []config.CountryRule
	fallback string
}

// NewCountryResolver builds a resolver from the lookup tables. Rules are
// tried in order, so earlier entries win on overlapping keywords.
func NewCountryResolver(l *config.Lookups) *CountryResolver {
	return &CountryResolver{rules: l.Countries, fallback: l.DefaultCountry}
}

// Resolve returns the code of the first rule with a keyword contained in
// location, or the default country.
func (r *CountryResolver) Resolve(location string) string {
	loc := strings.ToLower(strings.TrimSpace(location))
	if loc == "" {
		return r.fallback
	}
	for _, rule := range r.rules {
		for _, kw := range rule.Keywords {
			if kw != "" && strings.Contains(loc, kw) {
				return rule.Code
			}
		}
	}
	return r.fallback
}
