// Package filter narrows in-memory artist and opportunity collections
// with composable predicate stages. Stages AND-compose, values inside
// one set-valued stage OR-compose, empty stages are no-ops and input
// order is always preserved.
package filter

import (
	"strings"

	"github.com/singerjob/singerjob/internal/domain/opportunity"
	"github.com/singerjob/singerjob/internal/domain/user"
)

// Opportunities applies the filter stages in a fixed order: art
// types, locations, minimum payment, then free-text query.
func Opportunities(items []opportunity.Opportunity, spec opportunity.FilterSpec) []opportunity.Opportunity {
	out := make([]opportunity.Opportunity, 0, len(items))

	for _, opp := range items {
		if len(spec.ArtTypes) > 0 && !containsString(spec.ArtTypes, opp.ArtType) {
			continue
		}

		if len(spec.Locations) > 0 && !containsString(spec.Locations, opp.Location) {
			continue
		}

		if spec.MinPayment > 0 && opp.PaymentRange.Min < spec.MinPayment {
			continue
		}

		if spec.Query != "" && !MatchOpportunity(opp, spec.Query) {
			continue
		}

		out = append(out, opp)
	}

	return out
}

// Artists applies the same pipeline over the artist directory, with
// the numeric stage reading minimum experience instead of payment.
func Artists(items []user.User, spec opportunity.FilterSpec) []user.User {
	out := make([]user.User, 0, len(items))

	for _, a := range items {
		if len(spec.ArtTypes) > 0 && !containsString(spec.ArtTypes, a.ArtType) {
			continue
		}

		if len(spec.Locations) > 0 && !containsString(spec.Locations, a.Location) {
			continue
		}

		if spec.MinExperience > 0 && a.Experience < spec.MinExperience {
			continue
		}

		if spec.Query != "" && !MatchArtist(a, spec.Query) {
			continue
		}

		out = append(out, a)
	}

	return out
}

// MatchArtist is the free-text rule for artists: case-insensitive
// substring against name or art type. An empty query matches.
func MatchArtist(a user.User, query string) bool {
	if query == "" {
		return true
	}

	q := strings.ToLower(query)

	return strings.Contains(strings.ToLower(a.Name), q) ||
		strings.Contains(strings.ToLower(a.ArtType), q)
}

// MatchOpportunity checks title, description and art type.
func MatchOpportunity(opp opportunity.Opportunity, query string) bool {
	if query == "" {
		return true
	}

	q := strings.ToLower(query)

	return strings.Contains(strings.ToLower(opp.Title), q) ||
		strings.Contains(strings.ToLower(opp.Description), q) ||
		strings.Contains(strings.ToLower(opp.ArtType), q)
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}

	return false
}
