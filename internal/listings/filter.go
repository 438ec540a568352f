package listings

import (
	"strings"

	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/models"
)

// FilterSpec holds the active search constraints. Nil pointer fields and the
// empty BodyTypes set mean "no constraint" - this is distinct from matching
// an empty string.
type FilterSpec struct {
	Make          *string
	Model         *string
	MinPrice      *float64
	MaxPrice      *float64
	MinYear       *int
	MaxYear       *int
	MinMileage    *float64
	MaxMileage    *float64
	BodyTypes     []string // OR semantics; empty = unconstrained
	Transmission  *string
	FuelType      *string
	Location      *string
	RegionalSpecs *string
	Search        *string // case-insensitive substring over make, model, description
}

// Filter returns the listings satisfying every set constraint in spec.
// Unset constraints impose no restriction; the result preserves input order.
// A spec with min > max legitimately yields an empty result, never an error.
func Filter(ls []*models.Listing, spec FilterSpec) []*models.Listing {
	out := make([]*models.Listing, 0, len(ls))
	for _, l := range ls {
		if matches(l, spec) {
			out = append(out, l)
		}
	}
	return out
}

func matches(l *models.Listing, spec FilterSpec) bool {
	if spec.Make != nil && l.Make != *spec.Make {
		return false
	}
	if spec.Model != nil && l.Model != *spec.Model {
		return false
	}
	if spec.MinPrice != nil && l.Price < *spec.MinPrice {
		return false
	}
	if spec.MaxPrice != nil && l.Price > *spec.MaxPrice {
		return false
	}
	if spec.MinYear != nil && l.Year < *spec.MinYear {
		return false
	}
	if spec.MaxYear != nil && l.Year > *spec.MaxYear {
		return false
	}
	if spec.MinMileage != nil && l.Mileage < *spec.MinMileage {
		return false
	}
	if spec.MaxMileage != nil && l.Mileage > *spec.MaxMileage {
		return false
	}
	if len(spec.BodyTypes) > 0 && !contains(spec.BodyTypes, l.BodyType) {
		return false
	}
	if spec.Transmission != nil && l.Transmission != *spec.Transmission {
		return false
	}
	if spec.FuelType != nil && l.FuelType != *spec.FuelType {
		return false
	}
	if spec.Location != nil && l.Location != *spec.Location {
		return false
	}
	if spec.RegionalSpecs != nil && l.RegionalSpecs != *spec.RegionalSpecs {
		return false
	}
	if spec.Search != nil {
		needle := strings.ToLower(*spec.Search)
		haystack := strings.ToLower(l.Make + " " + l.Model + " " + l.Description)
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
