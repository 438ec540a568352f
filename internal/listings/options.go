package listings

import (
	"sort"

	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/models"
)

// UniqueValues collects the distinct non-empty values produced by the accessor
// across the collection, sorted lexicographically. Used to populate filter
// dropdowns (makes, body types, locations and so on).
func UniqueValues(ls []*models.Listing, accessor func(*models.Listing) string) []string {
	seen := make(map[string]struct{}, len(ls))
	out := make([]string, 0, len(ls))
	for _, l := range ls {
		v := accessor(l)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// ModelsForMake returns the sorted distinct models among listings of the
// given make. An empty make yields an empty set - a model constraint is only
// meaningful once a make is chosen.
func ModelsForMake(ls []*models.Listing, carMake string) []string {
	if carMake == "" {
		return []string{}
	}
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, l := range ls {
		if l.Make != carMake || l.Model == "" {
			continue
		}
		if _, ok := seen[l.Model]; ok {
			continue
		}
		seen[l.Model] = struct{}{}
		out = append(out, l.Model)
	}
	sort.Strings(out)
	return out
}
