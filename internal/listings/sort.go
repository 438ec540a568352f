package listings

import (
	"sort"

	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/models"
)

// Sort option identifiers. Unknown values fall back to SortNewest.
const (
	SortNewest     = "newest"
	SortPriceAsc   = "price-low-high"
	SortPriceDesc  = "price-high-low"
	SortYearAsc    = "year-old-new"
	SortYearDesc   = "year-new-old"
	SortMileageAsc = "mileage-low-high"
)

// Sort returns a new slice ordered by the given option. The input is never
// mutated and listings with equal sort keys keep their relative input order.
func Sort(ls []*models.Listing, option string) []*models.Listing {
	out := make([]*models.Listing, len(ls))
	copy(out, ls)

	var less func(a, b *models.Listing) bool
	switch option {
	case SortPriceAsc:
		less = func(a, b *models.Listing) bool { return a.Price < b.Price }
	case SortPriceDesc:
		less = func(a, b *models.Listing) bool { return a.Price > b.Price }
	case SortYearAsc:
		less = func(a, b *models.Listing) bool { return a.Year < b.Year }
	case SortYearDesc:
		less = func(a, b *models.Listing) bool { return a.Year > b.Year }
	case SortMileageAsc:
		less = func(a, b *models.Listing) bool { return a.Mileage < b.Mileage }
	default: // SortNewest and anything unrecognized
		less = func(a, b *models.Listing) bool { return a.CreatedAt.After(b.CreatedAt) }
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
