package listings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/models"
)

func strPtr(s string) *string     { return &s }
func intPtr(n int) *int           { return &n }
func floatPtr(f float64) *float64 { return &f }

func sampleListings() []*models.Listing {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return []*models.Listing{
		{
			ID: "l1", Make: "BMW", Model: "X5", Year: 2021, Price: 150000, Mileage: 60000,
			BodyType: "SUV", Transmission: "Automatic", FuelType: "Petrol",
			Location: "Dubai", RegionalSpecs: "GCC Specs",
			Description: "Full service history", CreatedAt: base,
		},
		{
			ID: "l2", Make: "Tesla", Model: "Model 3", Year: 2023, Price: 180000, Mileage: 20000,
			BodyType: "Sedan", Transmission: "Automatic", FuelType: "Electric",
			Location: "Abu Dhabi", CreatedAt: base.Add(time.Hour),
		},
		{
			ID: "l3", Make: "Toyota", Model: "Camry", Year: 2019, Price: 65000, Mileage: 110000,
			BodyType: "Sedan", Transmission: "Automatic", FuelType: "Petrol",
			Location: "Sharjah", RegionalSpecs: "GCC Specs",
			Description: "Single owner, well maintained", CreatedAt: base.Add(2 * time.Hour),
		},
		{
			ID: "l4", Make: "Nissan", Model: "Patrol", Year: 2021, Price: 150000, Mileage: 85000,
			BodyType: "SUV", Transmission: "Manual", FuelType: "Petrol",
			Location: "Dubai", CreatedAt: base.Add(3 * time.Hour),
		},
	}
}

func ids(ls []*models.Listing) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	all := sampleListings()

	tests := []struct {
		name string
		spec FilterSpec
		want []string
	}{
		{
			name: "empty spec keeps everything in order",
			spec: FilterSpec{},
			want: []string{"l1", "l2", "l3", "l4"},
		},
		{
			name: "exact make",
			spec: FilterSpec{Make: strPtr("Tesla")},
			want: []string{"l2"},
		},
		{
			name: "make is case sensitive",
			spec: FilterSpec{Make: strPtr("tesla")},
			want: []string{},
		},
		{
			name: "make and model combined",
			spec: FilterSpec{Make: strPtr("BMW"), Model: strPtr("X5")},
			want: []string{"l1"},
		},
		{
			name: "min price excludes cheaper listings",
			spec: FilterSpec{MinPrice: floatPtr(160000)},
			want: []string{"l2"},
		},
		{
			name: "price bounds are inclusive",
			spec: FilterSpec{MinPrice: floatPtr(150000), MaxPrice: floatPtr(150000)},
			want: []string{"l1", "l4"},
		},
		{
			name: "year range",
			spec: FilterSpec{MinYear: intPtr(2020), MaxYear: intPtr(2022)},
			want: []string{"l1", "l4"},
		},
		{
			name: "mileage max",
			spec: FilterSpec{MaxMileage: floatPtr(60000)},
			want: []string{"l1", "l2"},
		},
		{
			name: "body types match any",
			spec: FilterSpec{BodyTypes: []string{"SUV", "Sedan"}},
			want: []string{"l1", "l2", "l3", "l4"},
		},
		{
			name: "single body type",
			spec: FilterSpec{BodyTypes: []string{"SUV"}},
			want: []string{"l1", "l4"},
		},
		{
			name: "transmission and fuel",
			spec: FilterSpec{Transmission: strPtr("Automatic"), FuelType: strPtr("Petrol")},
			want: []string{"l1", "l3"},
		},
		{
			name: "location",
			spec: FilterSpec{Location: strPtr("Dubai")},
			want: []string{"l1", "l4"},
		},
		{
			name: "regional specs",
			spec: FilterSpec{RegionalSpecs: strPtr("GCC Specs")},
			want: []string{"l1", "l3"},
		},
		{
			name: "search is case insensitive on model",
			spec: FilterSpec{Search: strPtr("camry")},
			want: []string{"l3"},
		},
		{
			name: "search matches description",
			spec: FilterSpec{Search: strPtr("SERVICE history")},
			want: []string{"l1"},
		},
		{
			name: "search with no hit",
			spec: FilterSpec{Search: strPtr("lamborghini")},
			want: []string{},
		},
		{
			name: "inverted range yields empty, not an error",
			spec: FilterSpec{MinPrice: floatPtr(200000), MaxPrice: floatPtr(100000)},
			want: []string{},
		},
		{
			name: "all constraints AND together",
			spec: FilterSpec{
				Make:     strPtr("BMW"),
				Location: strPtr("Abu Dhabi"),
			},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(all, tt.spec)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	all := sampleListings()
	spec := FilterSpec{MinPrice: floatPtr(100000), BodyTypes: []string{"SUV"}}

	once := Filter(all, spec)
	twice := Filter(once, spec)
	assert.Equal(t, ids(once), ids(twice))
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	all := sampleListings()
	before := ids(all)

	Filter(all, FilterSpec{Make: strPtr("Toyota")})
	assert.Equal(t, before, ids(all))
}

func TestFilterEmptyStringConstraintIsNotUnset(t *testing.T) {
	all := sampleListings()

	// An explicit empty-string constraint must match nothing here, since
	// every sample listing has a non-empty make
	got := Filter(all, FilterSpec{Make: strPtr("")})
	assert.Empty(t, got)
}
