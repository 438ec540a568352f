package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Listing statuses
const (
	StatusAvailable = "available"
	StatusPending   = "pending"
	StatusSold      = "sold"
)

// Emirates is the fixed set of regions a listing can be located in.
var Emirates = []string{
	"Abu Dhabi",
	"Ajman",
	"Dubai",
	"Fujairah",
	"Ras Al Khaimah",
	"Sharjah",
	"Umm Al Quwain",
}

// Listing represents a single car-for-sale record
type Listing struct {
	ID     string `json:"id" gorm:"primaryKey"`
	UserID string `json:"user_id" gorm:"index;not null"`

	// Vehicle details
	Make          string  `json:"make" gorm:"index;not null"`
	Model         string  `json:"model" gorm:"index;not null"`
	Year          int     `json:"year" gorm:"not null"`
	Price         float64 `json:"price" gorm:"not null"`
	Mileage       float64 `json:"mileage" gorm:"not null"` // in km
	BodyType      string  `json:"body_type"`               // e.g., "SUV", "Sedan"
	Transmission  string  `json:"transmission"`            // "Automatic", "Manual"
	FuelType      string  `json:"fuel_type"`               // "Petrol", "Diesel", "Electric", "Hybrid"
	Location      string  `json:"location"`                // one of Emirates
	RegionalSpecs string  `json:"regional_specs"`          // e.g., "GCC Specs", "American Specs"
	Description   string  `json:"description"`

	// Media - a listing with zero images is valid
	Images []string `json:"images" gorm:"serializer:json"`

	// Status: "available", "pending", "sold"
	Status string `json:"status" gorm:"index;default:available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook to auto-generate the listing ID and default the status
func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.Status == "" {
		l.Status = StatusAvailable
	}
	return nil
}

// IsValidEmirate reports whether location is one of the known regions.
func IsValidEmirate(location string) bool {
	for _, e := range Emirates {
		if e == location {
			return true
		}
	}
	return false
}

// ListingInput is the payload for creating or updating a listing
type ListingInput struct {
	Make          string   `json:"make" validate:"required"`
	Model         string   `json:"model" validate:"required"`
	Year          int      `json:"year" validate:"required,gte=1950,lte=2100"`
	Price         float64  `json:"price" validate:"gte=0"`
	Mileage       float64  `json:"mileage" validate:"gte=0"`
	BodyType      string   `json:"body_type"`
	Transmission  string   `json:"transmission"`
	FuelType      string   `json:"fuel_type"`
	Location      string   `json:"location" validate:"required"`
	RegionalSpecs string   `json:"regional_specs"`
	Description   string   `json:"description"`
	Images        []string `json:"images"`
}
