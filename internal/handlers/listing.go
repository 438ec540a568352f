package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/listings"
	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/middleware"
	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/models"
	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/storage"
)

var validate = validator.New()

// ListingHandler handles listing-related requests
type ListingHandler struct {
	store storage.Store
}

// NewListingHandler creates a new listing handler
func NewListingHandler(store storage.Store) *ListingHandler {
	return &ListingHandler{store: store}
}

// GetListings returns listings matching the query filters, sorted
func (h *ListingHandler) GetListings(c *fiber.Ctx) error {
	all, err := h.store.GetAllListings()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve listings",
		})
	}

	spec := filterSpecFromQuery(c)
	results := listings.Sort(listings.Filter(all, spec), c.Query("sort", listings.SortNewest))

	return c.JSON(fiber.Map{
		"listings": results,
		"count":    len(results),
	})
}

// filterSpecFromQuery maps query parameters onto a FilterSpec. Absent
// parameters stay nil so "no constraint" is distinct from "match empty".
func filterSpecFromQuery(c *fiber.Ctx) listings.FilterSpec {
	var spec listings.FilterSpec

	spec.Make = strQuery(c, "make")
	spec.Model = strQuery(c, "model")
	spec.Transmission = strQuery(c, "transmission")
	spec.FuelType = strQuery(c, "fuel_type")
	spec.Location = strQuery(c, "location")
	spec.RegionalSpecs = strQuery(c, "regional_specs")
	spec.Search = strQuery(c, "search")

	spec.MinPrice = floatQuery(c, "min_price")
	spec.MaxPrice = floatQuery(c, "max_price")
	spec.MinMileage = floatQuery(c, "min_mileage")
	spec.MaxMileage = floatQuery(c, "max_mileage")
	spec.MinYear = intQuery(c, "min_year")
	spec.MaxYear = intQuery(c, "max_year")

	if raw := c.Query("body_types"); raw != "" {
		for _, bt := range strings.Split(raw, ",") {
			if bt = strings.TrimSpace(bt); bt != "" {
				spec.BodyTypes = append(spec.BodyTypes, bt)
			}
		}
	}
	return spec
}

func strQuery(c *fiber.Ctx, key string) *string {
	if v := c.Query(key); v != "" {
		return &v
	}
	return nil
}

func floatQuery(c *fiber.Ctx, key string) *float64 {
	if v := c.Query(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return &f
		}
	}
	return nil
}

func intQuery(c *fiber.Ctx, key string) *int {
	if v := c.Query(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return &n
		}
	}
	return nil
}

// GetListingOptions returns the distinct values available for filter dropdowns
func (h *ListingHandler) GetListingOptions(c *fiber.Ctx) error {
	all, err := h.store.GetAllListings()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve listings",
		})
	}

	return c.JSON(fiber.Map{
		"makes":          listings.UniqueValues(all, func(l *models.Listing) string { return l.Make }),
		"models":         listings.ModelsForMake(all, c.Query("make")),
		"body_types":     listings.UniqueValues(all, func(l *models.Listing) string { return l.BodyType }),
		"fuel_types":     listings.UniqueValues(all, func(l *models.Listing) string { return l.FuelType }),
		"transmissions":  listings.UniqueValues(all, func(l *models.Listing) string { return l.Transmission }),
		"regional_specs": listings.UniqueValues(all, func(l *models.Listing) string { return l.RegionalSpecs }),
		"locations":      models.Emirates,
	})
}

// GetListing retrieves a single listing by ID
func (h *ListingHandler) GetListing(c *fiber.Ctx) error {
	listing, err := h.store.GetListing(c.Params("id"))
	if errors.Is(err, storage.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Listing not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve listing",
		})
	}
	return c.JSON(listing)
}

// GetMyListings returns the authenticated user's own listings
func (h *ListingHandler) GetMyListings(c *fiber.Ctx) error {
	results, err := h.store.GetListingsByUser(middleware.UserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve listings",
		})
	}
	return c.JSON(fiber.Map{
		"listings": results,
		"count":    len(results),
	})
}

// CreateListing handles creating a new listing for the authenticated user
func (h *ListingHandler) CreateListing(c *fiber.Ctx) error {
	var input models.ListingInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if !models.IsValidEmirate(input.Location) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Location must be one of the seven emirates",
		})
	}

	listing := listingFromInput(&input)
	listing.UserID = middleware.UserID(c)

	created, err := h.store.CreateListing(listing)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create listing",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateListing handles editing an existing listing, owner only
func (h *ListingHandler) UpdateListing(c *fiber.Ctx) error {
	existing, ok := h.ownedListing(c)
	if !ok {
		return nil
	}

	var input models.ListingInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if !models.IsValidEmirate(input.Location) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Location must be one of the seven emirates",
		})
	}

	updated := listingFromInput(&input)
	updated.ID = existing.ID
	updated.UserID = existing.UserID
	updated.Status = existing.Status
	updated.CreatedAt = existing.CreatedAt

	if err := h.store.UpdateListing(updated); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update listing",
		})
	}
	return c.JSON(updated)
}

// MarkSold flips a listing to sold, owner only
func (h *ListingHandler) MarkSold(c *fiber.Ctx) error {
	listing, ok := h.ownedListing(c)
	if !ok {
		return nil
	}

	if err := h.store.UpdateListingStatus(listing.ID, models.StatusSold); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update listing",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Listing marked as sold",
		"id":      listing.ID,
	})
}

// DeleteListing removes a listing, owner only
func (h *ListingHandler) DeleteListing(c *fiber.Ctx) error {
	listing, ok := h.ownedListing(c)
	if !ok {
		return nil
	}

	if err := h.store.DeleteListing(listing.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete listing",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Listing deleted",
		"id":      listing.ID,
	})
}

// ownedListing loads the listing from the path and checks ownership. On
// failure it writes the error response and returns ok=false.
func (h *ListingHandler) ownedListing(c *fiber.Ctx) (*models.Listing, bool) {
	listing, err := h.store.GetListing(c.Params("id"))
	if errors.Is(err, storage.ErrNotFound) {
		_ = c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Listing not found",
		})
		return nil, false
	}
	if err != nil {
		_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve listing",
		})
		return nil, false
	}
	if listing.UserID != middleware.UserID(c) {
		_ = c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You do not own this listing",
		})
		return nil, false
	}
	return listing, true
}

func listingFromInput(input *models.ListingInput) *models.Listing {
	return &models.Listing{
		Make:          input.Make,
		Model:         input.Model,
		Year:          input.Year,
		Price:         input.Price,
		Mileage:       input.Mileage,
		BodyType:      input.BodyType,
		Transmission:  input.Transmission,
		FuelType:      input.FuelType,
		Location:      input.Location,
		RegionalSpecs: input.RegionalSpecs,
		Description:   input.Description,
		Images:        input.Images,
	}
}
