package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/models"
	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/routes"
	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/services"
	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/storage"
)

func setupApp(t *testing.T, echoCodes bool) (*fiber.App, *storage.MemoryStore) {
	t.Helper()

	store := storage.NewMemoryStore()
	tokenService := services.NewTokenService("test-secret")
	authService := services.NewAuthService(store, tokenService)
	otpService := services.NewOTPService(store, services.LogNotifier{}, echoCodes)

	app := fiber.New()
	routes.SetupRoutes(app, store, otpService, authService, tokenService)
	return app, store
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload any) (*http.Response, map[string]any) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func signup(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func seedListings(t *testing.T, store *storage.MemoryStore) {
	t.Helper()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	seed := []*models.Listing{
		{ID: "l1", UserID: "u1", Make: "BMW", Model: "X5", Year: 2021, Price: 150000,
			Mileage: 60000, BodyType: "SUV", Location: "Dubai", CreatedAt: base},
		{ID: "l2", UserID: "u1", Make: "Tesla", Model: "Model 3", Year: 2023, Price: 180000,
			Mileage: 20000, BodyType: "Sedan", Location: "Abu Dhabi", CreatedAt: base.Add(time.Hour)},
		{ID: "l3", UserID: "u2", Make: "Toyota", Model: "Camry", Year: 2019, Price: 65000,
			Mileage: 110000, BodyType: "Sedan", Location: "Sharjah", CreatedAt: base.Add(2 * time.Hour)},
	}
	for _, l := range seed {
		created := *l
		_, err := store.CreateListing(&created)
		require.NoError(t, err)
		// Pin the seeded timestamps so recency ordering is deterministic
		created.CreatedAt = l.CreatedAt
	}
}

func listingIDs(body map[string]any) []string {
	var out []string
	items, _ := body["listings"].([]any)
	for _, item := range items {
		m, _ := item.(map[string]any)
		id, _ := m["id"].(string)
		out = append(out, id)
	}
	return out
}

func TestGetListingsFiltersAndSorts(t *testing.T) {
	app, store := setupApp(t, false)
	seedListings(t, store)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"no filters, default sort", "", []string{"l3", "l2", "l1"}},
		{"min price", "?min_price=160000", []string{"l2"}},
		{"inclusive bound", "?min_price=150000&sort=price-low-high", []string{"l1", "l2"}},
		{"body types", "?body_types=Sedan&sort=price-high-low", []string{"l2", "l3"}},
		{"search", "?search=camry", []string{"l3"}},
		{"location", "?location=Dubai", []string{"l1"}},
		{"year range", "?min_year=2020&max_year=2022", []string{"l1"}},
		{"unknown sort falls back to newest", "?sort=bogus", []string{"l3", "l2", "l1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doJSON(t, app, http.MethodGet, "/api/listings/"+tt.query, "", nil)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.want, listingIDs(body))
			assert.EqualValues(t, len(tt.want), body["count"])
		})
	}
}

func TestGetListingOptions(t *testing.T) {
	app, store := setupApp(t, false)
	seedListings(t, store)

	resp, body := doJSON(t, app, http.MethodGet, "/api/listings/options?make=Toyota", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, []any{"BMW", "Tesla", "Toyota"}, body["makes"])
	assert.Equal(t, []any{"Camry"}, body["models"])
	assert.Equal(t, []any{"SUV", "Sedan"}, body["body_types"])
	assert.Len(t, body["locations"], len(models.Emirates))
}

func TestListingLifecycle(t *testing.T) {
	app, _ := setupApp(t, false)
	token := signup(t, app, "owner@example.com")

	input := map[string]any{
		"make": "Honda", "model": "Civic", "year": 2022,
		"price": 78000, "mileage": 30000, "location": "Dubai",
		"body_type": "Sedan", "images": []string{"https://img.example/1.jpg"},
	}

	resp, created := doJSON(t, app, http.MethodPost, "/api/listings/", token, input)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "available", created["status"])

	// Edit
	input["price"] = 74000
	resp, updated := doJSON(t, app, http.MethodPut, "/api/listings/"+id, token, input)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 74000, updated["price"])

	// Mark sold
	resp, _ = doJSON(t, app, http.MethodPost, "/api/listings/"+id+"/sold", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, fetched := doJSON(t, app, http.MethodGet, "/api/listings/"+id, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "sold", fetched["status"])

	// Delete
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/listings/"+id, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/listings/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListingOwnershipEnforced(t *testing.T) {
	app, _ := setupApp(t, false)
	ownerToken := signup(t, app, "owner@example.com")
	otherToken := signup(t, app, "other@example.com")

	resp, created := doJSON(t, app, http.MethodPost, "/api/listings/", ownerToken, map[string]any{
		"make": "Honda", "model": "Civic", "year": 2022,
		"price": 78000, "mileage": 30000, "location": "Dubai",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id, _ := created["id"].(string)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/listings/"+id, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/listings/%s/sold", id), otherToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestListingValidation(t *testing.T) {
	app, _ := setupApp(t, false)
	token := signup(t, app, "owner@example.com")

	// Missing make/model
	resp, _ := doJSON(t, app, http.MethodPost, "/api/listings/", token, map[string]any{
		"year": 2022, "price": 1000, "mileage": 10, "location": "Dubai",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Unknown region
	resp, _ = doJSON(t, app, http.MethodPost, "/api/listings/", token, map[string]any{
		"make": "Honda", "model": "Civic", "year": 2022,
		"price": 1000, "mileage": 10, "location": "Atlantis",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// No token
	resp, _ = doJSON(t, app, http.MethodPost, "/api/listings/", "", map[string]any{
		"make": "Honda", "model": "Civic", "year": 2022,
		"price": 1000, "mileage": 10, "location": "Dubai",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
