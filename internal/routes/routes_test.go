package routes_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nivasa/backend/internal/config"
	"github.com/nivasa/backend/internal/database"
	"github.com/nivasa/backend/internal/handlers"
	"github.com/nivasa/backend/internal/models"
	"github.com/nivasa/backend/internal/routes"
	"github.com/nivasa/backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Apartment{},
		&models.User{},
		&models.Complaint{},
		&models.Technician{},
		&models.MaintenancePayment{},
	))
	database.DB = db

	cfg := &config.Config{
		JWTSecret:       "test-secret",
		JWTAccessExpiry: time.Hour,
	}

	membershipService := services.NewMembershipService(db, cfg)
	ticketService := services.NewTicketService(db)
	technicianService := services.NewTechnicianService(db)
	paymentService := services.NewPaymentService(db)

	app := fiber.New()
	routes.Setup(app, cfg, db,
		handlers.NewMembershipHandler(membershipService),
		handlers.NewComplaintHandler(ticketService),
		handlers.NewMaintenanceHandler(paymentService),
		handlers.NewTechnicianHandler(technicianService),
		handlers.NewHealthHandler(),
	)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), string(raw))
	}
	return resp.StatusCode, decoded
}

func TestApartmentLifecycle(t *testing.T) {
	app := setupApp(t)

	// Register an apartment and capture its join code.
	status, body := doJSON(t, app, http.MethodPost, "/api/auth/register-apartment", "", fiber.Map{
		"name": "Oak Towers",
	})
	require.Equal(t, http.StatusCreated, status)
	code, _ := body["apartmentCode"].(string)
	require.Len(t, code, 4)

	// First admin and a resident join with the code.
	status, _ = doJSON(t, app, http.MethodPost, "/api/auth/signup-admin", "", fiber.Map{
		"username":      "alice",
		"phoneNumber":   "9000000001",
		"flatNumber":    "1A",
		"password":      "secret123",
		"apartmentCode": code,
	})
	require.Equal(t, http.StatusCreated, status)

	status, _ = doJSON(t, app, http.MethodPost, "/api/auth/signup-resident", "", fiber.Map{
		"username":      "bob",
		"phoneNumber":   "9000000002",
		"flatNumber":    "101",
		"password":      "secret123",
		"apartmentCode": code,
	})
	require.Equal(t, http.StatusCreated, status)

	// A second signup for the same flat is rejected with a message naming
	// the flat.
	status, body = doJSON(t, app, http.MethodPost, "/api/auth/signup-resident", "", fiber.Map{
		"username":      "carol",
		"phoneNumber":   "9000000003",
		"flatNumber":    "101",
		"password":      "secret123",
		"apartmentCode": code,
	})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["error"], "Flat number 101")

	// Admin login returns role, session name and a bearer token.
	status, body = doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"phoneNumber": "9000000001",
		"password":    "secret123",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "admin", body["role"])
	assert.Equal(t, "Admin of Oak Towers", body["name"])
	adminToken, _ := body["token"].(string)
	require.NotEmpty(t, adminToken)

	status, body = doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{
		"phoneNumber": "9000000002",
		"password":    "secret123",
	})
	require.Equal(t, http.StatusOK, status)
	residentToken, _ := body["token"].(string)
	require.NotEmpty(t, residentToken)

	// Tenant routes reject requests without a session.
	status, _ = doJSON(t, app, http.MethodPost, "/api/auth/new-complaint", "", fiber.Map{
		"title": "Leaking tap",
	})
	require.Equal(t, http.StatusUnauthorized, status)

	// A resident files a complaint.
	status, body = doJSON(t, app, http.MethodPost, "/api/auth/new-complaint", residentToken, fiber.Map{
		"title":       "Leaking tap",
		"description": "Kitchen tap drips all night",
		"category":    "Plumbing",
		"priority":    "High",
		"phoneNumber": "9000000002",
	})
	require.Equal(t, http.StatusCreated, status)
	complaint, _ := body["complaint"].(map[string]interface{})
	require.NotNil(t, complaint)
	assert.Equal(t, "Open", complaint["status"])

	// Stats count it under open.
	status, body = doJSON(t, app, http.MethodGet, "/api/auth/stats/"+code, residentToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["open"])
	assert.Equal(t, float64(0), body["inProgress"])
	assert.Equal(t, float64(0), body["resolved"])

	// Technician writes are admin-only.
	technician := fiber.Map{
		"name":          "Ravi Kumar",
		"email":         "ravi@example.com",
		"phone":         "9876543210",
		"specialty":     "Plumbing",
		"apartmentCode": code,
	}
	status, _ = doJSON(t, app, http.MethodPost, "/api/add-technicians", residentToken, technician)
	require.Equal(t, http.StatusForbidden, status)

	status, body = doJSON(t, app, http.MethodPost, "/api/add-technicians", adminToken, technician)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "available", body["status"])

	status, body = doJSON(t, app, http.MethodPost, "/api/add-technicians", adminToken, technician)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["error"], "email")

	// Residents can read the directory.
	req := httptest.NewRequest(http.MethodGet, "/api/all-technicians?apartmentCode="+code, nil)
	req.Header.Set("Authorization", "Bearer "+residentToken)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var technicians []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&technicians))
	assert.Len(t, technicians, 1)

	// Health endpoint is public.
	status, body = doJSON(t, app, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}
