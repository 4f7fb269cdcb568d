package services_test

import (
	"testing"
	"time"

	"github.com/nivasa/backend/internal/config"
	"github.com/nivasa/backend/internal/dto"
	"github.com/nivasa/backend/internal/models"
	"github.com/nivasa/backend/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret",
		JWTAccessExpiry: time.Hour,
	}
}

func newMembership(t *testing.T, db *gorm.DB) *services.MembershipService {
	t.Helper()
	return services.NewMembershipService(db, testConfig())
}

func mustRegisterApartment(t *testing.T, svc *services.MembershipService, name string) *models.Apartment {
	t.Helper()
	apartment, err := svc.RegisterApartment(name)
	require.NoError(t, err)
	return apartment
}

func mustSignup(t *testing.T, svc *services.MembershipService, role, username, phone, flat, code string) *models.User {
	t.Helper()
	user, err := svc.Signup(role, &dto.SignupRequest{
		Username:      username,
		PhoneNumber:   phone,
		FlatNumber:    flat,
		Password:      "secret123",
		ApartmentCode: code,
	})
	require.NoError(t, err)
	return user
}
