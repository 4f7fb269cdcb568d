package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/nivasa/backend/internal/dto"
	"github.com/nivasa/backend/internal/models"
	"github.com/nivasa/backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTechnicianReq(code string) *dto.CreateTechnicianRequest {
	return &dto.CreateTechnicianRequest{
		Name:          "Ravi Kumar",
		Email:         "ravi@example.com",
		Phone:         "9876543210",
		Specialty:     "Plumbing",
		ApartmentCode: code,
	}
}

func TestCreateTechnician(t *testing.T) {
	db := setupTestDB(t)
	membership := newMembership(t, db)
	apartment := mustRegisterApartment(t, membership, "Oak Towers")
	svc := services.NewTechnicianService(db)

	technician, err := svc.Create(newTechnicianReq(apartment.ApartmentCode))
	require.NoError(t, err)
	assert.Equal(t, models.TechnicianAvailable, technician.Status)
	assert.Equal(t, apartment.ApartmentCode, technician.ApartmentCode)
}

func TestCreateTechnician_Validation(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewTechnicianService(db)

	cases := []*dto.CreateTechnicianRequest{
		{Name: "Ravi", Email: "not-an-email", Phone: "9876543210", Specialty: "Plumbing", ApartmentCode: "AAAA"},
		{Name: "Ravi", Email: "ravi@example.com", Phone: "123", Specialty: "Plumbing", ApartmentCode: "AAAA"},
		{Name: "Ravi", Email: "ravi@example.com", Phone: "9876543210", Specialty: "Gardening", ApartmentCode: "AAAA"},
	}
	for _, req := range cases {
		_, err := svc.Create(req)
		assert.ErrorIs(t, err, services.ErrValidation)
	}
}

func TestCreateTechnician_DuplicateEmailPerApartment(t *testing.T) {
	db := setupTestDB(t)
	membership := newMembership(t, db)
	oak := mustRegisterApartment(t, membership, "Oak Towers")
	pine := mustRegisterApartment(t, membership, "Pine Court")
	svc := services.NewTechnicianService(db)

	_, err := svc.Create(newTechnicianReq(oak.ApartmentCode))
	require.NoError(t, err)

	_, err = svc.Create(newTechnicianReq(oak.ApartmentCode))
	assert.ErrorIs(t, err, services.ErrTechnicianEmailUsed)

	// Same email in a different apartment is fine.
	_, err = svc.Create(newTechnicianReq(pine.ApartmentCode))
	require.NoError(t, err)
}

func TestTechnicianOperationsAreApartmentScoped(t *testing.T) {
	db := setupTestDB(t)
	membership := newMembership(t, db)
	oak := mustRegisterApartment(t, membership, "Oak Towers")
	pine := mustRegisterApartment(t, membership, "Pine Court")
	svc := services.NewTechnicianService(db)

	technician, err := svc.Create(newTechnicianReq(oak.ApartmentCode))
	require.NoError(t, err)

	// A leaked id does not resolve in another tenant.
	_, err = svc.GetByID(technician.ID, pine.ApartmentCode)
	assert.ErrorIs(t, err, services.ErrTechnicianNotFound)

	_, err = svc.UpdateStatus(technician.ID, &dto.UpdateTechnicianStatusRequest{
		Status:        models.TechnicianBusy,
		ApartmentCode: pine.ApartmentCode,
	})
	assert.ErrorIs(t, err, services.ErrTechnicianNotFound)

	_, err = svc.Delete(technician.ID, pine.ApartmentCode)
	assert.ErrorIs(t, err, services.ErrTechnicianNotFound)

	got, err := svc.GetByID(technician.ID, oak.ApartmentCode)
	require.NoError(t, err)
	assert.Equal(t, models.TechnicianAvailable, got.Status)
}

func TestUpdateTechnician(t *testing.T) {
	db := setupTestDB(t)
	membership := newMembership(t, db)
	apartment := mustRegisterApartment(t, membership, "Oak Towers")
	svc := services.NewTechnicianService(db)

	technician, err := svc.Create(newTechnicianReq(apartment.ApartmentCode))
	require.NoError(t, err)

	other := newTechnicianReq(apartment.ApartmentCode)
	other.Email = "suresh@example.com"
	otherTech, err := svc.Create(other)
	require.NoError(t, err)

	updated, err := svc.Update(technician.ID, &dto.UpdateTechnicianRequest{
		Name:          "Ravi K",
		Email:         "ravi@example.com",
		Phone:         "9876543210",
		Specialty:     "Electrical",
		Status:        models.TechnicianBusy,
		ApartmentCode: apartment.ApartmentCode,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ravi K", updated.Name)
	assert.Equal(t, "Electrical", updated.Specialty)
	assert.Equal(t, models.TechnicianBusy, updated.Status)

	// Taking another technician's email is rejected.
	_, err = svc.Update(technician.ID, &dto.UpdateTechnicianRequest{
		Name:          "Ravi K",
		Email:         otherTech.Email,
		Phone:         "9876543210",
		Specialty:     "Electrical",
		Status:        models.TechnicianBusy,
		ApartmentCode: apartment.ApartmentCode,
	})
	assert.ErrorIs(t, err, services.ErrTechnicianEmailUsed)

	_, err = svc.Update(uuid.New(), &dto.UpdateTechnicianRequest{
		Name:          "Ghost",
		Email:         "ghost@example.com",
		Phone:         "9876543210",
		Specialty:     "Plumbing",
		Status:        models.TechnicianAvailable,
		ApartmentCode: apartment.ApartmentCode,
	})
	assert.ErrorIs(t, err, services.ErrTechnicianNotFound)
}

func TestTechniciansBySpecialty(t *testing.T) {
	db := setupTestDB(t)
	membership := newMembership(t, db)
	apartment := mustRegisterApartment(t, membership, "Oak Towers")
	svc := services.NewTechnicianService(db)

	plumber := newTechnicianReq(apartment.ApartmentCode)
	_, err := svc.Create(plumber)
	require.NoError(t, err)

	electrician := newTechnicianReq(apartment.ApartmentCode)
	electrician.Email = "suresh@example.com"
	electrician.Specialty = "Electrical"
	_, err = svc.Create(electrician)
	require.NoError(t, err)

	// Partial, case-insensitive match.
	matches, err := svc.BySpecialty("plumb", apartment.ApartmentCode)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Plumbing", matches[0].Specialty)

	matches, err = svc.BySpecialty("ELECTRIC", apartment.ApartmentCode)
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	matches, err = svc.BySpecialty("gardening", apartment.ApartmentCode)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestAvailableTechnicians(t *testing.T) {
	db := setupTestDB(t)
	membership := newMembership(t, db)
	apartment := mustRegisterApartment(t, membership, "Oak Towers")
	svc := services.NewTechnicianService(db)

	available := newTechnicianReq(apartment.ApartmentCode)
	_, err := svc.Create(available)
	require.NoError(t, err)

	busy := newTechnicianReq(apartment.ApartmentCode)
	busy.Email = "suresh@example.com"
	busy.Status = models.TechnicianBusy
	_, err = svc.Create(busy)
	require.NoError(t, err)

	technicians, err := svc.Available(apartment.ApartmentCode)
	require.NoError(t, err)
	require.Len(t, technicians, 1)
	assert.Equal(t, models.TechnicianAvailable, technicians[0].Status)
}

func TestDeleteTechnician(t *testing.T) {
	db := setupTestDB(t)
	membership := newMembership(t, db)
	apartment := mustRegisterApartment(t, membership, "Oak Towers")
	svc := services.NewTechnicianService(db)

	technician, err := svc.Create(newTechnicianReq(apartment.ApartmentCode))
	require.NoError(t, err)

	deleted, err := svc.Delete(technician.ID, apartment.ApartmentCode)
	require.NoError(t, err)
	assert.Equal(t, technician.ID, deleted.ID)

	_, err = svc.GetByID(technician.ID, apartment.ApartmentCode)
	assert.ErrorIs(t, err, services.ErrTechnicianNotFound)
}
