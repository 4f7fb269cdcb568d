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

func TestMaintenanceAmount(t *testing.T) {
	db := setupTestDB(t)
	membership := newMembership(t, db)
	apartment := mustRegisterApartment(t, membership, "Oak Towers")
	svc := services.NewPaymentService(db)

	amount, err := svc.GetAmount(apartment.ApartmentCode)
	require.NoError(t, err)
	assert.Equal(t, float64(0), amount)

	updated, err := svc.SetAmount(apartment.ApartmentCode, 2500)
	require.NoError(t, err)
	assert.Equal(t, float64(2500), updated.MaintenanceAmount)

	amount, err = svc.GetAmount(apartment.ApartmentCode)
	require.NoError(t, err)
	assert.Equal(t, float64(2500), amount)

	_, err = svc.SetAmount("ZZZZ", 100)
	assert.ErrorIs(t, err, services.ErrApartmentNotFound)
}

func TestBankDetails(t *testing.T) {
	db := setupTestDB(t)
	membership := newMembership(t, db)
	apartment := mustRegisterApartment(t, membership, "Oak Towers")
	svc := services.NewPaymentService(db)

	_, err := svc.SetBankDetails(&dto.BankDetailsRequest{
		ApartmentCode: apartment.ApartmentCode,
		AccountHolder: "Oak Towers RWA",
		AccountNumber: "1234567890",
		IFSCCode:      "HDFC0001234",
		BankName:      "HDFC Bank",
		Branch:        "MG Road",
		UPIID:         "oaktowers@upi",
	})
	require.NoError(t, err)

	details, err := svc.GetBankDetails(apartment.ApartmentCode)
	require.NoError(t, err)
	assert.Equal(t, "Oak Towers RWA", details.AccountHolder)
	assert.Equal(t, "oaktowers@upi", details.UPIID)

	_, err = svc.GetBankDetails("ZZZZ")
	assert.ErrorIs(t, err, services.ErrApartmentNotFound)
}

func TestSubmitPayment_RequiresAmount(t *testing.T) {
	db := setupTestDB(t)
	membership := newMembership(t, db)
	apartment := mustRegisterApartment(t, membership, "Oak Towers")
	svc := services.NewPaymentService(db)

	_, err := svc.SubmitPayment(&dto.SubmitPaymentRequest{
		ApartmentCode: apartment.ApartmentCode,
		FlatNumber:    "101",
		TransactionID: "TXN001",
		Months:        []string{"January"},
	})
	assert.ErrorIs(t, err, services.ErrAmountNotSet)
}

func TestSubmitPayment_SnapshotsFee(t *testing.T) {
	db := setupTestDB(t)
	membership := newMembership(t, db)
	apartment := mustRegisterApartment(t, membership, "Oak Towers")
	svc := services.NewPaymentService(db)

	_, err := svc.SetAmount(apartment.ApartmentCode, 2500)
	require.NoError(t, err)

	payment, err := svc.SubmitPayment(&dto.SubmitPaymentRequest{
		ApartmentCode: apartment.ApartmentCode,
		FlatNumber:    "101",
		TransactionID: "TXN001",
		Months:        []string{"January", "February"},
	})
	require.NoError(t, err)
	assert.Equal(t, float64(2500), payment.Amount)
	assert.Equal(t, models.PaymentPending, payment.Status)
	assert.Equal(t, []string{"January", "February"}, []string(payment.Months))

	// A later fee change never touches recorded payments.
	_, err = svc.SetAmount(apartment.ApartmentCode, 3000)
	require.NoError(t, err)

	var stored models.MaintenancePayment
	require.NoError(t, db.First(&stored, "id = ?", payment.ID).Error)
	assert.Equal(t, float64(2500), stored.Amount)
}

func TestSubmitPayment_Validation(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewPaymentService(db)

	_, err := svc.SubmitPayment(&dto.SubmitPaymentRequest{
		ApartmentCode: "AAAA",
		FlatNumber:    "101",
		TransactionID: "TXN001",
		Months:        []string{},
	})
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestPaymentListings(t *testing.T) {
	db := setupTestDB(t)
	membership := newMembership(t, db)
	apartment := mustRegisterApartment(t, membership, "Oak Towers")
	svc := services.NewPaymentService(db)

	_, err := svc.SetAmount(apartment.ApartmentCode, 2000)
	require.NoError(t, err)

	for _, p := range []struct{ flat, txn string }{
		{"101", "TXN001"},
		{"101", "TXN002"},
		{"102", "TXN003"},
	} {
		_, err := svc.SubmitPayment(&dto.SubmitPaymentRequest{
			ApartmentCode: apartment.ApartmentCode,
			FlatNumber:    p.flat,
			TransactionID: p.txn,
			Months:        []string{"March"},
		})
		require.NoError(t, err)
	}

	mine, err := svc.MyPayments(apartment.ApartmentCode, "101")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "TXN002", mine[0].TransactionID)

	all, err := svc.AllPayments(apartment.ApartmentCode)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUpdatePaymentStatus(t *testing.T) {
	db := setupTestDB(t)
	membership := newMembership(t, db)
	apartment := mustRegisterApartment(t, membership, "Oak Towers")
	svc := services.NewPaymentService(db)

	_, err := svc.SetAmount(apartment.ApartmentCode, 2000)
	require.NoError(t, err)

	payment, err := svc.SubmitPayment(&dto.SubmitPaymentRequest{
		ApartmentCode: apartment.ApartmentCode,
		FlatNumber:    "101",
		TransactionID: "TXN001",
		Months:        []string{"April"},
	})
	require.NoError(t, err)

	approved, err := svc.UpdateStatus(payment.ID, &dto.UpdatePaymentStatusRequest{Status: models.PaymentApproved})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentApproved, approved.Status)

	_, err = svc.UpdateStatus(payment.ID, &dto.UpdatePaymentStatusRequest{Status: "refunded"})
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = svc.UpdateStatus(uuid.New(), &dto.UpdatePaymentStatusRequest{Status: models.PaymentRejected})
	assert.ErrorIs(t, err, services.ErrPaymentNotFound)
}
