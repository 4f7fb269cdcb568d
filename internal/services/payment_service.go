package services

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/nivasa/backend/internal/dto"
	"github.com/nivasa/backend/internal/models"
	"github.com/nivasa/backend/internal/tenant"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrAmountNotSet    = errors.New("maintenance amount not set by admin")
)

type PaymentService struct {
	db       *gorm.DB
	validate *validator.Validate
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{db: db, validate: validator.New()}
}

// SetAmount overwrites the apartment's singleton maintenance fee.
func (s *PaymentService) SetAmount(apartmentCode string, amount float64) (*models.Apartment, error) {
	var apartment models.Apartment
	if err := s.db.Where("apartment_code = ?", apartmentCode).First(&apartment).Error; err != nil {
		return nil, ErrApartmentNotFound
	}

	if err := s.db.Model(&apartment).Update("maintenance_amount", amount).Error; err != nil {
		return nil, fmt.Errorf("failed to update maintenance amount: %w", err)
	}
	apartment.MaintenanceAmount = amount
	return &apartment, nil
}

func (s *PaymentService) GetAmount(apartmentCode string) (float64, error) {
	var apartment models.Apartment
	if err := s.db.Where("apartment_code = ?", apartmentCode).First(&apartment).Error; err != nil {
		return 0, ErrApartmentNotFound
	}
	return apartment.MaintenanceAmount, nil
}

// SetBankDetails replaces the receiving-account record. All six fields are
// optional and stored as given; format checks are left to the client.
func (s *PaymentService) SetBankDetails(req *dto.BankDetailsRequest) (*models.BankDetails, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, ErrValidation
	}

	var apartment models.Apartment
	if err := s.db.Where("apartment_code = ?", req.ApartmentCode).First(&apartment).Error; err != nil {
		return nil, ErrApartmentNotFound
	}

	details := models.BankDetails{
		AccountHolder: req.AccountHolder,
		AccountNumber: req.AccountNumber,
		IFSCCode:      req.IFSCCode,
		BankName:      req.BankName,
		Branch:        req.Branch,
		UPIID:         req.UPIID,
	}

	if err := s.db.Model(&apartment).Updates(map[string]interface{}{
		"bank_account_holder": details.AccountHolder,
		"bank_account_number": details.AccountNumber,
		"bank_ifsc_code":      details.IFSCCode,
		"bank_bank_name":      details.BankName,
		"bank_branch":         details.Branch,
		"bank_upi_id":         details.UPIID,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to update bank details: %w", err)
	}
	return &details, nil
}

func (s *PaymentService) GetBankDetails(apartmentCode string) (*models.BankDetails, error) {
	var apartment models.Apartment
	if err := s.db.Where("apartment_code = ?", apartmentCode).First(&apartment).Error; err != nil {
		return nil, ErrApartmentNotFound
	}
	return &apartment.BankDetails, nil
}

// SubmitPayment records a resident's transfer claim. The amount is the
// apartment's fee at submission time; later fee changes never touch
// existing payment rows.
func (s *PaymentService) SubmitPayment(req *dto.SubmitPaymentRequest) (*models.MaintenancePayment, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, ErrValidation
	}

	var apartment models.Apartment
	if err := s.db.Where("apartment_code = ?", req.ApartmentCode).First(&apartment).Error; err != nil {
		return nil, ErrApartmentNotFound
	}

	if apartment.MaintenanceAmount == 0 {
		return nil, ErrAmountNotSet
	}

	payment := models.MaintenancePayment{
		ID:            uuid.New(),
		ApartmentCode: req.ApartmentCode,
		FlatNumber:    req.FlatNumber,
		Amount:        apartment.MaintenanceAmount,
		TransactionID: req.TransactionID,
		Status:        models.PaymentPending,
		Months:        datatypes.NewJSONSlice(req.Months),
	}

	if err := s.db.Create(&payment).Error; err != nil {
		return nil, fmt.Errorf("failed to submit payment: %w", err)
	}
	return &payment, nil
}

// MyPayments lists a flat's own submissions, newest-first.
func (s *PaymentService) MyPayments(apartmentCode, flatNumber string) ([]models.MaintenancePayment, error) {
	var payments []models.MaintenancePayment
	err := s.db.Scopes(tenant.ForApartment(apartmentCode)).
		Where("flat_number = ?", flatNumber).
		Order("created_at DESC").Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

// AllPayments lists every submission for the apartment, newest-first.
func (s *PaymentService) AllPayments(apartmentCode string) ([]models.MaintenancePayment, error) {
	var payments []models.MaintenancePayment
	err := s.db.Scopes(tenant.ForApartment(apartmentCode)).
		Order("created_at DESC").Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

// UpdateStatus moves a payment between pending/approved/rejected.
func (s *PaymentService) UpdateStatus(id uuid.UUID, req *dto.UpdatePaymentStatusRequest) (*models.MaintenancePayment, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, ErrValidation
	}

	result := s.db.Model(&models.MaintenancePayment{}).
		Where("id = ?", id).Update("status", req.Status)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update payment status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrPaymentNotFound
	}

	var payment models.MaintenancePayment
	if err := s.db.First(&payment, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload payment: %w", err)
	}
	return &payment, nil
}
