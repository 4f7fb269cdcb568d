package services

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/nivasa/backend/internal/dto"
	"github.com/nivasa/backend/internal/models"
	"github.com/nivasa/backend/internal/tenant"
	"gorm.io/gorm"
)

var (
	ErrTechnicianNotFound  = errors.New("technician not found")
	ErrTechnicianEmailUsed = errors.New("technician with this email already exists in this apartment")
)

// TechnicianService is apartment-scoped on every operation: updates and
// deletes filter by both id and apartment code, so a technician id leaked
// across tenants cannot be mutated.
type TechnicianService struct {
	db       *gorm.DB
	validate *validator.Validate
}

func NewTechnicianService(db *gorm.DB) *TechnicianService {
	return &TechnicianService{db: db, validate: validator.New()}
}

func (s *TechnicianService) Create(req *dto.CreateTechnicianRequest) (*models.Technician, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, ErrValidation
	}

	var existing models.Technician
	err := s.db.Scopes(tenant.ForApartment(req.ApartmentCode)).
		Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return nil, ErrTechnicianEmailUsed
	}

	status := req.Status
	if status == "" {
		status = models.TechnicianAvailable
	}

	technician := models.Technician{
		ID:            uuid.New(),
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Specialty:     req.Specialty,
		Status:        status,
		ApartmentCode: req.ApartmentCode,
	}

	if err := s.db.Create(&technician).Error; err != nil {
		return nil, fmt.Errorf("failed to create technician: %w", err)
	}
	return &technician, nil
}

func (s *TechnicianService) List(apartmentCode string) ([]models.Technician, error) {
	var technicians []models.Technician
	err := s.db.Scopes(tenant.ForApartment(apartmentCode)).
		Order("created_at DESC").Find(&technicians).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list technicians: %w", err)
	}
	return technicians, nil
}

func (s *TechnicianService) GetByID(id uuid.UUID, apartmentCode string) (*models.Technician, error) {
	var technician models.Technician
	err := s.db.Scopes(tenant.ForApartment(apartmentCode)).
		First(&technician, "id = ?", id).Error
	if err != nil {
		return nil, ErrTechnicianNotFound
	}
	return &technician, nil
}

func (s *TechnicianService) Update(id uuid.UUID, req *dto.UpdateTechnicianRequest) (*models.Technician, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, ErrValidation
	}

	var existing models.Technician
	err := s.db.Scopes(tenant.ForApartment(req.ApartmentCode)).
		Where("email = ? AND id <> ?", req.Email, id).First(&existing).Error
	if err == nil {
		return nil, ErrTechnicianEmailUsed
	}

	updates := map[string]interface{}{
		"name":      req.Name,
		"email":     req.Email,
		"phone":     req.Phone,
		"specialty": req.Specialty,
		"status":    req.Status,
	}

	result := s.db.Model(&models.Technician{}).
		Scopes(tenant.ForApartment(req.ApartmentCode)).
		Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update technician: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrTechnicianNotFound
	}

	return s.GetByID(id, req.ApartmentCode)
}

func (s *TechnicianService) UpdateStatus(id uuid.UUID, req *dto.UpdateTechnicianStatusRequest) (*models.Technician, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, ErrValidation
	}

	result := s.db.Model(&models.Technician{}).
		Scopes(tenant.ForApartment(req.ApartmentCode)).
		Where("id = ?", id).Update("status", req.Status)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update technician status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrTechnicianNotFound
	}

	return s.GetByID(id, req.ApartmentCode)
}

func (s *TechnicianService) Delete(id uuid.UUID, apartmentCode string) (*models.Technician, error) {
	technician, err := s.GetByID(id, apartmentCode)
	if err != nil {
		return nil, err
	}

	result := s.db.Scopes(tenant.ForApartment(apartmentCode)).
		Where("id = ?", id).Delete(&models.Technician{})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to delete technician: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrTechnicianNotFound
	}
	return technician, nil
}

// BySpecialty matches case-insensitively on a partial specialty name.
func (s *TechnicianService) BySpecialty(specialty, apartmentCode string) ([]models.Technician, error) {
	var technicians []models.Technician
	err := s.db.Scopes(tenant.ForApartment(apartmentCode)).
		Where("LOWER(specialty) LIKE LOWER(?)", "%"+specialty+"%").
		Order("created_at DESC").Find(&technicians).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list technicians by specialty: %w", err)
	}
	return technicians, nil
}

func (s *TechnicianService) Available(apartmentCode string) ([]models.Technician, error) {
	var technicians []models.Technician
	err := s.db.Scopes(tenant.ForApartment(apartmentCode)).
		Where("status = ?", models.TechnicianAvailable).
		Order("created_at DESC").Find(&technicians).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list available technicians: %w", err)
	}
	return technicians, nil
}
