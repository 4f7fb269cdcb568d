package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/nivasa/backend/internal/dto"
	"github.com/nivasa/backend/internal/models"
	"github.com/nivasa/backend/internal/tenant"
	"gorm.io/gorm"
)

var (
	ErrComplaintNotFound = errors.New("complaint not found")
	ErrInvalidStatus     = errors.New("invalid status")
)

type TicketService struct {
	db       *gorm.DB
	validate *validator.Validate
}

func NewTicketService(db *gorm.DB) *TicketService {
	return &TicketService{db: db, validate: validator.New()}
}

// NormalizeComplaintStatus maps case-insensitive input to the canonical
// spelling. Anything outside the closed set is rejected so every stored
// status is visible to stats.
func NormalizeComplaintStatus(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "open":
		return models.StatusOpen, nil
	case "in progress":
		return models.StatusInProgress, nil
	case "resolved":
		return models.StatusResolved, nil
	}
	return "", ErrInvalidStatus
}

// CreateComplaint files a ticket for the user owning the phone number and
// binds it to their apartment.
func (s *TicketService) CreateComplaint(req *dto.CreateComplaintRequest) (*models.Complaint, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, ErrValidation
	}

	var user models.User
	if err := s.db.Where("phone_number = ?", req.PhoneNumber).
		Order("created_at ASC").First(&user).Error; err != nil {
		return nil, ErrUserNotFound
	}

	complaint := models.Complaint{
		ID:             uuid.New(),
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		Priority:       req.Priority,
		PhoneNumber:    req.PhoneNumber,
		AdditionalInfo: req.AdditionalInfo,
		Status:         models.StatusOpen,
		UserID:         &user.ID,
		ApartmentCode:  user.ApartmentCode,
	}

	if err := s.db.Create(&complaint).Error; err != nil {
		return nil, fmt.Errorf("failed to create complaint: %w", err)
	}
	complaint.User = &user
	return &complaint, nil
}

// ListComplaints returns tickets newest-first with the reporter joined,
// apartment-scoped when a code is given.
func (s *TicketService) ListComplaints(apartmentCode string) ([]models.Complaint, error) {
	query := s.db.Preload("User").Order("created_at DESC")

	if apartmentCode != "" {
		var apartment models.Apartment
		if err := s.db.Where("apartment_code = ?", apartmentCode).First(&apartment).Error; err != nil {
			return nil, ErrApartmentNotFound
		}
		query = query.Scopes(tenant.ForApartment(apartmentCode))
	}

	var complaints []models.Complaint
	if err := query.Find(&complaints).Error; err != nil {
		return nil, fmt.Errorf("failed to list complaints: %w", err)
	}
	return complaints, nil
}

// Stats counts tickets per status bucket. The closed status enum makes
// this a strict partition of the apartment's tickets.
func (s *TicketService) Stats(apartmentCode string) (*dto.ComplaintStatsResponse, error) {
	var apartment models.Apartment
	if err := s.db.Where("apartment_code = ?", apartmentCode).First(&apartment).Error; err != nil {
		return nil, ErrApartmentNotFound
	}

	stats := &dto.ComplaintStatsResponse{}
	counts := []struct {
		status string
		out    *int64
	}{
		{models.StatusOpen, &stats.Open},
		{models.StatusInProgress, &stats.InProgress},
		{models.StatusResolved, &stats.Resolved},
	}
	for _, c := range counts {
		err := s.db.Model(&models.Complaint{}).
			Scopes(tenant.ForApartment(apartmentCode)).
			Where("status = ?", c.status).
			Count(c.out).Error
		if err != nil {
			return nil, fmt.Errorf("failed to count complaints: %w", err)
		}
	}
	return stats, nil
}

// UpdateComplaint sets status and optionally the assignee.
func (s *TicketService) UpdateComplaint(id uuid.UUID, req *dto.UpdateComplaintRequest) (*models.Complaint, error) {
	status, err := NormalizeComplaintStatus(req.Status)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"status": status}
	if req.AssignedTo != nil {
		updates["assigned_to"] = *req.AssignedTo
	}

	result := s.db.Model(&models.Complaint{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update complaint: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrComplaintNotFound
	}

	var complaint models.Complaint
	if err := s.db.Preload("User").First(&complaint, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload complaint: %w", err)
	}
	return &complaint, nil
}

// RepairOrphanedComplaints backfills the reporter on legacy tickets by
// matching phone numbers against current users. Best effort: tickets with
// no phone number or no matching user are skipped.
func (s *TicketService) RepairOrphanedComplaints() (int, error) {
	var orphans []models.Complaint
	if err := s.db.Where("user_id IS NULL").Find(&orphans).Error; err != nil {
		return 0, fmt.Errorf("failed to list orphaned complaints: %w", err)
	}

	updated := 0
	for _, complaint := range orphans {
		if complaint.PhoneNumber == "" {
			continue
		}
		var user models.User
		err := s.db.Where("phone_number = ?", complaint.PhoneNumber).
			Order("created_at ASC").First(&user).Error
		if err != nil {
			continue
		}
		err = s.db.Model(&models.Complaint{}).Where("id = ?", complaint.ID).
			Update("user_id", user.ID).Error
		if err != nil {
			return updated, fmt.Errorf("failed to repair complaint %s: %w", complaint.ID, err)
		}
		updated++
	}
	return updated, nil
}
