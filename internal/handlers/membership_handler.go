package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/nivasa/backend/internal/dto"
	"github.com/nivasa/backend/internal/models"
	"github.com/nivasa/backend/internal/services"
)

type MembershipHandler struct {
	membership *services.MembershipService
}

func NewMembershipHandler(membership *services.MembershipService) *MembershipHandler {
	return &MembershipHandler{membership: membership}
}

func (h *MembershipHandler) RegisterApartment(c *fiber.Ctx) error {
	var req dto.RegisterApartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	apartment, err := h.membership.RegisterApartment(req.Name)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Apartment name is required"})
		}
		if errors.Is(err, services.ErrCodeCollision) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return internalError(c, "apartment registration failed", err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.RegisterApartmentResponse{
		Message:       "Apartment registered",
		ApartmentCode: apartment.ApartmentCode,
	})
}

func (h *MembershipHandler) SignupAdmin(c *fiber.Ctx) error {
	return h.signup(c, models.RoleAdmin)
}

func (h *MembershipHandler) SignupResident(c *fiber.Ctx) error {
	return h.signup(c, models.RoleResident)
}

func (h *MembershipHandler) signup(c *fiber.Ctx, role string) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	if _, err := h.membership.Signup(role, &req); err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Missing required fields"})
		case errors.Is(err, services.ErrInvalidApartmentCode):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid apartment code"})
		case errors.Is(err, services.ErrUserExists):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "User already exists"})
		case errors.Is(err, services.ErrFlatTaken):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: fmt.Sprintf("Flat number %s is already registered in this apartment. Please choose a different flat number.", req.FlatNumber),
			})
		}
		return internalError(c, "signup failed", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": role + " registered successfully",
	})
}

func (h *MembershipHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	resp, err := h.membership.Login(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "User not found"})
		case errors.Is(err, services.ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Invalid credentials"})
		}
		return internalError(c, "login failed", err)
	}

	return c.JSON(resp)
}

func (h *MembershipHandler) Validate(c *fiber.Ctx) error {
	var req dto.ValidateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	resp, err := h.membership.Validate(req.Token)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidToken):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Invalid or expired token"})
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "User not found"})
		}
		return internalError(c, "session validation failed", err)
	}

	return c.JSON(resp)
}

func (h *MembershipHandler) Neighbors(c *fiber.Ctx) error {
	apartmentCode := c.Params("apartmentCode")

	neighbors, err := h.membership.ListNeighbors(apartmentCode)
	if err != nil {
		return internalError(c, "neighbor listing failed", err)
	}

	return c.JSON(fiber.Map{"neighbors": neighbors})
}

func (h *MembershipHandler) UpdateResident(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "User not found"})
	}

	var req dto.UpdateResidentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	user, err := h.membership.UpdateResident(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Username, phone number, and flat number are required"})
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "User not found"})
		case errors.Is(err, services.ErrFlatTaken):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: fmt.Sprintf("Flat number %s is already registered by another resident in this apartment.", req.FlatNumber),
			})
		}
		return internalError(c, "resident update failed", err)
	}

	return c.JSON(fiber.Map{
		"message": "Resident updated successfully",
		"user": fiber.Map{
			"_id":         user.ID,
			"username":    user.Username,
			"phoneNumber": user.PhoneNumber,
			"flatNumber":  user.FlatNumber,
			"role":        user.Role,
		},
	})
}

func (h *MembershipHandler) DeleteResident(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "User not found"})
	}

	user, err := h.membership.DeleteResident(userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "User not found"})
		case errors.Is(err, services.ErrAdminProtected):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "Admin users cannot be deleted"})
		}
		return internalError(c, "resident deletion failed", err)
	}

	return c.JSON(fiber.Map{
		"message": "Resident deleted successfully",
		"deletedUser": fiber.Map{
			"_id":        user.ID,
			"username":   user.Username,
			"flatNumber": user.FlatNumber,
		},
	})
}

func (h *MembershipHandler) CheckFlatAvailability(c *fiber.Ctx) error {
	flatNumber := c.Query("flatNumber")
	apartmentCode := c.Query("apartmentCode")

	if flatNumber == "" || apartmentCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Flat number and apartment code are required"})
	}

	available, err := h.membership.CheckFlatAvailability(flatNumber, apartmentCode)
	if err != nil {
		if errors.Is(err, services.ErrApartmentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Apartment not found"})
		}
		return internalError(c, "flat availability check failed", err)
	}

	message := fmt.Sprintf("Flat number %s is available", flatNumber)
	if !available {
		message = fmt.Sprintf("Flat number %s is already registered in this apartment", flatNumber)
	}

	return c.JSON(dto.FlatAvailabilityResponse{
		IsAvailable:   available,
		FlatNumber:    flatNumber,
		ApartmentCode: apartmentCode,
		Message:       message,
	})
}
