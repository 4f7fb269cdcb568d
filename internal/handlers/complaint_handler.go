package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/nivasa/backend/internal/dto"
	"github.com/nivasa/backend/internal/services"
)

type ComplaintHandler struct {
	tickets *services.TicketService
}

func NewComplaintHandler(tickets *services.TicketService) *ComplaintHandler {
	return &ComplaintHandler{tickets: tickets}
}

func (h *ComplaintHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	complaint, err := h.tickets.CreateComplaint(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Missing required fields"})
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "User not found"})
		}
		return internalError(c, "complaint creation failed", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Complaint created",
		"complaint": complaint,
	})
}

func (h *ComplaintHandler) List(c *fiber.Ctx) error {
	apartmentCode := c.Query("apartmentCode")

	complaints, err := h.tickets.ListComplaints(apartmentCode)
	if err != nil {
		if errors.Is(err, services.ErrApartmentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Apartment not found"})
		}
		return internalError(c, "complaint listing failed", err)
	}

	return c.JSON(fiber.Map{"complaints": complaints})
}

func (h *ComplaintHandler) Stats(c *fiber.Ctx) error {
	apartmentCode := c.Params("apartmentCode")

	stats, err := h.tickets.Stats(apartmentCode)
	if err != nil {
		if errors.Is(err, services.ErrApartmentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Apartment not found"})
		}
		return internalError(c, "complaint stats failed", err)
	}

	return c.JSON(stats)
}

func (h *ComplaintHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Complaint not found"})
	}

	var req dto.UpdateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	complaint, err := h.tickets.UpdateComplaint(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Valid status is required (Open, In Progress, Resolved)"})
		case errors.Is(err, services.ErrComplaintNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Complaint not found"})
		}
		return internalError(c, "complaint update failed", err)
	}

	return c.JSON(fiber.Map{
		"message":   "Complaint updated",
		"complaint": complaint,
	})
}

func (h *ComplaintHandler) RepairOrphans(c *fiber.Ctx) error {
	updated, err := h.tickets.RepairOrphanedComplaints()
	if err != nil {
		return internalError(c, "complaint repair failed", err)
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Updated %d complaints with user info.", updated),
	})
}
