package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/nivasa/backend/internal/dto"
	"github.com/nivasa/backend/internal/services"
)

type TechnicianHandler struct {
	technicians *services.TechnicianService
}

func NewTechnicianHandler(technicians *services.TechnicianService) *TechnicianHandler {
	return &TechnicianHandler{technicians: technicians}
}

func (h *TechnicianHandler) List(c *fiber.Ctx) error {
	apartmentCode := c.Query("apartmentCode")
	if apartmentCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Apartment code is required"})
	}

	technicians, err := h.technicians.List(apartmentCode)
	if err != nil {
		return internalError(c, "technician listing failed", err)
	}

	return c.JSON(technicians)
}

func (h *TechnicianHandler) GetByID(c *fiber.Ctx) error {
	apartmentCode := c.Query("apartmentCode")
	if apartmentCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Apartment code is required"})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Technician not found"})
	}

	technician, err := h.technicians.GetByID(id, apartmentCode)
	if err != nil {
		if errors.Is(err, services.ErrTechnicianNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Technician not found"})
		}
		return internalError(c, "technician fetch failed", err)
	}

	return c.JSON(technician)
}

func (h *TechnicianHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTechnicianRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	technician, err := h.technicians.Create(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Name, email, phone, specialty, and apartment code are required"})
		case errors.Is(err, services.ErrTechnicianEmailUsed):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Technician with this email already exists in this apartment"})
		}
		return internalError(c, "technician creation failed", err)
	}

	return c.Status(fiber.StatusCreated).JSON(technician)
}

func (h *TechnicianHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Technician not found"})
	}

	var req dto.UpdateTechnicianRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}
	if req.ApartmentCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Apartment code is required"})
	}

	technician, err := h.technicians.Update(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid technician data"})
		case errors.Is(err, services.ErrTechnicianEmailUsed):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Technician with this email already exists in this apartment"})
		case errors.Is(err, services.ErrTechnicianNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Technician not found"})
		}
		return internalError(c, "technician update failed", err)
	}

	return c.JSON(technician)
}

func (h *TechnicianHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Technician not found"})
	}

	var req dto.UpdateTechnicianStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	technician, err := h.technicians.UpdateStatus(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Valid status is required (available, busy, offline)"})
		case errors.Is(err, services.ErrTechnicianNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Technician not found"})
		}
		return internalError(c, "technician status update failed", err)
	}

	return c.JSON(technician)
}

func (h *TechnicianHandler) Delete(c *fiber.Ctx) error {
	apartmentCode := c.Query("apartmentCode")
	if apartmentCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Apartment code is required"})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Technician not found"})
	}

	technician, err := h.technicians.Delete(id, apartmentCode)
	if err != nil {
		if errors.Is(err, services.ErrTechnicianNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Technician not found"})
		}
		return internalError(c, "technician deletion failed", err)
	}

	return c.JSON(fiber.Map{
		"message":           "Technician deleted successfully",
		"deletedTechnician": technician,
	})
}

func (h *TechnicianHandler) BySpecialty(c *fiber.Ctx) error {
	apartmentCode := c.Query("apartmentCode")
	if apartmentCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Apartment code is required"})
	}

	technicians, err := h.technicians.BySpecialty(c.Params("specialty"), apartmentCode)
	if err != nil {
		return internalError(c, "technician listing by specialty failed", err)
	}

	return c.JSON(technicians)
}

func (h *TechnicianHandler) Available(c *fiber.Ctx) error {
	apartmentCode := c.Query("apartmentCode")
	if apartmentCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Apartment code is required"})
	}

	technicians, err := h.technicians.Available(apartmentCode)
	if err != nil {
		return internalError(c, "available technician listing failed", err)
	}

	return c.JSON(technicians)
}
