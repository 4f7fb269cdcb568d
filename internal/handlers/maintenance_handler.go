package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/nivasa/backend/internal/dto"
	"github.com/nivasa/backend/internal/services"
)

type MaintenanceHandler struct {
	payments *services.PaymentService
}

func NewMaintenanceHandler(payments *services.PaymentService) *MaintenanceHandler {
	return &MaintenanceHandler{payments: payments}
}

func (h *MaintenanceHandler) SetAmount(c *fiber.Ctx) error {
	var req dto.SetAmountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	apartment, err := h.payments.SetAmount(req.ApartmentCode, req.Amount)
	if err != nil {
		if errors.Is(err, services.ErrApartmentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Apartment not found"})
		}
		return internalError(c, "maintenance amount update failed", err)
	}

	return c.JSON(fiber.Map{
		"message":           "Maintenance amount updated",
		"maintenanceAmount": apartment.MaintenanceAmount,
	})
}

func (h *MaintenanceHandler) GetAmount(c *fiber.Ctx) error {
	amount, err := h.payments.GetAmount(c.Query("apartmentCode"))
	if err != nil {
		if errors.Is(err, services.ErrApartmentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Apartment not found"})
		}
		return internalError(c, "maintenance amount fetch failed", err)
	}

	return c.JSON(fiber.Map{"maintenanceAmount": amount})
}

func (h *MaintenanceHandler) SetBankDetails(c *fiber.Ctx) error {
	var req dto.BankDetailsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	details, err := h.payments.SetBankDetails(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Apartment code is required"})
		case errors.Is(err, services.ErrApartmentNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Apartment not found"})
		}
		return internalError(c, "bank details update failed", err)
	}

	return c.JSON(fiber.Map{
		"message":     "Bank details updated successfully",
		"bankDetails": details,
	})
}

func (h *MaintenanceHandler) GetBankDetails(c *fiber.Ctx) error {
	apartmentCode := c.Query("apartmentCode")
	if apartmentCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Apartment code is required"})
	}

	details, err := h.payments.GetBankDetails(apartmentCode)
	if err != nil {
		if errors.Is(err, services.ErrApartmentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Apartment not found"})
		}
		return internalError(c, "bank details fetch failed", err)
	}

	return c.JSON(fiber.Map{"bankDetails": details})
}

func (h *MaintenanceHandler) SubmitPayment(c *fiber.Ctx) error {
	var req dto.SubmitPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	payment, err := h.payments.SubmitPayment(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "All fields are required"})
		case errors.Is(err, services.ErrApartmentNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Apartment not found"})
		case errors.Is(err, services.ErrAmountNotSet):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Maintenance amount not set by admin"})
		}
		return internalError(c, "payment submission failed", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Payment request submitted",
		"payment": payment,
	})
}

func (h *MaintenanceHandler) MyPayments(c *fiber.Ctx) error {
	apartmentCode := c.Query("apartmentCode")
	flatNumber := c.Query("flatNumber")
	if apartmentCode == "" || flatNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "apartmentCode and flatNumber are required"})
	}

	payments, err := h.payments.MyPayments(apartmentCode, flatNumber)
	if err != nil {
		return internalError(c, "payment listing failed", err)
	}

	return c.JSON(fiber.Map{"payments": payments})
}

func (h *MaintenanceHandler) AllPayments(c *fiber.Ctx) error {
	apartmentCode := c.Query("apartmentCode")
	if apartmentCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "apartmentCode is required"})
	}

	payments, err := h.payments.AllPayments(apartmentCode)
	if err != nil {
		return internalError(c, "payment listing failed", err)
	}

	return c.JSON(fiber.Map{"payments": payments})
}

func (h *MaintenanceHandler) UpdatePaymentStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Payment not found"})
	}

	var req dto.UpdatePaymentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid request body"})
	}

	payment, err := h.payments.UpdateStatus(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "Invalid status"})
		case errors.Is(err, services.ErrPaymentNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "Payment not found"})
		}
		return internalError(c, "payment status update failed", err)
	}

	return c.JSON(fiber.Map{
		"message": "Payment status updated",
		"payment": payment,
	})
}
