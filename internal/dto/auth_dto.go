package dto

import "github.com/google/uuid"

type RegisterApartmentRequest struct {
	Name string `json:"name" validate:"required"`
}

type RegisterApartmentResponse struct {
	Message       string `json:"message"`
	ApartmentCode string `json:"apartmentCode"`
}

type SignupRequest struct {
	Username      string `json:"username" validate:"required"`
	PhoneNumber   string `json:"phoneNumber" validate:"required"`
	FlatNumber    string `json:"flatNumber" validate:"required"`
	Password      string `json:"password" validate:"required"`
	ApartmentCode string `json:"apartmentCode" validate:"required"`
}

type LoginRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

type ValidateRequest struct {
	Token string `json:"token"`
}

// SessionResponse is the shape shared by login and validate. Name is the
// derived display string "Admin of X" / "Resident of X".
type SessionResponse struct {
	Message       string    `json:"message,omitempty"`
	Role          string    `json:"role"`
	Phone         string    `json:"phone"`
	Username      string    `json:"username"`
	FlatNumber    string    `json:"flatNumber"`
	ApartmentCode string    `json:"apartmentCode"`
	ApartmentID   uuid.UUID `json:"apartmentId"`
	Name          string    `json:"name"`
	Token         string    `json:"token,omitempty"`
}

type UpdateResidentRequest struct {
	Username    string `json:"username" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	FlatNumber  string `json:"flatNumber" validate:"required"`
}

type FlatAvailabilityResponse struct {
	IsAvailable   bool   `json:"isAvailable"`
	FlatNumber    string `json:"flatNumber"`
	ApartmentCode string `json:"apartmentCode"`
	Message       string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
