package dto

type CreateTechnicianRequest struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required,len=10,numeric"`
	Specialty     string `json:"specialty" validate:"required,oneof=Plumbing Electrical HVAC 'General Maintenance' Carpentry"`
	Status        string `json:"status" validate:"omitempty,oneof=available busy offline"`
	ApartmentCode string `json:"apartmentCode" validate:"required"`
}

type UpdateTechnicianRequest struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required,len=10,numeric"`
	Specialty     string `json:"specialty" validate:"required,oneof=Plumbing Electrical HVAC 'General Maintenance' Carpentry"`
	Status        string `json:"status" validate:"required,oneof=available busy offline"`
	ApartmentCode string `json:"apartmentCode" validate:"required"`
}

type UpdateTechnicianStatusRequest struct {
	Status        string `json:"status" validate:"required,oneof=available busy offline"`
	ApartmentCode string `json:"apartmentCode" validate:"required"`
}
