package dto

type CreateComplaintRequest struct {
	Title          string `json:"title" validate:"required"`
	Description    string `json:"description" validate:"required"`
	Category       string `json:"category" validate:"required"`
	Priority       string `json:"priority" validate:"required"`
	PhoneNumber    string `json:"phoneNumber" validate:"required"`
	AdditionalInfo string `json:"additionalInfo"`
}

type UpdateComplaintRequest struct {
	Status     string  `json:"status" validate:"required"`
	AssignedTo *string `json:"assignedTo"`
}

type ComplaintStatsResponse struct {
	Open       int64 `json:"open"`
	InProgress int64 `json:"inProgress"`
	Resolved   int64 `json:"resolved"`
}
