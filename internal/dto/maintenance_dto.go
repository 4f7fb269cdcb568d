package dto

type SetAmountRequest struct {
	ApartmentCode string  `json:"apartmentCode" validate:"required"`
	Amount        float64 `json:"amount"`
}

type BankDetailsRequest struct {
	ApartmentCode string `json:"apartmentCode" validate:"required"`
	AccountHolder string `json:"accountHolder"`
	AccountNumber string `json:"accountNumber"`
	IFSCCode      string `json:"ifscCode"`
	BankName      string `json:"bankName"`
	Branch        string `json:"branch"`
	UPIID         string `json:"upiId"`
}

type SubmitPaymentRequest struct {
	ApartmentCode string   `json:"apartmentCode" validate:"required"`
	FlatNumber    string   `json:"flatNumber" validate:"required"`
	TransactionID string   `json:"transactionId" validate:"required"`
	Months        []string `json:"months" validate:"required,min=1"`
}

type UpdatePaymentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}
