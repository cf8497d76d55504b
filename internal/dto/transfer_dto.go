package dto

type InitiateTransferRequest struct {
	FromBaseID      string `json:"from_base_id" validate:"required,uuid"`
	ToBaseID        string `json:"to_base_id" validate:"required,uuid"`
	EquipmentTypeID string `json:"equipment_type_id" validate:"required,uuid"`
	Quantity        int    `json:"quantity" validate:"required,gt=0"`
	Notes           string `json:"notes"`
}

type UpdateTransferStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=completed cancelled"`
}

type TransferResponse struct {
	ID              string `json:"id"`
	FromBaseID      string `json:"from_base_id"`
	FromBaseName    string `json:"from_base_name,omitempty"`
	ToBaseID        string `json:"to_base_id"`
	ToBaseName      string `json:"to_base_name,omitempty"`
	EquipmentTypeID string `json:"equipment_type_id"`
	EquipmentName   string `json:"equipment_name,omitempty"`
	Quantity        int    `json:"quantity"`
	Status          string `json:"status"`
	Notes           string `json:"notes,omitempty"`
	CreatedBy       string `json:"created_by"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}
