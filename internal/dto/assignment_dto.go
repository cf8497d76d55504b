package dto

type RecordAssignmentRequest struct {
	BaseID          string  `json:"base_id" validate:"required,uuid"`
	EquipmentTypeID string  `json:"equipment_type_id" validate:"required,uuid"`
	AssigneeID      *string `json:"assignee_id" validate:"omitempty,uuid"`
	Quantity        int     `json:"quantity" validate:"required,gt=0"`
	Kind            string  `json:"kind" validate:"required,oneof=assigned expended"`
	Notes           string  `json:"notes"`
}

type AssignmentResponse struct {
	ID              string  `json:"id"`
	BaseID          string  `json:"base_id"`
	BaseName        string  `json:"base_name,omitempty"`
	EquipmentTypeID string  `json:"equipment_type_id"`
	EquipmentName   string  `json:"equipment_name,omitempty"`
	AssigneeID      *string `json:"assignee_id,omitempty"`
	Quantity        int     `json:"quantity"`
	Kind            string  `json:"kind"`
	Notes           string  `json:"notes,omitempty"`
	CreatedBy       string  `json:"created_by"`
	CreatedAt       string  `json:"created_at"`
}
