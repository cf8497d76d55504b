package dto

type BalanceResponse struct {
	BaseID          string `json:"base_id"`
	BaseName        string `json:"base_name,omitempty"`
	EquipmentTypeID string `json:"equipment_type_id"`
	EquipmentName   string `json:"equipment_name,omitempty"`
	CurrentBalance  int    `json:"current_balance"`
	LastUpdated     string `json:"last_updated"`
}
