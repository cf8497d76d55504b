package dto

import "github.com/shopspring/decimal"

type RecordPurchaseRequest struct {
	BaseID          string           `json:"base_id" validate:"required,uuid"`
	EquipmentTypeID string           `json:"equipment_type_id" validate:"required,uuid"`
	Quantity        int              `json:"quantity" validate:"required,gt=0"`
	Supplier        string           `json:"supplier"`
	UnitCost        *decimal.Decimal `json:"unit_cost" validate:"omitempty,gte=0"`
	PurchaseDate    string           `json:"purchase_date" validate:"omitempty,datetime=2006-01-02"`
	Notes           string           `json:"notes"`
}

type PurchaseResponse struct {
	ID              string           `json:"id"`
	BaseID          string           `json:"base_id"`
	BaseName        string           `json:"base_name,omitempty"`
	EquipmentTypeID string           `json:"equipment_type_id"`
	EquipmentName   string           `json:"equipment_name,omitempty"`
	Quantity        int              `json:"quantity"`
	Supplier        string           `json:"supplier"`
	UnitCost        *decimal.Decimal `json:"unit_cost,omitempty"`
	TotalCost       *decimal.Decimal `json:"total_cost,omitempty"`
	PurchaseDate    string           `json:"purchase_date"`
	Notes           string           `json:"notes,omitempty"`
	CreatedBy       string           `json:"created_by"`
	CreatedAt       string           `json:"created_at"`
}

// MovementQuery is the shared query-string filter for movement listings and
// the dashboard: an enumerated set of recognized filter keys, never free-form
// clauses.
type MovementQuery struct {
	BaseID          string `form:"base_id" validate:"omitempty,uuid"`
	EquipmentTypeID string `form:"equipment_type_id" validate:"omitempty,uuid"`
	StartDate       string `form:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate         string `form:"end_date" validate:"omitempty,datetime=2006-01-02"`
}
