package dto

type CreateEquipmentTypeRequest struct {
	Name              string `json:"name" validate:"required"`
	Category          string `json:"category" validate:"required"`
	Unit              string `json:"unit" validate:"required"`
	LowStockThreshold int    `json:"low_stock_threshold" validate:"gte=0"`
}

type EquipmentTypeResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Category          string `json:"category"`
	Unit              string `json:"unit"`
	LowStockThreshold int    `json:"low_stock_threshold"`
}
