package dto

// EquipmentMetrics is one dashboard row: period movements for one equipment
// type plus the derived opening balance. Opening is back-solved from the
// closing snapshot and the period's net movement — it is a reporting view,
// never ledger state.
type EquipmentMetrics struct {
	EquipmentTypeID string `json:"equipment_type_id"`
	Name            string `json:"name"`
	OpeningBalance  int64  `json:"opening_balance"`
	ClosingBalance  int64  `json:"closing_balance"`
	NetMovement     int64  `json:"net_movement"`
	Purchases       int64  `json:"purchases"`
	TransferIn      int64  `json:"transfer_in"`
	TransferOut     int64  `json:"transfer_out"`
	Assigned        int64  `json:"assigned"`
	Expended        int64  `json:"expended"`
}

type DashboardSummary struct {
	OpeningBalance int64 `json:"opening_balance"`
	ClosingBalance int64 `json:"closing_balance"`
	NetMovement    int64 `json:"net_movement"`
	Assigned       int64 `json:"assigned"`
	Expended       int64 `json:"expended"`
}

type NetMovementBreakdown struct {
	Purchases   int64 `json:"purchases"`
	TransferIn  int64 `json:"transfer_in"`
	TransferOut int64 `json:"transfer_out"`
}

type DashboardResponse struct {
	Summary              DashboardSummary     `json:"summary"`
	Inventory            []EquipmentMetrics   `json:"inventory"`
	NetMovementBreakdown NetMovementBreakdown `json:"net_movement_breakdown"`
}
