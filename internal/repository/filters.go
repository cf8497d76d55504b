package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MovementFilter is the structured filter shared by purchase, transfer and
// assignment listings/aggregations. Filters are an enumerated set of
// recognized keys applied as parameterized clauses — never string-built SQL.
type MovementFilter struct {
	BaseID          *uuid.UUID
	EquipmentTypeID *uuid.UUID
	From            *time.Time
	To              *time.Time
}

// applyDateRange scopes q to [From, To] on the given column (inclusive, by
// calendar date — To is treated as end-of-day).
func (f MovementFilter) applyDateRange(q *gorm.DB, column string) *gorm.DB {
	if f.From != nil {
		q = q.Where(column+" >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where(column+" < ?", f.To.AddDate(0, 0, 1))
	}
	return q
}

// EquipmentTotal is one aggregation row: total quantity per equipment type.
type EquipmentTotal struct {
	EquipmentTypeID uuid.UUID
	Total           int64
}

// TotalsToMap flattens aggregation rows for merge-style consumption.
func TotalsToMap(rows []EquipmentTotal) map[uuid.UUID]int64 {
	m := make(map[uuid.UUID]int64, len(rows))
	for _, r := range rows {
		m[r.EquipmentTypeID] = r.Total
	}
	return m
}
