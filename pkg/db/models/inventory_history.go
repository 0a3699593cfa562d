package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/stocktrail/stocktrail-backend/pkg/enums"
)

// InventoryHistory is an immutable snapshot of an inventory record taken
// after each mutation. Rows are only ever appended, so the serial key
// doubles as the recency ordering.
type InventoryHistory struct {
	ID          int64                 `gorm:"column:id;primaryKey;autoIncrement"`
	InventoryID uuid.UUID             `gorm:"column:inventory_id;type:uuid;not null;index"`
	Quantity    int                   `gorm:"column:quantity;not null"`
	Status      enums.InventoryStatus `gorm:"column:status;not null"`
	RecordedAt  time.Time             `gorm:"column:recorded_at;autoCreateTime"`
}

// TableName keeps the table name aligned with the schema.
func (InventoryHistory) TableName() string {
	return "inventory_history"
}
