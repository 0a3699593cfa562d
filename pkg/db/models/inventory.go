package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stocktrail/stocktrail-backend/pkg/enums"
)

// Inventory tracks the current stock state for one product.
type Inventory struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	ProductID   uuid.UUID             `gorm:"column:product_id;type:uuid;not null;uniqueIndex:uniq_inventory_product"`
	Quantity    int                   `gorm:"column:quantity;not null;default:0"`
	Status      enums.InventoryStatus `gorm:"column:status;not null"`
	LastUpdated time.Time             `gorm:"column:last_updated;autoUpdateTime"`
	History     []InventoryHistory    `gorm:"foreignKey:InventoryID;constraint:OnDelete:CASCADE"`
	Sales       []Sale                `gorm:"foreignKey:InventoryID;constraint:OnDelete:CASCADE"`
}

// TableName keeps the singular table name used by the schema.
func (Inventory) TableName() string {
	return "inventory"
}

// BeforeCreate assigns the primary key when the caller did not.
func (i *Inventory) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
