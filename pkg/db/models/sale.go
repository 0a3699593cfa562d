package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sale records a single stock-consuming transaction.
type Sale struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	InventoryID  uuid.UUID `gorm:"column:inventory_id;type:uuid;not null;index"`
	QuantitySold int       `gorm:"column:quantity_sold;not null"`
	SaleDate     time.Time `gorm:"column:sale_date;autoCreateTime"`
}

// BeforeCreate assigns the primary key when the caller did not.
func (s *Sale) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
