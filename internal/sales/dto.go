package sales

import (
	"time"

	"github.com/google/uuid"
)

// DTO is the wire shape of a recorded sale, joined with its product.
type DTO struct {
	ID           uuid.UUID `json:"id"`
	InventoryID  uuid.UUID `json:"inventory_id"`
	ProductID    uuid.UUID `json:"product_id"`
	ProductName  string    `json:"product_name"`
	Category     string    `json:"category"`
	PriceCents   int       `json:"price_cents"`
	QuantitySold int       `json:"quantity_sold"`
	TotalCents   int64     `json:"total_cents"`
	SaleDate     time.Time `json:"sale_date"`
}

// CreateInput carries a new sale request.
type CreateInput struct {
	InventoryID  uuid.UUID `json:"inventory_id" validate:"required"`
	QuantitySold int       `json:"quantity_sold" validate:"required,gt=0"`
}

// CreateResult is the committed sale plus the stock state it left behind.
type CreateResult struct {
	SaleID            uuid.UUID `json:"sale_id"`
	InventoryID       uuid.UUID `json:"inventory_id"`
	QuantitySold      int       `json:"quantity_sold"`
	RemainingQuantity int       `json:"remaining_quantity"`
	Status            string    `json:"status"`
	SaleDate          time.Time `json:"sale_date"`
}

// RevenueBucketDTO is one period of aggregated revenue. StartDate/EndDate
// are set for the weekly, monthly, and annual granularities.
type RevenueBucketDTO struct {
	Period       string `json:"period"`
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
	RevenueCents int64  `json:"revenue_cents"`
	UnitsSold    int    `json:"units_sold"`
}

// RevenueReportDTO is the full aggregation for one granularity.
type RevenueReportDTO struct {
	Granularity string             `json:"granularity"`
	Buckets     []RevenueBucketDTO `json:"buckets"`
}

func toDTOs(rows []saleRow) []DTO {
	out := make([]DTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, DTO{
			ID:           row.ID,
			InventoryID:  row.InventoryID,
			ProductID:    row.ProductID,
			ProductName:  row.ProductName,
			Category:     row.Category.String(),
			PriceCents:   row.PriceCents,
			QuantitySold: row.QuantitySold,
			TotalCents:   int64(row.PriceCents) * int64(row.QuantitySold),
			SaleDate:     row.SaleDate,
		})
	}
	return out
}
