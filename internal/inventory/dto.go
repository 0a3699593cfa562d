package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/stocktrail/stocktrail-backend/pkg/db/models"
)

// DTO is the wire shape of an inventory record.
type DTO struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	Quantity    int       `json:"quantity"`
	Status      string    `json:"status"`
	LastUpdated time.Time `json:"last_updated"`
}

// HistoryEntryDTO is one snapshot in the inventory history log. The
// recorded timestamp is serialized as last_updated to mirror the live
// inventory shape.
type HistoryEntryDTO struct {
	ID          int64     `json:"id"`
	InventoryID uuid.UUID `json:"inventory_id"`
	Quantity    int       `json:"quantity"`
	Status      string    `json:"status"`
	RecordedAt  time.Time `json:"last_updated"`
}

// HistoryPageDTO is one page of history entries plus paging metadata.
type HistoryPageDTO struct {
	Entries    []HistoryEntryDTO `json:"entries"`
	Page       int               `json:"page"`
	PerPage    int               `json:"per_page"`
	Total      int64             `json:"total"`
	TotalPages int               `json:"total_pages"`
}

// UpdateInput carries a stock adjustment. Nil fields are left untouched.
type UpdateInput struct {
	Quantity *int    `json:"quantity" validate:"omitempty,gte=0"`
	Status   *string `json:"status" validate:"omitempty"`
}

func toDTO(inv *models.Inventory) *DTO {
	return &DTO{
		ID:          inv.ID,
		ProductID:   inv.ProductID,
		Quantity:    inv.Quantity,
		Status:      inv.Status.String(),
		LastUpdated: inv.LastUpdated,
	}
}

func toDTOs(rows []models.Inventory) []DTO {
	out := make([]DTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toDTO(&rows[i]))
	}
	return out
}

func toHistoryDTOs(rows []models.InventoryHistory) []HistoryEntryDTO {
	out := make([]HistoryEntryDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, HistoryEntryDTO{
			ID:          row.ID,
			InventoryID: row.InventoryID,
			Quantity:    row.Quantity,
			Status:      row.Status.String(),
			RecordedAt:  row.RecordedAt,
		})
	}
	return out
}
