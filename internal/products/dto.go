package products

import (
	"time"

	"github.com/google/uuid"

	"github.com/stocktrail/stocktrail-backend/pkg/db/models"
)

// DTO is the wire shape of a catalog product.
type DTO struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Description *string       `json:"description,omitempty"`
	PriceCents  int           `json:"price_cents"`
	Category    string        `json:"category"`
	ImagePath   *string       `json:"image_path,omitempty"`
	Inventory   *InventoryDTO `json:"inventory,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// InventoryDTO is the stock summary embedded in product payloads.
type InventoryDTO struct {
	ID          uuid.UUID `json:"id"`
	Quantity    int       `json:"quantity"`
	Status      string    `json:"status"`
	LastUpdated time.Time `json:"last_updated"`
}

// CreateInput carries a new product plus its opening stock level. Image
// is an optional pre-existing path; binary uploads go through the
// dedicated upload endpoint instead.
type CreateInput struct {
	Name            string  `json:"name" validate:"required,min=1,max=255"`
	Description     *string `json:"description" validate:"omitempty,max=2000"`
	PriceCents      int     `json:"price_cents" validate:"gte=0"`
	Category        string  `json:"category" validate:"required"`
	InitialQuantity int     `json:"quantity" validate:"gte=0"`
	Image           *string `json:"image" validate:"omitempty,max=1024"`
}

// UploadImageResult reports where an uploaded product image landed.
type UploadImageResult struct {
	ProductID uuid.UUID `json:"product_id"`
	ImagePath string    `json:"image_path"`
}

func toDTO(p *models.Product) *DTO {
	dto := &DTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		Category:    p.Category.String(),
		ImagePath:   p.ImagePath,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Inventory != nil {
		dto.Inventory = &InventoryDTO{
			ID:          p.Inventory.ID,
			Quantity:    p.Inventory.Quantity,
			Status:      p.Inventory.Status.String(),
			LastUpdated: p.Inventory.LastUpdated,
		}
	}
	return dto
}

func toDTOs(rows []models.Product) []DTO {
	out := make([]DTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toDTO(&rows[i]))
	}
	return out
}
