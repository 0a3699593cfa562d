package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stocktrail/stocktrail-backend/internal/repo"
	"github.com/stocktrail/stocktrail-backend/pkg/db/models"
	"github.com/stocktrail/stocktrail-backend/pkg/enums"
)

// Filters narrows a sales listing. Nil fields apply no filter.
type Filters struct {
	StartDate *time.Time
	EndDate   *time.Time
	ProductID *uuid.UUID
	Category  *enums.ProductCategory
}

// saleRow is a sale joined with its product for listing responses.
type saleRow struct {
	ID           uuid.UUID
	InventoryID  uuid.UUID
	ProductID    uuid.UUID
	ProductName  string
	Category     enums.ProductCategory
	PriceCents   int
	QuantitySold int
	SaleDate     time.Time
}

// revenueRow is the minimal projection the revenue aggregator consumes.
type revenueRow struct {
	SaleDate     time.Time
	PriceCents   int
	QuantitySold int
}

// Repository owns persistence for sale records.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(tx)}
}

// Create inserts a new sale row.
func (r *Repository) Create(ctx context.Context, sale *models.Sale) (*models.Sale, error) {
	if err := r.DB(ctx).Create(sale).Error; err != nil {
		return nil, err
	}
	return sale, nil
}

// List returns sales joined with their products, newest first, applying
// any provided filters. Date bounds are compared against timestamps in Go
// rather than SQL date functions so the query runs the same on every
// supported engine.
func (r *Repository) List(ctx context.Context, f Filters) ([]saleRow, error) {
	q := r.DB(ctx).
		Table("sales").
		Select(`sales.id, sales.inventory_id, sales.quantity_sold, sales.sale_date,
			products.id AS product_id, products.name AS product_name,
			products.category, products.price_cents`).
		Joins("JOIN inventory ON inventory.id = sales.inventory_id").
		Joins("JOIN products ON products.id = inventory.product_id").
		Order("sales.sale_date DESC")

	if f.StartDate != nil {
		q = q.Where("sales.sale_date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("sales.sale_date < ?", f.EndDate.AddDate(0, 0, 1))
	}
	if f.ProductID != nil {
		q = q.Where("products.id = ?", *f.ProductID)
	}
	if f.Category != nil {
		q = q.Where("products.category = ?", *f.Category)
	}

	var rows []saleRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// RevenueRows returns every sale joined with its product price, oldest
// first, for in-process bucketing.
func (r *Repository) RevenueRows(ctx context.Context) ([]revenueRow, error) {
	var rows []revenueRow
	err := r.DB(ctx).
		Table("sales").
		Select("sales.sale_date, sales.quantity_sold, products.price_cents").
		Joins("JOIN inventory ON inventory.id = sales.inventory_id").
		Joins("JOIN products ON products.id = inventory.product_id").
		Order("sales.sale_date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
