package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stocktrail/stocktrail-backend/internal/repo"
	"github.com/stocktrail/stocktrail-backend/pkg/db/models"
	"github.com/stocktrail/stocktrail-backend/pkg/enums"
)

// Repository owns persistence for inventory records and their history log.
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

// Create inserts a new inventory row.
func (r *Repository) Create(ctx context.Context, inv *models.Inventory) (*models.Inventory, error) {
	if err := r.DB(ctx).Create(inv).Error; err != nil {
		return nil, err
	}
	return inv, nil
}

// FindByID loads an inventory row by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Inventory, error) {
	var inv models.Inventory
	if err := r.DB(ctx).First(&inv, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

// FindByProductID loads the inventory row owned by a product.
func (r *Repository) FindByProductID(ctx context.Context, productID uuid.UUID) (*models.Inventory, error) {
	var inv models.Inventory
	if err := r.DB(ctx).First(&inv, "product_id = ?", productID).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

// ListAll returns every inventory row.
func (r *Repository) ListAll(ctx context.Context) ([]models.Inventory, error) {
	var rows []models.Inventory
	if err := r.DB(ctx).Order("last_updated DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Save persists quantity/status changes and refreshes last_updated.
func (r *Repository) Save(ctx context.Context, inv *models.Inventory) (*models.Inventory, error) {
	if err := r.DB(ctx).Save(inv).Error; err != nil {
		return nil, err
	}
	return inv, nil
}

// DecrementQuantity atomically subtracts qty from the row, guarding against
// both insufficient stock and concurrent decrements. The returned count is
// zero when the guard rejected the update.
func (r *Repository) DecrementQuantity(ctx context.Context, id uuid.UUID, qty int) (int64, error) {
	res := r.DB(ctx).
		Model(&models.Inventory{}).
		Where("id = ? AND quantity >= ?", id, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	return res.RowsAffected, res.Error
}

// UpdateStatus overwrites the status column for the row.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.InventoryStatus) error {
	return r.DB(ctx).
		Model(&models.Inventory{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// AppendHistory snapshots the post-mutation state of the inventory row.
func (r *Repository) AppendHistory(ctx context.Context, inv *models.Inventory) (*models.InventoryHistory, error) {
	entry := &models.InventoryHistory{
		InventoryID: inv.ID,
		Quantity:    inv.Quantity,
		Status:      inv.Status,
	}
	if err := r.DB(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// CountHistory returns the number of history rows for one inventory.
func (r *Repository) CountHistory(ctx context.Context, inventoryID uuid.UUID) (int64, error) {
	var total int64
	err := r.DB(ctx).
		Model(&models.InventoryHistory{}).
		Where("inventory_id = ?", inventoryID).
		Count(&total).Error
	return total, err
}

// HistoryPage returns one page of history rows, most recent first.
func (r *Repository) HistoryPage(ctx context.Context, inventoryID uuid.UUID, limit, offset int) ([]models.InventoryHistory, error) {
	var rows []models.InventoryHistory
	err := r.DB(ctx).
		Where("inventory_id = ?", inventoryID).
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
