package products

import (
	"context"
	stdErrors "errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stocktrail/stocktrail-backend/internal/inventory"
	"github.com/stocktrail/stocktrail-backend/pkg/db"
	"github.com/stocktrail/stocktrail-backend/pkg/db/models"
	"github.com/stocktrail/stocktrail-backend/pkg/enums"
	pkgerrors "github.com/stocktrail/stocktrail-backend/pkg/errors"
)

// ImageStore persists uploaded product images and returns their path.
type ImageStore interface {
	SaveImage(data []byte) (string, error)
}

// Service exposes catalog operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*DTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*DTO, error)
	List(ctx context.Context) ([]DTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	UploadImage(ctx context.Context, id uuid.UUID, data []byte) (*UploadImageResult, error)
}

type service struct {
	client  *db.Client
	repo    *Repository
	invRepo *inventory.Repository
	images  ImageStore
}

// NewService wires the products service.
func NewService(client *db.Client, repo *Repository, invRepo *inventory.Repository, images ImageStore) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("db client is required")
	}
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if invRepo == nil {
		return nil, fmt.Errorf("inventory repository is required")
	}
	if images == nil {
		return nil, fmt.Errorf("image store is required")
	}
	return &service{client: client, repo: repo, invRepo: invRepo, images: images}, nil
}

// Create inserts the product, its inventory record, and the opening history
// snapshot in one transaction.
func (s *service) Create(ctx context.Context, input CreateInput) (*DTO, error) {
	category, err := enums.ParseProductCategory(input.Category)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	if input.PriceCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price_cents must not be negative")
	}
	if input.InitialQuantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
	}

	var created *DTO
	err = s.client.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		txInvRepo := s.invRepo.WithTx(tx)

		product := &models.Product{
			Name:        input.Name,
			Description: input.Description,
			PriceCents:  input.PriceCents,
			Category:    category,
			ImagePath:   input.Image,
		}
		if _, err := txRepo.Create(ctx, product); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating product")
		}

		inv := &models.Inventory{
			ProductID: product.ID,
			Quantity:  input.InitialQuantity,
			Status:    enums.InventoryStatusAvailable,
		}
		if input.InitialQuantity == 0 {
			inv.Status = enums.InventoryStatusOutOfStock
		}
		if _, err := txInvRepo.Create(ctx, inv); err != nil {
			if db.IsUniqueViolation(err, "uniq_inventory_product") {
				return pkgerrors.New(pkgerrors.CodeConflict, "inventory already exists for product")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating inventory")
		}
		if _, err := txInvRepo.AppendHistory(ctx, inv); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "appending inventory history")
		}

		product.Inventory = inv
		created = toDTO(product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*DTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	return toDTO(product), nil
}

func (s *service) List(ctx context.Context) ([]DTO, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}
	return toDTOs(rows), nil
}

// Delete removes the product. Inventory, history, and sales are cleaned up
// by the cascading foreign keys.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting product")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}

// UploadImage stores the payload and records its path on the product.
func (s *service) UploadImage(ctx context.Context, id uuid.UUID, data []byte) (*UploadImageResult, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}

	path, err := s.images.SaveImage(data)
	if err != nil {
		return nil, err
	}

	affected, err := s.repo.SetImagePath(ctx, id, path)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving image path")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	return &UploadImageResult{ProductID: id, ImagePath: path}, nil
}
