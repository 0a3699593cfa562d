package inventory

import (
	"context"
	stdErrors "errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stocktrail/stocktrail-backend/pkg/db"
	"github.com/stocktrail/stocktrail-backend/pkg/enums"
	pkgerrors "github.com/stocktrail/stocktrail-backend/pkg/errors"
	"github.com/stocktrail/stocktrail-backend/pkg/pagination"
)

// Service exposes stock level operations and the history ledger.
type Service interface {
	GetByID(ctx context.Context, id uuid.UUID) (*DTO, error)
	GetByProductID(ctx context.Context, productID uuid.UUID) (*DTO, error)
	List(ctx context.Context) ([]DTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*DTO, error)
	History(ctx context.Context, id uuid.UUID, params pagination.Params) (*HistoryPageDTO, error)
}

type service struct {
	client *db.Client
	repo   *Repository
}

// NewService wires the inventory service.
func NewService(client *db.Client, repo *Repository) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("db client is required")
	}
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	return &service{client: client, repo: repo}, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*DTO, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading inventory")
	}
	return toDTO(inv), nil
}

func (s *service) GetByProductID(ctx context.Context, productID uuid.UUID) (*DTO, error) {
	inv, err := s.repo.FindByProductID(ctx, productID)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory not found for product")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading inventory by product")
	}
	return toDTO(inv), nil
}

func (s *service) List(ctx context.Context) ([]DTO, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing inventory")
	}
	return toDTOs(rows), nil
}

// Update adjusts quantity and/or status, appending a history snapshot in the
// same transaction so the ledger never drifts from the live row.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*DTO, error) {
	if input.Quantity == nil && input.Status == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one of quantity or status is required")
	}
	if input.Quantity != nil && *input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
	}

	var status *enums.InventoryStatus
	if input.Status != nil {
		parsed, err := enums.ParseInventoryStatus(*input.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		status = &parsed
	}

	var updated *DTO
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		inv, err := txRepo.FindByID(ctx, id)
		if err != nil {
			if stdErrors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "inventory not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading inventory")
		}

		if input.Quantity != nil {
			inv.Quantity = *input.Quantity
		}
		if status != nil {
			inv.Status = *status
		}

		if _, err := txRepo.Save(ctx, inv); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving inventory")
		}
		if _, err := txRepo.AppendHistory(ctx, inv); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "appending inventory history")
		}

		updated = toDTO(inv)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// History returns one page of the ledger for an inventory record, most
// recent entry first.
func (s *service) History(ctx context.Context, id uuid.UUID, params pagination.Params) (*HistoryPageDTO, error) {
	normalized, err := pagination.Normalize(params)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading inventory")
	}

	total, err := s.repo.CountHistory(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "counting inventory history")
	}

	rows, err := s.repo.HistoryPage(ctx, id, normalized.PerPage, normalized.Offset())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing inventory history")
	}

	return &HistoryPageDTO{
		Entries:    toHistoryDTOs(rows),
		Page:       normalized.Page,
		PerPage:    normalized.PerPage,
		Total:      total,
		TotalPages: pagination.TotalPages(total, normalized.PerPage),
	}, nil
}
