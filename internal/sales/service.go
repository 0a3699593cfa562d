package sales

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stocktrail/stocktrail-backend/internal/inventory"
	"github.com/stocktrail/stocktrail-backend/pkg/db"
	"github.com/stocktrail/stocktrail-backend/pkg/enums"
	pkgerrors "github.com/stocktrail/stocktrail-backend/pkg/errors"
	"github.com/stocktrail/stocktrail-backend/pkg/logger"
	"github.com/stocktrail/stocktrail-backend/pkg/redis"

	"github.com/stocktrail/stocktrail-backend/pkg/db/models"
)

// Granularity selects a revenue bucketing period.
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
	GranularityAnnual  Granularity = "annual"
)

// ParseGranularity converts raw input into a Granularity.
func ParseGranularity(value string) (Granularity, error) {
	switch Granularity(value) {
	case GranularityDaily, GranularityWeekly, GranularityMonthly, GranularityAnnual:
		return Granularity(value), nil
	}
	return "", fmt.Errorf("invalid revenue granularity %q", value)
}

// Service exposes sale recording and revenue reporting.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*CreateResult, error)
	List(ctx context.Context, filters Filters) ([]DTO, error)
	Revenue(ctx context.Context, granularity Granularity) (*RevenueReportDTO, error)
}

type service struct {
	client   *db.Client
	repo     *Repository
	invRepo  *inventory.Repository
	cache    redis.Cache
	cacheTTL time.Duration
	logg     *logger.Logger
}

// NewService wires the sales service. cache may be nil; revenue reports
// are then computed on every request.
func NewService(client *db.Client, repo *Repository, invRepo *inventory.Repository, cache redis.Cache, cacheTTL time.Duration, logg *logger.Logger) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("db client is required")
	}
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if invRepo == nil {
		return nil, fmt.Errorf("inventory repository is required")
	}
	return &service{
		client:   client,
		repo:     repo,
		invRepo:  invRepo,
		cache:    cache,
		cacheTTL: cacheTTL,
		logg:     logg,
	}, nil
}

// Create records a sale: decrement stock, derive the resulting status,
// append a history snapshot, and insert the sale row, all in one
// transaction. The decrement is guarded so two concurrent sales cannot
// oversell the same record.
func (s *service) Create(ctx context.Context, input CreateInput) (*CreateResult, error) {
	if input.InventoryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "inventory_id is required")
	}
	if input.QuantitySold < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity_sold must be at least 1")
	}

	var result *CreateResult
	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		txInvRepo := s.invRepo.WithTx(tx)

		inv, err := txInvRepo.FindByID(ctx, input.InventoryID)
		if err != nil {
			if stdErrors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "inventory not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading inventory")
		}

		if input.QuantitySold > inv.Quantity {
			return pkgerrors.New(pkgerrors.CodeValidation, "insufficient stock").
				WithDetails(map[string]any{
					"available": inv.Quantity,
					"requested": input.QuantitySold,
				})
		}

		affected, err := txInvRepo.DecrementQuantity(ctx, inv.ID, input.QuantitySold)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decrementing stock")
		}
		if affected == 0 {
			// Raced with another sale between the load and the guard.
			return pkgerrors.New(pkgerrors.CodeValidation, "insufficient stock")
		}

		inv, err = txInvRepo.FindByID(ctx, inv.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reloading inventory")
		}

		inv.Status = enums.DeriveStatusAfterSale(inv.Quantity, inv.Status)
		if err := txInvRepo.UpdateStatus(ctx, inv.ID, inv.Status); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating stock status")
		}

		if _, err := txInvRepo.AppendHistory(ctx, inv); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "appending inventory history")
		}

		sale := &models.Sale{
			InventoryID:  inv.ID,
			QuantitySold: input.QuantitySold,
		}
		if _, err := txRepo.Create(ctx, sale); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating sale")
		}

		result = &CreateResult{
			SaleID:            sale.ID,
			InventoryID:       inv.ID,
			QuantitySold:      sale.QuantitySold,
			RemainingQuantity: inv.Quantity,
			Status:            inv.Status.String(),
			SaleDate:          sale.SaleDate,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateRevenueCache(ctx)
	return result, nil
}

func (s *service) List(ctx context.Context, filters Filters) ([]DTO, error) {
	rows, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing sales")
	}
	return toDTOs(rows), nil
}

// Revenue aggregates sale totals into calendar buckets. Reports are served
// from the cache when one is configured; a committed sale invalidates all
// granularities.
func (s *service) Revenue(ctx context.Context, granularity Granularity) (*RevenueReportDTO, error) {
	if cached, ok := s.cachedReport(ctx, granularity); ok {
		return cached, nil
	}

	rows, err := s.repo.RevenueRows(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading revenue rows")
	}

	report := bucketRevenue(granularity, rows)
	s.storeReport(ctx, granularity, report)
	return report, nil
}

func (s *service) cachedReport(ctx context.Context, granularity Granularity) (*RevenueReportDTO, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, hit, err := s.cache.GetBytes(ctx, s.revenueKey(granularity))
	if err != nil {
		s.warn(ctx, "revenue cache read failed")
		return nil, false
	}
	if !hit {
		return nil, false
	}
	var report RevenueReportDTO
	if err := json.Unmarshal(data, &report); err != nil {
		s.warn(ctx, "revenue cache payload corrupt")
		return nil, false
	}
	return &report, true
}

func (s *service) storeReport(ctx context.Context, granularity Granularity, report *RevenueReportDTO) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.revenueKey(granularity), data, s.cacheTTL); err != nil {
		s.warn(ctx, "revenue cache write failed")
	}
}

func (s *service) invalidateRevenueCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	keys := []string{
		s.revenueKey(GranularityDaily),
		s.revenueKey(GranularityWeekly),
		s.revenueKey(GranularityMonthly),
		s.revenueKey(GranularityAnnual),
	}
	if err := s.cache.Del(ctx, keys...); err != nil {
		s.warn(ctx, "revenue cache invalidation failed")
	}
}

func (s *service) revenueKey(granularity Granularity) string {
	return s.cache.CacheKey("revenue", string(granularity))
}

func (s *service) warn(ctx context.Context, msg string) {
	if s.logg != nil {
		s.logg.Warn(ctx, msg)
	}
}

// bucketRevenue folds rows into calendar buckets in-process so the query
// stays free of engine-specific date functions. Timestamps are bucketed
// in UTC.
func bucketRevenue(granularity Granularity, rows []revenueRow) *RevenueReportDTO {
	buckets := map[string]*RevenueBucketDTO{}

	for _, row := range rows {
		day := row.SaleDate.UTC()
		bucket := bucketFor(granularity, day)

		existing, ok := buckets[bucket.Period]
		if !ok {
			existing = bucket
			buckets[bucket.Period] = existing
		}
		existing.RevenueCents += int64(row.PriceCents) * int64(row.QuantitySold)
		existing.UnitsSold += row.QuantitySold
	}

	out := make([]RevenueBucketDTO, 0, len(buckets))
	for _, bucket := range buckets {
		out = append(out, *bucket)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })

	return &RevenueReportDTO{
		Granularity: string(granularity),
		Buckets:     out,
	}
}

func bucketFor(granularity Granularity, t time.Time) *RevenueBucketDTO {
	const dateLayout = "2006-01-02"

	switch granularity {
	case GranularityWeekly:
		year, week := t.ISOWeek()
		monday := startOfISOWeek(t)
		return &RevenueBucketDTO{
			Period:    fmt.Sprintf("%d-W%02d", year, week),
			StartDate: monday.Format(dateLayout),
			EndDate:   monday.AddDate(0, 0, 6).Format(dateLayout),
		}
	case GranularityMonthly:
		first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		return &RevenueBucketDTO{
			Period:    t.Format("2006-01"),
			StartDate: first.Format(dateLayout),
			EndDate:   first.AddDate(0, 1, -1).Format(dateLayout),
		}
	case GranularityAnnual:
		return &RevenueBucketDTO{
			Period:    t.Format("2006"),
			StartDate: fmt.Sprintf("%d-01-01", t.Year()),
			EndDate:   fmt.Sprintf("%d-12-31", t.Year()),
		}
	default:
		return &RevenueBucketDTO{Period: t.Format(dateLayout)}
	}
}

func startOfISOWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return day.AddDate(0, 0, 1-weekday)
}
