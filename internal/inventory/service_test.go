package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stocktrail/stocktrail-backend/pkg/db"
	"github.com/stocktrail/stocktrail-backend/pkg/db/models"
	"github.com/stocktrail/stocktrail-backend/pkg/enums"
	pkgerrors "github.com/stocktrail/stocktrail-backend/pkg/errors"
	"github.com/stocktrail/stocktrail-backend/pkg/pagination"
)

func setupInventoryTest(t *testing.T) (*gorm.DB, *Repository, Service) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	require.NoError(t, conn.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, conn.AutoMigrate(
		&models.Product{},
		&models.Inventory{},
		&models.InventoryHistory{},
		&models.Sale{},
	))

	repo := NewRepository(conn)
	svc, err := NewService(db.NewFromConn(conn), repo)
	require.NoError(t, err)

	return conn, repo, svc
}

func seedInventory(t *testing.T, conn *gorm.DB, quantity int, status enums.InventoryStatus) *models.Inventory {
	t.Helper()

	product := &models.Product{
		Name:       "Pixel 9",
		PriceCents: 79900,
		Category:   enums.ProductCategorySmartPhones,
	}
	require.NoError(t, conn.Create(product).Error)

	inv := &models.Inventory{
		ProductID: product.ID,
		Quantity:  quantity,
		Status:    status,
	}
	require.NoError(t, conn.Create(inv).Error)
	return inv
}

func newUUID(t *testing.T) uuid.UUID {
	t.Helper()
	return uuid.New()
}

func TestUpdateAppendsHistory(t *testing.T) {
	conn, _, svc := setupInventoryTest(t)
	inv := seedInventory(t, conn, 10, enums.InventoryStatusAvailable)

	quantity := 4
	status := "damaged"
	updated, err := svc.Update(context.Background(), inv.ID, UpdateInput{
		Quantity: &quantity,
		Status:   &status,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, updated.Quantity)
	assert.Equal(t, "damaged", updated.Status)
	assert.False(t, updated.LastUpdated.IsZero())

	var entries []models.InventoryHistory
	require.NoError(t, conn.Where("inventory_id = ?", inv.ID).Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, 4, entries[0].Quantity)
	assert.Equal(t, enums.InventoryStatusDamaged, entries[0].Status)
}

func TestUpdateQuantityOnly(t *testing.T) {
	conn, _, svc := setupInventoryTest(t)
	inv := seedInventory(t, conn, 10, enums.InventoryStatusReserved)

	quantity := 7
	updated, err := svc.Update(context.Background(), inv.ID, UpdateInput{Quantity: &quantity})
	require.NoError(t, err)

	assert.Equal(t, 7, updated.Quantity)
	assert.Equal(t, "reserved", updated.Status, "status untouched when not provided")
}

func TestUpdateValidation(t *testing.T) {
	conn, _, svc := setupInventoryTest(t)
	inv := seedInventory(t, conn, 10, enums.InventoryStatusAvailable)

	_, err := svc.Update(context.Background(), inv.ID, UpdateInput{})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	bad := -1
	_, err = svc.Update(context.Background(), inv.ID, UpdateInput{Quantity: &bad})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	status := "sold_out"
	_, err = svc.Update(context.Background(), inv.ID, UpdateInput{Status: &status})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestUpdateNotFound(t *testing.T) {
	_, _, svc := setupInventoryTest(t)

	quantity := 3
	_, err := svc.Update(context.Background(), newUUID(t), UpdateInput{Quantity: &quantity})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestGetByProductID(t *testing.T) {
	conn, _, svc := setupInventoryTest(t)
	inv := seedInventory(t, conn, 5, enums.InventoryStatusAvailable)

	found, err := svc.GetByProductID(context.Background(), inv.ProductID)
	require.NoError(t, err)
	assert.Equal(t, inv.ID, found.ID)

	_, err = svc.GetByProductID(context.Background(), newUUID(t))
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestHistoryPagination(t *testing.T) {
	conn, repo, svc := setupInventoryTest(t)
	inv := seedInventory(t, conn, 25, enums.InventoryStatusAvailable)

	for i := 1; i <= 25; i++ {
		inv.Quantity = i
		_, err := repo.AppendHistory(context.Background(), inv)
		require.NoError(t, err)
	}

	page1, err := svc.History(context.Background(), inv.ID, pagination.Params{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(25), page1.Total)
	assert.Equal(t, 3, page1.TotalPages)
	require.Len(t, page1.Entries, 10)
	assert.Equal(t, 25, page1.Entries[0].Quantity, "most recent entry first")

	page3, err := svc.History(context.Background(), inv.ID, pagination.Params{Page: 3, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, page3.Entries, 5)
	assert.Equal(t, 1, page3.Entries[len(page3.Entries)-1].Quantity)

	_, err = svc.History(context.Background(), inv.ID, pagination.Params{Page: 1, PerPage: -1})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestHistoryUnknownInventory(t *testing.T) {
	_, _, svc := setupInventoryTest(t)

	_, err := svc.History(context.Background(), newUUID(t), pagination.Params{})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
