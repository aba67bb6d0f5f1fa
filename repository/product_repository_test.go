package repository

import (
	"context"
	"testing"
	"time"

	"laundrypos/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecrementStock(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	_, entries := seedItem(t, db, "Detergent", "20", 3)
	id := entries[0].ID

	require.NoError(t, repo.DecrementStock(ctx, id, 2))
	e, err := repo.GetEntry(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, e.Quantity)

	assert.ErrorIs(t, repo.DecrementStock(ctx, id, 2), ErrInsufficientQuantity)
	e, _ = repo.GetEntry(ctx, id)
	assert.Equal(t, 1, e.Quantity)

	assert.ErrorIs(t, repo.DecrementStock(ctx, 9999, 1), ErrEntryNotFound)
}

func TestListCatalogSkipsEmptyEntries(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	it, entries := seedItem(t, db, "Detergent", "20", 4, 0, 2)
	seedItem(t, db, "Softener", "15", 1)

	rows, err := repo.ListCatalog(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, entries[0].ID, rows[0].EntryID)
	assert.Equal(t, it.ID, rows[0].ItemID)
	assert.Equal(t, "Detergent", rows[0].ItemName)
	assert.True(t, rows[0].Price.Equal(it.Price))
	assert.Equal(t, 4, rows[0].Quantity)
	for _, r := range rows {
		assert.NotEqual(t, entries[1].ID, r.EntryID)
	}
}

func TestItemsAndLowStock(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	seedItem(t, db, "Detergent", "20", 4, 3)
	seedItem(t, db, "Softener", "15", 2)
	seedItem(t, db, "Bleach", "30")

	items, err := repo.ListItems(ctx, "")
	require.NoError(t, err)
	require.Len(t, items, 3)
	byName := map[string]int{}
	for _, it := range items {
		byName[it.Name] = it.TotalStock
	}
	assert.Equal(t, 7, byName["Detergent"])
	assert.Equal(t, 2, byName["Softener"])
	assert.Equal(t, 0, byName["Bleach"])

	low, err := repo.LowStock(ctx, 5, 10)
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "Bleach", low[0].Name)
	assert.Equal(t, "Softener", low[1].Name)
}

func TestExpiring(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	_, entries := seedItem(t, db, "Detergent", "20", 4, 2, 0)

	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	soon := now.AddDate(0, 0, 10)
	later := now.AddDate(0, 3, 0)
	require.NoError(t, db.Model(&entity.ProductEntry{}).Where("id = ?", entries[0].ID).Update("expires_at", soon).Error)
	require.NoError(t, db.Model(&entity.ProductEntry{}).Where("id = ?", entries[1].ID).Update("expires_at", later).Error)
	require.NoError(t, db.Model(&entity.ProductEntry{}).Where("id = ?", entries[2].ID).Update("expires_at", soon).Error)

	rows, err := repo.Expiring(ctx, now, now.AddDate(0, 1, 0))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, entries[0].ID, rows[0].EntryID)
	assert.Equal(t, 4, rows[0].Quantity)
}

func TestCreateEntryRequiresItem(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	err := repo.CreateEntry(context.Background(), &entity.ProductEntry{ProductItemID: 42, Quantity: 1, PurchasedAt: time.Now()})
	assert.Error(t, err)
}

func TestCategories(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	for _, it := range []entity.ProductItem{
		{Name: "Detergent", Category: "Detergent", Price: decimal.NewFromInt(20)},
		{Name: "Powder", Category: "Detergent", Price: decimal.NewFromInt(18)},
		{Name: "Softener", Category: "Conditioner", Price: decimal.NewFromInt(15)},
		{Name: "Hanger", Price: decimal.NewFromInt(5)},
	} {
		require.NoError(t, db.Create(&it).Error)
	}

	got, err := repo.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Conditioner", "Detergent"}, got)
}
