package repository

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"laundrypos/configs"
	"laundrypos/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var dbSeq atomic.Int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repo_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := configs.OpenDB("sqlite", dsn)
	require.NoError(t, err)
	require.NoError(t, configs.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedItem(t *testing.T, db *gorm.DB, name, price string, qty ...int) (entity.ProductItem, []entity.ProductEntry) {
	t.Helper()
	it := entity.ProductItem{Name: name, Category: "Detergent", Price: decimal.RequireFromString(price), Weight: "60g"}
	require.NoError(t, db.Create(&it).Error)

	entries := make([]entity.ProductEntry, 0, len(qty))
	for i, q := range qty {
		e := entity.ProductEntry{
			ProductItemID: it.ID,
			Quantity:      q,
			PurchasedAt:   time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC),
		}
		require.NoError(t, db.Create(&e).Error)
		entries = append(entries, e)
	}
	return it, entries
}

func gormModelAt(at time.Time) gorm.Model {
	return gorm.Model{CreatedAt: at, UpdatedAt: at}
}
