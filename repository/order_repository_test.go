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

func newOrder(receipt, status, customer, total string, at time.Time) *entity.Order {
	return &entity.Order{
		ReceiptID:     receipt,
		Status:        status,
		TotalAmount:   decimal.RequireFromString(total),
		PaymentMethod: "Cash",
		CustomerName:  customer,
		Services: []entity.ServiceLine{{
			ServiceID: 1, Name: "Wash",
			ServicePrice: decimal.NewFromInt(55), SubTotal: decimal.NewFromInt(55),
			Weights: []entity.WeightLine{{LaundryTypeID: 1, Name: "Regular Clothes",
				Value: decimal.NewFromInt(7), Limit: decimal.NewFromInt(7), LaundryTotal: decimal.NewFromInt(55)}},
		}},
		Model: gormModelAt(at),
	}
}

func TestCreateOrderDuplicateReceipt(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.CreateOrder(ctx, newOrder("RID-01012024-001", entity.OrderPending, "Ana", "55", now)))
	err := repo.CreateOrder(ctx, newOrder("RID-01012024-001", entity.OrderPending, "Ben", "20", now))
	assert.ErrorIs(t, err, ErrDuplicateReceipt)
}

func TestOrderSnapshotsPersist(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()
	o := newOrder("RID-01012024-002", entity.OrderPending, "Ana", "55", time.Now())
	require.NoError(t, repo.CreateOrder(ctx, o))

	got, err := repo.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, got.Services, 1)
	assert.Equal(t, "Wash", got.Services[0].Name)
	require.Len(t, got.Services[0].Weights, 1)
	assert.True(t, got.Services[0].Weights[0].LaundryTotal.Equal(decimal.NewFromInt(55)))
	assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(55)))
}

func TestListOrdersFilter(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()
	day := time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.CreateOrder(ctx, newOrder("RID-03062024-001", entity.OrderComplete, "Ana Cruz", "100", day.AddDate(0, 0, -1))))
	require.NoError(t, repo.CreateOrder(ctx, newOrder("RID-03072024-002", entity.OrderPending, "Ben", "55", day)))
	require.NoError(t, repo.CreateOrder(ctx, newOrder("RID-03072024-003", entity.OrderCancelled, "Ana Reyes", "20", day.Add(time.Hour))))

	all, total, err := repo.ListOrders(ctx, OrderFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Equal(t, "RID-03072024-003", all[0].ReceiptID)

	_, total, err = repo.ListOrders(ctx, OrderFilter{Status: "pending"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	byName, _, err := repo.ListOrders(ctx, OrderFilter{Search: "ana"})
	require.NoError(t, err)
	assert.Len(t, byName, 2)

	from := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)
	ranged, _, err := repo.ListOrders(ctx, OrderFilter{From: &from, To: &to, Search: "ana"})
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, "Ana Reyes", ranged[0].CustomerName)

	page, total, err := repo.ListOrders(ctx, OrderFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, page, 1)
}

func TestUpdateStatusGuard(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()
	o := newOrder("RID-01012024-004", entity.OrderPending, "Ana", "55", time.Now())
	require.NoError(t, repo.CreateOrder(ctx, o))

	n, err := repo.UpdateStatusGuard(db, o.ID, entity.OrderPending, entity.OrderComplete)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = repo.UpdateStatusGuard(db, o.ID, entity.OrderPending, entity.OrderCancelled)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}

func TestSalesReporting(t *testing.T) {
	db := newTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()
	day := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.CreateOrder(ctx, newOrder("R1", entity.OrderComplete, "A", "100", day.Add(time.Hour))))
	require.NoError(t, repo.CreateOrder(ctx, newOrder("R2", entity.OrderComplete, "B", "55.50", day.Add(2*time.Hour))))
	require.NoError(t, repo.CreateOrder(ctx, newOrder("R3", entity.OrderPending, "C", "20", day.Add(3*time.Hour))))
	require.NoError(t, repo.CreateOrder(ctx, newOrder("R4", entity.OrderCancelled, "D", "80", day.Add(4*time.Hour))))

	sales, err := repo.CompletedSales(ctx, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.EqualValues(t, 2, sales.Orders)
	assert.True(t, sales.Revenue.Equal(decimal.RequireFromString("155.5")), sales.Revenue.String())

	statuses, err := repo.CountByStatus(ctx, nil, nil)
	require.NoError(t, err)
	assert.Len(t, statuses, 3)

	next := day.AddDate(0, 0, 1)
	statuses, err = repo.CountByStatus(ctx, &next, nil)
	require.NoError(t, err)
	assert.Empty(t, statuses)

	methods, err := repo.RevenueByPaymentMethod(ctx)
	require.NoError(t, err)
	require.Len(t, methods, 1)
	assert.EqualValues(t, 3, methods[0].Orders)

	rows, err := repo.CompletedSaleRows(ctx, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}
