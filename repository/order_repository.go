package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"laundrypos/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

// CreateOrder inserts the order. A receipt ID collision is reported as
// ErrDuplicateReceipt so the caller can retry with a new one.
func (r *OrderRepository) CreateOrder(ctx context.Context, o *entity.Order) error {
	err := r.DB.WithContext(ctx).Create(o).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateReceipt
	}
	return err
}

func (r *OrderRepository) GetOrder(ctx context.Context, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.WithContext(ctx).First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

type OrderFilter struct {
	Status string
	Search string
	From   *time.Time
	To     *time.Time
	Page   int
	Limit  int
}

func (f OrderFilter) apply(db *gorm.DB) *gorm.DB {
	if f.Status != "" && !strings.EqualFold(f.Status, "ALL") {
		db = db.Where("status = ?", strings.ToUpper(f.Status))
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		db = db.Where("(LOWER(receipt_id) LIKE ? OR LOWER(customer_name) LIKE ?)", like, like)
	}
	if f.From != nil {
		db = db.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		db = db.Where("created_at < ?", *f.To)
	}
	return db
}

// ListOrders returns a page of orders, newest first, plus the total count.
// A Limit of -1 disables paging.
func (r *OrderRepository) ListOrders(ctx context.Context, f OrderFilter) ([]entity.Order, int64, error) {
	var total int64
	if err := f.apply(r.DB.WithContext(ctx).Model(&entity.Order{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := f.apply(r.DB.WithContext(ctx).Model(&entity.Order{})).Order("created_at DESC, id DESC")
	if f.Limit != -1 {
		if f.Page <= 0 {
			f.Page = 1
		}
		if f.Limit <= 0 || f.Limit > 200 {
			f.Limit = 20
		}
		q = q.Limit(f.Limit).Offset((f.Page - 1) * f.Limit)
	}

	var out []entity.Order
	if err := q.Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// UpdateStatusGuard moves an order between statuses only if it is still in
// from. It reports the affected row count.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to string) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

// ---------------- Reporting ----------------

type SalesTotal struct {
	Revenue decimal.Decimal
	Orders  int64
}

// CompletedSales sums COMPLETE orders created in [from, to).
func (r *OrderRepository) CompletedSales(ctx context.Context, from, to time.Time) (SalesTotal, error) {
	var out SalesTotal
	err := r.DB.WithContext(ctx).Model(&entity.Order{}).
		Select("COALESCE(SUM(total_amount), 0) AS revenue, COUNT(*) AS orders").
		Where("status = ? AND created_at >= ? AND created_at < ?", entity.OrderComplete, from, to).
		Scan(&out).Error
	return out, err
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// CountByStatus counts orders per status, optionally limited to [from, to).
func (r *OrderRepository) CountByStatus(ctx context.Context, from, to *time.Time) ([]StatusCount, error) {
	q := r.DB.WithContext(ctx).Model(&entity.Order{})
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("created_at < ?", *to)
	}
	var out []StatusCount
	err := q.Select("status, COUNT(*) AS count").
		Group("status").
		Order("status ASC").
		Scan(&out).Error
	return out, err
}

type MethodTotal struct {
	PaymentMethod string          `json:"paymentMethod"`
	Revenue       decimal.Decimal `json:"revenue"`
	Orders        int64           `json:"orders"`
}

func (r *OrderRepository) RevenueByPaymentMethod(ctx context.Context) ([]MethodTotal, error) {
	var out []MethodTotal
	err := r.DB.WithContext(ctx).Model(&entity.Order{}).
		Select("payment_method, COALESCE(SUM(total_amount), 0) AS revenue, COUNT(*) AS orders").
		Where("status <> ?", entity.OrderCancelled).
		Group("payment_method").
		Order("revenue DESC").
		Scan(&out).Error
	return out, err
}

// SaleRow is the minimum needed to bucket sales by day.
type SaleRow struct {
	CreatedAt   time.Time
	TotalAmount decimal.Decimal
}

func (r *OrderRepository) CompletedSaleRows(ctx context.Context, from, to time.Time) ([]SaleRow, error) {
	var out []SaleRow
	err := r.DB.WithContext(ctx).Model(&entity.Order{}).
		Select("created_at, total_amount").
		Where("status = ? AND created_at >= ? AND created_at < ?", entity.OrderComplete, from, to).
		Order("created_at ASC").
		Scan(&out).Error
	return out, err
}
