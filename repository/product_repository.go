package repository

import (
	"context"
	"errors"
	"time"

	"laundrypos/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{DB: db}
}

// CatalogRow is one sellable entry joined with its item.
type CatalogRow struct {
	EntryID     uint
	ItemID      uint
	ItemName    string
	Category    string
	Weight      string
	Price       decimal.Decimal
	Quantity    int
	PurchasedAt time.Time
	ExpiresAt   *time.Time
}

// ListCatalog returns entries that still have stock, oldest purchase first.
func (r *ProductRepository) ListCatalog(ctx context.Context) ([]CatalogRow, error) {
	var rows []CatalogRow
	err := r.DB.WithContext(ctx).Table("product_entries AS e").
		Select(`e.id AS entry_id, i.id AS item_id, i.name AS item_name, i.category, i.weight,
			i.price, e.quantity, e.purchased_at, e.expires_at`).
		Joins("JOIN product_items i ON i.id = e.product_item_id AND i.deleted_at IS NULL").
		Where("e.deleted_at IS NULL AND e.quantity > 0").
		Order("e.purchased_at ASC, e.id ASC").
		Scan(&rows).Error
	return rows, err
}

// DecrementStock subtracts qty from an entry in a single guarded statement so
// the quantity never goes negative.
func (r *ProductRepository) DecrementStock(ctx context.Context, entryID uint, qty int) error {
	res := r.DB.WithContext(ctx).Model(&entity.ProductEntry{}).
		Where("id = ? AND quantity >= ?", entryID, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 1 {
		return nil
	}

	var cnt int64
	if err := r.DB.WithContext(ctx).Model(&entity.ProductEntry{}).Where("id = ?", entryID).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt == 0 {
		return ErrEntryNotFound
	}
	return ErrInsufficientQuantity
}

// ---------------- Items ----------------

// ItemSummary is an item with the sum of its entries' quantities.
type ItemSummary struct {
	ID         uint            `json:"id"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Price      decimal.Decimal `json:"price"`
	Weight     string          `json:"weight"`
	Barcode    *string         `json:"barcode,omitempty"`
	TotalStock int             `json:"totalStock"`
}

func (r *ProductRepository) itemSummaries(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).Table("product_items AS i").
		Select("i.id, i.name, i.category, i.price, i.weight, i.barcode, COALESCE(SUM(e.quantity), 0) AS total_stock").
		Joins("LEFT JOIN product_entries e ON e.product_item_id = i.id AND e.deleted_at IS NULL").
		Where("i.deleted_at IS NULL").
		Group("i.id, i.name, i.category, i.price, i.weight, i.barcode")
}

func (r *ProductRepository) ListItems(ctx context.Context, category string) ([]ItemSummary, error) {
	q := r.itemSummaries(ctx)
	if category != "" {
		q = q.Where("i.category = ?", category)
	}
	var out []ItemSummary
	err := q.Order("i.name ASC").Scan(&out).Error
	return out, err
}

// Categories lists the distinct non-empty item categories, sorted.
func (r *ProductRepository) Categories(ctx context.Context) ([]string, error) {
	var out []string
	err := r.DB.WithContext(ctx).Model(&entity.ProductItem{}).
		Where("category <> ''").
		Distinct().
		Order("category ASC").
		Pluck("category", &out).Error
	return out, err
}

// LowStock lists items whose total stock is at or below threshold, lowest
// first.
func (r *ProductRepository) LowStock(ctx context.Context, threshold, limit int) ([]ItemSummary, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []ItemSummary
	err := r.itemSummaries(ctx).
		Having("COALESCE(SUM(e.quantity), 0) <= ?", threshold).
		Order("total_stock ASC, i.name ASC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}

func (r *ProductRepository) GetItem(ctx context.Context, id uint) (*entity.ProductItem, error) {
	var it entity.ProductItem
	if err := r.DB.WithContext(ctx).First(&it, id).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *ProductRepository) CreateItem(ctx context.Context, it *entity.ProductItem) error {
	return r.DB.WithContext(ctx).Create(it).Error
}

func (r *ProductRepository) UpdateItem(ctx context.Context, id uint, updates map[string]any) error {
	res := r.DB.WithContext(ctx).Model(&entity.ProductItem{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ---------------- Entries ----------------

func (r *ProductRepository) CreateEntry(ctx context.Context, e *entity.ProductEntry) error {
	var cnt int64
	if err := r.DB.WithContext(ctx).Model(&entity.ProductItem{}).Where("id = ?", e.ProductItemID).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt == 0 {
		return gorm.ErrRecordNotFound
	}
	return r.DB.WithContext(ctx).Create(e).Error
}

func (r *ProductRepository) ListEntries(ctx context.Context, itemID uint) ([]entity.ProductEntry, error) {
	var out []entity.ProductEntry
	err := r.DB.WithContext(ctx).
		Where("product_item_id = ?", itemID).
		Order("purchased_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *ProductRepository) GetEntry(ctx context.Context, id uint) (*entity.ProductEntry, error) {
	var e entity.ProductEntry
	err := r.DB.WithContext(ctx).First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ExpiringRow is an in-stock entry with an expiry inside the queried window.
type ExpiringRow struct {
	EntryID   uint      `json:"entryId"`
	ItemName  string    `json:"itemName"`
	Quantity  int       `json:"quantity"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (r *ProductRepository) Expiring(ctx context.Context, from, to time.Time) ([]ExpiringRow, error) {
	var out []ExpiringRow
	err := r.DB.WithContext(ctx).Table("product_entries AS e").
		Select("e.id AS entry_id, i.name AS item_name, e.quantity, e.expires_at").
		Joins("JOIN product_items i ON i.id = e.product_item_id").
		Where("e.deleted_at IS NULL AND e.quantity > 0").
		Where("e.expires_at IS NOT NULL AND e.expires_at >= ? AND e.expires_at < ?", from, to).
		Order("e.expires_at ASC").
		Scan(&out).Error
	return out, err
}
