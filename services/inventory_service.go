package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"laundrypos/checkout"
	"laundrypos/entity"
	"laundrypos/notify"
	"laundrypos/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const inventoryPage = "Inventory"

type InventoryService struct {
	Repo   *repository.ProductRepository
	Audit  *AuditService
	Events notify.Publisher
	Now    func() time.Time
}

func NewInventoryService(repo *repository.ProductRepository, audit *AuditService, events notify.Publisher) *InventoryService {
	if events == nil {
		events = notify.Nop{}
	}
	return &InventoryService{Repo: repo, Audit: audit, Events: events, Now: time.Now}
}

type ItemInput struct {
	Name     *string          `json:"name"`
	Category *string          `json:"category"`
	Price    *decimal.Decimal `json:"price"`
	Weight   *string          `json:"weight"`
	Barcode  *string          `json:"barcode"`
}

type EntryInput struct {
	ItemID          uint       `json:"itemId" binding:"required"`
	Quantity        int        `json:"quantity"`
	PurchasedAt     *time.Time `json:"purchasedAt"`
	ExpiresAt       *time.Time `json:"expiresAt"`
	Supplier        string     `json:"supplier"`
	DamagedQuantity int        `json:"damagedQuantity"`
	MissingQuantity int        `json:"missingQuantity"`
	ReceiptRef      string     `json:"receiptRef"`
}

func (in ItemInput) updates(create bool) (map[string]any, error) {
	u := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, invalid("product name is required")
		}
		u["name"] = name
	} else if create {
		return nil, invalid("product name is required")
	}
	if in.Category != nil {
		u["category"] = strings.TrimSpace(*in.Category)
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, invalid("price must not be negative")
		}
		u["price"] = *in.Price
	} else if create {
		return nil, invalid("price is required")
	}
	if in.Weight != nil {
		u["weight"] = strings.TrimSpace(*in.Weight)
	}
	if in.Barcode != nil {
		// empty barcode clears it so the unique index ignores the row
		if b := strings.TrimSpace(*in.Barcode); b != "" {
			u["barcode"] = &b
		} else {
			u["barcode"] = nil
		}
	}
	return u, nil
}

func (s *InventoryService) ListItems(ctx context.Context, category string) ([]repository.ItemSummary, error) {
	return s.Repo.ListItems(ctx, strings.TrimSpace(category))
}

func (s *InventoryService) Categories(ctx context.Context) ([]string, error) {
	return s.Repo.Categories(ctx)
}

func (s *InventoryService) CreateItem(ctx context.Context, sess checkout.Session, in ItemInput) (*entity.ProductItem, error) {
	u, err := in.updates(true)
	if err != nil {
		return nil, err
	}
	it := &entity.ProductItem{Name: u["name"].(string), Price: u["price"].(decimal.Decimal)}
	if v, ok := u["category"].(string); ok {
		it.Category = v
	}
	if v, ok := u["weight"].(string); ok {
		it.Weight = v
	}
	if v, ok := u["barcode"].(*string); ok {
		it.Barcode = v
	}
	if err := s.Repo.CreateItem(ctx, it); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, invalid("barcode already used")
		}
		return nil, err
	}
	s.Audit.Try(ctx, sess, entity.ActionAddProduct, fmt.Sprintf("Added product %q", it.Name), inventoryPage)
	return it, nil
}

func (s *InventoryService) UpdateItem(ctx context.Context, sess checkout.Session, id uint, in ItemInput) (*entity.ProductItem, error) {
	u, err := in.updates(false)
	if err != nil {
		return nil, err
	}
	if len(u) == 0 {
		return nil, invalid("nothing to update")
	}
	if err := s.Repo.UpdateItem(ctx, id, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, invalid("barcode already used")
		}
		return nil, err
	}
	it, err := s.Repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Audit.Try(ctx, sess, entity.ActionEditProduct, fmt.Sprintf("Edited product %q Information", it.Name), inventoryPage)
	return it, nil
}

func (s *InventoryService) AddEntry(ctx context.Context, sess checkout.Session, in EntryInput) (*entity.ProductEntry, error) {
	if in.Quantity <= 0 {
		return nil, invalid("quantity must be greater than zero")
	}
	if in.DamagedQuantity < 0 || in.MissingQuantity < 0 {
		return nil, invalid("damaged and missing quantities must not be negative")
	}
	purchased := s.Now()
	if in.PurchasedAt != nil {
		purchased = *in.PurchasedAt
	}
	if in.ExpiresAt != nil && in.ExpiresAt.Before(purchased) {
		return nil, invalid("expiry is before purchase date")
	}

	e := &entity.ProductEntry{
		ProductItemID:   in.ItemID,
		Quantity:        in.Quantity,
		PurchasedAt:     purchased,
		ExpiresAt:       in.ExpiresAt,
		Supplier:        strings.TrimSpace(in.Supplier),
		DamagedQuantity: in.DamagedQuantity,
		MissingQuantity: in.MissingQuantity,
		ReceiptRef:      strings.TrimSpace(in.ReceiptRef),
	}
	if err := s.Repo.CreateEntry(ctx, e); err != nil {
		return nil, err
	}
	s.Audit.Try(ctx, sess, entity.ActionAddStock, fmt.Sprintf("Added %d stock to product #%d", e.Quantity, e.ProductItemID), inventoryPage)
	return e, nil
}

func (s *InventoryService) ListEntries(ctx context.Context, itemID uint) ([]entity.ProductEntry, error) {
	if _, err := s.Repo.GetItem(ctx, itemID); err != nil {
		return nil, err
	}
	return s.Repo.ListEntries(ctx, itemID)
}

// CheckLowStock publishes a stock.low event when any item is at or below
// threshold. It returns the low items.
func (s *InventoryService) CheckLowStock(ctx context.Context, threshold int) ([]repository.ItemSummary, error) {
	low, err := s.Repo.LowStock(ctx, threshold, 50)
	if err != nil {
		return nil, err
	}
	if len(low) == 0 {
		return low, nil
	}
	payload := map[string]any{"threshold": threshold, "items": low}
	if err := s.Events.Publish(ctx, notify.NewEvent(notify.StockLow, payload)); err != nil {
		return low, fmt.Errorf("publish low stock: %w", err)
	}
	return low, nil
}
