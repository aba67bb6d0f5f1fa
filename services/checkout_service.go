package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"laundrypos/checkout"
	"laundrypos/entity"
	"laundrypos/notify"
	"laundrypos/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	maxReceiptAttempts = 5
	decrementLimit     = 8
	publishTimeout     = 5 * time.Second
	cashierPage        = "Cashier"
)

type CatalogSource interface {
	LoadCatalog(ctx context.Context) (checkout.Catalog, error)
}

type OrderStore interface {
	CreateOrder(ctx context.Context, o *entity.Order) error
}

type StockStore interface {
	DecrementStock(ctx context.Context, entryID uint, qty int) error
}

type AuditRecorder interface {
	Record(ctx context.Context, sess checkout.Session, action, details, page string) error
}

// CheckoutService keeps one draft per worker and turns a draft into a stored
// order.
type CheckoutService struct {
	Catalog   CatalogSource
	Orders    OrderStore
	Stock     StockStore
	Audit     AuditRecorder
	Events    notify.Publisher
	Threshold decimal.Decimal
	Now       func() time.Time

	// PublishTimeout bounds the order event publish after commit.
	PublishTimeout time.Duration

	mu     sync.Mutex
	drafts map[uint]*draftSlot
}

type draftSlot struct {
	mu    sync.Mutex
	draft *checkout.Draft
}

func NewCheckoutService(catalog CatalogSource, orders OrderStore, stock StockStore, audit AuditRecorder, events notify.Publisher, threshold decimal.Decimal) *CheckoutService {
	if events == nil {
		events = notify.Nop{}
	}
	return &CheckoutService{
		Catalog:   catalog,
		Orders:    orders,
		Stock:     stock,
		Audit:     audit,
		Events:    events,
		Threshold: threshold,
		Now:       time.Now,
		drafts:    map[uint]*draftSlot{},

		PublishTimeout: publishTimeout,
	}
}

// slot returns the worker's draft, creating it from a fresh catalog on first
// use.
func (s *CheckoutService) slot(ctx context.Context, sess checkout.Session) (*draftSlot, error) {
	s.mu.Lock()
	ds, ok := s.drafts[sess.WorkerID]
	s.mu.Unlock()
	if ok {
		return ds, nil
	}

	c, err := s.Catalog.LoadCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ds, ok := s.drafts[sess.WorkerID]; ok {
		return ds, nil
	}
	ds = &draftSlot{draft: checkout.NewDraft(c)}
	s.drafts[sess.WorkerID] = ds
	return ds, nil
}

// edit runs fn against the worker's draft under its lock and returns the
// resulting view.
func (s *CheckoutService) edit(ctx context.Context, sess checkout.Session, fn func(d *checkout.Draft) error) (checkout.View, error) {
	ds, err := s.slot(ctx, sess)
	if err != nil {
		return checkout.View{}, err
	}
	ds.mu.Lock()
	defer ds.mu.Unlock()
	if err := fn(ds.draft); err != nil {
		return checkout.View{}, err
	}
	return ds.draft.View(), nil
}

func (s *CheckoutService) Draft(ctx context.Context, sess checkout.Session) (checkout.View, error) {
	return s.edit(ctx, sess, func(*checkout.Draft) error { return nil })
}

// Refresh reloads services, laundry types and stock while keeping the cart.
func (s *CheckoutService) Refresh(ctx context.Context, sess checkout.Session) (checkout.View, error) {
	c, err := s.Catalog.LoadCatalog(ctx)
	if err != nil {
		return checkout.View{}, fmt.Errorf("load catalog: %w", err)
	}
	var adjusted []checkout.LineAdjustment
	view, err := s.edit(ctx, sess, func(d *checkout.Draft) error {
		var err error
		adjusted, err = d.ReplaceCatalog(c)
		return err
	})
	if err != nil {
		return view, err
	}
	if len(adjusted) > 0 {
		zap.L().Info("cart adjusted to server stock", zap.Uint("workerId", sess.WorkerID), zap.Int("lines", len(adjusted)))
		view.Adjusted = adjusted
	}
	return view, nil
}

func (s *CheckoutService) SetWeight(ctx context.Context, sess checkout.Session, id checkout.LaundryTypeID, value decimal.Decimal) (checkout.View, error) {
	return s.edit(ctx, sess, func(d *checkout.Draft) error { return d.SetWeight(id, value) })
}

func (s *CheckoutService) SelectService(ctx context.Context, sess checkout.Session, id checkout.ServiceID) (checkout.View, error) {
	return s.edit(ctx, sess, func(d *checkout.Draft) error { return d.SelectService(id) })
}

func (s *CheckoutService) DeselectService(ctx context.Context, sess checkout.Session, id checkout.ServiceID) (checkout.View, error) {
	return s.edit(ctx, sess, func(d *checkout.Draft) error { return d.DeselectService(id) })
}

func (s *CheckoutService) AddProduct(ctx context.Context, sess checkout.Session, id checkout.EntryID) (checkout.View, error) {
	return s.edit(ctx, sess, func(d *checkout.Draft) error { return d.AddToCart(id) })
}

func (s *CheckoutService) RemoveProduct(ctx context.Context, sess checkout.Session, id checkout.EntryID) (checkout.View, error) {
	return s.edit(ctx, sess, func(d *checkout.Draft) error { return d.RemoveFromCart(id) })
}

func (s *CheckoutService) RemoveItem(ctx context.Context, sess checkout.Session, id checkout.ItemID) (checkout.View, error) {
	return s.edit(ctx, sess, func(d *checkout.Draft) error { return d.RemoveItemFromCart(id) })
}

func (s *CheckoutService) Clear(ctx context.Context, sess checkout.Session) (checkout.View, error) {
	return s.edit(ctx, sess, func(d *checkout.Draft) error { return d.Clear() })
}

// DecrementFailure is a product line whose stock could not be reduced after
// the order was stored.
type DecrementFailure struct {
	EntryID  checkout.EntryID `json:"entryId"`
	ItemName string           `json:"itemName"`
	Quantity int              `json:"quantity"`
	Error    string           `json:"error"`
}

type SubmitResult struct {
	OrderID          uint               `json:"orderId"`
	ReceiptID        string             `json:"receiptId"`
	Total            decimal.Decimal    `json:"total"`
	FailedDecrements []DecrementFailure `json:"failedDecrements"`
	Draft            checkout.View      `json:"draft"`
}

// Submit stores the worker's draft as a PENDING order. Once the order is
// stored the submission has succeeded: stock decrements, the audit row and
// the order event are best effort and only reported.
func (s *CheckoutService) Submit(ctx context.Context, sess checkout.Session, req checkout.SubmitRequest) (*SubmitResult, error) {
	ds, err := s.slot(ctx, sess)
	if err != nil {
		return nil, err
	}

	ds.mu.Lock()
	sub, err := ds.draft.BeginSubmit(req, s.Threshold)
	ds.mu.Unlock()
	if err != nil {
		return nil, err
	}

	order := buildOrder(sub, sess)
	if err := s.persist(ctx, order); err != nil {
		ds.mu.Lock()
		if ferr := ds.draft.FailSubmit(); ferr != nil {
			zap.L().Error("fail submit", zap.Error(ferr))
		}
		ds.mu.Unlock()
		return nil, err
	}

	// the order exists; finish even if the client goes away
	post := context.WithoutCancel(ctx)
	failed := s.decrementAll(post, sub.Products)

	details := fmt.Sprintf("Created order %s for %s totaling %s", order.ReceiptID, order.CustomerName, order.TotalAmount.StringFixed(2))
	if err := s.Audit.Record(post, sess, entity.ActionCreateOrder, details, cashierPage); err != nil {
		zap.L().Warn("audit record failed", zap.String("receiptId", order.ReceiptID), zap.Error(err))
	}
	pubCtx, cancel := context.WithTimeout(post, s.PublishTimeout)
	if err := s.Events.Publish(pubCtx, notify.NewEvent(notify.OrderCreated, OrderEvent(order))); err != nil {
		zap.L().Warn("publish order event failed", zap.String("receiptId", order.ReceiptID), zap.Error(err))
	}
	cancel()

	var fresh *checkout.Catalog
	if c, err := s.Catalog.LoadCatalog(post); err != nil {
		zap.L().Warn("reload catalog after submit failed", zap.Error(err))
	} else {
		fresh = &c
	}

	ds.mu.Lock()
	if err := ds.draft.CompleteSubmit(fresh); err != nil {
		zap.L().Error("complete submit", zap.Error(err))
	}
	view := ds.draft.View()
	ds.mu.Unlock()

	zap.L().Info("order submitted",
		zap.Uint("orderId", order.ID),
		zap.String("receiptId", order.ReceiptID),
		zap.String("total", order.TotalAmount.StringFixed(2)),
		zap.Int("failedDecrements", len(failed)))

	return &SubmitResult{
		OrderID:          order.ID,
		ReceiptID:        order.ReceiptID,
		Total:            order.TotalAmount,
		FailedDecrements: failed,
		Draft:            view,
	}, nil
}

// persist inserts the order, drawing a new receipt ID on collision.
func (s *CheckoutService) persist(ctx context.Context, order *entity.Order) error {
	for attempt := 0; attempt < maxReceiptAttempts; attempt++ {
		order.ReceiptID = checkout.NewReceiptID(s.Now())
		err := s.Orders.CreateOrder(ctx, order)
		if errors.Is(err, repository.ErrDuplicateReceipt) {
			zap.L().Info("receipt id collision, retrying", zap.String("receiptId", order.ReceiptID))
			continue
		}
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		return nil
	}
	return ErrReceiptExhausted
}

// decrementAll issues one decrement per product line concurrently. Failures
// are collected, never returned.
func (s *CheckoutService) decrementAll(ctx context.Context, lines []checkout.OrderProduct) []DecrementFailure {
	var (
		mu     sync.Mutex
		failed []DecrementFailure
		g      errgroup.Group
	)
	g.SetLimit(decrementLimit)

	for _, l := range lines {
		l := l
		g.Go(func() error {
			err := s.Stock.DecrementStock(ctx, uint(l.EntryID), l.Quantity)
			if err == nil {
				return nil
			}
			zap.L().Warn("stock decrement failed",
				zap.Uint("entryId", uint(l.EntryID)),
				zap.Int("quantity", l.Quantity),
				zap.Error(err))
			mu.Lock()
			failed = append(failed, DecrementFailure{
				EntryID:  l.EntryID,
				ItemName: l.ItemName,
				Quantity: l.Quantity,
				Error:    err.Error(),
			})
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(failed, func(i, j int) bool { return failed[i].EntryID < failed[j].EntryID })
	return failed
}

func buildOrder(sub checkout.Submission, sess checkout.Session) *entity.Order {
	o := &entity.Order{
		Status:        entity.OrderPending,
		TotalAmount:   sub.Total,
		PaymentMethod: sub.PaymentMethod,
		CustomerName:  sub.CustomerName,
		CreatedByID:   sess.WorkerID,
	}
	for _, svc := range sub.Services {
		line := entity.ServiceLine{
			ServiceID:    uint(svc.ServiceID),
			Name:         svc.Name,
			ServicePrice: svc.ServicePrice,
			SubTotal:     svc.SubTotal,
		}
		ids := make([]checkout.LaundryTypeID, 0, len(svc.LaundryWeights))
		for id := range svc.LaundryWeights {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		for _, id := range ids {
			w := svc.LaundryWeights[id]
			line.Weights = append(line.Weights, entity.WeightLine{
				LaundryTypeID: uint(id),
				Name:          w.Name,
				Value:         w.Value,
				Limit:         w.Limit,
				LaundryTotal:  w.LaundryTotal,
			})
		}
		o.Services = append(o.Services, line)
	}
	for _, p := range sub.Products {
		o.Products = append(o.Products, entity.ProductLine{
			EntryID:  uint(p.EntryID),
			ItemID:   uint(p.ItemID),
			ItemName: p.ItemName,
			Weight:   p.Weight,
			Price:    p.Price,
			Quantity: p.Quantity,
			SubTotal: p.SubTotal,
		})
	}
	return o
}

// OrderEvent is the payload published for order lifecycle events.
func OrderEvent(o *entity.Order) map[string]any {
	return map[string]any{
		"orderId":       o.ID,
		"receiptId":     o.ReceiptID,
		"status":        o.Status,
		"total":         o.TotalAmount,
		"paymentMethod": o.PaymentMethod,
		"customerName":  o.CustomerName,
	}
}
