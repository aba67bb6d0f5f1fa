package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"laundrypos/checkout"
	"laundrypos/entity"
	"laundrypos/notify"
	"laundrypos/repository"
	"laundrypos/ws"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	catalog checkout.Catalog
	err     error
	calls   int
}

func (f *fakeCatalog) LoadCatalog(context.Context) (checkout.Catalog, error) {
	f.calls++
	return f.catalog, f.err
}

type fakeOrders struct {
	mu         sync.Mutex
	created    []*entity.Order
	duplicates int
	err        error
	block      chan struct{}
	entered    chan struct{}
}

func (f *fakeOrders) CreateOrder(_ context.Context, o *entity.Order) error {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.duplicates > 0 {
		f.duplicates--
		return repository.ErrDuplicateReceipt
	}
	if f.err != nil {
		return f.err
	}
	o.ID = uint(len(f.created) + 1)
	f.created = append(f.created, o)
	return nil
}

type fakeStock struct {
	mu    sync.Mutex
	fail  map[uint]error
	calls map[uint]int
}

func (f *fakeStock) DecrementStock(_ context.Context, entryID uint, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[uint]int{}
	}
	f.calls[entryID] += qty
	return f.fail[entryID]
}

type fakeAudit struct {
	mu      sync.Mutex
	actions []string
}

func (f *fakeAudit) Record(_ context.Context, _ checkout.Session, action, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions = append(f.actions, action)
	return nil
}

type fakeEvents struct {
	mu     sync.Mutex
	events []notify.Event
}

func (f *fakeEvents) Publish(_ context.Context, e notify.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
	return nil
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func serviceCatalog() checkout.Catalog {
	return checkout.Catalog{
		Services: []checkout.Service{
			{ID: 1, Name: "Wash", PricePerLimit: d("55")},
			{ID: 2, Name: "Full Service", PricePerLimit: d("180")},
		},
		LaundryTypes: []checkout.LaundryType{{ID: 1, Name: "Regular Clothes", Limit: d("7"), Unit: "kg"}},
		Entries: []checkout.StockEntry{
			{EntryID: 10, ItemID: 100, ItemName: "Detergent", UnitPrice: d("20"), Remaining: 5},
			{EntryID: 11, ItemID: 101, ItemName: "Softener", UnitPrice: d("15"), Remaining: 5},
			{EntryID: 12, ItemID: 102, ItemName: "Dryer rack", UnitPrice: d("10500"), Remaining: 1},
		},
	}
}

type harness struct {
	svc     *CheckoutService
	catalog *fakeCatalog
	orders  *fakeOrders
	stock   *fakeStock
	audit   *fakeAudit
	events  *fakeEvents
}

func newHarness() *harness {
	h := &harness{
		catalog: &fakeCatalog{catalog: serviceCatalog()},
		orders:  &fakeOrders{},
		stock:   &fakeStock{},
		audit:   &fakeAudit{},
		events:  &fakeEvents{},
	}
	h.svc = NewCheckoutService(h.catalog, h.orders, h.stock, h.audit, h.events, checkout.DefaultHighValueThreshold)
	h.svc.Now = func() time.Time { return time.Date(2024, 3, 7, 9, 0, 0, 0, time.UTC) }
	return h
}

var cashier = checkout.Session{WorkerID: 1, Email: "ana@x.io", Name: "Ana", Roles: []string{entity.RoleCashier}}

var cashReq = checkout.SubmitRequest{PaymentMethod: "Cash", CustomerName: "Walk-in"}

func TestSubmitWithPartialDecrementFailure(t *testing.T) {
	h := newHarness()
	h.stock.fail = map[uint]error{11: errors.New("entry locked")}
	ctx := context.Background()

	_, err := h.svc.AddProduct(ctx, cashier, 10)
	require.NoError(t, err)
	_, err = h.svc.AddProduct(ctx, cashier, 10)
	require.NoError(t, err)
	_, err = h.svc.AddProduct(ctx, cashier, 11)
	require.NoError(t, err)

	res, err := h.svc.Submit(ctx, cashier, cashReq)
	require.NoError(t, err)
	assert.True(t, res.Total.Equal(d("55")))
	assert.Regexp(t, `^RID-03072024-\d{3,9}$`, res.ReceiptID)

	require.Len(t, res.FailedDecrements, 1)
	assert.Equal(t, checkout.EntryID(11), res.FailedDecrements[0].EntryID)
	assert.Equal(t, "entry locked", res.FailedDecrements[0].Error)
	assert.Equal(t, 2, h.stock.calls[10])
	assert.Equal(t, 1, h.stock.calls[11])

	assert.Equal(t, checkout.StateSubmitted, res.Draft.State)
	assert.Empty(t, res.Draft.Products)
	assert.Equal(t, []string{entity.ActionCreateOrder}, h.audit.actions)
	require.Len(t, h.events.events, 1)
	assert.Equal(t, notify.OrderCreated, h.events.events[0].Type)

	require.Len(t, h.orders.created, 1)
	o := h.orders.created[0]
	assert.Equal(t, entity.OrderPending, o.Status)
	assert.Equal(t, uint(1), o.CreatedByID)
	require.Len(t, o.Products, 2)
	assert.Equal(t, 2, o.Products[0].Quantity)
	assert.True(t, o.Products[0].Price.Equal(d("20")))
}

func TestSubmitPersistsServiceSnapshot(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	_, err := h.svc.SelectService(ctx, cashier, 1)
	require.NoError(t, err)
	view, err := h.svc.SetWeight(ctx, cashier, 1, d("7.1"))
	require.NoError(t, err)
	assert.True(t, view.Total.Equal(d("110")))

	_, err = h.svc.Submit(ctx, cashier, cashReq)
	require.NoError(t, err)

	o := h.orders.created[0]
	require.Len(t, o.Services, 1)
	assert.Equal(t, "Wash", o.Services[0].Name)
	require.Len(t, o.Services[0].Weights, 1)
	assert.True(t, o.Services[0].Weights[0].LaundryTotal.Equal(d("110")))
	assert.Empty(t, h.stock.calls)
}

func TestSubmitFailureKeepsDraft(t *testing.T) {
	h := newHarness()
	h.orders.err = errors.New("db down")
	ctx := context.Background()

	_, err := h.svc.AddProduct(ctx, cashier, 10)
	require.NoError(t, err)

	_, err = h.svc.Submit(ctx, cashier, cashReq)
	require.Error(t, err)

	view, err := h.svc.Draft(ctx, cashier)
	require.NoError(t, err)
	assert.Equal(t, checkout.StateBuilding, view.State)
	assert.Len(t, view.Products, 1)
	assert.Empty(t, h.stock.calls)
	assert.Empty(t, h.audit.actions)
}

func TestSubmitRetriesReceiptCollision(t *testing.T) {
	h := newHarness()
	h.orders.duplicates = 2
	ctx := context.Background()

	_, err := h.svc.SelectService(ctx, cashier, 2)
	require.NoError(t, err)
	res, err := h.svc.Submit(ctx, cashier, cashReq)
	require.NoError(t, err)
	assert.True(t, res.Total.Equal(d("180")))

	h.orders.duplicates = maxReceiptAttempts
	_, err = h.svc.SelectService(ctx, cashier, 2)
	require.NoError(t, err)
	_, err = h.svc.Submit(ctx, cashier, cashReq)
	assert.ErrorIs(t, err, ErrReceiptExhausted)
}

func TestSubmitGuardsMakeNoCalls(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	_, err := h.svc.Submit(ctx, cashier, cashReq)
	assert.ErrorIs(t, err, checkout.ErrEmptyDraft)

	_, err = h.svc.AddProduct(ctx, cashier, 12)
	require.NoError(t, err)
	_, err = h.svc.Submit(ctx, cashier, cashReq)
	var ce *checkout.ConfirmationError
	require.ErrorAs(t, err, &ce)
	assert.True(t, ce.Total.Equal(d("10500")))
	assert.Empty(t, h.orders.created)

	req := cashReq
	req.ConfirmHighValue = true
	_, err = h.svc.Submit(ctx, cashier, req)
	require.NoError(t, err)
}

func TestEditsRejectedWhileSubmitting(t *testing.T) {
	h := newHarness()
	h.orders.block = make(chan struct{})
	h.orders.entered = make(chan struct{}, 1)
	ctx := context.Background()

	_, err := h.svc.AddProduct(ctx, cashier, 10)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := h.svc.Submit(ctx, cashier, cashReq)
		done <- err
	}()
	<-h.orders.entered

	_, err = h.svc.AddProduct(ctx, cashier, 11)
	assert.ErrorIs(t, err, checkout.ErrSubmissionInProgress)
	_, err = h.svc.Submit(ctx, cashier, cashReq)
	assert.ErrorIs(t, err, checkout.ErrSubmissionInProgress)

	close(h.orders.block)
	require.NoError(t, <-done)
}

func TestDraftsArePerWorker(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	other := checkout.Session{WorkerID: 2, Email: "ben@x.io"}

	_, err := h.svc.AddProduct(ctx, cashier, 10)
	require.NoError(t, err)
	view, err := h.svc.Draft(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, view.Products)
	assert.Equal(t, checkout.StateEmpty, view.State)
}

func TestRefreshKeepsCart(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	_, err := h.svc.AddProduct(ctx, cashier, 10)
	require.NoError(t, err)

	h.catalog.catalog.Entries[0].Remaining = 3
	view, err := h.svc.Refresh(ctx, cashier)
	require.NoError(t, err)
	require.Len(t, view.Products, 1)
	for _, e := range view.Stock {
		if e.EntryID == 10 {
			assert.Equal(t, 2, e.Remaining)
		}
	}
}

func TestCatalogFailureOnFirstUse(t *testing.T) {
	h := newHarness()
	h.catalog.err = errors.New("no db")
	_, err := h.svc.Draft(context.Background(), cashier)
	assert.Error(t, err)
}

type stalledEvents struct{}

func (stalledEvents) Publish(ctx context.Context, _ notify.Event) error {
	<-ctx.Done()
	return ctx.Err()
}

func submitWithin(t *testing.T, svc *CheckoutService, limit time.Duration) *SubmitResult {
	t.Helper()
	type result struct {
		res *SubmitResult
		err error
	}
	done := make(chan result, 1)
	go func() {
		res, err := svc.Submit(context.Background(), cashier, cashReq)
		done <- result{res, err}
	}()
	select {
	case r := <-done:
		require.NoError(t, r.err)
		return r.res
	case <-time.After(limit):
		t.Fatal("submit did not return")
		return nil
	}
}

func TestSubmitNotHeldByStalledPublisher(t *testing.T) {
	h := newHarness()
	h.svc.Events = stalledEvents{}
	h.svc.PublishTimeout = 20 * time.Millisecond
	ctx := context.Background()
	_, err := h.svc.AddProduct(ctx, cashier, 10)
	require.NoError(t, err)

	res := submitWithin(t, h.svc, 2*time.Second)
	assert.Equal(t, checkout.StateSubmitted, res.Draft.State)
	require.Len(t, h.orders.created, 1)

	view, err := h.svc.AddProduct(ctx, cashier, 11)
	require.NoError(t, err)
	assert.Equal(t, checkout.StateBuilding, view.State)
}

func TestSubmitWithFullOrderFeed(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	// a feed whose hub loop never drains
	feed := ws.NewOrderFeed()
	for i := 0; ; i++ {
		if err := feed.Publish(ctx, notify.NewEvent(notify.OrderCreated, i)); err != nil {
			require.ErrorIs(t, err, ws.ErrFeedBusy)
			break
		}
	}
	h.svc.Events = notify.Fanout{feed, h.events}

	_, err := h.svc.AddProduct(ctx, cashier, 10)
	require.NoError(t, err)
	res := submitWithin(t, h.svc, 2*time.Second)
	assert.Equal(t, checkout.StateSubmitted, res.Draft.State)
	require.Len(t, h.events.events, 1)

	_, err = h.svc.AddProduct(ctx, cashier, 10)
	assert.NoError(t, err)
}

func TestRefreshDropsSoldOutLine(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	_, err := h.svc.AddProduct(ctx, cashier, 10)
	require.NoError(t, err)
	_, err = h.svc.AddProduct(ctx, cashier, 11)
	require.NoError(t, err)

	// entry 10 sold out at another counter
	h.catalog.catalog.Entries = h.catalog.catalog.Entries[1:]
	view, err := h.svc.Refresh(ctx, cashier)
	require.NoError(t, err)

	require.Len(t, view.Adjusted, 1)
	assert.Equal(t, checkout.EntryID(10), view.Adjusted[0].EntryID)
	assert.Equal(t, 0, view.Adjusted[0].Now)
	require.Len(t, view.Products, 1)
	assert.Equal(t, checkout.EntryID(11), view.Products[0].EntryID)

	_, err = h.svc.Submit(ctx, cashier, cashReq)
	require.NoError(t, err)
	assert.Zero(t, h.stock.calls[10])
	assert.Equal(t, 1, h.stock.calls[11])
}
