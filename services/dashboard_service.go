package services

import (
	"context"
	"math"
	"sort"
	"time"

	"laundrypos/entity"
	"laundrypos/repository"

	"github.com/shopspring/decimal"
)

const dayLayout = "2006-01-02"

var hundred = decimal.NewFromInt(100)

// DashboardService aggregates orders and stock for the admin dashboard. Days
// are bucketed in Loc.
type DashboardService struct {
	Orders            *repository.OrderRepository
	Products          *repository.ProductRepository
	LowStockThreshold int
	Loc               *time.Location
	Now               func() time.Time
}

func NewDashboardService(orders *repository.OrderRepository, products *repository.ProductRepository, lowStock int, loc *time.Location) *DashboardService {
	if loc == nil {
		loc = time.Local
	}
	return &DashboardService{Orders: orders, Products: products, LowStockThreshold: lowStock, Loc: loc, Now: time.Now}
}

func (s *DashboardService) startOfDay(t time.Time) time.Time {
	t = t.In(s.Loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.Loc)
}

type OrderCounts struct {
	Completed int64 `json:"completed"`
	Pending   int64 `json:"pending"`
	Cancelled int64 `json:"cancelled"`
	Total     int64 `json:"total"`
}

type Summary struct {
	TodayRevenue decimal.Decimal `json:"todayRevenue"`
	OrderCounts  OrderCounts     `json:"orderCounts"`
}

// Summary is today's COMPLETE revenue and the day's order counts.
func (s *DashboardService) Summary(ctx context.Context) (*Summary, error) {
	from := s.startOfDay(s.Now())
	to := from.AddDate(0, 0, 1)

	sales, err := s.Orders.CompletedSales(ctx, from, to)
	if err != nil {
		return nil, err
	}
	counts, err := s.Orders.CountByStatus(ctx, &from, &to)
	if err != nil {
		return nil, err
	}

	out := &Summary{TodayRevenue: sales.Revenue}
	for _, c := range counts {
		switch c.Status {
		case entity.OrderComplete:
			out.OrderCounts.Completed = c.Count
		case entity.OrderPending:
			out.OrderCounts.Pending = c.Count
		case entity.OrderCancelled:
			out.OrderCounts.Cancelled = c.Count
		}
		out.OrderCounts.Total += c.Count
	}
	return out, nil
}

type DaySales struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// RecentSales groups the last seven days of COMPLETE orders by day. Days
// without sales are left out.
func (s *DashboardService) RecentSales(ctx context.Context) ([]DaySales, error) {
	now := s.Now()
	rows, err := s.Orders.CompletedSaleRows(ctx, now.AddDate(0, 0, -7), now.Add(time.Second))
	if err != nil {
		return nil, err
	}
	byDay := map[string]decimal.Decimal{}
	for _, r := range rows {
		day := r.CreatedAt.In(s.Loc).Format(dayLayout)
		byDay[day] = byDay[day].Add(r.TotalAmount)
	}
	out := make([]DaySales, 0, len(byDay))
	for day, amt := range byDay {
		out = append(out, DaySales{Date: day, Amount: amt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (s *DashboardService) PaymentMethods(ctx context.Context) ([]repository.MethodTotal, error) {
	return s.Orders.RevenueByPaymentMethod(ctx)
}

type StatusShare struct {
	Status     string          `json:"status"`
	Count      int64           `json:"count"`
	Percentage decimal.Decimal `json:"percentage"`
}

// StatusBreakdown always reports COMPLETE, PENDING and CANCELLED, in that
// order, with their share of all orders.
func (s *DashboardService) StatusBreakdown(ctx context.Context) ([]StatusShare, error) {
	counts, err := s.Orders.CountByStatus(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	var total int64
	byStatus := map[string]int64{}
	for _, c := range counts {
		byStatus[c.Status] = c.Count
		total += c.Count
	}

	out := make([]StatusShare, 0, 3)
	for _, st := range []string{entity.OrderComplete, entity.OrderPending, entity.OrderCancelled} {
		share := StatusShare{Status: st, Count: byStatus[st], Percentage: decimal.Zero}
		if total > 0 {
			share.Percentage = decimal.NewFromInt(share.Count).Mul(hundred).
				Div(decimal.NewFromInt(total)).Round(2)
		}
		out = append(out, share)
	}
	return out, nil
}

func (s *DashboardService) LowStock(ctx context.Context, threshold int) ([]repository.ItemSummary, error) {
	if threshold <= 0 {
		threshold = s.LowStockThreshold
	}
	return s.Products.LowStock(ctx, threshold, 50)
}

type ExpiringProduct struct {
	repository.ExpiringRow
	DaysRemaining int `json:"daysRemaining"`
}

// Expiring lists in-stock entries expiring within the next month.
func (s *DashboardService) Expiring(ctx context.Context) ([]ExpiringProduct, error) {
	now := s.Now()
	rows, err := s.Products.Expiring(ctx, now, now.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}
	out := make([]ExpiringProduct, 0, len(rows))
	for _, r := range rows {
		days := int(math.Ceil(r.ExpiresAt.Sub(now).Hours() / 24))
		out = append(out, ExpiringProduct{ExpiringRow: r, DaysRemaining: days})
	}
	return out, nil
}

type DailySales struct {
	Date             string          `json:"date"`
	Revenue          decimal.Decimal `json:"revenue"`
	OrderCount       int             `json:"orderCount"`
	ChangePercentage decimal.Decimal `json:"changePercentage"`
	Increase         bool            `json:"increase"`
}

// DailySales returns one row per day for the last `days` days, oldest first,
// with the revenue change against the previous day.
func (s *DashboardService) DailySales(ctx context.Context, days int) ([]DailySales, error) {
	if days <= 0 {
		days = 30
	}
	now := s.Now()
	start := s.startOfDay(now).AddDate(0, 0, -days)

	rows, err := s.Orders.CompletedSaleRows(ctx, start, now.Add(time.Second))
	if err != nil {
		return nil, err
	}

	out := make([]DailySales, 0, days+1)
	index := map[string]int{}
	for d := start; !d.After(now); d = d.AddDate(0, 0, 1) {
		key := d.Format(dayLayout)
		index[key] = len(out)
		out = append(out, DailySales{Date: key, Revenue: decimal.Zero, ChangePercentage: decimal.Zero, Increase: true})
	}
	for _, r := range rows {
		if i, ok := index[r.CreatedAt.In(s.Loc).Format(dayLayout)]; ok {
			out[i].Revenue = out[i].Revenue.Add(r.TotalAmount)
			out[i].OrderCount++
		}
	}

	for i := 1; i < len(out); i++ {
		prev, cur := out[i-1].Revenue, out[i].Revenue
		switch {
		case prev.IsPositive():
			out[i].ChangePercentage = cur.Sub(prev).Mul(hundred).Div(prev).Round(2)
			out[i].Increase = cur.GreaterThanOrEqual(prev)
		case cur.IsPositive():
			out[i].ChangePercentage = hundred
		}
	}
	return out, nil
}
