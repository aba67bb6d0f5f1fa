package services

import (
	"context"
	"io"
	"strings"

	"laundrypos/entity"
	"laundrypos/notify"
	"laundrypos/repository"

	"github.com/gocarina/gocsv"
	"gorm.io/gorm"
)

const (
	orderLogPage   = "Order Log"
	walkInCustomer = "Walk-in Customer"
	csvDateLayout  = "2006-01-02 15:04"
)

type OrderService struct {
	DB     *gorm.DB
	Repo   *repository.OrderRepository
	Audit  *AuditService
	Events notify.Publisher
}

func NewOrderService(db *gorm.DB, repo *repository.OrderRepository, audit *AuditService, events notify.Publisher) *OrderService {
	if events == nil {
		events = notify.Nop{}
	}
	return &OrderService{DB: db, Repo: repo, Audit: audit, Events: events}
}

type OrderListOut struct {
	Items []entity.Order `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

func (s *OrderService) List(ctx context.Context, f repository.OrderFilter) (*OrderListOut, error) {
	items, total, err := s.Repo.ListOrders(ctx, f)
	if err != nil {
		return nil, err
	}
	return &OrderListOut{Items: items, Total: total, Page: f.Page, Limit: f.Limit}, nil
}

func (s *OrderService) Detail(ctx context.Context, orderID uint) (*entity.Order, error) {
	return s.Repo.GetOrder(ctx, orderID)
}

// OrderCSVRow is one line of the order log export.
type OrderCSVRow struct {
	OrderID  string `csv:"Order ID"`
	Customer string `csv:"Customer"`
	Date     string `csv:"Date"`
	Amount   string `csv:"Amount"`
	Status   string `csv:"Status"`
}

func ToCSVRows(orders []entity.Order) []*OrderCSVRow {
	rows := make([]*OrderCSVRow, 0, len(orders))
	for _, o := range orders {
		customer := strings.TrimSpace(o.CustomerName)
		if customer == "" {
			customer = walkInCustomer
		}
		rows = append(rows, &OrderCSVRow{
			OrderID:  o.ReceiptID,
			Customer: customer,
			Date:     o.CreatedAt.Format(csvDateLayout),
			Amount:   o.TotalAmount.StringFixed(2),
			Status:   o.Status,
		})
	}
	return rows
}

// ExportCSV writes every order matching f, ignoring paging.
func (s *OrderService) ExportCSV(ctx context.Context, f repository.OrderFilter, w io.Writer) error {
	f.Limit = -1
	orders, _, err := s.Repo.ListOrders(ctx, f)
	if err != nil {
		return err
	}
	return gocsv.Marshal(ToCSVRows(orders), w)
}
