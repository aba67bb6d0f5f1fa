package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Housekeeping runs the periodic jobs: audit retention purge and low stock
// alerts.
type Housekeeping struct {
	Audit             *AuditService
	Inventory         *InventoryService
	RetentionDays     int
	LowStockThreshold int

	sched *cron.Cron
}

func NewHousekeeping(audit *AuditService, inventory *InventoryService, retentionDays, lowStock int) *Housekeeping {
	return &Housekeeping{Audit: audit, Inventory: inventory, RetentionDays: retentionDays, LowStockThreshold: lowStock}
}

func (h *Housekeeping) Start(loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}
	h.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	if _, err := h.sched.AddFunc("@daily", h.PurgeAuditTask); err != nil {
		return err
	}
	if _, err := h.sched.AddFunc("0 0 8,14 * * *", h.LowStockTask); err != nil {
		return err
	}

	h.sched.Start()
	return nil
}

// Stop waits for running jobs to finish.
func (h *Housekeeping) Stop() {
	if h.sched == nil {
		return
	}
	<-h.sched.Stop().Done()
}

// PurgeAuditTask deletes audit rows past the retention window
func (h *Housekeeping) PurgeAuditTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	n, err := h.Audit.Purge(ctx, h.RetentionDays, time.Now())
	if err != nil {
		zap.L().Error("audit purge failed", zap.Error(err))
		return
	}
	if n > 0 {
		zap.L().Info("audit purge", zap.Int64("deleted", n), zap.Int("retentionDays", h.RetentionDays))
	}
}

// LowStockTask publishes a stock.low event for items at or below threshold
func (h *Housekeeping) LowStockTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	low, err := h.Inventory.CheckLowStock(ctx, h.LowStockThreshold)
	if err != nil {
		zap.L().Warn("low stock check failed", zap.Error(err))
		return
	}
	if len(low) > 0 {
		zap.L().Info("low stock", zap.Int("items", len(low)))
	}
}
