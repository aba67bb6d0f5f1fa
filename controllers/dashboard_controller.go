package controllers

import (
	"laundrypos/pkg/resp"
	"laundrypos/services"

	"github.com/gin-gonic/gin"
)

type DashboardController struct{ Svc *services.DashboardService }

func NewDashboardController(s *services.DashboardService) *DashboardController {
	return &DashboardController{Svc: s}
}

func respond[T any](c *gin.Context, out T, err error) {
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /dashboard/summary
func (h *DashboardController) Summary(c *gin.Context) {
	out, err := h.Svc.Summary(c.Request.Context())
	respond(c, out, err)
}

// GET /dashboard/recent-sales
func (h *DashboardController) RecentSales(c *gin.Context) {
	out, err := h.Svc.RecentSales(c.Request.Context())
	respond(c, out, err)
}

// GET /dashboard/payment-methods
func (h *DashboardController) PaymentMethods(c *gin.Context) {
	out, err := h.Svc.PaymentMethods(c.Request.Context())
	respond(c, out, err)
}

// GET /dashboard/status-breakdown
func (h *DashboardController) StatusBreakdown(c *gin.Context) {
	out, err := h.Svc.StatusBreakdown(c.Request.Context())
	respond(c, out, err)
}

// GET /dashboard/low-stock?threshold=
func (h *DashboardController) LowStock(c *gin.Context) {
	out, err := h.Svc.LowStock(c.Request.Context(), queryInt(c, "threshold", 0))
	respond(c, out, err)
}

// GET /dashboard/expiring
func (h *DashboardController) Expiring(c *gin.Context) {
	out, err := h.Svc.Expiring(c.Request.Context())
	respond(c, out, err)
}

// GET /dashboard/daily-sales?days=
func (h *DashboardController) DailySales(c *gin.Context) {
	out, err := h.Svc.DailySales(c.Request.Context(), queryInt(c, "days", 30))
	respond(c, out, err)
}
