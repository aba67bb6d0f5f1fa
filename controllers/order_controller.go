package controllers

import (
	"fmt"
	"time"

	"laundrypos/pkg/resp"
	"laundrypos/repository"
	"laundrypos/services"
	"laundrypos/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Svc *services.OrderService
	Loc *time.Location
}

func NewOrderController(s *services.OrderService, loc *time.Location) *OrderController {
	if loc == nil {
		loc = time.Local
	}
	return &OrderController{Svc: s, Loc: loc}
}

// filter reads ?status=&q=&from=&to=&page=&limit=. `to` is inclusive.
func (oc *OrderController) filter(c *gin.Context) (repository.OrderFilter, bool) {
	from, err := queryDate(c, "from", oc.Loc)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return repository.OrderFilter{}, false
	}
	to, err := queryDate(c, "to", oc.Loc)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return repository.OrderFilter{}, false
	}
	if to != nil {
		next := to.AddDate(0, 0, 1)
		to = &next
	}
	return repository.OrderFilter{
		Status: c.Query("status"),
		Search: c.Query("q"),
		From:   from,
		To:     to,
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 20),
	}, true
}

// GET /orders
func (oc *OrderController) List(c *gin.Context) {
	f, ok := oc.filter(c)
	if !ok {
		return
	}
	out, err := oc.Svc.List(c.Request.Context(), f)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /orders/:id
func (oc *OrderController) Detail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	o, err := oc.Svc.Detail(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, o)
}

// PATCH /orders/:id/complete
func (oc *OrderController) Complete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	o, err := oc.Svc.Complete(c.Request.Context(), utils.CurrentSession(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, o)
}

// PATCH /orders/:id/cancel
func (oc *OrderController) Cancel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	o, err := oc.Svc.Cancel(c.Request.Context(), utils.CurrentSession(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, o)
}

// GET /orders/export
func (oc *OrderController) Export(c *gin.Context) {
	f, ok := oc.filter(c)
	if !ok {
		return
	}
	name := fmt.Sprintf("order-log-%s.csv", time.Now().In(oc.Loc).Format(dateLayout))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if err := oc.Svc.ExportCSV(c.Request.Context(), f, c.Writer); err != nil {
		resp.ServerError(c, err)
	}
}
