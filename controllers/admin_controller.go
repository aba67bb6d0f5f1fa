package controllers

import (
	"time"

	"laundrypos/pkg/resp"
	"laundrypos/repository"
	"laundrypos/services"
	"laundrypos/utils"

	"github.com/gin-gonic/gin"
)

// AdminController serves system management: worker accounts, roles and the
// audit log.
type AdminController struct {
	Workers *services.WorkerService
	Audit   *services.AuditService
	Loc     *time.Location
}

func NewAdminController(workers *services.WorkerService, audit *services.AuditService, loc *time.Location) *AdminController {
	if loc == nil {
		loc = time.Local
	}
	return &AdminController{Workers: workers, Audit: audit, Loc: loc}
}

type StatusReq struct {
	Status string `json:"status" binding:"required"`
}

type RolesReq struct {
	Roles []string `json:"roles" binding:"required"`
}

// GET /admin/workers
func (ac *AdminController) ListWorkers(c *gin.Context) {
	out, err := ac.Workers.List(c.Request.Context())
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, out)
}

// POST /admin/workers
func (ac *AdminController) CreateWorker(c *gin.Context) {
	var req services.CreateWorkerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := ac.Workers.Create(c.Request.Context(), utils.CurrentSession(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.Created(c, out)
}

// PATCH /admin/workers/:id
func (ac *AdminController) UpdateWorker(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateWorkerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := ac.Workers.Update(c.Request.Context(), utils.CurrentSession(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, out)
}

// PATCH /admin/workers/:id/status
func (ac *AdminController) SetStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req StatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := ac.Workers.SetStatus(c.Request.Context(), utils.CurrentSession(c), id, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, out)
}

// PUT /admin/workers/:id/roles
func (ac *AdminController) ReplaceRoles(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req RolesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := ac.Workers.ReplaceRoles(c.Request.Context(), utils.CurrentSession(c), id, req.Roles)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, out)
}

// POST /admin/workers/:id/reset-password
func (ac *AdminController) ResetPassword(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	out, err := ac.Workers.ResetPassword(c.Request.Context(), utils.CurrentSession(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /admin/roles
func (ac *AdminController) ListRoles(c *gin.Context) {
	out, err := ac.Workers.ListRoles(c.Request.Context())
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /admin/audit-logs?action=&q=&from=&to=&limit=
func (ac *AdminController) AuditLogs(c *gin.Context) {
	from, err := queryDate(c, "from", ac.Loc)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	to, err := queryDate(c, "to", ac.Loc)
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if to != nil {
		next := to.AddDate(0, 0, 1)
		to = &next
	}

	out, err := ac.Audit.List(c.Request.Context(), repository.AuditFilter{
		Action: c.Query("action"),
		Search: c.Query("q"),
		From:   from,
		To:     to,
		Limit:  queryInt(c, "limit", 200),
	})
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /admin/audit-logs/actions
func (ac *AdminController) AuditActions(c *gin.Context) {
	out, err := ac.Audit.ActionTypes(c.Request.Context())
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, out)
}
