package controllers

import (
	"laundrypos/pkg/resp"
	"laundrypos/services"
	"laundrypos/utils"

	"github.com/gin-gonic/gin"
)

type PricingController struct{ Svc *services.PricingService }

func NewPricingController(s *services.PricingService) *PricingController {
	return &PricingController{Svc: s}
}

// GET /admin/services
func (h *PricingController) ListServices(c *gin.Context) {
	out, err := h.Svc.ListServices(c.Request.Context())
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, out)
}

// POST /admin/services
func (h *PricingController) CreateService(c *gin.Context) {
	var req services.ServiceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := h.Svc.CreateService(c.Request.Context(), utils.CurrentSession(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.Created(c, out)
}

// PATCH /admin/services/:id
func (h *PricingController) UpdateService(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req services.ServiceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := h.Svc.UpdateService(c.Request.Context(), utils.CurrentSession(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, out)
}

// DELETE /admin/services/:id
func (h *PricingController) DeleteService(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.DeleteService(c.Request.Context(), utils.CurrentSession(c), id); err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "service deleted"})
}

// GET /admin/laundry-types
func (h *PricingController) ListLaundryTypes(c *gin.Context) {
	out, err := h.Svc.ListLaundryTypes(c.Request.Context())
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, out)
}

// POST /admin/laundry-types
func (h *PricingController) CreateLaundryType(c *gin.Context) {
	var req services.LaundryTypeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := h.Svc.CreateLaundryType(c.Request.Context(), utils.CurrentSession(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.Created(c, out)
}

// PATCH /admin/laundry-types/:id
func (h *PricingController) UpdateLaundryType(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req services.LaundryTypeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := h.Svc.UpdateLaundryType(c.Request.Context(), utils.CurrentSession(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, out)
}

// DELETE /admin/laundry-types/:id
func (h *PricingController) DeleteLaundryType(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.DeleteLaundryType(c.Request.Context(), utils.CurrentSession(c), id); err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "laundry type deleted"})
}
