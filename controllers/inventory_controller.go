package controllers

import (
	"laundrypos/pkg/resp"
	"laundrypos/services"
	"laundrypos/utils"

	"github.com/gin-gonic/gin"
)

type InventoryController struct{ Svc *services.InventoryService }

func NewInventoryController(s *services.InventoryService) *InventoryController {
	return &InventoryController{Svc: s}
}

// GET /inventory/categories
func (h *InventoryController) Categories(c *gin.Context) {
	out, err := h.Svc.Categories(c.Request.Context())
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /inventory/items?category=
func (h *InventoryController) ListItems(c *gin.Context) {
	out, err := h.Svc.ListItems(c.Request.Context(), c.Query("category"))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, out)
}

// POST /inventory/items
func (h *InventoryController) CreateItem(c *gin.Context) {
	var req services.ItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := h.Svc.CreateItem(c.Request.Context(), utils.CurrentSession(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.Created(c, out)
}

// PATCH /inventory/items/:id
func (h *InventoryController) UpdateItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req services.ItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := h.Svc.UpdateItem(c.Request.Context(), utils.CurrentSession(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /inventory/items/:id/entries
func (h *InventoryController) ListEntries(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	out, err := h.Svc.ListEntries(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, out)
}

// POST /inventory/entries
func (h *InventoryController) AddEntry(c *gin.Context) {
	var req services.EntryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := h.Svc.AddEntry(c.Request.Context(), utils.CurrentSession(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.Created(c, out)
}
