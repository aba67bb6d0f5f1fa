package controllers

import (
	"laundrypos/checkout"
	"laundrypos/pkg/resp"
	"laundrypos/services"
	"laundrypos/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CheckoutController drives the logged-in cashier's draft.
type CheckoutController struct {
	Svc     *services.CheckoutService
	Catalog services.CatalogSource
}

func NewCheckoutController(s *services.CheckoutService, catalog services.CatalogSource) *CheckoutController {
	return &CheckoutController{Svc: s, Catalog: catalog}
}

type SetWeightReq struct {
	Value decimal.Decimal `json:"value"`
}

type AddProductReq struct {
	EntryID uint `json:"entryId" binding:"required"`
}

func (h *CheckoutController) reply(c *gin.Context, view checkout.View, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	resp.OK(c, view)
}

// GET /checkout/draft
func (h *CheckoutController) Draft(c *gin.Context) {
	if c.Query("refresh") == "true" {
		view, err := h.Svc.Refresh(c.Request.Context(), utils.CurrentSession(c))
		h.reply(c, view, err)
		return
	}
	view, err := h.Svc.Draft(c.Request.Context(), utils.CurrentSession(c))
	h.reply(c, view, err)
}

// DELETE /checkout/draft
func (h *CheckoutController) Clear(c *gin.Context) {
	view, err := h.Svc.Clear(c.Request.Context(), utils.CurrentSession(c))
	h.reply(c, view, err)
}

// PUT /checkout/draft/weights/:typeId
func (h *CheckoutController) SetWeight(c *gin.Context) {
	id, ok := paramID(c, "typeId")
	if !ok {
		return
	}
	var req SetWeightReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	view, err := h.Svc.SetWeight(c.Request.Context(), utils.CurrentSession(c), checkout.LaundryTypeID(id), req.Value)
	h.reply(c, view, err)
}

// POST /checkout/draft/services/:serviceId
func (h *CheckoutController) SelectService(c *gin.Context) {
	id, ok := paramID(c, "serviceId")
	if !ok {
		return
	}
	view, err := h.Svc.SelectService(c.Request.Context(), utils.CurrentSession(c), checkout.ServiceID(id))
	h.reply(c, view, err)
}

// DELETE /checkout/draft/services/:serviceId
func (h *CheckoutController) DeselectService(c *gin.Context) {
	id, ok := paramID(c, "serviceId")
	if !ok {
		return
	}
	view, err := h.Svc.DeselectService(c.Request.Context(), utils.CurrentSession(c), checkout.ServiceID(id))
	h.reply(c, view, err)
}

// POST /checkout/draft/products
func (h *CheckoutController) AddProduct(c *gin.Context) {
	var req AddProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	view, err := h.Svc.AddProduct(c.Request.Context(), utils.CurrentSession(c), checkout.EntryID(req.EntryID))
	h.reply(c, view, err)
}

// DELETE /checkout/draft/products/:entryId
func (h *CheckoutController) RemoveProduct(c *gin.Context) {
	id, ok := paramID(c, "entryId")
	if !ok {
		return
	}
	view, err := h.Svc.RemoveProduct(c.Request.Context(), utils.CurrentSession(c), checkout.EntryID(id))
	h.reply(c, view, err)
}

// DELETE /checkout/draft/items/:itemId
func (h *CheckoutController) RemoveItem(c *gin.Context) {
	id, ok := paramID(c, "itemId")
	if !ok {
		return
	}
	view, err := h.Svc.RemoveItem(c.Request.Context(), utils.CurrentSession(c), checkout.ItemID(id))
	h.reply(c, view, err)
}

// POST /checkout/submit
func (h *CheckoutController) Submit(c *gin.Context) {
	var req checkout.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	res, err := h.Svc.Submit(c.Request.Context(), utils.CurrentSession(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	resp.Created(c, res)
}

// ===== Catalog (read-only, for the cashier screen) =====

// GET /catalog/services
func (h *CheckoutController) Services(c *gin.Context) {
	cat, err := h.Catalog.LoadCatalog(c.Request.Context())
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, cat.Services)
}

// GET /catalog/laundry-types
func (h *CheckoutController) LaundryTypes(c *gin.Context) {
	cat, err := h.Catalog.LoadCatalog(c.Request.Context())
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, cat.LaundryTypes)
}

// GET /catalog/products
func (h *CheckoutController) Products(c *gin.Context) {
	cat, err := h.Catalog.LoadCatalog(c.Request.Context())
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, cat.Entries)
}
