package handler

import (
	"github.com/gipsy-office/backend/internal/application/inventory"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryHandler handles stock listing, adjustment and supply endpoints
type InventoryHandler struct {
	BaseHandler
	service *inventory.Service
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(service *inventory.Service) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// RegisterRoutes registers inventory routes under the API group
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/inventory")
	{
		group.GET("", h.List)
		group.GET("/below-threshold", h.ListBelowThreshold)
		group.POST("/:id/adjust", h.Adjust)
		group.POST("/:id/supply", h.RecordSupply)
	}
}

// AdjustRequest is the request body for a manual stock correction
type AdjustRequest struct {
	Delta float64 `json:"delta" binding:"required"`
}

// SupplyRequest is the request body for recording a restock
type SupplyRequest struct {
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
}

// List returns all ingredients, emptiest first
func (h *InventoryHandler) List(c *gin.Context) {
	responses, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, responses)
}

// ListBelowThreshold returns ingredients that need reordering
func (h *InventoryHandler) ListBelowThreshold(c *gin.Context) {
	responses, err := h.service.ListBelowThreshold(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, responses)
}

// Adjust applies a signed stock correction to one ingredient
func (h *InventoryHandler) Adjust(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ingredient ID")
		return
	}

	var req AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.service.Adjust(c.Request.Context(), id, decimal.NewFromFloat(req.Delta))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RecordSupply credits a restock to one ingredient
func (h *InventoryHandler) RecordSupply(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ingredient ID")
		return
	}

	var req SupplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.service.RecordSupply(c.Request.Context(), id, decimal.NewFromFloat(req.Quantity))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
