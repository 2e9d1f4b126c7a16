package handler

import (
	"net/http"

	"github.com/gipsy-office/backend/internal/application/sales"
	domainsales "github.com/gipsy-office/backend/internal/domain/sales"
	"github.com/gipsy-office/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SalesHandler handles sale commit, undo and preview endpoints
type SalesHandler struct {
	BaseHandler
	service *sales.Service
}

// NewSalesHandler creates a new SalesHandler
func NewSalesHandler(service *sales.Service) *SalesHandler {
	return &SalesHandler{service: service}
}

// RegisterRoutes registers sale routes under the API group
func (h *SalesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/sales")
	{
		group.POST("", h.Sell)
		group.POST("/preview", h.Preview)
		group.POST("/undo-last", h.UndoLast)
		group.GET("", h.List)
	}
}

// CartItemRequest is one cart line in a sale or preview request
type CartItemRequest struct {
	ProductID string   `json:"product_id" binding:"required,uuid"`
	VolumeML  int      `json:"volume_ml" binding:"required,min=1"`
	Quantity  int      `json:"quantity" binding:"required,min=1"`
	AddOns    []string `json:"addons"`
}

// SellRequest is the request body for committing or previewing a sale
type SellRequest struct {
	Items []CartItemRequest `json:"items"`
}

// toCart converts request items into domain cart items
func (r *SellRequest) toCart() ([]domainsales.CartItem, error) {
	cart := make([]domainsales.CartItem, 0, len(r.Items))
	for _, item := range r.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, err
		}
		cart = append(cart, domainsales.CartItem{
			ProductID:  productID,
			VolumeML:   item.VolumeML,
			Quantity:   item.Quantity,
			AddOnCodes: item.AddOns,
		})
	}
	return cart, nil
}

// Sell commits a sale. A rejected sale is still a 200: the rejection is the
// documented outcome of the request, carried in the result body.
func (h *SalesHandler) Sell(c *gin.Context) {
	var req SellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cart, err := req.toCart()
	if err != nil {
		h.BadRequest(c, "Invalid product ID: "+err.Error())
		return
	}

	result, err := h.service.Sell(c.Request.Context(), cart)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if result.Committed {
		h.Created(c, result)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// Preview computes the consumption a cart would cause without committing
func (h *SalesHandler) Preview(c *gin.Context) {
	var req SellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cart, err := req.toCart()
	if err != nil {
		h.BadRequest(c, "Invalid product ID: "+err.Error())
		return
	}

	result, err := h.service.PreviewConsumption(c.Request.Context(), cart)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// UndoLast reverses the most recent sale
func (h *SalesHandler) UndoLast(c *gin.Context) {
	result, err := h.service.UndoLastSale(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// List returns sales inside a date range, oldest first
func (h *SalesHandler) List(c *gin.Context) {
	from, to, err := parseDateRange(c)
	if err != nil {
		h.BadRequest(c, "Invalid date range: "+err.Error())
		return
	}

	records, err := h.service.SalesBetween(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, records)
}
