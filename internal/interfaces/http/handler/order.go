package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/podplatform/backend/internal/application/order"
	"github.com/podplatform/backend/internal/application/production"
	"github.com/podplatform/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
)

// ProductionFileURLHeader carries the stored production file URL
const ProductionFileURLHeader = "X-Production-File-URL"

// RecipientRequest is the shipping address of a manual order
type RecipientRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Email   string `json:"email" binding:"omitempty,email"`
	Street  string `json:"street" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code" binding:"required"`
	Country string `json:"country" binding:"required"`
}

// LineItemRequest is one product line of a manual order
type LineItemRequest struct {
	SKU        string `json:"sku"`
	Title      string `json:"title"`
	Quantity   int    `json:"quantity" binding:"required,min=1"`
	Variant    string `json:"variant"`
	ImageURL   string `json:"image_url" binding:"omitempty,url"`
	Dimensions string `json:"dimensions"`
}

// CreateOrderRequest is the body of a manual order
type CreateOrderRequest struct {
	Recipient RecipientRequest  `json:"recipient"`
	Items     []LineItemRequest `json:"line_items" binding:"required,min=1,dive"`
	Amount    decimal.Decimal   `json:"amount"`
	Currency  string            `json:"currency" binding:"omitempty,len=3"`
}

// ListOrdersRequest narrows the admin order listing
type ListOrdersRequest struct {
	dto.PageRequest
	Status string `form:"status"`
}

// ShipOrderRequest carries the carrier tracking number
type ShipOrderRequest struct {
	TrackingNumber string `json:"tracking_number" binding:"required,max=100"`
}

// OrderHandler serves order endpoints for sellers and admins
type OrderHandler struct {
	BaseHandler
	orderService      *order.OrderService
	productionService *production.ProductionService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *order.OrderService, productionService *production.ProductionService) *OrderHandler {
	return &OrderHandler{
		orderService:      orderService,
		productionService: productionService,
	}
}

// Create places a manual order for the acting user
func (h *OrderHandler) Create(c *gin.Context) {
	userID, ok := h.actingUserID(c)
	if !ok {
		return
	}
	var req CreateOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	items := make([]order.LineItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, order.LineItemInput{
			SKU:        it.SKU,
			Title:      it.Title,
			Quantity:   it.Quantity,
			Variant:    it.Variant,
			ImageURL:   it.ImageURL,
			Dimensions: it.Dimensions,
		})
	}

	o, err := h.orderService.Create(c.Request.Context(), order.CreateOrderInput{
		UserID: &userID,
		Recipient: order.RecipientInput{
			Name:    req.Recipient.Name,
			Email:   req.Recipient.Email,
			Street:  req.Recipient.Street,
			City:    req.Recipient.City,
			State:   req.Recipient.State,
			ZipCode: req.Recipient.ZipCode,
			Country: req.Recipient.Country,
		},
		Items:    items,
		Amount:   req.Amount,
		Currency: req.Currency,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, o)
}

// GetOwn returns one of the acting user's orders. Admins can read any order.
func (h *OrderHandler) GetOwn(c *gin.Context) {
	id, ok := h.pathID(c, "id", "order")
	if !ok {
		return
	}

	var (
		o   *order.OrderDTO
		err error
	)
	if owner := ownerScope(c); owner != nil {
		o, err = h.orderService.GetForUser(c.Request.Context(), id, *owner)
	} else {
		o, err = h.orderService.GetByID(c.Request.Context(), id)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, o)
}

// List returns a page of orders, newest first
func (h *OrderHandler) List(c *gin.Context) {
	var req ListOrdersRequest
	if !h.bindQuery(c, &req) {
		return
	}

	result, err := h.orderService.List(c.Request.Context(), order.ListOrdersInput{
		Offset: req.Offset,
		Limit:  req.Limit,
		Status: req.Status,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Offset, result.Limit)
}

// Get returns any order
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id", "order")
	if !ok {
		return
	}

	o, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, o)
}

// Verify marks the order paid after an offline check
func (h *OrderHandler) Verify(c *gin.Context) {
	id, ok := h.pathID(c, "id", "order")
	if !ok {
		return
	}

	o, err := h.orderService.Verify(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, o)
}

// Ship records the tracking number and notifies the customer
func (h *OrderHandler) Ship(c *gin.Context) {
	id, ok := h.pathID(c, "id", "order")
	if !ok {
		return
	}
	var req ShipOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	o, err := h.orderService.Ship(c.Request.Context(), id, req.TrackingNumber)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, o)
}

// ProductionFile renders the print sheet for one line item and streams the
// PDF. The stored copy's URL is returned in X-Production-File-URL.
func (h *OrderHandler) ProductionFile(c *gin.Context) {
	id, ok := h.pathID(c, "id", "order")
	if !ok {
		return
	}
	itemIndex := 0
	if raw := c.Query("item_index"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "item_index must be an integer")
			return
		}
		itemIndex = n
	}

	file, err := h.productionService.GenerateProductionFile(c.Request.Context(), id, itemIndex)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.FileName))
	c.Header(ProductionFileURLHeader, file.URL)
	c.Data(http.StatusOK, "application/pdf", file.Content)
}
