package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/podplatform/backend/internal/application/integration"
	"github.com/podplatform/backend/internal/application/order"
)

// IntegrationHandler connects marketplace shops and imports their orders
type IntegrationHandler struct {
	BaseHandler
	storeService *integration.StoreService
	orderService *order.OrderService
}

// NewIntegrationHandler creates a new integration handler
func NewIntegrationHandler(storeService *integration.StoreService, orderService *order.OrderService) *IntegrationHandler {
	return &IntegrationHandler{
		storeService: storeService,
		orderService: orderService,
	}
}

// Connect links the acting user's shop on :platform, named by ?shop_name=
func (h *IntegrationHandler) Connect(c *gin.Context) {
	userID, ok := h.actingUserID(c)
	if !ok {
		return
	}

	store, err := h.storeService.Connect(c.Request.Context(), userID, c.Param("platform"), c.Query("shop_name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, store)
}

// ListStores returns the acting user's connected shops
func (h *IntegrationHandler) ListStores(c *gin.Context) {
	userID, ok := h.actingUserID(c)
	if !ok {
		return
	}

	stores, err := h.storeService.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stores)
}

// Sync pulls the store's marketplace orders
func (h *IntegrationHandler) Sync(c *gin.Context) {
	storeID, ok := h.pathID(c, "store_id", "store")
	if !ok {
		return
	}

	result, err := h.storeService.Sync(c.Request.Context(), storeID, ownerScope(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ImportedOrders lists imported orders still in draft, newest first
func (h *IntegrationHandler) ImportedOrders(c *gin.Context) {
	orders, err := h.orderService.ListImportedDrafts(c.Request.Context(), ownerScope(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}
