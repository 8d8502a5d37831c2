package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/podplatform/backend/internal/application/identity"
	"github.com/podplatform/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
)

// UpdatePricingRequest carries the commercial terms an admin can edit.
// Omitted fields keep their value.
type UpdatePricingRequest struct {
	DiscountPercentage    *decimal.Decimal           `json:"discount_percentage"`
	CustomPricing         map[string]decimal.Decimal `json:"custom_pricing"`
	AllowOnAccountPayment *bool                      `json:"allow_on_account_payment"`
}

// UserHandler serves the admin user management endpoints
type UserHandler struct {
	BaseHandler
	userService *identity.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *identity.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List returns a page of users, oldest first
func (h *UserHandler) List(c *gin.Context) {
	var page dto.PageRequest
	if !h.bindQuery(c, &page) {
		return
	}

	result, err := h.userService.List(c.Request.Context(), page.Offset, page.Limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Offset, result.Limit)
}

// Get returns one user
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id", "user")
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Activate lets the user sign in
func (h *UserHandler) Activate(c *gin.Context) {
	id, ok := h.pathID(c, "id", "user")
	if !ok {
		return
	}

	user, err := h.userService.Activate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Deactivate blocks the user and revokes their tokens
func (h *UserHandler) Deactivate(c *gin.Context) {
	id, ok := h.pathID(c, "id", "user")
	if !ok {
		return
	}

	user, err := h.userService.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// UpdatePricing changes the user's discount and material prices
func (h *UserHandler) UpdatePricing(c *gin.Context) {
	id, ok := h.pathID(c, "id", "user")
	if !ok {
		return
	}
	var req UpdatePricingRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdatePricing(c.Request.Context(), id, identity.UpdatePricingInput{
		DiscountPercentage:    req.DiscountPercentage,
		CustomPricing:         req.CustomPricing,
		AllowOnAccountPayment: req.AllowOnAccountPayment,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}
