package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/podplatform/backend/internal/application/payment"
)

// PayOrderRequest is the body of a payment attempt
type PayOrderRequest struct {
	Method       string `json:"method" binding:"required,oneof=credit_card paypal"`
	PaymentToken string `json:"payment_token" binding:"max=255"`
}

// PaymentHandler serves order payments
type PaymentHandler struct {
	BaseHandler
	paymentService *payment.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Pay charges the order. A declined charge is still a 201: the recorded
// payment carries status failed and the reason.
func (h *PaymentHandler) Pay(c *gin.Context) {
	orderID, ok := h.pathID(c, "id", "order")
	if !ok {
		return
	}
	var req PayOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	p, err := h.paymentService.PayOrder(c.Request.Context(), payment.PayOrderInput{
		OrderID: orderID,
		Method:  req.Method,
		Token:   req.PaymentToken,
		UserID:  ownerScope(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, p)
}

// List returns the order's payment attempts, oldest first
func (h *PaymentHandler) List(c *gin.Context) {
	orderID, ok := h.pathID(c, "id", "order")
	if !ok {
		return
	}

	payments, err := h.paymentService.ListPayments(c.Request.Context(), orderID, ownerScope(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payments)
}
