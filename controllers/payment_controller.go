package controllers

import (
	"github.com/Shenoy-shank05/zoomoeats/pkg/resp"
	"github.com/Shenoy-shank05/zoomoeats/services"
	"github.com/Shenoy-shank05/zoomoeats/utils"

	"github.com/gin-gonic/gin"
)

type PaymentController struct{ Svc *services.PaymentService }

func NewPaymentController(s *services.PaymentService) *PaymentController {
	return &PaymentController{Svc: s}
}

// POST /payments/intent
func (h *PaymentController) Intent(c *gin.Context) {
	var body struct {
		OrderID uint `json:"orderId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := h.Svc.Intent(c.Request.Context(), utils.CurrentUserID(c), body.OrderID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, out)
}

// POST /payments/confirm
func (h *PaymentController) Confirm(c *gin.Context) {
	var body struct {
		IntentID string `json:"intentId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	p, err := h.Svc.Confirm(c.Request.Context(), utils.CurrentUserID(c), body.IntentID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, p)
}
