package controllers

import (
	"strings"

	"github.com/Shenoy-shank05/zoomoeats/pkg/resp"
	"github.com/Shenoy-shank05/zoomoeats/services"
	"github.com/Shenoy-shank05/zoomoeats/utils"

	"github.com/gin-gonic/gin"
)

const idempotencyHeader = "Idempotency-Key"

type OrderController struct{ Svc *services.OrderService }

func NewOrderController(s *services.OrderService) *OrderController { return &OrderController{Svc: s} }

// POST /orders
func (h *OrderController) Create(c *gin.Context) {
	var in services.CreateOrderInput
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&in); err != nil {
			resp.BadRequest(c, err.Error())
			return
		}
	}
	in.IdempotencyKey = strings.TrimSpace(c.GetHeader(idempotencyHeader))
	if len(in.IdempotencyKey) > 128 {
		resp.BadRequest(c, idempotencyHeader+" is too long")
		return
	}

	out, err := h.Svc.CreateOrderFromCart(c.Request.Context(), utils.CurrentUserID(c), in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, out)
}

// GET /orders/mine
func (h *OrderController) ListMine(c *gin.Context) {
	rows, err := h.Svc.ListMine(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, rows)
}

// GET /orders/:id
func (h *OrderController) Detail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	out, err := h.Svc.DetailForUser(c.Request.Context(), utils.CurrentUserID(c), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// POST /orders/:id/cancel
func (h *OrderController) Cancel(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	o, err := h.Svc.CustomerCancel(c.Request.Context(), utils.CurrentUserID(c), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, o)
}
