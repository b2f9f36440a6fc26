package controllers

import (
	"github.com/Shenoy-shank05/zoomoeats/pkg/resp"
	"github.com/Shenoy-shank05/zoomoeats/services"
	"github.com/Shenoy-shank05/zoomoeats/utils"

	"github.com/gin-gonic/gin"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController { return &CartController{Svc: s} }

type setItemReq struct {
	DishID              uint    `json:"dishId" binding:"required"`
	Quantity            *int    `json:"quantity" binding:"required"`
	SpecialInstructions *string `json:"specialInstructions"`
}

type updateItemReq struct {
	Quantity            *int    `json:"quantity" binding:"required"`
	SpecialInstructions *string `json:"specialInstructions"`
}

// GET /cart
func (h *CartController) Get(c *gin.Context) {
	v, err := h.Svc.GetOrCreateCart(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, v)
}

// GET /cart/summary
func (h *CartController) Summary(c *gin.Context) {
	v, err := h.Svc.GetCartSummary(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, v.Summary)
}

// POST /cart/items
func (h *CartController) SetItem(c *gin.Context) {
	var req setItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	v, err := h.Svc.SetItemQuantity(c.Request.Context(), utils.CurrentUserID(c), req.DishID, *req.Quantity, req.SpecialInstructions)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, v)
}

// PATCH /cart/items/:id
func (h *CartController) UpdateItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req updateItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := h.Svc.UpdateItem(c.Request.Context(), utils.CurrentUserID(c), id, *req.Quantity, req.SpecialInstructions)
	if err != nil {
		resp.Error(c, err)
		return
	}
	if out.Removed {
		resp.OK(c, gin.H{"message": "Item removed from cart"})
		return
	}
	resp.OK(c, out.Item)
}

// DELETE /cart/items/:id
func (h *CartController) RemoveItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.Svc.RemoveItem(c.Request.Context(), utils.CurrentUserID(c), id); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "Item removed from cart"})
}

// DELETE /cart/items
func (h *CartController) Clear(c *gin.Context) {
	if err := h.Svc.ClearCart(c.Request.Context(), utils.CurrentUserID(c)); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "Cart cleared successfully"})
}
