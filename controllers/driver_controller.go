package controllers

import (
	"github.com/Shenoy-shank05/zoomoeats/pkg/resp"
	"github.com/Shenoy-shank05/zoomoeats/services"
	"github.com/Shenoy-shank05/zoomoeats/utils"

	"github.com/gin-gonic/gin"
)

type DriverController struct {
	Drivers *services.DriverService
	Orders  *services.OrderService
}

func NewDriverController(ds *services.DriverService, os *services.OrderService) *DriverController {
	return &DriverController{Drivers: ds, Orders: os}
}

// GET /driver/profile
func (h *DriverController) Profile(c *gin.Context) {
	d, err := h.Drivers.Profile(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, d)
}

// PUT /driver/profile
func (h *DriverController) UpsertProfile(c *gin.Context) {
	var in services.DriverProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	d, err := h.Drivers.UpsertProfile(c.Request.Context(), utils.CurrentUserID(c), in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, d)
}

// PATCH /driver/availability
func (h *DriverController) SetAvailability(c *gin.Context) {
	var body struct {
		Available *bool `json:"available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	d, err := h.Drivers.SetAvailability(c.Request.Context(), utils.CurrentUserID(c), *body.Available)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, d)
}

// GET /driver/orders/available
func (h *DriverController) Available(c *gin.Context) {
	rows, err := h.Orders.ListReadyForPickup(c.Request.Context(), queryInt(c, "limit", 20))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, rows)
}

// POST /driver/orders/:id/accept
func (h *DriverController) Accept(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	o, err := h.Orders.DriverAccept(c.Request.Context(), utils.CurrentUserID(c), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, o)
}

// POST /driver/orders/:id/deliver
func (h *DriverController) Deliver(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	o, err := h.Orders.DriverDeliver(c.Request.Context(), utils.CurrentUserID(c), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, o)
}
