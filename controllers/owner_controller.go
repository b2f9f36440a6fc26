package controllers

import (
	"github.com/Shenoy-shank05/zoomoeats/entity"
	"github.com/Shenoy-shank05/zoomoeats/pkg/resp"
	"github.com/Shenoy-shank05/zoomoeats/services"
	"github.com/Shenoy-shank05/zoomoeats/utils"

	"github.com/gin-gonic/gin"
)

type OwnerController struct {
	Restaurants *services.RestaurantService
	Dishes      *services.DishService
	Orders      *services.OrderService
}

func NewOwnerController(rs *services.RestaurantService, ds *services.DishService, os *services.OrderService) *OwnerController {
	return &OwnerController{Restaurants: rs, Dishes: ds, Orders: os}
}

// GET /owner/restaurants
func (h *OwnerController) ListRestaurants(c *gin.Context) {
	rows, err := h.Restaurants.ListMine(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, rows)
}

// POST /owner/restaurants
func (h *OwnerController) CreateRestaurant(c *gin.Context) {
	var in services.RestaurantInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	rest, err := h.Restaurants.Create(utils.CurrentUserID(c), in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, rest)
}

// GET /owner/restaurants/:id/orders?status=&page=&limit=
func (h *OwnerController) ListOrders(c *gin.Context) {
	restID, ok := paramID(c, "id")
	if !ok {
		return
	}
	out, err := h.Orders.ListForRestaurant(c.Request.Context(), actor(c), restID,
		c.Query("status"), queryInt(c, "page", 1), queryInt(c, "limit", 20))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// POST /owner/restaurants/:id/dishes
func (h *OwnerController) CreateDish(c *gin.Context) {
	restID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in services.DishInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	d, err := h.Dishes.Create(actor(c), restID, in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, d)
}

// PATCH /owner/dishes/:id
func (h *OwnerController) UpdateDish(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in services.DishPatch
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	d, err := h.Dishes.Update(actor(c), id, in)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, d)
}

// PATCH /owner/orders/:id/status
func (h *OwnerController) UpdateOrderStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	o, err := h.Orders.OwnerAdvance(c.Request.Context(), actor(c), id, entity.OrderStatus(body.Status))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, o)
}

// POST /owner/orders/:id/assign
func (h *OwnerController) AssignDriver(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var body struct {
		DriverID uint `json:"driverId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	o, err := h.Orders.OwnerAssignDriver(c.Request.Context(), actor(c), id, body.DriverID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, o)
}
