package controllers

import (
	"github.com/Shenoy-shank05/zoomoeats/pkg/resp"
	"github.com/Shenoy-shank05/zoomoeats/repository"
	"github.com/Shenoy-shank05/zoomoeats/services"

	"github.com/gin-gonic/gin"
)

type RestaurantController struct {
	Restaurants *services.RestaurantService
	Dishes      *services.DishService
}

func NewRestaurantController(rs *services.RestaurantService, ds *services.DishService) *RestaurantController {
	return &RestaurantController{Restaurants: rs, Dishes: ds}
}

// GET /restaurants?q=&area=&cuisine=
func (h *RestaurantController) List(c *gin.Context) {
	rows, err := h.Restaurants.List(repository.RestaurantFilter{
		Q:       c.Query("q"),
		Area:    c.Query("area"),
		Cuisine: c.Query("cuisine"),
	})
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, rows)
}

// GET /restaurants/:id
func (h *RestaurantController) Detail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	out, err := h.Restaurants.Detail(id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /restaurants/:id/dishes
func (h *RestaurantController) ListDishes(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	rows, err := h.Dishes.ListByRestaurant(id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, rows)
}
