package controllers

import (
	"strconv"

	"github.com/Shenoy-shank05/zoomoeats/pkg/resp"
	"github.com/Shenoy-shank05/zoomoeats/services"
	"github.com/Shenoy-shank05/zoomoeats/utils"

	"github.com/gin-gonic/gin"
)

// paramID reads a positive numeric path parameter and answers 400 otherwise.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		resp.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func actor(c *gin.Context) services.Actor {
	return services.Actor{UserID: utils.CurrentUserID(c), Role: utils.CurrentRole(c)}
}

func queryInt(c *gin.Context, key string, def int) int {
	if v, err := strconv.Atoi(c.Query(key)); err == nil {
		return v
	}
	return def
}
