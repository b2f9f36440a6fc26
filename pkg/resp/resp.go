package resp

import (
	"errors"
	"net/http"

	"github.com/Shenoy-shank05/zoomoeats/services"

	"github.com/gin-gonic/gin"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": data})
}
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"ok": true, "data": data})
}
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msg})
}
func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": msg})
}
func Forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": msg})
}

// ServerError hides the cause from the client; the request logger prints it.
func ServerError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal server error"})
}

// Error writes err with the status matching its service error kind.
func Error(c *gin.Context, err error) {
	var se *services.Error
	if !errors.As(err, &se) {
		ServerError(c, err)
		return
	}
	c.JSON(StatusOf(se.Kind), gin.H{"ok": false, "error": se.Message})
}

func StatusOf(k services.Kind) int {
	switch k {
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindInvalidState:
		return http.StatusConflict
	case services.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
