package api

import (
	"errors"
	"net/http"
	"strconv"

	"tgtodo/web-api/auth"
	"tgtodo/web-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) TodoDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	identity, ok := auth.FromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":     "Authorization required",
			"requestID": requestID,
		})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "ID is not a valid integer",
			"requestID": requestID,
		})
		return
	}

	if err := a.Todos.Delete(uint(id), identity); err != nil {
		if errors.Is(err, service.ErrTodoNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "Todo not found or access denied",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete todo", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.Status(http.StatusOK)
}
