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

func (a *API) TodoUpdate(c *gin.Context) {
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

	var data todoBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Malformed or invalid JSON request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	todo, err := a.Todos.Update(uint(id), data.Text, identity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyText):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     "Text can't be empty",
				"requestID": requestID,
			})
		case errors.Is(err, service.ErrTodoNotFound):
			// Same answer whether the row is missing or owned by
			// someone else
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "Todo not found or access denied",
				"requestID": requestID,
			})
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to update todo", zap.Error(err), zap.String("requestID", requestID))
		}
		return
	}

	c.JSON(http.StatusOK, todo)
}
