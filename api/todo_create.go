package api

import (
	"errors"
	"net/http"

	"tgtodo/web-api/auth"
	"tgtodo/web-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type todoBody struct {
	Text string `json:"text"`
}

func (a *API) TodoCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	identity, ok := auth.FromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":     "Authorization required",
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

	todo, err := a.Todos.Create(data.Text, identity.ID)
	if err != nil {
		if errors.Is(err, service.ErrEmptyText) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     "Text can't be empty",
				"requestID": requestID,
			})
			return
		}

		// ErrUnknownUser included. The session middleware verified the
		// user row this request, so a miss here is not a client problem.
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create todo", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, todo)
}
