package api

import (
	"errors"
	"net/http"

	"tgtodo/web-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) AdminBlock(c *gin.Context) {
	a.setBlocked(c, true)
}

func (a *API) AdminUnblock(c *gin.Context) {
	a.setBlocked(c, false)
}

func (a *API) setBlocked(c *gin.Context, blocked bool) {
	requestID := c.MustGet("requestID").(string)

	userID := c.Param("id")
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "User ID is missing",
			"requestID": requestID,
		})
		return
	}

	if err := a.Users.SetBlocked(userID, blocked); err != nil {
		if errors.Is(err, service.ErrUnknownUser) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "User not found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update block flag", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.Status(http.StatusOK)
}
