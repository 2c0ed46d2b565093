package api

import (
	"errors"
	"net/http"

	"tgtodo/web-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminIssueOneTimeToken mints an auto-login token for a user. The bot
// backend calls this and delivers the link over Telegram.
func (a *API) AdminIssueOneTimeToken(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	userID := c.Param("id")
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "User ID is missing",
			"requestID": requestID,
		})
		return
	}

	token, expires, err := a.Users.IssueOneTimeToken(userID)
	if err != nil {
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

		zap.L().Error("Failed to issue one-time token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"oneTimeToken": token,
		"expiresAt":    expires,
	})
}
