package api

import (
	"errors"
	"net/http"

	"tgtodo/web-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserAutoLogin redeems a one-time token minted by the bot. The token dies
// on first use, a replayed link lands on the same 401 as a bogus one.
func (a *API) UserAutoLogin(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	token := c.Query("oneTimeToken")
	if token == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Token is missing",
			"requestID": requestID,
		})
		return
	}

	session, err := a.Users.RedeemOneTimeToken(token)
	if err != nil {
		if errors.Is(err, service.ErrInvalidOneTimeToken) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Invalid or expired token",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to redeem one-time token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	setSessionCookies(c, session)
	c.Redirect(http.StatusFound, "/")
}
