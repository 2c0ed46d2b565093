package api

import (
	"net/http"

	"tgtodo/web-api/auth"

	"github.com/gin-gonic/gin"
)

// requireAdmin guards the bot-facing admin endpoints. Regular accounts get
// a plain 403, the admin check itself already happened in the session
// middleware.
func (a *API) requireAdmin(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	identity, ok := auth.FromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":     "Authorization required",
			"requestID": requestID,
		})
		return
	}

	if !identity.IsAdmin() {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":     "Admin access required",
			"requestID": requestID,
		})
		return
	}

	c.Next()
}
