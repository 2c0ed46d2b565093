package middleware

import (
	"errors"
	"net/http"

	"tgtodo/web-api/auth"
	"tgtodo/web-api/model"
	"tgtodo/web-api/security"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// NewSessionMiddleware resolves the caller's identity from the access token
// cookie. A missing or invalid token downgrades the request to anonymous,
// never to an error. A valid token still gets the live user row re-checked
// so an out-of-band block takes effect on the very next request.
func NewSessionMiddleware(d *gorm.DB, tokens *security.TokenService, resolver *auth.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		tokenStr, err := c.Cookie(AccessTokenCookie)
		if err != nil || tokenStr == "" {
			c.Next()
			return
		}

		claims, err := tokens.VerifySessionToken(tokenStr)
		if err != nil {
			ClearSessionCookies(c)

			zap.L().Debug("Dropped invalid session token", zap.Error(err), zap.String("requestID", requestID))
			c.Next()
			return
		}

		var user model.User

		err = d.Where("id = ?", claims.UserID).First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Account removed on the bot side while the token was
				// still live
				ClearSessionCookies(c)
				c.Next()
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to load session user", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if user.IsBlocked {
			ClearSessionCookies(c)

			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":     "Your account has been blocked",
				"requestID": requestID,
			})
			return
		}

		identity := resolver.Resolve(&user)

		c.Set(auth.ContextKey, identity)
		c.Set("userID", identity.ID)
		c.Next()
	}
}

// ClearSessionCookies expires both session cookies on the client.
func ClearSessionCookies(c *gin.Context) {
	secure := viper.GetBool("host.ssl.enabled")

	c.SetCookie(AccessTokenCookie, "", -1, "/", "", secure, true)
	c.SetCookie(RefreshTokenCookie, "", -1, "/", "", secure, true)
}
