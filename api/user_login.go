package api

import (
	"errors"
	"net/http"

	"tgtodo/web-api/middleware"
	"tgtodo/web-api/security"
	"tgtodo/web-api/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type loginBody struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func (a *API) UserLogin(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.Username == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Username field can't be empty",
			"requestID": requestID,
		})
		return
	}

	if data.Password == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Password field can't be empty",
			"requestID": requestID,
		})
		return
	}

	session, err := a.Users.Login(data.Username, data.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Invalid credentials",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to log in user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	setSessionCookies(c, session)
	c.JSON(http.StatusOK, gin.H{
		"userID":   session.User.ID,
		"username": session.User.Username,
	})
}

func setSessionCookies(c *gin.Context, session *service.Session) {
	secure := viper.GetBool("host.ssl.enabled")

	c.SetCookie(middleware.AccessTokenCookie, session.AccessToken,
		int(security.AccessTokenTTL.Seconds()), "/", "", secure, true)
	c.SetCookie(middleware.RefreshTokenCookie, session.RefreshToken,
		int(security.RefreshTokenTTL.Seconds()), "/", "", secure, true)
}
