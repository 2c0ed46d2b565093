package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

// UserRegister sends the visitor to the Telegram bot. Accounts are created
// there, never through this server.
func (a *API) UserRegister(c *gin.Context) {
	c.Redirect(http.StatusFound, "https://t.me/"+viper.GetString("bot.name"))
}
