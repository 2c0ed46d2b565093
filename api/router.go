// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	"tgtodo/web-api/auth"
	"tgtodo/web-api/db"
	"tgtodo/web-api/middleware"
	"tgtodo/web-api/security"
	"tgtodo/web-api/service"

	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

type API struct {
	DB       *gorm.DB
	Router   *gin.Engine
	Argon    *security.ArgonHash
	Tokens   *security.TokenService
	Resolver *auth.Resolver
	Users    *service.UserService
	Todos    *service.TodoService
}

func NewRouter() (*API, error) {
	d, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite database, %w", err)
	}

	makeLogger()

	return newAPI(d), nil
}

// newAPI wires every service and route on top of an already opened
// database. Split out of NewRouter so tests can run against an in-memory
// SQLite handle.
func newAPI(d *gorm.DB) *API {
	a := &API{
		DB:     d,
		Argon:  security.NewArgon(),
		Tokens: security.NewTokenService(viper.GetString("jwt.secret")),
	}

	a.Resolver = auth.NewResolver(auth.AdminConfig{
		ChatID: viper.GetString("admin.chat_id"),
		Secret: viper.GetString("admin.secret"),
	}, a.Argon)

	a.Users = service.NewUserService(d, a.Argon, a.Tokens)
	a.Todos = service.NewTodoService(d)

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     []string{viper.GetString("host.frontend_origin")},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
		middleware.NewSessionMiddleware(d, a.Tokens, a.Resolver),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	loginLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: 5,
		Burst:             10,
	})

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)
	}

	todos := main.Group("/todos", middleware.BodySizeLimiter(1<<20))
	{
		// GET /api/todos		-> Lists every todo, public
		todos.GET("", a.TodoList)

		// POST /api/todos		-> Creates a todo owned by the caller
		todos.POST("", a.TodoCreate)

		// PUT /api/todos/:id		-> Rewrites a todo's text (owner or admin)
		todos.PUT("/:id", a.TodoUpdate)

		// DELETE /api/todos/:id	-> Deletes a todo (owner or admin)
		todos.DELETE("/:id", a.TodoDelete)
	}

	users := main.Group("/users", middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/users/login 	-> Logs in a user and sets the session cookies
		users.POST("/login", loginLimiter, a.UserLogin)
	}

	admin := main.Group("/admin", a.requireAdmin)
	{
		// POST /api/admin/users/:id/one-time-token	-> Issues an auto-login token
		admin.POST("/users/:id/one-time-token", a.AdminIssueOneTimeToken)

		// POST /api/admin/users/:id/block		-> Blocks an account
		admin.POST("/users/:id/block", a.AdminBlock)

		// DELETE /api/admin/users/:id/block		-> Unblocks an account
		admin.DELETE("/users/:id/block", a.AdminUnblock)
	}

	// GET /auto-login		-> Redeems a one-time token from the bot
	router.GET("/auto-login", loginLimiter, a.UserAutoLogin)

	// GET /register		-> Sends the visitor to the registration bot
	router.GET("/register", a.UserRegister)

	return a
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	if lvl, err := zapcore.ParseLevel(viper.GetString("app.log_level")); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}
