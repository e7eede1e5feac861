package handler

import (
	"serving-broker/internal/adapter/http/middleware"
	"serving-broker/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Accounts       ports.AccountService
	Auth           ports.RequestAuthenticator
	Settler        ports.ResponseSettler
	Directory      ports.ProviderDirectory
	RateLimitStore ports.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1")

	accountHandler := NewAccountHandler(deps.Accounts)
	account := v1.Group("/account")
	{
		account.POST("/deposit", rl("account"), accountHandler.Deposit)
		account.POST("/withdraw", rl("account"), accountHandler.Withdraw)
		account.POST("/transfer", rl("account"), accountHandler.Transfer)
		account.POST("/retrieve", rl("account"), accountHandler.Retrieve)
		account.GET("/ledger", rl("directory"), accountHandler.Ledger)
	}

	directoryHandler := NewDirectoryHandler(deps.Directory)
	services := v1.Group("/services")
	{
		services.GET("", rl("directory"), directoryHandler.List)
		services.GET("/select", rl("directory"), directoryHandler.Select)
		services.GET("/:provider", rl("directory"), directoryHandler.Get)
	}

	requestHandler := NewRequestHandler(deps.Auth, deps.Settler, deps.Directory)
	providers := v1.Group("/providers/:provider")
	{
		providers.POST("/acknowledge", rl("account"), requestHandler.Acknowledge)
		providers.GET("/metadata", rl("directory"), requestHandler.Metadata)
		providers.POST("/headers", rl("headers"), requestHandler.Headers)
		providers.POST("/settle", rl("settle"), requestHandler.Settle)
	}
	v1.POST("/verify", rl("verify"), requestHandler.Verify)

	return r
}
