// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"manero/config"
	"manero/internal/delivery/api/middleware"
	"manero/internal/delivery/api/router/handler"
	"manero/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const defaultMetricsPath = "/metrics"

type RouterParams struct {
	fx.In

	UserHandler     *handler.UserHandler
	TokenHandler    *handler.TokenHandler
	AuthHandler     *handler.AuthHandler
	AccountHandler  *handler.AccountHandler
	ProductHandler  *handler.ProductHandler
	CategoryHandler *handler.CategoryHandler
	AuthMiddleware  *middleware.AuthMiddleware
	RateLimiter     *middleware.RateLimiter `optional:"true"`
	Metrics         *metrics.Metrics        `optional:"true"`
	Config          *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler     *handler.UserHandler
	tokenHandler    *handler.TokenHandler
	authHandler     *handler.AuthHandler
	accountHandler  *handler.AccountHandler
	productHandler  *handler.ProductHandler
	categoryHandler *handler.CategoryHandler
	authMiddleware  *middleware.AuthMiddleware
	rateLimiter     *middleware.RateLimiter
	metrics         *metrics.Metrics
	config          *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:     params.UserHandler,
		tokenHandler:    params.TokenHandler,
		authHandler:     params.AuthHandler,
		accountHandler:  params.AccountHandler,
		productHandler:  params.ProductHandler,
		categoryHandler: params.CategoryHandler,
		authMiddleware:  params.AuthMiddleware,
		rateLimiter:     params.RateLimiter,
		metrics:         params.Metrics,
		config:          params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")
	authenticate := r.authMiddleware.Authenticate
	limit := r.rateLimiter.Limit

	// Local accounts
	users := api.Group("/users")
	{
		users.POST("/register", r.userHandler.Register, limit)
		users.POST("/login", r.userHandler.Login, limit)
		users.GET("/allusers", r.userHandler.GetAll, authenticate)
	}

	// Token issuing and rotation
	tokens := api.Group("/token", limit)
	{
		tokens.POST("/gettoken", r.tokenHandler.GetToken)
		tokens.POST("/refresh", r.tokenHandler.Refresh)
		tokens.POST("/revoke", r.tokenHandler.Revoke)
	}

	// External providers
	auth := api.Group("/auth", limit)
	{
		auth.POST("/google-auth", r.authHandler.GoogleAuth)
		auth.POST("/google-idtoken", r.authHandler.GoogleIDToken)
	}

	account := api.Group("/account", authenticate)
	{
		account.GET("/getuserinfo", r.accountHandler.GetUserInfo)
		account.GET("/user", r.accountHandler.GetUserByEmail)
	}

	// Catalog reads are public, writes need a bearer token. Static segments
	// are registered before :articleNumber.
	products := api.Group("/products")
	{
		products.GET("", r.productHandler.GetAll)
		products.GET("/byCategory/:categoryId", r.productHandler.ByCategory)
		products.GET("/search", r.productHandler.Search)
		products.GET("/searchByName", r.productHandler.SearchByName)
		products.GET("/searchByPrice", r.productHandler.SearchByPrice)
		products.GET("/:articleNumber", r.productHandler.Get)
		products.GET("/:articleNumber/qrcode", r.productHandler.QRCode)

		products.POST("", r.productHandler.Create, authenticate)
		products.PUT("/:articleNumber", r.productHandler.Update, authenticate)
		products.DELETE("/:articleNumber", r.productHandler.Delete, authenticate)
		products.PUT("/:articleNumber/image", r.productHandler.UploadImage, authenticate)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", r.categoryHandler.GetAll)
		categories.GET("/search", r.categoryHandler.Search)
		categories.GET("/:id", r.categoryHandler.Get)

		categories.POST("", r.categoryHandler.Create, authenticate)
	}
}

// RegisterMetricsRoute exposes the Prometheus registry when enabled.
func (r *router) RegisterMetricsRoute(e *echo.Echo) {
	if r.metrics == nil || r.config.Metrics == nil || !r.config.Metrics.Enabled {
		return
	}

	path := r.config.Metrics.Path
	if path == "" {
		path = defaultMetricsPath
	}
	e.GET(path, echo.WrapHandler(r.metrics.Handler()))
}
