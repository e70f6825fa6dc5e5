package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	custommiddleware "stocksim/internal/middleware"
)

// RouterConfig holds all dependencies for routing
type RouterConfig struct {
	Auth             *custommiddleware.Auth
	AuthHandler      *AuthHandler
	PortfolioHandler *PortfolioHandler
	TradeHandler     *TradeHandler
	QuoteHandler     *QuoteHandler
	HistoryHandler   *HistoryHandler
}

// SetupRoutes configures all HTTP routes
func SetupRoutes(e *echo.Echo, config *RouterConfig) {
	// Middleware
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			// Skip logging for the health probe to reduce noise
			return c.Request().URL.Path == "/health"
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return SuccessResponse(c, map[string]interface{}{
			"status":  "healthy",
			"service": "stocksim-api",
		})
	})

	// Public price lookup, fixed JSON shape
	e.GET("/price", config.QuoteHandler.GetPrice)

	// API group
	api := e.Group("/api")

	// Auth routes (register/login public, the rest behind auth)
	auth := api.Group("/auth")
	{
		auth.POST("/register", config.AuthHandler.Register)
		auth.POST("/login", config.AuthHandler.Login)
		auth.POST("/logout", config.AuthHandler.Logout)
		auth.POST("/password", config.AuthHandler.ChangePassword, config.Auth.Middleware)
	}

	// Portfolio routes (protected)
	portfolio := api.Group("/portfolio", config.Auth.Middleware)
	{
		portfolio.GET("", config.PortfolioHandler.GetPortfolio)
		portfolio.GET("/export.csv", config.PortfolioHandler.ExportCSV)
	}

	// Trading routes (protected)
	trade := api.Group("/trade", config.Auth.Middleware)
	{
		trade.POST("/buy", config.TradeHandler.Buy)
		trade.POST("/sell", config.TradeHandler.Sell)
	}

	// Cash routes (protected)
	cash := api.Group("/cash", config.Auth.Middleware)
	{
		cash.POST("/deposit", config.TradeHandler.Deposit)
		cash.POST("/withdraw", config.TradeHandler.Withdraw)
	}

	// Quote and history routes (protected)
	api.GET("/quote", config.QuoteHandler.GetQuote, config.Auth.Middleware)
	api.GET("/quote/:symbol/history", config.QuoteHandler.GetHistory, config.Auth.Middleware)
	api.GET("/history", config.HistoryHandler.GetHistory, config.Auth.Middleware)
	api.GET("/transactions", config.HistoryHandler.GetTransactions, config.Auth.Middleware)
}
