package server

import (
	"github.com/labstack/echo/v4"

	"example.com/subscription-tracker/backend/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	insightsHandler *handlers.InsightsHandler,
	assistantHandler *handlers.AssistantHandler,
	alertsHandler *handlers.AlertsHandler,
	aiRateLimiter echo.MiddlewareFunc,
) {
	e.GET("/health", handlers.Health)

	api := e.Group("/api/v1")

	users := api.Group("/users/:userId")
	users.GET("/insights", insightsHandler.Get)
	users.GET("/insights/export/json", insightsHandler.ExportJSON)
	users.GET("/insights/export/csv", insightsHandler.ExportCSV)
	users.GET("/alerts/stream", alertsHandler.Stream)

	assistant := users.Group("/assistant", aiRateLimiter)
	assistant.POST("/chat", assistantHandler.Chat)
}
