package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/subscription-tracker/backend/internal/alerts"
	"example.com/subscription-tracker/backend/internal/analytics"
)

type InsightsHandler struct {
	Snapshots     *SnapshotSource
	Engine        *analytics.Engine
	Hub           *alerts.Hub
	DefaultPeriod string
}

// NewInsightsHandler создает обработчик аналитических отчетов.
func NewInsightsHandler(snapshots *SnapshotSource, engine *analytics.Engine, hub *alerts.Hub, defaultPeriod string) *InsightsHandler {
	if defaultPeriod == "" {
		defaultPeriod = "30d"
	}
	return &InsightsHandler{
		Snapshots:     snapshots,
		Engine:        engine,
		Hub:           hub,
		DefaultPeriod: defaultPeriod,
	}
}

// Get строит полный отчет за период и публикует оповещения в SSE-хаб.
func (h *InsightsHandler) Get(c echo.Context) error {
	userID, err := parseUserID(c)
	if err != nil {
		return replyError(c, err)
	}

	snap, err := h.Snapshots.Load(c.Request().Context(), userID)
	if err != nil {
		return replyError(c, err)
	}

	report := h.Engine.Analyze(snap, h.period(c), time.Now())

	if h.Hub != nil && len(report.PredictiveAlerts) > 0 {
		h.Hub.PublishPredictive(userID, report.PredictiveAlerts)
	}

	return c.JSON(http.StatusOK, report)
}

func (h *InsightsHandler) period(c echo.Context) string {
	period := c.QueryParam("period")
	if period == "" {
		return h.DefaultPeriod
	}
	return period
}
