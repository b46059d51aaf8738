package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/subscription-tracker/backend/internal/ai"
	"example.com/subscription-tracker/backend/internal/analytics"
)

type AssistantHandler struct {
	Snapshots     *SnapshotSource
	Engine        *analytics.Engine
	Assistant     *ai.Service
	DefaultPeriod string
}

// NewAssistantHandler создает обработчик диалогового ассистента.
func NewAssistantHandler(snapshots *SnapshotSource, engine *analytics.Engine, assistant *ai.Service, defaultPeriod string) *AssistantHandler {
	if defaultPeriod == "" {
		defaultPeriod = "30d"
	}
	return &AssistantHandler{
		Snapshots:     snapshots,
		Engine:        engine,
		Assistant:     assistant,
		DefaultPeriod: defaultPeriod,
	}
}

type ChatRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
	Period  string `json:"period,omitempty"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

// Chat отвечает на вопрос пользователя, основываясь на свежем аналитическом отчете.
func (h *AssistantHandler) Chat(c echo.Context) error {
	userID, err := parseUserID(c)
	if err != nil {
		return replyError(c, err)
	}

	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	period := req.Period
	if period == "" {
		period = h.DefaultPeriod
	}

	snap, err := h.Snapshots.Load(c.Request().Context(), userID)
	if err != nil {
		return replyError(c, err)
	}

	report := h.Engine.Analyze(snap, period, time.Now())

	reply, _, err := h.Assistant.Respond(c.Request().Context(), userID, req.Message, report)
	if err != nil {
		return badGateway(c, "assistant is unavailable")
	}

	return c.JSON(http.StatusOK, ChatResponse{Reply: reply})
}
