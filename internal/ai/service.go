package ai

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"

	"example.com/subscription-tracker/backend/internal/analytics"
	"example.com/subscription-tracker/backend/internal/history"
)

const maxGroundedOpportunities = 5

type Service struct {
	client  Client
	history *history.Store
}

// NewService создает сервис ассистента поверх AI-клиента и хранилища истории.
func NewService(client Client, hist *history.Store) *Service {
	return &Service{client: client, history: hist}
}

// Respond отвечает на вопрос пользователя, основываясь на аналитическом отчете
// и последних репликах диалога. Обе новые реплики сохраняются в историю.
func (s *Service) Respond(ctx context.Context, userID uuid.UUID, question string, report analytics.InsightsReport) (string, []byte, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", nil, errors.New("question is empty")
	}

	grounding, err := buildGrounding(report)
	if err != nil {
		return "", nil, err
	}

	messages := []Message{
		{Role: "system", Content: systemPrompt(report.Persona)},
		{Role: "system", Content: "User financial context (JSON):\n" + grounding},
	}

	for _, turn := range s.history.Recent(userID) {
		messages = append(messages, Message{Role: turn.Role, Content: turn.Content})
	}

	messages = append(messages, Message{Role: "user", Content: question})

	answer, raw, err := s.client.Chat(ctx, messages)
	if err != nil {
		return "", raw, err
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", raw, errors.New("assistant response is empty")
	}

	s.history.Append(userID, history.Turn{Role: "user", Content: question})
	s.history.Append(userID, history.Turn{Role: "assistant", Content: answer})

	return answer, raw, nil
}

func systemPrompt(persona analytics.PersonaProfile) string {
	var builder strings.Builder
	builder.WriteString("You are a personal finance assistant for a subscription tracker. ")
	builder.WriteString("Ground every answer in the provided financial context, do not invent numbers. ")
	builder.WriteString("Reply in Russian (Cyrillic). ")

	switch persona.PreferredCommunication {
	case "bullet":
		builder.WriteString("Format the answer as a short bulleted list.")
	case "conversational":
		builder.WriteString("Answer in a friendly conversational tone, one short paragraph.")
	default:
		builder.WriteString("Answer in 2-3 short sentences.")
	}

	return builder.String()
}

func buildGrounding(report analytics.InsightsReport) (string, error) {
	grounding := GroundingContext{
		Period:          report.Period,
		Currency:        report.Currency,
		MonthlySpend:    report.BudgetHealth.MonthlySpend,
		BudgetScore:     report.BudgetHealth.Score,
		BudgetTrend:     report.BudgetHealth.Trend,
		Utilization:     report.BudgetHealth.Utilization,
		PredictedAmount: report.PredictedSpending.PredictedAmount,
		PredictedTrend:  report.PredictedSpending.Trend,
		RiskLevel:       report.PredictedSpending.RiskLevel,
		Categories:      report.CategoryBreakdown,
		Persona:         report.Persona,
	}

	limit := maxGroundedOpportunities
	if len(report.SavingsOpportunities) < limit {
		limit = len(report.SavingsOpportunities)
	}
	for _, opp := range report.SavingsOpportunities[:limit] {
		grounding.TopOpportunities = append(grounding.TopOpportunities, OpportunitySummary{
			Title:            opp.Title,
			PotentialSavings: opp.PotentialSavings,
		})
	}

	for _, alert := range report.PredictiveAlerts {
		grounding.Alerts = append(grounding.Alerts, alert.Message)
	}

	payload, err := json.Marshal(grounding)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}
