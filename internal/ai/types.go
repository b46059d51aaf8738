package ai

import "example.com/subscription-tracker/backend/internal/analytics"

// GroundingContext — сжатая выжимка отчета, передаваемая модели как контекст.
type GroundingContext struct {
	Period           string                             `json:"period"`
	Currency         string                             `json:"currency"`
	MonthlySpend     float64                            `json:"monthly_spend"`
	BudgetScore      int                                `json:"budget_score"`
	BudgetTrend      string                             `json:"budget_trend"`
	Utilization      *float64                           `json:"utilization,omitempty"`
	PredictedAmount  float64                            `json:"predicted_amount"`
	PredictedTrend   string                             `json:"predicted_trend"`
	RiskLevel        string                             `json:"risk_level"`
	TopOpportunities []OpportunitySummary               `json:"top_opportunities,omitempty"`
	Alerts           []string                           `json:"alerts,omitempty"`
	Categories       []analytics.CategoryBreakdownEntry `json:"categories,omitempty"`
	Persona          analytics.PersonaProfile           `json:"persona"`
}

type OpportunitySummary struct {
	Title            string  `json:"title"`
	PotentialSavings float64 `json:"potential_savings"`
}
