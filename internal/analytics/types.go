package analytics

import (
	"time"

	"github.com/google/uuid"

	"example.com/subscription-tracker/backend/internal/models"
)

// Snapshot — неизменяемый срез данных пользователя, передаваемый движку.
type Snapshot struct {
	Subscriptions []models.SubscriptionRecord
	Bills         []models.BillRecord
	Budget        *models.BudgetRecord
}

type TimelinePoint struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

type AnomalyRecord struct {
	Date         time.Time `json:"date"`
	Amount       float64   `json:"amount"`
	DeviationPct float64   `json:"deviation_pct"`
	Type         string    `json:"type"`
}

type SavingsOpportunity struct {
	Type             string  `json:"type"`
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	PotentialSavings float64 `json:"potential_savings"`
}

type BudgetHealth struct {
	Score        int      `json:"score"`
	Utilization  *float64 `json:"utilization,omitempty"`
	MonthlySpend float64  `json:"monthly_spend"`
	Limit        *float64 `json:"limit,omitempty"`
	Trend        string   `json:"trend"`
	Currency     string   `json:"currency"`
}

type PredictedSpending struct {
	PredictedAmount float64  `json:"predicted_amount"`
	Confidence      float64  `json:"confidence"`
	Trend           string   `json:"trend"`
	Factors         []string `json:"factors"`
	RiskLevel       string   `json:"risk_level"`
	AverageMonthly  float64  `json:"average_monthly"`
	LastMonth       float64  `json:"last_month"`
}

type RenewalMember struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	RenewalDate time.Time `json:"renewal_date"`
}

type RenewalCluster struct {
	Week    int             `json:"week"`
	Label   string          `json:"label"`
	Count   int             `json:"count"`
	Members []RenewalMember `json:"members"`
}

type RenewalClustering struct {
	UpcomingClusters []RenewalCluster `json:"upcoming_clusters"`
}

type CategoryBreakdownEntry struct {
	Category     string  `json:"category"`
	MonthlyTotal float64 `json:"monthly_total"`
	Percentage   float64 `json:"percentage"`
}

type PersonaProfile struct {
	SpendingStyle          string   `json:"spending_style"`
	RiskTolerance          string   `json:"risk_tolerance"`
	FinancialGoals         []string `json:"financial_goals"`
	PreferredCommunication string   `json:"preferred_communication"`
	LearningPriority       string   `json:"learning_priority"`
}

type SpendingTrends struct {
	Timeline     []TimelinePoint `json:"timeline"`
	Total        float64         `json:"total"`
	DailyAverage float64         `json:"daily_average"`
	PeakDate     *time.Time      `json:"peak_date,omitempty"`
	PeakAmount   float64         `json:"peak_amount"`
}

type PredictiveAlert struct {
	Type     string     `json:"type"`
	Severity string     `json:"severity"`
	Message  string     `json:"message"`
	Amount   float64    `json:"amount,omitempty"`
	Date     *time.Time `json:"date,omitempty"`
}

type SubscriptionHabits struct {
	TotalSubscriptions   int     `json:"total_subscriptions"`
	ActiveSubscriptions  int     `json:"active_subscriptions"`
	MonthlySpend         float64 `json:"monthly_spend"`
	AveragePerActive     float64 `json:"average_per_active"`
	MostExpensive        string  `json:"most_expensive,omitempty"`
	MostExpensiveMonthly float64 `json:"most_expensive_monthly,omitempty"`
	CategoriesUsed       int     `json:"categories_used"`
}

type CategorySuggestion struct {
	Category   string  `json:"category"`
	SharePct   float64 `json:"share_pct"`
	Suggestion string  `json:"suggestion"`
}

// InsightsReport — итоговый объект аналитики за период.
type InsightsReport struct {
	Period               string                   `json:"period"`
	Currency             string                   `json:"currency"`
	SpendingTrends       SpendingTrends           `json:"spending_trends"`
	AnomalyDetection     []AnomalyRecord          `json:"anomaly_detection"`
	SavingsOpportunities []SavingsOpportunity     `json:"savings_opportunities"`
	BudgetHealth         BudgetHealth             `json:"budget_health"`
	PredictiveAlerts     []PredictiveAlert        `json:"predictive_alerts"`
	SubscriptionHabits   SubscriptionHabits       `json:"subscription_habits"`
	CategoryOptimization []CategorySuggestion     `json:"category_optimization"`
	RenewalClustering    RenewalClustering        `json:"renewal_clustering"`
	CategoryBreakdown    []CategoryBreakdownEntry `json:"category_breakdown"`
	PredictedSpending    PredictedSpending        `json:"predicted_spending"`
	Persona              PersonaProfile           `json:"persona"`
}
