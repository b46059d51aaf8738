package analytics

import "example.com/subscription-tracker/backend/internal/models"

const (
	styleConservative = "conservative_consistent"
	styleExploratory  = "exploratory_variable"
	styleBalanced     = "balanced_adaptive"
)

// ClassifyPersona выводит поведенческий профиль пользователя из агрегатов движка.
func ClassifyPersona(monthlySeries []float64, breakdown []CategoryBreakdownEntry, health BudgetHealth, subs []models.SubscriptionRecord, anomalies []AnomalyRecord) PersonaProfile {
	profile := PersonaProfile{
		SpendingStyle:          spendingStyle(monthlySeries, len(breakdown)),
		RiskTolerance:          riskTolerance(health.Utilization),
		PreferredCommunication: preferredCommunication(len(subs)),
	}

	profile.FinancialGoals = financialGoals(health, breakdown, anomalies)
	profile.LearningPriority = learningPriority(health, profile.SpendingStyle)

	return profile
}

func spendingStyle(monthlySeries []float64, categories int) string {
	mean := meanOf(monthlySeries)
	cov := 0.0
	if mean > 0 {
		cov = stdDevOf(monthlySeries, mean) / mean
	}

	switch {
	case cov < 0.1 && categories < 3:
		return styleConservative
	case cov > 0.3 && categories > 5:
		return styleExploratory
	default:
		return styleBalanced
	}
}

func riskTolerance(utilization *float64) string {
	if utilization == nil {
		return "low"
	}
	switch {
	case *utilization > 95:
		return "high"
	case *utilization > 75:
		return "medium"
	default:
		return "low"
	}
}

func financialGoals(health BudgetHealth, breakdown []CategoryBreakdownEntry, anomalies []AnomalyRecord) []string {
	var goals []string

	if health.Limit == nil {
		goals = append(goals, "set_budget")
	}
	if health.Utilization != nil && *health.Utilization > 90 {
		goals = append(goals, "reduce_utilization")
	}
	for _, entry := range breakdown {
		if entry.Percentage > 35 {
			goals = append(goals, "rebalance_categories")
			break
		}
	}
	if len(anomalies) > 0 {
		goals = append(goals, "investigate_anomalies")
	}

	if len(goals) == 0 {
		goals = append(goals, "optimize_value")
	}
	return goals
}

func preferredCommunication(subscriptionCount int) string {
	switch {
	case subscriptionCount > 20:
		return "bullet"
	case subscriptionCount <= 5:
		return "conversational"
	default:
		return "concise"
	}
}

func learningPriority(health BudgetHealth, style string) string {
	switch {
	case health.Limit == nil:
		return "build_budget_basics"
	case style == styleExploratory:
		return "control_variability"
	default:
		return "optimize_existing"
	}
}
