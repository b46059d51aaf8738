package analytics

import (
	"testing"

	"example.com/subscription-tracker/backend/internal/models"
)

// TestClassifyPersonaConservative проверяет стабильный профиль с малым числом категорий.
func TestClassifyPersonaConservative(t *testing.T) {
	series := []float64{100, 100, 100}
	breakdown := []CategoryBreakdownEntry{
		{Category: "streaming", Percentage: 60},
		{Category: "music", Percentage: 40},
	}
	subs := []models.SubscriptionRecord{
		testSub("A", 10, "USD", models.FrequencyMonthly),
		testSub("B", 10, "USD", models.FrequencyMonthly),
	}

	profile := ClassifyPersona(series, breakdown, BudgetHealth{}, subs, nil)

	if profile.SpendingStyle != styleConservative {
		t.Fatalf("expected conservative style, got %s", profile.SpendingStyle)
	}
	if profile.PreferredCommunication != "conversational" {
		t.Fatalf("expected conversational for few subscriptions, got %s", profile.PreferredCommunication)
	}
	if profile.LearningPriority != "build_budget_basics" {
		t.Fatalf("expected budget basics without limit, got %s", profile.LearningPriority)
	}

	var hasSetBudget bool
	for _, goal := range profile.FinancialGoals {
		if goal == "set_budget" {
			hasSetBudget = true
		}
	}
	if !hasSetBudget {
		t.Fatalf("expected set_budget goal, got %v", profile.FinancialGoals)
	}
}

// TestClassifyPersonaExploratory проверяет изменчивый профиль со многими категориями.
func TestClassifyPersonaExploratory(t *testing.T) {
	series := []float64{100, 200, 50, 300}
	breakdown := make([]CategoryBreakdownEntry, 6)
	for i := range breakdown {
		breakdown[i] = CategoryBreakdownEntry{Category: "c", Percentage: 16.0}
	}

	limit := 500.0
	util := 40.0
	health := BudgetHealth{Limit: &limit, Utilization: &util}

	profile := ClassifyPersona(series, breakdown, health, nil, nil)

	if profile.SpendingStyle != styleExploratory {
		t.Fatalf("expected exploratory style, got %s", profile.SpendingStyle)
	}
	if profile.LearningPriority != "control_variability" {
		t.Fatalf("expected control_variability, got %s", profile.LearningPriority)
	}
}

// TestClassifyPersonaRiskTolerance проверяет пороги толерантности к риску.
func TestClassifyPersonaRiskTolerance(t *testing.T) {
	if got := riskTolerance(nil); got != "low" {
		t.Fatalf("expected low without utilization, got %s", got)
	}

	medium := 80.0
	if got := riskTolerance(&medium); got != "medium" {
		t.Fatalf("expected medium for 80, got %s", got)
	}

	high := 96.0
	if got := riskTolerance(&high); got != "high" {
		t.Fatalf("expected high for 96, got %s", got)
	}
}

// TestFinancialGoalsCascade проверяет накопление целей и дефолт optimize_value.
func TestFinancialGoalsCascade(t *testing.T) {
	limit := 100.0
	util := 95.0
	health := BudgetHealth{Limit: &limit, Utilization: &util}
	breakdown := []CategoryBreakdownEntry{{Category: "streaming", Percentage: 50}}
	anomalies := []AnomalyRecord{{Type: "spike"}}

	goals := financialGoals(health, breakdown, anomalies)
	want := []string{"reduce_utilization", "rebalance_categories", "investigate_anomalies"}
	if len(goals) != len(want) {
		t.Fatalf("expected %v, got %v", want, goals)
	}
	for i := range want {
		if goals[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, goals)
		}
	}

	calmUtil := 40.0
	calm := BudgetHealth{Limit: &limit, Utilization: &calmUtil}
	balanced := []CategoryBreakdownEntry{
		{Category: "a", Percentage: 34},
		{Category: "b", Percentage: 33},
		{Category: "c", Percentage: 33},
	}
	goals = financialGoals(calm, balanced, nil)
	if len(goals) != 1 || goals[0] != "optimize_value" {
		t.Fatalf("expected optimize_value default, got %v", goals)
	}
}

// TestPreferredCommunication проверяет стиль общения по числу подписок.
func TestPreferredCommunication(t *testing.T) {
	if got := preferredCommunication(3); got != "conversational" {
		t.Fatalf("expected conversational, got %s", got)
	}
	if got := preferredCommunication(10); got != "concise" {
		t.Fatalf("expected concise, got %s", got)
	}
	if got := preferredCommunication(25); got != "bullet" {
		t.Fatalf("expected bullet, got %s", got)
	}
}
