package analytics

import (
	"math"

	"example.com/subscription-tracker/backend/internal/models"
)

const trendBand = 0.05

// ScoreBudgetHealth вычисляет оценку бюджета 0-100, утилизацию и направление тренда.
func ScoreBudgetHealth(budget *models.BudgetRecord, subs []models.SubscriptionRecord, base string, timeline []TimelinePoint, conv Converter) BudgetHealth {
	monthlySpend := 0.0
	for _, sub := range subs {
		monthlySpend += monthlyEquivalent(sub, base, conv)
	}
	monthlySpend = round2(monthlySpend)

	health := BudgetHealth{
		MonthlySpend: monthlySpend,
		Currency:     base,
	}

	var utilization *float64
	if budget != nil && budget.MonthlyLimit > 0 {
		limit := round2(conv.Convert(budget.MonthlyLimit, budget.Currency, base))
		health.Limit = &limit

		value := round1(monthlySpend / limit * 100)
		utilization = &value
		health.Utilization = utilization
	}

	ratio := trendRatio(timeline)
	switch {
	case ratio > trendBand:
		// Расходы ускоряются — здоровье бюджета падает.
		health.Trend = "down"
	case ratio < -trendBand:
		health.Trend = "up"
	default:
		health.Trend = "stable"
	}

	if utilization == nil {
		health.Score = clampInt(int(math.Round(80-ratio*50)), 10, 95)
	} else {
		overage := math.Max(*utilization-80, 0)
		health.Score = clampInt(int(math.Round(95-overage*1.2-ratio*40)), 5, 95)
	}

	return health
}

// trendRatio сравнивает среднее последних 7 дней со средним предыдущих 7.
func trendRatio(timeline []TimelinePoint) float64 {
	if len(timeline) < 14 {
		return 0
	}

	recent := timeline[len(timeline)-7:]
	previous := timeline[len(timeline)-14 : len(timeline)-7]

	avgRecent := 0.0
	for _, point := range recent {
		avgRecent += point.Amount
	}
	avgRecent /= 7

	avgPrevious := 0.0
	for _, point := range previous {
		avgPrevious += point.Amount
	}
	avgPrevious /= 7

	if avgPrevious == 0 {
		return 0
	}
	return (avgRecent - avgPrevious) / avgPrevious
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
