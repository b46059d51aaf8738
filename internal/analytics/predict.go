package analytics

import (
	"fmt"

	"example.com/subscription-tracker/backend/internal/models"
)

const (
	maxMonthBuckets   = 6
	momentumBand      = 0.03
	momentumWeight    = 0.6
	seasonalShare     = 0.05
	minSeasonBuckets  = 4
	maxPredictFactors = 3
)

// PredictSpending прогнозирует расходы следующего месяца по месячным корзинам таймлайна.
func PredictSpending(subs []models.SubscriptionRecord, timeline []TimelinePoint, anomalies []AnomalyRecord, health BudgetHealth, base string, conv Converter) PredictedSpending {
	buckets := monthlyBuckets(timeline)

	avg := meanOf(buckets)

	momentum := 0.0
	if len(buckets) >= 2 && buckets[len(buckets)-2] != 0 {
		previous := buckets[len(buckets)-2]
		momentum = (buckets[len(buckets)-1] - previous) / previous
	}

	seasonalAdj := 0.0
	if len(buckets) >= minSeasonBuckets {
		seasonalAdj = seasonalShare * avg
	}

	predicted := avg + momentum*avg*momentumWeight + seasonalAdj

	confidence := 0.5
	if len(buckets) > 1 && avg > 0 {
		cov := stdDevOf(buckets, avg) / avg
		confidence = clampFloat(1-cov, 0.25, 0.95)
	}

	trend := "stable"
	switch {
	case momentum > momentumBand:
		trend = "up"
	case momentum < -momentumBand:
		trend = "down"
	}

	lastMonth := 0.0
	if len(buckets) > 0 {
		lastMonth = buckets[len(buckets)-1]
	}

	return PredictedSpending{
		PredictedAmount: round2(predicted),
		Confidence:      round2(confidence),
		Trend:           trend,
		Factors:         spendFactors(subs, base, conv),
		RiskLevel:       riskLevel(len(anomalies), health.Utilization),
		AverageMonthly:  round2(avg),
		LastMonth:       round2(lastMonth),
	}
}

// monthlyBuckets сворачивает таймлайн в суммы по календарным месяцам (не более шести последних).
func monthlyBuckets(timeline []TimelinePoint) []float64 {
	var keys []string
	totals := make(map[string]float64)

	for _, point := range timeline {
		key := point.Date.Format("2006-01")
		if _, ok := totals[key]; !ok {
			keys = append(keys, key)
		}
		totals[key] += point.Amount
	}

	if len(keys) > maxMonthBuckets {
		keys = keys[len(keys)-maxMonthBuckets:]
	}

	buckets := make([]float64, 0, len(keys))
	for _, key := range keys {
		buckets = append(buckets, totals[key])
	}
	return buckets
}

// spendFactors возвращает до трех категорий с наибольшей долей расходов.
func spendFactors(subs []models.SubscriptionRecord, base string, conv Converter) []string {
	breakdown := BreakdownCategories(subs, base, conv)

	limit := maxPredictFactors
	if len(breakdown) < limit {
		limit = len(breakdown)
	}

	factors := make([]string, 0, limit)
	for _, entry := range breakdown[:limit] {
		factors = append(factors, fmt.Sprintf("%s (%.1f%%)", entry.Category, entry.Percentage))
	}
	return factors
}

func riskLevel(anomalyCount int, utilization *float64) string {
	util := 0.0
	if utilization != nil {
		util = *utilization
	}

	switch {
	case anomalyCount > 4 || util > 95:
		return "high"
	case anomalyCount > 0 || util > 85:
		return "medium"
	default:
		return "low"
	}
}
