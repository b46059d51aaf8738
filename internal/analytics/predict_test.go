package analytics

import (
	"math"
	"testing"
	"time"

	"example.com/subscription-tracker/backend/internal/models"
)

func monthPoints(amounts ...float64) []TimelinePoint {
	points := make([]TimelinePoint, len(amounts))
	for i, amount := range amounts {
		points[i] = TimelinePoint{
			Date:   time.Date(2024, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC),
			Amount: amount,
		}
	}
	return points
}

// TestPredictSpendingMomentum проверяет прогноз при росте последнего месяца.
func TestPredictSpendingMomentum(t *testing.T) {
	conv := NewConverter(nil)
	timeline := monthPoints(100, 100, 100, 100, 100, 200)

	predicted := PredictSpending(nil, timeline, nil, BudgetHealth{}, "USD", conv)

	if predicted.Trend != "up" {
		t.Fatalf("expected trend up, got %s", predicted.Trend)
	}
	if predicted.LastMonth != 200 {
		t.Fatalf("expected last month 200, got %f", predicted.LastMonth)
	}
	if predicted.AverageMonthly != 116.67 {
		t.Fatalf("expected average 116.67, got %f", predicted.AverageMonthly)
	}
	// avg + momentum*avg*0.6 + 0.05*avg = avg * 1.65
	if math.Abs(predicted.PredictedAmount-192.5) > 0.01 {
		t.Fatalf("expected prediction 192.5, got %f", predicted.PredictedAmount)
	}
	if predicted.Confidence < 0.25 || predicted.Confidence > 0.95 {
		t.Fatalf("confidence out of range: %f", predicted.Confidence)
	}
}

// TestPredictSpendingStable проверяет ровный ряд: прогноз около среднего, тренд стабильный.
func TestPredictSpendingStable(t *testing.T) {
	conv := NewConverter(nil)
	timeline := monthPoints(100, 100, 100, 100)

	predicted := PredictSpending(nil, timeline, nil, BudgetHealth{}, "USD", conv)

	if predicted.Trend != "stable" {
		t.Fatalf("expected stable trend, got %s", predicted.Trend)
	}
	if predicted.PredictedAmount != 105 {
		t.Fatalf("expected 105 with seasonal share, got %f", predicted.PredictedAmount)
	}
	if predicted.Confidence != 0.95 {
		t.Fatalf("expected ceiling confidence 0.95, got %f", predicted.Confidence)
	}
}

// TestPredictSpendingSingleBucket проверяет дефолтную уверенность для короткой истории.
func TestPredictSpendingSingleBucket(t *testing.T) {
	conv := NewConverter(nil)
	timeline := monthPoints(100)

	predicted := PredictSpending(nil, timeline, nil, BudgetHealth{}, "USD", conv)

	if predicted.Confidence != 0.5 {
		t.Fatalf("expected confidence 0.5, got %f", predicted.Confidence)
	}
	if predicted.PredictedAmount != 100 {
		t.Fatalf("expected 100 without momentum and seasonality, got %f", predicted.PredictedAmount)
	}
}

// TestMonthlyBucketsCap проверяет лимит в шесть последних календарных месяцев.
func TestMonthlyBucketsCap(t *testing.T) {
	timeline := monthPoints(1, 2, 3, 4, 5, 6, 7, 8)

	buckets := monthlyBuckets(timeline)
	if len(buckets) != maxMonthBuckets {
		t.Fatalf("expected %d buckets, got %d", maxMonthBuckets, len(buckets))
	}
	if buckets[0] != 3 || buckets[len(buckets)-1] != 8 {
		t.Fatalf("expected oldest buckets dropped, got %v", buckets)
	}
}

// TestRiskLevel проверяет пороги уровня риска по аномалиям и утилизации.
func TestRiskLevel(t *testing.T) {
	high := 96.0
	medium := 86.0

	if got := riskLevel(0, nil); got != "low" {
		t.Fatalf("expected low, got %s", got)
	}
	if got := riskLevel(1, nil); got != "medium" {
		t.Fatalf("expected medium, got %s", got)
	}
	if got := riskLevel(5, nil); got != "high" {
		t.Fatalf("expected high, got %s", got)
	}
	if got := riskLevel(0, &medium); got != "medium" {
		t.Fatalf("expected medium for utilization 86, got %s", got)
	}
	if got := riskLevel(0, &high); got != "high" {
		t.Fatalf("expected high for utilization 96, got %s", got)
	}
}

// TestSpendFactors проверяет формат и лимит факторов прогноза.
func TestSpendFactors(t *testing.T) {
	conv := NewConverter(nil)
	subs := []models.SubscriptionRecord{
		testSub("A", 40, "USD", models.FrequencyMonthly),
		testSub("B", 30, "USD", models.FrequencyMonthly),
		testSub("C", 20, "USD", models.FrequencyMonthly),
		testSub("D", 10, "USD", models.FrequencyMonthly),
	}
	subs[0].Category = "streaming"
	subs[1].Category = "software"
	subs[2].Category = "music"
	subs[3].Category = "news"

	factors := spendFactors(subs, "USD", conv)
	if len(factors) != maxPredictFactors {
		t.Fatalf("expected %d factors, got %d", maxPredictFactors, len(factors))
	}
	if factors[0] != "streaming (40.0%)" {
		t.Fatalf("unexpected top factor: %s", factors[0])
	}
}
