package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"example.com/subscription-tracker/backend/internal/models"
)

const (
	alertImmediateRenewal = "immediate_renewal"
	alertBudgetThreshold  = "budget_threshold"
	alertForecastOverrun  = "forecast_overrun"

	immediateRenewalDays = 7
	rebalanceSharePct    = 35.0
)

// Engine — чистый аналитический движок поверх снапшота данных пользователя.
// Курсы валют инжектируются, обращений к I/O и часам движок не делает.
type Engine struct {
	conv        Converter
	defaultBase string
}

// NewEngine создает движок с заданным источником курсов (nil — статическая таблица).
func NewEngine(rates RateLookup) *Engine {
	return NewEngineWithBase(rates, referenceCurrency)
}

// NewEngineWithBase создает движок с валютой по умолчанию для пустых снапшотов.
func NewEngineWithBase(rates RateLookup, defaultBase string) *Engine {
	base := normalizeCode(defaultBase)
	if base == "" {
		base = referenceCurrency
	}
	return &Engine{conv: NewConverter(rates), defaultBase: base}
}

// Analyze строит полный аналитический отчет за период для переданного снапшота.
func (e *Engine) Analyze(snap Snapshot, period string, now time.Time) InsightsReport {
	windowDays := ParsePeriod(period)
	base := BaseCurrency(snap.Budget, snap.Subscriptions, snap.Bills)
	if snap.Budget == nil && len(snap.Subscriptions) == 0 && len(snap.Bills) == 0 {
		base = e.defaultBase
	}

	timeline := BuildTimeline(snap.Subscriptions, snap.Bills, windowDays, base, now, e.conv)
	anomalies := DetectAnomalies(timeline)
	savings := FindSavings(snap.Subscriptions, base, now, e.conv)
	health := ScoreBudgetHealth(snap.Budget, snap.Subscriptions, base, timeline, e.conv)
	breakdown := BreakdownCategories(snap.Subscriptions, base, e.conv)
	predicted := PredictSpending(snap.Subscriptions, timeline, anomalies, health, base, e.conv)
	clusters := ClusterRenewals(snap.Subscriptions, now)
	persona := ClassifyPersona(monthlyBuckets(timeline), breakdown, health, snap.Subscriptions, anomalies)

	return InsightsReport{
		Period:               canonicalPeriod(period),
		Currency:             base,
		SpendingTrends:       buildSpendingTrends(timeline),
		AnomalyDetection:     anomalies,
		SavingsOpportunities: savings,
		BudgetHealth:         health,
		PredictiveAlerts:     e.buildAlerts(snap, health, predicted, base, now),
		SubscriptionHabits:   e.buildHabits(snap.Subscriptions, health, base),
		CategoryOptimization: buildCategorySuggestions(breakdown),
		RenewalClustering:    clusters,
		CategoryBreakdown:    breakdown,
		PredictedSpending:    predicted,
		Persona:              persona,
	}
}

func canonicalPeriod(token string) string {
	normalized := strings.ToLower(strings.TrimSpace(token))
	switch normalized {
	case "7d", "30d", "90d", "1y":
		return normalized
	default:
		return "30d"
	}
}

func buildSpendingTrends(timeline []TimelinePoint) SpendingTrends {
	trends := SpendingTrends{Timeline: timeline}

	total := 0.0
	for _, point := range timeline {
		total += point.Amount
		if point.Amount > trends.PeakAmount {
			trends.PeakAmount = point.Amount
			date := point.Date
			trends.PeakDate = &date
		}
	}

	trends.Total = round2(total)
	if len(timeline) > 0 {
		trends.DailyAverage = round2(total / float64(len(timeline)))
	}
	return trends
}

// buildAlerts собирает предиктивные оповещения: скорые продления, превышение
// порога бюджета и прогнозируемый выход за лимит.
func (e *Engine) buildAlerts(snap Snapshot, health BudgetHealth, predicted PredictedSpending, base string, now time.Time) []PredictiveAlert {
	var alerts []PredictiveAlert
	today := truncateToDay(now)

	for _, sub := range snap.Subscriptions {
		if sub.RenewalDate == nil || sub.Status != models.SubscriptionStatusActive {
			continue
		}
		renewal := truncateToDay(*sub.RenewalDate)
		daysUntil := daysBetween(today, renewal)
		if daysUntil < 0 || daysUntil > immediateRenewalDays {
			continue
		}

		amount := round2(e.conv.Convert(sub.Price, sub.Currency, base))
		alerts = append(alerts, PredictiveAlert{
			Type:     alertImmediateRenewal,
			Severity: "high",
			Message:  fmt.Sprintf("%s продлевается через %d дн. (%.2f %s)", sub.Name, daysUntil, amount, base),
			Amount:   amount,
			Date:     &renewal,
		})
	}

	if snap.Budget != nil && health.Utilization != nil {
		threshold := snap.Budget.AlertThresholdPct
		if threshold > 0 && *health.Utilization >= threshold {
			severity := "medium"
			if *health.Utilization > 100 {
				severity = "high"
			}
			alerts = append(alerts, PredictiveAlert{
				Type:     alertBudgetThreshold,
				Severity: severity,
				Message:  fmt.Sprintf("Бюджет использован на %.1f%% при пороге %.0f%%", *health.Utilization, threshold),
				Amount:   health.MonthlySpend,
			})
		}
	}

	if health.Limit != nil && predicted.PredictedAmount > *health.Limit {
		alerts = append(alerts, PredictiveAlert{
			Type:     alertForecastOverrun,
			Severity: "medium",
			Message:  fmt.Sprintf("Прогноз на следующий месяц %.2f %s превышает лимит %.2f %s", predicted.PredictedAmount, base, *health.Limit, base),
			Amount:   predicted.PredictedAmount,
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		si, sj := severityRank(alerts[i].Severity), severityRank(alerts[j].Severity)
		if si != sj {
			return si < sj
		}
		return alerts[i].Amount > alerts[j].Amount
	})

	return alerts
}

func severityRank(severity string) int {
	switch severity {
	case "high":
		return 0
	case "medium":
		return 1
	default:
		return 2
	}
}

func (e *Engine) buildHabits(subs []models.SubscriptionRecord, health BudgetHealth, base string) SubscriptionHabits {
	habits := SubscriptionHabits{
		TotalSubscriptions: len(subs),
		MonthlySpend:       health.MonthlySpend,
	}

	categories := make(map[string]struct{})
	activeSpend := 0.0

	for _, sub := range subs {
		category := strings.TrimSpace(sub.Category)
		if category == "" {
			category = defaultCategory
		}
		categories[category] = struct{}{}

		monthly := monthlyEquivalent(sub, base, e.conv)
		if monthly > habits.MostExpensiveMonthly {
			habits.MostExpensiveMonthly = round2(monthly)
			habits.MostExpensive = sub.Name
		}

		if sub.Status == models.SubscriptionStatusActive {
			habits.ActiveSubscriptions++
			activeSpend += monthly
		}
	}

	habits.CategoriesUsed = len(categories)
	if habits.ActiveSubscriptions > 0 {
		habits.AveragePerActive = round2(activeSpend / float64(habits.ActiveSubscriptions))
	}
	return habits
}

// buildCategorySuggestions предлагает ребалансировку категорий с долей выше 35%.
func buildCategorySuggestions(breakdown []CategoryBreakdownEntry) []CategorySuggestion {
	var suggestions []CategorySuggestion
	for _, entry := range breakdown {
		if entry.Percentage <= rebalanceSharePct {
			continue
		}
		suggestions = append(suggestions, CategorySuggestion{
			Category:   entry.Category,
			SharePct:   entry.Percentage,
			Suggestion: fmt.Sprintf("Категория «%s» занимает %.1f%% расходов — стоит перераспределить подписки", entry.Category, entry.Percentage),
		})
	}
	return suggestions
}
