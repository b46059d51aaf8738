package analytics

import (
	"math"
	"sort"
	"strings"

	"example.com/subscription-tracker/backend/internal/models"
)

const defaultCategory = "other"

// BreakdownCategories распределяет месячные расходы по категориям в процентах.
func BreakdownCategories(subs []models.SubscriptionRecord, base string, conv Converter) []CategoryBreakdownEntry {
	totals := make(map[string]float64)
	var order []string

	for _, sub := range subs {
		category := strings.TrimSpace(sub.Category)
		if category == "" {
			category = defaultCategory
		}
		if _, ok := totals[category]; !ok {
			order = append(order, category)
		}
		totals[category] += monthlyEquivalent(sub, base, conv)
	}

	grandTotal := 0.0
	for _, total := range totals {
		grandTotal += total
	}

	entries := make([]CategoryBreakdownEntry, 0, len(order))
	for _, category := range order {
		entries = append(entries, CategoryBreakdownEntry{
			Category:     category,
			MonthlyTotal: round2(totals[category]),
			Percentage:   round1(totals[category] / math.Max(grandTotal, 1) * 100),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].MonthlyTotal > entries[j].MonthlyTotal
	})

	return entries
}
