package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"example.com/subscription-tracker/backend/internal/models"
)

const (
	maxSavingsOpportunities = 10

	// Порог месячного эквивалента, с которого предлагается поиск дешевого тарифа.
	planOptimizationThreshold = 20.0
	planOptimizationShare     = 0.15
)

const (
	opportunityDuplicate = "duplicate_services"
	opportunityUnused    = "unused_subscription"
	opportunityPlan      = "plan_optimization"
)

// FindSavings собирает возможности экономии из трех эвристик и возвращает
// не более десяти, отсортированных по убыванию потенциальной выгоды.
func FindSavings(subs []models.SubscriptionRecord, base string, now time.Time, conv Converter) []SavingsOpportunity {
	var opportunities []SavingsOpportunity

	opportunities = append(opportunities, duplicateOpportunities(subs, base, conv)...)
	opportunities = append(opportunities, unusedOpportunities(subs, base, now, conv)...)
	opportunities = append(opportunities, planOpportunities(subs, base, conv)...)

	sort.SliceStable(opportunities, func(i, j int) bool {
		return opportunities[i].PotentialSavings > opportunities[j].PotentialSavings
	})

	if len(opportunities) > maxSavingsOpportunities {
		opportunities = opportunities[:maxSavingsOpportunities]
	}

	return opportunities
}

// duplicateOpportunities группирует подписки по имени без учета регистра;
// основная (самая дорогая) подписка остается, остальные считаются выгодой.
func duplicateOpportunities(subs []models.SubscriptionRecord, base string, conv Converter) []SavingsOpportunity {
	groups := make(map[string][]models.SubscriptionRecord)
	var keys []string

	for _, sub := range subs {
		key := strings.ToLower(strings.TrimSpace(sub.Name))
		if key == "" {
			continue
		}
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], sub)
	}

	var opportunities []SavingsOpportunity
	for _, key := range keys {
		members := groups[key]
		if len(members) < 2 {
			continue
		}

		total := 0.0
		primary := -1.0
		primaryName := ""
		for _, member := range members {
			price := conv.Convert(member.Price, member.Currency, base)
			total += price
			if price > primary {
				primary = price
				primaryName = member.Name
			}
		}

		opportunities = append(opportunities, SavingsOpportunity{
			Type:             opportunityDuplicate,
			Title:            fmt.Sprintf("Дубликаты: %s", members[0].Name),
			Description:      fmt.Sprintf("Найдено %d подписки с одинаковым названием; основная остается (%s), остальные можно отменить", len(members), primaryName),
			PotentialSavings: round2(total - primary),
		})
	}

	return opportunities
}

// unusedOpportunities отмечает неактивные подписки и активные с истекшей датой продления.
func unusedOpportunities(subs []models.SubscriptionRecord, base string, now time.Time, conv Converter) []SavingsOpportunity {
	today := truncateToDay(now)

	var opportunities []SavingsOpportunity
	for _, sub := range subs {
		expired := sub.Status == models.SubscriptionStatusActive &&
			sub.RenewalDate != nil && truncateToDay(*sub.RenewalDate).Before(today)

		if sub.Status == models.SubscriptionStatusActive && !expired {
			continue
		}

		reason := "подписка неактивна"
		if expired {
			reason = "дата продления уже прошла"
		}

		opportunities = append(opportunities, SavingsOpportunity{
			Type:             opportunityUnused,
			Title:            fmt.Sprintf("Отмена: %s", sub.Name),
			Description:      fmt.Sprintf("Кандидат на отмену — %s", reason),
			PotentialSavings: round2(conv.Convert(sub.Price, sub.Currency, base)),
		})
	}

	return opportunities
}

// planOpportunities предлагает проверить тариф у дорогих активных подписок.
func planOpportunities(subs []models.SubscriptionRecord, base string, conv Converter) []SavingsOpportunity {
	var opportunities []SavingsOpportunity
	for _, sub := range subs {
		if sub.Status != models.SubscriptionStatusActive {
			continue
		}

		monthly := monthlyEquivalent(sub, base, conv)
		if monthly < planOptimizationThreshold {
			continue
		}

		opportunities = append(opportunities, SavingsOpportunity{
			Type:             opportunityPlan,
			Title:            fmt.Sprintf("Тариф: %s", sub.Name),
			Description:      fmt.Sprintf("Стоимость %.2f %s в месяц — проверьте, нет ли более дешевого тарифа", monthly, base),
			PotentialSavings: round2(monthly * planOptimizationShare),
		})
	}

	return opportunities
}

// monthlyEquivalent приводит цену подписки к 30-дневному эквиваленту в базовой валюте.
func monthlyEquivalent(sub models.SubscriptionRecord, base string, conv Converter) float64 {
	price := conv.Convert(sub.Price, sub.Currency, base)
	return price / float64(FrequencyDays(sub.Frequency)) * daysPerMonth
}
