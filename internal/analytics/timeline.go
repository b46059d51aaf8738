package analytics

import (
	"math"
	"strings"
	"time"

	"example.com/subscription-tracker/backend/internal/models"
)

const daysPerMonth = 30

// renewalChargeWeight — вес разового списания, накладываемого на дни цикла
// поверх ежедневной амортизации. Поведение сохранено для совместимости с
// историческими отчетами.
const renewalChargeWeight = 0.6

// ParsePeriod преобразует токен периода в число дней окна; неизвестный токен — 30.
func ParsePeriod(token string) int {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "7d":
		return 7
	case "30d":
		return 30
	case "90d":
		return 90
	case "1y":
		return 365
	default:
		return 30
	}
}

// FrequencyDays возвращает канонический интервал частоты в днях.
func FrequencyDays(frequency models.Frequency) int {
	switch frequency {
	case models.FrequencyDaily:
		return 1
	case models.FrequencyWeekly:
		return 7
	case models.FrequencyMonthly:
		return daysPerMonth
	case models.FrequencyYearly:
		return 365
	default:
		return daysPerMonth
	}
}

// BuildTimeline строит непрерывный дневной ряд расходов за окно, заканчивающееся сегодня.
func BuildTimeline(subs []models.SubscriptionRecord, bills []models.BillRecord, windowDays int, base string, now time.Time, conv Converter) []TimelinePoint {
	if windowDays <= 0 {
		windowDays = daysPerMonth
	}

	today := truncateToDay(now)
	windowStart := today.AddDate(0, 0, -(windowDays - 1))

	points := make([]TimelinePoint, windowDays)
	for i := range points {
		points[i] = TimelinePoint{Date: windowStart.AddDate(0, 0, i)}
	}

	for _, sub := range subs {
		price := conv.Convert(sub.Price, sub.Currency, base)
		freqDays := FrequencyDays(sub.Frequency)
		amortizedDaily := price / float64(freqDays)

		for i := range points {
			points[i].Amount += amortizedDaily
		}

		if sub.StartDate == nil {
			continue
		}
		startDay := truncateToDay(*sub.StartDate)
		for i := range points {
			offset := daysBetween(startDay, points[i].Date)
			if offset >= 0 && offset%freqDays == 0 {
				points[i].Amount += price * renewalChargeWeight
			}
		}
	}

	for _, bill := range bills {
		if bill.DueDate == nil {
			continue
		}
		due := truncateToDay(*bill.DueDate)
		idx := daysBetween(windowStart, due)
		if idx < 0 || idx >= windowDays {
			continue
		}
		points[idx].Amount += conv.Convert(bill.Amount, bill.Currency, base)
	}

	for i := range points {
		points[i].Amount = round2(points[i].Amount)
	}

	return points
}

func truncateToDay(t time.Time) time.Time {
	utc := t.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
