package analytics

import (
	"testing"

	"example.com/subscription-tracker/backend/internal/models"
)

// TestParsePeriod проверяет токены периода и дефолт для неизвестного.
func TestParsePeriod(t *testing.T) {
	cases := map[string]int{
		"7d":  7,
		"30d": 30,
		"90d": 90,
		"1y":  365,
		"14x": 30,
		"":    30,
		" 7D ": 7,
	}
	for token, want := range cases {
		if got := ParsePeriod(token); got != want {
			t.Fatalf("ParsePeriod(%q) = %d, want %d", token, got, want)
		}
	}
}

// TestFrequencyDays проверяет канонические интервалы частот.
func TestFrequencyDays(t *testing.T) {
	cases := map[models.Frequency]int{
		models.FrequencyDaily:   1,
		models.FrequencyWeekly:  7,
		models.FrequencyMonthly: 30,
		models.FrequencyYearly:  365,
		models.Frequency("odd"): 30,
	}
	for frequency, want := range cases {
		if got := FrequencyDays(frequency); got != want {
			t.Fatalf("FrequencyDays(%q) = %d, want %d", frequency, got, want)
		}
	}
}

// TestBuildTimelineEmpty проверяет непрерывный нулевой ряд без данных.
func TestBuildTimelineEmpty(t *testing.T) {
	conv := NewConverter(nil)
	points := BuildTimeline(nil, nil, 30, "USD", testNow, conv)

	if len(points) != 30 {
		t.Fatalf("expected 30 points, got %d", len(points))
	}
	for i, point := range points {
		if point.Amount != 0 {
			t.Fatalf("expected zero amount at %d, got %f", i, point.Amount)
		}
		if i > 0 && !points[i-1].Date.Before(point.Date) {
			t.Fatalf("dates are not ascending at index %d", i)
		}
	}

	last := points[len(points)-1].Date
	if !last.Equal(truncateToDay(testNow)) {
		t.Fatalf("expected window to end today, got %s", last)
	}
}

// TestBuildTimelineAmortization проверяет равномерную амортизацию месячной подписки.
func TestBuildTimelineAmortization(t *testing.T) {
	conv := NewConverter(nil)
	subs := []models.SubscriptionRecord{testSub("Netflix", 30, "USD", models.FrequencyMonthly)}

	points := BuildTimeline(subs, nil, 30, "USD", testNow, conv)
	for i, point := range points {
		if point.Amount != 1.00 {
			t.Fatalf("expected 1.00 at %d, got %f", i, point.Amount)
		}
	}
}

// TestBuildTimelineRenewalLump проверяет разовое списание в день цикла поверх амортизации.
func TestBuildTimelineRenewalLump(t *testing.T) {
	conv := NewConverter(nil)
	sub := testSub("Netflix", 30, "USD", models.FrequencyMonthly)
	sub.StartDate = datePtr(testNow.AddDate(0, 0, -60))

	points := BuildTimeline([]models.SubscriptionRecord{sub}, nil, 30, "USD", testNow, conv)

	last := points[len(points)-1]
	if last.Amount != 19.00 {
		t.Fatalf("expected cycle day amount 19.00, got %f", last.Amount)
	}
	for _, point := range points[:len(points)-1] {
		if point.Amount != 1.00 {
			t.Fatalf("expected 1.00 off-cycle, got %f on %s", point.Amount, point.Date)
		}
	}
}

// TestBuildTimelineBills проверяет, что счет попадает только в день оплаты.
func TestBuildTimelineBills(t *testing.T) {
	conv := NewConverter(nil)
	due := testNow.AddDate(0, 0, -5)
	bills := []models.BillRecord{{Name: "Rent", Amount: 42.5, Currency: "USD", DueDate: &due}}

	points := BuildTimeline(nil, bills, 30, "USD", testNow, conv)

	for _, point := range points {
		want := 0.0
		if point.Date.Equal(truncateToDay(due)) {
			want = 42.5
		}
		if point.Amount != want {
			t.Fatalf("expected %f on %s, got %f", want, point.Date, point.Amount)
		}
	}
}

// TestBuildTimelineBillOutsideWindow проверяет игнорирование счета вне окна.
func TestBuildTimelineBillOutsideWindow(t *testing.T) {
	conv := NewConverter(nil)
	due := testNow.AddDate(0, 0, -45)
	bills := []models.BillRecord{{Name: "Old", Amount: 99, Currency: "USD", DueDate: &due}}

	points := BuildTimeline(nil, bills, 30, "USD", testNow, conv)
	for _, point := range points {
		if point.Amount != 0 {
			t.Fatalf("expected out-of-window bill to be ignored, got %f", point.Amount)
		}
	}
}

// TestBuildTimelineOrderInvariant проверяет независимость результата от порядка входа.
func TestBuildTimelineOrderInvariant(t *testing.T) {
	conv := NewConverter(nil)
	a := testSub("A", 12, "USD", models.FrequencyMonthly)
	b := testSub("B", 7, "EUR", models.FrequencyWeekly)
	due := testNow.AddDate(0, 0, -3)
	bill := models.BillRecord{Name: "Power", Amount: 20, Currency: "USD", DueDate: &due}

	first := BuildTimeline([]models.SubscriptionRecord{a, b}, []models.BillRecord{bill}, 30, "USD", testNow, conv)
	second := BuildTimeline([]models.SubscriptionRecord{b, a}, []models.BillRecord{bill}, 30, "USD", testNow, conv)

	for i := range first {
		if first[i].Amount != second[i].Amount {
			t.Fatalf("order changed totals at %d: %f vs %f", i, first[i].Amount, second[i].Amount)
		}
	}
}
