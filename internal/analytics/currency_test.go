package analytics

import (
	"math"
	"testing"

	"example.com/subscription-tracker/backend/internal/models"
)

// TestConvertBetweenCurrencies проверяет пересчет через таблицу факторов.
func TestConvertBetweenCurrencies(t *testing.T) {
	conv := NewConverter(nil)

	got := conv.Convert(100, "EUR", "USD")
	want := 100 / 1.07
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %f, got %f", want, got)
	}

	if got := conv.Convert(107, "EUR", "USD"); math.Abs(got-100) > 1e-9 {
		t.Fatalf("expected 100, got %f", got)
	}

	if got := conv.Convert(100, "USD", "USD"); got != 100 {
		t.Fatalf("expected identity conversion, got %f", got)
	}

	roundTrip := conv.Convert(conv.Convert(100, "USD", "GBP"), "GBP", "USD")
	if math.Abs(roundTrip-100) > 1e-9 {
		t.Fatalf("expected round trip to preserve amount, got %f", roundTrip)
	}
}

// TestConvertUnknownCode проверяет нейтральный фактор для неизвестного кода.
func TestConvertUnknownCode(t *testing.T) {
	conv := NewConverter(nil)

	if got := conv.Convert(50, "XXX", "USD"); got != 50 {
		t.Fatalf("expected neutral conversion, got %f", got)
	}
}

// TestStaticRatesOverrides проверяет переопределение курсов.
func TestStaticRatesOverrides(t *testing.T) {
	rates := NewStaticRatesWith(map[string]float64{"eur": 2})

	if got := rates.Lookup("EUR"); got != 2 {
		t.Fatalf("expected overridden factor 2, got %f", got)
	}
	if got := rates.Lookup("GBP"); got != 1.25 {
		t.Fatalf("expected default factor 1.25, got %f", got)
	}
}

// TestBaseCurrencyBudgetWins проверяет приоритет валюты бюджета.
func TestBaseCurrencyBudgetWins(t *testing.T) {
	budget := &models.BudgetRecord{Currency: "eur"}
	subs := []models.SubscriptionRecord{testSub("A", 10, "USD", models.FrequencyMonthly)}

	if got := BaseCurrency(budget, subs, nil); got != "EUR" {
		t.Fatalf("expected EUR, got %s", got)
	}
}

// TestBaseCurrencyMajority проверяет выбор самого частого кода.
func TestBaseCurrencyMajority(t *testing.T) {
	subs := []models.SubscriptionRecord{
		testSub("A", 10, "EUR", models.FrequencyMonthly),
		testSub("B", 10, "USD", models.FrequencyMonthly),
		testSub("C", 10, "EUR", models.FrequencyMonthly),
	}

	if got := BaseCurrency(nil, subs, nil); got != "EUR" {
		t.Fatalf("expected EUR, got %s", got)
	}
}

// TestBaseCurrencyTieBreak проверяет, что при равенстве побеждает первый встреченный код.
func TestBaseCurrencyTieBreak(t *testing.T) {
	subs := []models.SubscriptionRecord{
		testSub("A", 10, "GBP", models.FrequencyMonthly),
		testSub("B", 10, "EUR", models.FrequencyMonthly),
	}

	if got := BaseCurrency(nil, subs, nil); got != "GBP" {
		t.Fatalf("expected GBP, got %s", got)
	}
}

// TestBaseCurrencyEmpty проверяет дефолт при отсутствии данных.
func TestBaseCurrencyEmpty(t *testing.T) {
	if got := BaseCurrency(nil, nil, nil); got != "USD" {
		t.Fatalf("expected USD, got %s", got)
	}
}
