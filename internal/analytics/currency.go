package analytics

import (
	"strings"

	"example.com/subscription-tracker/backend/internal/models"
)

const referenceCurrency = "USD"

// RateLookup возвращает фактор валюты относительно базовой (USD = 1).
type RateLookup interface {
	Lookup(code string) float64
}

// StaticRates — статическая таблица курсов без обращения к внешним источникам.
type StaticRates struct {
	factors map[string]float64
}

// NewStaticRates создает таблицу курсов по умолчанию.
func NewStaticRates() *StaticRates {
	return &StaticRates{factors: map[string]float64{
		"USD": 1,
		"EUR": 1.07,
		"GBP": 1.25,
		"CAD": 0.74,
		"AUD": 0.66,
		"CHF": 1.12,
		"JPY": 0.0067,
		"INR": 0.012,
		"RUB": 0.011,
		"BRL": 0.19,
	}}
}

// NewStaticRatesWith создает таблицу курсов с переопределениями поверх дефолтной.
func NewStaticRatesWith(overrides map[string]float64) *StaticRates {
	rates := NewStaticRates()
	for code, factor := range overrides {
		if factor <= 0 {
			continue
		}
		rates.factors[strings.ToUpper(strings.TrimSpace(code))] = factor
	}
	return rates
}

// Lookup возвращает фактор кода; неизвестный код приравнивается к базовой валюте.
func (r *StaticRates) Lookup(code string) float64 {
	factor, ok := r.factors[strings.ToUpper(strings.TrimSpace(code))]
	if !ok || factor <= 0 {
		return 1
	}
	return factor
}

// Converter пересчитывает суммы между валютами через таблицу факторов.
type Converter struct {
	rates RateLookup
}

// NewConverter создает конвертер поверх произвольного источника курсов.
func NewConverter(rates RateLookup) Converter {
	if rates == nil {
		rates = NewStaticRates()
	}
	return Converter{rates: rates}
}

// Convert пересчитывает сумму из одной валюты в другую.
func (c Converter) Convert(amount float64, from, to string) float64 {
	fromFactor := c.rates.Lookup(from)
	toFactor := c.rates.Lookup(to)
	if fromFactor <= 0 {
		fromFactor = 1
	}
	return amount / fromFactor * toFactor
}

// BaseCurrency выбирает базовую валюту пользователя: валюта бюджета, иначе
// самый частый код среди подписок и счетов. При равенстве побеждает код,
// встреченный первым при обходе подписок, затем счетов.
func BaseCurrency(budget *models.BudgetRecord, subs []models.SubscriptionRecord, bills []models.BillRecord) string {
	if budget != nil {
		if code := normalizeCode(budget.Currency); code != "" {
			return code
		}
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0

	observe := func(raw string) {
		code := normalizeCode(raw)
		if code == "" {
			return
		}
		if _, ok := counts[code]; !ok {
			firstSeen[code] = order
			order++
		}
		counts[code]++
	}

	for _, sub := range subs {
		observe(sub.Currency)
	}
	for _, bill := range bills {
		observe(bill.Currency)
	}

	best := ""
	for code, count := range counts {
		if best == "" {
			best = code
			continue
		}
		if count > counts[best] || (count == counts[best] && firstSeen[code] < firstSeen[best]) {
			best = code
		}
	}

	if best == "" {
		return referenceCurrency
	}
	return best
}

func normalizeCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
