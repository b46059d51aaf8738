package analytics

import (
	"time"

	"github.com/google/uuid"

	"example.com/subscription-tracker/backend/internal/models"
)

var testNow = time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)

func testSub(name string, price float64, currency string, frequency models.Frequency) models.SubscriptionRecord {
	return models.SubscriptionRecord{
		ID:        uuid.New(),
		Name:      name,
		Price:     price,
		Currency:  currency,
		Frequency: frequency,
		Status:    models.SubscriptionStatusActive,
	}
}

func datePtr(t time.Time) *time.Time {
	return &t
}
