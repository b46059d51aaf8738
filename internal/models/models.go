package models

import (
	"time"

	"github.com/google/uuid"
)

type Frequency string

type SubscriptionStatus string

type BillStatus string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"

	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusPaused    SubscriptionStatus = "paused"

	BillStatusPending BillStatus = "pending"
	BillStatusPaid    BillStatus = "paid"
	BillStatusOverdue BillStatus = "overdue"
)

type SubscriptionRecord struct {
	ID          uuid.UUID          `json:"id"`
	UserID      uuid.UUID          `json:"user_id"`
	Name        string             `json:"name"`
	Price       float64            `json:"price"`
	Currency    string             `json:"currency"`
	Frequency   Frequency          `json:"frequency"`
	Category    string             `json:"category"`
	Status      SubscriptionStatus `json:"status"`
	StartDate   *time.Time         `json:"start_date,omitempty"`
	RenewalDate *time.Time         `json:"renewal_date,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type BillRecord struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Name      string     `json:"name"`
	Amount    float64    `json:"amount"`
	Currency  string     `json:"currency"`
	Category  string     `json:"category"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	Status    BillStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

type BudgetRecord struct {
	ID                uuid.UUID          `json:"id"`
	UserID            uuid.UUID          `json:"user_id"`
	MonthlyLimit      float64            `json:"monthly_limit"`
	Currency          string             `json:"currency"`
	CategoryLimits    map[string]float64 `json:"category_limits,omitempty"`
	AlertThresholdPct float64            `json:"alert_threshold_pct"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}
