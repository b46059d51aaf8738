package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/subscription-tracker/backend/internal/models"
)

type BudgetRepository struct {
	db *pgxpool.Pool
}

// NewBudgetRepository создает репозиторий бюджетов.
func NewBudgetRepository(db *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// GetByUser возвращает бюджет пользователя; если бюджет не задан, ошибка
// оборачивает ErrNotFound.
func (r *BudgetRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*models.BudgetRecord, error) {
	var budget models.BudgetRecord
	var categoryLimits []byte

	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, monthly_limit, currency, category_limits, alert_threshold_pct,
		        created_at, updated_at
		 FROM budgets
		 WHERE user_id = $1`,
		userID,
	).Scan(
		&budget.ID, &budget.UserID, &budget.MonthlyLimit, &budget.Currency,
		&categoryLimits, &budget.AlertThresholdPct, &budget.CreatedAt, &budget.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("budget for user %s: %w", userID, ErrNotFound)
		}
		return nil, err
	}

	if len(categoryLimits) > 0 {
		if err := json.Unmarshal(categoryLimits, &budget.CategoryLimits); err != nil {
			return nil, err
		}
	}

	return &budget, nil
}
