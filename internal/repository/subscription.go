package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/subscription-tracker/backend/internal/models"
)

type SubscriptionRepository struct {
	db *pgxpool.Pool
}

// NewSubscriptionRepository создает репозиторий подписок.
func NewSubscriptionRepository(db *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// ListByUser возвращает снапшот подписок пользователя.
func (r *SubscriptionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.SubscriptionRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, name, price, currency, frequency, category, status,
		        start_date, renewal_date, created_at, updated_at
		 FROM subscriptions
		 WHERE user_id = $1
		 ORDER BY created_at, id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := make([]models.SubscriptionRecord, 0)
	for rows.Next() {
		var sub models.SubscriptionRecord

		err := rows.Scan(
			&sub.ID, &sub.UserID, &sub.Name, &sub.Price, &sub.Currency,
			&sub.Frequency, &sub.Category, &sub.Status,
			&sub.StartDate, &sub.RenewalDate, &sub.CreatedAt, &sub.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return subs, nil
}
