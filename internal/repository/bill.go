package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/subscription-tracker/backend/internal/models"
)

type BillRepository struct {
	db *pgxpool.Pool
}

// NewBillRepository создает репозиторий счетов.
func NewBillRepository(db *pgxpool.Pool) *BillRepository {
	return &BillRepository{db: db}
}

// ListByUser возвращает снапшот счетов пользователя.
func (r *BillRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.BillRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, name, amount, currency, category, due_date, status, created_at
		 FROM bills
		 WHERE user_id = $1
		 ORDER BY created_at, id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bills := make([]models.BillRecord, 0)
	for rows.Next() {
		var bill models.BillRecord

		err := rows.Scan(
			&bill.ID, &bill.UserID, &bill.Name, &bill.Amount, &bill.Currency,
			&bill.Category, &bill.DueDate, &bill.Status, &bill.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		bills = append(bills, bill)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bills, nil
}
