package handlers

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"example.com/subscription-tracker/backend/internal/analytics"
	"example.com/subscription-tracker/backend/internal/models"
	"example.com/subscription-tracker/backend/internal/repository"
)

type SubscriptionLister interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.SubscriptionRecord, error)
}

type BillLister interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.BillRecord, error)
}

type BudgetGetter interface {
	GetByUser(ctx context.Context, userID uuid.UUID) (*models.BudgetRecord, error)
}

// SnapshotSource собирает снапшот данных пользователя из репозиториев.
type SnapshotSource struct {
	Subscriptions SubscriptionLister
	Bills         BillLister
	Budgets       BudgetGetter
}

// NewSnapshotSource создает источник снапшотов поверх репозиториев.
func NewSnapshotSource(subs SubscriptionLister, bills BillLister, budgets BudgetGetter) *SnapshotSource {
	return &SnapshotSource{Subscriptions: subs, Bills: bills, Budgets: budgets}
}

// Load возвращает снапшот подписок, счетов и бюджета пользователя.
// Отсутствие бюджета (repository.ErrNotFound) — не ошибка, бюджет остается nil.
func (s *SnapshotSource) Load(ctx context.Context, userID uuid.UUID) (analytics.Snapshot, error) {
	var snap analytics.Snapshot

	subs, err := s.Subscriptions.ListByUser(ctx, userID)
	if err != nil {
		return snap, err
	}

	bills, err := s.Bills.ListByUser(ctx, userID)
	if err != nil {
		return snap, err
	}

	budget, err := s.Budgets.GetByUser(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return snap, err
	}

	snap.Subscriptions = subs
	snap.Bills = bills
	snap.Budget = budget
	return snap, nil
}
