package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ministerio-antioquia/antioquia-api/internal/models"
)

// SubscriptionRepository persists Web Push subscriptions.
type SubscriptionRepository struct {
	db *sqlx.DB
}

// NewSubscriptionRepository constructs the repository.
func NewSubscriptionRepository(db *sqlx.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Save stores a subscription, refreshing the keys when the endpoint is
// already known.
func (r *SubscriptionRepository) Save(ctx context.Context, sub *models.PushSubscription) error {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO push_subscriptions (id, endpoint, p256dh, auth, created_at)
	VALUES (:id, :endpoint, :p256dh, :auth, :created_at)
	ON CONFLICT (endpoint) DO UPDATE SET p256dh = EXCLUDED.p256dh, auth = EXCLUDED.auth`
	if _, err := r.db.NamedExecContext(ctx, query, sub); err != nil {
		return fmt.Errorf("save push subscription: %w", err)
	}
	return nil
}

// List returns every stored subscription.
func (r *SubscriptionRepository) List(ctx context.Context) ([]models.PushSubscription, error) {
	const query = `SELECT id, endpoint, p256dh, auth, created_at FROM push_subscriptions ORDER BY created_at ASC`
	var subs []models.PushSubscription
	if err := r.db.SelectContext(ctx, &subs, query); err != nil {
		return nil, fmt.Errorf("list push subscriptions: %w", err)
	}
	return subs, nil
}

// DeleteByEndpoint prunes a subscription whose endpoint is gone.
func (r *SubscriptionRepository) DeleteByEndpoint(ctx context.Context, endpoint string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM push_subscriptions WHERE endpoint = $1`, endpoint); err != nil {
		return fmt.Errorf("delete push subscription: %w", err)
	}
	return nil
}
