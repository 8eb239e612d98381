package store

import (
	"context"
	"database/sql"
	"fmt"

	"cancelflow/internal/common/logger"
	"cancelflow/internal/domain/subscription"
)

const (
	selectActiveSubscriptionsQuery = `
		SELECT id, user_id, plan, monthly_price, status, created_at, updated_at
		FROM subscriptions
		WHERE user_id = $1 AND status = 'active'
		ORDER BY created_at DESC
	`

	updatePendingCancellationQuery = `
		UPDATE subscriptions
		SET status = 'pending_cancellation', updated_at = NOW()
		WHERE id = $1
	`

	insertCancellationQuery = `
		INSERT INTO cancellations (
			id, user_id, subscription_id, variant,
			found_job, used_migrate_mate, roles_applied, companies_emailed, companies_interviewed,
			feedback, visa_help, visa_type,
			usage_roles_applied, usage_companies_emailed, usage_companies_interviewed,
			reason, reason_details,
			accepted_discount, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19
		)
	`

	selectVariantQuery = `
		SELECT variant FROM user_variants WHERE user_id = $1
	`

	insertVariantQuery = `
		INSERT INTO user_variants (user_id, variant, assigned_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO NOTHING
	`
)

type PostgresStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgresStore(db *sql.DB, l logger.Logger) *PostgresStore {
	return &PostgresStore{db: db, logger: l}
}

func (ps *PostgresStore) FindActiveSubscription(ctx context.Context, userID string) (*subscription.Subscription, error) {
	rows, err := ps.db.QueryContext(ctx, selectActiveSubscriptionsQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []*subscription.Subscription
	for rows.Next() {
		var s subscription.Subscription
		if err := rows.Scan(&s.ID, &s.UserID, &s.Plan, &s.MonthlyPrice, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscriptions: %w", err)
	}

	if len(subs) == 0 {
		return nil, ErrNoActiveSubscription
	}

	if len(subs) > 1 {
		ps.logger.Warn("Multiple active subscriptions for user, picking most recent",
			logger.Field{Key: "user_id", Value: userID},
			logger.Field{Key: "count", Value: len(subs)},
			logger.Field{Key: "picked", Value: subs[0].ID})
	}

	return subs[0], nil
}

func (ps *PostgresStore) MarkPendingCancellation(ctx context.Context, subscriptionID string) error {
	if _, err := ps.db.ExecContext(ctx, updatePendingCancellationQuery, subscriptionID); err != nil {
		return fmt.Errorf("failed to mark subscription pending cancellation: %w", err)
	}

	return nil
}

func (ps *PostgresStore) InsertCancellationRecord(ctx context.Context, rec subscription.CancellationRecord) error {
	_, err := ps.db.ExecContext(ctx, insertCancellationQuery,
		rec.ID,
		rec.UserID,
		rec.SubscriptionID,
		string(rec.Variant),
		rec.FoundJob,
		rec.UsedMigrateMate,
		rec.RolesApplied,
		rec.CompaniesEmailed,
		rec.CompaniesInterviewed,
		rec.Feedback,
		rec.VisaHelp,
		rec.VisaType,
		rec.UsageRolesApplied,
		rec.UsageCompaniesEmailed,
		rec.UsageCompaniesInterviewed,
		rec.Reason,
		rec.ReasonDetails,
		rec.AcceptedDiscount,
		rec.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to insert cancellation record: %w", err)
	}

	return nil
}

func (ps *PostgresStore) FindVariant(ctx context.Context, userID string) (subscription.Variant, bool, error) {
	var variant string
	err := ps.db.QueryRowContext(ctx, selectVariantQuery, userID).Scan(&variant)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query variant: %w", err)
	}

	return subscription.Variant(variant), true, nil
}

func (ps *PostgresStore) SaveVariant(ctx context.Context, userID string, v subscription.Variant) error {
	if _, err := ps.db.ExecContext(ctx, insertVariantQuery, userID, string(v)); err != nil {
		return fmt.Errorf("failed to save variant: %w", err)
	}

	return nil
}
