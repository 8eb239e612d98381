package store

import (
	"context"
	"errors"

	"cancelflow/internal/domain/subscription"
)

// ErrNoActiveSubscription is returned when a user has no active subscription
var ErrNoActiveSubscription = errors.New("no active subscription")

// Store is the persistence interface consumed by the wizard
type Store interface {
	// FindActiveSubscription returns the user's active subscription.
	// With multiple active rows it picks the most recent and logs the
	// ambiguity rather than failing.
	FindActiveSubscription(ctx context.Context, userID string) (*subscription.Subscription, error)

	// MarkPendingCancellation moves a subscription to pending_cancellation
	MarkPendingCancellation(ctx context.Context, subscriptionID string) error

	// InsertCancellationRecord writes the flattened wizard outcome.
	// Only fields set for the branch taken are non-nil.
	InsertCancellationRecord(ctx context.Context, rec subscription.CancellationRecord) error

	// FindVariant returns a previously persisted variant for the user
	FindVariant(ctx context.Context, userID string) (subscription.Variant, bool, error)

	// SaveVariant persists a variant so later sessions reuse it
	SaveVariant(ctx context.Context, userID string, v subscription.Variant) error
}
