package wizard

import (
	"context"

	"cancelflow/internal/domain/events"
	"cancelflow/internal/domain/subscription"

	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) FindActiveSubscription(ctx context.Context, userID string) (*subscription.Subscription, error) {
	args := m.Called(ctx, userID)
	if sub := args.Get(0); sub != nil {
		return sub.(*subscription.Subscription), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) MarkPendingCancellation(ctx context.Context, subscriptionID string) error {
	args := m.Called(ctx, subscriptionID)
	return args.Error(0)
}

func (m *MockStore) InsertCancellationRecord(ctx context.Context, rec subscription.CancellationRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockStore) FindVariant(ctx context.Context, userID string) (subscription.Variant, bool, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(subscription.Variant), args.Bool(1), args.Error(2)
}

func (m *MockStore) SaveVariant(ctx context.Context, userID string, v subscription.Variant) error {
	args := m.Called(ctx, userID, v)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, event events.Event) error {
	args := m.Called(ctx, topic, event)
	return args.Error(0)
}

type MockAuditor struct {
	mock.Mock
}

func (m *MockAuditor) RecordFailure(ctx context.Context, sessionID, userID, subscriptionID, step, operation, reason string) error {
	args := m.Called(ctx, sessionID, userID, subscriptionID, step, operation, reason)
	return args.Error(0)
}
