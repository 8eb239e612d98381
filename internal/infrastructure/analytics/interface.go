package analytics

import (
	"context"

	"cancelflow/internal/domain/events"
)

// Publisher delivers analytics events. Delivery is best-effort: the
// wizard logs failures and moves on.
type Publisher interface {
	Publish(ctx context.Context, topic string, event events.Event) error
}
