package subscription

import "time"

// Status represents the billing state of a subscription
type Status string

const (
	// StatusActive indicates the subscription is billing normally
	StatusActive Status = "active"
	// StatusPendingCancellation indicates the user completed the
	// cancellation wizard; billing stops at period end
	StatusPendingCancellation Status = "pending_cancellation"
	// StatusCancelled indicates the subscription has ended
	StatusCancelled Status = "cancelled"
)

// Variant is the pricing-treatment tag assigned per user session
type Variant string

const (
	VariantA Variant = "A"
	VariantB Variant = "B"
)

// Subscription mirrors the subscriptions table row read by the wizard
type Subscription struct {
	ID           string
	UserID       string
	Plan         string
	MonthlyPrice int64 // cents
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
