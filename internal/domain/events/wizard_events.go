package events

import (
	"github.com/google/uuid"
)

const (
	TypeVariantAssigned       = "VariantAssigned"
	TypeDownsellAccepted      = "DownsellAccepted"
	TypeCancellationCompleted = "CancellationCompleted"
)

// VariantAssignedData records a pricing-variant assignment. UserID is
// empty for anonymous sessions.
type VariantAssignedData struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id,omitempty"`
	Variant   string `json:"variant"`
	Anonymous bool   `json:"anonymous"`
	Reused    bool   `json:"reused"`
}

// NewVariantAssigned creates a VariantAssigned event
func NewVariantAssigned(sessionID, userID, variant string, anonymous, reused bool) Event {
	data := VariantAssignedData{
		SessionID: sessionID,
		UserID:    userID,
		Variant:   variant,
		Anonymous: anonymous,
		Reused:    reused,
	}

	return NewBaseEvent(uuid.New().String(), TypeVariantAssigned, sessionID, data)
}

// DownsellAcceptedData records a user taking the retention discount
type DownsellAcceptedData struct {
	SessionID      string `json:"session_id"`
	UserID         string `json:"user_id"`
	SubscriptionID string `json:"subscription_id"`
	Variant        string `json:"variant"`
	OfferPrice     int64  `json:"offer_price_cents"`
}

// NewDownsellAccepted creates a DownsellAccepted event
func NewDownsellAccepted(sessionID, userID, subscriptionID, variant string, offerPrice int64) Event {
	data := DownsellAcceptedData{
		SessionID:      sessionID,
		UserID:         userID,
		SubscriptionID: subscriptionID,
		Variant:        variant,
		OfferPrice:     offerPrice,
	}

	return NewBaseEvent(uuid.New().String(), TypeDownsellAccepted, sessionID, data)
}

// CancellationCompletedData records a completed cancellation outcome
type CancellationCompletedData struct {
	SessionID      string `json:"session_id"`
	UserID         string `json:"user_id"`
	SubscriptionID string `json:"subscription_id"`
	Variant        string `json:"variant"`
	FoundJob       bool   `json:"found_job"`
	Reason         string `json:"reason,omitempty"`
}

// NewCancellationCompleted creates a CancellationCompleted event
func NewCancellationCompleted(sessionID, userID, subscriptionID, variant string, foundJob bool, reason string) Event {
	data := CancellationCompletedData{
		SessionID:      sessionID,
		UserID:         userID,
		SubscriptionID: subscriptionID,
		Variant:        variant,
		FoundJob:       foundJob,
		Reason:         reason,
	}

	return NewBaseEvent(uuid.New().String(), TypeCancellationCompleted, sessionID, data)
}
