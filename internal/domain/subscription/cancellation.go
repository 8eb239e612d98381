package subscription

import "time"

// CancellationRecord is the flattened snapshot written once at a
// terminal wizard step. Fields from the branch not taken stay nil so
// the store writes NULL rather than a forced default.
type CancellationRecord struct {
	ID             string
	UserID         string
	SubscriptionID string
	Variant        Variant

	// job-found branch
	FoundJob             *bool
	UsedMigrateMate      *bool
	RolesApplied         *string
	CompaniesEmailed     *string
	CompaniesInterviewed *string
	Feedback             *string
	VisaHelp             *bool
	VisaType             *string

	// still-looking branch
	UsageRolesApplied         *string
	UsageCompaniesEmailed     *string
	UsageCompaniesInterviewed *string
	Reason                    *string
	ReasonDetails             *string

	AcceptedDiscount bool
	CreatedAt        time.Time
}
