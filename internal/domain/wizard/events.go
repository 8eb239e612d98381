package wizard

// EventKind discriminates user actions dispatched to the wizard
type EventKind string

const (
	EventChoseBranch    EventKind = "ChoseBranch"
	EventSubmitCongrats EventKind = "SubmitCongrats"
	EventSubmitFeedback EventKind = "SubmitFeedback"
	EventSubmitVisaHelp EventKind = "SubmitVisaHelp"
	EventAcceptOffer    EventKind = "AcceptOffer"
	EventDeclineOffer   EventKind = "DeclineOffer"
	EventSubmitUsage    EventKind = "SubmitUsage"
	EventSubmitReasons  EventKind = "SubmitReasons"
)

// Event is a user action plus the form inputs edited on that screen.
// Rendering stays outside; the transition function consumes these.
type Event interface {
	Kind() EventKind
}

// ChoseBranch is the first answer: found a job or still looking
type ChoseBranch struct {
	FoundJob bool
}

func (ChoseBranch) Kind() EventKind { return EventChoseBranch }

// SubmitCongrats carries the job-found usage answers
type SubmitCongrats struct {
	UsedMigrateMate      *bool
	RolesApplied         CountRange
	CompaniesEmailed     CountRange
	CompaniesInterviewed InterviewRange
}

func (SubmitCongrats) Kind() EventKind { return EventSubmitCongrats }

// SubmitFeedback carries the free-text feedback
type SubmitFeedback struct {
	Feedback string
}

func (SubmitFeedback) Kind() EventKind { return EventSubmitFeedback }

// SubmitVisaHelp carries the visa answers; VisaHelp decides which
// terminal screen follows
type SubmitVisaHelp struct {
	VisaHelp *bool
	VisaType string
}

func (SubmitVisaHelp) Kind() EventKind { return EventSubmitVisaHelp }

// AcceptOffer accepts the retention discount
type AcceptOffer struct{}

func (AcceptOffer) Kind() EventKind { return EventAcceptOffer }

// DeclineOffer declines the retention discount
type DeclineOffer struct{}

func (DeclineOffer) Kind() EventKind { return EventDeclineOffer }

// SubmitUsage carries the still-looking usage answers. WantsDiscount
// routes back to the offer instead of forward to detailed reasons.
type SubmitUsage struct {
	RolesApplied         CountRange
	CompaniesEmailed     CountRange
	CompaniesInterviewed InterviewRange
	WantsDiscount        bool
}

func (SubmitUsage) Kind() EventKind { return EventSubmitUsage }

// SubmitReasons carries the cancellation reason. WantsDiscount routes
// back to the offer; otherwise the cancellation completes.
type SubmitReasons struct {
	Reason        CancelReason
	Details       string
	WantsDiscount bool
}

func (SubmitReasons) Kind() EventKind { return EventSubmitReasons }
