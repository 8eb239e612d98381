package wizard

// CountRange is the bucketed answer for "how many roles/companies" questions
type CountRange string

const (
	CountZero        CountRange = "0"
	CountOneToFive   CountRange = "1-5"
	CountSixToTwenty CountRange = "6-20"
	CountTwentyPlus  CountRange = "20+"
)

// InterviewRange uses a different bucketing than the other count questions
type InterviewRange string

const (
	InterviewZero        InterviewRange = "0"
	InterviewOneToTwo    InterviewRange = "1-2"
	InterviewThreeToFive InterviewRange = "3-5"
	InterviewFivePlus    InterviewRange = "5+"
)

// CancelReason is the closed set of reasons on the detailed-reasons step
type CancelReason string

const (
	ReasonTooExpensive       CancelReason = "too-expensive"
	ReasonPlatformNotHelpful CancelReason = "platform-not-helpful"
	ReasonNotEnoughJobs      CancelReason = "not-enough-jobs"
	ReasonDecidedNotToMove   CancelReason = "decided-not-to-move"
	ReasonOther              CancelReason = "other"
)

// JobFoundData holds answers collected on the job-found branch
type JobFoundData struct {
	UsedMigrateMate      *bool
	RolesApplied         CountRange
	CompaniesEmailed     CountRange
	CompaniesInterviewed InterviewRange
	Feedback             string
	VisaHelp             *bool
	VisaType             string
}

// StillLookingData holds answers collected on the still-looking branch
type StillLookingData struct {
	RolesApplied         CountRange
	CompaniesEmailed     CountRange
	CompaniesInterviewed InterviewRange
	Reason               CancelReason
	ReasonDetails        string
}

// FormState holds every answer entered during one wizard session.
// At most one of JobFound / StillLooking is populated; the first
// answer decides the branch.
type FormState struct {
	FoundJob     *bool
	JobFound     *JobFoundData
	StillLooking *StillLookingData

	// errors holds the transient per-step validation message
	errors map[Step]string
}

func NewFormState() *FormState {
	return &FormState{
		errors: make(map[Step]string),
	}
}

// ChooseBranch records the first answer and allocates the matching
// branch data. Re-answering with the same choice keeps the answers
// already entered; flipping the choice (reachable via back navigation)
// discards the abandoned branch so at most one is ever populated.
func (f *FormState) ChooseBranch(foundJob bool) {
	f.FoundJob = &foundJob
	if foundJob {
		f.StillLooking = nil
		if f.JobFound == nil {
			f.JobFound = &JobFoundData{}
		}
	} else {
		f.JobFound = nil
		if f.StillLooking == nil {
			f.StillLooking = &StillLookingData{}
		}
	}
}

// Error returns the validation message for a step, if any
func (f *FormState) Error(step Step) string {
	return f.errors[step]
}

// SetError records a validation message for a step
func (f *FormState) SetError(step Step, msg string) {
	f.errors[step] = msg
}

// ClearError removes the validation message for a step
func (f *FormState) ClearError(step Step) {
	delete(f.errors, step)
}
