package wizard

// Step identifies a screen in the cancellation wizard
type Step string

const (
	// StepInitial is the entry screen asking whether the user found a job
	StepInitial Step = "INITIAL"
	// StepCongratsForm collects job-search stats on the job-found branch
	StepCongratsForm Step = "CONGRATS_FORM"
	// StepFeedbackForm collects free-text feedback on the job-found branch
	StepFeedbackForm Step = "FEEDBACK_FORM"
	// StepVisaHelp asks whether the user needs visa assistance
	StepVisaHelp Step = "VISA_HELP"
	// StepOffer shows the retention discount (still-looking branch)
	StepOffer Step = "OFFER"
	// StepUsageQuestions collects usage stats on the still-looking branch
	StepUsageQuestions Step = "USAGE_QUESTIONS"
	// StepDetailedReasons collects the cancellation reason and details
	StepDetailedReasons Step = "DETAILED_REASONS"

	// Terminal steps
	StepAllDone        Step = "ALL_DONE"
	StepFounderMessage Step = "FOUNDER_MESSAGE"
	StepOfferAccepted  Step = "OFFER_ACCEPTED"
	StepSorryToGo      Step = "SORRY_TO_GO"
)

// validTransitions lists every allowed (from -> to) pair in the step graph.
// Terminal steps have no outgoing transitions.
var validTransitions = map[Step][]Step{
	StepInitial:         {StepCongratsForm, StepOffer},
	StepCongratsForm:    {StepFeedbackForm},
	StepFeedbackForm:    {StepVisaHelp},
	StepVisaHelp:        {StepAllDone, StepFounderMessage},
	StepOffer:           {StepOfferAccepted, StepUsageQuestions},
	StepUsageQuestions:  {StepOffer, StepDetailedReasons},
	StepDetailedReasons: {StepOffer, StepSorryToGo},
	StepAllDone:         {},
	StepFounderMessage:  {},
	StepOfferAccepted:   {},
	StepSorryToGo:       {},
}

// CanTransitionTo checks if a step transition is valid
func (s Step) CanTransitionTo(target Step) bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return false
	}

	for _, step := range allowed {
		if step == target {
			return true
		}
	}

	return false
}

// IsTerminal returns true if the step has no outgoing transitions
func (s Step) IsTerminal() bool {
	switch s {
	case StepAllDone, StepFounderMessage, StepOfferAccepted, StepSorryToGo:
		return true
	}
	return false
}
