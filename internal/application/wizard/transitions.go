package wizard

import (
	"errors"

	"cancelflow/internal/domain/wizard"
)

// ErrInvalidEvent is returned when an event does not apply to the
// current step
var ErrInvalidEvent = errors.New("event not valid for current step")

// allowedEvents lists the user actions each step accepts. It mirrors
// the Next switch below; terminal steps accept nothing.
var allowedEvents = map[wizard.Step][]wizard.EventKind{
	wizard.StepInitial:         {wizard.EventChoseBranch},
	wizard.StepCongratsForm:    {wizard.EventSubmitCongrats},
	wizard.StepFeedbackForm:    {wizard.EventSubmitFeedback},
	wizard.StepVisaHelp:        {wizard.EventSubmitVisaHelp},
	wizard.StepOffer:           {wizard.EventAcceptOffer, wizard.EventDeclineOffer},
	wizard.StepUsageQuestions:  {wizard.EventSubmitUsage},
	wizard.StepDetailedReasons: {wizard.EventSubmitReasons},
}

// eventAllowed reports whether the step accepts the event. Foreign
// events must be rejected before their payload is folded into the
// form.
func eventAllowed(step wizard.Step, ev wizard.Event) bool {
	for _, kind := range allowedEvents[step] {
		if ev.Kind() == kind {
			return true
		}
	}
	return false
}

// Next is the pure transition function of the step graph: given the
// current step, the dispatched event and the form, it yields the next
// step. It never mutates the form.
func Next(current wizard.Step, ev wizard.Event, form *wizard.FormState) (wizard.Step, error) {
	switch current {
	case wizard.StepInitial:
		if e, ok := ev.(wizard.ChoseBranch); ok {
			if e.FoundJob {
				return wizard.StepCongratsForm, nil
			}
			return wizard.StepOffer, nil
		}

	case wizard.StepCongratsForm:
		if _, ok := ev.(wizard.SubmitCongrats); ok {
			return wizard.StepFeedbackForm, nil
		}

	case wizard.StepFeedbackForm:
		if _, ok := ev.(wizard.SubmitFeedback); ok {
			return wizard.StepVisaHelp, nil
		}

	case wizard.StepVisaHelp:
		if _, ok := ev.(wizard.SubmitVisaHelp); ok {
			if form.JobFound != nil && form.JobFound.VisaHelp != nil && *form.JobFound.VisaHelp {
				return wizard.StepAllDone, nil
			}
			return wizard.StepFounderMessage, nil
		}

	case wizard.StepOffer:
		switch ev.(type) {
		case wizard.AcceptOffer:
			return wizard.StepOfferAccepted, nil
		case wizard.DeclineOffer:
			return wizard.StepUsageQuestions, nil
		}

	case wizard.StepUsageQuestions:
		if e, ok := ev.(wizard.SubmitUsage); ok {
			if e.WantsDiscount {
				return wizard.StepOffer, nil
			}
			return wizard.StepDetailedReasons, nil
		}

	case wizard.StepDetailedReasons:
		if e, ok := ev.(wizard.SubmitReasons); ok {
			if e.WantsDiscount {
				return wizard.StepOffer, nil
			}
			return wizard.StepSorryToGo, nil
		}
	}

	return current, ErrInvalidEvent
}

// applyEvent folds an event's payload into the form, the same way the
// user editing the screen's inputs would. Editing clears the step's
// pending validation message.
func applyEvent(form *wizard.FormState, step wizard.Step, ev wizard.Event) {
	form.ClearError(step)

	switch e := ev.(type) {
	case wizard.ChoseBranch:
		form.ChooseBranch(e.FoundJob)

	case wizard.SubmitCongrats:
		if form.JobFound == nil {
			return
		}
		form.JobFound.UsedMigrateMate = e.UsedMigrateMate
		form.JobFound.RolesApplied = e.RolesApplied
		form.JobFound.CompaniesEmailed = e.CompaniesEmailed
		form.JobFound.CompaniesInterviewed = e.CompaniesInterviewed

	case wizard.SubmitFeedback:
		if form.JobFound == nil {
			return
		}
		form.JobFound.Feedback = e.Feedback

	case wizard.SubmitVisaHelp:
		if form.JobFound == nil {
			return
		}
		form.JobFound.VisaHelp = e.VisaHelp
		form.JobFound.VisaType = e.VisaType

	case wizard.SubmitUsage:
		if form.StillLooking == nil {
			return
		}
		form.StillLooking.RolesApplied = e.RolesApplied
		form.StillLooking.CompaniesEmailed = e.CompaniesEmailed
		form.StillLooking.CompaniesInterviewed = e.CompaniesInterviewed

	case wizard.SubmitReasons:
		if form.StillLooking == nil {
			return
		}
		form.StillLooking.Reason = e.Reason
		form.StillLooking.ReasonDetails = e.Details
	}
}
