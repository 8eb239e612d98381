package wizard

import (
	"fmt"
	"strconv"
	"strings"

	"cancelflow/internal/domain/wizard"
)

const minReasonDetailsLength = 25

// ValidationError blocks a single forward transition. It carries the
// step-scoped message surfaced inline to the user.
type ValidationError struct {
	Step    wizard.Step
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on step %s: %s", e.Step, e.Message)
}

// validateStep checks the forward-transition predicate for the current
// step against the form. Steps without a validator always pass.
func validateStep(step wizard.Step, form *wizard.FormState) *ValidationError {
	switch step {
	case wizard.StepCongratsForm:
		return validateCongratsForm(form)
	case wizard.StepVisaHelp:
		return validateVisaHelp(form)
	case wizard.StepUsageQuestions:
		return validateUsageQuestions(form)
	case wizard.StepDetailedReasons:
		return validateDetailedReasons(form)
	}

	return nil
}

func validateCongratsForm(form *wizard.FormState) *ValidationError {
	jf := form.JobFound
	if jf == nil || jf.UsedMigrateMate == nil || jf.RolesApplied == "" ||
		jf.CompaniesEmailed == "" || jf.CompaniesInterviewed == "" {
		return &ValidationError{
			Step:    wizard.StepCongratsForm,
			Message: "Please answer all questions to continue",
		}
	}

	return nil
}

func validateVisaHelp(form *wizard.FormState) *ValidationError {
	jf := form.JobFound
	if jf == nil || jf.VisaHelp == nil {
		return &ValidationError{
			Step:    wizard.StepVisaHelp,
			Message: "Please let us know if you need visa help",
		}
	}

	if strings.TrimSpace(jf.VisaType) == "" {
		return &ValidationError{
			Step:    wizard.StepVisaHelp,
			Message: "Please enter your visa type",
		}
	}

	return nil
}

func validateUsageQuestions(form *wizard.FormState) *ValidationError {
	sl := form.StillLooking
	if sl == nil || sl.RolesApplied == "" || sl.CompaniesEmailed == "" || sl.CompaniesInterviewed == "" {
		return &ValidationError{
			Step:    wizard.StepUsageQuestions,
			Message: "Please answer all questions to continue",
		}
	}

	return nil
}

func validateDetailedReasons(form *wizard.FormState) *ValidationError {
	sl := form.StillLooking
	if sl == nil || sl.Reason == "" {
		return &ValidationError{
			Step:    wizard.StepDetailedReasons,
			Message: "Please select a reason for cancelling",
		}
	}

	if sl.Reason == wizard.ReasonTooExpensive {
		if _, err := strconv.ParseFloat(strings.TrimSpace(sl.ReasonDetails), 64); err != nil {
			return &ValidationError{
				Step:    wizard.StepDetailedReasons,
				Message: "Please enter the amount you would be willing to pay",
			}
		}
		return nil
	}

	// character count, not word count
	if len([]rune(sl.ReasonDetails)) < minReasonDetailsLength {
		return &ValidationError{
			Step:    wizard.StepDetailedReasons,
			Message: fmt.Sprintf("Please tell us a bit more (at least %d characters)", minReasonDetailsLength),
		}
	}

	return nil
}
