package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStep_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    Step
		to      Step
		allowed bool
	}{
		{
			name:    "initial to congrats form",
			from:    StepInitial,
			to:      StepCongratsForm,
			allowed: true,
		},
		{
			name:    "initial to offer",
			from:    StepInitial,
			to:      StepOffer,
			allowed: true,
		},
		{
			name:    "initial straight to terminal is not allowed",
			from:    StepInitial,
			to:      StepSorryToGo,
			allowed: false,
		},
		{
			name:    "visa help to all done",
			from:    StepVisaHelp,
			to:      StepAllDone,
			allowed: true,
		},
		{
			name:    "visa help to founder message",
			from:    StepVisaHelp,
			to:      StepFounderMessage,
			allowed: true,
		},
		{
			name:    "usage questions back to offer",
			from:    StepUsageQuestions,
			to:      StepOffer,
			allowed: true,
		},
		{
			name:    "detailed reasons back to offer",
			from:    StepDetailedReasons,
			to:      StepOffer,
			allowed: true,
		},
		{
			name:    "detailed reasons to sorry to go",
			from:    StepDetailedReasons,
			to:      StepSorryToGo,
			allowed: true,
		},
		{
			name:    "terminal step has no outgoing transitions",
			from:    StepSorryToGo,
			to:      StepOffer,
			allowed: false,
		},
		{
			name:    "offer accepted is terminal",
			from:    StepOfferAccepted,
			to:      StepInitial,
			allowed: false,
		},
		{
			name:    "unknown step",
			from:    Step("BOGUS"),
			to:      StepOffer,
			allowed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStep_IsTerminal(t *testing.T) {
	terminals := []Step{StepAllDone, StepFounderMessage, StepOfferAccepted, StepSorryToGo}
	for _, s := range terminals {
		assert.True(t, s.IsTerminal(), "expected %s to be terminal", s)
	}

	nonTerminals := []Step{StepInitial, StepCongratsForm, StepFeedbackForm, StepVisaHelp,
		StepOffer, StepUsageQuestions, StepDetailedReasons}
	for _, s := range nonTerminals {
		assert.False(t, s.IsTerminal(), "expected %s not to be terminal", s)
	}
}
