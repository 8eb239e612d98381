package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"cancelflow/internal/common/configs"
	"cancelflow/internal/common/logger"
	"cancelflow/internal/domain/events"
	"cancelflow/internal/domain/subscription"
	"cancelflow/internal/domain/wizard"
	"cancelflow/internal/infrastructure/analytics"
	"cancelflow/internal/infrastructure/store"

	"github.com/google/uuid"
)

var (
	// ErrSessionClosed is returned when dispatching to a session that
	// was never opened or has been closed
	ErrSessionClosed = errors.New("session is not open")
	// ErrWriteInFlight rejects mutating dispatches while a terminal
	// write is outstanding
	ErrWriteInFlight = errors.New("terminal write in progress")
)

// Auditor records failed terminal writes for diagnosis
type Auditor interface {
	RecordFailure(ctx context.Context, sessionID, userID, subscriptionID, step, operation, reason string) error
}

// Controller owns one wizard session: current step, navigation
// history, form state and the session's pricing variant. User actions
// are dispatched one at a time; the only asynchronous boundary is the
// terminal persistence write.
type Controller struct {
	store     store.Store
	publisher analytics.Publisher
	auditor   Auditor
	logger    logger.Logger

	mu        sync.Mutex
	sessionID string
	userID    string
	variant   subscription.Variant
	sub       *subscription.Subscription
	current   wizard.Step
	history   []wizard.Step
	form      *wizard.FormState
	opened    bool
	writing   bool
}

func NewController(s store.Store, p analytics.Publisher, a Auditor, l logger.Logger) *Controller {
	return &Controller{
		store:     s,
		publisher: p,
		auditor:   a,
		logger:    l,
	}
}

// Open resets the session to the initial step and assigns the pricing
// variant. A previously persisted variant for the user wins over a
// fresh assignment so the user keeps seeing the same price across
// sessions. Store lookups here are best-effort: failures are logged
// and the session still opens.
func (c *Controller) Open(ctx context.Context, userID string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sessionID = uuid.New().String()
	c.userID = userID
	c.form = wizard.NewFormState()
	c.current = wizard.StepInitial
	c.history = []wizard.Step{wizard.StepInitial}
	c.opened = true
	c.writing = false
	c.sub = nil

	c.assignVariant(ctx)
	c.loadSubscription(ctx)

	return c.sessionID
}

func (c *Controller) assignVariant(ctx context.Context) {
	reused := false

	if c.userID != "" {
		v, found, err := c.store.FindVariant(ctx, c.userID)
		if err != nil {
			c.logger.Warn("Failed to look up persisted variant",
				logger.Field{Key: "user_id", Value: c.userID},
				logger.Field{Key: "error", Value: err})
		}
		if found {
			c.variant = v
			reused = true
		}
	}

	if !reused {
		c.variant = AssignVariant(c.userID)
		if c.userID != "" {
			if err := c.store.SaveVariant(ctx, c.userID, c.variant); err != nil {
				c.logger.Warn("Failed to persist variant",
					logger.Field{Key: "user_id", Value: c.userID},
					logger.Field{Key: "error", Value: err})
			}
		}
	}

	c.publish(ctx, events.NewVariantAssigned(c.sessionID, c.userID, string(c.variant), c.userID == "", reused))

	c.logger.Info("Variant assigned",
		logger.Field{Key: "session_id", Value: c.sessionID},
		logger.Field{Key: "variant", Value: string(c.variant)},
		logger.Field{Key: "anonymous", Value: c.userID == ""})
}

func (c *Controller) loadSubscription(ctx context.Context) {
	if c.userID == "" {
		return
	}

	sub, err := c.store.FindActiveSubscription(ctx, c.userID)
	if err != nil {
		if errors.Is(err, store.ErrNoActiveSubscription) {
			c.logger.Warn("No active subscription for user",
				logger.Field{Key: "user_id", Value: c.userID})
			return
		}
		c.logger.Error("Failed to load subscription",
			logger.Field{Key: "user_id", Value: c.userID},
			logger.Field{Key: "error", Value: err})
		return
	}

	c.sub = sub
}

// Dispatch processes one user action: events foreign to the current
// step are rejected without touching the form, otherwise the payload
// is folded in, the current step's validator gates the transition,
// and entering a terminal step triggers the persistence writes before
// the step advances. A failed write leaves the session on the current
// step with the form intact so the terminal action can be retried.
func (c *Controller) Dispatch(ctx context.Context, ev wizard.Event) (wizard.Step, error) {
	c.mu.Lock()

	if !c.opened {
		c.mu.Unlock()
		return "", ErrSessionClosed
	}
	if c.writing {
		current := c.current
		c.mu.Unlock()
		return current, ErrWriteInFlight
	}

	// A foreign event must not touch the form or its error messages
	if !eventAllowed(c.current, ev) {
		current := c.current
		c.mu.Unlock()
		return current, ErrInvalidEvent
	}

	applyEvent(c.form, c.current, ev)

	if verr := validateStep(c.current, c.form); verr != nil {
		c.form.SetError(c.current, verr.Message)
		current := c.current
		c.mu.Unlock()
		return current, verr
	}
	c.form.ClearError(c.current)

	next, err := Next(c.current, ev, c.form)
	if err != nil {
		current := c.current
		c.mu.Unlock()
		return current, err
	}

	if next.IsTerminal() {
		c.writing = true
		c.mu.Unlock()

		persistErr := c.persistOutcome(ctx, next)

		c.mu.Lock()
		c.writing = false
		if persistErr != nil {
			current := c.current
			c.mu.Unlock()
			return current, persistErr
		}
	}

	c.history = append(c.history, next)
	c.current = next
	c.mu.Unlock()

	return next, nil
}

// Back pops the history stack and re-enters the previous step. It is
// a view operation only: no re-validation, no form rollback. With a
// single entry it is a no-op.
func (c *Controller) Back() wizard.Step {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.history) <= 1 {
		return c.current
	}

	c.history = c.history[:len(c.history)-1]
	c.current = c.history[len(c.history)-1]

	return c.current
}

// Close resets all session state. Nothing is persisted implicitly.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.opened = false
	c.form = nil
	c.history = nil
	c.current = ""
	c.variant = ""
	c.sub = nil
	c.userID = ""
}

// Step returns the session's current step
func (c *Controller) Step() wizard.Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Variant returns the variant assigned when the session opened
func (c *Controller) Variant() subscription.Variant {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.variant
}

// StepError returns the pending validation message for the current
// step, if any
func (c *Controller) StepError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.form == nil {
		return ""
	}
	return c.form.Error(c.current)
}

// OfferPrice returns the discounted monthly price in cents for the
// session's variant, or zero when no subscription is known
func (c *Controller) OfferPrice() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sub == nil {
		return 0
	}
	return DownsellPrice(c.sub.MonthlyPrice, c.variant)
}

func (c *Controller) persistOutcome(ctx context.Context, terminal wizard.Step) error {
	c.mu.Lock()
	sub := c.sub
	userID := c.userID
	sessionID := c.sessionID
	c.mu.Unlock()

	if sub == nil {
		// Nothing to write against; anonymous sessions and users
		// without an active subscription still reach the closing
		// screens.
		c.logger.Warn("Skipping terminal persistence, no subscription",
			logger.Field{Key: "session_id", Value: sessionID},
			logger.Field{Key: "user_id", Value: userID},
			logger.Field{Key: "step", Value: string(terminal)})
		return nil
	}

	accepted := terminal == wizard.StepOfferAccepted

	// Accepted downsell keeps the subscription active; every other
	// terminal outcome is a cancellation.
	if !accepted {
		if err := c.store.MarkPendingCancellation(ctx, sub.ID); err != nil {
			c.reportWriteFailure(ctx, terminal, "mark_pending_cancellation", err)
			return fmt.Errorf("failed to mark subscription pending cancellation: %w", err)
		}
	}

	rec := c.buildRecord(sub, accepted)
	if err := c.store.InsertCancellationRecord(ctx, rec); err != nil {
		c.reportWriteFailure(ctx, terminal, "insert_cancellation_record", err)
		return fmt.Errorf("failed to insert cancellation record: %w", err)
	}

	c.publishOutcome(ctx, terminal, sub, accepted)

	c.logger.Info("Cancellation outcome persisted",
		logger.Field{Key: "session_id", Value: sessionID},
		logger.Field{Key: "subscription_id", Value: sub.ID},
		logger.Field{Key: "step", Value: string(terminal)},
		logger.Field{Key: "accepted_discount", Value: accepted})

	return nil
}

func (c *Controller) buildRecord(sub *subscription.Subscription, accepted bool) subscription.CancellationRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec := subscription.CancellationRecord{
		ID:               uuid.New().String(),
		UserID:           c.userID,
		SubscriptionID:   sub.ID,
		Variant:          c.variant,
		FoundJob:         c.form.FoundJob,
		AcceptedDiscount: accepted,
		CreatedAt:        time.Now(),
	}

	if jf := c.form.JobFound; jf != nil {
		rec.UsedMigrateMate = jf.UsedMigrateMate
		rec.RolesApplied = optional(string(jf.RolesApplied))
		rec.CompaniesEmailed = optional(string(jf.CompaniesEmailed))
		rec.CompaniesInterviewed = optional(string(jf.CompaniesInterviewed))
		rec.Feedback = optional(jf.Feedback)
		rec.VisaHelp = jf.VisaHelp
		rec.VisaType = optional(jf.VisaType)
	}

	if sl := c.form.StillLooking; sl != nil {
		rec.UsageRolesApplied = optional(string(sl.RolesApplied))
		rec.UsageCompaniesEmailed = optional(string(sl.CompaniesEmailed))
		rec.UsageCompaniesInterviewed = optional(string(sl.CompaniesInterviewed))
		rec.Reason = optional(string(sl.Reason))
		rec.ReasonDetails = optional(sl.ReasonDetails)
	}

	return rec
}

func (c *Controller) publishOutcome(ctx context.Context, terminal wizard.Step, sub *subscription.Subscription, accepted bool) {
	c.mu.Lock()
	sessionID := c.sessionID
	userID := c.userID
	variant := c.variant
	foundJob := c.form.FoundJob != nil && *c.form.FoundJob
	reason := ""
	if sl := c.form.StillLooking; sl != nil {
		reason = string(sl.Reason)
	}
	c.mu.Unlock()

	if accepted {
		c.publish(ctx, events.NewDownsellAccepted(sessionID, userID, sub.ID, string(variant),
			DownsellPrice(sub.MonthlyPrice, variant)))
		return
	}

	c.publish(ctx, events.NewCancellationCompleted(sessionID, userID, sub.ID, string(variant), foundJob, reason))
}

func (c *Controller) publish(ctx context.Context, event events.Event) {
	if c.publisher == nil {
		return
	}

	if err := c.publisher.Publish(ctx, configs.TopicCancellations, event); err != nil {
		c.logger.Warn("Failed to publish analytics event",
			logger.Field{Key: "event_type", Value: event.Type()},
			logger.Field{Key: "error", Value: err})
	}
}

func (c *Controller) reportWriteFailure(ctx context.Context, terminal wizard.Step, operation string, cause error) {
	c.mu.Lock()
	sessionID := c.sessionID
	userID := c.userID
	subscriptionID := ""
	if c.sub != nil {
		subscriptionID = c.sub.ID
	}
	c.mu.Unlock()

	c.logger.Error("Terminal write failed",
		logger.Field{Key: "session_id", Value: sessionID},
		logger.Field{Key: "user_id", Value: userID},
		logger.Field{Key: "subscription_id", Value: subscriptionID},
		logger.Field{Key: "step", Value: string(terminal)},
		logger.Field{Key: "operation", Value: operation},
		logger.Field{Key: "error", Value: cause})

	if c.auditor == nil {
		return
	}

	if err := c.auditor.RecordFailure(ctx, sessionID, userID, subscriptionID, string(terminal), operation, cause.Error()); err != nil {
		c.logger.Warn("Failed to record audit entry",
			logger.Field{Key: "session_id", Value: sessionID},
			logger.Field{Key: "error", Value: err})
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
