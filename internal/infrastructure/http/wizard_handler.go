package http

import (
	"errors"
	"net/http"

	appwizard "cancelflow/internal/application/wizard"
	"cancelflow/internal/domain/wizard"

	"github.com/gin-gonic/gin"
)

type WizardHandler struct {
	sessions *appwizard.SessionManager
}

func NewWizardHandler(m *appwizard.SessionManager) *WizardHandler {
	return &WizardHandler{
		sessions: m,
	}
}

type OpenSessionRequest struct {
	UserID string `json:"user_id"`
}

type SessionResponse struct {
	SessionID       string `json:"session_id"`
	Step            string `json:"step"`
	Variant         string `json:"variant"`
	OfferPriceCents int64  `json:"offer_price_cents"`
	ErrorMessage    string `json:"error_message,omitempty"`
}

// DispatchRequest is the union of every screen's inputs; Action picks
// the event and the matching fields are read.
type DispatchRequest struct {
	Action               string `json:"action" binding:"required"`
	FoundJob             *bool  `json:"found_job"`
	UsedMigrateMate      *bool  `json:"used_migrate_mate"`
	RolesApplied         string `json:"roles_applied"`
	CompaniesEmailed     string `json:"companies_emailed"`
	CompaniesInterviewed string `json:"companies_interviewed"`
	Feedback             string `json:"feedback"`
	VisaHelp             *bool  `json:"visa_help"`
	VisaType             string `json:"visa_type"`
	Reason               string `json:"reason"`
	ReasonDetails        string `json:"reason_details"`
	WantsDiscount        bool   `json:"wants_discount"`
}

func (h *WizardHandler) OpenSession(c *gin.Context) {
	var req OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID, ctrl := h.sessions.Open(c.Request.Context(), req.UserID)

	c.JSON(http.StatusCreated, SessionResponse{
		SessionID:       sessionID,
		Step:            string(ctrl.Step()),
		Variant:         string(ctrl.Variant()),
		OfferPriceCents: ctrl.OfferPrice(),
	})
}

func (h *WizardHandler) GetSession(c *gin.Context) {
	ctrl, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.sessionResponse(c.Param("id"), ctrl))
}

func (h *WizardHandler) DispatchEvent(c *gin.Context) {
	sessionID := c.Param("id")
	ctrl, err := h.sessions.Get(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	var req DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ev, err := eventFromRequest(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, err = ctrl.Dispatch(c.Request.Context(), ev)
	if err != nil {
		var verr *appwizard.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusUnprocessableEntity, h.sessionResponse(sessionID, ctrl))
		case errors.Is(err, appwizard.ErrInvalidEvent):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, appwizard.ErrWriteInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, appwizard.ErrSessionClosed):
			c.JSON(http.StatusGone, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, h.sessionResponse(sessionID, ctrl))
}

func (h *WizardHandler) Back(c *gin.Context) {
	sessionID := c.Param("id")
	ctrl, err := h.sessions.Get(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	ctrl.Back()

	c.JSON(http.StatusOK, h.sessionResponse(sessionID, ctrl))
}

func (h *WizardHandler) CloseSession(c *gin.Context) {
	if err := h.sessions.Close(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *WizardHandler) sessionResponse(sessionID string, ctrl *appwizard.Controller) SessionResponse {
	return SessionResponse{
		SessionID:       sessionID,
		Step:            string(ctrl.Step()),
		Variant:         string(ctrl.Variant()),
		OfferPriceCents: ctrl.OfferPrice(),
		ErrorMessage:    ctrl.StepError(),
	}
}

func eventFromRequest(req DispatchRequest) (wizard.Event, error) {
	switch req.Action {
	case "chose_branch":
		if req.FoundJob == nil {
			return nil, errors.New("found_job is required")
		}
		return wizard.ChoseBranch{FoundJob: *req.FoundJob}, nil

	case "submit_congrats":
		return wizard.SubmitCongrats{
			UsedMigrateMate:      req.UsedMigrateMate,
			RolesApplied:         wizard.CountRange(req.RolesApplied),
			CompaniesEmailed:     wizard.CountRange(req.CompaniesEmailed),
			CompaniesInterviewed: wizard.InterviewRange(req.CompaniesInterviewed),
		}, nil

	case "submit_feedback":
		return wizard.SubmitFeedback{Feedback: req.Feedback}, nil

	case "submit_visa_help":
		return wizard.SubmitVisaHelp{VisaHelp: req.VisaHelp, VisaType: req.VisaType}, nil

	case "accept_offer":
		return wizard.AcceptOffer{}, nil

	case "decline_offer":
		return wizard.DeclineOffer{}, nil

	case "submit_usage":
		return wizard.SubmitUsage{
			RolesApplied:         wizard.CountRange(req.RolesApplied),
			CompaniesEmailed:     wizard.CountRange(req.CompaniesEmailed),
			CompaniesInterviewed: wizard.InterviewRange(req.CompaniesInterviewed),
			WantsDiscount:        req.WantsDiscount,
		}, nil

	case "submit_reasons":
		return wizard.SubmitReasons{
			Reason:        wizard.CancelReason(req.Reason),
			Details:       req.ReasonDetails,
			WantsDiscount: req.WantsDiscount,
		}, nil
	}

	return nil, errors.New("unknown action: " + req.Action)
}
