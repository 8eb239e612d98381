package http

import (
	"net/http"
	"strconv"

	"cancelflow/internal/infrastructure/audit"

	"github.com/gin-gonic/gin"
)

const defaultFailureLimit = 50

// AuditHandler exposes the persistence-failure log for diagnosis
type AuditHandler struct {
	audit *audit.DBAudit
}

func NewAuditHandler(a *audit.DBAudit) *AuditHandler {
	return &AuditHandler{
		audit: a,
	}
}

func (h *AuditHandler) ListFailures(c *gin.Context) {
	limit := defaultFailureLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	failures, err := h.audit.RecentFailures(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"failures": failures})
}
