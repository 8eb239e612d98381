package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	insertFailureQuery = `
		INSERT INTO persistence_failures (
			failure_id, session_id, user_id, subscription_id,
			step, operation, error_reason, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	selectRecentFailuresQuery = `
		SELECT failure_id, session_id, user_id, subscription_id,
		       step, operation, error_reason, created_at
		FROM persistence_failures
		ORDER BY created_at DESC
		LIMIT $1
	`
)

// Failure is one failed terminal-step write, kept for diagnosis
type Failure struct {
	FailureID      uuid.UUID
	SessionID      string
	UserID         sql.NullString
	SubscriptionID sql.NullString
	Step           string
	Operation      string
	ErrorReason    string
	CreatedAt      time.Time
}

// DBAudit persists terminal-write failures to Postgres
type DBAudit struct {
	db *sql.DB
}

func NewDBAudit(db *sql.DB) *DBAudit {
	return &DBAudit{db: db}
}

// RecordFailure writes one failure row
func (a *DBAudit) RecordFailure(ctx context.Context, sessionID, userID, subscriptionID, step, operation, reason string) error {
	_, err := a.db.ExecContext(ctx, insertFailureQuery,
		uuid.New(),
		sessionID,
		nullable(userID),
		nullable(subscriptionID),
		step,
		operation,
		reason,
		time.Now(),
	)

	if err != nil {
		return fmt.Errorf("failed to persist failure record: %w", err)
	}

	return nil
}

// RecentFailures returns the newest failure rows up to limit
func (a *DBAudit) RecentFailures(ctx context.Context, limit int) ([]Failure, error) {
	rows, err := a.db.QueryContext(ctx, selectRecentFailuresQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query failures: %w", err)
	}
	defer rows.Close()

	var failures []Failure
	for rows.Next() {
		var f Failure
		err := rows.Scan(
			&f.FailureID,
			&f.SessionID,
			&f.UserID,
			&f.SubscriptionID,
			&f.Step,
			&f.Operation,
			&f.ErrorReason,
			&f.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan failure: %w", err)
		}

		failures = append(failures, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate failures: %w", err)
	}

	return failures, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
