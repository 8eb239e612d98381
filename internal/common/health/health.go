package health

import (
	"context"
	"database/sql"
)

type HealthChecker interface {
	Check(ctx context.Context) HealthStatus
}

type HealthStatus struct {
	Status string `json:"status"`
}

// DBHealthChecker reports healthy while the database answers pings
type DBHealthChecker struct {
	db *sql.DB
}

func NewDBHealthChecker(db *sql.DB) *DBHealthChecker {
	return &DBHealthChecker{db: db}
}

// Check performs a health check
func (hc *DBHealthChecker) Check(ctx context.Context) HealthStatus {
	if err := hc.db.PingContext(ctx); err != nil {
		return HealthStatus{Status: "unhealthy"}
	}
	return HealthStatus{Status: "healthy"}
}

type MockHealthChecker struct{}

func NewMockHealthChecker() *MockHealthChecker {
	return &MockHealthChecker{}
}

// Check performs a health check
func (mh *MockHealthChecker) Check(ctx context.Context) HealthStatus {
	return HealthStatus{Status: "healthy"}
}
