package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appwizard "cancelflow/internal/application/wizard"
	"cancelflow/internal/common/configs"
	"cancelflow/internal/common/health"
	"cancelflow/internal/common/logger"
	"cancelflow/internal/infrastructure/analytics"
	"cancelflow/internal/infrastructure/audit"
	httphandler "cancelflow/internal/infrastructure/http"
	"cancelflow/internal/infrastructure/store"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

func main() {
	// Load configuration (.env is optional, env vars win)
	_ = godotenv.Load()
	dbURL := configs.GetDatabaseURL()
	port := configs.GetPort()
	brokers := configs.GetKafkaBrokers()
	idleTimeout := configs.GetSessionIdleTimeout()

	// Initialize logger
	l := logger.NewZerologLogger(configs.ServiceNameWizard)

	// Initialize database
	db, err := initPostgreSQL(dbURL)
	if err != nil {
		l.Error("Failed to initialize database", logger.Field{Key: "error", Value: err})
		os.Exit(1)
	}
	defer db.Close()

	// Initialize persistence adapter
	wizardStore := store.NewPostgresStore(db, l)

	// Initialize analytics publisher
	publisher, err := analytics.NewKafkaPublisher(brokers)
	if err != nil {
		l.Error("Failed to initialize analytics publisher", logger.Field{Key: "error", Value: err})
		os.Exit(1)
	}
	defer publisher.Close()

	// Initialize failure audit
	auditor := audit.NewDBAudit(db)

	// Initialize session manager and HTTP handlers
	sessions := appwizard.NewSessionManager(wizardStore, publisher, auditor, l)
	go evictIdleSessions(sessions, idleTimeout, l)

	wizardHandler := httphandler.NewWizardHandler(sessions)
	auditHandler := httphandler.NewAuditHandler(auditor)

	// Setup HTTP router
	router := setupRouter(wizardHandler, auditHandler, health.NewDBHealthChecker(db))

	// Start HTTP server
	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	l.Info("Starting cancellation wizard", logger.Field{Key: "port", Value: port})

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Error("Server failed", logger.Field{Key: "error", Value: err})
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		l.Error("Server forced to shutdown", logger.Field{Key: "error", Value: err})
	}
}

// evictIdleSessions drops sessions the user walked away from so the
// manager's map does not grow without bound
func evictIdleSessions(sessions *appwizard.SessionManager, idleTimeout time.Duration, l logger.Logger) {
	ticker := time.NewTicker(idleTimeout)
	defer ticker.Stop()

	for range ticker.C {
		if n := sessions.EvictIdle(idleTimeout); n > 0 {
			l.Info("Evicted idle sessions", logger.Field{Key: "count", Value: n})
		}
	}
}

func initPostgreSQL(connString string) (*sql.DB, error) {
	db, err := sql.Open("pgx", connString)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func setupRouter(wizardHandler *httphandler.WizardHandler, auditHandler *httphandler.AuditHandler, checker health.HealthChecker) *gin.Engine {
	router := gin.Default()

	// Health check
	router.GET("/health", func(c *gin.Context) {
		status := checker.Check(c.Request.Context())
		code := http.StatusOK
		if status.Status != "healthy" {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	})

	// API routes
	v1 := router.Group("/api/v1/cancellations")
	{
		v1.POST("", wizardHandler.OpenSession)
		v1.GET("/:id", wizardHandler.GetSession)
		v1.POST("/:id/events", wizardHandler.DispatchEvent)
		v1.POST("/:id/back", wizardHandler.Back)
		v1.DELETE("/:id", wizardHandler.CloseSession)
	}

	// Diagnosis endpoint
	router.GET("/api/v1/admin/persistence-failures", auditHandler.ListFailures)

	return router
}
