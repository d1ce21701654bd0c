package services

import (
	"context"
	"fmt"

	"github.com/localnerve/visionfolio/internal/utils"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Store        string            `json:"store"`
	Database     string            `json:"database"`
	Assistant    string            `json:"assistant"`
	Mail         string            `json:"mail"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthInputs names what a health check inspects. Nil members are reported
// as "disabled" and never fail the check.
type HealthInputs struct {
	Store           *Store
	DB              *gorm.DB
	GenAIConfigured bool
	PingMail        func(ctx context.Context, host, port string) error
	Log             zerolog.Logger
}

// HealthCheck performs a health check of the service. A failing database is
// unhealthy; an unreachable mail host only degrades the service.
func HealthCheck(ctx context.Context, in HealthInputs) HealthCheckResult {
	result := HealthCheckResult{
		Status:    "healthy",
		Store:     "disabled",
		Database:  "disabled",
		Assistant: "disabled",
		Mail:      "disabled",
		Details:   make(map[string]string),
	}

	fail := func(status, msg string) {
		if result.Status != "unhealthy" {
			result.Status = status
		}
		if result.ErrorMessage == "" {
			result.ErrorMessage = msg
		} else {
			result.ErrorMessage += "; " + msg
		}
	}

	if in.Store != nil {
		result.Store = "ok"
		result.Details["locale"] = in.Store.Locale()
		result.Details["content_version"] = fmt.Sprintf("%d", in.Store.Version())
	}

	// Check database connectivity
	if in.DB != nil {
		sqlDB, err := in.DB.DB()
		if err != nil {
			result.Database = "error"
			result.Details["database_error"] = err.Error()
			fail("unhealthy", fmt.Sprintf("Database connection error: %v", err))
			in.Log.Error().Err(err).Msg("Health check failed - database connection")
		} else if err := sqlDB.PingContext(ctx); err != nil {
			result.Database = "unreachable"
			result.Details["database_ping_error"] = err.Error()
			fail("unhealthy", fmt.Sprintf("Database ping failed: %v", err))
			in.Log.Error().Err(err).Msg("Health check failed - database ping")
		} else {
			result.Database = "ok"
			result.Details["database_type"] = in.DB.Dialector.Name()
		}
	}

	if in.GenAIConfigured {
		result.Assistant = "ok"
	} else {
		result.Assistant = "missing-key"
	}

	// The mail host only matters once credentials are in place
	if in.Store != nil && in.PingMail != nil {
		settings := in.Store.Settings()
		if settings.HasMailCredentials() {
			if err := in.PingMail(ctx, settings.SMTPHost, settings.SMTPPort); err != nil {
				result.Mail = "unreachable"
				result.Details["mail_error"] = err.Error()
				fail("degraded", fmt.Sprintf("Mail host ping failed: %v", err))
				in.Log.Warn().Err(err).Str("host", settings.SMTPHost).Msg("Health check - mail host unreachable")
			} else {
				result.Mail = "ok"
				result.Details["mail_host"] = settings.SMTPHost
			}
		} else {
			result.Mail = "unconfigured"
		}
	}

	if result.Status == "healthy" {
		in.Log.Debug().Msg("Health check passed - all systems operational")
	}

	return result
}

// DefaultMailPing dials the mail host over TCP
func DefaultMailPing(ctx context.Context, host, port string) error {
	return utils.PingMailHost(ctx, host, port)
}
