package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/localnerve/visionfolio/internal/services"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheckDefaults(t *testing.T) {
	result := services.HealthCheck(context.Background(), services.HealthInputs{Log: zerolog.Nop()})
	assert.Equal(t, "healthy", result.Status)
	assert.Equal(t, "disabled", result.Store)
	assert.Equal(t, "disabled", result.Database)
	assert.Equal(t, "missing-key", result.Assistant)
	assert.Empty(t, result.ErrorMessage)
}

func TestHealthCheckWithDatabase(t *testing.T) {
	store, _ := newTestStore(t)
	db := setupTestDB(t)

	result := services.HealthCheck(context.Background(), services.HealthInputs{
		Store:           store,
		DB:              db,
		GenAIConfigured: true,
		Log:             zerolog.Nop(),
	})
	assert.Equal(t, "healthy", result.Status)
	assert.Equal(t, "ok", result.Database)
	assert.Equal(t, "ok", result.Assistant)
	assert.Equal(t, "sqlite", result.Details["database_type"])
	assert.Equal(t, "en", result.Details["locale"])

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	result = services.HealthCheck(context.Background(), services.HealthInputs{Store: store, DB: db, Log: zerolog.Nop()})
	assert.Equal(t, "unhealthy", result.Status)
	assert.Equal(t, "unreachable", result.Database)
	assert.Contains(t, result.ErrorMessage, "Database ping failed")
}

func TestHealthCheckMailHost(t *testing.T) {
	store, _ := newTestStore(t)
	var pinged []string
	ping := func(ctx context.Context, host, port string) error {
		pinged = append(pinged, host+":"+port)
		return errors.New("connection refused")
	}

	result := services.HealthCheck(context.Background(), services.HealthInputs{Store: store, PingMail: ping, Log: zerolog.Nop()})
	assert.Equal(t, "unconfigured", result.Mail)
	assert.Empty(t, pinged)

	settings := store.Settings()
	settings.SMTPUser, settings.SMTPPass = "alex", "secret"
	store.UpdateSettings(settings)

	result = services.HealthCheck(context.Background(), services.HealthInputs{Store: store, PingMail: ping, Log: zerolog.Nop()})
	assert.Equal(t, "degraded", result.Status)
	assert.Equal(t, "unreachable", result.Mail)
	assert.Equal(t, []string{"smtp.gmail.com:587"}, pinged)

	result = services.HealthCheck(context.Background(), services.HealthInputs{
		Store:    store,
		PingMail: func(ctx context.Context, host, port string) error { return nil },
		Log:      zerolog.Nop(),
	})
	assert.Equal(t, "healthy", result.Status)
	assert.Equal(t, "ok", result.Mail)
}
