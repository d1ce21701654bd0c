package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/localnerve/visionfolio/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ADMIN_PASSPHRASE", "secret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, 4*time.Second, cfg.NotificationTTL)
	assert.Equal(t, 1500*time.Millisecond, cfg.MailDelay)
	assert.Equal(t, config.BackendMemory, cfg.StoreBackend)
	assert.Equal(t, 5, cfg.DBConnectionLimit)
}

func TestLoadRequiresPassphrase(t *testing.T) {
	t.Setenv("ADMIN_PASSPHRASE", "")
	_, err := config.Load()
	assert.ErrorContains(t, err, "ADMIN_PASSPHRASE")
}

func TestLoadRequiresDatabaseForPersistentBackend(t *testing.T) {
	t.Setenv("ADMIN_PASSPHRASE", "secret")
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("DB_DATABASE", "")

	_, err := config.Load()
	assert.ErrorContains(t, err, "DB_DATABASE")
}

func TestLoadDurations(t *testing.T) {
	t.Setenv("ADMIN_PASSPHRASE", "secret")
	t.Setenv("NOTIFICATION_TTL", "2500")
	t.Setenv("MAIL_DELAY", "10ms")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 2500*time.Millisecond, cfg.NotificationTTL)
	assert.Equal(t, 10*time.Millisecond, cfg.MailDelay)
}

func TestLoadBadValuesFallBack(t *testing.T) {
	t.Setenv("ADMIN_PASSPHRASE", "secret")
	t.Setenv("NOTIFICATION_TTL", "soon")
	t.Setenv("DB_CONNECTION_LIMIT", "many")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 4*time.Second, cfg.NotificationTTL)
	assert.Equal(t, 5, cfg.DBConnectionLimit)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LOCALE=ar\n"), 0o600))

	t.Setenv("ENV_FILE", path)
	t.Setenv("ADMIN_PASSPHRASE", "secret")
	t.Setenv("LOCALE", "")
	os.Unsetenv("LOCALE")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "ar", cfg.Locale)
}

func TestLoadMissingEnvFile(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("ADMIN_PASSPHRASE", "secret")

	_, err := config.Load()
	assert.Error(t, err)
}
