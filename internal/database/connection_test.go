package database_test

import (
	"context"
	"testing"

	"github.com/localnerve/visionfolio/internal/config"
	"github.com/localnerve/visionfolio/internal/database"
	"github.com/localnerve/visionfolio/internal/models"
	"github.com/localnerve/visionfolio/internal/services"
	"github.com/localnerve/visionfolio/internal/testsupport"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialector(t *testing.T) {
	cases := map[string]string{
		"mysql":      "mysql",
		"mariadb":    "mysql",
		"postgres":   "postgres",
		"sqlite":     "sqlite",
		"sqlite-cgo": "sqlite",
		"sqlserver":  "sqlserver",
	}
	for backend, name := range cases {
		t.Run(backend, func(t *testing.T) {
			d, err := database.Dialector(&config.Config{StoreBackend: backend, DBDatabase: "folio", DBHost: "localhost", DBPort: "1"})
			require.NoError(t, err)
			assert.Equal(t, name, d.Name())
		})
	}

	_, err := database.Dialector(&config.Config{StoreBackend: "mongodb"})
	assert.Error(t, err)
}

func TestEnabled(t *testing.T) {
	assert.False(t, database.Enabled(&config.Config{StoreBackend: config.BackendMemory}))
	assert.False(t, database.Enabled(&config.Config{}))
	assert.True(t, database.Enabled(&config.Config{StoreBackend: "sqlite"}))
}

func TestConnectSQLiteFile(t *testing.T) {
	cfg := &config.Config{
		StoreBackend:      "sqlite",
		DBDatabase:        t.TempDir() + "/snapshots.db",
		DBConnectionLimit: 1,
	}
	db, err := database.Connect(cfg, zerolog.Nop())
	require.NoError(t, err)
	defer database.Close(db)

	require.NoError(t, database.AutoMigrate(db))
	assert.True(t, db.Migrator().HasTable(&models.ContentDocument{}))
	assert.True(t, db.Migrator().HasIndex(&models.ContentDocument{}, "Locale"))
}

func TestSnapshotsOnMariaDB(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	testsupport.RequireDocker(t)

	ctx := context.Background()
	opts := testsupport.ContainerOptionsFromEnv()
	opts.Backend = "mariadb"
	dbc, err := testsupport.StartDB(ctx, t, opts)
	require.NoError(t, err)
	defer dbc.Terminate(t)

	db, err := database.Connect(dbc.Config(), zerolog.Nop())
	require.NoError(t, err)
	defer database.Close(db)
	require.NoError(t, database.AutoMigrate(db))

	repo := services.NewSnapshotRepository(db, zerolog.Nop())
	content := models.Content{
		Profile:  models.Profile{Name: "Container"},
		Projects: []models.Project{{ID: "1", Title: "Stored", Tags: []string{"Go"}, Status: models.StatusDone}},
	}
	require.NoError(t, repo.Save(ctx, "en", 1, content))
	require.NoError(t, repo.Save(ctx, "en", 1, models.Content{}))

	loaded, version, err := repo.Load(ctx, "en")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), version)
	assert.Equal(t, content, loaded)
}
