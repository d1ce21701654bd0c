package services_test

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/go-cmp/cmp"
	"github.com/localnerve/visionfolio/internal/models"
	"github.com/localnerve/visionfolio/internal/services"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err, "Failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.ContentDocument{}), "Failed to migrate test database")
	return db
}

func TestSnapshotRepositoryRoundTrip(t *testing.T) {
	repo := services.NewSnapshotRepository(setupTestDB(t), zerolog.Nop())
	ctx := context.Background()
	content := seedContent(t)

	_, _, err := repo.Load(ctx, "en")
	assert.ErrorIs(t, err, services.ErrNoSnapshot)

	require.NoError(t, repo.Save(ctx, "en", 1, content))

	loaded, version, err := repo.Load(ctx, "en")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), version)
	if diff := cmp.Diff(content, loaded); diff != "" {
		t.Errorf("loaded snapshot mismatch (-saved +loaded):\n%s", diff)
	}
}

func TestSnapshotRepositorySkipsStaleVersions(t *testing.T) {
	repo := services.NewSnapshotRepository(setupTestDB(t), zerolog.Nop())
	ctx := context.Background()

	newer := models.Content{Profile: models.Profile{Name: "v3"}}
	older := models.Content{Profile: models.Profile{Name: "v2"}}

	require.NoError(t, repo.Save(ctx, "en", 3, newer))
	require.NoError(t, repo.Save(ctx, "en", 2, older))
	require.NoError(t, repo.Save(ctx, "en", 3, older))

	loaded, version, err := repo.Load(ctx, "en")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), version)
	assert.Equal(t, "v3", loaded.Profile.Name)

	require.NoError(t, repo.Save(ctx, "en", 4, older))
	loaded, version, err = repo.Load(ctx, "en")
	require.NoError(t, err)
	assert.Equal(t, uint64(4), version)
	assert.Equal(t, "v2", loaded.Profile.Name)
}

func TestSnapshotRepositoryLocalesAreIndependent(t *testing.T) {
	repo := services.NewSnapshotRepository(setupTestDB(t), zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "en", 5, models.Content{Profile: models.Profile{Name: "en"}}))
	require.NoError(t, repo.Save(ctx, "ar", 1, models.Content{Profile: models.Profile{Name: "ar"}}))

	ar, version, err := repo.Load(ctx, "ar")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), version)
	assert.Equal(t, "ar", ar.Profile.Name)

	n, err := repo.Delete(ctx, "en")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.Delete(ctx, "en")
	require.NoError(t, err)
	assert.Zero(t, n)

	_, _, err = repo.Load(ctx, "en")
	assert.ErrorIs(t, err, services.ErrNoSnapshot)
}

func TestStorePersistsThroughRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := services.NewSnapshotRepository(db, zerolog.Nop())

	store, _ := newTestStore(t, func(o *services.StoreOptions) { o.Persister = repo })
	store.AddProject(models.Project{ID: "9", Title: "Persisted", Tags: []string{"Go"}})
	store.DeleteProject("1")

	loaded, version, err := repo.Load(context.Background(), "en")
	require.NoError(t, err)
	assert.Equal(t, store.Version(), version)
	if diff := cmp.Diff(store.Snapshot(), loaded); diff != "" {
		t.Errorf("persisted content mismatch (-store +db):\n%s", diff)
	}

	restored, _ := newTestStore(t, func(o *services.StoreOptions) {
		o.Initial = &loaded
		o.InitialVersion = version
	})
	assert.Equal(t, store.Snapshot(), restored.Snapshot())
	assert.Equal(t, uint64(2), restored.Version())
}
