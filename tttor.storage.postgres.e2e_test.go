//go:build integration

package tttor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgresContainer creates an ephemeral PostgreSQL container for testing.
func setupPostgresContainer(t *testing.T) (*PostgresStore, string, func()) {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:15",
		postgres.WithDatabase("tttor_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	store, err := NewPostgresStore(PostgresConfig{
		ConnectionString: connStr,
		AutoMigrate:      true,
	})
	require.NoError(t, err, "failed to create postgres store")

	cleanup := func() {
		if store != nil {
			_ = store.Close()
		}
		if container != nil {
			_ = container.Terminate(ctx)
		}
	}

	return store, connStr, cleanup
}

func TestPostgres_E2E_DraftAndPublish(t *testing.T) {
	store, _, cleanup := setupPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.SaveDraft(ctx, "welcome", "hello"))

	tmpl, err := store.Get(ctx, "welcome")
	require.NoError(t, err)
	assert.Equal(t, "hello", tmpl.Code)
	assert.True(t, tmpl.IsDraft())
	assert.True(t, tmpl.PublishedAt.IsZero())

	require.NoError(t, store.Publish(ctx, "welcome"))
	require.NoError(t, store.SaveDraft(ctx, "welcome", "hello again"))

	tmpl, err = store.Get(ctx, "welcome")
	require.NoError(t, err)
	assert.Equal(t, "hello again", tmpl.Code)
	assert.Equal(t, "hello", tmpl.PublishCode)
	assert.False(t, tmpl.PublishedAt.IsZero())

	err = store.Publish(ctx, "missing")
	assert.True(t, IsTemplateNotFound(err))

	_, err = store.Get(ctx, "missing")
	assert.True(t, IsTemplateNotFound(err))
}

func TestPostgres_E2E_MigrationsAreIdempotent(t *testing.T) {
	store, _, cleanup := setupPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, store.RunMigrations(ctx))
	require.NoError(t, store.RunMigrations(ctx))
}

func TestPostgres_E2E_ServiceExpandAll(t *testing.T) {
	_, connStr, cleanup := setupPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	opened, err := OpenStore(StoreDriverNamePostgres, connStr)
	require.NoError(t, err)
	defer opened.Close()

	require.NoError(t, Seed(ctx, opened, map[string]string{
		"macro-brand": "ACME",
		"welcome":     "Hi " + invocation("brand", ""),
	}))

	backup, err := NewDirectoryBackup(t.TempDir(), nil)
	require.NoError(t, err)
	svc, err := NewService(opened, backup, nil, nil)
	require.NoError(t, err)

	report, err := svc.ExpandAll(ctx, ExpandRequest{SaveDrafts: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"welcome"}, report.Expanded)

	templates, err := opened.List(ctx)
	require.NoError(t, err)
	require.Len(t, templates, 2)
	assert.Equal(t, "Hi "+invocation("brand", "ACME"), templates[1].Code)
}
