package tttor

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeFactories builds one fresh store per backend that runs without external services.
func storeFactories(t *testing.T) map[string]func(t *testing.T) TemplateStore {
	t.Helper()
	return map[string]func(t *testing.T) TemplateStore{
		StoreDriverNameMemory: func(t *testing.T) TemplateStore {
			return NewMemoryStore()
		},
		StoreDriverNameFilesystem: func(t *testing.T) TemplateStore {
			store, err := NewFilesystemStore(filepath.Join(t.TempDir(), "templates"))
			require.NoError(t, err)
			return store
		},
		StoreDriverNameSQLite: func(t *testing.T) TemplateStore {
			store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "templates.db"))
			require.NoError(t, err)
			return store
		},
	}
}

func TestTemplateStore_Contract(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := factory(t)
			defer store.Close()

			t.Run("empty list", func(t *testing.T) {
				templates, err := store.List(ctx)
				require.NoError(t, err)
				assert.Empty(t, templates)
			})

			t.Run("get missing", func(t *testing.T) {
				_, err := store.Get(ctx, "missing")
				require.Error(t, err)
				assert.True(t, IsTemplateNotFound(err))
			})

			t.Run("save draft creates", func(t *testing.T) {
				require.NoError(t, store.SaveDraft(ctx, "welcome", "hello"))

				tmpl, err := store.Get(ctx, "welcome")
				require.NoError(t, err)
				assert.Equal(t, "welcome", tmpl.Slug)
				assert.Equal(t, "hello", tmpl.Code)
				assert.Equal(t, "", tmpl.PublishCode)
				assert.True(t, tmpl.IsDraft())
				assert.False(t, tmpl.UpdatedAt.IsZero())
			})

			t.Run("publish", func(t *testing.T) {
				require.NoError(t, store.Publish(ctx, "welcome"))

				tmpl, err := store.Get(ctx, "welcome")
				require.NoError(t, err)
				assert.Equal(t, "hello", tmpl.PublishCode)
				assert.False(t, tmpl.IsDraft())
				assert.False(t, tmpl.PublishedAt.IsZero())
			})

			t.Run("save draft keeps published code", func(t *testing.T) {
				require.NoError(t, store.SaveDraft(ctx, "welcome", "hello again"))

				tmpl, err := store.Get(ctx, "welcome")
				require.NoError(t, err)
				assert.Equal(t, "hello again", tmpl.Code)
				assert.Equal(t, "hello", tmpl.PublishCode)
				assert.True(t, tmpl.IsDraft())
			})

			t.Run("publish missing", func(t *testing.T) {
				err := store.Publish(ctx, "missing")
				require.Error(t, err)
				assert.True(t, IsTemplateNotFound(err))
			})

			t.Run("list is ordered by slug", func(t *testing.T) {
				require.NoError(t, store.SaveDraft(ctx, "macro-footer", "(c)"))
				require.NoError(t, store.SaveDraft(ctx, "alpha", "a"))

				templates, err := store.List(ctx)
				require.NoError(t, err)
				require.Len(t, templates, 3)
				assert.Equal(t, "alpha", templates[0].Slug)
				assert.Equal(t, "macro-footer", templates[1].Slug)
				assert.Equal(t, "welcome", templates[2].Slug)
			})

			t.Run("returned templates are copies", func(t *testing.T) {
				tmpl, err := store.Get(ctx, "alpha")
				require.NoError(t, err)
				tmpl.Code = "mutated"

				again, err := store.Get(ctx, "alpha")
				require.NoError(t, err)
				assert.Equal(t, "a", again.Code)
			})

			t.Run("invalid slug", func(t *testing.T) {
				assert.Error(t, store.SaveDraft(ctx, "", "x"))
				assert.Error(t, store.SaveDraft(ctx, "../escape", "x"))
				assert.Error(t, store.SaveDraft(ctx, "a/b", "x"))
			})

			t.Run("cancelled context", func(t *testing.T) {
				cancelled, cancel := context.WithCancel(ctx)
				cancel()

				_, err := store.List(cancelled)
				assert.ErrorIs(t, err, context.Canceled)
				assert.ErrorIs(t, store.SaveDraft(cancelled, "x", "y"), context.Canceled)
			})

			t.Run("closed", func(t *testing.T) {
				require.NoError(t, store.Close())

				_, err := store.List(ctx)
				require.Error(t, err)
				assert.Contains(t, err.Error(), ErrMsgStoreClosed)
			})
		})
	}
}

func TestOpenStore(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		store, err := OpenStore(StoreDriverNameMemory, "")
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &MemoryStore{}, store)
	})

	t.Run("filesystem", func(t *testing.T) {
		root := t.TempDir()
		store, err := OpenStore(StoreDriverNameFilesystem, root)
		require.NoError(t, err)
		defer store.Close()
		assert.Equal(t, root, store.(*FilesystemStore).Root())
	})

	t.Run("sqlite", func(t *testing.T) {
		store, err := OpenStore(StoreDriverNameSQLite, filepath.Join(t.TempDir(), "t.db"))
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &SQLiteStore{}, store)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := OpenStore("nonexistent", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgStoreDriverNotFound)
	})
}

type testStoreDriver struct{}

func (d *testStoreDriver) Open(string) (TemplateStore, error) { return NewMemoryStore(), nil }

func TestRegisterStoreDriver(t *testing.T) {
	RegisterStoreDriver("register-test", &testStoreDriver{})
	assert.True(t, IsStoreDriverRegistered("register-test"))
	assert.Contains(t, ListStoreDrivers(), "register-test")
	assert.Contains(t, ListStoreDrivers(), StoreDriverNamePostgres)

	assert.Panics(t, func() {
		RegisterStoreDriver("register-test", &testStoreDriver{})
	})
	assert.Panics(t, func() {
		RegisterStoreDriver("register-nil", nil)
	})
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, Seed(ctx, store, map[string]string{"a": "1", "b": "2"}))

	templates, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, templates, 2)
	for _, tmpl := range templates {
		assert.False(t, tmpl.IsDraft())
	}
}

func TestStorageError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StorageError
		expected string
	}{
		{name: "message only", err: &StorageError{Message: "test error"}, expected: "test error"},
		{name: "with name", err: &StorageError{Message: "not found", Name: "welcome"}, expected: "not found: welcome"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}

	cause := errors.New("disk full")
	wrapped := &StorageError{Message: ErrMsgWriteTemplate, Cause: cause}
	assert.ErrorIs(t, wrapped, cause)
	assert.False(t, IsTemplateNotFound(wrapped))
	assert.True(t, IsTemplateNotFound(NewTemplateNotFoundError("x")))
}

func TestNewSQLiteStore_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "templates.db")

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.SaveDraft(ctx, "welcome", "hello"))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	tmpl, err := reopened.Get(ctx, "welcome")
	require.NoError(t, err)
	assert.Equal(t, "hello", tmpl.Code)
}

func TestNewStore_InvalidArguments(t *testing.T) {
	_, err := NewFilesystemStore("")
	assert.Error(t, err)

	_, err = NewSQLiteStore("")
	assert.Error(t, err)

	_, err = NewPostgresStore(PostgresConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgPostgresEmptyConnString)
}
