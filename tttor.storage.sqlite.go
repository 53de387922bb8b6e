package tttor

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	_ "modernc.org/sqlite" // pure Go SQLite driver
)

// SQLiteStore is an embedded TemplateStore backed by a single SQLite file.
type SQLiteStore struct {
	mu     sync.Mutex
	db     *sql.DB
	closed bool
}

// SQLiteStoreDriver is the driver for creating SQLiteStore instances.
type SQLiteStoreDriver struct{}

func init() {
	RegisterStoreDriver(StoreDriverNameSQLite, &SQLiteStoreDriver{})
}

// Open creates a new SQLiteStore. The connection string is the database path.
func (d *SQLiteStoreDriver) Open(connectionString string) (TemplateStore, error) {
	return NewSQLiteStore(connectionString)
}

// NewSQLiteStore opens (or creates) the SQLite database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, &StorageError{Message: ErrMsgSQLiteEmptyPath}
	}

	db, err := sql.Open(SQLiteDriverName, path)
	if err != nil {
		return nil, &StorageError{Message: ErrMsgSQLiteOpenFailed, Name: path, Cause: err}
	}
	// A single connection serialises writers and keeps ":memory:" databases alive.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS templates (
			slug         TEXT PRIMARY KEY,
			code         TEXT NOT NULL DEFAULT '',
			publish_code TEXT NOT NULL DEFAULT '',
			updated_at   TEXT NOT NULL DEFAULT '',
			published_at TEXT NOT NULL DEFAULT ''
		);
		CREATE TABLE IF NOT EXISTS metadata (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, &StorageError{Message: ErrMsgSQLiteSchemaFailed, Name: path, Cause: err}
	}

	s := &SQLiteStore{db: db}

	version, err := s.metadata("schema_version")
	if err != nil {
		db.Close()
		return nil, err
	}
	switch version {
	case "":
		if _, err := db.Exec(`INSERT INTO metadata (key, value) VALUES ('schema_version', ?)`, SQLiteSchemaVersion); err != nil {
			db.Close()
			return nil, &StorageError{Message: ErrMsgSQLiteSchemaFailed, Name: path, Cause: err}
		}
	case SQLiteSchemaVersion:
	default:
		db.Close()
		return nil, &StorageError{Message: ErrMsgSQLiteSchemaVersion, Name: version}
	}

	return s, nil
}

// List returns all templates ordered by slug.
func (s *SQLiteStore) List(ctx context.Context) ([]*StoredTemplate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, NewStoreClosedError()
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT slug, code, publish_code, updated_at, published_at FROM templates ORDER BY slug`)
	if err != nil {
		return nil, &StorageError{Message: ErrMsgSQLiteQueryFailed, Cause: err}
	}
	defer rows.Close()

	var result []*StoredTemplate
	for rows.Next() {
		tmpl, err := scanSQLiteTemplate(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, tmpl)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Message: ErrMsgSQLiteQueryFailed, Cause: err}
	}
	return result, nil
}

// Get retrieves one template by slug.
func (s *SQLiteStore) Get(ctx context.Context, slug string) (*StoredTemplate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, NewStoreClosedError()
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT slug, code, publish_code, updated_at, published_at FROM templates WHERE slug = ?`, slug)
	tmpl, err := scanSQLiteTemplate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewTemplateNotFoundError(slug)
	}
	return tmpl, err
}

// SaveDraft replaces the current code of a template, creating it if needed.
func (s *SQLiteStore) SaveDraft(ctx context.Context, slug, code string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateSlug(slug); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStoreClosedError()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO templates (slug, code, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET code = excluded.code, updated_at = excluded.updated_at`,
		slug, code, formatSQLiteTime(time.Now()))
	if err != nil {
		return &StorageError{Message: ErrMsgSQLiteQueryFailed, Name: slug, Cause: err}
	}
	return nil
}

// Publish makes the current code the published code.
func (s *SQLiteStore) Publish(ctx context.Context, slug string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStoreClosedError()
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE templates SET publish_code = code, published_at = ? WHERE slug = ?`,
		formatSQLiteTime(time.Now()), slug)
	if err != nil {
		return &StorageError{Message: ErrMsgSQLiteQueryFailed, Name: slug, Cause: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &StorageError{Message: ErrMsgSQLiteQueryFailed, Name: slug, Cause: err}
	}
	if n == 0 {
		return NewTemplateNotFoundError(slug)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// metadata reads a metadata value; a missing key yields "".
func (s *SQLiteStore) metadata(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", &StorageError{Message: ErrMsgSQLiteQueryFailed, Name: key, Cause: err}
	}
	return value, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteTemplate(row rowScanner) (*StoredTemplate, error) {
	var (
		tmpl                   StoredTemplate
		updatedAt, publishedAt string
	)
	if err := row.Scan(&tmpl.Slug, &tmpl.Code, &tmpl.PublishCode, &updatedAt, &publishedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, &StorageError{Message: ErrMsgSQLiteQueryFailed, Cause: err}
	}
	tmpl.UpdatedAt = parseSQLiteTime(updatedAt)
	tmpl.PublishedAt = parseSQLiteTime(publishedAt)
	return &tmpl, nil
}

func formatSQLiteTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseSQLiteTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
