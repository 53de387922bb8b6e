package tttor

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
)

// StoredTemplate is a template as held by a template store.
type StoredTemplate struct {
	// Slug is the unique template identifier.
	Slug string `json:"slug"`

	// Code is the current (draft) template code.
	Code string `json:"code"`

	// PublishCode is the last published code. A template whose Code differs
	// from PublishCode is an unpublished draft.
	PublishCode string `json:"publish_code"`

	// UpdatedAt is when Code last changed.
	UpdatedAt time.Time `json:"updated_at"`

	// PublishedAt is when the template was last published.
	PublishedAt time.Time `json:"published_at,omitempty"`
}

// IsDraft reports whether the template has unpublished changes.
func (t *StoredTemplate) IsDraft() bool {
	return t.PublishCode != t.Code
}

// TemplateStore is the interface for template store backends.
// Implementations must be safe for concurrent use.
type TemplateStore interface {
	// List returns all templates ordered by slug.
	List(ctx context.Context) ([]*StoredTemplate, error)

	// Get retrieves one template by slug.
	// Returns a StorageError with ErrMsgTemplateNotFound if it doesn't exist.
	Get(ctx context.Context, slug string) (*StoredTemplate, error)

	// SaveDraft replaces the current code of a template without publishing it.
	// The template is created if it doesn't exist.
	SaveDraft(ctx context.Context, slug, code string) error

	// Publish makes the current code the published code.
	// Returns a StorageError with ErrMsgTemplateNotFound if it doesn't exist.
	Publish(ctx context.Context, slug string) error

	// Close releases any resources held by the store.
	Close() error
}

// StoreDriver is a factory for creating store instances.
// Drivers register themselves during init().
type StoreDriver interface {
	// Open creates a new store with the given driver-specific connection string.
	Open(connectionString string) (TemplateStore, error)
}

// Store driver registry
var (
	storeDriversMu sync.RWMutex
	storeDrivers   = make(map[string]StoreDriver)
)

// RegisterStoreDriver registers a store driver by name.
// Panics if the driver is nil or the name is already registered.
func RegisterStoreDriver(name string, driver StoreDriver) {
	storeDriversMu.Lock()
	defer storeDriversMu.Unlock()

	if driver == nil {
		panic(ErrMsgNilStoreDriver)
	}
	if _, exists := storeDrivers[name]; exists {
		panic(ErrMsgDriverAlreadyRegistered + ": " + name)
	}
	storeDrivers[name] = driver
}

// OpenStore opens a store using the named driver.
//
// Example:
//
//	store, err := tttor.OpenStore("memory", "")
//	store, err := tttor.OpenStore("filesystem", "/var/lib/tttor/templates")
//	store, err := tttor.OpenStore("sqlite", "/var/lib/tttor/templates.db")
func OpenStore(driverName, connectionString string) (TemplateStore, error) {
	storeDriversMu.RLock()
	driver, ok := storeDrivers[driverName]
	storeDriversMu.RUnlock()

	if !ok {
		return nil, NewStoreDriverNotFoundError(driverName)
	}

	return driver.Open(connectionString)
}

// IsStoreDriverRegistered reports whether a driver with the name exists.
func IsStoreDriverRegistered(name string) bool {
	storeDriversMu.RLock()
	defer storeDriversMu.RUnlock()
	_, ok := storeDrivers[name]
	return ok
}

// ListStoreDrivers returns the names of all registered drivers, sorted.
func ListStoreDrivers() []string {
	storeDriversMu.RLock()
	defer storeDriversMu.RUnlock()

	names := make([]string, 0, len(storeDrivers))
	for name := range storeDrivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Seed saves and publishes templates in store. Intended for fixtures and imports.
func Seed(ctx context.Context, store TemplateStore, templates map[string]string) error {
	slugs := make([]string, 0, len(templates))
	for slug := range templates {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	for _, slug := range slugs {
		if err := store.SaveDraft(ctx, slug, templates[slug]); err != nil {
			return err
		}
		if err := store.Publish(ctx, slug); err != nil {
			return err
		}
	}
	return nil
}

// Storage error message constants
const (
	ErrMsgNilStoreDriver          = "store driver is nil"
	ErrMsgDriverAlreadyRegistered = "store driver already registered"
	ErrMsgStoreDriverNotFound     = "store driver not found"
	ErrMsgStoreClosed             = "store is closed"
	ErrMsgTemplateNotFound        = "template not found"
	ErrMsgInvalidSlug             = "invalid template slug"
	ErrMsgPathTraversalDetected   = "path traversal detected in template slug"
	ErrMsgInvalidStoreRoot        = "store root directory is required"
	ErrMsgCreateStoreDir          = "failed to create store directory"
	ErrMsgReadStoreDir            = "failed to read store directory"
	ErrMsgMarshalTemplate         = "failed to marshal template"
	ErrMsgUnmarshalTemplate       = "failed to unmarshal template"
	ErrMsgWriteTemplate           = "failed to write template file"
	ErrMsgReadTemplate            = "failed to read template file"
	ErrMsgSQLiteEmptyPath         = "SQLite database path is empty"
	ErrMsgSQLiteOpenFailed        = "failed to open SQLite database"
	ErrMsgSQLiteSchemaFailed      = "SQLite schema setup failed"
	ErrMsgSQLiteSchemaVersion     = "unsupported SQLite schema version"
	ErrMsgSQLiteQueryFailed       = "SQLite query failed"
	ErrMsgPostgresEmptyConnString = "PostgreSQL connection string is empty"
	ErrMsgPostgresConnection      = "failed to connect to PostgreSQL"
	ErrMsgPostgresMigration       = "PostgreSQL migration failed"
	ErrMsgPostgresQueryFailed     = "PostgreSQL query failed"
)

// NewStoreDriverNotFoundError creates an error for a missing store driver.
func NewStoreDriverNotFoundError(name string) error {
	return &StorageError{
		Message: ErrMsgStoreDriverNotFound,
		Name:    name,
	}
}

// NewTemplateNotFoundError creates an error for a missing template.
func NewTemplateNotFoundError(slug string) error {
	return &StorageError{
		Message: ErrMsgTemplateNotFound,
		Name:    slug,
	}
}

// NewStoreClosedError creates an error for operations on a closed store.
func NewStoreClosedError() error {
	return &StorageError{
		Message: ErrMsgStoreClosed,
	}
}

// StorageError represents a store-related error.
type StorageError struct {
	Message string
	Name    string
	Cause   error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	if e.Name != "" {
		return e.Message + ": " + e.Name
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// IsTemplateNotFound reports whether err is a template-not-found StorageError.
func IsTemplateNotFound(err error) bool {
	var storageErr *StorageError
	return errors.As(err, &storageErr) && storageErr.Message == ErrMsgTemplateNotFound
}

// validateSlug rejects slugs that are empty or unsafe as file names.
func validateSlug(slug string) error {
	if slug == "" {
		return &StorageError{Message: ErrMsgInvalidSlug}
	}
	if strings.Contains(slug, "..") {
		return &StorageError{Message: ErrMsgPathTraversalDetected, Name: slug}
	}
	if strings.ContainsAny(slug, "/\\:*?\"<>|") {
		return &StorageError{Message: ErrMsgInvalidSlug, Name: slug}
	}
	return nil
}

// copyStoredTemplate returns a copy that callers may modify freely.
func copyStoredTemplate(t *StoredTemplate) *StoredTemplate {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
