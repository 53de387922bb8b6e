package tttor

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory implementation of TemplateStore.
// It is primarily intended for testing and development.
// All data is lost when the process terminates.
type MemoryStore struct {
	mu        sync.RWMutex
	templates map[string]*StoredTemplate
	closed    bool
}

// MemoryStoreDriver is the driver for creating MemoryStore instances.
type MemoryStoreDriver struct{}

func init() {
	RegisterStoreDriver(StoreDriverNameMemory, &MemoryStoreDriver{})
}

// Open creates a new MemoryStore instance.
// The connection string is ignored for memory storage.
func (d *MemoryStoreDriver) Open(connectionString string) (TemplateStore, error) {
	return NewMemoryStore(), nil
}

// NewMemoryStore creates a new in-memory template store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		templates: make(map[string]*StoredTemplate),
	}
}

// List returns copies of all templates ordered by slug.
func (s *MemoryStore) List(ctx context.Context) ([]*StoredTemplate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStoreClosedError()
	}

	result := make([]*StoredTemplate, 0, len(s.templates))
	for _, tmpl := range s.templates {
		result = append(result, copyStoredTemplate(tmpl))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Slug < result[j].Slug
	})
	return result, nil
}

// Get retrieves one template by slug.
func (s *MemoryStore) Get(ctx context.Context, slug string) (*StoredTemplate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStoreClosedError()
	}

	tmpl, ok := s.templates[slug]
	if !ok {
		return nil, NewTemplateNotFoundError(slug)
	}
	return copyStoredTemplate(tmpl), nil
}

// SaveDraft replaces the current code of a template.
func (s *MemoryStore) SaveDraft(ctx context.Context, slug, code string) error {
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

	tmpl, ok := s.templates[slug]
	if !ok {
		tmpl = &StoredTemplate{Slug: slug}
		s.templates[slug] = tmpl
	}
	tmpl.Code = code
	tmpl.UpdatedAt = time.Now()
	return nil
}

// Publish makes the current code the published code.
func (s *MemoryStore) Publish(ctx context.Context, slug string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStoreClosedError()
	}

	tmpl, ok := s.templates[slug]
	if !ok {
		return NewTemplateNotFoundError(slug)
	}
	tmpl.PublishCode = tmpl.Code
	tmpl.PublishedAt = time.Now()
	return nil
}

// Close marks the store as closed and releases its data.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.templates = nil
	return nil
}
