package tttor

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// FilesystemStore stores each template as a JSON file in a root directory.
//
// Directory structure:
//
//	<root>/
//	  welcome.json
//	  macro-footer.json
//	  ...
type FilesystemStore struct {
	mu     sync.RWMutex
	root   string
	closed bool
}

// FilesystemStoreDriver is the driver for creating FilesystemStore instances.
type FilesystemStoreDriver struct{}

func init() {
	RegisterStoreDriver(StoreDriverNameFilesystem, &FilesystemStoreDriver{})
}

// Open creates a new FilesystemStore instance.
// The connection string is the root directory path.
func (d *FilesystemStoreDriver) Open(connectionString string) (TemplateStore, error) {
	return NewFilesystemStore(connectionString)
}

// NewFilesystemStore creates a filesystem-based template store.
// The root directory will be created if it doesn't exist.
func NewFilesystemStore(root string) (*FilesystemStore, error) {
	if root == "" {
		return nil, &StorageError{Message: ErrMsgInvalidStoreRoot}
	}

	if err := os.MkdirAll(root, FilesystemDirPermissions); err != nil {
		return nil, &StorageError{
			Message: ErrMsgCreateStoreDir,
			Name:    root,
			Cause:   err,
		}
	}

	return &FilesystemStore{root: root}, nil
}

// Root returns the store's root directory.
func (s *FilesystemStore) Root() string {
	return s.root
}

// List returns all templates ordered by slug.
func (s *FilesystemStore) List(ctx context.Context) ([]*StoredTemplate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStoreClosedError()
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, &StorageError{Message: ErrMsgReadStoreDir, Name: s.root, Cause: err}
	}

	result := make([]*StoredTemplate, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), FilesystemTemplateSuffix) {
			continue
		}
		slug := strings.TrimSuffix(entry.Name(), FilesystemTemplateSuffix)
		tmpl, err := s.load(slug)
		if err != nil {
			return nil, err
		}
		result = append(result, tmpl)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Slug < result[j].Slug
	})
	return result, nil
}

// Get retrieves one template by slug.
func (s *FilesystemStore) Get(ctx context.Context, slug string) (*StoredTemplate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateSlug(slug); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStoreClosedError()
	}

	return s.load(slug)
}

// SaveDraft replaces the current code of a template, creating its file if needed.
func (s *FilesystemStore) SaveDraft(ctx context.Context, slug, code string) error {
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

	tmpl, err := s.load(slug)
	if err != nil {
		if !IsTemplateNotFound(err) {
			return err
		}
		tmpl = &StoredTemplate{Slug: slug}
	}

	tmpl.Code = code
	tmpl.UpdatedAt = time.Now()
	return s.write(tmpl)
}

// Publish makes the current code the published code.
func (s *FilesystemStore) Publish(ctx context.Context, slug string) error {
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

	tmpl, err := s.load(slug)
	if err != nil {
		return err
	}

	tmpl.PublishCode = tmpl.Code
	tmpl.PublishedAt = time.Now()
	return s.write(tmpl)
}

// Close marks the store as closed.
func (s *FilesystemStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// path returns the file holding a template.
func (s *FilesystemStore) path(slug string) string {
	return filepath.Join(s.root, slug+FilesystemTemplateSuffix)
}

// load reads a template from disk. Callers must hold the lock.
func (s *FilesystemStore) load(slug string) (*StoredTemplate, error) {
	filename := s.path(slug)
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewTemplateNotFoundError(slug)
		}
		return nil, &StorageError{Message: ErrMsgReadTemplate, Name: filename, Cause: err}
	}

	var tmpl StoredTemplate
	if err := json.Unmarshal(data, &tmpl); err != nil {
		return nil, &StorageError{Message: ErrMsgUnmarshalTemplate, Name: filename, Cause: err}
	}
	tmpl.Slug = slug
	return &tmpl, nil
}

// write stores a template on disk via a temporary file and rename.
// Callers must hold the write lock.
func (s *FilesystemStore) write(tmpl *StoredTemplate) error {
	data, err := json.MarshalIndent(tmpl, "", "  ")
	if err != nil {
		return &StorageError{Message: ErrMsgMarshalTemplate, Name: tmpl.Slug, Cause: err}
	}

	filename := s.path(tmpl.Slug)
	tmp := filename + ".tmp"
	if err := os.WriteFile(tmp, data, FilesystemFilePermissions); err != nil {
		return &StorageError{Message: ErrMsgWriteTemplate, Name: tmp, Cause: err}
	}
	if err := os.Rename(tmp, filename); err != nil {
		_ = os.Remove(tmp)
		return &StorageError{Message: ErrMsgWriteTemplate, Name: filename, Cause: err}
	}
	return nil
}
