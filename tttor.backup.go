package tttor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"go.uber.org/zap"
)

// Backup stores a snapshot of templates before they are overwritten.
type Backup interface {
	// Store writes the templates and returns where they were written.
	// Storing no templates is a no-op that returns "".
	Store(ctx context.Context, templates []*StoredTemplate) (string, error)
}

// Backup error messages
const (
	ErrMsgBackupDirMissing  = "backup directory not found"
	ErrMsgBackupNotDir      = "backup path is not a directory"
	ErrMsgBackupCreateDir   = "failed to create backup directory"
	ErrMsgBackupMarshal     = "failed to marshal template backup"
	ErrMsgBackupWriteFile   = "failed to write template backup"
	ErrMsgBackupInvalidSlug = "template slug cannot be backed up"
)

// DirectoryBackup writes each snapshot into the first free "backup.<N>"
// directory under root, one "<slug>.json" file per template.
type DirectoryBackup struct {
	mu     sync.Mutex
	root   string
	logger *zap.Logger
}

// NewDirectoryBackup creates a backup over an existing directory.
func NewDirectoryBackup(root string, logger *zap.Logger) (*DirectoryBackup, error) {
	if err := checkBackupDir(root); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirectoryBackup{root: root, logger: logger}, nil
}

// Root returns the backup root directory.
func (b *DirectoryBackup) Root() string {
	return b.root
}

// Store writes templates into a new backup directory.
func (b *DirectoryBackup) Store(ctx context.Context, templates []*StoredTemplate) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(templates) == 0 {
		return "", nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	dir, err := b.nextDir()
	if err != nil {
		return "", err
	}

	b.logger.Info(LogMsgBackingUp,
		zap.Int(LogFieldCount, len(templates)),
		zap.String(LogFieldDir, dir))

	for _, tmpl := range templates {
		if err := validateSlug(tmpl.Slug); err != nil {
			return dir, &StorageError{Message: ErrMsgBackupInvalidSlug, Name: tmpl.Slug, Cause: err}
		}
		data, err := json.MarshalIndent(tmpl, "", "  ")
		if err != nil {
			return dir, &StorageError{Message: ErrMsgBackupMarshal, Name: tmpl.Slug, Cause: err}
		}
		file := filepath.Join(dir, tmpl.Slug+FilesystemTemplateSuffix)
		if err := os.WriteFile(file, data, FilesystemFilePermissions); err != nil {
			return dir, &StorageError{Message: ErrMsgBackupWriteFile, Name: file, Cause: err}
		}
	}

	return dir, nil
}

// nextDir creates and returns the first backup.<N> directory that doesn't exist yet.
func (b *DirectoryBackup) nextDir() (string, error) {
	for i := 0; ; i++ {
		dir := filepath.Join(b.root, BackupDirPrefix+strconv.Itoa(i))
		err := os.Mkdir(dir, FilesystemDirPermissions)
		if err == nil {
			return dir, nil
		}
		if !os.IsExist(err) {
			return "", &StorageError{Message: ErrMsgBackupCreateDir, Name: dir, Cause: err}
		}
	}
}

// checkBackupDir requires path to be an existing directory.
func checkBackupDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &StorageError{Message: ErrMsgBackupDirMissing, Name: path, Cause: err}
	}
	if !info.IsDir() {
		return &StorageError{Message: ErrMsgBackupNotDir, Name: path, Cause: fmt.Errorf("mode %s", info.Mode())}
	}
	return nil
}
