package tttor

import "time"

// Marker syntax (see also the internal scanner)
const (
	MarkerBeginFormat = "<!-- macro-begin %s -->"
	MarkerEndFormat   = "<!-- macro-end %s -->"
)

// DefaultMacroPrefix is the slug prefix identifying macro-definition templates.
// A template with slug "macro-footer" defines the macro "footer".
const DefaultMacroPrefix = "macro-"

// Store driver names
const (
	StoreDriverNameMemory     = "memory"
	StoreDriverNameFilesystem = "filesystem"
	StoreDriverNameSQLite     = "sqlite"
	StoreDriverNamePostgres   = "postgres"
)

// Filesystem store and backup constants
const (
	FilesystemDirPermissions  = 0755
	FilesystemFilePermissions = 0644
	FilesystemTemplateSuffix  = ".json"
	BackupDirPrefix           = "backup."
)

// SQLite store constants
const (
	SQLiteDriverName    = "sqlite"
	SQLiteSchemaVersion = "1"
)

// PostgreSQL store constants
const (
	PostgresTablePrefix            = "tttor_"
	PostgresDefaultMaxOpenConns    = 10
	PostgresDefaultMaxIdleConns    = 2
	PostgresDefaultConnMaxLifetime = 5 * time.Minute
	PostgresDefaultQueryTimeout    = 30 * time.Second
)

// Environment variables overlaid on a loaded Config
const (
	EnvStoreDriver = "TTTOR_STORE_DRIVER"
	EnvStoreDSN    = "TTTOR_STORE_DSN"
	EnvBackupDir   = "TTTOR_BACKUP_DIR"
	EnvMacroPrefix = "TTTOR_MACRO_PREFIX"
)

// Config file extensions
const (
	ConfigExtYAML = ".yaml"
	ConfigExtYML  = ".yml"
	ConfigExtHCL  = ".hcl"
)

// Report formats
const (
	FmtExpansionError = "Error during the expansion of template %q: %s"
)

// Metadata keys for cuserr.WithMetadata
const (
	MetaKeyKind      = "kind"
	MetaKeyMacro     = "macro"
	MetaKeyStack     = "stack"
	MetaKeyMarker    = "marker"
	MetaKeySlug      = "slug"
	MetaKeyPath      = "path"
	MetaKeyDriver    = "driver"
	MetaKeyField     = "field"
	MetaKeyOperation = "operation"
)

// Service operation names (used as error metadata and log fields)
const (
	OpFetch   = "fetch"
	OpBackup  = "backup"
	OpSave    = "save_draft"
	OpPublish = "publish"
)

// Log messages
const (
	LogMsgEngineCreated     = "engine created"
	LogMsgExpandingTemplate = "expanding template"
	LogMsgTemplateChanged   = "template is changed"
	LogMsgTemplateNoCode    = "template has no code"
	LogMsgTemplateError     = "an error occurred"
	LogMsgFetchingTemplates = "fetching templates"
	LogMsgSavingDraft       = "saving expanded template draft"
	LogMsgPublishing        = "publishing template"
	LogMsgBackingUp         = "backing up templates"
	LogMsgExpandAll         = "expand all"
	LogMsgDraftList         = "draft list"
	LogMsgPublishAll        = "publish all"
)

// Log field names
const (
	LogFieldSlug       = "slug"
	LogFieldError      = "error"
	LogFieldCount      = "count"
	LogFieldDir        = "dir"
	LogFieldSaveDrafts = "save_drafts"
	LogFieldMacros     = "macros"
	LogFieldPrefix     = "macro_prefix"
)
