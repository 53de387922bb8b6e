package main

// Command names
const (
	CmdNameCheck   = "check"
	CmdNameSave    = "save"
	CmdNameDrafts  = "drafts"
	CmdNamePublish = "publish"
	CmdNameExpand  = "expand"
	CmdNameVersion = "version"
	CmdNameHelp    = "help"
)

// Flag names - long form
const (
	FlagConfig   = "config"
	FlagFormat   = "format"
	FlagVerbose  = "verbose"
	FlagTemplate = "template"
	FlagMacros   = "macros"
	FlagOutput   = "output"
)

// Flag names - short form
const (
	FlagConfigShort   = "c"
	FlagFormatShort   = "F"
	FlagVerboseShort  = "v"
	FlagTemplateShort = "t"
	FlagMacrosShort   = "m"
	FlagOutputShort   = "o"
)

// Flag default values
const (
	FlagDefaultOutput = "-" // stdout
	FlagDefaultFormat = "text"
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

// Exit codes
const (
	ExitCodeSuccess        = 0
	ExitCodeError          = 1
	ExitCodeUsageError     = 2
	ExitCodeExpansionError = 3
	ExitCodeInputError     = 4
)

// Input source indicators
const (
	InputSourceStdin = "-"
)

// SelectionAll selects every template
const SelectionAll = "all"

// Error messages - ALL must be constants
const (
	ErrMsgUnknownCommand    = "unknown command"
	ErrMsgInvalidArguments  = "invalid arguments"
	ErrMsgMissingSelection  = "Missing command arguments. Must be either 'all' or a list of slugs"
	ErrMsgWrongSelection    = "Wrong command arguments. Must be either 'all' or a list of slugs"
	ErrMsgMissingTemplate   = "template source required"
	ErrMsgMissingMacros     = "macro dictionary file required"
	ErrMsgReadFileFailed    = "failed to read file"
	ErrMsgLoadMacrosFailed  = "failed to load macro dictionary"
	ErrMsgWriteOutputFailed = "failed to write output"
	ErrMsgExpandFailed      = "macro expansion failed"
	ErrMsgInvalidFormat     = "invalid output format"
	ErrMsgLoadConfigFailed  = "failed to load configuration"
	ErrMsgOpenServiceFailed = "failed to open template service"
	ErrMsgCommandFailed     = "command failed"
	ErrMsgLoggerFailed      = "failed to create logger"
)

// Progress and result messages
const (
	MsgExpanding        = "Expanding..."
	MsgExpandingSaving  = "Expanding and saving drafts..."
	MsgCheckingDrafts   = "Checking drafts..."
	MsgPublishing       = "Publishing..."
	MsgNotFound         = "Templates not found: %s"
	MsgChangesFound     = "Changes found in: %s"
	MsgDraftsSaved      = "Drafts saved: %s"
	MsgNoChanges        = "No changes found in templates"
	MsgBackupWritten    = "Backup written to: %s"
	MsgDrafts           = "Drafts: %s"
	MsgNoDrafts         = "No drafts found"
	MsgPublished        = "Published: %s"
	MsgNothingToPublish = "No drafts to publish"
)

// Help text templates
const (
	HelpMainUsage = `go-tttor - Template macro expansion CLI

Usage:
    tttor <command> [options]

Commands:
    check       Display templates that are not up to date
    save        Update templates that are not up to date and save them as drafts
    drafts      List templates that are unpublished drafts
    publish     Publish drafts
    expand      Expand macros in a single text file
    version     Show version information
    help        Show help for a command

Use "tttor help <command>" for more information about a command.`

	helpStoreOptions = `Options:
    -c, --config <file>     Config file (.yaml, .yml, .hcl); TTTOR_* env vars apply on top
    -F, --format <format>   Output format: text, json (default: text)
    -v, --verbose           Log debug output to stderr

Arguments:
    Either "all" or a list of template slugs. Options go before arguments.`

	HelpCheckUsage = `Display templates that are not up to date

Usage:
    tttor check [options] all|<slug>...

` + helpStoreOptions + `

Examples:
    tttor check -c tttor.yaml all
    tttor check -c tttor.hcl welcome goodbye`

	HelpSaveUsage = `Update templates that are not up to date and save them as drafts

Usage:
    tttor save [options] all|<slug>...

` + helpStoreOptions + `

Every changed template is backed up before its draft is saved.`

	HelpDraftsUsage = `List templates that are unpublished drafts

Usage:
    tttor drafts [options] all|<slug>...

` + helpStoreOptions

	HelpPublishUsage = `Publish drafts

Usage:
    tttor publish [options] all|<slug>...

` + helpStoreOptions

	HelpExpandUsage = `Expand macros in a single text file

Usage:
    tttor expand [options]

Options:
    -t, --template <file>   Text file (use "-" for stdin)
    -m, --macros <file>     YAML file mapping macro names to bodies
    -o, --output <file>     Output file (default: stdout)

Examples:
    tttor expand -t page.html -m macros.yaml
    cat page.html | tttor expand -t - -m macros.yaml -o page.out.html`

	HelpVersionUsage = `Show version information

Usage:
    tttor version [options]

Options:
    -F, --format <format>   Output format: text, json (default: text)`

	HelpHelpUsage = `Show help for a command

Usage:
    tttor help [command]

Commands:
    check       Show help for check command
    save        Show help for save command
    drafts      Show help for drafts command
    publish     Show help for publish command
    expand      Show help for expand command
    version     Show help for version command`
)

// Version output format templates
const (
	VersionTextTemplate = "go-tttor version %s\nCommit: %s\nBranch: %s\nBuilt: %s\nGo: %s"
	VersionUnknown      = "unknown"
)

// CLI metadata
const (
	CLIName        = "tttor"
	CLIDescription = "Template macro expansion CLI"
)

// File permission constant
const (
	FilePermissions = 0644
)

// Format string constants
const (
	FmtErrorWithDetail = "%s: %s\n"
	FmtErrorWithCause  = "%s: %v\n"
	FmtNewline         = "\n"
	SlugSeparator      = " "
)
