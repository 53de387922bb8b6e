package internal

// Marker syntax
const (
	// MacroNamePattern matches a single macro name.
	MacroNamePattern = `[0-9A-Za-z._-]+`

	// MarkerPattern matches a begin or end marker. Group 1 is the tag, group 2 the name.
	MarkerPattern = `<!-- +macro-(begin|end) +(` + MacroNamePattern + `) +-->`

	MarkerTagBegin = "begin"
	MarkerTagEnd   = "end"
)

// Marker match group indexes (pairs of offsets in a submatch index slice)
const (
	markerGroupWhole = 0
	markerGroupTag   = 1
	markerGroupName  = 2
)

// Error location rendering
const (
	StrLocationPrefix = " in macro "
	StrChainSep       = " => "
	StrDetailSep      = ": "
	StrMatchedBy      = " is matched by "
	StrQuote          = `"`
)

// Error messages - one per ErrorKind
const (
	ErrMsgUnmatchedBegin    = "macro-begin without a matching macro-end"
	ErrMsgUnmatchedEnd      = "macro-end without a matching macro-begin"
	ErrMsgNameMismatch      = "macro name mismatch"
	ErrMsgUndefinedMacro    = "undefined macro"
	ErrMsgCircularReference = "circular macro reference"
)

// Log messages
const (
	LogMsgScanStart       = "scanning for macro markers"
	LogMsgScanEnd         = "macro scan complete"
	LogMsgScanFailed      = "macro scan failed"
	LogMsgExpandStart     = "expanding text"
	LogMsgMacroResolved   = "macro resolved"
	LogMsgCircularRef     = "circular macro reference detected"
	LogMsgUndefinedMacro  = "undefined macro referenced"
	LogMsgExpanderCreated = "expander created"
)

// Log field names
const (
	LogFieldSource  = "source_length"
	LogFieldRegions = "regions"
	LogFieldMacro   = "macro"
	LogFieldDepth   = "depth"
	LogFieldRetain  = "retain_delimiters"
	LogFieldStack   = "stack"
	LogFieldError   = "error"
)
