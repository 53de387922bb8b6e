package tttor

import (
	"errors"

	"github.com/itsatony/go-cuserr"
	"github.com/itsatony/go-tttor/internal"
)

// MacroError is the structured failure of one expansion. Use errors.As to
// retrieve it from errors returned by Engine.Expand.
type MacroError = internal.MacroError

// ErrorKind classifies a MacroError
type ErrorKind = internal.ErrorKind

// Macro error kinds
const (
	ErrorKindUnmatchedBegin    = internal.ErrorKindUnmatchedBegin
	ErrorKindUnmatchedEnd      = internal.ErrorKindUnmatchedEnd
	ErrorKindNameMismatch      = internal.ErrorKindNameMismatch
	ErrorKindUndefinedMacro    = internal.ErrorKindUndefinedMacro
	ErrorKindCircularReference = internal.ErrorKindCircularReference
)

// Error message constants
const (
	ErrMsgExpansionFailed    = "macro expansion failed"
	ErrMsgServiceFailed      = "template service operation failed"
	ErrMsgConfigInvalid      = "invalid configuration"
	ErrMsgConfigRead         = "failed to read config file"
	ErrMsgConfigDecode       = "failed to decode config file"
	ErrMsgConfigFormat       = "unsupported config file format"
	ErrMsgConfigNoDriver     = "store driver is required"
	ErrMsgConfigNoBackupDir  = "backup directory is required"
	ErrMsgConfigBackupDir    = "backup directory not found"
	ErrMsgConfigEmptyPrefix  = "macro prefix cannot be empty"
	ErrMsgConfigUnknownStore = "store driver is not registered"
)

// Error code constants for categorization
const (
	ErrCodeMacro   = "TTTOR_MACRO"
	ErrCodeService = "TTTOR_SERVICE"
	ErrCodeConfig  = "TTTOR_CONFIG"
)

// NewMacroError wraps a MacroError with an error code and metadata
func NewMacroError(err *MacroError) error {
	return cuserr.WrapStdError(err, ErrCodeMacro, err.Error()).
		WithMetadata(MetaKeyKind, err.Kind.String()).
		WithMetadata(MetaKeyMacro, err.Macro).
		WithMetadata(MetaKeyStack, err.Stack.Chain()).
		WithMetadata(MetaKeyMarker, err.Marker)
}

// IsMacroError reports whether err carries a MacroError
func IsMacroError(err error) bool {
	var macroErr *MacroError
	return errors.As(err, &macroErr)
}

// MacroErrorKind returns the kind of the MacroError carried by err
func MacroErrorKind(err error) (ErrorKind, bool) {
	var macroErr *MacroError
	if !errors.As(err, &macroErr) {
		return "", false
	}
	return macroErr.Kind, true
}

// MacroErrorMessage returns the human readable expansion message carried by err,
// falling back to err.Error() for other errors.
func MacroErrorMessage(err error) string {
	var macroErr *MacroError
	if errors.As(err, &macroErr) {
		return macroErr.Error()
	}
	return err.Error()
}

// NewServiceError wraps a store or backup failure of a service operation
func NewServiceError(operation string, slug string, cause error) error {
	err := cuserr.WrapStdError(cause, ErrCodeService, ErrMsgServiceFailed).
		WithMetadata(MetaKeyOperation, operation)
	if slug != "" {
		err = err.WithMetadata(MetaKeySlug, slug)
	}
	return err
}

// NewConfigError creates a configuration validation error
func NewConfigError(msg string, field string) error {
	return cuserr.NewValidationError(ErrCodeConfig, msg).
		WithMetadata(MetaKeyField, field)
}

// NewConfigFileError creates an error for a config file that cannot be used
func NewConfigFileError(msg string, path string, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeConfig, msg)
	} else {
		err = cuserr.NewValidationError(ErrCodeConfig, msg)
	}
	return err.WithMetadata(MetaKeyPath, path)
}
