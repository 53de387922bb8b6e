package internal

// ErrorKind classifies a macro expansion failure
type ErrorKind string

// Error kinds
const (
	ErrorKindUnmatchedBegin    ErrorKind = "UnmatchedBegin"
	ErrorKindUnmatchedEnd      ErrorKind = "UnmatchedEnd"
	ErrorKindNameMismatch      ErrorKind = "NameMismatch"
	ErrorKindUndefinedMacro    ErrorKind = "UndefinedMacro"
	ErrorKindCircularReference ErrorKind = "CircularReference"
)

// String returns the kind name
func (k ErrorKind) String() string {
	return string(k)
}

// Message returns the fixed message prefix for the kind
func (k ErrorKind) Message() string {
	switch k {
	case ErrorKindUnmatchedBegin:
		return ErrMsgUnmatchedBegin
	case ErrorKindUnmatchedEnd:
		return ErrMsgUnmatchedEnd
	case ErrorKindNameMismatch:
		return ErrMsgNameMismatch
	case ErrorKindUndefinedMacro:
		return ErrMsgUndefinedMacro
	case ErrorKindCircularReference:
		return ErrMsgCircularReference
	default:
		return string(k)
	}
}

// MacroError is a structural or reference failure found while expanding a text.
//
// Stack is the expansion chain at the time of failure. For CircularReference it
// already includes the repeated name, so it reads as the full cycle.
type MacroError struct {
	Kind ErrorKind
	// Macro is the macro name the failure is about
	Macro string
	// Marker is the offending marker text (the begin marker for NameMismatch)
	Marker string
	// OtherMarker is the end marker for NameMismatch
	OtherMarker string
	Stack       Stack
}

// Error implements the error interface
func (e *MacroError) Error() string {
	switch e.Kind {
	case ErrorKindCircularReference:
		return e.Kind.Message() + StrDetailSep + e.Stack.Chain()
	case ErrorKindNameMismatch:
		return e.Kind.Message() + e.Stack.Location() + StrDetailSep + e.Marker + StrMatchedBy + e.OtherMarker
	case ErrorKindUndefinedMacro:
		return e.Kind.Message() + e.Stack.Location() + StrDetailSep + e.Macro
	default:
		return e.Kind.Message() + e.Stack.Location() + StrDetailSep + e.Marker
	}
}

// NewUnmatchedBeginError creates an error for a begin marker that was never closed
func NewUnmatchedBeginError(begin Marker, stack Stack) *MacroError {
	return &MacroError{
		Kind:   ErrorKindUnmatchedBegin,
		Macro:  begin.Name,
		Marker: begin.Text,
		Stack:  stack,
	}
}

// NewUnmatchedEndError creates an error for an end marker with no open begin
func NewUnmatchedEndError(end Marker, stack Stack) *MacroError {
	return &MacroError{
		Kind:   ErrorKindUnmatchedEnd,
		Macro:  end.Name,
		Marker: end.Text,
		Stack:  stack,
	}
}

// NewNameMismatchError creates an error for a begin/end pair naming different macros
func NewNameMismatchError(begin, end Marker, stack Stack) *MacroError {
	return &MacroError{
		Kind:        ErrorKindNameMismatch,
		Macro:       begin.Name,
		Marker:      begin.Text,
		OtherMarker: end.Text,
		Stack:       stack,
	}
}

// NewUndefinedMacroError creates an error for a name missing from the dictionary
func NewUndefinedMacroError(name string, stack Stack) *MacroError {
	return &MacroError{
		Kind:  ErrorKindUndefinedMacro,
		Macro: name,
		Stack: stack,
	}
}

// NewCircularReferenceError creates an error for a macro referencing itself
// through chain. chain must end with the repeated name.
func NewCircularReferenceError(name string, chain Stack) *MacroError {
	return &MacroError{
		Kind:  ErrorKindCircularReference,
		Macro: name,
		Stack: chain,
	}
}
