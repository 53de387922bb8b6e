package internal

import (
	"strings"

	"go.uber.org/zap"
)

// Expander recursively substitutes macro invocations with their bodies
type Expander struct {
	logger *zap.Logger
}

// NewExpander creates an expander
func NewExpander(logger *zap.Logger) *Expander {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgExpanderCreated)
	return &Expander{logger: logger}
}

// Expand replaces every invocation region in text with the expanded value of
// the named macro.
//
// With retain set, the begin and end markers of each region are kept around
// the substituted value. Bodies are always expanded with retain unset, so
// markers inside macro bodies never reach the output. The dictionary is only
// read. On failure no partial text is returned.
func (e *Expander) Expand(text string, dict map[string]string, stack Stack, retain bool) (string, error) {
	e.logger.Debug(LogMsgExpandStart,
		zap.Int(LogFieldDepth, stack.Depth()),
		zap.Bool(LogFieldRetain, retain))

	regions, err := NewScanner(text, e.logger).Scan(stack)
	if err != nil {
		return "", err
	}
	if len(regions) == 0 {
		return text, nil
	}

	var sb strings.Builder
	sb.Grow(len(text))
	start := 0

	for _, region := range regions {
		value, err := e.resolve(region.Name, dict, stack)
		if err != nil {
			return "", err
		}

		sb.WriteString(text[start:region.Begin])
		if retain {
			sb.WriteString(region.BeginMarker)
			sb.WriteString(value)
			sb.WriteString(region.EndMarker)
		} else {
			sb.WriteString(value)
		}
		start = region.End
	}

	sb.WriteString(text[start:])
	return sb.String(), nil
}

// resolve looks up name and expands its body one level deeper
func (e *Expander) resolve(name string, dict map[string]string, stack Stack) (string, error) {
	if stack.Contains(name) {
		chain := stack.Push(name)
		e.logger.Debug(LogMsgCircularRef, zap.String(LogFieldStack, chain.Chain()))
		return "", NewCircularReferenceError(name, chain)
	}

	body := dict[name]
	if body == "" {
		e.logger.Debug(LogMsgUndefinedMacro,
			zap.String(LogFieldMacro, name),
			zap.String(LogFieldStack, stack.Chain()))
		return "", NewUndefinedMacroError(name, stack)
	}

	value, err := e.Expand(body, dict, stack.Push(name), false)
	if err != nil {
		return "", err
	}

	e.logger.Debug(LogMsgMacroResolved,
		zap.String(LogFieldMacro, name),
		zap.Int(LogFieldDepth, stack.Depth()+1))
	return value, nil
}
