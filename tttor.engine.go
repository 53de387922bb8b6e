package tttor

import (
	"errors"

	"github.com/itsatony/go-tttor/internal"
	"go.uber.org/zap"
)

// Engine expands macro invocations in template text.
// An Engine holds no per-call state and is safe for concurrent use.
type Engine struct {
	expander *internal.Expander
	config   *engineConfig
	logger   *zap.Logger
}

// New creates a new Engine with the given options.
func New(opts ...Option) (*Engine, error) {
	config := defaultEngineConfig()
	for _, opt := range opts {
		opt(config)
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgEngineCreated, zap.String(LogFieldPrefix, config.macroPrefix))

	return &Engine{
		expander: internal.NewExpander(logger),
		config:   config,
		logger:   logger,
	}, nil
}

// MustNew creates a new Engine and panics if there's an error.
func MustNew(opts ...Option) *Engine {
	engine, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return engine
}

// MacroPrefix returns the slug prefix used to identify macro templates.
func (e *Engine) MacroPrefix() string {
	return e.config.macroPrefix
}

// Expand replaces every macro invocation in text with the expanded macro body.
// The begin and end markers of text itself are kept around each substituted
// value; markers inside macro bodies are removed. Errors carry a *MacroError.
func (e *Engine) Expand(text string, dict Dictionary) (string, error) {
	result, err := e.expander.Expand(text, dict, nil, true)
	if err != nil {
		var macroErr *MacroError
		if errors.As(err, &macroErr) {
			return "", NewMacroError(macroErr)
		}
		return "", err
	}
	return result, nil
}

// defaultEngine backs the package level helpers.
var defaultEngine = MustNew()

// Expand expands text with a default Engine.
func Expand(text string, dict Dictionary) (string, error) {
	return defaultEngine.Expand(text, dict)
}

// ExpandBatch expands items with a default Engine.
func ExpandBatch(items []BatchItem, dict Dictionary) *BatchResult {
	return defaultEngine.ExpandBatch(items, dict)
}
