package tttor

import (
	"go.uber.org/zap"
)

// BatchItem is one text to expand, identified by ID (a template slug).
type BatchItem struct {
	ID   string
	Text string
}

// BatchChange is an item whose expansion differs from its input.
type BatchChange struct {
	ID      string `json:"id"`
	OldText string `json:"-"`
	NewText string `json:"new_text"`
}

// BatchFailure is an item whose expansion failed.
type BatchFailure struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// BatchResult collects the outcome of ExpandBatch.
type BatchResult struct {
	Changed   []BatchChange  `json:"changed"`
	Unchanged []string       `json:"unchanged"`
	Skipped   []string       `json:"skipped"`
	Failed    []BatchFailure `json:"failed"`
}

// HasFailures reports whether any item failed.
func (r *BatchResult) HasFailures() bool {
	return len(r.Failed) > 0
}

// ExpandBatch expands each item at the top level. A failing item is recorded
// and never stops the remaining items. Items with empty text are skipped.
func (e *Engine) ExpandBatch(items []BatchItem, dict Dictionary) *BatchResult {
	result := &BatchResult{}

	for _, item := range items {
		if item.Text == "" {
			e.logger.Info(LogMsgTemplateNoCode, zap.String(LogFieldSlug, item.ID))
			result.Skipped = append(result.Skipped, item.ID)
			continue
		}

		e.logger.Info(LogMsgExpandingTemplate, zap.String(LogFieldSlug, item.ID))
		expanded, err := e.Expand(item.Text, dict)
		if err != nil {
			message := MacroErrorMessage(err)
			e.logger.Info(LogMsgTemplateError,
				zap.String(LogFieldSlug, item.ID),
				zap.String(LogFieldError, message))
			result.Failed = append(result.Failed, BatchFailure{ID: item.ID, Message: message, Err: err})
			continue
		}

		if expanded == item.Text {
			result.Unchanged = append(result.Unchanged, item.ID)
			continue
		}

		e.logger.Info(LogMsgTemplateChanged, zap.String(LogFieldSlug, item.ID))
		result.Changed = append(result.Changed, BatchChange{ID: item.ID, OldText: item.Text, NewText: expanded})
	}

	return result
}
