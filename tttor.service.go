package tttor

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// Service runs macro expansion over the templates of a store.
// It fetches templates, derives the macro dictionary from the macro-prefixed
// ones, and saves or publishes drafts. A backup of every template is taken
// before its draft is overwritten.
type Service struct {
	store  TemplateStore
	backup Backup
	engine *Engine
	logger *zap.Logger
}

// Service construction errors
const (
	ErrMsgNilStore  = "template store is required"
	ErrMsgNilBackup = "backup is required"
)

// NewService creates a service. engine and logger may be nil.
func NewService(store TemplateStore, backup Backup, engine *Engine, logger *zap.Logger) (*Service, error) {
	if store == nil {
		return nil, errors.New(ErrMsgNilStore)
	}
	if backup == nil {
		return nil, errors.New(ErrMsgNilBackup)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if engine == nil {
		engine = MustNew(WithLogger(logger))
	}
	return &Service{
		store:  store,
		backup: backup,
		engine: engine,
		logger: logger,
	}, nil
}

// NewServiceFromConfig opens the configured store and backup.
// The caller owns the returned service and must Close it.
func NewServiceFromConfig(cfg *Config, logger *zap.Logger) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store, err := OpenStore(cfg.Store.Driver, cfg.Store.DSN)
	if err != nil {
		return nil, err
	}

	backup, err := NewDirectoryBackup(cfg.BackupDir, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	engine, err := New(WithLogger(logger), WithMacroPrefix(cfg.MacroPrefix))
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return NewService(store, backup, engine, logger)
}

// Store returns the underlying template store.
func (s *Service) Store() TemplateStore {
	return s.store
}

// Close closes the underlying store.
func (s *Service) Close() error {
	return s.store.Close()
}

// ExpandRequest selects the templates to expand.
type ExpandRequest struct {
	// Slugs limits the run to these templates. Empty means all templates.
	Slugs []string

	// SaveDrafts saves every changed template as an unpublished draft.
	SaveDrafts bool
}

// ExpandReport summarises an ExpandAll run.
type ExpandReport struct {
	TotalCount int            `json:"total_count"`
	Expanded   []string       `json:"expanded"`
	Errors     []string       `json:"errors"`
	NotFound   []string       `json:"not_found"`
	Saved      bool           `json:"saved"`
	BackupDir  string         `json:"backup_dir,omitempty"`
	Failures   []BatchFailure `json:"-"`
}

// DraftReport lists templates with unpublished changes.
type DraftReport struct {
	Drafts   []string `json:"drafts"`
	NotFound []string `json:"not_found"`
}

// PublishReport lists the templates that were published.
type PublishReport struct {
	Published []string `json:"published"`
	NotFound  []string `json:"not_found"`
}

// fetched is the result of reading and splitting the store.
type fetched struct {
	templates []*StoredTemplate
	dict      Dictionary
	notFound  []string
}

// ExpandAll expands the selected templates. Expansion failures are reported
// per template; store and backup failures abort the call.
func (s *Service) ExpandAll(ctx context.Context, req ExpandRequest) (*ExpandReport, error) {
	s.logger.Info(LogMsgExpandAll, zap.Bool(LogFieldSaveDrafts, req.SaveDrafts))

	f, err := s.fetch(ctx, req.Slugs)
	if err != nil {
		return nil, err
	}

	items := make([]BatchItem, len(f.templates))
	bySlug := make(map[string]*StoredTemplate, len(f.templates))
	for i, tmpl := range f.templates {
		items[i] = BatchItem{ID: tmpl.Slug, Text: tmpl.Code}
		bySlug[tmpl.Slug] = tmpl
	}

	result := s.engine.ExpandBatch(items, f.dict)

	report := &ExpandReport{
		TotalCount: len(f.templates),
		Expanded:   make([]string, 0, len(result.Changed)),
		Errors:     make([]string, 0, len(result.Failed)),
		NotFound:   f.notFound,
		Failures:   result.Failed,
	}
	for _, failure := range result.Failed {
		report.Errors = append(report.Errors, fmt.Sprintf(FmtExpansionError, failure.ID, failure.Message))
	}
	for _, change := range result.Changed {
		report.Expanded = append(report.Expanded, change.ID)
	}

	if !req.SaveDrafts || len(result.Changed) == 0 {
		return report, nil
	}

	originals := make([]*StoredTemplate, 0, len(result.Changed))
	for _, change := range result.Changed {
		originals = append(originals, bySlug[change.ID])
	}
	dir, err := s.backup.Store(ctx, originals)
	if err != nil {
		return nil, NewServiceError(OpBackup, "", err)
	}
	report.BackupDir = dir

	for _, change := range result.Changed {
		s.logger.Info(LogMsgSavingDraft, zap.String(LogFieldSlug, change.ID))
		if err := s.store.SaveDraft(ctx, change.ID, change.NewText); err != nil {
			return nil, NewServiceError(OpSave, change.ID, err)
		}
	}
	report.Saved = true

	return report, nil
}

// DraftList lists the selected templates whose code is not published.
func (s *Service) DraftList(ctx context.Context, slugs []string) (*DraftReport, error) {
	s.logger.Info(LogMsgDraftList)

	f, err := s.fetch(ctx, slugs)
	if err != nil {
		return nil, err
	}

	return &DraftReport{
		Drafts:   draftSlugs(f.templates),
		NotFound: f.notFound,
	}, nil
}

// Publish publishes every draft among the selected templates.
func (s *Service) Publish(ctx context.Context, slugs []string) (*PublishReport, error) {
	s.logger.Info(LogMsgPublishAll)

	f, err := s.fetch(ctx, slugs)
	if err != nil {
		return nil, err
	}

	drafts := draftSlugs(f.templates)
	for _, slug := range drafts {
		s.logger.Info(LogMsgPublishing, zap.String(LogFieldSlug, slug))
		if err := s.store.Publish(ctx, slug); err != nil {
			return nil, NewServiceError(OpPublish, slug, err)
		}
	}

	return &PublishReport{
		Published: drafts,
		NotFound:  f.notFound,
	}, nil
}

// fetch lists the store, splits off macro templates and applies the slug filter.
func (s *Service) fetch(ctx context.Context, slugs []string) (*fetched, error) {
	s.logger.Info(LogMsgFetchingTemplates)

	all, err := s.store.List(ctx)
	if err != nil {
		return nil, NewServiceError(OpFetch, "", err)
	}

	templates, dict := SplitTemplates(all, s.engine.MacroPrefix())
	s.logger.Debug(LogMsgFetchingTemplates,
		zap.Int(LogFieldCount, len(templates)),
		zap.Strings(LogFieldMacros, dict.Names()))

	notFound := []string{}
	if len(slugs) > 0 {
		selected := make([]*StoredTemplate, 0, len(slugs))
		found := make(map[string]bool, len(templates))
		for _, tmpl := range templates {
			if slices.Contains(slugs, tmpl.Slug) {
				selected = append(selected, tmpl)
				found[tmpl.Slug] = true
			}
		}
		for _, slug := range slugs {
			if !found[slug] {
				notFound = append(notFound, slug)
			}
		}
		templates = selected
	}

	return &fetched{templates: templates, dict: dict, notFound: notFound}, nil
}

func draftSlugs(templates []*StoredTemplate) []string {
	drafts := []string{}
	for _, tmpl := range templates {
		if tmpl.IsDraft() {
			drafts = append(drafts, tmpl.Slug)
		}
	}
	return drafts
}
