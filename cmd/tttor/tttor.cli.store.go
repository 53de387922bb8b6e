package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/itsatony/go-tttor"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// storeCmdConfig holds parsed flags and arguments of the store-backed commands
type storeCmdConfig struct {
	configPath string
	format     string
	verbose    bool
	slugs      []string // nil selects all templates
}

func runCheck(args []string, stdout, stderr io.Writer) int {
	return runExpandAll(CmdNameCheck, false, args, stdout, stderr)
}

func runSave(args []string, stdout, stderr io.Writer) int {
	return runExpandAll(CmdNameSave, true, args, stdout, stderr)
}

func runExpandAll(name string, save bool, args []string, stdout, stderr io.Writer) int {
	cfg, err := parseStoreFlags(name, args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidArguments, err)
		return ExitCodeUsageError
	}

	svc, code := openService(cfg, stderr)
	if svc == nil {
		return code
	}
	defer svc.Close()

	if cfg.format == OutputFormatText {
		if save {
			fmt.Fprintln(stdout, MsgExpandingSaving)
		} else {
			fmt.Fprintln(stdout, MsgExpanding)
		}
	}

	report, err := svc.ExpandAll(context.Background(), tttor.ExpandRequest{
		Slugs:      cfg.slugs,
		SaveDrafts: save,
	})
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgCommandFailed, err)
		return ExitCodeError
	}

	if cfg.format == OutputFormatJSON {
		writeJSON(stdout, report)
	} else {
		printNotFound(stdout, report.NotFound)
		switch {
		case len(report.Expanded) == 0:
			fmt.Fprintln(stdout, MsgNoChanges)
		case save:
			fmt.Fprintf(stdout, MsgDraftsSaved+FmtNewline, joinSlugs(report.Expanded))
		default:
			fmt.Fprintf(stdout, MsgChangesFound+FmtNewline, joinSlugs(report.Expanded))
		}
		if report.BackupDir != "" {
			fmt.Fprintf(stdout, MsgBackupWritten+FmtNewline, report.BackupDir)
		}
		for _, msg := range report.Errors {
			fmt.Fprintln(stdout, msg)
		}
	}

	if len(report.Errors) > 0 {
		return ExitCodeExpansionError
	}
	return ExitCodeSuccess
}

func runDrafts(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseStoreFlags(CmdNameDrafts, args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidArguments, err)
		return ExitCodeUsageError
	}

	svc, code := openService(cfg, stderr)
	if svc == nil {
		return code
	}
	defer svc.Close()

	if cfg.format == OutputFormatText {
		fmt.Fprintln(stdout, MsgCheckingDrafts)
	}

	report, err := svc.DraftList(context.Background(), cfg.slugs)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgCommandFailed, err)
		return ExitCodeError
	}

	if cfg.format == OutputFormatJSON {
		writeJSON(stdout, report)
		return ExitCodeSuccess
	}

	printNotFound(stdout, report.NotFound)
	if len(report.Drafts) > 0 {
		fmt.Fprintf(stdout, MsgDrafts+FmtNewline, joinSlugs(report.Drafts))
	} else {
		fmt.Fprintln(stdout, MsgNoDrafts)
	}
	return ExitCodeSuccess
}

func runPublish(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseStoreFlags(CmdNamePublish, args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidArguments, err)
		return ExitCodeUsageError
	}

	svc, code := openService(cfg, stderr)
	if svc == nil {
		return code
	}
	defer svc.Close()

	if cfg.format == OutputFormatText {
		fmt.Fprintln(stdout, MsgPublishing)
	}

	report, err := svc.Publish(context.Background(), cfg.slugs)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgCommandFailed, err)
		return ExitCodeError
	}

	if cfg.format == OutputFormatJSON {
		writeJSON(stdout, report)
		return ExitCodeSuccess
	}

	printNotFound(stdout, report.NotFound)
	if len(report.Published) > 0 {
		fmt.Fprintf(stdout, MsgPublished+FmtNewline, joinSlugs(report.Published))
	} else {
		fmt.Fprintln(stdout, MsgNothingToPublish)
	}
	return ExitCodeSuccess
}

func parseStoreFlags(name string, args []string) (*storeCmdConfig, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &storeCmdConfig{}

	fs.StringVar(&cfg.configPath, FlagConfig, "", "")
	fs.StringVar(&cfg.configPath, FlagConfigShort, "", "")
	fs.StringVar(&cfg.format, FlagFormat, FlagDefaultFormat, "")
	fs.StringVar(&cfg.format, FlagFormatShort, FlagDefaultFormat, "")
	fs.BoolVar(&cfg.verbose, FlagVerbose, false, "")
	fs.BoolVar(&cfg.verbose, FlagVerboseShort, false, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.format != OutputFormatText && cfg.format != OutputFormatJSON {
		return nil, errors.New(ErrMsgInvalidFormat)
	}

	slugs, err := parseSelection(fs.Args())
	if err != nil {
		return nil, err
	}
	cfg.slugs = slugs

	return cfg, nil
}

// parseSelection accepts either "all" alone or a list of slugs.
func parseSelection(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, errors.New(ErrMsgMissingSelection)
	}
	if args[0] == SelectionAll {
		if len(args) > 1 {
			return nil, errors.New(ErrMsgWrongSelection)
		}
		return nil, nil
	}
	return args, nil
}

// openService loads the configuration and opens the service. On failure it
// reports to stderr and returns a nil service with the exit code to use.
func openService(cfg *storeCmdConfig, stderr io.Writer) (*tttor.Service, int) {
	logger := newLogger(stderr, cfg.verbose)

	var conf *tttor.Config
	if cfg.configPath == "" {
		conf = tttor.LoadConfigFromEnv()
	} else {
		var err error
		conf, err = tttor.LoadConfig(cfg.configPath)
		if err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgLoadConfigFailed, err)
			return nil, ExitCodeInputError
		}
	}
	if err := conf.Validate(); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgLoadConfigFailed, err)
		return nil, ExitCodeInputError
	}

	svc, err := tttor.NewServiceFromConfig(conf, logger)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgOpenServiceFailed, err)
		return nil, ExitCodeError
	}
	return svc, ExitCodeSuccess
}

// newLogger logs JSON at info level, or human readable debug output when verbose.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	if verbose {
		core := zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.AddSync(w),
			zapcore.DebugLevel,
		)
		return zap.New(core)
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(w),
		zapcore.InfoLevel,
	)
	return zap.New(core)
}

func printNotFound(stdout io.Writer, notFound []string) {
	if len(notFound) > 0 {
		fmt.Fprintf(stdout, MsgNotFound+FmtNewline, joinSlugs(notFound))
	}
}

func joinSlugs(slugs []string) string {
	return strings.Join(slugs, SlugSeparator)
}

func writeJSON(stdout io.Writer, v any) {
	jsonBytes, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(stdout, string(jsonBytes))
}
