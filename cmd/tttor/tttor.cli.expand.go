package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/itsatony/go-tttor"
)

// expandConfig holds parsed expand command configuration
type expandConfig struct {
	templatePath string
	macrosPath   string
	outputPath   string
}

func runExpand(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseExpandFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidArguments, err)
		return ExitCodeUsageError
	}

	source, err := readInput(cfg.templatePath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}

	dict, err := loadMacros(cfg.macrosPath)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgLoadMacrosFailed, err)
		return ExitCodeInputError
	}

	result, err := tttor.Expand(source, dict)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithDetail, ErrMsgExpandFailed, tttor.MacroErrorMessage(err))
		return ExitCodeExpansionError
	}

	if err := writeOutput(cfg.outputPath, result, stdout); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
		return ExitCodeError
	}

	return ExitCodeSuccess
}

func parseExpandFlags(args []string) (*expandConfig, error) {
	fs := flag.NewFlagSet(CmdNameExpand, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &expandConfig{}

	fs.StringVar(&cfg.templatePath, FlagTemplate, "", "")
	fs.StringVar(&cfg.templatePath, FlagTemplateShort, "", "")
	fs.StringVar(&cfg.macrosPath, FlagMacros, "", "")
	fs.StringVar(&cfg.macrosPath, FlagMacrosShort, "", "")
	fs.StringVar(&cfg.outputPath, FlagOutput, FlagDefaultOutput, "")
	fs.StringVar(&cfg.outputPath, FlagOutputShort, FlagDefaultOutput, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.templatePath == "" {
		return nil, errors.New(ErrMsgMissingTemplate)
	}
	if cfg.macrosPath == "" {
		return nil, errors.New(ErrMsgMissingMacros)
	}

	return cfg, nil
}

func loadMacros(path string) (tttor.Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return tttor.LoadDictionary(f)
}

// readInput reads the text from a file, or from stdin when path is "-"
func readInput(path string, stdin io.Reader) (string, error) {
	var data []byte
	var err error
	if path == InputSourceStdin {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	return string(data), err
}

// writeOutput writes the expanded text to a file, or to stdout when path is "-"
func writeOutput(path string, text string, stdout io.Writer) error {
	if path == FlagDefaultOutput {
		_, err := io.WriteString(stdout, text)
		return err
	}
	return os.WriteFile(path, []byte(text), FilePermissions)
}
