package main

import (
	"fmt"
	"io"
)

var helpTexts = map[string]string{
	CmdNameCheck:   HelpCheckUsage,
	CmdNameSave:    HelpSaveUsage,
	CmdNameDrafts:  HelpDraftsUsage,
	CmdNamePublish: HelpPublishUsage,
	CmdNameExpand:  HelpExpandUsage,
	CmdNameVersion: HelpVersionUsage,
	CmdNameHelp:    HelpHelpUsage,
}

func runHelp(args []string, stdout io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stdout, HelpMainUsage)
		return ExitCodeSuccess
	}

	cmd := args[0]
	text, ok := helpTexts[cmd]
	if !ok {
		fmt.Fprintf(stdout, FmtErrorWithDetail, ErrMsgUnknownCommand, cmd)
		fmt.Fprintln(stdout, HelpMainUsage)
		return ExitCodeUsageError
	}

	fmt.Fprintln(stdout, text)
	return ExitCodeSuccess
}
