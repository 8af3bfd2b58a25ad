package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"glogo/internal/errs"
)

const (
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiBold   = "\x1b[1m"
	ansiReset  = "\x1b[0m"
)

// reportError renders errors for humans on stderr. Parse errors get the
// offending line with surrounding context and a caret under the bad span;
// everything else gets a one-line message, with hints where we have them.
func reportError(err error) {
	var parseErr *errs.ParseError
	if errors.As(err, &parseErr) {
		reportParseError(parseErr)
		return
	}

	var undefErr *errs.UndefinedVariableError
	if errors.As(err, &undefErr) {
		fmt.Fprintf(os.Stderr, "%s%sError:%s undefined variable '%s'\n", ansiBold, ansiRed, ansiReset, undefErr.Name)
		if len(undefErr.Defined) == 0 {
			fmt.Fprintln(os.Stderr, "No variables have been defined yet.")
		} else {
			fmt.Fprintln(os.Stderr, "Currently defined variables are:")
			for _, name := range undefErr.Defined {
				fmt.Fprintf(os.Stderr, "  - %s\n", name)
			}
		}
		fmt.Fprintf(os.Stderr, "%sHint:%s define variables with MAKE before reading them.\n", ansiYellow, ansiReset)
		return
	}

	fmt.Fprintf(os.Stderr, "%s%sError:%s %v\n", ansiBold, ansiRed, ansiReset, err)
}

func reportParseError(parseErr *errs.ParseError) {
	fmt.Fprintf(os.Stderr, "%s%sError:%s %s\n", ansiBold, ansiRed, ansiReset, parseErr.Message)

	src := parseErr.Input
	start := parseErr.Span.Start
	if start > len(src) {
		start = len(src)
	}

	lines := strings.Split(src, "\n")
	errLine := strings.Count(src[:start], "\n")
	lineStart := strings.LastIndexByte(src[:start], '\n') + 1
	col := start - lineStart

	const context = 2
	first := max(errLine-context, 0)
	last := min(errLine+context+1, len(lines))

	for idx := first; idx < last; idx++ {
		if idx != errLine {
			fmt.Fprintf(os.Stderr, "%4d | %s\n", idx+1, lines[idx])
			continue
		}

		line := lines[idx]
		fmt.Fprintf(os.Stderr, "%4d | %s%s%s\n", idx+1, ansiRed, line, ansiReset)

		if col > len(line) {
			col = len(line)
		}
		caret := min(parseErr.Span.Len, len(line)-col)
		if caret < 1 {
			caret = 1
		}
		fmt.Fprintf(os.Stderr, "     | %s%s%s%s\n",
			strings.Repeat(" ", col), ansiRed, strings.Repeat("^", caret), ansiReset)
	}

	if strings.Contains(parseErr.Message, "'END'") || strings.Contains(parseErr.Message, "'TO'") {
		fmt.Fprintf(os.Stderr, "%sHint:%s procedure definitions look like\n", ansiYellow, ansiReset)
		fmt.Fprintln(os.Stderr, "       TO name :param1 :param2")
		fmt.Fprintln(os.Stderr, "           ...")
		fmt.Fprintln(os.Stderr, "       END")
	}
}
