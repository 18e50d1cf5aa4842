// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	cueerrors "cuelang.org/go/cue/errors"
)

// FormatError rewrites a CUE error as one line per problem:
//
//	config.cue:3: output.format: 2 errors in empty disjunction
//	config.cue:1: architectures[0]: invalid value "mips"
//
// The line number is omitted when CUE does not report a position. Errors that
// did not come from CUE are prefixed with file.
func FormatError(err error, file string) error {
	if err == nil {
		return nil
	}

	list := cueerrors.Errors(err)
	if len(list) == 0 {
		return fmt.Errorf("%s: %w", file, err)
	}

	lines := make([]string, 0, len(list))
	seen := make(map[string]bool, len(list))
	for _, e := range list {
		line := describe(e, file)
		if seen[line] {
			continue
		}
		seen[line] = true
		lines = append(lines, line)
	}

	if len(lines) == 1 {
		return errors.New(lines[0])
	}
	return fmt.Errorf("%s: %d problems:\n  %s", file, len(lines), strings.Join(lines, "\n  "))
}

// describe renders a single CUE error.
func describe(e cueerrors.Error, file string) string {
	var b strings.Builder
	b.WriteString(file)
	if pos := e.Position(); pos.IsValid() && pos.Line() > 0 {
		b.WriteString(":")
		b.WriteString(strconv.Itoa(pos.Line()))
	}
	if field := fieldPath(e.Path()); field != "" {
		b.WriteString(": ")
		b.WriteString(field)
	}
	format, args := e.Msg()
	b.WriteString(": ")
	b.WriteString(fmt.Sprintf(format, args...))
	return b.String()
}

// fieldPath joins CUE path selectors, writing list indexes as [n].
func fieldPath(selectors []string) string {
	var b strings.Builder
	for _, sel := range selectors {
		if _, err := strconv.Atoi(sel); err == nil && b.Len() > 0 {
			b.WriteString("[" + sel + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteString(".")
		}
		b.WriteString(sel)
	}
	return b.String()
}
