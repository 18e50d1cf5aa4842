// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
)

type (
	// ActionableError annotates a failure with what getdriverfiles was doing, the
	// file or value involved, the catalog issue that explains it, and fixes the
	// user can try. Build one with New:
	//
	//	return issue.New(err,
	//		issue.Op("load configuration"),
	//		issue.On(path),
	//		issue.For(issue.ConfigLoadFailedId),
	//		issue.Hint("Check the CUE syntax of the file"))
	ActionableError struct {
		Operation   string
		Resource    string
		Issue       Id
		Suggestions []string
		Cause       error

		// verbatim keeps the cause's own message as the headline. It is set for
		// causes whose text is part of the output contract.
		verbatim bool
	}

	// Option sets one field of an ActionableError.
	Option func(*ActionableError)
)

// New wraps cause. It returns nil when cause is nil.
func New(cause error, opts ...Option) error {
	if cause == nil {
		return nil
	}
	ae := &ActionableError{Cause: cause}
	for _, opt := range opts {
		opt(ae)
	}
	return ae
}

// Op names the operation that failed, as a verb phrase ("open INF file").
func Op(operation string) Option {
	return func(ae *ActionableError) { ae.Operation = operation }
}

// On names the resource the operation touched.
func On(resource string) Option {
	return func(ae *ActionableError) { ae.Resource = resource }
}

// For links the catalog issue rendered in verbose mode.
func For(id Id) Option {
	return func(ae *ActionableError) { ae.Issue = id }
}

// Hint appends suggestions.
func Hint(suggestions ...string) Option {
	return func(ae *ActionableError) { ae.Suggestions = append(ae.Suggestions, suggestions...) }
}

// Verbatim keeps the cause's message as the headline and moves the operation
// context and suggestions to verbose output.
func Verbatim() Option {
	return func(ae *ActionableError) { ae.verbatim = true }
}

// IdOf returns the issue linked by the outermost ActionableError in err's chain
// that names one, or fallback.
func IdOf(err error, fallback Id) Id {
	for err != nil {
		if ae, ok := err.(*ActionableError); ok && ae.Issue != 0 {
			return ae.Issue
		}
		err = errors.Unwrap(err)
	}
	return fallback
}

// Error returns "cannot <operation> <resource>: <cause>", or the cause's own
// message for verbatim errors.
func (e *ActionableError) Error() string {
	if e.verbatim || e.Operation == "" {
		return e.Cause.Error()
	}
	var b strings.Builder
	b.WriteString("cannot ")
	b.WriteString(e.Operation)
	if e.Resource != "" {
		b.WriteString(" ")
		b.WriteString(e.Resource)
	}
	b.WriteString(": ")
	b.WriteString(e.Cause.Error())
	return b.String()
}

// Unwrap returns the cause.
func (e *ActionableError) Unwrap() error { return e.Cause }

// Format renders the error for the terminal.
//
// The headline is always Error(). Suggestions follow as "  • " lines, except for
// verbatim errors, which show them only when verbose. Verbose output also names
// the operation of verbatim errors and lists each wrapped cause below the
// headline.
func (e *ActionableError) Format(verbose bool) string {
	var b strings.Builder
	b.WriteString(e.Error())

	if e.verbatim && !verbose {
		return b.String()
	}
	if e.verbatim && e.Operation != "" {
		b.WriteString("\n\nwhile trying to ")
		b.WriteString(e.Operation)
		if e.Resource != "" {
			b.WriteString(" ")
			b.WriteString(e.Resource)
		}
	}
	if len(e.Suggestions) > 0 {
		b.WriteString("\n")
		for _, s := range e.Suggestions {
			b.WriteString("\n  • ")
			b.WriteString(s)
		}
	}
	if verbose {
		if causes := causeChain(e.Cause); len(causes) > 1 {
			b.WriteString("\n\ncaused by:")
			for _, c := range causes[1:] {
				b.WriteString("\n  - ")
				b.WriteString(c)
			}
		}
	}
	return b.String()
}

// causeChain lists the distinct messages along err's Unwrap chain, outermost first.
func causeChain(err error) []string {
	var msgs []string
	for ; err != nil; err = errors.Unwrap(err) {
		msg := strings.TrimSpace(err.Error())
		if msg == "" || (len(msgs) > 0 && msgs[len(msgs)-1] == msg) {
			continue
		}
		msgs = append(msgs, msg)
	}
	return msgs
}
