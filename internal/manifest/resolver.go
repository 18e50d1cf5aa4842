// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"
	"iter"

	"github.com/getdriverfiles/getdriverfiles/pkg/inf"
)

type (
	// RowSource is the read side of an INF document used by the resolvers.
	// *inf.Document implements it.
	RowSource interface {
		// FindFirstRow returns the first row of section whose key matches key.
		FindFirstRow(section, key string) (inf.Row, bool)
		// LineCount returns the number of rows in section. Missing sections
		// report an error wrapping inf.ErrSectionNotFound.
		LineCount(section string) (int, error)
		// RowAt returns the row at a zero-based index of section.
		RowAt(section string, index int) (inf.Row, error)
	}

	// Resolver runs the catalog, disk table and source file passes.
	Resolver struct {
		archs    []Architecture
		reporter Reporter
	}

	// Option configures a Resolver.
	Option func(*Resolver)
)

// WithArchitectures restricts the decorated variants probed to archs.
// Undecorated sections and keys are always probed.
func WithArchitectures(archs ...Architecture) Option {
	return func(r *Resolver) {
		r.archs = normalizeArchitectures(archs)
	}
}

// WithReporter sets the receiver of skipped-row diagnostics.
func WithReporter(reporter Reporter) Option {
	return func(r *Resolver) {
		if reporter != nil {
			r.reporter = reporter
		}
	}
}

// NewResolver creates a Resolver probing every architecture and discarding diagnostics.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		archs:    AllArchitectures(),
		reporter: discardReporter{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Architectures returns the architectures probed, in probe order.
func (r *Resolver) Architectures() []Architecture {
	return append([]Architecture(nil), r.archs...)
}

// rows yields every readable row of section. A missing section yields
// nothing; an unreadable section or row is reported and skipped.
func (r *Resolver) rows(doc RowSource, section string) iter.Seq[inf.Row] {
	return func(yield func(inf.Row) bool) {
		n, err := doc.LineCount(section)
		if errors.Is(err, inf.ErrSectionNotFound) {
			return
		}
		if err != nil {
			r.reporter.Report(Diagnostic{
				Code:    CodeUnreadableSection,
				Section: section,
				Reason:  fmt.Sprintf("unable to count lines: %v", err),
				Cause:   err,
			})
			return
		}

		for i := range n {
			row, err := doc.RowAt(section, i)
			if err != nil {
				r.reporter.Report(Diagnostic{
					Code:    CodeUnreadableRow,
					Section: section,
					Reason:  fmt.Sprintf("unable to read row %d: %v", i, err),
					Cause:   err,
				})
				continue
			}
			if !yield(row) {
				return
			}
		}
	}
}

func (r *Resolver) skipRow(code Code, row inf.Row, reason string, cause error) {
	r.reporter.Report(Diagnostic{
		Code:    code,
		Section: row.Section(),
		Line:    row.Line(),
		Reason:  reason,
		Cause:   cause,
	})
}
