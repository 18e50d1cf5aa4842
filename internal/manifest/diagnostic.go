// SPDX-License-Identifier: MPL-2.0

package manifest

import "fmt"

const (
	// CodeInvalidDiskID marks a row whose disk id field is absent or not an integer.
	CodeInvalidDiskID Code = "invalid_disk_id"
	// CodeMissingFileName marks a source file row without a file name.
	CodeMissingFileName Code = "missing_file_name"
	// CodeUnknownDiskID marks a source file row referencing an undeclared disk.
	CodeUnknownDiskID Code = "unknown_disk_id"
	// CodeUnreadableRow marks a row the document could not return.
	CodeUnreadableRow Code = "unreadable_row"
	// CodeUnreadableSection marks a section whose line count could not be read.
	CodeUnreadableSection Code = "unreadable_section"
)

type (
	// Code is a machine-readable diagnostic identifier.
	Code string

	// Diagnostic describes a row or section skipped during resolution.
	Diagnostic struct {
		// Code identifies the failure.
		Code Code
		// Section is the section being read.
		Section string
		// Line is the physical line of the row. Zero for section-level diagnostics.
		Line int
		// Reason is the human-readable cause, without trailing punctuation.
		Reason string
		// Cause is the underlying error, if any.
		Cause error
	}

	// Reporter receives diagnostics as resolution proceeds.
	Reporter interface {
		Report(d Diagnostic)
	}

	// ReporterFunc adapts a function to the Reporter interface.
	ReporterFunc func(d Diagnostic)

	discardReporter struct{}
)

// Report calls f(d).
func (f ReporterFunc) Report(d Diagnostic) { f(d) }

func (discardReporter) Report(Diagnostic) {}

// SkipsSection reports whether the whole section was skipped rather than one row.
func (d Diagnostic) SkipsSection() bool {
	return d.Code == CodeUnreadableSection
}

// String renders the diagnostic as a single warning line, e.g.
//
//	Section SourceDisksFiles, line 12: invalid or missing disk id. Skipping line.
func (d Diagnostic) String() string {
	where := "Section " + d.Section
	if d.Line > 0 {
		where += fmt.Sprintf(", line %d", d.Line)
	}
	skipped := "line"
	if d.SkipsSection() {
		skipped = "section"
	}
	return fmt.Sprintf("%s: %s. Skipping %s.", where, d.Reason, skipped)
}
