// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"fmt"
	"iter"

	"github.com/getdriverfiles/getdriverfiles/internal/disktable"
	"github.com/getdriverfiles/getdriverfiles/pkg/inf"
)

const (
	fileNameField   = 0
	fileDiskIDField = 1
	fileSubdirField = 2
)

// SourceFiles yields one resolved path per SourceDisksFiles row, across all
// variants in probe order. Rows are resolved lazily as the sequence is
// consumed; rows that cannot be resolved are reported and skipped.
func (r *Resolver) SourceFiles(doc RowSource, table *disktable.Table) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, section := range sectionVariants(sourceFilesSection, r.archs) {
			for row := range r.rows(doc, section) {
				path, ok := r.resolveSourceFile(row, table)
				if !ok {
					continue
				}
				if !yield(path) {
					return
				}
			}
		}
	}
}

// resolveSourceFile builds [base\][subdir\]file for a single row.
func (r *Resolver) resolveSourceFile(row inf.Row, table *disktable.Table) (string, bool) {
	file, err := row.StringField(fileNameField)
	if err != nil || file == "" {
		r.skipRow(CodeMissingFileName, row, "missing file name", err)
		return "", false
	}

	id, err := row.IntField(fileDiskIDField)
	if err != nil {
		r.skipRow(CodeInvalidDiskID, row, "invalid or missing disk id", err)
		return "", false
	}

	disk, ok := table.Find(id)
	if !ok {
		r.skipRow(CodeUnknownDiskID, row, fmt.Sprintf("disk id %d is not declared in any %s section", id, diskNamesSection), nil)
		return "", false
	}

	base, _ := disk.Path()
	// The subdirectory is optional; an absent field resolves like an empty one.
	subdir, _ := row.StringField(fileSubdirField)
	return JoinSourcePath(base, subdir, file), true
}
