// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"log/slog"

	"github.com/getdriverfiles/getdriverfiles/internal/disktable"
)

const (
	diskIDField   = 0
	diskPathField = 4
)

// BuildDiskTable loads every SourceDisksNames variant into a new table.
//
// The path field is stored with its leading and trailing separators removed;
// a path that is absent or made only of separators leaves the disk without a
// base path. When an id is declared more than once, the first declaration wins.
func (r *Resolver) BuildDiskTable(doc RowSource) *disktable.Table {
	table := disktable.New()
	for _, section := range sectionVariants(diskNamesSection, r.archs) {
		for row := range r.rows(doc, section) {
			id, err := row.IntField(diskIDField)
			if err != nil {
				r.skipRow(CodeInvalidDiskID, row, "invalid or missing disk id", err)
				continue
			}
			if _, exists := table.Find(id); exists {
				slog.Debug("duplicate disk id ignored", "section", section, "line", row.Line(), "id", id)
				continue
			}

			// An absent path field means the disk has no base path.
			path, _ := row.StringField(diskPathField)
			table.InsertIfAbsent(disktable.NewEntry(id, trimSeparators(path)))
		}
	}
	return table
}
