// SPDX-License-Identifier: MPL-2.0

package manifest

import "log/slog"

// catalogNameField is the field holding the catalog file name in a CatalogFile row.
const catalogNameField = 1

// CatalogFiles returns the catalog file named by the first row of each
// CatalogFile key variant in [Version]. The names are relative to the
// directory of the INF document.
//
// A variant whose first row has no readable, non-empty name contributes
// nothing; later rows with the same key are never consulted.
func (r *Resolver) CatalogFiles(doc RowSource) []string {
	var files []string
	for _, key := range catalogKeys(r.archs) {
		row, ok := doc.FindFirstRow(versionSection, key)
		if !ok {
			continue
		}

		name, err := row.StringField(catalogNameField)
		if err != nil || name == "" {
			slog.Debug("catalog entry has no file name", "key", key, "line", row.Line(), "error", err)
			continue
		}
		files = append(files, name)
	}
	return files
}
