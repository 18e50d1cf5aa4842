// SPDX-License-Identifier: MPL-2.0

package inf

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

type (
	// Document is a parsed INF file.
	Document struct {
		name     string
		sections map[string]*section
		order    []string
	}

	section struct {
		name string
		rows []Row
	}

	// Row is one logical line of a section.
	Row struct {
		section string
		line    int
		key     string
		hasKey  bool
		values  []string
	}
)

// Name returns the name the document was opened or parsed with.
func (d *Document) Name() string {
	return d.name
}

// Sections returns section names in the order they first appear.
func (d *Document) Sections() []string {
	names := make([]string, 0, len(d.order))
	for _, id := range d.order {
		names = append(names, d.sections[id].name)
	}
	return names
}

// HasSection reports whether the document contains the named section.
func (d *Document) HasSection(name string) bool {
	_, ok := d.sections[sectionID(name)]
	return ok
}

// LineCount returns the number of rows in a section, or ErrSectionNotFound.
func (d *Document) LineCount(name string) (int, error) {
	s, ok := d.sections[sectionID(name)]
	if !ok {
		return 0, fmt.Errorf("%s: %w", name, ErrSectionNotFound)
	}
	return len(s.rows), nil
}

// RowAt returns the row at the zero-based index within a section.
func (d *Document) RowAt(name string, index int) (Row, error) {
	s, ok := d.sections[sectionID(name)]
	if !ok {
		return Row{}, fmt.Errorf("%s: %w", name, ErrSectionNotFound)
	}
	if index < 0 || index >= len(s.rows) {
		return Row{}, fmt.Errorf("%s[%d]: %w", name, index, ErrRowOutOfRange)
	}
	return s.rows[index], nil
}

// FindFirstRow returns the first row of a section whose key matches key.
// An empty key matches the first row of the section.
func (d *Document) FindFirstRow(name, key string) (Row, bool) {
	s, ok := d.sections[sectionID(name)]
	if !ok || len(s.rows) == 0 {
		return Row{}, false
	}
	if key == "" {
		return s.rows[0], true
	}
	for _, row := range s.rows {
		if row.hasKey && strings.EqualFold(row.key, key) {
			return row, true
		}
	}
	return Row{}, false
}

// Section returns the name of the section the row belongs to, as first spelled in the file.
func (r Row) Section() string { return r.section }

// Line returns the physical line number (1-based) where the row starts.
func (r Row) Line() int { return r.line }

// Key returns the row key and whether the row has one.
func (r Row) Key() (string, bool) { return r.key, r.hasKey }

// FieldCount returns the number of value fields, excluding the key.
func (r Row) FieldCount() int { return len(r.values) }

// StringField returns field index of the row. Index 0 is the key; a key-less
// row answers index 0 with its first value.
func (r Row) StringField(index int) (string, error) {
	switch {
	case index < 0:
		return "", r.fieldError(index, ErrFieldMissing)
	case index == 0 && r.hasKey:
		return r.key, nil
	case index == 0:
		if len(r.values) == 0 {
			return "", r.fieldError(index, ErrFieldMissing)
		}
		return r.values[0], nil
	case index > len(r.values):
		return "", r.fieldError(index, ErrFieldMissing)
	default:
		return r.values[index-1], nil
	}
}

// IntField parses field index as a signed 32-bit integer. Decimal and
// 0x-prefixed hexadecimal forms are accepted.
func (r Row) IntField(index int) (int32, error) {
	s, err := r.StringField(index)
	if err != nil {
		return 0, err
	}
	n, err := parseInt32(s)
	if err != nil {
		return 0, r.fieldError(index, fmt.Errorf("%w: %q", ErrFieldNotInteger, s))
	}
	return n, nil
}

func (r Row) fieldError(index int, err error) *FieldError {
	return &FieldError{Section: r.section, Line: r.line, Index: index, Err: err}
}

func parseInt32(s string) (int32, error) {
	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	base := 10
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		base = 16
		s = s[2:]
	}
	if s == "" || s[0] == '-' || s[0] == '+' {
		return 0, strconv.ErrSyntax
	}

	n, err := strconv.ParseInt(s, base, 64)
	if err != nil {
		return 0, err
	}
	if neg {
		n = -n
	}
	return safecast.Conv[int32](n)
}

func sectionID(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
