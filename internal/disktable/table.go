// SPDX-License-Identifier: MPL-2.0

package disktable

import (
	"cmp"

	"github.com/google/btree"
)

// degree is the B-tree node fan-out. Disk tables are small, so a low degree
// keeps nodes compact.
const degree = 8

type (
	// Entry is one installation-media location.
	Entry struct {
		// ID is the disk identifier from field 0 of a disk-names row.
		ID int32
		// BasePath is the normalized media path. It is only meaningful when
		// HasBasePath is true and is never empty in that case.
		BasePath string
		// HasBasePath reports whether the disk declared a non-empty path.
		HasBasePath bool
	}

	// Table maps disk IDs to entries in ascending ID order.
	// The zero value is not usable; create tables with New.
	Table struct {
		tree *btree.BTreeG[Entry]
	}
)

// NewEntry builds an entry; an empty basePath yields an entry without a base path.
func NewEntry(id int32, basePath string) Entry {
	return Entry{ID: id, BasePath: basePath, HasBasePath: basePath != ""}
}

// Path returns the base path and whether one is present.
func (e Entry) Path() (string, bool) {
	if !e.HasBasePath {
		return "", false
	}
	return e.BasePath, true
}

// New creates an empty table.
func New() *Table {
	return &Table{tree: btree.NewG(degree, func(a, b Entry) bool {
		return cmp.Less(a.ID, b.ID)
	})}
}

// Find returns the entry for id.
func (t *Table) Find(id int32) (Entry, bool) {
	return t.tree.Get(Entry{ID: id})
}

// InsertIfAbsent stores e unless an entry with the same ID exists.
// It reports whether e was stored.
func (t *Table) InsertIfAbsent(e Entry) bool {
	if t.tree.Has(e) {
		return false
	}
	t.tree.ReplaceOrInsert(e)
	return true
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return t.tree.Len()
}

// IsEmpty reports whether the table holds no entries.
func (t *Table) IsEmpty() bool {
	return t.tree.Len() == 0
}

// Entries returns a snapshot of all entries in ascending ID order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, t.tree.Len())
	t.tree.Ascend(func(e Entry) bool {
		out = append(out, e)
		return true
	})
	return out
}

// Drain removes and returns up to limit entries with the lowest IDs.
// A non-positive limit drains nothing.
func (t *Table) Drain(limit int) []Entry {
	if limit <= 0 {
		return nil
	}
	out := make([]Entry, 0, min(limit, t.tree.Len()))
	for len(out) < limit {
		e, ok := t.tree.DeleteMin()
		if !ok {
			break
		}
		out = append(out, e)
	}
	return out
}

// DrainAll removes and returns every entry, leaving the table empty.
func (t *Table) DrainAll() []Entry {
	return t.Drain(t.tree.Len())
}
