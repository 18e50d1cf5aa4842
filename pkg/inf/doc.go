// SPDX-License-Identifier: MPL-2.0

// Package inf reads Windows driver installation-description (INF) documents.
//
// A Document groups rows into named sections. Section names and keys are
// matched case-insensitively, repeated sections are merged in file order,
// and %token% references are expanded from the [Strings] section. Rows expose
// their fields by zero-based index: index 0 is the key (or the first value of
// a key-less line) and indexes 1..n are the comma-separated values.
//
// The package only reads; it never validates that the files an INF names
// exist, and it understands no directive beyond the generic section syntax.
package inf
