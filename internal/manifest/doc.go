// SPDX-License-Identifier: MPL-2.0

// Package manifest resolves the file list of a driver package from its INF
// document.
//
// Resolution runs in three passes over the document:
//
//  1. CatalogFiles reads the CatalogFile keys of [Version].
//  2. BuildDiskTable loads [SourceDisksNames] rows into a disktable.Table.
//  3. SourceFiles resolves every [SourceDisksFiles] row against that table.
//
// Each pass probes the undecorated section or key first and then one
// decorated variant per architecture, in a fixed order. Rows that cannot be
// resolved are skipped and reported through a Reporter; they never abort the
// run. Driver ties the passes together and streams results to an Emitter.
package manifest
