// SPDX-License-Identifier: MPL-2.0

// Package disktable holds the installation-media table of a driver package:
// an ordered set of disk entries keyed by their integer disk ID, each with an
// optional base path. The first entry inserted for an ID wins; later inserts
// for the same ID are discarded.
package disktable
