// SPDX-License-Identifier: MPL-2.0

// Package cueutil reads CUE configuration files with a size bound and turns CUE
// evaluation errors into "file:line: field: message" lines.
package cueutil
