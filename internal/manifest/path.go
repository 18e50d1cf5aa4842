// SPDX-License-Identifier: MPL-2.0

package manifest

import "strings"

// Separator joins the segments of a resolved path.
const Separator = `\`

// separators are stripped from both ends of base paths and subdirectories.
const separators = `\/`

// trimSeparators removes every leading and trailing path separator.
func trimSeparators(s string) string {
	return strings.Trim(s, separators)
}

// JoinSourcePath combines an optional base path, an optional subdirectory and
// a file name into a single path separated by backslashes. An empty base or
// subdir, or one made only of separators, contributes no segment.
func JoinSourcePath(base, subdir, file string) string {
	base = trimSeparators(base)
	subdir = trimSeparators(subdir)

	size := len(file)
	if base != "" {
		size += len(base) + len(Separator)
	}
	if subdir != "" {
		size += len(subdir) + len(Separator)
	}

	var b strings.Builder
	b.Grow(size)
	if base != "" {
		b.WriteString(base)
		b.WriteString(Separator)
	}
	if subdir != "" {
		b.WriteString(subdir)
		b.WriteString(Separator)
	}
	b.WriteString(file)
	return b.String()
}
