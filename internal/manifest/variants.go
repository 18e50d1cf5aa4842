// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

const (
	// ArchX86 is 32-bit x86.
	ArchX86 Architecture = "x86"
	// ArchIA64 is Itanium.
	ArchIA64 Architecture = "ia64"
	// ArchAMD64 is x64.
	ArchAMD64 Architecture = "amd64"
	// ArchARM is 32-bit ARM.
	ArchARM Architecture = "arm"
	// ArchARM64 is 64-bit ARM.
	ArchARM64 Architecture = "arm64"

	versionSection     = "Version"
	catalogFileKey     = "CatalogFile"
	diskNamesSection   = "SourceDisksNames"
	sourceFilesSection = "SourceDisksFiles"
)

// ErrInvalidArchitecture is the sentinel error wrapped by InvalidArchitectureError.
var ErrInvalidArchitecture = errors.New("invalid architecture")

type (
	// Architecture is a platform extension used to decorate section and key names.
	Architecture string

	// InvalidArchitectureError is returned when an Architecture value is not recognized.
	// It wraps ErrInvalidArchitecture for errors.Is() compatibility.
	InvalidArchitectureError struct {
		Value Architecture
	}
)

// AllArchitectures returns every supported architecture in probe order.
func AllArchitectures() []Architecture {
	return []Architecture{ArchX86, ArchIA64, ArchAMD64, ArchARM, ArchARM64}
}

// ParseArchitecture converts a case-insensitive name into an Architecture.
func ParseArchitecture(s string) (Architecture, error) {
	a := Architecture(s).Canonical()
	if err := a.Validate(); err != nil {
		return "", err
	}
	return a, nil
}

// Error implements the error interface.
func (e *InvalidArchitectureError) Error() string {
	return fmt.Sprintf("invalid architecture %q (valid: x86, ia64, amd64, arm, arm64)", e.Value)
}

// Unwrap returns ErrInvalidArchitecture so callers can use errors.Is for programmatic detection.
func (e *InvalidArchitectureError) Unwrap() error { return ErrInvalidArchitecture }

// Validate returns an error if the Architecture is not one of the supported values.
func (a Architecture) Validate() error {
	if !slices.Contains(AllArchitectures(), a) {
		return &InvalidArchitectureError{Value: a}
	}
	return nil
}

// Canonical returns a with surrounding space removed and letters lowercased.
func (a Architecture) Canonical() Architecture {
	return Architecture(strings.ToLower(strings.TrimSpace(string(a))))
}

// String returns the lowercase architecture name.
func (a Architecture) String() string { return string(a) }

func (a Architecture) decoration() string {
	return strings.ToUpper(string(a))
}

// normalizeArchitectures keeps the requested architectures in canonical
// probe order, dropping duplicates. An empty request selects all of them.
func normalizeArchitectures(archs []Architecture) []Architecture {
	if len(archs) == 0 {
		return AllArchitectures()
	}
	out := make([]Architecture, 0, len(archs))
	for _, a := range AllArchitectures() {
		if slices.Contains(archs, a) {
			out = append(out, a)
		}
	}
	return out
}

// catalogKeys returns CatalogFile, CatalogFile.NT and CatalogFile.NT<ARCH>.
func catalogKeys(archs []Architecture) []string {
	keys := []string{catalogFileKey, catalogFileKey + ".NT"}
	for _, a := range archs {
		keys = append(keys, catalogFileKey+".NT"+a.decoration())
	}
	return keys
}

// sectionVariants returns base followed by base.<ARCH> for each architecture.
func sectionVariants(base string, archs []Architecture) []string {
	names := []string{base}
	for _, a := range archs {
		names = append(names, base+"."+a.decoration())
	}
	return names
}
