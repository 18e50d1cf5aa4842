// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/getdriverfiles/getdriverfiles/pkg/inf"
)

const (
	// PathStyleINF keeps backslash separators exactly as resolved.
	PathStyleINF PathStyle = "inf"
	// PathStyleNative converts separators to the host convention.
	PathStyleNative PathStyle = "native"
)

// ErrInvalidPathStyle is the sentinel error wrapped by InvalidPathStyleError.
var ErrInvalidPathStyle = errors.New("invalid path style")

type (
	// PathStyle selects how resolved paths are presented.
	PathStyle string

	// InvalidPathStyleError is returned when a PathStyle value is not recognized.
	InvalidPathStyleError struct {
		Value PathStyle
	}

	// Presentation controls how catalog and source paths are written out.
	Presentation struct {
		// Style selects the separator convention.
		Style PathStyle
		// Absolute prefixes each path with the directory of the INF document.
		// It implies native separators.
		Absolute bool
	}

	// Emitter receives resolved entries in output order.
	Emitter interface {
		CatalogFile(name string) error
		SourceFile(path string) error
	}

	// OpenFunc opens the INF document at path.
	OpenFunc func(path string) (RowSource, error)

	// OpenError is returned by Driver.Run when the document cannot be opened.
	OpenError struct {
		Path string
		Err  error
	}

	// Summary counts what a run produced.
	Summary struct {
		CatalogFiles int
		Disks        int
		SourceFiles  int
	}

	// Driver opens a document and runs the three resolution passes over it.
	Driver struct {
		resolver     *Resolver
		open         OpenFunc
		presentation Presentation
	}

	// DriverOption configures a Driver.
	DriverOption func(*Driver)
)

// Error implements the error interface.
func (e *InvalidPathStyleError) Error() string {
	return fmt.Sprintf("invalid path style %q (valid: inf, native)", e.Value)
}

// Unwrap returns ErrInvalidPathStyle so callers can use errors.Is for programmatic detection.
func (e *InvalidPathStyleError) Unwrap() error { return ErrInvalidPathStyle }

// Validate returns an error if the PathStyle is not recognized. The zero value is valid.
func (s PathStyle) Validate() error {
	switch s {
	case "", PathStyleINF, PathStyleNative:
		return nil
	default:
		return &InvalidPathStyleError{Value: s}
	}
}

// Error implements the error interface.
func (e *OpenError) Error() string {
	msg := ""
	if e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = "An unknown error has occurred."
	}
	return fmt.Sprintf("Unable to open the file '%s':\n%s", e.Path, msg)
}

// Unwrap returns the underlying open failure.
func (e *OpenError) Unwrap() error { return e.Err }

// OpenINF opens path with the inf package reader.
func OpenINF(path string) (RowSource, error) {
	doc, err := inf.Open(path)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// WithOpenFunc replaces the document opener.
func WithOpenFunc(open OpenFunc) DriverOption {
	return func(d *Driver) {
		if open != nil {
			d.open = open
		}
	}
}

// WithPresentation sets how paths are written out.
func WithPresentation(p Presentation) DriverOption {
	return func(d *Driver) {
		d.presentation = p
	}
}

// NewDriver creates a Driver around resolver. A nil resolver uses NewResolver().
func NewDriver(resolver *Resolver, opts ...DriverOption) *Driver {
	if resolver == nil {
		resolver = NewResolver()
	}
	d := &Driver{
		resolver:     resolver,
		open:         OpenINF,
		presentation: Presentation{Style: PathStyleINF},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run resolves the document at path and sends catalog files, then source
// file paths, to out. Only a failure to open the document or to write to out
// is returned; rows that cannot be resolved are reported and skipped.
// The disk table is drained before Run returns, on every path.
func (d *Driver) Run(ctx context.Context, path string, out Emitter) (Summary, error) {
	var sum Summary

	if err := ctx.Err(); err != nil {
		return sum, fmt.Errorf("resolve manifest canceled: %w", err)
	}

	doc, err := d.open(path)
	if err != nil {
		return sum, &OpenError{Path: path, Err: err}
	}

	dir, err := d.presentation.baseDir(path)
	if err != nil {
		return sum, err
	}

	for _, name := range d.resolver.CatalogFiles(doc) {
		if err := out.CatalogFile(d.presentation.apply(dir, name)); err != nil {
			return sum, fmt.Errorf("failed to write catalog file: %w", err)
		}
		sum.CatalogFiles++
	}

	table := d.resolver.BuildDiskTable(doc)
	sum.Disks = table.Len()
	defer func() {
		released := table.DrainAll()
		slog.Debug("disk table released", "entries", len(released))
	}()

	for p := range d.resolver.SourceFiles(doc, table) {
		if err := out.SourceFile(d.presentation.apply(dir, p)); err != nil {
			return sum, fmt.Errorf("failed to write source file: %w", err)
		}
		sum.SourceFiles++
	}

	return sum, nil
}

// baseDir returns the absolute directory of the INF when Absolute is set.
func (p Presentation) baseDir(infPath string) (string, error) {
	if !p.Absolute {
		return "", nil
	}
	abs, err := filepath.Abs(infPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path of %s: %w", infPath, err)
	}
	return filepath.Dir(abs), nil
}

// apply converts a resolved path to the requested presentation.
func (p Presentation) apply(dir, resolved string) string {
	if p.Style != PathStyleNative && !p.Absolute {
		return resolved
	}
	native := strings.ReplaceAll(resolved, Separator, string(filepath.Separator))
	if !p.Absolute {
		return native
	}
	return filepath.Join(dir, native)
}
