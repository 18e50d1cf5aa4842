// SPDX-License-Identifier: MPL-2.0

package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	// FormatText writes catalog files then source files, one per line.
	FormatText Format = "text"
	// FormatJSON writes a JSON document.
	FormatJSON Format = "json"
	// FormatTOML writes a TOML document.
	FormatTOML Format = "toml"
	// FormatYAML writes a YAML document.
	FormatYAML Format = "yaml"
)

// ErrInvalidFormat is the sentinel error wrapped by InvalidFormatError.
var ErrInvalidFormat = errors.New("invalid output format")

type (
	// Format names an output encoding.
	Format string

	// InvalidFormatError is returned when a Format value is not recognized.
	// It wraps ErrInvalidFormat for errors.Is() compatibility.
	InvalidFormatError struct {
		Value Format
	}

	// Manifest is the structured form of a resolved driver package.
	Manifest struct {
		CatalogFiles []string `json:"catalog_files" toml:"catalog_files" yaml:"catalog_files"`
		SourceFiles  []string `json:"source_files" toml:"source_files" yaml:"source_files"`
	}

	// Writer receives manifest entries. Close must be called once all
	// entries are written; buffered formats produce their output there.
	Writer interface {
		CatalogFile(name string) error
		SourceFile(path string) error
		Close() error
	}

	textWriter struct {
		w io.Writer
	}

	encodeFunc func(w io.Writer, m Manifest) error

	structuredWriter struct {
		w        io.Writer
		encode   encodeFunc
		manifest Manifest
	}
)

// Error implements the error interface.
func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid output format %q (valid: text, json, toml, yaml)", e.Value)
}

// Unwrap returns ErrInvalidFormat so callers can use errors.Is for programmatic detection.
func (e *InvalidFormatError) Unwrap() error { return ErrInvalidFormat }

// Validate returns an error if the Format is not recognized. The zero value is valid.
func (f Format) Validate() error {
	switch f {
	case "", FormatText, FormatJSON, FormatTOML, FormatYAML:
		return nil
	default:
		return &InvalidFormatError{Value: f}
	}
}

// New returns a Writer for format writing to w. The zero Format means text.
func New(format Format, w io.Writer) (Writer, error) {
	switch format {
	case "", FormatText:
		return &textWriter{w: w}, nil
	case FormatJSON:
		return newStructured(w, encodeJSON), nil
	case FormatTOML:
		return newStructured(w, encodeTOML), nil
	case FormatYAML:
		return newStructured(w, encodeYAML), nil
	default:
		return nil, &InvalidFormatError{Value: format}
	}
}

func (t *textWriter) CatalogFile(name string) error {
	_, err := fmt.Fprintln(t.w, name)
	return err
}

func (t *textWriter) SourceFile(path string) error {
	_, err := fmt.Fprintln(t.w, path)
	return err
}

func (t *textWriter) Close() error { return nil }

func newStructured(w io.Writer, encode encodeFunc) *structuredWriter {
	return &structuredWriter{
		w:      w,
		encode: encode,
		manifest: Manifest{
			CatalogFiles: []string{},
			SourceFiles:  []string{},
		},
	}
}

func (s *structuredWriter) CatalogFile(name string) error {
	s.manifest.CatalogFiles = append(s.manifest.CatalogFiles, name)
	return nil
}

func (s *structuredWriter) SourceFile(path string) error {
	s.manifest.SourceFiles = append(s.manifest.SourceFiles, path)
	return nil
}

func (s *structuredWriter) Close() error {
	return s.encode(s.w, s.manifest)
}

func encodeJSON(w io.Writer, m Manifest) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func encodeTOML(w io.Writer, m Manifest) error {
	if err := toml.NewEncoder(w).Encode(m); err != nil {
		return fmt.Errorf("failed to encode TOML: %w", err)
	}
	return nil
}

func encodeYAML(w io.Writer, m Manifest) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return nil
}
