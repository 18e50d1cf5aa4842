// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/getdriverfiles/getdriverfiles/internal/config"
	"github.com/getdriverfiles/getdriverfiles/internal/issue"
	"github.com/getdriverfiles/getdriverfiles/internal/manifest"
	"github.com/getdriverfiles/getdriverfiles/pkg/types"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer; Cobra handlers receive an App and reach configuration, document
	// opening and diagnostic rendering through it.
	App struct {
		Config      ConfigProvider
		Diagnostics DiagnosticRenderer
		Open        manifest.OpenFunc
		stdout      io.Writer
		stderr      io.Writer
		styles      stderrStyles
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config      ConfigProvider
		Diagnostics DiagnosticRenderer
		Open        manifest.OpenFunc
		Stdout      io.Writer
		Stderr      io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Result, error)
	}

	// DiagnosticRenderer renders rows skipped during resolution.
	DiagnosticRenderer interface {
		Render(ctx context.Context, diag manifest.Diagnostic, stderr io.Writer)
	}

	// defaultDiagnosticRenderer writes each diagnostic as one warning line.
	defaultDiagnosticRenderer struct {
		style lipgloss.Style
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	styles := newStderrStyles(deps.Stderr)
	if deps.Diagnostics == nil {
		deps.Diagnostics = &defaultDiagnosticRenderer{style: styles.warning}
	}
	if deps.Open == nil {
		deps.Open = manifest.OpenINF
	}

	return &App{
		Config:      deps.Config,
		Diagnostics: deps.Diagnostics,
		Open:        deps.Open,
		stdout:      deps.Stdout,
		stderr:      deps.Stderr,
		styles:      styles,
	}, nil
}

// reporter adapts the diagnostic renderer to the resolver's Reporter.
func (a *App) reporter(ctx context.Context) manifest.Reporter {
	return manifest.ReporterFunc(func(d manifest.Diagnostic) {
		if d.Cause != nil {
			slog.Debug("row skipped", "section", d.Section, "line", d.Line, "code", string(d.Code), "error", d.Cause)
		}
		a.Diagnostics.Render(ctx, d, a.stderr)
	})
}

// configureLogging installs a charmbracelet/log handler on stderr as the slog default.
func (a *App) configureLogging(verbose bool) {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(a.stderr, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
	slog.SetDefault(slog.New(logger))
}

// fail writes err to stderr, adds the rendered help for the issue err links (or
// fallback) in verbose mode, and returns an ExitError so Execute exits with
// ExitFailure without printing again.
func (a *App) fail(cmd *cobra.Command, fallback issue.Id, err error, verbose bool, scheme config.ColorScheme) error {
	_, _ = fmt.Fprintln(a.stderr, formatErrorForDisplay(err, verbose))
	if verbose {
		a.renderIssue(issue.IdOf(err, fallback), scheme)
	}
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	return &ExitError{Code: types.ExitFailure, Err: err}
}

// renderIssue renders the markdown help for id with glamour.
func (a *App) renderIssue(id issue.Id, scheme config.ColorScheme) {
	is := issue.Get(id)
	if is == nil {
		return
	}
	style := string(scheme)
	if style == "" {
		style = string(config.ColorSchemeAuto)
	}
	rendered, err := is.Render(style)
	if err != nil {
		slog.Debug("failed to render issue help", "id", int(id), "error", err)
		return
	}
	_, _ = fmt.Fprint(a.stderr, rendered)
}

// Render writes one warning line per diagnostic.
func (r *defaultDiagnosticRenderer) Render(_ context.Context, diag manifest.Diagnostic, stderr io.Writer) {
	_, _ = fmt.Fprintln(stderr, r.style.Render(diag.String()))
}
