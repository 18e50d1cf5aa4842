// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/getdriverfiles/getdriverfiles/internal/config"
	"github.com/getdriverfiles/getdriverfiles/internal/issue"
	"github.com/getdriverfiles/getdriverfiles/internal/manifest"
	"github.com/getdriverfiles/getdriverfiles/internal/output"
	"github.com/getdriverfiles/getdriverfiles/pkg/inf"
	"github.com/getdriverfiles/getdriverfiles/pkg/types"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	errNoINFFile = errors.New("no INF file specified")
)

type (
	// rootOptions holds the values of the root command's flags.
	rootOptions struct {
		configPath string
		verbose    bool
		archs      []string
		format     string
		pathStyle  string
		absolute   bool
	}

	// settings is the effective configuration after flags override config.
	settings struct {
		archs        []manifest.Architecture
		format       output.Format
		presentation manifest.Presentation
		verbose      bool
		colorScheme  config.ColorScheme
	}
)

// newRootCommand builds the command tree around app.
func newRootCommand(app *App) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "getdriverfiles [flags] <inf-file>",
		Short: "List the files a driver package INF references",
		Long: TitleStyle.Render("getdriverfiles") + SubtitleStyle.Render(" - list the files a driver package INF references") + `

getdriverfiles reads a driver INF file and prints, one per line, the catalog
files named in its [Version] section followed by the source path of every
file listed in its SourceDisksFiles sections. Architecture-decorated sections
(for example SourceDisksFiles.amd64) are read after the undecorated ones.

Rows that cannot be resolved are reported on stderr and skipped.

` + SubtitleStyle.Render("Examples:") + `
  getdriverfiles netdrv.inf                   List every referenced file
  getdriverfiles --arch amd64 netdrv.inf      Only read amd64-decorated sections
  getdriverfiles --format json netdrv.inf     Write a JSON document
  getdriverfiles --absolute netdrv.inf        Prefix paths with the INF directory`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return app.missingArgument(cmd, opts.verbose)
			}
			return runList(cmd, app, opts, args[0])
		},
	}

	flags := rootCmd.Flags()
	flags.StringSliceVar(&opts.archs, "arch", nil, "architecture whose decorated sections are read (x86, ia64, amd64, arm, arm64; repeatable)")
	flags.StringVarP(&opts.format, "format", "f", "", "output format (text, json, toml, yaml)")
	flags.StringVar(&opts.pathStyle, "path-style", "", "path separators (inf keeps backslashes, native uses the host separator)")
	flags.BoolVar(&opts.absolute, "absolute", false, "prefix every entry with the directory of the INF file")

	persistent := rootCmd.PersistentFlags()
	persistent.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	persistent.StringVar(&opts.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/getdriverfiles/config.cue)")

	rootCmd.AddCommand(newConfigCommand(app, opts))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version != "dev" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev (built from source)"
}

// Execute builds the command tree and runs it. This is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, formatErrorForDisplay(err, false))
		os.Exit(int(types.ExitFailure))
	}

	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		newRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(handleError),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(int(types.ExitFailure))
	}
}

// handleError prints errors fang receives, except ExitErrors whose handler
// already wrote its message.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// runList resolves the INF file at path and writes the listing to stdout.
func runList(cmd *cobra.Command, app *App, opts *rootOptions, path string) error {
	ctx := cmd.Context()

	res, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: opts.configPath})
	if err != nil {
		return app.fail(cmd, issue.ConfigLoadFailedId, err, opts.verbose, config.ColorSchemeAuto)
	}

	s, err := resolveSettings(cmd, opts, res.Config)
	if err != nil {
		return app.fail(cmd, issue.InvalidOptionId, err, opts.verbose, res.Config.UI.ColorScheme)
	}

	app.configureLogging(s.verbose)
	if res.Path != "" {
		slog.Debug("configuration loaded", "path", res.Path)
	}

	w, err := output.New(s.format, app.stdout)
	if err != nil {
		return app.fail(cmd, issue.InvalidOptionId, err, s.verbose, s.colorScheme)
	}

	resolver := manifest.NewResolver(
		manifest.WithArchitectures(s.archs...),
		manifest.WithReporter(app.reporter(ctx)),
	)
	driver := manifest.NewDriver(resolver,
		manifest.WithOpenFunc(app.Open),
		manifest.WithPresentation(s.presentation),
	)

	sum, err := driver.Run(ctx, path, w)
	if err != nil {
		return app.fail(cmd, issue.OutputWriteFailedId, describeRunError(err, path, s.format), s.verbose, s.colorScheme)
	}
	if err := w.Close(); err != nil {
		return app.fail(cmd, issue.OutputWriteFailedId, describeWriteError(err, s.format), s.verbose, s.colorScheme)
	}

	slog.Debug("listing complete",
		"catalog_files", sum.CatalogFiles,
		"disks", sum.Disks,
		"source_files", sum.SourceFiles,
		"architectures", resolver.Architectures(),
	)
	return nil
}

// classifyRunError picks the issue help that matches a Driver.Run failure.
func classifyRunError(err error) issue.Id {
	var openErr *manifest.OpenError
	if !errors.As(err, &openErr) {
		return issue.OutputWriteFailedId
	}
	var syntaxErr *inf.SyntaxError
	switch {
	case errors.Is(err, fs.ErrPermission):
		return issue.PermissionDeniedId
	case errors.As(err, &syntaxErr), errors.Is(err, inf.ErrFileTooLarge):
		return issue.InfParseErrorId
	default:
		return issue.InfFileNotFoundId
	}
}

// describeRunError attaches the operation, resource and fixes to a Driver.Run
// failure. Open failures keep their own message as the headline.
func describeRunError(err error, path string, format output.Format) error {
	id := classifyRunError(err)
	if id == issue.OutputWriteFailedId {
		return describeWriteError(err, format)
	}

	var hints []string
	switch id {
	case issue.PermissionDeniedId:
		hints = []string{
			"Check that the file is readable by the current user",
			"Copy the driver package to a directory you own and retry",
		}
	case issue.InfParseErrorId:
		hints = []string{
			"Check the reported line for an unterminated section header",
			"Make sure the path names an .inf file, not a .cat or .sys file",
		}
	default:
		hints = []string{
			"Check the path for typos and quote it if it contains spaces",
			"Pass the INF file itself, not the directory that contains it",
		}
	}
	return issue.New(err,
		issue.Op("open INF file"),
		issue.On(path),
		issue.For(id),
		issue.Verbatim(),
		issue.Hint(hints...))
}

// describeWriteError annotates a failure to write the listing to stdout.
func describeWriteError(err error, format output.Format) error {
	return issue.New(err,
		issue.Op("write listing"),
		issue.On("as "+string(format)),
		issue.For(issue.OutputWriteFailedId),
		issue.Hint("Check that the reading end of a pipe is still running"))
}

// resolveSettings layers explicitly set flags over cfg.
func resolveSettings(cmd *cobra.Command, opts *rootOptions, cfg *config.Config) (settings, error) {
	s := settings{
		archs:  cfg.Architectures,
		format: cfg.Output.Format,
		presentation: manifest.Presentation{
			Style:    cfg.Output.PathStyle,
			Absolute: cfg.Output.Absolute,
		},
		verbose:     cfg.UI.Verbose,
		colorScheme: cfg.UI.ColorScheme,
	}

	flags := cmd.Flags()
	if flags.Changed("arch") {
		s.archs = make([]manifest.Architecture, 0, len(opts.archs))
		for _, name := range opts.archs {
			arch, err := manifest.ParseArchitecture(name)
			if err != nil {
				return s, issue.New(err, issue.Op("parse --arch"), issue.For(issue.InvalidOptionId), issue.Hint("Use one of: x86, ia64, amd64, arm, arm64"))
			}
			s.archs = append(s.archs, arch)
		}
	}
	if flags.Changed("format") {
		s.format = output.Format(opts.format)
		if err := s.format.Validate(); err != nil {
			return s, issue.New(err, issue.Op("parse --format"), issue.For(issue.InvalidOptionId), issue.Hint("Use one of: text, json, toml, yaml"))
		}
	}
	if flags.Changed("path-style") {
		s.presentation.Style = manifest.PathStyle(opts.pathStyle)
		if err := s.presentation.Style.Validate(); err != nil {
			return s, issue.New(err, issue.Op("parse --path-style"), issue.For(issue.InvalidOptionId), issue.Hint("Use inf or native"))
		}
	}
	if flags.Changed("absolute") {
		s.presentation.Absolute = opts.absolute
	}
	if opts.verbose {
		s.verbose = true
	}

	return s, nil
}

// missingArgument reports a call without an INF file.
func (a *App) missingArgument(cmd *cobra.Command, verbose bool) error {
	_, _ = fmt.Fprintf(a.stderr, "%s %s\nUsage: %s\n", a.styles.err.Render("Error:"), errNoINFFile, cmd.UseLine())
	if verbose {
		a.renderIssue(issue.MissingInfArgumentId, config.ColorSchemeAuto)
	}
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	return &ExitError{Code: types.ExitFailure, Err: errNoINFFile}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
