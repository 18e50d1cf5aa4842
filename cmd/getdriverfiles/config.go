// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/getdriverfiles/getdriverfiles/internal/config"
	"github.com/getdriverfiles/getdriverfiles/internal/issue"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `getdriverfiles config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App, opts *rootOptions) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage getdriverfiles configuration",
		Long: `Manage getdriverfiles configuration.

Configuration is stored in:
  - Linux: ~/.config/getdriverfiles/config.cue
  - macOS: ~/Library/Application Support/getdriverfiles/config.cue
  - Windows: %APPDATA%\getdriverfiles\config.cue

A config.cue in the current directory is used when none exists there.
Every key can be overridden with a ` + config.EnvPrefix + `_<KEY> environment
variable, for example ` + config.EnvPrefix + `_OUTPUT_FORMAT=json.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: opts.configPath})
			if err != nil {
				return app.fail(cmd, issue.ConfigLoadFailedId, err, opts.verbose, config.ColorSchemeAuto)
			}
			showConfig(app.stdout, res)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, created, err := config.CreateDefaultConfig("")
			if err != nil {
				return app.fail(cmd, issue.ConfigLoadFailedId, fmt.Errorf("failed to create config: %w", err), opts.verbose, config.ColorSchemeAuto)
			}
			if created {
				fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
			} else {
				fmt.Fprintf(app.stdout, "Configuration already exists at %s\n", path)
			}
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgDir, err := config.ConfigDir()
			if err != nil {
				return app.fail(cmd, issue.ConfigLoadFailedId, err, opts.verbose, config.ColorSchemeAuto)
			}
			fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)
			fmt.Fprintf(app.stdout, "Config file: %s\n", config.ConfigFilePath(cfgDir))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: opts.configPath})
			if err != nil {
				return app.fail(cmd, issue.ConfigLoadFailedId, err, opts.verbose, config.ColorSchemeAuto)
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(res.Config))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(w io.Writer, res *config.Result) {
	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	cfg := res.Config

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	if res.Path != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), res.Path)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	archs := make([]string, 0, len(cfg.Architectures))
	for _, a := range cfg.Architectures {
		archs = append(archs, a.String())
	}
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("architectures"), valueStyle.Render(strings.Join(archs, ", ")))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("output"))
	fmt.Fprintf(w, "  format: %s\n", valueStyle.Render(string(cfg.Output.Format)))
	fmt.Fprintf(w, "  path_style: %s\n", valueStyle.Render(string(cfg.Output.PathStyle)))
	fmt.Fprintf(w, "  absolute: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.Output.Absolute)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(w, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))
	fmt.Fprintf(w, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
}
