// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/getdriverfiles/getdriverfiles/internal/issue"
	"github.com/getdriverfiles/getdriverfiles/pkg/cueutil"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "getdriverfiles"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix is the prefix of environment variables that override config keys.
	// For example GETDRIVERFILES_OUTPUT_FORMAT overrides output.format.
	EnvPrefix = "GETDRIVERFILES"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// ConfigFilePath returns the path of the config file inside dir.
//
//nolint:revive // mirrors ConfigDir
func ConfigFilePath(dir string) string {
	return filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state. It returns the decoded config and the path of the file
// it was read from ("" when only defaults and environment were used).
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := newViper()

	resolvedPath := ""

	// A file named with --config is used exclusively.
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", issue.New(fmt.Errorf("config file not found: %s", opts.ConfigFilePath),
				issue.Op("load configuration"),
				issue.On(opts.ConfigFilePath),
				issue.For(issue.ConfigLoadFailedId),
				issue.Hint(
					"Verify the file path is correct",
					"Run 'getdriverfiles config path' to see where the default file is looked up",
				))
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
		if err != nil {
			return nil, "", err
		}

		for _, candidate := range []string{ConfigFilePath(cfgDir), ConfigFilePath(opts.BaseDir)} {
			if fileExists(candidate) {
				resolvedPath = candidate
				break
			}
		}
		// If no config file is found, defaults apply (no error).
	}

	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, "", issue.New(err,
				issue.Op("load configuration"),
				issue.On(resolvedPath),
				issue.For(issue.ConfigLoadFailedId),
				issue.Hint(
					"Check that the file contains valid CUE syntax",
					"Run 'getdriverfiles config dump' to see a valid configuration",
				))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	// Environment overrides bypass the CUE schema, so validate the final result.
	cfg.normalize()
	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.New(errs[0],
			issue.Op("validate configuration"),
			issue.On(resolvedPath),
			issue.For(issue.ConfigLoadFailedId),
			issue.Hint("Check "+EnvPrefix+"_* environment variables for typos"))
	}

	return &cfg, resolvedPath, nil
}

// newViper returns a Viper instance seeded with defaults and bound to the
// GETDRIVERFILES_ environment prefix.
func newViper() *viper.Viper {
	v := viper.New()

	defaults := DefaultConfig()
	archs := make([]string, 0, len(defaults.Architectures))
	for _, a := range defaults.Architectures {
		archs = append(archs, a.String())
	}
	v.SetDefault("architectures", archs)
	v.SetDefault("output.format", string(defaults.Output.Format))
	v.SetDefault("output.path_style", string(defaults.Output.PathStyle))
	v.SetDefault("output.absolute", defaults.Output.Absolute)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.color_scheme", string(defaults.UI.ColorScheme))

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config schema,
// and merges its contents into Viper.
//
// Note: this decodes into map[string]any rather than a struct so that Viper keeps
// layering defaults and environment overrides on top of the file.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := cueutil.ReadFile(path, cueutil.MaxConfigSize)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	configMap, err := decodeCUE(data, path)
	if err != nil {
		return err
	}

	// Merge into Viper (preserves defaults, allows env overrides)
	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// decodeCUE compiles data, unifies it with #Config and decodes the result.
func decodeCUE(data []byte, path string) (map[string]any, error) {
	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return nil, cueutil.FormatError(userValue.Err(), path)
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return nil, cueutil.FormatError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return nil, cueutil.FormatError(err, path)
	}

	return configMap, nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes a default config file into dir, or into ConfigDir()
// when dir is empty. An existing file is left untouched. It returns the file
// path and whether a new file was written.
func CreateDefaultConfig(dir string) (string, bool, error) {
	cfgDir, err := configDirWithOverride(dir)
	if err != nil {
		return "", false, err
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgPath := ConfigFilePath(cfgDir)

	if _, err := os.Stat(cfgPath); err == nil {
		return cfgPath, false, nil
	}

	if err := os.WriteFile(cfgPath, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", false, fmt.Errorf("failed to write config file: %w", err)
	}

	return cfgPath, true, nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// getdriverfiles configuration file\n\n")

	sb.WriteString("architectures: [")
	for i, a := range cfg.Architectures {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%q", a.String())
	}
	sb.WriteString("]\n")

	sb.WriteString("\noutput: {\n")
	fmt.Fprintf(&sb, "\tformat: %q\n", string(cfg.Output.Format))
	fmt.Fprintf(&sb, "\tpath_style: %q\n", string(cfg.Output.PathStyle))
	fmt.Fprintf(&sb, "\tabsolute: %v\n", cfg.Output.Absolute)
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", string(cfg.UI.ColorScheme))
	sb.WriteString("}\n")

	return sb.String()
}
