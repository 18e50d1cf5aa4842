// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/getdriverfiles/config.cue (or the XDG equivalent
// on Linux, ~/Library/Application Support/getdriverfiles/config.cue on macOS,
// %APPDATA%\getdriverfiles\config.cue on Windows), falling back to ./config.cue.
// Values can be overridden with GETDRIVERFILES_* environment variables, and command-line
// flags take precedence over both.
//
// Files are validated against the embedded CUE schema (config_schema.cue) before they
// are merged into Viper.
package config
