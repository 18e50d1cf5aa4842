// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Color palette shared by all CLI output.
const (
	// ColorPrimary is purple - used for titles and headers.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray - used for subtitles and de-emphasized content.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorSuccess is green - used for values and checkmarks.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorError is red - used for fatal errors.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber - used for skipped rows.
	ColorWarning = lipgloss.Color("#F59E0B")

	// ColorHighlight is blue - used for config keys and command names.
	ColorHighlight = lipgloss.Color("#3B82F6")
)

var (
	// TitleStyle is for primary headers and section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary headers and descriptions.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle is for success messages and configured values.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// CmdStyle is for command names and config keys.
	CmdStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)
)

// stderrStyles holds the styles written to stderr. The package-level styles use
// lipgloss's default renderer, which sizes up stdout; these detect color support
// on the stream they are written to.
type stderrStyles struct {
	err     lipgloss.Style
	warning lipgloss.Style
}

func newStderrStyles(w io.Writer) stderrStyles {
	r := lipgloss.NewRenderer(w)
	return stderrStyles{
		err:     r.NewStyle().Bold(true).Foreground(ColorError),
		warning: r.NewStyle().Foreground(ColorWarning),
	}
}
