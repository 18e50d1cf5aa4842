// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/getdriverfiles/getdriverfiles/internal/manifest"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

type collectingRenderer struct {
	mu    sync.Mutex
	diags []manifest.Diagnostic
}

func (r *collectingRenderer) Render(_ context.Context, diag manifest.Diagnostic, _ io.Writer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diags = append(r.diags, diag)
}

func TestNewAppDefaults(t *testing.T) {
	t.Parallel()

	app, err := NewApp(Dependencies{})
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	if app.Config == nil || app.Diagnostics == nil || app.Open == nil {
		t.Errorf("NewApp() left a dependency nil: %+v", app)
	}
	if app.stdout == nil || app.stderr == nil {
		t.Error("NewApp() left an output stream nil")
	}
}

func TestAppUsesInjectedRenderer(t *testing.T) {
	t.Parallel()

	renderer := &collectingRenderer{}
	var stdout, stderr bytes.Buffer
	app, err := NewApp(Dependencies{
		Config:      staticConfig{},
		Diagnostics: renderer,
		Stdout:      &stdout,
		Stderr:      &stderr,
	})
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}

	root := newRootCommand(app)
	root.SetArgs([]string{"--arch", "x86", writeINF(t, netdrvINF)})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if len(renderer.diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(renderer.diags))
	}
	d := renderer.diags[0]
	if d.Section != "SourceDisksFiles" || d.Line != 13 {
		t.Errorf("diagnostic = %+v, want SourceDisksFiles line 13", d)
	}
	if strings.Contains(stderr.String(), "Skipping line") {
		t.Errorf("default renderer wrote to stderr: %q", stderr.String())
	}
}

func TestAppUsesInjectedOpener(t *testing.T) {
	t.Parallel()

	var opened string
	var stdout, stderr bytes.Buffer
	app, err := NewApp(Dependencies{
		Config: staticConfig{},
		Open: func(path string) (manifest.RowSource, error) {
			opened = path
			return manifest.OpenINF(writeINF(t, "[Version]\nCatalogFile = virtual.cat\n"))
		},
		Stdout: &stdout,
		Stderr: &stderr,
	})
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}

	root := newRootCommand(app)
	root.SetArgs([]string{"virtual.inf"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if opened != "virtual.inf" {
		t.Errorf("opener received %q, want %q", opened, "virtual.inf")
	}
	if stdout.String() != "virtual.cat\n" {
		t.Errorf("stdout = %q, want %q", stdout.String(), "virtual.cat\n")
	}
}

func TestDefaultDiagnosticRenderer(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	diag := manifest.Diagnostic{Section: "SourceDisksNames", Line: 4, Reason: "unable to read the disk id"}
	renderer := &defaultDiagnosticRenderer{style: newStderrStyles(&buf).warning}
	renderer.Render(context.Background(), diag, &buf)

	if !strings.Contains(buf.String(), diag.String()) {
		t.Errorf("Render() wrote %q, want it to contain %q", buf.String(), diag.String())
	}
}

// Color support is detected on stderr itself, so a color-capable stdout does not
// leak escape codes into redirected warnings.
func TestWarningsIgnoreStdoutColorProfile(t *testing.T) {
	previous := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.TrueColor)
	t.Cleanup(func() { lipgloss.SetColorProfile(previous) })

	res := runCLI(t, staticConfig{}, writeINF(t, netdrvINF))
	if res.err != nil {
		t.Fatalf("Execute() error = %v", res.err)
	}

	want := "Section SourceDisksFiles, line 13: disk id 9 is not declared in any SourceDisksNames section. Skipping line.\n"
	if res.stderr != want {
		t.Errorf("stderr = %q, want %q", res.stderr, want)
	}

	res = runCLI(t, staticConfig{})
	if strings.Contains(res.stderr, "\x1b[") {
		t.Errorf("missing-argument error contains escape codes: %q", res.stderr)
	}
}
