// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/getdriverfiles/getdriverfiles/internal/config"
	"github.com/getdriverfiles/getdriverfiles/internal/testutil"
)

// netdrvINF is a small package with one unresolvable row (line 13).
const netdrvINF = `[Version]
Signature = "$Windows NT$"
CatalogFile = netdrv.cat
CatalogFile.NTAMD64 = netdrv64.cat

[SourceDisksNames]
1 = %Disk%,,,\x86
2 = %Disk%,,,amd64

[SourceDisksFiles]
netdrv.sys = 1,drivers
netdrv.dll = 1
bad.sys = 9

[SourceDisksFiles.amd64]
netdrv64.sys = 2,drivers

[Strings]
Disk = "Network Driver Disk"
`

type staticConfig struct {
	cfg  *config.Config
	path string
	err  error
}

func (s staticConfig) Load(context.Context, config.LoadOptions) (*config.Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	cfg := s.cfg
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &config.Result{Config: cfg, Path: s.path}, nil
}

type runResult struct {
	stdout string
	stderr string
	err    error
}

// runCLI executes the command tree in-process with captured output.
func runCLI(t *testing.T, provider ConfigProvider, args ...string) runResult {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app, err := NewApp(Dependencies{Config: provider, Stdout: &stdout, Stderr: &stderr})
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}

	root := newRootCommand(app)
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err = root.ExecuteContext(context.Background())

	return runResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeINF(t *testing.T, text string) string {
	t.Helper()

	return testutil.MustWriteFile(t, t.TempDir(), "netdrv.inf", text)
}
