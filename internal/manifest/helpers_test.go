// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"strings"
	"testing"

	"github.com/getdriverfiles/getdriverfiles/pkg/inf"
)

// packageINF exercises every presence combination of base path and subdir.
const packageINF = `[Version]
Signature = "$Windows NT$"
CatalogFile = pkg.cat
CatalogFile.NTAMD64 = pkg64.cat
CatalogFile.NTX86 =

[SourceDisksNames]
1 = %Disk1%,,,\\\\data
2 = "Disk 2",,,
3 = "Disk 3"
bad = "Bad disk"
1 = "Duplicate",,,\other

[SourceDisksNames.amd64]
4 = "Disk 4",,,"\x64\"

[SourceDisksFiles]
a.sys = 1
b.sys = 1,sub
c.sys = 2,"\\nested\\"
d.sys = 3,,
e.sys = 9
f.sys = nope

[SourceDisksFiles.amd64]
g.sys = 4,drv

[Strings]
Disk1 = "Disk One"
`

type diagnosticRecorder struct {
	diags []Diagnostic
}

func (r *diagnosticRecorder) Report(d Diagnostic) {
	r.diags = append(r.diags, d)
}

func (r *diagnosticRecorder) lines() []string {
	out := make([]string, 0, len(r.diags))
	for _, d := range r.diags {
		out = append(out, d.String())
	}
	return out
}

// brokenSection fails LineCount for one section and delegates everything else.
type brokenSection struct {
	*inf.Document
	section string
}

func (b brokenSection) LineCount(section string) (int, error) {
	if strings.EqualFold(section, b.section) {
		return 0, errors.New("corrupt section index")
	}
	return b.Document.LineCount(section)
}

func parseINF(t *testing.T, text string) *inf.Document {
	t.Helper()

	doc, err := inf.Parse(strings.NewReader(text), "package.inf")
	if err != nil {
		t.Fatalf("inf.Parse() error = %v", err)
	}
	return doc
}
