// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"errors"
	"slices"
	"testing"

	"github.com/getdriverfiles/getdriverfiles/internal/disktable"

	"github.com/google/go-cmp/cmp"
)

func TestCatalogFiles(t *testing.T) {
	t.Parallel()

	doc := parseINF(t, packageINF)

	got := NewResolver().CatalogFiles(doc)
	want := []string{"pkg.cat", "pkg64.cat"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CatalogFiles() mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalogFilesRestrictedArchitectures(t *testing.T) {
	t.Parallel()

	doc := parseINF(t, packageINF)

	got := NewResolver(WithArchitectures(ArchARM64)).CatalogFiles(doc)
	if diff := cmp.Diff([]string{"pkg.cat"}, got); diff != "" {
		t.Errorf("CatalogFiles() mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalogFilesFirstRowOnly(t *testing.T) {
	t.Parallel()

	doc := parseINF(t, `[Version]
CatalogFile.NT =
CatalogFile.NT = ignored.cat
CatalogFile = only.cat, extra
`)

	got := NewResolver().CatalogFiles(doc)
	if diff := cmp.Diff([]string{"only.cat"}, got); diff != "" {
		t.Errorf("CatalogFiles() mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalogFilesNone(t *testing.T) {
	t.Parallel()

	doc := parseINF(t, "[Version]\nSignature = \"$Windows NT$\"\n")
	if got := NewResolver().CatalogFiles(doc); len(got) != 0 {
		t.Errorf("CatalogFiles() = %v, want none", got)
	}
}

func TestBuildDiskTable(t *testing.T) {
	t.Parallel()

	doc := parseINF(t, packageINF)
	rec := &diagnosticRecorder{}

	table := NewResolver(WithReporter(rec)).BuildDiskTable(doc)

	want := []disktable.Entry{
		disktable.NewEntry(1, "data"),
		disktable.NewEntry(2, ""),
		disktable.NewEntry(3, ""),
		disktable.NewEntry(4, "x64"),
	}
	if diff := cmp.Diff(want, table.Entries()); diff != "" {
		t.Errorf("disk table mismatch (-want +got):\n%s", diff)
	}

	wantDiags := []string{"Section SourceDisksNames, line 11: invalid or missing disk id. Skipping line."}
	if diff := cmp.Diff(wantDiags, rec.lines()); diff != "" {
		t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildDiskTableSeparatorOnlyPath(t *testing.T) {
	t.Parallel()

	doc := parseINF(t, `[SourceDisksNames]
7 = "Disk",,,"\\"
8 = "Disk",,,"/"
[SourceDisksFiles]
x.sys = 7,sub
y.sys = 8
`)

	resolver := NewResolver()
	table := resolver.BuildDiskTable(doc)
	for _, id := range []int32{7, 8} {
		e, ok := table.Find(id)
		if !ok {
			t.Fatalf("Find(%d) found nothing", id)
		}
		if _, has := e.Path(); has {
			t.Errorf("disk %d has base path %q, want none", id, e.BasePath)
		}
	}

	got := slices.Collect(resolver.SourceFiles(doc, table))
	if diff := cmp.Diff([]string{`sub\x.sys`, "y.sys"}, got); diff != "" {
		t.Errorf("SourceFiles() mismatch (-want +got):\n%s", diff)
	}
}

func TestSourceFiles(t *testing.T) {
	t.Parallel()

	doc := parseINF(t, packageINF)
	rec := &diagnosticRecorder{}
	resolver := NewResolver(WithReporter(rec))

	table := resolver.BuildDiskTable(doc)
	rec.diags = nil

	got := slices.Collect(resolver.SourceFiles(doc, table))
	want := []string{
		`data\a.sys`,
		`data\sub\b.sys`,
		`nested\c.sys`,
		`d.sys`,
		`x64\drv\g.sys`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SourceFiles() mismatch (-want +got):\n%s", diff)
	}

	wantDiags := []string{
		"Section SourceDisksFiles, line 22: disk id 9 is not declared in any SourceDisksNames section. Skipping line.",
		"Section SourceDisksFiles, line 23: invalid or missing disk id. Skipping line.",
	}
	if diff := cmp.Diff(wantDiags, rec.lines()); diff != "" {
		t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
	}

	codes := []Code{rec.diags[0].Code, rec.diags[1].Code}
	if diff := cmp.Diff([]Code{CodeUnknownDiskID, CodeInvalidDiskID}, codes); diff != "" {
		t.Errorf("diagnostic codes mismatch (-want +got):\n%s", diff)
	}
}

func TestSourceFilesMissingFileName(t *testing.T) {
	t.Parallel()

	doc := parseINF(t, `[SourceDisksNames]
1 = "Disk"
[SourceDisksFiles]
= 1
after.sys = 1
`)
	rec := &diagnosticRecorder{}
	resolver := NewResolver(WithReporter(rec))

	got := slices.Collect(resolver.SourceFiles(doc, resolver.BuildDiskTable(doc)))
	if diff := cmp.Diff([]string{"after.sys"}, got); diff != "" {
		t.Errorf("SourceFiles() mismatch (-want +got):\n%s", diff)
	}
	if len(rec.diags) != 1 || rec.diags[0].Code != CodeMissingFileName {
		t.Errorf("diagnostics = %v, want one %s", rec.lines(), CodeMissingFileName)
	}
}

func TestSourceFilesStopsEarly(t *testing.T) {
	t.Parallel()

	doc := parseINF(t, packageINF)
	resolver := NewResolver()
	table := resolver.BuildDiskTable(doc)

	var got []string
	for p := range resolver.SourceFiles(doc, table) {
		got = append(got, p)
		if len(got) == 2 {
			break
		}
	}
	if diff := cmp.Diff([]string{`data\a.sys`, `data\sub\b.sys`}, got); diff != "" {
		t.Errorf("partial SourceFiles() mismatch (-want +got):\n%s", diff)
	}
}

func TestUnreadableSectionIsSkipped(t *testing.T) {
	t.Parallel()

	doc := brokenSection{Document: parseINF(t, packageINF), section: "SourceDisksFiles"}
	rec := &diagnosticRecorder{}
	resolver := NewResolver(WithReporter(rec))

	got := slices.Collect(resolver.SourceFiles(doc, resolver.BuildDiskTable(doc)))
	if diff := cmp.Diff([]string{`x64\drv\g.sys`}, got); diff != "" {
		t.Errorf("SourceFiles() mismatch (-want +got):\n%s", diff)
	}

	var sectionDiag *Diagnostic
	for i := range rec.diags {
		if rec.diags[i].Code == CodeUnreadableSection {
			sectionDiag = &rec.diags[i]
		}
	}
	if sectionDiag == nil {
		t.Fatalf("no %s diagnostic in %v", CodeUnreadableSection, rec.lines())
	}
	if sectionDiag.Cause == nil || !sectionDiag.SkipsSection() {
		t.Errorf("section diagnostic = %+v, want a cause and section scope", sectionDiag)
	}
	want := "Section SourceDisksFiles: unable to count lines: corrupt section index. Skipping section."
	if sectionDiag.String() != want {
		t.Errorf("String() = %q, want %q", sectionDiag.String(), want)
	}
}

func TestParseArchitecture(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"x86", "AMD64", " arm64 "} {
		if _, err := ParseArchitecture(in); err != nil {
			t.Errorf("ParseArchitecture(%q) error = %v", in, err)
		}
	}
	_, err := ParseArchitecture("mips")
	if !errors.Is(err, ErrInvalidArchitecture) {
		t.Errorf("ParseArchitecture(mips) error = %v, want ErrInvalidArchitecture", err)
	}
}

func TestVariants(t *testing.T) {
	t.Parallel()

	archs := normalizeArchitectures([]Architecture{ArchARM64, ArchX86, ArchARM64})
	if diff := cmp.Diff([]Architecture{ArchX86, ArchARM64}, archs); diff != "" {
		t.Errorf("normalizeArchitectures() mismatch (-want +got):\n%s", diff)
	}

	wantKeys := []string{"CatalogFile", "CatalogFile.NT", "CatalogFile.NTX86", "CatalogFile.NTARM64"}
	if diff := cmp.Diff(wantKeys, catalogKeys(archs)); diff != "" {
		t.Errorf("catalogKeys() mismatch (-want +got):\n%s", diff)
	}

	wantSections := []string{"SourceDisksFiles", "SourceDisksFiles.X86", "SourceDisksFiles.ARM64"}
	if diff := cmp.Diff(wantSections, sectionVariants(sourceFilesSection, archs)); diff != "" {
		t.Errorf("sectionVariants() mismatch (-want +got):\n%s", diff)
	}
}
