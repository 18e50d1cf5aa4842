// SPDX-License-Identifier: MPL-2.0

package benchmark

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/getdriverfiles/getdriverfiles/internal/config"
	"github.com/getdriverfiles/getdriverfiles/internal/disktable"
	"github.com/getdriverfiles/getdriverfiles/internal/manifest"
	"github.com/getdriverfiles/getdriverfiles/internal/output"
	"github.com/getdriverfiles/getdriverfiles/internal/testutil"
	"github.com/getdriverfiles/getdriverfiles/pkg/inf"
)

const (
	benchDisks = 16
	benchFiles = 2000
)

// discard drops diagnostics so reporting does not dominate the profile.
var discard = manifest.ReporterFunc(func(manifest.Diagnostic) {})

// largeINF builds a package with benchDisks disks and benchFiles files spread
// over the undecorated and amd64 sections. Every 50th file names an unknown disk.
func largeINF() string {
	var sb strings.Builder

	sb.WriteString("[Version]\nSignature = \"$Windows NT$\"\nCatalogFile = bench.cat\nCatalogFile.NTAMD64 = bench64.cat\n\n")

	sb.WriteString("[SourceDisksNames]\n")
	for d := 1; d <= benchDisks; d++ {
		fmt.Fprintf(&sb, "%d = %%Disk%%,,,disk%02d\n", d, d)
	}

	for i := range benchFiles {
		if i == 0 {
			sb.WriteString("\n[SourceDisksFiles]\n")
		} else if i == benchFiles/2 {
			sb.WriteString("\n[SourceDisksFiles.amd64]\n")
		}
		disk := i%benchDisks + 1
		if i%50 == 49 {
			disk = benchDisks + 1
		}
		fmt.Fprintf(&sb, "file%04d.sys = %d,sub%d ; entry %d\n", i, disk, i%7, i)
	}

	sb.WriteString("\n[Strings]\nDisk = \"Benchmark Disk\"\n")
	return sb.String()
}

func mustParse(b *testing.B, text string) *inf.Document {
	b.Helper()

	doc, err := inf.Parse(strings.NewReader(text), "bench.inf")
	if err != nil {
		b.Fatalf("Parse() error = %v", err)
	}
	return doc
}

// BenchmarkINFParsing covers decoding, line joining and field splitting.
func BenchmarkINFParsing(b *testing.B) {
	text := largeINF()
	b.SetBytes(int64(len(text)))
	b.ReportAllocs()

	for b.Loop() {
		if _, err := inf.Parse(strings.NewReader(text), "bench.inf"); err != nil {
			b.Fatalf("Parse() error = %v", err)
		}
	}
}

// BenchmarkINFParsingUTF16 covers the UTF-16 decoding path.
func BenchmarkINFParsingUTF16(b *testing.B) {
	text := largeINF()
	data := []byte{0xFF, 0xFE}
	for _, r := range text {
		data = append(data, byte(r), byte(r>>8))
	}
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()

	for b.Loop() {
		if _, err := inf.Parse(bytes.NewReader(data), "bench.inf"); err != nil {
			b.Fatalf("Parse() error = %v", err)
		}
	}
}

func BenchmarkCatalogFiles(b *testing.B) {
	doc := mustParse(b, largeINF())
	resolver := manifest.NewResolver(manifest.WithReporter(discard))

	for b.Loop() {
		if got := resolver.CatalogFiles(doc); len(got) != 2 {
			b.Fatalf("CatalogFiles() = %v", got)
		}
	}
}

func BenchmarkBuildDiskTable(b *testing.B) {
	doc := mustParse(b, largeINF())
	resolver := manifest.NewResolver(manifest.WithReporter(discard))

	for b.Loop() {
		table := resolver.BuildDiskTable(doc)
		if table.Len() != benchDisks {
			b.Fatalf("Len() = %d, want %d", table.Len(), benchDisks)
		}
		table.DrainAll()
	}
}

// BenchmarkSourceFiles covers the per-row disk lookups and path joins.
func BenchmarkSourceFiles(b *testing.B) {
	doc := mustParse(b, largeINF())
	resolver := manifest.NewResolver(manifest.WithReporter(discard))
	table := resolver.BuildDiskTable(doc)
	b.ReportAllocs()

	for b.Loop() {
		n := 0
		for range resolver.SourceFiles(doc, table) {
			n++
		}
		if n == 0 {
			b.Fatal("SourceFiles() yielded nothing")
		}
	}
}

func BenchmarkDiskTable(b *testing.B) {
	b.ReportAllocs()

	for b.Loop() {
		table := disktable.New()
		for id := range int32(256) {
			table.InsertIfAbsent(disktable.NewEntry(id, "disk"))
		}
		for id := range int32(256) {
			if _, ok := table.Find(id); !ok {
				b.Fatalf("Find(%d) found nothing", id)
			}
		}
		table.DrainAll()
	}
}

// BenchmarkDriverRun covers the whole pipeline from file to encoded output.
func BenchmarkDriverRun(b *testing.B) {
	path := testutil.MustWriteFile(b, b.TempDir(), "bench.inf", largeINF())
	resolver := manifest.NewResolver(manifest.WithReporter(discard))

	for _, format := range []output.Format{output.FormatText, output.FormatJSON, output.FormatYAML} {
		b.Run(string(format), func(b *testing.B) {
			driver := manifest.NewDriver(resolver)
			b.ReportAllocs()

			for b.Loop() {
				w, err := output.New(format, io.Discard)
				if err != nil {
					b.Fatalf("output.New() error = %v", err)
				}
				if _, err := driver.Run(context.Background(), path, w); err != nil {
					b.Fatalf("Run() error = %v", err)
				}
				if err := w.Close(); err != nil {
					b.Fatalf("Close() error = %v", err)
				}
			}
		})
	}
}

// BenchmarkConfigLoad covers CUE schema validation and the viper merge.
func BenchmarkConfigLoad(b *testing.B) {
	dir := b.TempDir()
	testutil.MustWriteFile(b, dir, filepath.Base(config.ConfigFilePath("")), `
architectures: ["x86", "amd64"]
output: {
	format: "json"
	path_style: "native"
}
ui: color_scheme: "dark"
`)
	provider := config.NewProvider()
	opts := config.LoadOptions{ConfigFilePath: config.ConfigFilePath(dir)}

	for b.Loop() {
		if _, err := provider.Load(context.Background(), opts); err != nil {
			b.Fatalf("Load() error = %v", err)
		}
	}
}
