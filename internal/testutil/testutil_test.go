// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

const testEnvKey = "GETDRIVERFILES_TESTUTIL_PROBE"

func TestMustSetenvRestoresUnset(t *testing.T) {
	t.Cleanup(MustUnsetenv(t, testEnvKey))

	cleanup := MustSetenv(t, testEnvKey, "value")
	if got := os.Getenv(testEnvKey); got != "value" {
		t.Fatalf("%s = %q, want %q", testEnvKey, got, "value")
	}

	cleanup()
	if _, ok := os.LookupEnv(testEnvKey); ok {
		t.Errorf("%s still set after cleanup", testEnvKey)
	}
}

func TestMustUnsetenvRestoresValue(t *testing.T) {
	t.Cleanup(MustSetenv(t, testEnvKey, "original"))

	cleanup := MustUnsetenv(t, testEnvKey)
	if _, ok := os.LookupEnv(testEnvKey); ok {
		t.Fatalf("%s still set after MustUnsetenv", testEnvKey)
	}

	cleanup()
	if got := os.Getenv(testEnvKey); got != "original" {
		t.Errorf("%s = %q after cleanup, want %q", testEnvKey, got, "original")
	}
}

func TestMustChdir(t *testing.T) {
	original, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	cleanup := MustChdir(t, dir)
	got, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if got != dir {
		t.Errorf("Getwd() = %q, want %q", got, dir)
	}

	cleanup()
	if got, _ := os.Getwd(); got != original {
		t.Errorf("Getwd() after cleanup = %q, want %q", got, original)
	}
}

func TestMustWriteFile(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "dir")
	path := MustWriteFile(t, dir, "package.inf", "[Version]\n")

	if path != filepath.Join(dir, "package.inf") {
		t.Errorf("MustWriteFile() = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "[Version]\n" {
		t.Errorf("file content = %q", data)
	}
}
