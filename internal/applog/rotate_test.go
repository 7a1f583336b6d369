package applog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDailyFileWritesToTodaysFile(t *testing.T) {
	dir := t.TempDir()
	d, err := newDailyFile(dir, "router.log")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := d.Write([]byte("line one\n")); err != nil {
		t.Fatal(err)
	}
	if _, err := d.Write([]byte("line two\n")); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "router.log."+d.day)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected file %s to exist: %v", path, err)
	}
	if string(data) != "line one\nline two\n" {
		t.Fatalf("got %q", data)
	}
}

func TestNewDailyFileCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	if _, err := newDailyFile(dir, "router.log"); err != nil {
		t.Fatalf("newDailyFile: %v", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("expected %s to exist as a directory", dir)
	}
}
