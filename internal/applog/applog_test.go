package applog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewAppliesLevel(t *testing.T) {
	log, err := New(Config{Level: "warn"})
	if err != nil {
		t.Fatal(err)
	}
	if log.GetLevel() != logrus.WarnLevel {
		t.Fatalf("got level %v, want warn", log.GetLevel())
	}
}

func TestNewDefaultsLevelToInfo(t *testing.T) {
	log, err := New(Config{})
	if err != nil {
		t.Fatal(err)
	}
	if log.GetLevel() != logrus.InfoLevel {
		t.Fatalf("got level %v, want info", log.GetLevel())
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := New(Config{Level: "not-a-level"}); err == nil {
		t.Fatal("expected an error for an invalid log level")
	}
}

func TestNewWritesDailyJSONFile(t *testing.T) {
	dir := t.TempDir()
	log, err := New(Config{LogDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	log.Info("hello from the test suite")

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d files in log dir, want 1", len(entries))
	}
	if !strings.HasPrefix(entries[0].Name(), "router.log.") {
		t.Fatalf("got file name %q", entries[0].Name())
	}

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hello from the test suite") {
		t.Fatalf("log file did not contain the logged message: %s", data)
	}
}
