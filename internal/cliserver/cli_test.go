package cliserver

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/seiftnesse/mc-router/internal/config"
)

func newTestStore(t *testing.T) *config.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	return config.NewStore(path, config.Config{})
}

func TestCmdListEmpty(t *testing.T) {
	store := newTestStore(t)
	var out bytes.Buffer
	if err := cmdList(&out, store); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output for an empty config, got %q", out.String())
	}
}

func TestCmdForwardAddsAndUpdates(t *testing.T) {
	store := newTestStore(t)
	var out bytes.Buffer

	if err := cmdForward(&out, store, []string{"play.example.com", "backend.example.com:25566"}); err != nil {
		t.Fatalf("cmdForward: %v", err)
	}
	cfg := store.Snapshot()
	if len(cfg.VirtualHosts) != 1 {
		t.Fatalf("got %d virtualhosts, want 1", len(cfg.VirtualHosts))
	}
	if cfg.VirtualHosts[0].Action.Forward.String() != "backend.example.com:25566" {
		t.Fatalf("got forward %v", cfg.VirtualHosts[0].Action.Forward)
	}

	// Re-forwarding the same hostname updates in place rather than
	// appending a second entry.
	if err := cmdForward(&out, store, []string{"play.example.com", "other.example.com:25567"}); err != nil {
		t.Fatalf("cmdForward: %v", err)
	}
	cfg = store.Snapshot()
	if len(cfg.VirtualHosts) != 1 {
		t.Fatalf("got %d virtualhosts after update, want 1", len(cfg.VirtualHosts))
	}
	if cfg.VirtualHosts[0].Action.Forward.String() != "other.example.com:25567" {
		t.Fatalf("got forward %v after update", cfg.VirtualHosts[0].Action.Forward)
	}
}

func TestCmdForwardRequiresTwoArgs(t *testing.T) {
	store := newTestStore(t)
	var out bytes.Buffer
	if err := cmdForward(&out, store, []string{"only-one"}); err == nil {
		t.Fatal("expected an error with too few arguments")
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	store := newTestStore(t)
	var out bytes.Buffer
	if err := dispatch("nonsense", &out, store); err != nil {
		t.Fatalf("unknown commands should not error, got %v", err)
	}
	if !strings.Contains(out.String(), "Unknown command 'nonsense'") {
		t.Fatalf("got output %q", out.String())
	}
}

func TestRunProcessesLinesUntilEOF(t *testing.T) {
	store := newTestStore(t)
	in := strings.NewReader("forward play.example.com backend.example.com:25566\nlist\n")
	var out bytes.Buffer
	log := logrus.New()
	log.SetOutput(bytes.NewBuffer(nil))

	Run(in, &out, store, log)

	if !strings.Contains(out.String(), "play.example.com -> backend.example.com:25566") {
		t.Fatalf("got output %q", out.String())
	}
}
