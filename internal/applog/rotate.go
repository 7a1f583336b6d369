package applog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// dailyFile is an io.Writer that opens a new dated file each time the
// calendar day changes, named "<prefix>.<YYYY-MM-DD>". No log-rotation
// library appears anywhere in this codebase's dependency tree, so this
// reimplements the same daily-rolling behavior the original router's
// tracing_appender::rolling::daily configuration had.
type dailyFile struct {
	mu     sync.Mutex
	dir    string
	prefix string
	day    string
	file   *os.File
}

func newDailyFile(dir, prefix string) (*dailyFile, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("applog: create log dir %s: %w", dir, err)
	}
	d := &dailyFile{dir: dir, prefix: prefix}
	if err := d.rollIfNeeded(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *dailyFile) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.rollIfNeeded(); err != nil {
		return 0, err
	}
	return d.file.Write(p)
}

// rollIfNeeded must be called with d.mu held.
func (d *dailyFile) rollIfNeeded() error {
	today := time.Now().UTC().Format("2006-01-02")
	if today == d.day && d.file != nil {
		return nil
	}

	path := filepath.Join(d.dir, fmt.Sprintf("%s.%s", d.prefix, today))
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("applog: open %s: %w", path, err)
	}

	if d.file != nil {
		d.file.Close()
	}
	d.file = f
	d.day = today
	return nil
}
