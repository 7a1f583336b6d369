// Package applog builds the router's structured logger: colorized text on
// stdout plus a daily-rotating JSON file, mirroring the dual-sink setup the
// original router's tracing_appender configuration used.
package applog

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Config controls where and how verbosely applog.New logs.
type Config struct {
	Level   string // "debug", "info", "warn", "error" - defaults to "info"
	LogDir  string // directory daily JSON log files are written under
	NoColor bool
}

// New builds a *logrus.Logger writing colorized text to stdout and, when
// cfg.LogDir is set, JSON lines to a file that rotates at UTC midnight.
func New(cfg Config) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(io.Discard) // hooks below own every write

	level, err := logrus.ParseLevel(orDefault(cfg.Level, "info"))
	if err != nil {
		return nil, err
	}
	log.SetLevel(level)

	log.AddHook(&writerHook{
		writer:    os.Stdout,
		formatter: &logrus.TextFormatter{ForceColors: !cfg.NoColor, FullTimestamp: true, TimestampFormat: "06-01-02 15:04:05"},
		levels:    logrus.AllLevels,
	})

	if cfg.LogDir != "" {
		rotating, err := newDailyFile(cfg.LogDir, "router.log")
		if err != nil {
			return nil, err
		}
		log.AddHook(&writerHook{
			writer:    rotating,
			formatter: &logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"},
			levels:    logrus.AllLevels,
		})
	}

	return log, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// writerHook sends every log entry through formatter before writing it to
// writer. logrus's own io.Writer output only supports one formatter at a
// time, so two independent sinks with different formats need two hooks.
type writerHook struct {
	writer    io.Writer
	formatter logrus.Formatter
	levels    []logrus.Level
}

func (h *writerHook) Levels() []logrus.Level { return h.levels }

func (h *writerHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = h.writer.Write(line)
	return err
}
