package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Tag is attached to every log event so the side channel can be filtered
// the same way a logcat tag would be.
const Tag = "litert"

// Sink is the verbose side channel mirroring console output and
// configuration changes. It never affects behaviour.
type Sink interface {
	Verbose(msg string)
	Warn(msg string, err error)
	Error(msg string, err error)
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) Verbose(string)      {}
func (NopSink) Warn(string, error)  {}
func (NopSink) Error(string, error) {}

// LogConfig holds log sink configuration
type LogConfig struct {
	Level   string    // trace, debug, info, warn, error
	File    string    // log file path, appended to
	Console bool      // also log to Stderr
	Stderr  io.Writer // defaults to os.Stderr
}

// LogSink implements Sink on top of zerolog.
type LogSink struct {
	logger zerolog.Logger
	file   *os.File
}

// NewLogSink creates a zerolog-backed sink. With neither a file nor
// console output configured, events are dropped.
func NewLogSink(cfg LogConfig) (*LogSink, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.DebugLevel
	}

	var writers []io.Writer

	if cfg.Console {
		stderr := cfg.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        stderr,
			TimeFormat: time.TimeOnly,
			NoColor:    !isTerminal(stderr),
		})
	}

	var file *os.File
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		file, err = os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		writers = append(writers, file)
	}

	var w io.Writer
	switch len(writers) {
	case 0:
		w = io.Discard
	case 1:
		w = writers[0]
	default:
		w = zerolog.MultiLevelWriter(writers...)
	}

	logger := zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("tag", Tag).
		Logger()

	return &LogSink{logger: logger, file: file}, nil
}

// Verbose logs at debug level.
func (s *LogSink) Verbose(msg string) {
	s.logger.Debug().Msg(msg)
}

// Warn logs at warn level.
func (s *LogSink) Warn(msg string, err error) {
	s.logger.Warn().Err(err).Msg(msg)
}

// Error logs at error level.
func (s *LogSink) Error(msg string, err error) {
	s.logger.Error().Err(err).Msg(msg)
}

// Close closes the log file, if any.
func (s *LogSink) Close() error {
	if s.file != nil {
		return s.file.Close()
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
