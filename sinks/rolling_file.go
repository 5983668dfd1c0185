package sinks

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/willibrandon/mtbridge/core"
	"github.com/willibrandon/mtbridge/formatters"
)

// RollingFileOptions configures the rolling file sink.
type RollingFileOptions struct {
	// FilePath is the path to the active log file.
	FilePath string

	// MaxSizeMB is the size in megabytes at which the file rolls. Defaults to 100.
	MaxSizeMB int

	// MaxBackups is the number of rolled files to keep. 0 keeps all.
	MaxBackups int

	// MaxAgeDays removes rolled files older than this many days. 0 disables.
	MaxAgeDays int

	// Compress gzips rolled files.
	Compress bool

	// Formatter renders events. Defaults to CLEF.
	Formatter formatters.Formatter
}

// RollingFileSink writes events to a size-rolled file.
type RollingFileSink struct {
	*StreamSink
	file *lumberjack.Logger
}

var _ core.LogEventSink = (*RollingFileSink)(nil)

// NewRollingFileSink creates a rolling file sink, creating the parent
// directory if needed.
func NewRollingFileSink(options RollingFileOptions) (*RollingFileSink, error) {
	if options.FilePath == "" {
		return nil, errors.New("rolling file sink: file path is required")
	}
	if err := os.MkdirAll(filepath.Dir(options.FilePath), 0o755); err != nil {
		return nil, fmt.Errorf("rolling file sink: %w", err)
	}
	if options.Formatter == nil {
		options.Formatter = formatters.NewCLEFFormatter()
	}

	file := &lumberjack.Logger{
		Filename:   options.FilePath,
		MaxSize:    options.MaxSizeMB,
		MaxBackups: options.MaxBackups,
		MaxAge:     options.MaxAgeDays,
		Compress:   options.Compress,
	}
	stream := NewStreamSink(file, options.Formatter)
	stream.closer = file

	return &RollingFileSink{StreamSink: stream, file: file}, nil
}

// Roll closes the current file and starts a new one.
func (r *RollingFileSink) Roll() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.file.Rotate()
}
