// Package log is the structured logger shared by the admindash commands, the
// seed-file watcher and the TUI. It wraps logrus and keeps a small field API
// (F, LogWithFields, LogWithError) so call sites stay terse.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"admindash/internal/errors"
)

var (
	isDebug atomic.Bool
	logger  = NewLogger()
)

// Field is a single structured key/value pair attached to a log line
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logger writes leveled, structured log lines
type Logger struct {
	entry *logrus.Entry
	level logrus.Level
	file  *os.File
}

type options struct {
	out   io.Writer
	json  bool
	level logrus.Level
	file  string
}

// Option configures a Logger
type Option func(*options)

// WithOutput sends log lines to w instead of stdout
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithJSON switches to one JSON object per line
func WithJSON() Option {
	return func(o *options) { o.json = true }
}

// WithLevel sets the minimum level; unknown names keep the default
func WithLevel(level string) Option {
	return func(o *options) {
		if parsed, err := logrus.ParseLevel(level); err == nil {
			o.level = parsed
		}
	}
}

// WithFile tees output into the file at path in addition to the configured writer
func WithFile(path string) Option {
	return func(o *options) { o.file = path }
}

// NewLogger creates a logger writing text lines to stdout at info level
func NewLogger(opts ...Option) *Logger {
	o := options{out: os.Stdout, level: logrus.InfoLevel}
	for _, opt := range opts {
		opt(&o)
	}

	base := logrus.New()
	// Filtering happens in Logger.enabled so SetDebug can flip existing loggers.
	base.SetLevel(logrus.TraceLevel)
	if o.json {
		base.SetFormatter(&logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyMsg:  "message",
				logrus.FieldKeyTime: "timestamp",
			},
		})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			DisableColors:   true,
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	l := &Logger{level: o.level}
	out := o.out
	if o.file != "" {
		file, err := os.OpenFile(o.file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			l.file = file
			out = io.MultiWriter(out, file)
		} else {
			fmt.Fprintf(os.Stderr, "log: open %s: %v\n", o.file, err)
		}
	}
	base.SetOutput(out)
	l.entry = logrus.NewEntry(base)
	return l
}

// Configure replaces the package-level logger
func Configure(opts ...Option) {
	logger = NewLogger(opts...)
}

// Default returns the package-level logger
func Default() *Logger {
	return logger
}

// SetDebug enables or disables debug output for every logger
func SetDebug(debug bool) {
	isDebug.Store(debug)
}

// Close releases the log file opened by WithFile, if any
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// With returns a child logger carrying the given fields
func (l *Logger) With(fields ...Field) *Logger {
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return &Logger{entry: l.entry.WithFields(data), level: l.level, file: l.file}
}

// WithError returns a child logger describing err, see LogWithError
func (l *Logger) WithError(err error) *Logger {
	return l.With(errorFields(err)...)
}

// WithContext is accepted for call-site symmetry; no values are read from ctx yet.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}
	return &Logger{entry: l.entry.WithContext(ctx), level: l.level, file: l.file}
}

func (l *Logger) enabled(level logrus.Level) bool {
	if level == logrus.DebugLevel && isDebug.Load() {
		return true
	}
	return level <= l.level
}

func (l *Logger) log(level logrus.Level, msg string) {
	if !l.enabled(level) {
		return
	}
	entry := l.entry
	if _, file, line, ok := runtime.Caller(2); ok {
		entry = entry.WithField("caller", fmt.Sprintf("%s:%d", filepath.Base(file), line))
	}
	entry.Log(level, msg)
}

func (l *Logger) Info(msg string) { l.log(logrus.InfoLevel, msg) }
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(logrus.InfoLevel, fmt.Sprintf(format, args...))
}
func (l *Logger) Warn(msg string) { l.log(logrus.WarnLevel, msg) }
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(logrus.WarnLevel, fmt.Sprintf(format, args...))
}
func (l *Logger) Error(msg string) { l.log(logrus.ErrorLevel, msg) }
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(logrus.ErrorLevel, fmt.Sprintf(format, args...))
}
func (l *Logger) Debug(msg string) { l.log(logrus.DebugLevel, msg) }
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(logrus.DebugLevel, fmt.Sprintf(format, args...))
}

// Info logs at info level on the package logger
func Info(msg string) { logger.log(logrus.InfoLevel, msg) }

// Infof logs a formatted message at info level
func Infof(format string, args ...interface{}) {
	logger.log(logrus.InfoLevel, fmt.Sprintf(format, args...))
}

// Warn logs at warn level
func Warn(msg string) { logger.log(logrus.WarnLevel, msg) }

// Warnf logs a formatted message at warn level
func Warnf(format string, args ...interface{}) {
	logger.log(logrus.WarnLevel, fmt.Sprintf(format, args...))
}

// Error logs at error level
func Error(msg string) { logger.log(logrus.ErrorLevel, msg) }

// Errorf logs a formatted message at error level
func Errorf(format string, args ...interface{}) {
	logger.log(logrus.ErrorLevel, fmt.Sprintf(format, args...))
}

// Debug logs at debug level; dropped unless SetDebug(true) or a debug level is configured
func Debug(msg string) { logger.log(logrus.DebugLevel, msg) }

// Debugf logs a formatted debug message
func Debugf(format string, args ...interface{}) {
	logger.log(logrus.DebugLevel, fmt.Sprintf(format, args...))
}

// LogWithFields returns the package logger carrying fields
func LogWithFields(fields ...Field) *Logger {
	return logger.With(fields...)
}

// LogWithError returns the package logger annotated with err, its kind and the
// typed detail (path, param, target, name) of admindash errors.
func LogWithError(err error) *Logger {
	return logger.WithError(err)
}

// LogError logs err with msg at error level
func LogError(err error, msg string) {
	logger.WithError(err).log(logrus.ErrorLevel, msg)
}

func errorFields(err error) []Field {
	if err == nil {
		return []Field{F("error", "<nil>")}
	}
	fields := []Field{F("error", err.Error()), F("error_kind", errors.KindOf(err).String())}

	var dsErr *errors.DatasetError
	if errors.As(err, &dsErr) && dsErr.Path() != "" {
		fields = append(fields, F("path", dsErr.Path()))
	}
	var cfgErr *errors.ConfigError
	if errors.As(err, &cfgErr) && cfgErr.Param() != "" {
		fields = append(fields, F("param", cfgErr.Param()))
	}
	var navErr *errors.NavigationError
	if errors.As(err, &navErr) && navErr.Target() != "" {
		fields = append(fields, F("target", navErr.Target()))
	}
	var queryErr *errors.QueryError
	if errors.As(err, &queryErr) && queryErr.Name() != "" {
		fields = append(fields, F("name", queryErr.Name()))
	}
	return fields
}
