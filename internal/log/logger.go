// Package log is the application logger. It keeps a package-level logger
// for convenience calls and builds independent loggers for tests.
package log

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"pagetui/internal/errors"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	isDebug = false
	logger  = NewLogger()
)

// Field is one structured key/value pair.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logger writes leveled lines through logrus.
type Logger struct {
	base  *logrus.Logger
	entry *logrus.Entry
	level logrus.Level
	file  io.Closer
}

type options struct {
	out   io.Writer
	level logrus.Level
	json  bool
	file  string
}

// Option configures a Logger.
type Option func(*options)

// WithOutput sends log lines to w.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithLevel sets the threshold. Unknown names keep the default.
func WithLevel(name string) Option {
	return func(o *options) {
		if lvl, err := logrus.ParseLevel(name); err == nil {
			o.level = lvl
		}
	}
}

// WithJSON switches to one JSON object per line.
func WithJSON() Option {
	return func(o *options) { o.json = true }
}

// WithFile writes to a rotating file at path instead of the output.
func WithFile(path string) Option {
	return func(o *options) { o.file = path }
}

// NewLogger creates a logger writing to stderr at info level by default.
func NewLogger(opts ...Option) *Logger {
	o := options{out: os.Stderr, level: logrus.InfoLevel}
	for _, opt := range opts {
		opt(&o)
	}

	base := logrus.New()
	base.SetLevel(logrus.TraceLevel)
	if o.json {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	} else {
		base.SetFormatter(lineFormatter{})
	}

	l := &Logger{base: base, level: o.level}
	if o.file != "" {
		rotating := &lumberjack.Logger{
			Filename:   o.file,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		base.SetOutput(rotating)
		l.file = rotating
	} else {
		base.SetOutput(o.out)
	}
	l.entry = logrus.NewEntry(base)
	return l
}

// Configure replaces the package-level logger.
func Configure(opts ...Option) {
	old := logger
	logger = NewLogger(opts...)
	if old != nil && old.file != nil {
		old.file.Close()
	}
}

// SetupFile routes package-level logging to <dir>/<name>.log and returns
// the file path.
func SetupFile(dir, name, level string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.NewFileError("failed to create log directory", dir, errors.FileCreateFailed, err)
	}
	path := filepath.Join(dir, name+".log")
	Configure(WithFile(path), WithLevel(level))
	SetDebug(strings.EqualFold(level, "debug") || strings.EqualFold(level, "trace"))
	return path, nil
}

// SetDebug enables debug output on every logger.
func SetDebug(debug bool) {
	isDebug = debug
}

func (l *Logger) enabled(level logrus.Level) bool {
	if level == logrus.DebugLevel && isDebug {
		return true
	}
	return level <= l.level
}

func (l *Logger) log(level logrus.Level, msg string) {
	if l.enabled(level) {
		l.entry.Log(level, msg)
	}
}

// With returns a logger carrying extra fields.
func (l *Logger) With(fields ...Field) *Logger {
	data := logrus.Fields{}
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return &Logger{base: l.base, entry: l.entry.WithFields(data), level: l.level, file: l.file}
}

// Info logs msg at info level.
func (l *Logger) Info(msg string) {
	l.log(logrus.InfoLevel, msg)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(logrus.InfoLevel, fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(msg string) {
	l.log(logrus.WarnLevel, msg)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(logrus.WarnLevel, fmt.Sprintf(format, args...))
}

func (l *Logger) Error(msg string) {
	l.log(logrus.ErrorLevel, msg)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(logrus.ErrorLevel, fmt.Sprintf(format, args...))
}

// Debug logs msg when debugging is enabled.
func (l *Logger) Debug(msg string) {
	l.log(logrus.DebugLevel, msg)
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(logrus.DebugLevel, fmt.Sprintf(format, args...))
}

// LogWithFields returns the package logger with fields attached.
func LogWithFields(fields ...Field) *Logger {
	return logger.With(fields...)
}

// LogWithError attaches an error and, for application errors, its kind
// and context.
func LogWithError(err error) *Logger {
	if err == nil {
		return logger.With(F("error", "<nil>"))
	}
	fields := []Field{F("error", err.Error())}

	var fileErr *errors.FileError
	var configErr *errors.ConfigError
	var authErr *errors.AuthError
	var appErr *errors.ApplicationError
	switch {
	case errors.As(err, &configErr):
		fields = append(fields, F("error_kind", int(configErr.Kind())), F("param", configErr.Param()))
	case errors.As(err, &fileErr):
		fields = append(fields, F("error_kind", int(fileErr.Kind())), F("path", fileErr.Path()))
	case errors.As(err, &authErr):
		fields = append(fields, F("error_kind", int(authErr.Kind())), F("endpoint", authErr.Endpoint()))
	case errors.As(err, &appErr):
		fields = append(fields, F("error_kind", int(appErr.Kind())))
	}
	return logger.With(fields...)
}

// LogError logs err with msg at error level.
func LogError(err error, msg string) {
	LogWithError(err).Error(msg)
}

func Info(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

func Infof(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// Debug logs a message with arguments
func Debug(msg string, args ...interface{}) {
	if len(args) == 0 {
		logger.Debug(msg)
		return
	}
	logger.Debugf(msg+": %v", args...)
}

// Debugf logs a formatted message
func Debugf(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

// Error logs an error message with arguments
func Error(msg string, args ...interface{}) {
	if len(args) == 0 {
		logger.Error(msg)
		return
	}
	logger.Errorf(msg+": %v", args...)
}

// Errorf logs a formatted error message
func Errorf(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}

// Warn logs a warning message with arguments
func Warn(msg string, args ...interface{}) {
	if len(args) == 0 {
		logger.Warn(msg)
		return
	}
	logger.Warnf(msg+": %v", args...)
}

// Warnf logs a formatted warning message
func Warnf(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

// lineFormatter writes "[timestamp] LEVEL: message key=value ...".
type lineFormatter struct{}

var levelNames = map[logrus.Level]string{
	logrus.TraceLevel: "TRACE",
	logrus.DebugLevel: "DEBUG",
	logrus.InfoLevel:  "INFO",
	logrus.WarnLevel:  "WARN",
	logrus.ErrorLevel: "ERROR",
	logrus.FatalLevel: "FATAL",
	logrus.PanicLevel: "PANIC",
}

func (lineFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "[%s] %s: %s", e.Time.Format("2006-01-02 15:04:05"), levelNames[e.Level], e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}
