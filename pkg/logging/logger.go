package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// New creates a logger writing entries in the given format
func New(w io.Writer, format Format, level Level) *StructuredLogger {
	enc := encodeJSON
	if format == FormatConsole {
		enc = encodeConsole
	}
	return &StructuredLogger{
		writer: w,
		encode: enc,
		level:  &levelHolder{level: level},
		mu:     &sync.Mutex{},
	}
}

// NewJSONLogger creates a new JSON logger
func NewJSONLogger(w io.Writer, level Level) *StructuredLogger {
	return New(w, FormatJSON, level)
}

// NewConsoleLogger creates a human-readable logger: `time LEVEL msg key=value ...`
func NewConsoleLogger(w io.Writer, level Level) *StructuredLogger {
	return New(w, FormatConsole, level)
}

func encodeJSON(ts time.Time, level Level, msg string, fields []Field) ([]byte, error) {
	entry := LogEntry{
		Time:    ts.Format(time.RFC3339Nano),
		Level:   level.String(),
		Message: msg,
	}
	if len(fields) > 0 {
		entry.Fields = make(map[string]any, len(fields))
		for _, f := range fields {
			entry.Fields[f.Key] = f.Value
		}
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func encodeConsole(ts time.Time, level Level, msg string, fields []Field) ([]byte, error) {
	var b strings.Builder
	b.WriteString(ts.Format("15:04:05.000"))
	b.WriteByte(' ')
	fmt.Fprintf(&b, "%-5s ", level.String())
	b.WriteString(msg)

	// Later fields override earlier ones with the same key
	merged := make(map[string]any, len(fields))
	for _, f := range fields {
		merged[f.Key] = f.Value
	}
	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := merged[k]
		if s, ok := v.(string); ok && strings.ContainsAny(s, " \t\"=") {
			fmt.Fprintf(&b, " %s=%q", k, s)
			continue
		}
		fmt.Fprintf(&b, " %s=%v", k, v)
	}
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

func (l *StructuredLogger) log(level Level, msg string, fields ...Field) {
	if level < l.GetLevel() {
		return
	}

	all := make([]Field, 0, len(l.fields)+len(fields))
	all = append(all, l.fields...)
	all = append(all, fields...)

	data, err := l.encode(time.Now(), level, msg, all)

	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		fmt.Fprintf(l.writer, "[ERROR] Failed to encode log entry: %v\n", err)
		return
	}
	l.writer.Write(data)
}

// Debug logs a debug-level message
func (l *StructuredLogger) Debug(msg string, fields ...Field) {
	l.log(DebugLevel, msg, fields...)
}

// Info logs an info-level message
func (l *StructuredLogger) Info(msg string, fields ...Field) {
	l.log(InfoLevel, msg, fields...)
}

// Warn logs a warning-level message
func (l *StructuredLogger) Warn(msg string, fields ...Field) {
	l.log(WarnLevel, msg, fields...)
}

// Error logs an error-level message
func (l *StructuredLogger) Error(msg string, fields ...Field) {
	l.log(ErrorLevel, msg, fields...)
}

// With creates a child logger with the given fields pre-set. The child
// shares the writer, encoder and level with its parent.
func (l *StructuredLogger) With(fields ...Field) Logger {
	newFields := make([]Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)

	return &StructuredLogger{
		writer: l.writer,
		encode: l.encode,
		level:  l.level,
		fields: newFields,
		mu:     l.mu,
	}
}

// SetLevel sets the minimum log level
func (l *StructuredLogger) SetLevel(level Level) {
	l.level.mu.Lock()
	defer l.level.mu.Unlock()
	l.level.level = level
}

// GetLevel returns the current log level
func (l *StructuredLogger) GetLevel() Level {
	l.level.mu.RLock()
	defer l.level.mu.RUnlock()
	return l.level.level
}

// Global default logger
var (
	defaultLogger Logger
	defaultMu     sync.RWMutex
	once          sync.Once
)

// DefaultLogger returns the global default logger. It writes JSON to
// stderr so stdout stays free for the report.
func DefaultLogger() Logger {
	once.Do(func() {
		level := InfoLevel
		if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
			level = ParseLevel(levelStr)
		}
		defaultMu.Lock()
		if defaultLogger == nil {
			defaultLogger = NewJSONLogger(os.Stderr, level)
		}
		defaultMu.Unlock()
	})
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefaultLogger sets the global default logger
func SetDefaultLogger(logger Logger) {
	once.Do(func() {})
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = logger
}

// StartTimer begins timing an operation
func StartTimer(logger Logger, msg string, fields ...Field) *TimedOperation {
	return &TimedOperation{
		logger: logger,
		msg:    msg,
		start:  time.Now(),
		fields: fields,
	}
}

// Elapsed returns the time since the timer started
func (t *TimedOperation) Elapsed() time.Duration {
	return time.Since(t.start)
}

// End logs the operation with its duration and returns that duration
func (t *TimedOperation) End(extra ...Field) time.Duration {
	elapsed := time.Since(t.start)
	fields := append(append([]Field{}, t.fields...), extra...)
	t.logger.Info(t.msg, append(fields, Latency(elapsed))...)
	return elapsed
}

// EndError logs the operation as an error with its duration
func (t *TimedOperation) EndError(err error) time.Duration {
	elapsed := time.Since(t.start)
	fields := append([]Field{}, t.fields...)
	t.logger.Error(t.msg, append(fields, Latency(elapsed), Error(err))...)
	return elapsed
}
