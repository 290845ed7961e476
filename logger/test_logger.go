package logger

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TestCtxLogger records log entries in memory so tests can assert on them.
//
//	testLogger := logger.NewTestCtxLogger()
//	// ... run code under test ...
//	assert.True(t, testLogger.HasLog("INFO", "cache component started"))
type TestCtxLogger struct {
	logs []LogEntry
	mu   sync.RWMutex
}

// LogEntry is one recorded log line.
type LogEntry struct {
	Level   string
	Message string
	TraceID string
	Fields  map[string]interface{}
}

// NewTestCtxLogger creates an in-memory test logger.
func NewTestCtxLogger() *TestCtxLogger {
	return &TestCtxLogger{
		logs: make([]LogEntry, 0),
	}
}

// InfoCtx records an Info entry.
func (t *TestCtxLogger) InfoCtx(ctx context.Context, msg string, fields ...zap.Field) {
	t.record("INFO", ctx, msg, fields)
}

// ErrorCtx records an Error entry.
func (t *TestCtxLogger) ErrorCtx(ctx context.Context, msg string, fields ...zap.Field) {
	t.record("ERROR", ctx, msg, fields)
}

// DebugCtx records a Debug entry.
func (t *TestCtxLogger) DebugCtx(ctx context.Context, msg string, fields ...zap.Field) {
	t.record("DEBUG", ctx, msg, fields)
}

// WarnCtx records a Warn entry.
func (t *TestCtxLogger) WarnCtx(ctx context.Context, msg string, fields ...zap.Field) {
	t.record("WARN", ctx, msg, fields)
}

func (t *TestCtxLogger) record(level string, ctx context.Context, msg string, fields []zap.Field) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.logs = append(t.logs, LogEntry{
		Level:   level,
		Message: msg,
		TraceID: extractTraceIDFromContext(ctx, nil),
		Fields:  extractFieldsMap(fields),
	})
}

// HasLog reports whether a log at the given level whose message contains
// msg was recorded.
func (t *TestCtxLogger) HasLog(level, msg string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, entry := range t.logs {
		if entry.Level == level && strings.Contains(entry.Message, msg) {
			return true
		}
	}
	return false
}

// Logs returns a copy of all recorded entries.
func (t *TestCtxLogger) Logs() []LogEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	logs := make([]LogEntry, len(t.logs))
	copy(logs, t.logs)
	return logs
}

// Reset drops all recorded entries.
func (t *TestCtxLogger) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.logs = t.logs[:0]
}

// extractFieldsMap flattens zap fields into a plain map.
func extractFieldsMap(fields []zap.Field) map[string]interface{} {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
	}
	return enc.Fields
}
