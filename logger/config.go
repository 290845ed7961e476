package logger

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
)

// Config is the per-module log configuration (internal use; built by the
// Manager from its ManagerConfig).
type Config struct {
	Level    string
	Encoding string // json or console

	// Internal fields, set by the Manager.
	moduleName string // module name (cache, event, ...)
	logDir     string // log root directory (default logs/)

	EnableFile    bool
	EnableConsole bool

	// File name format.
	EnableLevelInFilename bool
	EnableDateInFilename  bool
	DateFormat            string // default 2006-01-02

	// Rotation (lumberjack).
	MaxSize    int  // max size of a single file (MB)
	MaxBackups int  // old files to keep
	MaxAge     int  // days to keep
	Compress   bool

	EnableCaller     bool
	EnableStacktrace bool
	StacktraceLevel  string // level from which stacks are recorded (default error)
	StacktraceDepth  int    // stack depth limit (0 = unlimited)
}

// ManagerConfig is the global manager configuration shared by all modules.
type ManagerConfig struct {
	BaseLogDir            string `mapstructure:"base_log_dir"`
	Level                 string `mapstructure:"level"`
	AppName               string `mapstructure:"app_name"` // injected into every log line
	Encoding              string `mapstructure:"encoding"`
	EnableConsole         bool   `mapstructure:"enable_console"`
	EnableFile            bool   `mapstructure:"enable_file"`
	EnableLevelInFilename bool   `mapstructure:"enable_level_in_filename"`
	EnableDateInFilename  bool   `mapstructure:"enable_date_in_filename"`
	DateFormat            string `mapstructure:"date_format"`
	MaxSize               int    `mapstructure:"max_size"`
	MaxBackups            int    `mapstructure:"max_backups"`
	MaxAge                int    `mapstructure:"max_age"`
	Compress              bool   `mapstructure:"compress"`
	EnableCaller          bool   `mapstructure:"enable_caller"`
	EnableStacktrace      bool   `mapstructure:"enable_stacktrace"`
	StacktraceLevel       string `mapstructure:"stacktrace_level"`
	StacktraceDepth       int    `mapstructure:"stacktrace_depth"`
	LoggerName            string `mapstructure:"logger_name"`
	ModuleNumber          int    `mapstructure:"module_number"`

	// Trace ID extraction.
	EnableTraceID    bool   `mapstructure:"enable_trace_id"`
	TraceIDKey       string `mapstructure:"trace_id_key"`        // context key (default "trace_id")
	TraceIDFieldName string `mapstructure:"trace_id_field_name"` // log field name (default "trace_id")
}

// DefaultManagerConfig returns the default manager configuration.
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		BaseLogDir:            "logs",
		LoggerName:            "logger",
		Level:                 "info",
		Encoding:              "json",
		EnableConsole:         true,
		EnableFile:            false,
		EnableLevelInFilename: true,
		EnableDateInFilename:  true,
		DateFormat:            "2006-01-02",
		MaxSize:               100,
		MaxBackups:            3,
		MaxAge:                28,
		Compress:              true,
		EnableCaller:          true,
		EnableStacktrace:      true,
		StacktraceLevel:       "error",
		StacktraceDepth:       5,
		EnableTraceID:         true,
		TraceIDKey:            "trace_id",
		TraceIDFieldName:      "trace_id",
		ModuleNumber:          50,
	}
}

// ApplyDefaults fills zero-valued fields in place, for configs loaded from
// partial files.
func (c *ManagerConfig) ApplyDefaults() {
	defaults := DefaultManagerConfig()

	if c.BaseLogDir == "" {
		c.BaseLogDir = defaults.BaseLogDir
	}
	if c.LoggerName == "" {
		c.LoggerName = defaults.LoggerName
	}
	if c.Level == "" {
		c.Level = defaults.Level
	}
	if c.Encoding == "" {
		c.Encoding = defaults.Encoding
	}
	if c.DateFormat == "" {
		c.DateFormat = defaults.DateFormat
	}
	if c.MaxSize == 0 {
		c.MaxSize = defaults.MaxSize
	}
	if c.MaxBackups == 0 {
		c.MaxBackups = defaults.MaxBackups
	}
	if c.MaxAge == 0 {
		c.MaxAge = defaults.MaxAge
	}
	if c.StacktraceLevel == "" {
		c.StacktraceLevel = defaults.StacktraceLevel
	}
	if c.StacktraceDepth == 0 {
		c.StacktraceDepth = defaults.StacktraceDepth
	}
	if c.TraceIDKey == "" {
		c.TraceIDKey = defaults.TraceIDKey
	}
	if c.TraceIDFieldName == "" {
		c.TraceIDFieldName = defaults.TraceIDFieldName
	}
	if c.ModuleNumber == 0 {
		c.ModuleNumber = defaults.ModuleNumber
	}
}

// Validate checks the configuration.
func (c *ManagerConfig) Validate() error {
	switch strings.ToLower(c.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %s", c.Level)
	}
	switch c.Encoding {
	case "", "json", "console":
	default:
		return fmt.Errorf("unknown log encoding: %s", c.Encoding)
	}
	return nil
}

// ParseLevel converts a level string to a zapcore.Level; unknown strings
// default to Info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// getInfoFilePath builds the info file path, e.g.
// logs/cache/cache-info-2026-01-02.log.
func (c Config) getInfoFilePath() string {
	return c.filePath("info")
}

// getErrorFilePath builds the error file path.
func (c Config) getErrorFilePath() string {
	return c.filePath("error")
}

func (c Config) filePath(level string) string {
	name := c.moduleName
	if c.EnableLevelInFilename {
		name += "-" + level
	}
	if c.EnableDateInFilename {
		format := c.DateFormat
		if format == "" {
			format = "2006-01-02"
		}
		name += "-" + time.Now().Format(format)
	}
	return filepath.Join(c.logDir, c.moduleName, name+".log")
}

// shouldCaptureStacktrace reports whether a log at the given level should
// carry a stack, per the manager configuration.
func shouldCaptureStacktrace(level string, cfg ManagerConfig) bool {
	if !cfg.EnableStacktrace {
		return false
	}
	return ParseLevel(level) >= ParseLevel(cfg.StacktraceLevel)
}
