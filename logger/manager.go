// Package logger provides a zap-based, module-scoped logging manager.
// Every module gets its own named logger with shared encoding, rotation and
// trace-id enrichment settings.
package logger

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Manager manages one logger instance per module.
type Manager struct {
	baseConfig ManagerConfig
	loggers    map[string]*CtxZapLogger
	zapLoggers map[string]*zap.Logger
	writers    map[string][]*lumberjack.Logger // per-module file writers, for closing
	mu         sync.RWMutex
}

var (
	globalManager *Manager
	managerOnce   sync.Once
)

// NewManager creates an independent manager instance. Zero-valued config
// fields are filled with defaults.
func NewManager(cfg ManagerConfig) *Manager {
	cfg.ApplyDefaults()
	return &Manager{
		baseConfig: cfg,
		loggers:    make(map[string]*CtxZapLogger, cfg.ModuleNumber),
		zapLoggers: make(map[string]*zap.Logger, cfg.ModuleNumber),
		writers:    make(map[string][]*lumberjack.Logger, cfg.ModuleNumber),
	}
}

// InitManager initializes the global manager (first call wins).
func InitManager(cfg ManagerConfig) {
	managerOnce.Do(func() {
		globalManager = NewManager(cfg)
	})
}

// ResetManager replaces the global manager with one built from cfg, closing
// the previous manager's file handles. Loggers obtained before the reset keep
// writing through their old cores.
func ResetManager(cfg ManagerConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	managerOnce.Do(func() {})
	if globalManager != nil {
		globalManager.CloseAll()
	}
	globalManager = NewManager(cfg)
	return nil
}

// GetLogger returns the CtxZapLogger for a module, creating it on demand.
// The returned logger already carries the module field.
func (m *Manager) GetLogger(moduleName string) *CtxZapLogger {
	m.mu.RLock()
	if logger, exists := m.loggers[moduleName]; exists {
		m.mu.RUnlock()
		return logger
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check under the write lock.
	if logger, exists := m.loggers[moduleName]; exists {
		return logger
	}

	cfg := m.buildModuleConfig(moduleName)
	zapLogger := m.createLogger(cfg)
	zapLoggerWithModule := zapLogger.With(zap.String("module", moduleName))

	// Skip the CtxZapLogger wrapper frame so caller info points at the
	// real call site.
	zapLoggerWithSkip := zapLoggerWithModule.WithOptions(zap.AddCallerSkip(1))

	ctxLogger := &CtxZapLogger{
		base:   zapLoggerWithSkip,
		module: moduleName,
		config: &m.baseConfig,
	}

	m.loggers[moduleName] = ctxLogger
	m.zapLoggers[moduleName] = zapLoggerWithModule

	return ctxLogger
}

// buildModuleConfig derives the per-module config.
func (m *Manager) buildModuleConfig(moduleName string) Config {
	return Config{
		Level:                 m.baseConfig.Level,
		Encoding:              m.baseConfig.Encoding,
		moduleName:            moduleName,
		logDir:                m.baseConfig.BaseLogDir,
		EnableFile:            m.baseConfig.EnableFile,
		EnableConsole:         m.baseConfig.EnableConsole,
		EnableLevelInFilename: m.baseConfig.EnableLevelInFilename,
		EnableDateInFilename:  m.baseConfig.EnableDateInFilename,
		DateFormat:            m.baseConfig.DateFormat,
		MaxSize:               m.baseConfig.MaxSize,
		MaxBackups:            m.baseConfig.MaxBackups,
		MaxAge:                m.baseConfig.MaxAge,
		Compress:              m.baseConfig.Compress,
		EnableCaller:          m.baseConfig.EnableCaller,
		EnableStacktrace:      m.baseConfig.EnableStacktrace,
		StacktraceLevel:       m.baseConfig.StacktraceLevel,
		StacktraceDepth:       m.baseConfig.StacktraceDepth,
	}
}

// createLogger builds the underlying zap.Logger for one module.
func (m *Manager) createLogger(cfg Config) *zap.Logger {
	encoder := createEncoder(cfg)
	var cores []zapcore.Core
	var writers []*lumberjack.Logger

	if cfg.EnableConsole {
		consoleCore := zapcore.NewCore(
			encoder,
			zapcore.AddSync(os.Stdout),
			ParseLevel(cfg.Level),
		)
		cores = append(cores, consoleCore)
	}

	if cfg.EnableFile {
		configuredLevel := ParseLevel(cfg.Level)

		infoWriter, infoLumber := createFileWriter(cfg.getInfoFilePath(), cfg)
		writers = append(writers, infoLumber)
		infoCore := zapcore.NewCore(
			encoder,
			infoWriter,
			zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
				return lvl >= configuredLevel && lvl < zapcore.ErrorLevel
			}),
		)
		cores = append(cores, infoCore)

		errorWriter, errorLumber := createFileWriter(cfg.getErrorFilePath(), cfg)
		writers = append(writers, errorLumber)
		errorCore := zapcore.NewCore(
			encoder,
			errorWriter,
			zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
				return lvl >= zapcore.ErrorLevel
			}),
		)
		cores = append(cores, errorCore)
	}

	core := zapcore.NewTee(cores...)

	opts := []zap.Option{}
	if cfg.EnableCaller {
		opts = append(opts, zap.AddCaller())
	}
	// Stacks are attached by CtxZapLogger.ErrorCtx with a controlled depth
	// instead of zap.AddStacktrace, which cannot cap the frame count.

	if len(writers) > 0 {
		m.writers[cfg.moduleName] = writers
	}

	return zap.New(core, opts...)
}

// CloseAll flushes buffers and closes all file handles. Call on shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, logger := range m.zapLoggers {
		_ = logger.Sync()
	}

	for _, writers := range m.writers {
		for _, w := range writers {
			_ = w.Close()
		}
	}

	m.loggers = make(map[string]*CtxZapLogger)
	m.zapLoggers = make(map[string]*zap.Logger)
	m.writers = make(map[string][]*lumberjack.Logger)
}

// createEncoder builds an encoder from the config.
func createEncoder(cfg Config) zapcore.Encoder {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		MessageKey:     "msg",
		CallerKey:      "caller",
		StacktraceKey:  "stack",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	switch cfg.Encoding {
	case "console":
		return zapcore.NewConsoleEncoder(encoderConfig)
	default:
		return zapcore.NewJSONEncoder(encoderConfig)
	}
}

// createFileWriter creates a rotating file writer.
func createFileWriter(filename string, cfg Config) (zapcore.WriteSyncer, *lumberjack.Logger) {
	dir := filepath.Dir(filename)
	_ = os.MkdirAll(dir, 0755)

	lumberLogger := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
		LocalTime:  true,
	}

	return zapcore.AddSync(lumberLogger), lumberLogger
}

// GetLogger returns the module logger from the global manager, initializing
// the manager with defaults if needed.
func GetLogger(moduleName string) *CtxZapLogger {
	if globalManager == nil {
		InitManager(DefaultManagerConfig())
	}
	return globalManager.GetLogger(moduleName)
}

// CloseAll closes all loggers of the global manager.
func CloseAll() {
	if globalManager == nil {
		return
	}
	globalManager.CloseAll()
}
