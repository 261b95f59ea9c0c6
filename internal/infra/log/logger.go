package log

// Application logging on top of zap
// Every entry goes to the log file (logs/app.log, or $CHART_LOG_DIR/app.log)
// Successes and errors are also echoed to the console with a ✓ / ✗ marker

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	// MaxLogFileSize - the file is truncated once it grows past this size (20MB)
	MaxLogFileSize = 20 * 1024 * 1024

	logDirEnv     = "CHART_LOG_DIR"
	defaultLogDir = "logs"
	logFileName   = "app.log"
	timeLayout    = "2006-01-02 15:04:05"
)

var (
	Logger        *zap.Logger
	consoleLogger *zap.Logger
	initOnce      sync.Once
	bufferPool    = buffer.NewPool()
)

func init() {
	initOnce.Do(func() {
		if err := setup(logDir()); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize loggers: %v\n", err)
			Logger = zap.NewNop()
			consoleLogger = zap.NewNop()
		}
	})
}

func logDir() string {
	if dir := os.Getenv(logDirEnv); dir != "" {
		return dir
	}
	return defaultLogDir
}

func setup(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	fileCore := zapcore.NewCore(
		newLineEncoder(),
		openLogFile(filepath.Join(dir, logFileName)),
		zapcore.DebugLevel,
	)
	Logger = zap.New(fileCore)

	consoleConfig := zap.NewDevelopmentConfig()
	consoleConfig.EncoderConfig.EncodeLevel = consoleLevelEncoder
	consoleConfig.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	consoleConfig.EncoderConfig.EncodeCaller = nil
	consoleConfig.Development = false
	consoleConfig.DisableStacktrace = true
	consoleConfig.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	var err error
	consoleLogger, err = consoleConfig.Build()
	if err != nil {
		return fmt.Errorf("failed to build console logger: %w", err)
	}
	return nil
}

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

func consoleLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	switch level {
	case zapcore.DebugLevel:
		enc.AppendString(colorCyan + "DEBUG" + colorReset)
	case zapcore.InfoLevel:
		enc.AppendString(colorGreen + "SUCCESS" + colorReset)
	case zapcore.WarnLevel:
		enc.AppendString(colorYellow + "WARN" + colorReset)
	default:
		enc.AppendString(colorRed + level.CapitalString() + colorReset)
	}
}

// LogInfo writes to the log file only
func LogInfo(message string, fields ...zap.Field) {
	Logger.Info(message, fields...)
}

// LogWarn writes to the log file only
func LogWarn(message string, fields ...zap.Field) {
	Logger.Warn(message, fields...)
}

// LogDebug writes to the log file only
func LogDebug(message string, fields ...zap.Field) {
	Logger.Debug(message, fields...)
}

// LogSuccess writes to the log file and prints a ✓ line to the console
func LogSuccess(message string, fields ...zap.Field) {
	Logger.Info(message, fields...)
	consoleLogger.Info(withDuration("✓ "+message, fields))
}

// LogError writes to the log file and prints a ✗ line to the console
func LogError(message string, fields ...zap.Field) {
	Logger.Error(message, fields...)
	consoleLogger.Error(withDuration("✗ "+message, fields))
}

func withDuration(message string, fields []zap.Field) string {
	for _, field := range fields {
		if field.Key == "duration_ms" && field.Type == zapcore.Int64Type && field.Integer > 0 {
			return fmt.Sprintf("%s (%dms)", message, field.Integer)
		}
	}
	return message
}

type truncatingWriter struct {
	mu   sync.Mutex
	file *os.File
	path string
}

func (w *truncatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if info, err := w.file.Stat(); err == nil && info.Size() > MaxLogFileSize {
		w.file.Close()
		f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return 0, fmt.Errorf("failed to truncate log file: %w", err)
		}
		w.file = f
	}
	return w.file.Write(p)
}

func (w *truncatingWriter) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Sync()
}

func openLogFile(path string) zapcore.WriteSyncer {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file %s: %v, falling back to stderr\n", path, err)
		return zapcore.AddSync(os.Stderr)
	}
	return &truncatingWriter{file: f, path: path}
}

// lineEncoder renders "time     LEVEL message\t{json fields}"
type lineEncoder struct {
	*zapcore.MapObjectEncoder
}

func newLineEncoder() lineEncoder {
	return lineEncoder{MapObjectEncoder: zapcore.NewMapObjectEncoder()}
}

func (e lineEncoder) Clone() zapcore.Encoder {
	clone := newLineEncoder()
	for k, v := range e.Fields {
		clone.Fields[k] = v
	}
	return clone
}

func (e lineEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	buf := bufferPool.Get()
	buf.AppendString(entry.Time.Format(timeLayout))
	buf.AppendString("     ")
	buf.AppendString(entry.Level.CapitalString())
	buf.AppendByte(' ')
	buf.AppendString(entry.Message)

	enc := e.Clone().(lineEncoder)
	for _, f := range fields {
		f.AddTo(enc)
	}
	if len(enc.Fields) > 0 {
		if data, err := json.Marshal(enc.Fields); err == nil {
			buf.AppendByte('\t')
			buf.Write(data)
		}
	}
	buf.AppendByte('\n')
	return buf, nil
}
