package logger

import (
	"os"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const serviceName = "eviden-bot"

// ILogger is the module-tagged logging surface every layer depends on.
// details is flattened into a "details" object; an "error" entry is also emitted as a top level error field.
type ILogger interface {
	Debug(module, message string, details map[string]interface{})
	Info(module, message string, details map[string]interface{})
	Warn(module, message string, details map[string]interface{})
	Error(module, message string, details map[string]interface{})
	Sync() error
}

type ZapLogger struct {
	logger *zap.Logger
}

func rotatingFile(path string) zapcore.WriteSyncer {
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	})
}

func jsonEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.MessageKey = "message"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(cfg)
}

// NewZapLogger writes JSON to a rotating file (info and up) and to stdout (debug and up).
// Outside production stdout uses the colored console encoder.
func NewZapLogger(logFilePath string, isProd bool) *ZapLogger {
	console := jsonEncoder()
	if !isProd {
		devCfg := zap.NewDevelopmentEncoderConfig()
		devCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		console = zapcore.NewConsoleEncoder(devCfg)
	}

	return NewWithCore(zapcore.NewTee(
		zapcore.NewCore(jsonEncoder(), rotatingFile(logFilePath), zap.InfoLevel),
		zapcore.NewCore(console, zapcore.Lock(os.Stdout), zap.DebugLevel),
	))
}

// NewIsolatedLogger only writes to its own file. The report audit trail goes here so it never
// mixes with the application log.
func NewIsolatedLogger(logFilePath string) *ZapLogger {
	return NewWithCore(zapcore.NewCore(jsonEncoder(), rotatingFile(logFilePath), zap.InfoLevel))
}

// NewWithCore wraps an arbitrary core, e.g. zaptest/observer in tests.
func NewWithCore(core zapcore.Core) *ZapLogger {
	return &ZapLogger{
		logger: zap.New(core,
			zap.AddCaller(),
			zap.AddCallerSkip(2),
			zap.Fields(zap.String("service", serviceName)),
		),
	}
}

func NewNopLogger() *ZapLogger {
	return &ZapLogger{logger: zap.NewNop()}
}

func (l *ZapLogger) Debug(module, message string, details map[string]interface{}) {
	l.write(zapcore.DebugLevel, module, message, details)
}

func (l *ZapLogger) Info(module, message string, details map[string]interface{}) {
	l.write(zapcore.InfoLevel, module, message, details)
}

func (l *ZapLogger) Warn(module, message string, details map[string]interface{}) {
	l.write(zapcore.WarnLevel, module, message, details)
}

func (l *ZapLogger) Error(module, message string, details map[string]interface{}) {
	l.write(zapcore.ErrorLevel, module, message, details)
}

func (l *ZapLogger) write(level zapcore.Level, module, message string, details map[string]interface{}) {
	ce := l.logger.Check(level, message)
	if ce == nil {
		return
	}
	ce.Write(fields(module, details)...)
}

func fields(module string, details map[string]interface{}) []zap.Field {
	out := []zap.Field{zap.String("module", module)}
	if len(details) == 0 {
		return out
	}

	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	nested := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		nested = append(nested, zap.Any(k, details[k]))
	}
	out = append(out, zap.Dict("details", nested...))

	if raw, ok := details["error"]; ok {
		switch e := raw.(type) {
		case error:
			out = append(out, zap.Error(e))
		case string:
			out = append(out, zap.String("error", e))
		}
	}
	return out
}

func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}
