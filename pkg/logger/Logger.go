package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is set once by main; packages receive their logger through constructors.
var Log = zap.NewNop()

func NewLogger(logLevel string, outputStdout []string, outputStderr []string) *zap.Logger {
	logger, err := Build(logLevel, outputStdout, outputStderr)

	if err != nil {
		panic(err)
	}

	return logger
}

func Build(logLevel string, outputStdout []string, outputStderr []string) (*zap.Logger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	atomicLevel, err := zap.ParseAtomicLevel(logLevel)

	if err != nil {
		return nil, err
	}

	config := zap.Config{
		Level:             atomicLevel,
		Development:       false,
		DisableCaller:     false,
		DisableStacktrace: true,
		Sampling:          nil,
		Encoding:          "json",
		EncoderConfig:     encoderCfg,
		OutputPaths:       outputStdout,
		ErrorOutputPaths:  outputStderr,
		InitialFields:     map[string]interface{}{"app": "sapha"},
	}

	return config.Build()
}

// Rotating returns a size-rotated file sink.
func Rotating(path string) zapcore.WriteSyncer {
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    50,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	})
}

// Tee duplicates every entry of base into sink, JSON encoded.
func Tee(base *zap.Logger, logLevel string, sink zapcore.WriteSyncer) *zap.Logger {
	level, err := zapcore.ParseLevel(logLevel)

	if err != nil {
		level = zapcore.InfoLevel
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	file := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), sink, level).With([]zapcore.Field{zap.String("app", "sapha")})

	return base.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, file)
	}))
}
