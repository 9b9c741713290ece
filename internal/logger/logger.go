package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options 日志配置
type Options struct {
	// Debug 开启调试级别
	Debug bool
	// Verbose 使用便于阅读的控制台格式并输出调用位置
	Verbose bool
	// Level 显式指定级别，优先于 Debug
	Level string
}

// NewLogger 创建一个新的日志记录器
func NewLogger(debug bool) *zap.Logger {
	return NewLoggerWithVerbose(debug, false)
}

// NewLoggerWithVerbose 创建日志记录器，verbose 时使用控制台格式
func NewLoggerWithVerbose(debug, verbose bool) *zap.Logger {
	logger, err := New(Options{Debug: debug, Verbose: verbose})
	if err != nil {
		panic("初始化日志系统失败: " + err.Error())
	}
	return logger
}

// New 按配置创建日志记录器
func New(opts Options) (*zap.Logger, error) {
	level, err := ParseLevel(opts.Level, opts.Debug)
	if err != nil {
		return nil, err
	}

	config := zap.NewProductionConfig()
	if opts.Verbose {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config.DisableCaller = true
	}

	config.Level = zap.NewAtomicLevelAt(level)
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	config.DisableStacktrace = true

	return config.Build()
}

// ParseLevel 解析级别名；name 为空时由 debug 决定
func ParseLevel(name string, debug bool) (zapcore.Level, error) {
	if strings.TrimSpace(name) == "" {
		if debug {
			return zap.DebugLevel, nil
		}
		return zap.InfoLevel, nil
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(name))); err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}
