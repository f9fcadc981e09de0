package log

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// 未调用 Init 之前使用 no-op logger，保证测试与工具代码可以安全调用。
var sugar = zap.NewNop().Sugar()

// logFileName 是 outputPath 目录下的日志文件名。
const logFileName = "app.log"

// Init 按配置构建全局 logger。
// 日志目录无法创建或 zap 配置无效时返回错误，原 logger 保持不变。
func Init(level, format, outputPath string) error {
	zapConfig := newZapConfig(level, format)
	if outputPath != "" {
		// 同时输出到文件和 stdout
		if err := os.MkdirAll(outputPath, os.ModePerm); err != nil {
			return fmt.Errorf("create log dir %s: %w", outputPath, err)
		}
		zapConfig.OutputPaths = append(zapConfig.OutputPaths, filepath.Join(outputPath, logFileName))
	}

	logger, err := zapConfig.Build()
	if err != nil {
		return fmt.Errorf("build zap logger: %w", err)
	}
	sugar = logger.Sugar()
	return nil
}

// newZapConfig 返回 console（开发，彩色）或 JSON 编码的配置；无法识别的级别按 info 处理。
func newZapConfig(level, format string) zap.Config {
	var zapConfig zap.Config
	if format == "console" {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapConfig.Encoding = "console"
	} else {
		zapConfig = zap.NewProductionConfig()
		zapConfig.Encoding = "json"
	}

	logLevel := zap.NewAtomicLevelAt(zap.InfoLevel)
	_ = logLevel.UnmarshalText([]byte(level))
	zapConfig.Level = logLevel
	zapConfig.OutputPaths = []string{"stdout"}
	return zapConfig
}

// Info 记录一条 info 级别的日志
func Info(msg string) {
	sugar.Info(msg)
}

// Infof 使用格式化字符串记录一条 info 级别的日志
func Infof(template string, args ...interface{}) {
	sugar.Infof(template, args...)
}

// Infow 使用键值对记录一条 info 级别的结构化日志。
// 这是记录复杂上下文信息的首选方法。
func Infow(msg string, keysAndValues ...interface{}) {
	sugar.Infow(msg, keysAndValues...)
}

// Warnf 使用格式化字符串记录一条 warn 级别的日志
func Warnf(template string, args ...interface{}) {
	sugar.Warnf(template, args...)
}

// Warnw 使用键值对记录一条 warn 级别的结构化日志
func Warnw(msg string, keysAndValues ...interface{}) {
	sugar.Warnw(msg, keysAndValues...)
}

// Error 记录一条 error 级别的日志，并附带 error 信息
func Error(msg string, err error) {
	sugar.Errorw(msg, "error", err)
}

func Errorf(template string, args ...interface{}) {
	sugar.Errorf(template, args...)
}

func Errorw(msg string, keysAndValues ...interface{}) {
	sugar.Errorw(msg, keysAndValues...)
}

// Fatal 记录一条 fatal 级别的日志，并附带 error 信息，然后退出程序
func Fatal(msg string, err error) {
	sugar.Fatalw(msg, "error", err)
}

func Fatalf(template string, args ...interface{}) {
	sugar.Fatalf(template, args...)
}

// Sync 将缓冲区中的任何日志刷新到底层 Writer。
func Sync() {
	_ = sugar.Sync()
}
