package log

import (
	"log/slog"
	"os"
	"strings"
)

// 环境变量
const (
	// EnvLevel 日志级别配置
	//   格式: 组件=级别,组件=级别,默认级别
	//   示例: core/budget=debug,core/view=warn,info
	EnvLevel = "LODSTREAM_LOG_LEVEL"

	// EnvFormat 日志格式 (text 或 json)
	EnvFormat = "LODSTREAM_LOG_FORMAT"
)

// ConfigureFromEnv 从环境变量配置日志
//
// 未设置的变量不做修改。
func ConfigureFromEnv() {
	if spec := os.Getenv(EnvLevel); spec != "" {
		ApplyLevelSpec(spec)
	}
	if format := os.Getenv(EnvFormat); format != "" {
		opts := &slog.HandlerOptions{Level: slog.LevelDebug}
		switch strings.ToLower(format) {
		case "json":
			slog.SetDefault(NewJSON(os.Stderr, opts))
		default:
			slog.SetDefault(New(os.Stderr, opts))
		}
	}
}

// ApplyLevelSpec 解析并应用级别配置字符串
//
// 无法识别的级别名被忽略。
func ApplyLevelSpec(spec string) {
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if component, name, ok := strings.Cut(part, "="); ok {
			if level, ok := ParseLevel(name); ok {
				SetComponentLevel(strings.TrimSpace(component), level)
			}
			continue
		}
		if level, ok := ParseLevel(part); ok {
			SetLevel(level)
		}
	}
}

// ParseLevel 解析级别名称
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
