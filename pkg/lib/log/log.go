// Package log 提供 go-lodstream 统一日志接口
//
// 基于 Go 标准库 log/slog 封装，每个组件持有一个 LazyLogger：
//
//	var logger = log.Logger("core/budget")
//	logger.Debug("开始收缩", "resource", id, "bytes", n)
//
// 组件级别可通过 LODSTREAM_LOG_LEVEL 配置，见 ConfigureFromEnv。
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

// 日志级别常量（从 slog 导出，方便使用）
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var (
	levelsMu     sync.RWMutex
	defaultLevel = slog.LevelInfo
	levels       = map[string]slog.Level{}
)

// SetDefault 设置默认 logger
func SetDefault(l *slog.Logger) {
	slog.SetDefault(l)
}

// New 创建文本格式 logger
func New(w io.Writer, opts *slog.HandlerOptions) *slog.Logger {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// NewJSON 创建 JSON 格式的 logger
func NewJSON(w io.Writer, opts *slog.HandlerOptions) *slog.Logger {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// SetOutput 将默认 logger 输出重定向到 w，保留当前默认级别
func SetOutput(w io.Writer) {
	slog.SetDefault(New(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Discard 丢弃所有日志输出，主要用于测试和基准
func Discard() {
	slog.SetDefault(New(io.Discard, nil))
}

// SetLevel 设置默认级别（未单独配置的组件使用）
func SetLevel(level slog.Level) {
	levelsMu.Lock()
	defaultLevel = level
	levelsMu.Unlock()
}

// SetComponentLevel 设置单个组件的级别
func SetComponentLevel(component string, level slog.Level) {
	levelsMu.Lock()
	levels[component] = level
	levelsMu.Unlock()
}

// LevelFor 返回组件当前生效的级别
func LevelFor(component string) slog.Level {
	levelsMu.RLock()
	defer levelsMu.RUnlock()
	if l, ok := levels[component]; ok {
		return l
	}
	return defaultLevel
}

// resetLevels 清空组件级别（测试使用）
func resetLevels() {
	levelsMu.Lock()
	defaultLevel = slog.LevelInfo
	levels = map[string]slog.Level{}
	levelsMu.Unlock()
}

// ============================================================================
//                              LazyLogger
// ============================================================================

// LazyLogger 懒加载 logger
//
// 每次日志调用时都从 slog.Default() 获取最新的 handler，
// 并按组件级别过滤。
type LazyLogger struct {
	component string
}

// Logger 返回带组件名的 LazyLogger
func Logger(component string) *LazyLogger {
	return &LazyLogger{component: component}
}

// Component 返回组件名
func (l *LazyLogger) Component() string {
	return l.component
}

// Enabled 判断该级别是否会输出
func (l *LazyLogger) Enabled(level slog.Level) bool {
	return level >= LevelFor(l.component)
}

func (l *LazyLogger) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if !l.Enabled(level) {
		return
	}
	slog.Default().With("component", l.component).Log(ctx, level, msg, args...)
}

// Debug 输出 Debug 级别日志
func (l *LazyLogger) Debug(msg string, args ...any) {
	l.log(context.Background(), slog.LevelDebug, msg, args...)
}

// Info 输出 Info 级别日志
func (l *LazyLogger) Info(msg string, args ...any) {
	l.log(context.Background(), slog.LevelInfo, msg, args...)
}

// Warn 输出 Warn 级别日志
func (l *LazyLogger) Warn(msg string, args ...any) {
	l.log(context.Background(), slog.LevelWarn, msg, args...)
}

// Error 输出 Error 级别日志
func (l *LazyLogger) Error(msg string, args ...any) {
	l.log(context.Background(), slog.LevelError, msg, args...)
}

// DebugContext 带 context 的 Debug 日志
func (l *LazyLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelDebug, msg, args...)
}

// WarnContext 带 context 的 Warn 日志
func (l *LazyLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelWarn, msg, args...)
}

// With 添加额外的属性
func (l *LazyLogger) With(args ...any) *slog.Logger {
	return slog.Default().With("component", l.component).With(args...)
}

// ============================================================================
//                              工具函数
// ============================================================================

// TruncateID 安全截取 ID 用于日志显示
func TruncateID(id string, maxLen int) string {
	if len(id) <= maxLen {
		return id
	}
	return id[:maxLen]
}

func init() {
	slog.SetDefault(New(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
