package config

import "errors"

// DiagnosticsConfig 诊断服务配置
type DiagnosticsConfig struct {
	// EnableIntrospect 启用自省服务
	EnableIntrospect bool `json:"enable_introspect" yaml:"enable_introspect" env:"ENABLE_INTROSPECT"`

	// IntrospectAddr 自省服务监听地址
	// 默认 "127.0.0.1:6070"
	IntrospectAddr string `json:"introspect_addr" yaml:"introspect_addr" env:"INTROSPECT_ADDR"`

	// EventBuffer 诊断事件订阅缓冲区大小
	EventBuffer int `json:"event_buffer" yaml:"event_buffer" env:"EVENT_BUFFER"`
}

// DefaultDiagnosticsConfig 返回默认诊断配置
func DefaultDiagnosticsConfig() DiagnosticsConfig {
	return DiagnosticsConfig{
		EnableIntrospect: false, // 默认禁用
		IntrospectAddr:   "127.0.0.1:6070",
		EventBuffer:      64,
	}
}

// Validate 验证诊断配置
func (c DiagnosticsConfig) Validate() error {
	if c.EnableIntrospect && c.IntrospectAddr == "" {
		return errors.New("introspect addr required when introspect is enabled")
	}
	if c.EventBuffer < 0 {
		return errors.New("event buffer must be non-negative")
	}
	return nil
}

// MetricsConfig Prometheus 指标配置
type MetricsConfig struct {
	// Enabled 是否采集指标
	Enabled bool `json:"enabled" yaml:"enabled" env:"ENABLED"`

	// Namespace 指标命名空间
	Namespace string `json:"namespace" yaml:"namespace" env:"NAMESPACE"`
}

// DefaultMetricsConfig 返回默认指标配置
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled:   true,
		Namespace: "lodstream",
	}
}

// Validate 验证指标配置
func (c MetricsConfig) Validate() error {
	if c.Enabled && c.Namespace == "" {
		return errors.New("metrics namespace required when metrics are enabled")
	}
	return nil
}
