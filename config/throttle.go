package config

import (
	"errors"
	"time"
)

// ThrottleConfig 节流与增量处理配置
type ThrottleConfig struct {
	// MaxPerFrameRequestBytes 每帧增长请求字节上限
	MaxPerFrameRequestBytes int64 `json:"max_per_frame_request_bytes" yaml:"max_per_frame_request_bytes" env:"MAX_PER_FRAME_REQUEST_BYTES"`

	// MaxPerFrameRequests 每帧增长请求数上限，0 表示不限制
	MaxPerFrameRequests int `json:"max_per_frame_requests" yaml:"max_per_frame_requests" env:"MAX_PER_FRAME_REQUESTS"`

	// CollectStages 采集阶段拆分的帧数（1 表示不拆分）
	CollectStages int `json:"collect_stages" yaml:"collect_stages" env:"COLLECT_STAGES"`

	// Workers 优先级计算的并行数
	Workers int `json:"workers" yaml:"workers" env:"WORKERS"`

	// SettlePollInterval BlockUntilSettled 轮询间隔
	SettlePollInterval Duration `json:"settle_poll_interval" yaml:"settle_poll_interval" env:"SETTLE_POLL_INTERVAL"`

	// LatencyHistory 保留传输延迟记录的资源数
	LatencyHistory int `json:"latency_history" yaml:"latency_history" env:"LATENCY_HISTORY"`

	// LatencySamples 每个资源保留的延迟样本数
	LatencySamples int `json:"latency_samples" yaml:"latency_samples" env:"LATENCY_SAMPLES"`

	// RejectLogRate 拒绝日志每秒条数
	RejectLogRate float64 `json:"reject_log_rate" yaml:"reject_log_rate" env:"REJECT_LOG_RATE"`

	// RejectLogBurst 拒绝日志突发条数
	RejectLogBurst int `json:"reject_log_burst" yaml:"reject_log_burst" env:"REJECT_LOG_BURST"`
}

// DefaultThrottleConfig 返回默认节流配置
func DefaultThrottleConfig() ThrottleConfig {
	return ThrottleConfig{
		// ════════════════════════════════════════════════════════════════════
		// 每帧上限（仅限制增长，收缩永不推迟）
		// ════════════════════════════════════════════════════════════════════
		MaxPerFrameRequestBytes: 3 << 20, // 3 MiB
		MaxPerFrameRequests:     64,

		// ════════════════════════════════════════════════════════════════════
		// 增量处理
		// ════════════════════════════════════════════════════════════════════
		CollectStages:      4,
		Workers:            4,
		SettlePollInterval: Duration(10 * time.Millisecond),

		// ════════════════════════════════════════════════════════════════════
		// 诊断
		// ════════════════════════════════════════════════════════════════════
		LatencyHistory: 1024,
		LatencySamples: 8,
		RejectLogRate:  1,
		RejectLogBurst: 5,
	}
}

// Validate 验证节流配置
func (c ThrottleConfig) Validate() error {
	if c.MaxPerFrameRequestBytes <= 0 {
		return errors.New("max per frame request bytes must be positive")
	}
	if c.MaxPerFrameRequests < 0 {
		return errors.New("max per frame requests must be non-negative")
	}
	if c.CollectStages < 1 {
		return errors.New("collect stages must be at least 1")
	}
	if c.Workers < 1 {
		return errors.New("workers must be at least 1")
	}
	if c.SettlePollInterval <= 0 {
		return errors.New("settle poll interval must be positive")
	}
	if c.LatencyHistory < 1 || c.LatencySamples < 1 {
		return errors.New("latency history sizes must be positive")
	}
	if c.RejectLogRate <= 0 || c.RejectLogBurst < 1 {
		return errors.New("reject log rate and burst must be positive")
	}
	return nil
}

// WithWorkers 设置并行数
func (c ThrottleConfig) WithWorkers(n int) ThrottleConfig {
	c.Workers = n
	return c
}

// WithCollectStages 设置采集阶段帧数
func (c ThrottleConfig) WithCollectStages(n int) ThrottleConfig {
	c.CollectStages = n
	return c
}
