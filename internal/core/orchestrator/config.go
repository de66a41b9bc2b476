package orchestrator

import (
	"time"

	"github.com/dep2p/go-lodstream/config"
)

// Config 编排器配置
type Config struct {
	// MaxPerFrameRequestBytes 每帧增长字节上限
	MaxPerFrameRequestBytes int64

	// MaxPerFrameRequests 每帧增长请求数上限，0 表示不限制
	MaxPerFrameRequests int

	// SettlePollInterval BlockUntilSettled 轮询间隔
	SettlePollInterval time.Duration

	// LatencyHistory 保留延迟记录的资源数
	LatencyHistory int

	// LatencySamples 每个资源保留的延迟样本数
	LatencySamples int

	// RejectLogRate 拒绝日志每秒条数
	RejectLogRate float64

	// RejectLogBurst 拒绝日志突发条数
	RejectLogBurst int
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return ConfigFromUnified(nil)
}

// ConfigFromUnified 从统一配置创建编排器配置
func ConfigFromUnified(cfg *config.Config) Config {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	t := cfg.Throttle
	return Config{
		MaxPerFrameRequestBytes: t.MaxPerFrameRequestBytes,
		MaxPerFrameRequests:     t.MaxPerFrameRequests,
		SettlePollInterval:      t.SettlePollInterval.Duration(),
		LatencyHistory:          t.LatencyHistory,
		LatencySamples:          t.LatencySamples,
		RejectLogRate:           t.RejectLogRate,
		RejectLogBurst:          t.RejectLogBurst,
	}
}
