package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix 环境变量前缀
//
// 例如 LODSTREAM_BUDGET_MEMORY_MARGIN_BYTES、LODSTREAM_THROTTLE_WORKERS。
const EnvPrefix = "LODSTREAM_"

// FromJSON 从 JSON 数据创建配置
//
// 未出现的字段保留默认值。
//
// 示例 JSON:
//
//	{
//	  "budget": {"memory_margin_bytes": 33554432, "stop_all_limit_bytes": 4194304},
//	  "heuristics": {"global_bias": 1.5}
//	}
func FromJSON(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// FromYAML 从 YAML 数据创建配置
//
// 未出现的字段保留默认值。
func FromYAML(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml config: %w", err)
	}
	return cfg, nil
}

// LoadFile 按扩展名从文件加载配置（.json / .yaml / .yml）
func LoadFile(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FromJSON(raw)
	case ".yaml", ".yml":
		return FromYAML(raw)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// ApplyEnv 用 LODSTREAM_* 环境变量覆盖配置
//
// 未设置的变量不改变现有值。
func ApplyEnv(cfg *Config) error {
	if cfg == nil {
		return ErrNilConfig
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ToYAML 将配置序列化为 YAML
func ToYAML(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
