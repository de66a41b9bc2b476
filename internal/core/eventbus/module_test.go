package eventbus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/dep2p/go-lodstream/config"
	"github.com/dep2p/go-lodstream/pkg/interfaces"
)

// ============================================================================
// Fx 模块测试
// ============================================================================

// TestModule_Load 测试 Fx 模块加载与停止
func TestModule_Load(t *testing.T) {
	var loaded interfaces.EventBus

	app := fx.New(
		Module(),
		fx.NopLogger,
		fx.Invoke(func(bus interfaces.EventBus) {
			loaded = bus
		}),
	)

	ctx := context.Background()
	require.NoError(t, app.Start(ctx))
	require.NotNil(t, loaded)

	sub, err := loaded.Subscribe(nil)
	require.NoError(t, err)

	require.NoError(t, app.Stop(ctx))

	_, ok := <-sub.Out()
	assert.False(t, ok, "停止后订阅应关闭")
}

// TestModule_ProvideUsesConfig 测试从统一配置读取缓冲区
func TestModule_ProvideUsesConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Diagnostics.EventBuffer = 7

	res := ProvideEventBus(Params{UnifiedCfg: cfg})
	bus := res.EventBus.(*Bus)
	assert.Equal(t, 7, bus.defaultBuffer)

	res = ProvideEventBus(Params{})
	assert.Equal(t, DefaultBuffer, res.EventBus.(*Bus).defaultBuffer)
}
