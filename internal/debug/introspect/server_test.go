package introspect

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-lodstream/config"
	"github.com/dep2p/go-lodstream/internal/core/metrics"
	"github.com/dep2p/go-lodstream/pkg/types"
)

// fakeSource 固定数据的诊断数据源
type fakeSource struct {
	stats     types.Stats
	resources []types.ResourceReport
}

func (f *fakeSource) Stats() types.Stats { return f.stats }

func (f *fakeSource) Inspect(id types.ResourceID) (types.ResourceReport, bool) {
	for _, r := range f.resources {
		if r.ID == id {
			return r, true
		}
	}
	return types.ResourceReport{}, false
}

func (f *fakeSource) Resources() []types.ResourceReport { return f.resources }

func newSource() *fakeSource {
	return &fakeSource{
		stats: types.Stats{Pass: 7, Tracked: 2, Issued: 1},
		resources: []types.ResourceReport{
			{ID: "rock", Wanted: 4, Heuristic: "static", Priority: 2},
			{ID: "tree", Wanted: 1, Heuristic: "last-used", Priority: 1},
		},
	}
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

// ============================================================================
//                              创建与生命周期
// ============================================================================

func TestNew(t *testing.T) {
	server := New(Config{})
	assert.NotNil(t, server)
	assert.Equal(t, DefaultAddr, server.config.Addr)

	server = New(Config{Addr: "127.0.0.1:8080"})
	assert.Equal(t, "127.0.0.1:8080", server.config.Addr)
}

func TestServer_StartStop(t *testing.T) {
	server := New(Config{Addr: "127.0.0.1:0", Source: newSource()}) // 使用随机端口

	ctx := context.Background()
	require.NoError(t, server.Start(ctx))
	assert.True(t, server.running)

	// 获取实际地址
	addr := server.Addr()
	assert.NotEqual(t, "127.0.0.1:0", addr)

	// 重复启动应该无效
	require.NoError(t, server.Start(ctx))

	resp, err := http.Get("http://" + addr + "/health")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), `"status": "ok"`)

	require.NoError(t, server.Stop())
	assert.False(t, server.running)

	// 重复停止应该无效
	require.NoError(t, server.Stop())
}

// ============================================================================
//                              诊断端点
// ============================================================================

func TestServer_IntrospectEndpoint(t *testing.T) {
	server := New(Config{Source: newSource()})

	rec := get(t, server.Handler(), "/debug/introspect")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp IntrospectResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Stats)
	assert.Equal(t, uint64(7), resp.Stats.Pass)
	require.NotNil(t, resp.Runtime)
	assert.NotEmpty(t, resp.Runtime.GoVersion)
}

func TestServer_StatsEndpoint(t *testing.T) {
	server := New(Config{Source: newSource()})

	rec := get(t, server.Handler(), "/debug/introspect/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats types.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.Tracked)
	assert.Equal(t, 1, stats.Issued)
}

func TestServer_ResourcesEndpoint(t *testing.T) {
	server := New(Config{Source: newSource()})

	rec := get(t, server.Handler(), "/debug/introspect/resources")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ResourcesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, types.ResourceID("rock"), resp.Resources[0].ID)
}

func TestServer_ResourceEndpoint(t *testing.T) {
	h := New(Config{Source: newSource()}).Handler()

	t.Run("找到资源", func(t *testing.T) {
		rec := get(t, h, "/debug/introspect/resource?id=tree")
		require.Equal(t, http.StatusOK, rec.Code)
		var r types.ResourceReport
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &r))
		assert.Equal(t, "last-used", r.Heuristic)
	})

	t.Run("缺少 id", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, get(t, h, "/debug/introspect/resource").Code)
	})

	t.Run("未知资源", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, get(t, h, "/debug/introspect/resource?id=nope").Code)
	})
}

func TestServer_NoSource(t *testing.T) {
	h := New(Config{}).Handler()

	for _, path := range []string{
		"/debug/introspect/stats",
		"/debug/introspect/resources",
		"/debug/introspect/resource?id=rock",
	} {
		assert.Equal(t, http.StatusServiceUnavailable, get(t, h, path).Code, path)
	}

	rec := get(t, h, "/health")
	var health HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "degraded", health.Status) // 没有数据源，所以是 degraded
}

func TestServer_HealthSuspended(t *testing.T) {
	src := newSource()
	h := New(Config{Source: src}).Handler()

	var health HealthResponse
	require.NoError(t, json.Unmarshal(get(t, h, "/health").Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, uint64(7), health.Pass)

	src.stats.Suspended = true
	require.NoError(t, json.Unmarshal(get(t, h, "/health").Body.Bytes(), &health))
	assert.Equal(t, "degraded", health.Status)
}

func TestServer_RuntimeEndpoint(t *testing.T) {
	rec := get(t, New(Config{}).Handler(), "/debug/introspect/runtime")
	require.Equal(t, http.StatusOK, rec.Code)

	var info RuntimeInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Positive(t, info.NumCPU)
	assert.Positive(t, info.NumGoroutine)
}

func TestServer_MethodNotAllowed(t *testing.T) {
	h := New(Config{Source: newSource()}).Handler()

	for _, path := range []string{
		"/debug/introspect",
		"/debug/introspect/stats",
		"/debug/introspect/resources",
		"/debug/introspect/resource?id=rock",
		"/debug/introspect/runtime",
		"/health",
	} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, path)
	}
}

func TestServer_MetricsEndpoint(t *testing.T) {
	c := metrics.NewCollector("lodstream", clock.NewMock())
	c.ReportPass(types.Stats{Pass: 1})

	rec := get(t, New(Config{Gatherer: c.Registry()}).Handler(), "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "lodstream_passes_total 1")

	// 没有采集器时不注册 /metrics
	assert.Equal(t, http.StatusNotFound, get(t, New(Config{}).Handler(), "/metrics").Code)
}

func TestServer_CustomHandlers(t *testing.T) {
	server := New(Config{
		CustomHandlers: map[string]http.HandlerFunc{
			"/debug/custom": func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTeapot)
			},
		},
	})
	assert.Equal(t, http.StatusTeapot, get(t, server.Handler(), "/debug/custom").Code)
}

// ============================================================================
//                              模块
// ============================================================================

func TestConfigFromUnified(t *testing.T) {
	assert.Nil(t, ConfigFromUnified(nil))
	assert.Nil(t, ConfigFromUnified(config.NewConfig()), "默认禁用")

	cfg := config.NewConfig()
	cfg.Diagnostics.EnableIntrospect = true
	cfg.Diagnostics.IntrospectAddr = ""
	got := ConfigFromUnified(cfg)
	require.NotNil(t, got)
	assert.Equal(t, DefaultAddr, got.Addr)
}

func TestNewFromParams(t *testing.T) {
	out := NewFromParams(IntrospectParams{UnifiedCfg: config.NewConfig()})
	assert.Nil(t, out.Server)

	cfg := config.NewConfig()
	cfg.Diagnostics.EnableIntrospect = true
	cfg.Diagnostics.IntrospectAddr = "127.0.0.1:0"
	c := metrics.NewCollector("lodstream", clock.NewMock())
	out = NewFromParams(IntrospectParams{UnifiedCfg: cfg, Collector: c})
	require.NotNil(t, out.Server)
	assert.Nil(t, out.Server.config.Source)
	assert.NotNil(t, out.Server.config.Gatherer)
}
