package introspect

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/pprof"
	"runtime"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dep2p/go-lodstream/pkg/lib/log"
	"github.com/dep2p/go-lodstream/pkg/types"
)

var logger = log.Logger("debug/introspect")

// DefaultAddr 默认监听地址
const DefaultAddr = "127.0.0.1:6070"

// ============================================================================
//                              配置
// ============================================================================

// Config 服务配置
type Config struct {
	// Addr 监听地址，默认 "127.0.0.1:6070"
	Addr string

	// Source 可选的诊断数据源
	Source Source

	// Gatherer 可选的指标采集器，为空时不注册 /metrics
	Gatherer prometheus.Gatherer

	// CustomHandlers 自定义处理器
	CustomHandlers map[string]http.HandlerFunc
}

// Source 诊断数据源
//
// 由 streaming.Manager 实现。
type Source interface {
	Stats() types.Stats
	Inspect(id types.ResourceID) (types.ResourceReport, bool)
	Resources() []types.ResourceReport
}

// ============================================================================
//                              Server
// ============================================================================

// Server 本地自省 HTTP 服务
type Server struct {
	config Config

	// HTTP 服务器
	server   *http.Server
	listener net.Listener

	// 状态
	running   bool
	startTime time.Time

	mu sync.Mutex
}

// New 创建自省服务
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}

	return &Server{
		config:    cfg,
		startTime: time.Now(),
	}
}

// Handler 返回路由，便于挂到宿主自己的 HTTP 服务上
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// 自省端点
	mux.HandleFunc("/debug/introspect", s.handleIntrospect)
	mux.HandleFunc("/debug/introspect/stats", s.handleStats)
	mux.HandleFunc("/debug/introspect/resources", s.handleResources)
	mux.HandleFunc("/debug/introspect/resource", s.handleResource)
	mux.HandleFunc("/debug/introspect/runtime", s.handleRuntime)

	// 指标
	if s.config.Gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(s.config.Gatherer, promhttp.HandlerOpts{}))
	}

	// pprof 端点
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	// 健康检查
	mux.HandleFunc("/health", s.handleHealth)

	// 自定义处理器
	for path, handler := range s.config.CustomHandlers {
		mux.HandleFunc(path, handler)
	}
	return mux
}

// Start 启动服务
func (s *Server) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	// 创建监听器
	listener, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return err
	}
	s.listener = listener

	// 创建 HTTP 服务器
	s.server = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// 启动服务
	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("自省服务异常退出", "error", err)
		}
	}()

	s.running = true
	s.startTime = time.Now()
	logger.Info("自省服务已启动", "addr", listener.Addr().String())
	return nil
}

// Stop 停止服务
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		logger.Error("关闭自省服务失败", "error", err)
		return err
	}

	s.running = false
	logger.Info("自省服务已停止")
	return nil
}

// Addr 返回实际监听地址
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.config.Addr
}

// ============================================================================
//                              响应结构
// ============================================================================

// IntrospectResponse 完整诊断响应
type IntrospectResponse struct {
	Timestamp time.Time    `json:"timestamp"`
	Uptime    string       `json:"uptime"`
	Stats     *types.Stats `json:"stats,omitempty"`
	Runtime   *RuntimeInfo `json:"runtime,omitempty"`
}

// ResourcesResponse 资源列表响应
type ResourcesResponse struct {
	Count     int                    `json:"count"`
	Resources []types.ResourceReport `json:"resources"`
}

// RuntimeInfo 运行时信息
type RuntimeInfo struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	NumCPU       int    `json:"num_cpu"`
	MemAlloc     uint64 `json:"mem_alloc"`
	MemSys       uint64 `json:"mem_sys"`
	NumGC        uint32 `json:"num_gc"`
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status    string    `json:"status"`
	Pass      uint64    `json:"pass"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime,omitempty"`
}

// ============================================================================
//                              HTTP 处理器
// ============================================================================

// handleIntrospect 处理完整诊断请求
func (s *Server) handleIntrospect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := IntrospectResponse{
		Timestamp: time.Now(),
		Uptime:    time.Since(s.startTime).String(),
		Runtime:   s.collectRuntimeInfo(),
	}
	if s.config.Source != nil {
		stats := s.config.Source.Stats()
		response.Stats = &stats
	}

	s.writeJSON(w, response)
}

// handleStats 处理聚合统计请求
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if s.config.Source == nil {
		http.Error(w, "Streaming manager not available", http.StatusServiceUnavailable)
		return
	}

	s.writeJSON(w, s.config.Source.Stats())
}

// handleResources 处理资源列表请求
func (s *Server) handleResources(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if s.config.Source == nil {
		http.Error(w, "Streaming manager not available", http.StatusServiceUnavailable)
		return
	}

	list := s.config.Source.Resources()
	s.writeJSON(w, ResourcesResponse{Count: len(list), Resources: list})
}

// handleResource 处理单个资源请求
func (s *Server) handleResource(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if s.config.Source == nil {
		http.Error(w, "Streaming manager not available", http.StatusServiceUnavailable)
		return
	}

	id := types.ResourceID(r.URL.Query().Get("id"))
	if id.IsEmpty() {
		http.Error(w, "Missing resource id", http.StatusBadRequest)
		return
	}

	report, ok := s.config.Source.Inspect(id)
	if !ok {
		http.Error(w, "Resource not found", http.StatusNotFound)
		return
	}
	s.writeJSON(w, report)
}

// handleRuntime 处理运行时信息请求
func (s *Server) handleRuntime(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.writeJSON(w, s.collectRuntimeInfo())
}

// handleHealth 处理健康检查请求
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	health := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Uptime:    time.Since(s.startTime).String(),
	}

	// 没有数据源，或增长因内存紧张而暂停
	if s.config.Source == nil {
		health.Status = "degraded"
	} else {
		stats := s.config.Source.Stats()
		health.Pass = stats.Pass
		if stats.Suspended {
			health.Status = "degraded"
		}
	}

	s.writeJSON(w, health)
}

// ============================================================================
//                              数据收集
// ============================================================================

// collectRuntimeInfo 收集运行时信息
func (s *Server) collectRuntimeInfo() *RuntimeInfo {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return &RuntimeInfo{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     memStats.Alloc,
		MemSys:       memStats.Sys,
		NumGC:        memStats.NumGC,
	}
}

// ============================================================================
//                              辅助方法
// ============================================================================

// writeJSON 写入 JSON 响应
func (s *Server) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		logger.Error("JSON 编码失败", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
