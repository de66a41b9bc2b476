// Package metrics 提供流式统计的 Prometheus 指标
//
// Collector 实现 interfaces.Reporter，每轮结束时由 streaming 管理器上报：
//   - 字节总量（常驻/期望/进行中/可用）
//   - 资源计数（跟踪/候选/想要更多/进行中）
//   - 请求结果计数（发起/取消/拒绝/推迟）
//   - 按启发式归因的期望字节
//   - 传输延迟直方图与每秒完成传输数
//
// # 快速开始
//
//	c := metrics.NewCollector("lodstream", nil)
//	mgr := streaming.New(cfg, transfer, pool, streaming.WithReporter(c))
//
//	http.Handle("/metrics", promhttp.HandlerFor(c.Registry(), promhttp.HandlerOpts{}))
//
// Collector 使用独立的 Registry，不注册到全局默认注册表。
package metrics
