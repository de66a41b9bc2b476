package metrics

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dep2p/go-lodstream/pkg/interfaces"
	"github.com/dep2p/go-lodstream/pkg/types"
)

// Collector 基于 Prometheus 的统计上报
//
// 所有方法并发安全且不阻塞。
type Collector struct {
	registry *prometheus.Registry

	passes         prometheus.Counter
	passDuration   prometheus.Histogram
	bytes          *prometheus.GaugeVec
	resources      *prometheus.GaugeVec
	requests       *prometheus.CounterVec
	heuristicBytes *prometheus.GaugeVec
	fudge          prometheus.Gauge
	suspended      prometheus.Gauge
	latency        *prometheus.HistogramVec
	rejected       *prometheus.CounterVec

	transfers *RateMeter
}

var _ interfaces.Reporter = (*Collector)(nil)

// NewCollector 创建指标收集器并注册到独立的 Registry
func NewCollector(namespace string, clk clock.Clock) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		passes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "passes_total",
			Help:      "Completed streaming passes.",
		}),
		passDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pass_duration_seconds",
			Help:      "Wall-clock duration of a full streaming pass.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14),
		}),
		bytes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bytes",
			Help:      "Byte totals from the last pass.",
		}, []string{"kind"}),
		resources: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "resources",
			Help:      "Resource counts from the last pass.",
		}, []string{"state"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Level change requests by outcome.",
		}, []string{"outcome"}),
		heuristicBytes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "heuristic_wanted_bytes",
			Help:      "Wanted bytes attributed to the deciding heuristic.",
		}, []string{"heuristic"}),
		fudge: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "fudge_factor",
			Help:      "Current distance fudge factor.",
		}),
		suspended: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "growth_suspended",
			Help:      "1 while growth is suspended under memory pressure.",
		}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transfer_latency_seconds",
			Help:      "Latency from issuing a level change until it settled.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		}, []string{"class"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transfer_rejected_total",
			Help:      "Level changes rejected by the transfer layer.",
		}, []string{"class"}),
		transfers: NewRateMeter(clk),
	}

	rate := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "transfers_per_second",
		Help:      "Settled transfers per second over the last minute.",
	}, c.transfers.Rate)

	c.registry.MustRegister(
		c.passes, c.passDuration, c.bytes, c.resources, c.requests,
		c.heuristicBytes, c.fudge, c.suspended, c.latency, c.rejected, rate,
	)
	return c
}

// Registry 返回指标注册表
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// TransferRate 返回最近一分钟每秒完成的传输数
func (c *Collector) TransferRate() float64 {
	return c.transfers.Rate()
}

// ============================================================================
// Reporter 接口实现
// ============================================================================

// ReportPass 上报轮次统计
func (c *Collector) ReportPass(s types.Stats) {
	c.passes.Inc()
	c.passDuration.Observe(s.PassDuration.Seconds())

	c.bytes.WithLabelValues("resident").Set(float64(s.ResidentBytes))
	c.bytes.WithLabelValues("wanted").Set(float64(s.WantedBytes))
	c.bytes.WithLabelValues("pending_in").Set(float64(s.PendingInBytes))
	c.bytes.WithLabelValues("pending_out").Set(float64(s.PendingOutBytes))
	c.bytes.WithLabelValues("wanted_in").Set(float64(s.WantedInBytes))
	c.bytes.WithLabelValues("wanted_out").Set(float64(s.WantedOutBytes))
	c.bytes.WithLabelValues("temp").Set(float64(s.TempBytes))
	c.bytes.WithLabelValues("available_now").Set(float64(s.AvailableNow))
	c.bytes.WithLabelValues("available_later").Set(float64(s.AvailableLater))
	c.bytes.WithLabelValues("pool_allocated").Set(float64(s.Pool.Allocated))
	c.bytes.WithLabelValues("pool_free").Set(float64(s.Pool.Free))

	c.resources.WithLabelValues("tracked").Set(float64(s.Tracked))
	c.resources.WithLabelValues("candidates").Set(float64(s.Candidates))
	c.resources.WithLabelValues("wanting").Set(float64(s.Wanting))
	c.resources.WithLabelValues("in_flight").Set(float64(s.InFlight))

	c.requests.WithLabelValues("issued").Add(float64(s.Issued))
	c.requests.WithLabelValues("cancelled").Add(float64(s.Cancelled))
	c.requests.WithLabelValues("rejected").Add(float64(s.Rejected))
	c.requests.WithLabelValues("deferred").Add(float64(s.Deferred))

	for kind, n := range s.HeuristicBytes {
		c.heuristicBytes.WithLabelValues(kind).Set(float64(n))
	}

	c.fudge.Set(s.FudgeFactor)
	if s.Suspended {
		c.suspended.Set(1)
	} else {
		c.suspended.Set(0)
	}
}

// ReportTransfer 上报传输延迟
func (c *Collector) ReportTransfer(class types.ResourceClass, latency time.Duration) {
	c.latency.WithLabelValues(class.String()).Observe(latency.Seconds())
	c.transfers.Add(1)
}

// ReportRejected 上报被拒绝的请求
func (c *Collector) ReportRejected(class types.ResourceClass) {
	c.rejected.WithLabelValues(class.String()).Inc()
}

// ============================================================================
// NopReporter
// ============================================================================

// NopReporter 丢弃所有上报
type NopReporter struct{}

var _ interfaces.Reporter = NopReporter{}

// ReportPass 不做任何事
func (NopReporter) ReportPass(types.Stats) {}

// ReportTransfer 不做任何事
func (NopReporter) ReportTransfer(types.ResourceClass, time.Duration) {}

// ReportRejected 不做任何事
func (NopReporter) ReportRejected(types.ResourceClass) {}
