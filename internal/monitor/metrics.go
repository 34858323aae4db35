package monitor

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics 指标收集器
type Metrics struct {
	sourceLoads       *prometheus.CounterVec
	sourceRows        *prometheus.GaugeVec
	unmatchedWinners  prometheus.Gauge
	cacheHitTotal     *prometheus.CounterVec
	cacheMissTotal    *prometheus.CounterVec
	reportsTotal      *prometheus.CounterVec
	reportDuration    *prometheus.HistogramVec
	httpRequestsTotal *prometheus.CounterVec
	reportsInFlight   prometheus.Gauge
}

// NewMetrics 创建并注册指标
func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		sourceLoads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "source_loads_total",
				Help:      "源表加载次数（按结果）",
			},
			[]string{"status"}, // success, error
		),
		sourceRows: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "source_rows",
				Help:      "各源表加载的行数",
			},
			[]string{"table"}, // nft, winner
		),
		unmatchedWinners: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "unmatched_winner_rows",
				Help:      "未匹配到 NFT unique_id 的中奖记录数",
			},
		),
		cacheHitTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_hit_total",
				Help:      "缓存命中总数（按缓存类型）",
			},
			[]string{"cache_type"}, // tables, dashboard, leaderboard
		),
		cacheMissTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_miss_total",
				Help:      "缓存未命中总数（按缓存类型）",
			},
			[]string{"cache_type"},
		),
		reportsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reports_total",
				Help:      "报表计算次数（按类型和结果）",
			},
			[]string{"kind", "status"},
		),
		reportDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "report_duration_seconds",
				Help:      "报表计算耗时分布（秒）",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"kind"},
		),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP 请求数（按路由和状态码）",
			},
			[]string{"route", "code"},
		),
		reportsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "reports_in_flight",
				Help:      "当前正在计算的报表数",
			},
		),
	}

	prometheus.MustRegister(
		m.sourceLoads,
		m.sourceRows,
		m.unmatchedWinners,
		m.cacheHitTotal,
		m.cacheMissTotal,
		m.reportsTotal,
		m.reportDuration,
		m.httpRequestsTotal,
		m.reportsInFlight,
	)

	return m
}

func (m *Metrics) IncSourceLoad(status string) {
	m.sourceLoads.WithLabelValues(status).Inc()
}

func (m *Metrics) SetSourceRows(table string, rows int) {
	m.sourceRows.WithLabelValues(table).Set(float64(rows))
}

func (m *Metrics) SetUnmatchedWinners(count int) {
	m.unmatchedWinners.Set(float64(count))
}

func (m *Metrics) IncCacheHit(cacheType string) {
	m.cacheHitTotal.WithLabelValues(cacheType).Inc()
}

func (m *Metrics) IncCacheMiss(cacheType string) {
	m.cacheMissTotal.WithLabelValues(cacheType).Inc()
}

// ObserveReport 记录一次报表计算
func (m *Metrics) ObserveReport(kind, status string, seconds float64) {
	m.reportsTotal.WithLabelValues(kind, status).Inc()
	m.reportDuration.WithLabelValues(kind).Observe(seconds)
}

func (m *Metrics) IncHTTPRequest(route, code string) {
	m.httpRequestsTotal.WithLabelValues(route, code).Inc()
}

func (m *Metrics) AddReportsInFlight(delta float64) {
	m.reportsInFlight.Add(delta)
}

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// GetMetrics 获取全局指标收集器
func GetMetrics() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = NewMetrics("nft_dashboard")
	})
	return globalMetrics
}

// InitMetrics 初始化指标收集器（供 main 使用）
func InitMetrics() {
	GetMetrics()
}
