package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP 请求延迟（秒）
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// 数据库操作延迟（秒）
	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_operation_duration_seconds",
			Help:    "Document store operation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"operation", "collection"},
	)

	// MQ 消费延迟（毫秒）
	MQConsumeLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mq_consume_latency_ms",
			Help:    "MQ message consumption latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(10, 2, 10), // 10ms to ~10s
		},
		[]string{"routing_key", "queue"},
	)

	// 项目创建计数
	ProjectCreatedCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "project_created_count",
			Help: "Total number of projects created",
		},
	)

	// 任务创建计数
	TaskCreatedCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_created_count",
			Help: "Total number of tasks created",
		},
		[]string{"priority"}, // priority: low, medium, high
	)

	// 加入项目计数
	ProjectJoinCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "project_join_count",
			Help: "Total number of project joins via invite code",
		},
		[]string{"mode"}, // mode: direct, deferred
	)

	// 活跃快照订阅数
	ActiveSnapshotStreams = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_snapshot_streams",
			Help: "Number of live snapshot subscriptions currently open",
		},
	)
)

// RecordHTTPRequestDuration 记录 HTTP 请求延迟
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordDBOperationDuration 记录数据库操作延迟
func RecordDBOperationDuration(operation, collection string, duration time.Duration) {
	DBOperationDuration.WithLabelValues(operation, collection).Observe(duration.Seconds())
}

// RecordMQConsumeLatency 记录 MQ 消费延迟
func RecordMQConsumeLatency(routingKey, queue string, duration time.Duration) {
	MQConsumeLatency.WithLabelValues(routingKey, queue).Observe(float64(duration.Milliseconds()))
}

// IncrementProjectCreated 增加项目创建计数
func IncrementProjectCreated() {
	ProjectCreatedCount.Inc()
}

// IncrementTaskCreated 增加任务创建计数
func IncrementTaskCreated(priority string) {
	TaskCreatedCount.WithLabelValues(priority).Inc()
}

// IncrementProjectJoin 增加加入项目计数
func IncrementProjectJoin(mode string) {
	ProjectJoinCount.WithLabelValues(mode).Inc()
}
