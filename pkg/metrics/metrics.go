package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// REST 调用次数，按接口与结果区分
	ApiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forum_sync_api_requests_total",
			Help: "Total number of forum REST calls",
		},
		[]string{"method", "path", "result"},
	)

	ApiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "forum_sync_api_request_duration_seconds",
			Help:    "Forum REST call duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "path"},
	)

	// 收到的实时事件
	SocketEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forum_sync_socket_events_total",
			Help: "Live events received, by event name",
		},
		[]string{"event"},
	)

	SocketReconnectsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "forum_sync_socket_reconnects_total",
			Help: "Reconnect attempts of the live channel",
		},
	)

	SocketState = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "forum_sync_socket_state",
			Help: "0 idle, 1 connecting, 2 connected, 3 reconnecting, 4 closed",
		},
	)

	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forum_sync_notifications_total",
			Help: "Notifications dispatched, by kind",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(
		ApiRequestsTotal,
		ApiRequestDuration,
		SocketEventsTotal,
		SocketReconnectsTotal,
		SocketState,
		NotificationsTotal,
	)
}
