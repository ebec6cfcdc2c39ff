package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	NotificationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "synergy_notifications_created_total",
		Help: "Notifications created, by type.",
	}, []string{"type"})

	NotificationsMarkedRead = promauto.NewCounter(prometheus.CounterOpts{
		Name: "synergy_notifications_marked_read_total",
		Help: "Notifications flipped from unread to read.",
	})

	NotificationsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "synergy_notifications_deleted_total",
		Help: "Notifications deleted by their owner.",
	})

	ActivitiesAppended = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "synergy_activities_appended_total",
		Help: "Project activities appended, by type.",
	}, []string{"type"})

	FanOutFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "synergy_fanout_failures_total",
		Help: "Fan-out writes that failed after the primary action committed.",
	}, []string{"action"})

	WebsocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "synergy_ws_connections",
		Help: "Open notification websocket connections.",
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "synergy_http_requests_total",
		Help: "HTTP requests served, by route and status.",
	}, []string{"method", "route", "status"})
)
