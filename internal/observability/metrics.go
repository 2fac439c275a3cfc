package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instruments of the service. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	RequestsTotal       *prometheus.CounterVec
	RequestDuration     *prometheus.HistogramVec
	MessagesSentTotal   prometheus.Counter
	MessagesMarkedRead  prometheus.Counter
	MessagesDeleted     prometheus.Counter
	ReactionsAdded      *prometheus.CounterVec
	ReactionsRemoved    prometheus.Counter
	RateLimitRejections prometheus.Counter
}

// NewMetrics creates the instruments and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "messenger_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "messenger_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		MessagesSentTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "messenger_messages_sent_total",
			Help: "Messages stored by send.",
		}),
		MessagesMarkedRead: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "messenger_messages_marked_read_total",
			Help: "Live messages matched by mark-as-read.",
		}),
		MessagesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "messenger_messages_deleted_total",
			Help: "Messages soft-deleted.",
		}),
		ReactionsAdded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "messenger_reactions_added_total",
			Help: "Reactions added by reaction type.",
		}, []string{"reaction_type_id"}),
		ReactionsRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "messenger_reactions_removed_total",
			Help: "Reactions soft-deleted.",
		}),
		RateLimitRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "messenger_rate_limit_rejections_total",
			Help: "Requests rejected by the rate limiter.",
		}),
	}

	reg.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.MessagesSentTotal,
		m.MessagesMarkedRead,
		m.MessagesDeleted,
		m.ReactionsAdded,
		m.ReactionsRemoved,
		m.RateLimitRejections,
	)

	return m
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) MessageSent() {
	if m == nil {
		return
	}
	m.MessagesSentTotal.Inc()
}

func (m *Metrics) MessagesRead(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.MessagesMarkedRead.Add(float64(n))
}

func (m *Metrics) MessageDeleted() {
	if m == nil {
		return
	}
	m.MessagesDeleted.Inc()
}

func (m *Metrics) ReactionAdded(reactionTypeID int64) {
	if m == nil {
		return
	}
	m.ReactionsAdded.WithLabelValues(strconv.FormatInt(reactionTypeID, 10)).Inc()
}

func (m *Metrics) ReactionsRemovedCount(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.ReactionsRemoved.Add(float64(n))
}

func (m *Metrics) RateLimited() {
	if m == nil {
		return
	}
	m.RateLimitRejections.Inc()
}
