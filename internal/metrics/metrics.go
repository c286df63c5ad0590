package metrics

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"newsmarketplace/internal/db"
	"newsmarketplace/internal/models"
)

const namespace = "newsmarketplace"

var (
	listingsDesc = prometheus.NewDesc(
		namespace+"_listings",
		"Active listings by kind and moderation status",
		[]string{"kind", "status"},
		nil,
	)
	usersDesc = prometheus.NewDesc(
		namespace+"_users",
		"Registered end-users",
		nil,
		nil,
	)
	unreadDesc = prometheus.NewDesc(
		namespace+"_unread_notifications",
		"Unread in-app notifications across all users",
		nil,
		nil,
	)
)

// Source is what the collector reads on each scrape. *db.DB satisfies it.
type Source interface {
	CountByStatus(ctx context.Context, kind models.Kind) (db.StatusCounts, error)
	GetUserCount(ctx context.Context) (int, error)
	GetUnreadNotificationCount(ctx context.Context) (int, error)
}

// ListingCollector is a custom Prometheus collector that reads listing and
// notification counts from the database on each scrape.
type ListingCollector struct {
	src     Source
	kinds   []models.Kind
	timeout time.Duration
}

// NewListingCollector returns a collector over the given kinds.
func NewListingCollector(src Source, kinds []models.Kind) *ListingCollector {
	return &ListingCollector{src: src, kinds: kinds, timeout: 5 * time.Second}
}

// Describe sends the metric descriptors to the channel.
func (c *ListingCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- listingsDesc
	ch <- usersDesc
	ch <- unreadDesc
}

// Collect queries the database and emits the current counts as gauges. A
// failing query drops its metrics from this scrape only.
func (c *ListingCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	for _, kind := range c.kinds {
		counts, err := c.src.CountByStatus(ctx, kind)
		if err != nil {
			slog.Error("failed to collect listing metrics", "kind", kind.Name, "error", err)
			continue
		}
		for status, n := range counts {
			ch <- prometheus.MustNewConstMetric(listingsDesc, prometheus.GaugeValue, float64(n), kind.Name, status)
		}
	}

	if n, err := c.src.GetUserCount(ctx); err != nil {
		slog.Error("failed to collect user metrics", "error", err)
	} else {
		ch <- prometheus.MustNewConstMetric(usersDesc, prometheus.GaugeValue, float64(n))
	}

	if n, err := c.src.GetUnreadNotificationCount(ctx); err != nil {
		slog.Error("failed to collect notification metrics", "error", err)
	} else {
		ch <- prometheus.MustNewConstMetric(unreadDesc, prometheus.GaugeValue, float64(n))
	}
}

// Recorder counts moderation transitions and failed notifications. It
// satisfies moderation.Recorder.
type Recorder struct {
	transitions *prometheus.CounterVec
	failures    *prometheus.CounterVec
}

// NewRecorder creates the moderation counters. They are not registered.
func NewRecorder() *Recorder {
	return &Recorder{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moderation_transitions_total",
			Help:      "Records entering a moderation status, by kind",
		}, []string{"kind", "status"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_failures_total",
			Help:      "Notifications that could not be delivered, by kind and channel",
		}, []string{"kind", "channel"}),
	}
}

// Transition counts a record entering status.
func (r *Recorder) Transition(kind, status string) {
	r.transitions.WithLabelValues(kind, status).Inc()
}

// NotificationFailure counts a failed in-app or email notification.
func (r *Recorder) NotificationFailure(kind, channel string) {
	r.failures.WithLabelValues(kind, channel).Inc()
}

// Describe implements prometheus.Collector.
func (r *Recorder) Describe(ch chan<- *prometheus.Desc) {
	r.transitions.Describe(ch)
	r.failures.Describe(ch)
}

// Collect implements prometheus.Collector.
func (r *Recorder) Collect(ch chan<- prometheus.Metric) {
	r.transitions.Collect(ch)
	r.failures.Collect(ch)
}

// Init registers the listing collector and a new recorder with reg and
// returns the recorder. Must be called once at startup.
func Init(reg prometheus.Registerer, src Source, kinds []models.Kind) *Recorder {
	rec := NewRecorder()
	reg.MustRegister(NewListingCollector(src, kinds), rec)
	return rec
}
