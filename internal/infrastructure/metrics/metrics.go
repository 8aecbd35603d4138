package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "supportdesk_widget"

// Metrics bundles the Prometheus collectors shared by the gateway, the
// presenter and the HTTP server. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	envelopesIn  *prometheus.CounterVec
	envelopesOut *prometheus.CounterVec
	ignored      prometheus.Counter
	malformed    prometheus.Counter
	dropped      *prometheus.CounterVec
	notices      *prometheus.CounterVec

	hostConnected prometheus.Gauge
	badge         prometheus.Gauge
	tickets       *prometheus.GaugeVec

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them on reg.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		envelopesIn: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "envelopes_received_total",
				Help:      "Host envelopes decoded, by action.",
			},
			[]string{"action"},
		),
		envelopesOut: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "envelopes_sent_total",
				Help:      "Envelopes queued for the host, by action.",
			},
			[]string{"action"},
		),
		ignored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "envelopes_ignored_total",
			Help:      "Host envelopes with an action the widget does not handle.",
		}),
		malformed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "envelopes_malformed_total",
			Help:      "Host frames that were not a valid envelope.",
		}),
		dropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "envelopes_dropped_total",
				Help:      "Outbound envelopes dropped because no host was attached or its queue was full.",
			},
			[]string{"action"},
		),
		notices: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "notices_total",
				Help:      "Transient notices shown to the user, by kind.",
			},
			[]string{"kind"},
		),
		hostConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "host_connected",
			Help:      "1 while a host connection is attached.",
		}),
		badge: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "unread_badge",
			Help:      "Sum of unread notes across tickets.",
		}),
		tickets: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "tickets",
				Help:      "Tickets held by the session, by status bucket.",
			},
			[]string{"status"},
		),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total count of HTTP requests received.",
			},
			[]string{"method", "path", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Histogram of request durations.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_inflight_requests",
			Help:      "Number of requests currently being handled.",
		}),
		gatherer: reg,
	}

	reg.MustRegister(
		m.envelopesIn, m.envelopesOut, m.ignored, m.malformed, m.dropped, m.notices,
		m.hostConnected, m.badge, m.tickets,
		m.requests, m.duration, m.inFlight,
	)

	return m
}

// Handler exposes the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) EnvelopeReceived(action string) {
	if m == nil {
		return
	}
	m.envelopesIn.WithLabelValues(action).Inc()
}

func (m *Metrics) EnvelopeSent(action string) {
	if m == nil {
		return
	}
	m.envelopesOut.WithLabelValues(action).Inc()
}

// EnvelopeIgnored is not labelled: ignored action names come from the host
// and are unbounded.
func (m *Metrics) EnvelopeIgnored() {
	if m == nil {
		return
	}
	m.ignored.Inc()
}

func (m *Metrics) EnvelopeMalformed() {
	if m == nil {
		return
	}
	m.malformed.Inc()
}

func (m *Metrics) EnvelopeDropped(action string) {
	if m == nil {
		return
	}
	m.dropped.WithLabelValues(action).Inc()
}

func (m *Metrics) NoticeShown(kind string) {
	if m == nil {
		return
	}
	m.notices.WithLabelValues(kind).Inc()
}

func (m *Metrics) SetHostConnected(connected bool) {
	if m == nil {
		return
	}
	if connected {
		m.hostConnected.Set(1)
	} else {
		m.hostConnected.Set(0)
	}
}

func (m *Metrics) SetBadge(total int) {
	if m == nil {
		return
	}
	m.badge.Set(float64(total))
}

// SetTickets records the per-status ticket counts.
func (m *Metrics) SetTickets(total, open, inProgress, resolved int) {
	if m == nil {
		return
	}
	m.tickets.WithLabelValues("total").Set(float64(total))
	m.tickets.WithLabelValues("open").Set(float64(open))
	m.tickets.WithLabelValues("in_progress").Set(float64(inProgress))
	m.tickets.WithLabelValues("resolved").Set(float64(resolved))
}

// Instrument wraps the provided handler with Prometheus counters and
// histograms.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.inFlight.Inc()
		defer m.inFlight.Dec()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		start := time.Now()
		next.ServeHTTP(rec, r)
		elapsed := time.Since(start).Seconds()

		labels := []string{r.Method, routeLabel(r), strconv.Itoa(rec.status)}

		m.requests.WithLabelValues(labels...).Inc()
		m.duration.WithLabelValues(labels...).Observe(elapsed)
	})
}

// routeLabel prefers the matched chi pattern and falls back to a trimmed
// path so ticket ids never become label values.
func routeLabel(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return sanitizePath(r.URL.Path)
}

// sanitizePath reduces cardinality by collapsing long paths.
func sanitizePath(p string) string {
	clean := path.Clean(p)
	if clean == "" || clean == "." {
		return "/"
	}

	segments := strings.Split(clean, "/")
	out := segments
	if len(segments) > 4 {
		out = append(segments[:4:4], "...")
	}

	res := strings.Join(out, "/")
	if !strings.HasPrefix(res, "/") {
		res = "/" + res
	}

	return res
}

// statusRecorder captures the final status code for metrics purposes.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	sr.status = status
	sr.ResponseWriter.WriteHeader(status)
}

// Hijack implements http.Hijacker for websocket upgrades.
func (sr *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := sr.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}
