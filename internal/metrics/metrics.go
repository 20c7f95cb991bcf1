// Package metrics declares the Prometheus collectors of the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequests counts handled requests by route pattern, method and status code.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "microblog_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"route", "method", "status"})

	// HTTPRequestDuration records request latency by route pattern and method.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "microblog_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	// MailDispatched counts messages handed to a dispatcher backend.
	MailDispatched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "microblog_mail_dispatched_total",
		Help: "Total number of mail messages accepted for delivery",
	}, []string{"backend"})

	// MailSent counts delivery attempts by outcome.
	MailSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "microblog_mail_sent_total",
		Help: "Total number of mail delivery attempts",
	}, []string{"result"})

	// PostsCreated counts stored posts.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "microblog_posts_created_total",
		Help: "Total number of posts created",
	})
)

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
