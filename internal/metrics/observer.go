// Package metrics records request outcomes as Prometheus metrics.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fivetwenty-io/twapi/pkg/twapi"
)

// Error types used for the error_type label.
const (
	ErrorTypeTransport = "transport"
	ErrorTypeUpstream  = "upstream"
	ErrorTypeDecode    = "decode"
	ErrorTypeUnknown   = "unknown"
)

// Observer implements twapi.Observer.
type Observer struct {
	requests *prometheus.CounterVec
	errors   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewObserver registers the request metrics with reg. A nil reg uses the
// default registerer.
func NewObserver(reg prometheus.Registerer) *Observer {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	return &Observer{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "twapi_requests_total",
				Help: "Total API requests by method, endpoint template and status code",
			},
			[]string{"method", "endpoint", "code"},
		),
		errors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "twapi_request_errors_total",
				Help: "Total failed API requests by method, endpoint template and error type",
			},
			[]string{"method", "endpoint", "error_type"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "twapi_request_duration_seconds",
				Help:    "API request latency by method and endpoint template",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
	}
}

// ObserveRequest implements twapi.Observer.ObserveRequest. A status of 0
// (no response) is recorded as code "0".
func (o *Observer) ObserveRequest(method, endpoint string, statusCode int, duration time.Duration, err error) {
	o.requests.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	o.duration.WithLabelValues(method, endpoint).Observe(duration.Seconds())

	if err != nil {
		o.errors.WithLabelValues(method, endpoint, ErrorType(err)).Inc()
	}
}

// ErrorType classifies err for the error_type label.
func ErrorType(err error) string {
	respErr := &twapi.ResponseError{}
	decodeErr := &twapi.DecodeError{}

	switch {
	case errors.Is(err, twapi.ErrTransport):
		return ErrorTypeTransport
	case errors.As(err, &respErr):
		return ErrorTypeUpstream
	case errors.As(err, &decodeErr):
		return ErrorTypeDecode
	default:
		return ErrorTypeUnknown
	}
}

// Handler serves the metrics gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		g = prometheus.DefaultGatherer
	}

	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

var _ twapi.Observer = (*Observer)(nil)
