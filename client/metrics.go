package client

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mycelian_fetch",
			Name:      "requests_total",
			Help:      "Fetch round-trips by method and status class (transport when no response).",
		},
		[]string{"method", "code"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mycelian_fetch",
			Name:      "request_duration_seconds",
			Help:      "Time from sending a request until its body was read or the transport failed.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

func observeRequest(method string, status int, start time.Time) {
	method = methodLabel(method)
	requestsTotal.WithLabelValues(method, statusClass(status)).Inc()
	requestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
}

// methodLabel keeps the label set bounded: anything but a standard method is "other".
func methodLabel(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch,
		http.MethodDelete, http.MethodConnect, http.MethodOptions, http.MethodTrace:
		return method
	default:
		return "other"
	}
}

// statusClass collapses a status to "2xx", "4xx", ... or "transport".
func statusClass(status int) string {
	if status == StatusTransportFailure {
		return "transport"
	}
	return strconv.Itoa(status/100) + "xx"
}
