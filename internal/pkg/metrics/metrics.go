package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "marketplace",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		},
		[]string{"route", "method", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "marketplace",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "marketplace",
			Name:      "bookings_created_total",
			Help:      "Bookings created.",
		},
	)

	paymentsCaptured = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "marketplace",
			Name:      "payments_captured_total",
			Help:      "Payments captured by method.",
		},
		[]string{"method"},
	)

	walletDebitsRejected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "marketplace",
			Name:      "wallet_debits_rejected_total",
			Help:      "Wallet debits rejected for insufficient balance.",
		},
	)
)

// Register registers the collectors on reg. Safe to call multiple times.
func Register(reg prometheus.Registerer) {
	once.Do(func() {
		reg.MustRegister(httpRequests, httpDuration, bookingsCreated, paymentsCaptured, walletDebitsRejected)
	})
}

func ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

func IncBookingCreated() {
	bookingsCreated.Inc()
}

func IncPaymentCaptured(method string) {
	paymentsCaptured.WithLabelValues(method).Inc()
}

func IncWalletDebitRejected() {
	walletDebitsRejected.Inc()
}
