package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Upload outcomes, one per dispatched event
const (
	OutcomeSuccess          = "success"
	OutcomeDisabled         = "disabled"
	OutcomeNotConfigured    = "not_configured"
	OutcomeFileMissing      = "file_missing"
	OutcomeClientError      = "client_error"
	OutcomeCredentialsError = "credentials_error"
	OutcomeServiceError     = "service_error"
	OutcomeUnexpectedError  = "unexpected_error"
)

var (
	UploadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "s3_uploader",
		Name:      "uploads_total",
		Help:      "Image saved events handled, by outcome.",
	}, []string{"outcome"})
	UploadDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "s3_uploader",
		Name:      "upload_duration_seconds",
		Help:      "Duration of upload calls against the object store.",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
	})
	ConnectionTestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "s3_uploader",
		Name:      "connection_tests_total",
		Help:      "Connection tests run, by result.",
	}, []string{"result"})
)

// Registry holds the uploader collectors plus the Go and process collectors
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		UploadsTotal,
		UploadDuration,
		ConnectionTestsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler serves the registry in the Prometheus exposition format
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
