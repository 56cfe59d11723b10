// Package metrics collects and exposes Prometheus metrics for the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the surface gateways use to record business events.
type Recorder interface {
	RecordSignIn()
	RecordUpload()
	RecordUploadDenied(reason string)
	RecordDeletion()
	RecordRecommendationsServed(kind string, count int)
}

// Collector implements Recorder on top of Prometheus counters.
type Collector struct {
	signIns         prometheus.Counter
	uploads         prometheus.Counter
	uploadsDenied   *prometheus.CounterVec
	deletions       prometheus.Counter
	recommendations *prometheus.CounterVec
}

// NewCollector registers the service counters on the given registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		signIns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arnio_signin_total",
			Help: "Successful sign-ins.",
		}),
		uploads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arnio_document_uploads_total",
			Help: "Documents persisted by the upload operation.",
		}),
		uploadsDenied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "arnio_document_uploads_denied_total",
			Help: "Upload attempts denied by entitlement checks.",
		}, []string{"reason"}),
		deletions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arnio_document_deletions_total",
			Help: "Documents deleted by their owners.",
		}),
		recommendations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "arnio_recommendations_served_total",
			Help: "Recommendation entries returned, by catalog kind.",
		}, []string{"kind"}),
	}

	reg.MustRegister(c.signIns, c.uploads, c.uploadsDenied, c.deletions, c.recommendations)
	return c
}

func (c *Collector) RecordSignIn() { c.signIns.Inc() }

func (c *Collector) RecordUpload() { c.uploads.Inc() }

func (c *Collector) RecordUploadDenied(reason string) {
	c.uploadsDenied.WithLabelValues(reason).Inc()
}

func (c *Collector) RecordDeletion() { c.deletions.Inc() }

func (c *Collector) RecordRecommendationsServed(kind string, count int) {
	c.recommendations.WithLabelValues(kind).Add(float64(count))
}

// Handler returns the scrape endpoint handler for the registry.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop is a Recorder that discards every event. Used in tests.
type Nop struct{}

func (Nop) RecordSignIn()                                {}
func (Nop) RecordUpload()                                {}
func (Nop) RecordUploadDenied(string)                    {}
func (Nop) RecordDeletion()                              {}
func (Nop) RecordRecommendationsServed(string, int)      {}
