package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionEvents      *prometheus.CounterVec
	resolverEvents     *prometheus.CounterVec
	ingestionOutcomes  *prometheus.CounterVec
	conversionOutcomes *prometheus.CounterVec
	citationLookups    *prometheus.CounterVec
	remoteLatency      *prometheus.HistogramVec
)

var initOnce sync.Once

// Init registers all collectors with the given registerer.
// Only the first call registers; recording helpers are no-ops until then.
func Init(reg prometheus.Registerer) {
	initOnce.Do(func() {
		f := promauto.With(reg)

		sessionEvents = f.NewCounterVec(prometheus.CounterOpts{
			Name: "knowledge_bot_session_events_total",
			Help: "Session cache events (created, reused, swept, cleared)",
		}, []string{"event"})

		resolverEvents = f.NewCounterVec(prometheus.CounterOpts{
			Name: "knowledge_bot_store_resolver_events_total",
			Help: "Store handle resolver events (hit, miss, not_found, created)",
		}, []string{"event"})

		ingestionOutcomes = f.NewCounterVec(prometheus.CounterOpts{
			Name: "knowledge_bot_ingestion_outcomes_total",
			Help: "Document ingestion outcomes",
		}, []string{"outcome"})

		conversionOutcomes = f.NewCounterVec(prometheus.CounterOpts{
			Name: "knowledge_bot_conversion_outcomes_total",
			Help: "Legacy format conversion outcomes",
		}, []string{"result"})

		citationLookups = f.NewCounterVec(prometheus.CounterOpts{
			Name: "knowledge_bot_citation_lookups_total",
			Help: "Citation dereferences (hit, stale)",
		}, []string{"result"})

		remoteLatency = f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "knowledge_bot_remote_latency_seconds",
			Help:    "Latency of remote calls",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"})
	})
}

// SessionEvent counts a session cache event
func SessionEvent(event string) {
	add(sessionEvents, event, 1)
}

// SessionsSwept counts sessions removed by a sweep
func SessionsSwept(n int) {
	add(sessionEvents, "swept", float64(n))
}

// ResolverEvent counts a store handle resolver event
func ResolverEvent(event string) {
	add(resolverEvents, event, 1)
}

// IngestionOutcome counts an ingestion outcome
func IngestionOutcome(outcome string) {
	add(ingestionOutcomes, outcome, 1)
}

// ConversionOutcome counts a conversion result
func ConversionOutcome(result string) {
	add(conversionOutcomes, result, 1)
}

// CitationLookup counts a citation dereference
func CitationLookup(result string) {
	add(citationLookups, result, 1)
}

// ObserveRemote records the latency of a remote call started at start
func ObserveRemote(operation string, start time.Time) {
	if remoteLatency == nil {
		return
	}
	remoteLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func add(vec *prometheus.CounterVec, label string, n float64) {
	if vec == nil || n <= 0 {
		return
	}
	vec.WithLabelValues(label).Add(n)
}
