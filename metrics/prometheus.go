// Package metrics exposes bridge and pipeline counters to Prometheus.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/willibrandon/mtbridge/bridge"
	"github.com/willibrandon/mtbridge/parser"
	"github.com/willibrandon/mtbridge/sinks"
)

// Namespace prefixes every metric name.
const Namespace = "mtbridge"

// PrometheusObserver implements bridge.Observer with Prometheus counters.
type PrometheusObserver struct {
	forwarded      *prometheus.CounterVec
	skipped        *prometheus.CounterVec
	templateFailed prometheus.Counter
	dropped        prometheus.Counter
}

var _ bridge.Observer = (*PrometheusObserver)(nil)

// NewPrometheusObserver registers the bridge counters with reg, or with the
// default registerer when reg is nil. Counters already registered by an
// earlier call are reused.
func NewPrometheusObserver(reg prometheus.Registerer) (*PrometheusObserver, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	forwarded, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "bridge",
		Name:      "events_forwarded_total",
		Help:      "Events translated and written to the other side.",
	}, []string{"direction"}))
	if err != nil {
		return nil, err
	}
	skipped, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "bridge",
		Name:      "events_skipped_total",
		Help:      "Events not translated because the target level is disabled.",
	}, []string{"direction"}))
	if err != nil {
		return nil, err
	}
	templateFailed, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "bridge",
		Name:      "template_bind_failures_total",
		Help:      "Templates replaced by an empty template because they could not be bound.",
	}))
	if err != nil {
		return nil, err
	}
	dropped, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "bridge",
		Name:      "properties_dropped_total",
		Help:      "Event properties the target logger declined to bind.",
	}))
	if err != nil {
		return nil, err
	}

	return &PrometheusObserver{
		forwarded:      forwarded,
		skipped:        skipped,
		templateFailed: templateFailed,
		dropped:        dropped,
	}, nil
}

// Forwarded implements bridge.Observer.
func (o *PrometheusObserver) Forwarded(direction bridge.Direction) {
	o.forwarded.WithLabelValues(direction.String()).Inc()
}

// SkippedDisabled implements bridge.Observer.
func (o *PrometheusObserver) SkippedDisabled(direction bridge.Direction) {
	o.skipped.WithLabelValues(direction.String()).Inc()
}

// TemplateBindFailed implements bridge.Observer.
func (o *PrometheusObserver) TemplateBindFailed() {
	o.templateFailed.Inc()
}

// PropertyDropped implements bridge.Observer. The property name is not used
// as a label to keep cardinality bounded.
func (o *PrometheusObserver) PropertyDropped(string) {
	o.dropped.Inc()
}

// RegisterAsyncSink exposes the processed and dropped counts of an async sink.
// name distinguishes several sinks through the "sink" label.
func RegisterAsyncSink(reg prometheus.Registerer, name string, sink *sinks.AsyncSink) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	labels := prometheus.Labels{"sink": name}
	processed := prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace:   Namespace,
		Subsystem:   "async",
		Name:        "events_processed_total",
		Help:        "Events written by the async sink worker.",
		ConstLabels: labels,
	}, func() float64 { return float64(sink.Processed()) })
	dropped := prometheus.NewCounterFunc(prometheus.CounterOpts{
		Namespace:   Namespace,
		Subsystem:   "async",
		Name:        "events_dropped_total",
		Help:        "Events dropped because the async buffer was full or closed.",
		ConstLabels: labels,
	}, func() float64 { return float64(sink.Dropped()) })

	if err := reg.Register(processed); err != nil {
		return err
	}
	return reg.Register(dropped)
}

// TemplateCacheCollector reports the parser's template cache statistics.
type TemplateCacheCollector struct {
	hits, misses, evictions, size *prometheus.Desc
}

// NewTemplateCacheCollector creates a collector for the template cache.
func NewTemplateCacheCollector() *TemplateCacheCollector {
	name := func(n string) string { return prometheus.BuildFQName(Namespace, "template_cache", n) }
	return &TemplateCacheCollector{
		hits:      prometheus.NewDesc(name("hits_total"), "Template cache hits.", nil, nil),
		misses:    prometheus.NewDesc(name("misses_total"), "Template cache misses.", nil, nil),
		evictions: prometheus.NewDesc(name("evictions_total"), "Templates evicted from the cache.", nil, nil),
		size:      prometheus.NewDesc(name("entries"), "Templates currently cached.", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *TemplateCacheCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hits
	ch <- c.misses
	ch <- c.evictions
	ch <- c.size
}

// Collect implements prometheus.Collector.
func (c *TemplateCacheCollector) Collect(ch chan<- prometheus.Metric) {
	stats := parser.GetCacheStats()
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(stats.Hits))
	ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(stats.Misses))
	ch <- prometheus.MustNewConstMetric(c.evictions, prometheus.CounterValue, float64(stats.Evictions))
	ch <- prometheus.MustNewConstMetric(c.size, prometheus.GaugeValue, float64(stats.Size))
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		var zero C
		return zero, err
	}
	return c, nil
}
