package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once           sync.Once
	renderDuration *prom.HistogramVec
	saveResults    *prom.CounterVec
	publishResults *prom.CounterVec
	sectionOps     *prom.CounterVec
	cacheLookups   *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics
// (idempotent). A nil registerer falls back to the default registry, which
// is what the /metrics handler serves.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.renderDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "sitebuilder",
			Name:      "render_duration_seconds",
			Help:      "Duration of page render operations by mode",
			Buckets:   prom.DefBuckets,
		}, []string{"mode"})
		pr.saveResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitebuilder",
			Name:      "save_results_total",
			Help:      "Page save outcomes",
		}, []string{"result"})
		pr.publishResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitebuilder",
			Name:      "publish_results_total",
			Help:      "Publish outcomes by target and result",
		}, []string{"target", "result"})
		pr.sectionOps = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitebuilder",
			Name:      "section_ops_total",
			Help:      "Structural section operations by kind of operation",
		}, []string{"op"})
		pr.cacheLookups = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitebuilder",
			Name:      "render_cache_lookups_total",
			Help:      "Public render cache lookups by hit/miss",
		}, []string{"result"})
		reg.MustRegister(pr.renderDuration, pr.saveResults, pr.publishResults, pr.sectionOps, pr.cacheLookups)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveRenderDuration(mode string, d time.Duration) {
	if p == nil || p.renderDuration == nil {
		return
	}
	p.renderDuration.WithLabelValues(mode).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncSaveResult(result ResultLabel) {
	if p == nil || p.saveResults == nil {
		return
	}
	p.saveResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncPublishResult(target string, result ResultLabel) {
	if p == nil || p.publishResults == nil {
		return
	}
	p.publishResults.WithLabelValues(target, string(result)).Inc()
}

func (p *PrometheusRecorder) IncSectionOp(op string) {
	if p == nil || p.sectionOps == nil {
		return
	}
	p.sectionOps.WithLabelValues(op).Inc()
}

func (p *PrometheusRecorder) IncCacheLookup(hit bool) {
	if p == nil || p.cacheLookups == nil {
		return
	}
	res := "miss"
	if hit {
		res = "hit"
	}
	p.cacheLookups.WithLabelValues(res).Inc()
}
