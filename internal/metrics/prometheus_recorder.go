package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once         sync.Once
	reg          *prom.Registry
	runDuration  prom.Histogram
	runOutcomes  *prom.CounterVec
	classpath    *prom.GaugeVec
	sourceFiles  prom.Gauge
	modules      prom.Gauge
	exports      prom.Gauge
	lastRunStamp prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{reg: reg}
	pr.once.Do(func() {
		pr.runDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "enunciator",
			Name:      "run_duration_seconds",
			Help:      "Duration of Enunciate task runs",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
		})
		pr.runOutcomes = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "enunciator",
			Name:      "run_outcomes_total",
			Help:      "Task runs by outcome",
		}, []string{"outcome"})
		pr.classpath = prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: "enunciator",
			Name:      "classpath_entries",
			Help:      "Classpath entries of the last run, by filter decision",
		}, []string{"decision"})
		pr.sourceFiles = prom.NewGauge(prom.GaugeOpts{
			Namespace: "enunciator",
			Name:      "source_files",
			Help:      "Source files passed to the generator in the last run",
		})
		pr.modules = prom.NewGauge(prom.GaugeOpts{
			Namespace: "enunciator",
			Name:      "modules",
			Help:      "Extension modules found for the last run",
		})
		pr.exports = prom.NewGauge(prom.GaugeOpts{
			Namespace: "enunciator",
			Name:      "exports",
			Help:      "Exports registered for the last run",
		})
		pr.lastRunStamp = prom.NewGauge(prom.GaugeOpts{
			Namespace: "enunciator",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished",
		})
		reg.MustRegister(pr.runDuration, pr.runOutcomes, pr.classpath, pr.sourceFiles, pr.modules, pr.exports, pr.lastRunStamp)
	})
	return pr
}

// Registry returns the registry the collectors are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
	p.lastRunStamp.SetToCurrentTime()
}

func (p *PrometheusRecorder) IncRunOutcome(outcome OutcomeLabel) {
	if p == nil || p.runOutcomes == nil {
		return
	}
	p.runOutcomes.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetClasspathEntries(kept, dropped int) {
	if p == nil || p.classpath == nil {
		return
	}
	p.classpath.WithLabelValues("kept").Set(float64(kept))
	p.classpath.WithLabelValues("dropped").Set(float64(dropped))
}

func (p *PrometheusRecorder) SetSourceFiles(n int) {
	if p == nil || p.sourceFiles == nil {
		return
	}
	p.sourceFiles.Set(float64(n))
}

func (p *PrometheusRecorder) SetModules(n int) {
	if p == nil || p.modules == nil {
		return
	}
	p.modules.Set(float64(n))
}

func (p *PrometheusRecorder) SetExports(n int) {
	if p == nil || p.exports == nil {
		return
	}
	p.exports.Set(float64(n))
}

// WriteTextfile writes the registry in text exposition format to path, for the
// node-exporter textfile collector.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.reg)
}
