// Package metrics counts what a documentation run did. The counters live in
// their own registry and are written to a node-exporter textfile at the end
// of a run.
package metrics

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds every owldoc metric.
var Registry = prometheus.NewRegistry()

var (
	mFiles = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Name: "owldoc_ontology_files_total",
		Help: "Number of ontology files processed, by result.",
	}, []string{"result"})
	mTriples = promauto.With(Registry).NewHistogram(prometheus.HistogramOpts{
		Name:    "owldoc_ontology_triples",
		Help:    "Number of triples in a loaded ontology.",
		Buckets: prometheus.ExponentialBuckets(10, 4, 8),
	})
	mClasses = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Name: "owldoc_classes_total",
		Help: "Number of classes documented, by result.",
	}, []string{"result"})
	mDiagramSeconds = promauto.With(Registry).NewHistogram(prometheus.HistogramOpts{
		Name: "owldoc_diagram_build_seconds",
		Help: "Time to build and encode one class diagram.",
	})
	mRendered = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Name: "owldoc_diagrams_rendered_total",
		Help: "Number of diagram images written by Graphviz, by format.",
	}, []string{"format"})
	mDiagnostics = promauto.With(Registry).NewCounter(prometheus.CounterOpts{
		Name: "owldoc_diagnostics_total",
		Help: "Number of recoverable problems reported.",
	})
	mRunSeconds = promauto.With(Registry).NewGauge(prometheus.GaugeOpts{
		Name: "owldoc_last_run_seconds",
		Help: "Duration of the last documentation run.",
	})
	mRunTimestamp = promauto.With(Registry).NewGauge(prometheus.GaugeOpts{
		Name: "owldoc_last_run_timestamp_seconds",
		Help: "Unix time the last documentation run finished.",
	})
)

// FileLoaded records a successfully loaded ontology of n triples.
func FileLoaded(n int) {
	mFiles.WithLabelValues("ok").Inc()
	mTriples.Observe(float64(n))
}

// FileFailed records an ontology that could not be loaded.
func FileFailed() { mFiles.WithLabelValues("failed").Inc() }

// ClassDone records a documented class.
func ClassDone() { mClasses.WithLabelValues("ok").Inc() }

// ClassFailed records a class whose page or diagram failed.
func ClassFailed() { mClasses.WithLabelValues("failed").Inc() }

// DiagramTimer measures one diagram build.
func DiagramTimer() *prometheus.Timer { return prometheus.NewTimer(mDiagramSeconds) }

// Rendered records the images written for one diagram.
func Rendered(files []string) {
	for _, f := range files {
		mRendered.WithLabelValues(strings.TrimPrefix(filepath.Ext(f), ".")).Inc()
	}
}

// Diagnostic records a reported problem.
func Diagnostic() { mDiagnostics.Inc() }

// RunFinished records the duration of a run.
func RunFinished(start time.Time) {
	mRunSeconds.Set(time.Since(start).Seconds())
	mRunTimestamp.SetToCurrentTime()
}

// WriteTextfile writes every metric to path in the text exposition format.
// An empty path is a no-op.
func WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, Registry)
}
