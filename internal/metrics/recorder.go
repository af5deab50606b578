// Package metrics defines observability hooks for the content, render and
// publish layers, with noop and Prometheus implementations.
package metrics

import "time"

// ResultLabel enumerates operation result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
)

// Recorder defines observability hooks for engine operations. Implementations
// may forward to Prometheus, OpenTelemetry, etc. All methods must be safe for
// the NoopRecorder zero value (allowing optional injection).
type Recorder interface {
	ObserveRenderDuration(mode string, d time.Duration)
	IncSaveResult(result ResultLabel)
	IncPublishResult(target string, result ResultLabel)
	IncSectionOp(op string)
	IncCacheLookup(hit bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveRenderDuration(string, time.Duration) {}
func (NoopRecorder) IncSaveResult(ResultLabel)                   {}
func (NoopRecorder) IncPublishResult(string, ResultLabel)        {}
func (NoopRecorder) IncSectionOp(string)                         {}
func (NoopRecorder) IncCacheLookup(bool)                         {}
