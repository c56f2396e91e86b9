// Package metrics exposes Prometheus counters for bot activity. All
// recorder methods are nil safe, a bot running without metrics simply
// records nothing.
package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the bot's Prometheus metrics.
type Recorder struct {
	once           sync.Once
	messages       *prom.CounterVec
	llmDuration    prom.Histogram
	llmErrors      prom.Counter
	exports        prom.Counter
	transcriptions *prom.CounterVec
}

// NewRecorder constructs and registers the bot metrics (idempotent).
func NewRecorder(reg *prom.Registry) *Recorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	r := &Recorder{}
	r.once.Do(func() {
		r.messages = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "logosbot",
			Name:      "messages_total",
			Help:      "Handled messages by service and action",
		}, []string{"service", "action"})
		r.llmDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "logosbot",
			Name:      "llm_request_duration_seconds",
			Help:      "Duration of OpenRouter completions",
			Buckets:   prom.DefBuckets,
		})
		r.llmErrors = prom.NewCounter(prom.CounterOpts{
			Namespace: "logosbot",
			Name:      "llm_errors_total",
			Help:      "Failed OpenRouter completions",
		})
		r.exports = prom.NewCounter(prom.CounterOpts{
			Namespace: "logosbot",
			Name:      "exports_total",
			Help:      "Excel reports created",
		})
		r.transcriptions = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "logosbot",
			Name:      "transcriptions_total",
			Help:      "Voice transcriptions by result",
		}, []string{"result"})
		reg.MustRegister(r.messages, r.llmDuration, r.llmErrors, r.exports, r.transcriptions)
	})
	return r
}

func (r *Recorder) MessageHandled(service, action string) {
	if r == nil || r.messages == nil {
		return
	}
	r.messages.WithLabelValues(service, action).Inc()
}

func (r *Recorder) ObserveLLMDuration(d time.Duration) {
	if r == nil || r.llmDuration == nil {
		return
	}
	r.llmDuration.Observe(d.Seconds())
}

func (r *Recorder) LLMError() {
	if r == nil || r.llmErrors == nil {
		return
	}
	r.llmErrors.Inc()
}

func (r *Recorder) ExportCreated() {
	if r == nil || r.exports == nil {
		return
	}
	r.exports.Inc()
}

func (r *Recorder) Transcription(success bool) {
	if r == nil || r.transcriptions == nil {
		return
	}
	result := "failed"
	if success {
		result = "success"
	}
	r.transcriptions.WithLabelValues(result).Inc()
}

var (
	defaultRecorder *Recorder
	defaultRegistry *prom.Registry
	defaultOnce     sync.Once
)

func initDefault() {
	defaultOnce.Do(func() {
		defaultRegistry = prom.NewRegistry()
		defaultRecorder = NewRecorder(defaultRegistry)
	})
}

// Default returns the process-wide recorder.
func Default() *Recorder {
	initDefault()
	return defaultRecorder
}

// Registry returns the registry behind the default recorder.
func Registry() *prom.Registry {
	initDefault()
	return defaultRegistry
}
