// Package metrics exposes Prometheus counters for the voice pipeline.
//
// Degraded pipeline paths answer the client with a sentinel output rather
// than an error, so each one increments a counter here to stay visible to
// operators.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "restwise"

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	SessionsTotal  prometheus.Counter
	SessionsActive prometheus.Gauge

	FramesReceived     prometheus.Counter
	AudioBytesReceived prometheus.Counter
	ResponsesTotal     prometheus.Counter

	TranscriptionFailures prometheus.Counter
	EmptyTranscripts      prometheus.Counter
	GenerationFallbacks   *prometheus.CounterVec
	SynthesisFailures     prometheus.Counter
	ControlParseFailures  prometheus.Counter
}

// Default is the process-wide metrics instance.
var Default = New()

// New creates and registers all pipeline metrics.
func New() *Metrics {
	return &Metrics{
		SessionsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_total",
			Help:      "Total number of voice sessions opened",
		}),
		SessionsActive: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Number of currently open voice sessions",
		}),
		FramesReceived: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audio_frames_received_total",
			Help:      "Total inbound audio frames",
		}),
		AudioBytesReceived: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audio_bytes_received_total",
			Help:      "Total inbound audio bytes",
		}),
		ResponsesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "responses_total",
			Help:      "Total coach responses produced",
		}),
		TranscriptionFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcription_failures_total",
			Help:      "Transcription calls that errored",
		}),
		EmptyTranscripts: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "empty_transcripts_total",
			Help:      "Audio frames whose transcription came back empty",
		}),
		GenerationFallbacks: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_fallbacks_total",
			Help:      "Responses served by the fallback chain instead of the model",
		}, []string{"source"}),
		SynthesisFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "synthesis_failures_total",
			Help:      "Speech synthesis calls that errored",
		}),
		ControlParseFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "control_parse_failures_total",
			Help:      "Inbound control messages that failed to parse",
		}),
	}
}
