package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounts(t *testing.T) {
	r := NewRecorder(prom.NewRegistry())

	r.MessageHandled("telegram", "chat")
	r.MessageHandled("telegram", "chat")
	r.MessageHandled("discord", "export")
	r.ExportCreated()
	r.Transcription(true)
	r.Transcription(false)
	r.LLMError()

	require.Equal(t, float64(2), testutil.ToFloat64(r.messages.WithLabelValues("telegram", "chat")))
	require.Equal(t, float64(1), testutil.ToFloat64(r.messages.WithLabelValues("discord", "export")))
	require.Equal(t, float64(1), testutil.ToFloat64(r.exports))
	require.Equal(t, float64(1), testutil.ToFloat64(r.transcriptions.WithLabelValues("success")))
	require.Equal(t, float64(1), testutil.ToFloat64(r.transcriptions.WithLabelValues("failed")))
	require.Equal(t, float64(1), testutil.ToFloat64(r.llmErrors))
}

func TestRecorderNilSafe(t *testing.T) {
	var r *Recorder
	require.NotPanics(t, func() {
		r.MessageHandled("telegram", "chat")
		r.ObserveLLMDuration(time.Second)
		r.LLMError()
		r.ExportCreated()
		r.Transcription(true)
	})
}
