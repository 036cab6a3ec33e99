package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveRunDuration(2 * time.Second)
	pr.IncRunOutcome(OutcomeSuccess)
	pr.IncRunOutcome(OutcomeFailed)
	pr.IncRunOutcome(OutcomeFailed)
	pr.SetClasspathEntries(4, 1)
	pr.SetSourceFiles(12)
	pr.SetModules(3)
	pr.SetExports(2)

	require.InDelta(t, 2, testutil.ToFloat64(pr.runOutcomes.WithLabelValues("failed")), 0)
	require.InDelta(t, 4, testutil.ToFloat64(pr.classpath.WithLabelValues("kept")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(pr.classpath.WithLabelValues("dropped")), 0)
	require.InDelta(t, 12, testutil.ToFloat64(pr.sourceFiles), 0)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, mfs)
}

func TestPrometheusRecorder_WriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncRunOutcome(OutcomeSuccess)
	pr.SetExports(1)

	path := filepath.Join(t.TempDir(), "enunciator.prom")
	require.NoError(t, pr.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), `enunciator_run_outcomes_total{outcome="success"} 1`))
	require.Contains(t, string(data), "enunciator_exports 1")
}

func TestNilPrometheusRecorderIsSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.ObserveRunDuration(time.Second)
	pr.IncRunOutcome(OutcomeCanceled)
	pr.SetClasspathEntries(1, 1)
	pr.SetSourceFiles(1)
	pr.SetModules(1)
	pr.SetExports(1)
}

func TestNoopRecorderSatisfiesInterface(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveRunDuration(time.Second)
	r.IncRunOutcome(OutcomeSuccess)
	var _ Recorder = (*PrometheusRecorder)(nil)
}
