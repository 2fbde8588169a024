package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/dd0wney/meshline/pkg/mesh"
	"github.com/dd0wney/meshline/pkg/mesh/meshtest"
)

func convertCube(t testing.TB) *mesh.Result {
	t.Helper()
	c, err := mesh.NewConverter(mesh.DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("NewConverter: %v", err)
	}
	res, err := c.Convert(meshtest.UnitCube())
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	return res
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Counter.GetValue()
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	if r.ConversionsTotal == nil {
		t.Error("ConversionsTotal not initialized")
	}
	if r.ConversionDuration == nil {
		t.Error("ConversionDuration not initialized")
	}
	if r.BatchFilesTotal == nil {
		t.Error("BatchFilesTotal not initialized")
	}
	if r.RunSeconds == nil {
		t.Error("RunSeconds not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	r1 := DefaultRegistry()
	r2 := DefaultRegistry()

	if r1 != r2 {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordConversion(t *testing.T) {
	r := NewRegistry()
	res := convertCube(t)

	r.RecordConversion(res, 20*time.Millisecond)
	r.RecordConversion(res, 30*time.Millisecond)

	if got := counterValue(t, r.ConversionsTotal.WithLabelValues(StatusSuccess)); got != 2 {
		t.Errorf("success conversions = %v, want 2", got)
	}
	if got := counterValue(t, r.TrianglesTotal); got != 24 {
		t.Errorf("triangles = %v, want 24", got)
	}
	if got := counterValue(t, r.DegenerateNormalsTotal); got != 0 {
		t.Errorf("degenerate normals = %v, want 0", got)
	}

	var metric dto.Metric
	if err := r.BoundaryEdges.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Histogram.GetSampleCount() != 2 {
		t.Errorf("boundary sample count = %v, want 2", metric.Histogram.GetSampleCount())
	}
	if metric.Histogram.GetSampleSum() != 24 {
		t.Errorf("boundary sample sum = %v, want 24", metric.Histogram.GetSampleSum())
	}

	metric.Reset()
	if err := r.SurfaceGroups.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Histogram.GetSampleSum() != 12 {
		t.Errorf("groups sample sum = %v, want 12", metric.Histogram.GetSampleSum())
	}
}

func TestRecordConversion_Diagnostics(t *testing.T) {
	r := NewRegistry()

	c, err := mesh.NewConverter(mesh.DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("NewConverter: %v", err)
	}
	in := meshtest.Fan(3)
	in.Normals[2] = r3.Vec{}
	res, err := c.Convert(in)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	r.RecordConversion(res, time.Millisecond)

	if got := counterValue(t, r.DegenerateNormalsTotal); got != 1 {
		t.Errorf("degenerate normals = %v, want 1", got)
	}
	if got := counterValue(t, r.NonManifoldEdgesTotal); got != 0 {
		t.Errorf("non-manifold edges = %v, want 0", got)
	}
}

func TestRecordFailure(t *testing.T) {
	r := NewRegistry()

	r.RecordFailure(5 * time.Millisecond)

	if got := counterValue(t, r.ConversionsTotal.WithLabelValues(StatusFailed)); got != 1 {
		t.Errorf("failed conversions = %v, want 1", got)
	}
	if got := counterValue(t, r.ConversionsTotal.WithLabelValues(StatusSuccess)); got != 0 {
		t.Errorf("success conversions = %v, want 0", got)
	}

	var metric dto.Metric
	if err := r.ConversionDuration.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Histogram.GetSampleCount() != 1 {
		t.Errorf("duration sample count = %v, want 1", metric.Histogram.GetSampleCount())
	}
}

func TestRecordBatch(t *testing.T) {
	r := NewRegistry()

	r.RecordBatch(3, 1, 2, 2*time.Second)

	if got := counterValue(t, r.BatchFilesTotal.WithLabelValues(StatusSuccess)); got != 3 {
		t.Errorf("batch successes = %v, want 3", got)
	}
	if got := counterValue(t, r.BatchFilesTotal.WithLabelValues(StatusFailed)); got != 1 {
		t.Errorf("batch failures = %v, want 1", got)
	}
	if got := counterValue(t, r.BatchFilesTotal.WithLabelValues(StatusSkipped)); got != 2 {
		t.Errorf("batch skipped = %v, want 2", got)
	}
}

func TestSystemMetrics(t *testing.T) {
	r := NewRegistry()

	r.UpdateSystemMetrics(time.Now().Add(-time.Minute))

	var metric dto.Metric
	if err := r.RunSeconds.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Gauge.GetValue() < 60 {
		t.Errorf("run seconds = %v, want >= 60", metric.Gauge.GetValue())
	}

	metric.Reset()
	if err := r.GoMaxProcs.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Gauge.GetValue() < 1 {
		t.Errorf("gomaxprocs = %v, want >= 1", metric.Gauge.GetValue())
	}

	metric.Reset()
	if err := r.GoRoutines.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Gauge.GetValue() < 1 {
		t.Errorf("goroutines = %v, want >= 1", metric.Gauge.GetValue())
	}

	metric.Reset()
	if err := r.TotalAllocBytes.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Gauge.GetValue() <= 0 {
		t.Errorf("total alloc = %v, want > 0", metric.Gauge.GetValue())
	}
}

func TestGetPrometheusRegistry(t *testing.T) {
	r := NewRegistry()
	promRegistry := r.GetPrometheusRegistry()

	if promRegistry == nil {
		t.Fatal("GetPrometheusRegistry() returned nil")
	}

	metrics, err := promRegistry.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	expectedMetrics := []string{
		"meshline_conversion_duration_seconds",
		"meshline_triangles_processed_total",
		"meshline_run_seconds",
	}

	metricNames := make(map[string]bool)
	for _, m := range metrics {
		metricNames[m.GetName()] = true
	}

	for _, expected := range expectedMetrics {
		if !metricNames[expected] {
			t.Errorf("Expected metric %s not found", expected)
		}
	}
}

func TestConcurrentMetricUpdates(t *testing.T) {
	r := NewRegistry()
	res := convertCube(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.RecordConversion(res, time.Millisecond)
			}
		}()
	}
	wg.Wait()

	if got := counterValue(t, r.ConversionsTotal.WithLabelValues(StatusSuccess)); got != 1000 {
		t.Errorf("Counter = %v, want 1000", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	r := NewRegistry()
	r.RecordConversion(convertCube(t), 10*time.Millisecond)

	path := filepath.Join(t.TempDir(), "meshline.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, `meshline_conversions_total{status="success"} 1`) {
		t.Errorf("textfile missing conversion counter:\n%s", text)
	}
	if !strings.Contains(text, "meshline_triangles_processed_total 12") {
		t.Errorf("textfile missing triangle counter:\n%s", text)
	}
}

func TestWriteTextfile_BadPath(t *testing.T) {
	r := NewRegistry()
	path := filepath.Join(t.TempDir(), "missing", "meshline.prom")
	if err := r.WriteTextfile(path); err == nil {
		t.Error("WriteTextfile() into a missing directory should fail")
	}
}

func TestMetricNaming(t *testing.T) {
	r := NewRegistry()
	r.RecordConversion(convertCube(t), time.Millisecond)
	r.RecordBatch(1, 0, 0, time.Second)

	metrics, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	for _, m := range metrics {
		name := m.GetName()
		if !strings.HasPrefix(name, "meshline_") {
			t.Errorf("Metric %s does not have meshline_ prefix", name)
		}
	}
}

func BenchmarkRecordConversion(b *testing.B) {
	r := NewRegistry()
	res := convertCube(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.RecordConversion(res, time.Millisecond)
	}
}
