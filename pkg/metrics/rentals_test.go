package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestRentalMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewRentalMetrics(reg)
	metrics.ObserveDuration(OpCheckout, 250*time.Millisecond)
	metrics.IncOutcome(OpCheckout, "ok")
	metrics.IncOutcome(OpCheckout, "OUT_OF_STOCK")
	metrics.IncOutcome(OpCheckout, "OUT_OF_STOCK")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "rental_operations_total", "outcome", "OUT_OF_STOCK"); err != nil {
		t.Fatalf("fetch outcome: %v", err)
	} else if got != 2 {
		t.Fatalf("expected out of stock=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "rental_operations_total", "outcome", "ok"); err != nil {
		t.Fatalf("fetch outcome: %v", err)
	} else if got != 1 {
		t.Fatalf("expected ok=1, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "rental_operation_duration_seconds", "operation", OpCheckout); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestRentalMetricsNilSafe(t *testing.T) {
	var metrics *RentalMetrics
	metrics.ObserveDuration(OpReturn, time.Second)
	metrics.IncOutcome(OpReturn, "ok")

	NewRentalMetrics(nil).IncOutcome(OpReturn, "ok")
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
