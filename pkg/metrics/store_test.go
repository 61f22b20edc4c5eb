package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestStoreMetricsExportsSnapshotCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewStoreMetrics(reg)

	m.IncSnapshotFallback("db_products", "decode")
	m.IncSnapshotFallback("db_products", "decode")
	m.ObserveSnapshotWrite("cart", 5*time.Millisecond, nil)
	m.ObserveSnapshotWrite("cart", 5*time.Millisecond, errors.New("down"))

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "snapshot_fallbacks_total", "reason", "decode"); err != nil {
		t.Fatalf("fetch fallbacks: %v", err)
	} else if got != 2 {
		t.Fatalf("expected fallbacks=2, got %f", got)
	}
	if got, err := fetchCounterValue(mfs, "snapshot_writes_total", "outcome", "error"); err != nil {
		t.Fatalf("fetch writes: %v", err)
	} else if got != 1 {
		t.Fatalf("expected failed writes=1, got %f", got)
	}
	if got, err := fetchHistogramSum(mfs, "snapshot_write_duration_seconds", "key", "cart"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestStoreMetricsOrdersAndCoins(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewStoreMetrics(reg)

	m.ObserveOrder(11995, 500)
	m.AddCoinsGranted("checkin", 200)
	m.AddCoinsGranted("checkin", 0)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got := findMetricFamily(mfs, "orders_placed_total"); got == nil || got.GetMetric()[0].GetCounter().GetValue() != 1 {
		t.Fatalf("expected one order, got %v", got)
	}
	if got := findMetricFamily(mfs, "coins_redeemed_total"); got == nil || got.GetMetric()[0].GetCounter().GetValue() != 500 {
		t.Fatalf("expected 500 redeemed coins, got %v", got)
	}
	if got, err := fetchCounterValue(mfs, "coins_granted_total", "source", "checkin"); err != nil || got != 200 {
		t.Fatalf("expected 200 checkin coins, got %f err=%v", got, err)
	}
}

func TestStoreMetricsNilSafe(t *testing.T) {
	var m *StoreMetrics
	m.IncSnapshotFallback("k", "r")
	m.ObserveSnapshotWrite("k", time.Millisecond, nil)
	m.ObserveOrder(1, 1)
	m.AddCoinsGranted("x", 1)

	NewStoreMetrics(nil).ObserveOrder(1, 1)
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
