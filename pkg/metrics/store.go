package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics covers snapshot persistence and the order/coin flows.
type StoreMetrics struct {
	snapshotFallbacks *prometheus.CounterVec
	snapshotWrites    *prometheus.CounterVec
	snapshotWriteDur  *prometheus.HistogramVec
	ordersPlaced      prometheus.Counter
	orderValue        prometheus.Histogram
	coinsGranted      *prometheus.CounterVec
	coinsRedeemed     prometheus.Counter
}

// NewStoreMetrics registers the store metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}
	m := &StoreMetrics{
		snapshotFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "snapshot_fallbacks_total",
			Help: "Snapshot loads that fell back to defaults.",
		}, []string{"key", "reason"}),
		snapshotWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "snapshot_writes_total",
			Help: "Snapshot writes by outcome.",
		}, []string{"key", "outcome"}),
		snapshotWriteDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "snapshot_write_duration_seconds",
			Help:    "Duration of snapshot writes in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"key"}),
		ordersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Orders placed through checkout.",
		}),
		orderValue: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "order_total_bdt",
			Help:    "Order totals in base currency.",
			Buckets: prometheus.ExponentialBuckets(500, 2, 12),
		}),
		coinsGranted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "coins_granted_total",
			Help: "Coins credited to wallets by source.",
		}, []string{"source"}),
		coinsRedeemed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "coins_redeemed_total",
			Help: "Coins spent at checkout.",
		}),
	}
	reg.MustRegister(m.snapshotFallbacks, m.snapshotWrites, m.snapshotWriteDur,
		m.ordersPlaced, m.orderValue, m.coinsGranted, m.coinsRedeemed)
	return m
}

// IncSnapshotFallback counts a load that returned the fallback value.
func (m *StoreMetrics) IncSnapshotFallback(key, reason string) {
	if m == nil || m.snapshotFallbacks == nil {
		return
	}
	m.snapshotFallbacks.WithLabelValues(normalizeLabel(key), normalizeLabel(reason)).Inc()
}

// ObserveSnapshotWrite records one write attempt.
func (m *StoreMetrics) ObserveSnapshotWrite(key string, duration time.Duration, err error) {
	if m == nil || m.snapshotWrites == nil {
		return
	}
	key = normalizeLabel(key)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.snapshotWrites.WithLabelValues(key, outcome).Inc()
	m.snapshotWriteDur.WithLabelValues(key).Observe(duration.Seconds())
}

// ObserveOrder records a placed order and the coins it consumed.
func (m *StoreMetrics) ObserveOrder(total float64, coinsUsed int64) {
	if m == nil || m.ordersPlaced == nil {
		return
	}
	m.ordersPlaced.Inc()
	m.orderValue.Observe(total)
	if coinsUsed > 0 {
		m.coinsRedeemed.Add(float64(coinsUsed))
	}
}

// AddCoinsGranted counts coins credited from source (checkin, mission, product, purchase).
func (m *StoreMetrics) AddCoinsGranted(source string, amount int64) {
	if m == nil || m.coinsGranted == nil || amount <= 0 {
		return
	}
	m.coinsGranted.WithLabelValues(normalizeLabel(source)).Add(float64(amount))
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
