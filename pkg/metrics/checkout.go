package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records reconciliation and selection-sync activity.
type CheckoutMetrics struct {
	reconcileDuration *prometheus.HistogramVec
	addonFee          *prometheus.GaugeVec
	selectionUpdates  *prometheus.CounterVec
	staleUpdates      *prometheus.CounterVec
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	reconcileDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_reconcile_duration_seconds",
		Help:    "Duration of add-on fee reconciliation passes.",
		Buckets: prometheus.DefBuckets,
	}, []string{"trigger"})
	addonFee := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "checkout_addon_fee_dollars",
		Help: "Last reconciled add-on fee per trigger.",
	}, []string{"trigger"})
	selectionUpdates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_selection_updates",
		Help: "Selection snapshot replacements applied to the session store.",
	}, []string{"outcome"})
	staleUpdates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_selection_stale_discards",
		Help: "Selection updates discarded because a newer sequence was stored.",
	}, []string{"outcome"})
	reg.MustRegister(reconcileDuration, addonFee, selectionUpdates, staleUpdates)
	return &CheckoutMetrics{
		reconcileDuration: reconcileDuration,
		addonFee:          addonFee,
		selectionUpdates:  selectionUpdates,
		staleUpdates:      staleUpdates,
	}
}

// ObserveReconcile records the duration and resulting fee of one pass.
func (c *CheckoutMetrics) ObserveReconcile(trigger string, duration time.Duration, fee float64) {
	if c == nil || c.reconcileDuration == nil {
		return
	}
	label := normalizeLabel(trigger)
	c.reconcileDuration.WithLabelValues(label).Observe(duration.Seconds())
	c.addonFee.WithLabelValues(label).Set(fee)
}

// IncSelectionUpdate counts one applied snapshot replacement.
func (c *CheckoutMetrics) IncSelectionUpdate(outcome string) {
	if c == nil || c.selectionUpdates == nil {
		return
	}
	c.selectionUpdates.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncStaleDiscard counts one stale snapshot discarded by the sequence guard.
func (c *CheckoutMetrics) IncStaleDiscard(outcome string) {
	if c == nil || c.staleUpdates == nil {
		return
	}
	c.staleUpdates.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
