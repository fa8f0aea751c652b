package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusSink implements MetricsSink over a prometheus registry
type PrometheusSink struct {
	acceptances        *prometheus.CounterVec
	settlementDuration prometheus.Histogram
	settlementFailures *prometheus.CounterVec
	criticalRollbacks  prometheus.Counter
	auctionsClosed     prometheus.Counter
	proposalsSubmitted *prometheus.CounterVec
}

// NewPrometheusSink creates a sink and registers its collectors on the given
// registry
func NewPrometheusSink(reg prometheus.Registerer) *PrometheusSink {
	s := &PrometheusSink{
		acceptances: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bookingswap",
			Name:      "acceptances_total",
			Help:      "Proposal acceptance resolutions by outcome.",
		}, []string{"outcome"}),
		settlementDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bookingswap",
			Name:      "settlement_duration_seconds",
			Help:      "Wall time of successful settlement sagas.",
			Buckets:   prometheus.DefBuckets,
		}),
		settlementFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bookingswap",
			Name:      "settlement_failures_total",
			Help:      "Settlement saga failures by stage.",
		}, []string{"stage"}),
		criticalRollbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bookingswap",
			Name:      "critical_rollback_failures_total",
			Help:      "Settlements left needing manual reconciliation.",
		}),
		auctionsClosed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bookingswap",
			Name:      "auctions_closed_total",
			Help:      "Auctions transitioned from open to ended.",
		}),
		proposalsSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bookingswap",
			Name:      "auction_proposals_total",
			Help:      "Auction proposals submitted by type.",
		}, []string{"type"}),
	}

	reg.MustRegister(
		s.acceptances,
		s.settlementDuration,
		s.settlementFailures,
		s.criticalRollbacks,
		s.auctionsClosed,
		s.proposalsSubmitted,
	)

	return s
}

func (s *PrometheusSink) AcceptanceResolved(outcome string) {
	s.acceptances.WithLabelValues(outcome).Inc()
}

func (s *PrometheusSink) SettlementCompleted(duration time.Duration) {
	s.settlementDuration.Observe(duration.Seconds())
}

func (s *PrometheusSink) SettlementFailed(stage string) {
	s.settlementFailures.WithLabelValues(stage).Inc()
}

func (s *PrometheusSink) CriticalRollbackFailure() {
	s.criticalRollbacks.Inc()
}

func (s *PrometheusSink) AuctionClosed(count int) {
	s.auctionsClosed.Add(float64(count))
}

func (s *PrometheusSink) ProposalSubmitted(proposalType string) {
	s.proposalsSubmitted.WithLabelValues(proposalType).Inc()
}

var _ MetricsSink = (*PrometheusSink)(nil)
