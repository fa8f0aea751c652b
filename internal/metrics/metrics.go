// Package metrics defines the MetricsSink consumed by the service layer.
// Components receive a sink by injection rather than reaching for a global,
// so tests can substitute the no-op implementation.
package metrics

import "time"

// MetricsSink receives operational measurements from the core services
type MetricsSink interface {
	AcceptanceResolved(outcome string)
	SettlementCompleted(duration time.Duration)
	SettlementFailed(stage string)
	CriticalRollbackFailure()
	AuctionClosed(count int)
	ProposalSubmitted(proposalType string)
}

// Acceptance outcomes reported through AcceptanceResolved
const (
	OutcomeAccepted     = "accepted"
	OutcomeRejected     = "rejected"
	OutcomeRaceLost     = "race_lost"
	OutcomeExpired      = "expired"
	OutcomeSettleFailed = "settlement_failed"
)

// Noop is a MetricsSink that discards everything. Default for tests.
type Noop struct{}

func (Noop) AcceptanceResolved(string) {}

func (Noop) SettlementCompleted(time.Duration) {}

func (Noop) SettlementFailed(string) {}

func (Noop) CriticalRollbackFailure() {}

func (Noop) AuctionClosed(int) {}

func (Noop) ProposalSubmitted(string) {}

var _ MetricsSink = Noop{}
