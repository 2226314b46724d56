// Package strategy implements the shared strategy contract, the ordered
// strategy engine that drives them each tick, and the concrete signal
// strategies themselves.
package strategy

import (
	"github.com/quantumflow/quantumflow/internal/book"
	"github.com/quantumflow/quantumflow/internal/trade"
)

// Strategy is the shared contract every concrete strategy satisfies.
// Evaluation must be deterministic given the strategy's current state.
type Strategy interface {
	Name() string
	Evaluate(snapshot book.Snapshot, recentTrades []trade.Info) Kind
	Confidence(snapshot book.Snapshot, recentTrades []trade.Info, k Kind) float64
	OnTrade(t trade.Info)
	Reset()
}

// clamp restricts x to [lo, hi].
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// defaultConfidence is the placeholder confidence for strategies that
// don't override scoring: 0 for NEUTRAL, 0.5 otherwise.
func defaultConfidence(k Kind) float64 {
	if k == Neutral {
		return 0
	}
	return 0.5
}
