package strategy

import (
	"github.com/quantumflow/quantumflow/internal/book"
	"github.com/quantumflow/quantumflow/internal/trade"
)

// MomentumStrategy signals on the return between the oldest and newest
// mid-price in a bounded rolling window.
type MomentumStrategy struct {
	Window    int
	Threshold float64

	history []float64
}

// NewMomentumStrategy builds the strategy with the given window size and
// return threshold.
func NewMomentumStrategy(window int, threshold float64) *MomentumStrategy {
	return &MomentumStrategy{Window: window, Threshold: threshold}
}

func (s *MomentumStrategy) Name() string { return "Momentum" }

func (s *MomentumStrategy) Evaluate(snapshot book.Snapshot, _ []trade.Info) Kind {
	if snapshot.MidPrice <= 0 {
		return Neutral
	}

	s.history = append(s.history, snapshot.MidPrice)
	if len(s.history) > s.Window {
		s.history = s.history[len(s.history)-s.Window:]
	}
	if len(s.history) < 2 {
		return Neutral
	}

	first, last := s.history[0], s.history[len(s.history)-1]
	if first < 1e-9 {
		return Neutral
	}
	r := (last - first) / first

	if r > s.Threshold {
		return Buy
	}
	if r < -s.Threshold {
		return Sell
	}
	return Neutral
}

func (s *MomentumStrategy) Confidence(_ book.Snapshot, _ []trade.Info, k Kind) float64 {
	return defaultConfidence(k)
}

func (s *MomentumStrategy) OnTrade(trade.Info) {}

func (s *MomentumStrategy) Reset() { s.history = nil }
