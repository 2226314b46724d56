package strategy

import (
	"math"

	"github.com/quantumflow/quantumflow/internal/book"
	"github.com/quantumflow/quantumflow/internal/trade"
)

// PairsTrading signals on the z-score of a two-instrument spread
// (price1 - beta*price2) against its own rolling window.
type PairsTrading struct {
	Beta        float64
	Window      int
	ZThreshold  float64

	spreadHistory []float64
}

// NewPairsTrading builds the strategy with the given hedge ratio, window
// size, and z-score threshold.
func NewPairsTrading(beta float64, window int, zThreshold float64) *PairsTrading {
	return &PairsTrading{Beta: beta, Window: window, ZThreshold: zThreshold}
}

func (s *PairsTrading) Name() string { return "PairsTrading" }

// UpdatePrices pushes a new spread sample computed from the pair's
// current prices.
func (s *PairsTrading) UpdatePrices(price1, price2 float64) {
	spread := price1 - s.Beta*price2
	s.spreadHistory = append(s.spreadHistory, spread)
	if len(s.spreadHistory) > s.Window {
		s.spreadHistory = s.spreadHistory[len(s.spreadHistory)-s.Window:]
	}
}

func (s *PairsTrading) Evaluate(_ book.Snapshot, _ []trade.Info) Kind {
	if len(s.spreadHistory) < s.Window {
		return Neutral
	}

	var sum float64
	for _, v := range s.spreadHistory {
		sum += v
	}
	mean := sum / float64(len(s.spreadHistory))

	var sqSum float64
	for _, v := range s.spreadHistory {
		d := v - mean
		sqSum += d * d
	}
	stddev := math.Sqrt(sqSum / float64(len(s.spreadHistory)))
	if stddev < 1e-12 {
		return Neutral
	}

	current := s.spreadHistory[len(s.spreadHistory)-1]
	z := (current - mean) / stddev

	if z > s.ZThreshold {
		return ShortPair
	}
	if z < -s.ZThreshold {
		return LongPair
	}
	return Neutral
}

func (s *PairsTrading) Confidence(_ book.Snapshot, _ []trade.Info, k Kind) float64 {
	return defaultConfidence(k)
}

func (s *PairsTrading) OnTrade(trade.Info) {}

func (s *PairsTrading) Reset() { s.spreadHistory = nil }
