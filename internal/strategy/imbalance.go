package strategy

import (
	"github.com/quantumflow/quantumflow/internal/book"
	"github.com/quantumflow/quantumflow/internal/trade"
)

// OrderBookImbalance signals on the skew between top-of-book bid and ask
// depth.
type OrderBookImbalance struct {
	TopN      int
	Threshold float64
}

// NewOrderBookImbalance builds the strategy with the given top-N depth and
// imbalance threshold.
func NewOrderBookImbalance(topN int, threshold float64) *OrderBookImbalance {
	return &OrderBookImbalance{TopN: topN, Threshold: threshold}
}

func (s *OrderBookImbalance) Name() string { return "OrderBookImbalance" }

func (s *OrderBookImbalance) imbalance(snapshot book.Snapshot) float64 {
	var bidVol, askVol float64
	for i := 0; i < s.TopN && i < len(snapshot.Bids); i++ {
		bidVol += float64(snapshot.Bids[i].Quantity)
	}
	for i := 0; i < s.TopN && i < len(snapshot.Asks); i++ {
		askVol += float64(snapshot.Asks[i].Quantity)
	}
	total := bidVol + askVol
	if total < 1e-9 {
		return 0
	}
	return (bidVol - askVol) / total
}

func (s *OrderBookImbalance) Evaluate(snapshot book.Snapshot, _ []trade.Info) Kind {
	imb := s.imbalance(snapshot)
	if imb > s.Threshold {
		return Buy
	}
	if imb < -s.Threshold {
		return Sell
	}
	return Neutral
}

func (s *OrderBookImbalance) Confidence(snapshot book.Snapshot, _ []trade.Info, k Kind) float64 {
	if k == Neutral || s.Threshold < 1e-9 {
		return defaultConfidence(k)
	}
	imb := s.imbalance(snapshot)
	return clamp((absFloat(imb)-s.Threshold)/s.Threshold, 0, 1)
}

func (s *OrderBookImbalance) OnTrade(trade.Info) {}

func (s *OrderBookImbalance) Reset() {}

func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
