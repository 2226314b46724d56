package strategy

import (
	"github.com/quantumflow/quantumflow/internal/book"
	"github.com/quantumflow/quantumflow/internal/trade"
)

// LiquidityDetector infers hidden (iceberg) liquidity from repeated small
// trades clustered at the top of either side of the book.
type LiquidityDetector struct {
	MinFills       int
	MinVolume      uint64
	PriceTolerance float64
}

// NewLiquidityDetector builds the strategy with the given detection
// thresholds.
func NewLiquidityDetector(minFills int, minVolume uint64, priceTolerance float64) *LiquidityDetector {
	return &LiquidityDetector{MinFills: minFills, MinVolume: minVolume, PriceTolerance: priceTolerance}
}

func (s *LiquidityDetector) Name() string { return "LiquidityDetector" }

// strength computes min(fills/min_fills, volume/min_volume) for trades
// clustered within PriceTolerance of priceLevel.
func (s *LiquidityDetector) strength(trades []trade.Info, priceLevel float64) float64 {
	var fills int
	var volume uint64
	for _, t := range trades {
		if absFloat(t.Price-priceLevel) < s.PriceTolerance {
			fills++
			volume += t.Quantity
		}
	}
	fillRatio := float64(fills) / float64(s.MinFills)
	volRatio := float64(volume) / float64(s.MinVolume)
	if fillRatio < volRatio {
		return fillRatio
	}
	return volRatio
}

func (s *LiquidityDetector) Evaluate(snapshot book.Snapshot, recentTrades []trade.Info) Kind {
	if len(recentTrades) == 0 || len(snapshot.Bids) == 0 {
		return Neutral
	}

	icebergBid := s.strength(recentTrades, snapshot.BestBid) > 1
	icebergAsk := s.strength(recentTrades, snapshot.BestAsk) > 1

	if icebergBid && !icebergAsk {
		return Buy
	}
	if icebergAsk && !icebergBid {
		return Sell
	}
	return Neutral
}

func (s *LiquidityDetector) Confidence(_ book.Snapshot, _ []trade.Info, k Kind) float64 {
	return defaultConfidence(k)
}

func (s *LiquidityDetector) OnTrade(trade.Info) {}

func (s *LiquidityDetector) Reset() {}
