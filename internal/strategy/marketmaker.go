package strategy

import (
	"github.com/quantumflow/quantumflow/internal/book"
	"github.com/quantumflow/quantumflow/internal/trade"
	"github.com/quantumflow/quantumflow/internal/wire"
)

// MarketMaker tracks its own fill inventory and signals to flatten it back
// toward zero, also exposing a quote generator around the current mid.
type MarketMaker struct {
	MaxInventory float64
	BaseSpread   float64

	inventory float64
}

// NewMarketMaker builds the strategy with the given inventory cap and base
// spread (fraction of mid price).
func NewMarketMaker(maxInventory, baseSpread float64) *MarketMaker {
	return &MarketMaker{MaxInventory: maxInventory, BaseSpread: baseSpread}
}

func (s *MarketMaker) Name() string { return "MarketMaker" }

func (s *MarketMaker) ratio() float64 {
	if s.MaxInventory < 1e-9 {
		return 0
	}
	return s.inventory / s.MaxInventory
}

func (s *MarketMaker) Evaluate(snapshot book.Snapshot, _ []trade.Info) Kind {
	if snapshot.MidPrice <= 0 {
		return Neutral
	}
	r := s.ratio()
	if r > 0.5 {
		return Sell
	}
	if r < -0.5 {
		return Buy
	}
	return Neutral
}

func (s *MarketMaker) Confidence(_ book.Snapshot, _ []trade.Info, k Kind) float64 {
	return defaultConfidence(k)
}

func (s *MarketMaker) OnTrade(t trade.Info) {
	if t.Side == wire.Buy {
		s.inventory += float64(t.Quantity)
	} else {
		s.inventory -= float64(t.Quantity)
	}
}

func (s *MarketMaker) Reset() { s.inventory = 0 }

// GenerateQuotes returns a (bid, ask) pair skewed by current inventory
// around mid.
func (s *MarketMaker) GenerateQuotes(mid float64) (bid, ask float64) {
	r := s.ratio()
	skew := r * 0.001
	halfSpread := mid * s.BaseSpread / 2
	bid = mid - halfSpread - skew
	ask = mid + halfSpread - skew
	return bid, ask
}
