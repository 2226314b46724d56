package strategy

import (
	"github.com/quantumflow/quantumflow/internal/book"
	"github.com/quantumflow/quantumflow/internal/trade"
)

// FundingArbitrage signals on perpetual-future funding rate crossing a
// threshold, blending a funding-excess score with a spot/perp basis score
// for its confidence.
type FundingArbitrage struct {
	Threshold float64

	fundingRate float64
	spotPrice   float64
	perpPrice   float64
}

// NewFundingArbitrage builds the strategy with the given funding-rate
// threshold.
func NewFundingArbitrage(threshold float64) *FundingArbitrage {
	return &FundingArbitrage{Threshold: threshold}
}

func (s *FundingArbitrage) Name() string { return "FundingArbitrage" }

// SetFundingRate updates the externally observed funding rate.
func (s *FundingArbitrage) SetFundingRate(rate float64) { s.fundingRate = rate }

// SetSpotPrice updates the externally observed spot price.
func (s *FundingArbitrage) SetSpotPrice(price float64) { s.spotPrice = price }

// SetPerpPrice updates the externally observed perpetual price.
func (s *FundingArbitrage) SetPerpPrice(price float64) { s.perpPrice = price }

func (s *FundingArbitrage) Evaluate(_ book.Snapshot, _ []trade.Info) Kind {
	if s.fundingRate > s.Threshold {
		return LongSpotShortPerp
	}
	if s.fundingRate < -s.Threshold {
		return ShortSpotLongPerp
	}
	return Neutral
}

func (s *FundingArbitrage) Confidence(_ book.Snapshot, _ []trade.Info, k Kind) float64 {
	if k == Neutral || s.Threshold < 1e-9 {
		return defaultConfidence(k)
	}

	fundingScore := clamp((absFloat(s.fundingRate)-s.Threshold)/s.Threshold, 0, 1)

	var basisScore float64
	if s.spotPrice > 1e-9 {
		basis := absFloat(s.perpPrice-s.spotPrice) / s.spotPrice
		basisScore = clamp(basis/0.01, 0, 1)
	}

	return clamp(0.7*fundingScore+0.3*basisScore, 0, 1)
}

func (s *FundingArbitrage) OnTrade(trade.Info) {}

func (s *FundingArbitrage) Reset() {
	s.fundingRate = 0
	s.spotPrice = 0
	s.perpPrice = 0
}
