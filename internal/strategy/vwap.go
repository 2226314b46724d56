package strategy

import (
	"github.com/quantumflow/quantumflow/internal/book"
	"github.com/quantumflow/quantumflow/internal/trade"
)

// VWAPExecutor schedules execution against a volume-profile curve over a
// fixed time horizon, advanced explicitly via AdvanceTime.
type VWAPExecutor struct {
	TotalQuantity  uint64
	HorizonMs      uint64
	VolumeProfile  []float64

	executed  uint64
	elapsedMs uint64
}

// NewVWAPExecutor builds the strategy. An empty profile defaults to a
// uniform distribution across one-second slices of horizonMs.
func NewVWAPExecutor(totalQuantity, horizonMs uint64, profile []float64) *VWAPExecutor {
	if len(profile) == 0 {
		slices := horizonMs / 1000
		if slices == 0 {
			slices = 1
		}
		profile = make([]float64, slices)
		frac := 1.0 / float64(slices)
		for i := range profile {
			profile[i] = frac
		}
	}
	return &VWAPExecutor{TotalQuantity: totalQuantity, HorizonMs: horizonMs, VolumeProfile: profile}
}

func (s *VWAPExecutor) Name() string { return "VWAPExecutor" }

// AdvanceTime moves the strategy's internal clock forward by deltaMs.
func (s *VWAPExecutor) AdvanceTime(deltaMs uint64) { s.elapsedMs += deltaMs }

func (s *VWAPExecutor) Evaluate(_ book.Snapshot, _ []trade.Info) Kind {
	if s.TotalQuantity == 0 || s.executed >= s.TotalQuantity {
		return Neutral
	}

	currentSlice := s.elapsedMs / 1000
	if currentSlice >= uint64(len(s.VolumeProfile)) {
		return Neutral
	}

	var fraction float64
	for i := uint64(0); i <= currentSlice; i++ {
		fraction += s.VolumeProfile[i]
	}
	target := uint64(float64(s.TotalQuantity) * fraction)

	if s.executed < target {
		return Buy
	}
	return Neutral
}

func (s *VWAPExecutor) Confidence(_ book.Snapshot, _ []trade.Info, k Kind) float64 {
	return defaultConfidence(k)
}

func (s *VWAPExecutor) OnTrade(t trade.Info) {
	s.executed += t.Quantity
}

func (s *VWAPExecutor) Reset() {
	s.executed = 0
	s.elapsedMs = 0
}
