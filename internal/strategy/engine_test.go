package strategy

import (
	"testing"

	"go.uber.org/zap"

	"github.com/quantumflow/quantumflow/internal/book"
	"github.com/quantumflow/quantumflow/internal/trade"
)

// stubStrategy lets engine tests control exactly what a strategy returns.
type stubStrategy struct {
	name string
	kind Kind
}

func (s *stubStrategy) Name() string { return s.name }
func (s *stubStrategy) Evaluate(book.Snapshot, []trade.Info) Kind { return s.kind }
func (s *stubStrategy) Confidence(book.Snapshot, []trade.Info, Kind) float64 {
	return defaultConfidence(s.kind)
}
func (s *stubStrategy) OnTrade(trade.Info) {}
func (s *stubStrategy) Reset()            {}

func TestEngineEvaluateOrderAndOverwrite(t *testing.T) {
	e := NewEngine(zap.NewNop())
	e.AddStrategy(&stubStrategy{name: "A", kind: Buy})
	e.AddStrategy(&stubStrategy{name: "B", kind: Neutral})

	snap := book.Snapshot{Symbol: "BTC"}
	out := e.Evaluate(snap, nil, 100)
	if len(out) != 2 || out[0].StrategyName != "A" || out[1].StrategyName != "B" {
		t.Fatalf("evaluate order wrong: %+v", out)
	}

	sig, ok := e.LatestSignal("A")
	if !ok || sig.Kind != Buy {
		t.Fatalf("latest signal for A = %+v, ok=%v", sig, ok)
	}

	// Re-evaluate should overwrite, not accumulate.
	e.Evaluate(snap, nil, 200)
	all := e.AllSignals()
	if len(all) != 2 {
		t.Fatalf("expected 2 latest signals, got %d", len(all))
	}
}

type countingStrategy struct {
	trades int
}

func (s *countingStrategy) Name() string                                 { return "Counter" }
func (s *countingStrategy) Evaluate(book.Snapshot, []trade.Info) Kind    { return Neutral }
func (s *countingStrategy) Confidence(book.Snapshot, []trade.Info, Kind) float64 { return 0 }
func (s *countingStrategy) OnTrade(trade.Info)                           { s.trades++ }
func (s *countingStrategy) Reset()                                       {}

func TestEngineOnTradeForwardsToAll(t *testing.T) {
	e := NewEngine(zap.NewNop())
	c1 := &countingStrategy{}
	c2 := &countingStrategy{}
	e.AddStrategy(c1)
	e.AddStrategy(c2)

	e.OnTrade(trade.Info{Quantity: 10})
	if c1.trades != 1 || c2.trades != 1 {
		t.Fatalf("expected both strategies to observe the trade, got %d/%d", c1.trades, c2.trades)
	}
}
