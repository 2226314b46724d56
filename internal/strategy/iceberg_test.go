package strategy

import (
	"testing"

	"github.com/quantumflow/quantumflow/internal/book"
	"github.com/quantumflow/quantumflow/internal/trade"
)

func TestLiquidityDetectorBidIceberg(t *testing.T) {
	s := NewLiquidityDetector(3, 100, 0.01)
	snap := book.Snapshot{
		Bids:    []book.PriceLevel{{Price: 100, Quantity: 10}},
		BestBid: 100,
		BestAsk: 101,
	}

	var trades []trade.Info
	for i := 0; i < 5; i++ {
		trades = append(trades, trade.Info{Price: 100, Quantity: 50})
	}

	if got := s.Evaluate(snap, trades); got != Buy {
		t.Fatalf("got %v, want BUY", got)
	}
}

func TestLiquidityDetectorNeutralWithoutTrades(t *testing.T) {
	s := NewLiquidityDetector(3, 100, 0.01)
	snap := book.Snapshot{Bids: []book.PriceLevel{{Price: 100, Quantity: 10}}}
	if got := s.Evaluate(snap, nil); got != Neutral {
		t.Fatalf("got %v, want NEUTRAL", got)
	}
}
