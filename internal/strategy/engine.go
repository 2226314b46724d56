package strategy

import (
	"go.uber.org/zap"

	"github.com/quantumflow/quantumflow/internal/book"
	"github.com/quantumflow/quantumflow/internal/trade"
)

// Engine holds an ordered set of strategies and evaluates all of them
// against the current book state on every tick.
type Engine struct {
	log        *zap.Logger
	strategies []Strategy
	latest     map[string]Signal
}

// NewEngine builds an Engine. log may be zap.NewNop() in tests.
func NewEngine(log *zap.Logger) *Engine {
	return &Engine{
		log:    log,
		latest: make(map[string]Signal),
	}
}

// AddStrategy appends strategy to the evaluation order. Strategies are
// never removed.
func (e *Engine) AddStrategy(s Strategy) {
	e.strategies = append(e.strategies, s)
}

// Evaluate runs every strategy, in insertion order, against snapshot and
// recentTrades, recording and returning one Signal per strategy.
func (e *Engine) Evaluate(snapshot book.Snapshot, recentTrades []trade.Info, nowNs uint64) []Signal {
	out := make([]Signal, 0, len(e.strategies))
	for _, s := range e.strategies {
		kind := s.Evaluate(snapshot, recentTrades)
		sig := Signal{
			StrategyName: s.Name(),
			Symbol:       snapshot.Symbol,
			Kind:         kind,
			Confidence:   s.Confidence(snapshot, recentTrades, kind),
			TimestampNs:  nowNs,
		}
		e.latest[s.Name()] = sig
		out = append(out, sig)

		if kind != Neutral && e.log != nil {
			e.log.Debug("strategy signal",
				zap.String("strategy", s.Name()),
				zap.String("symbol", sig.Symbol),
				zap.String("kind", kind.String()),
				zap.Float64("confidence", sig.Confidence),
			)
		}
	}
	return out
}

// OnTrade forwards t to every registered strategy.
func (e *Engine) OnTrade(t trade.Info) {
	for _, s := range e.strategies {
		s.OnTrade(t)
	}
}

// LatestSignal returns the most recent Signal recorded for name, if any.
func (e *Engine) LatestSignal(name string) (Signal, bool) {
	sig, ok := e.latest[name]
	return sig, ok
}

// AllSignals returns a copy of the latest-signal-per-strategy mapping.
func (e *Engine) AllSignals() map[string]Signal {
	out := make(map[string]Signal, len(e.latest))
	for k, v := range e.latest {
		out[k] = v
	}
	return out
}
