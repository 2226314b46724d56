// Package pipeline wires the ring, the ingress endpoint, the per-symbol
// order books, and the strategy engine into the single-threaded hot loop
// at the center of the service.
package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/quantumflow/quantumflow/internal/book"
	"github.com/quantumflow/quantumflow/internal/ingress"
	"github.com/quantumflow/quantumflow/internal/price"
	"github.com/quantumflow/quantumflow/internal/ring"
	"github.com/quantumflow/quantumflow/internal/strategy"
	"github.com/quantumflow/quantumflow/internal/trade"
	"github.com/quantumflow/quantumflow/internal/wire"
)

// MaxDrainPerFrame bounds, per Tick, the combined number of packets pulled
// from the ring and from the ingress endpoint.
const MaxDrainPerFrame = 256

// maxTrades and trimmedTrades implement the rolling-trade-buffer cap: once
// a symbol's buffer reaches maxTrades entries it is trimmed down to the
// most recent trimmedTrades.
const (
	maxTrades     = 1000
	trimmedTrades = 500
)

// idleSleep is how long Run sleeps after a Tick that drained nothing.
const idleSleep = 100 * time.Microsecond

// Loop is the single-threaded hot path: drain, dispatch, snapshot,
// evaluate. Loop does no internal locking: Run, Tick and the accessors
// are meant to be called from one goroutine.
type Loop struct {
	log *zap.Logger

	ring     *ring.Ring
	endpoint *ingress.Endpoint

	prices *price.Registry
	engine *strategy.Engine

	books         map[string]*book.Book
	trades        map[string][]trade.Info
	activeSymbol  string
	defaultSymbol string

	nextAutoID uint64

	latestPythonToCppUS int64
}

// New builds a Loop around r (required), ep (optional — nil disables the
// datagram path and the loop runs on the ring alone), a price registry, a
// strategy engine, and the symbol treated as active before any packet has
// arrived.
func New(log *zap.Logger, r *ring.Ring, ep *ingress.Endpoint, prices *price.Registry, engine *strategy.Engine, defaultSymbol string) *Loop {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loop{
		log:           log,
		ring:          r,
		endpoint:      ep,
		prices:        prices,
		engine:        engine,
		books:         make(map[string]*book.Book),
		trades:        make(map[string][]trade.Info),
		activeSymbol:  defaultSymbol,
		defaultSymbol: defaultSymbol,
	}
}

// bookFor returns symbol's book, creating it (and logging at debug level)
// on first reference.
func (l *Loop) bookFor(symbol string) *book.Book {
	b, ok := l.books[symbol]
	if !ok {
		b = book.New(symbol)
		l.books[symbol] = b
		l.log.Debug("book auto-created", zap.String("symbol", symbol))
	}
	return b
}

// recordTrade appends t to symbol's rolling buffer, trimming to
// trimmedTrades once it reaches maxTrades, and forwards it to the
// strategy engine.
func (l *Loop) recordTrade(symbol string, t trade.Info) {
	buf := append(l.trades[symbol], t)
	if len(buf) >= maxTrades {
		buf = append([]trade.Info{}, buf[len(buf)-trimmedTrades:]...)
	}
	l.trades[symbol] = buf
	l.engine.OnTrade(t)
}

// dispatch applies one decoded packet to the pipeline's state, per the
// event-type-0/event-type-1 contract. Event-type-0 packets are
// synthesized into a taker order against the named book — deliberately,
// not idempotently, per documented behavior (see DESIGN.md).
func (l *Loop) dispatch(p wire.MarketDataPacket, nowNs uint64) {
	if p.Empty() {
		return
	}

	l.activeSymbol = p.Symbol
	if p.TimestampNs <= nowNs {
		l.latestPythonToCppUS = int64((nowNs - p.TimestampNs) / 1000)
	}

	conv := l.prices.Get(p.Symbol)

	switch p.EventType {
	case wire.EventTrade:
		l.recordTrade(p.Symbol, trade.Info{
			Price:       p.Price,
			Quantity:    p.Quantity,
			Side:        p.Side,
			TimestampNs: p.TimestampNs,
		})

	default: // wire.EventBookLevel and any unrecognized value
		b := l.bookFor(p.Symbol)
		l.nextAutoID++

		side := book.BuySide
		if p.Side == wire.Sell {
			side = book.SellSide
		}

		fills := b.PlaceOrder(l.nextAutoID, 0, side, conv.ToInternal(p.Price), p.Quantity)
		for _, f := range fills {
			l.recordTrade(p.Symbol, trade.Info{
				Price:       conv.ToExternal(f.Price),
				Quantity:    f.Volume,
				Side:        p.Side,
				TimestampNs: p.TimestampNs,
			})
		}
	}
}

// drainSource pulls up to budget packets via pop, calling dispatch on
// each, and returns how many it actually drained.
func (l *Loop) drainSource(budget int, pop func() (wire.MarketDataPacket, bool), nowNs uint64) int {
	n := 0
	for n < budget {
		p, ok := pop()
		if !ok {
			break
		}
		l.dispatch(p, nowNs)
		n++
	}
	return n
}

// Tick runs one iteration of the hot loop: drain the ring, then the
// ingress endpoint, up to the combined MaxDrainPerFrame cap; build a
// snapshot for the active symbol; evaluate the strategy engine. It
// returns the number of packets drained this tick.
func (l *Loop) Tick(nowNs uint64) int {
	var pkt wire.MarketDataPacket

	drained := l.drainSource(MaxDrainPerFrame, func() (wire.MarketDataPacket, bool) {
		if l.ring.TryPop(&pkt) {
			return pkt, true
		}
		return wire.MarketDataPacket{}, false
	}, nowNs)

	if l.endpoint != nil && drained < MaxDrainPerFrame {
		remaining := MaxDrainPerFrame - drained
		drainedFromEndpoint := 0
		l.endpoint.Drain(remaining, func(p wire.MarketDataPacket) {
			l.dispatch(p, nowNs)
			drainedFromEndpoint++
		})
		drained += drainedFromEndpoint
	}

	symbol := l.activeSymbol
	if symbol == "" {
		symbol = l.defaultSymbol
	}
	if symbol != "" {
		b := l.bookFor(symbol)
		snap := b.Snapshot(l.prices.Get(symbol), nowNs)
		l.engine.Evaluate(snap, l.trades[symbol], nowNs)
	}

	return drained
}

// Run repeatedly calls Tick, sleeping idleSleep whenever a tick drains
// nothing, until ctx is cancelled. now is injected so callers (and tests)
// control the clock; production callers pass a function wrapping
// time.Now().UnixNano().
func (l *Loop) Run(ctx context.Context, now func() uint64) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if l.Tick(now()) == 0 {
			time.Sleep(idleSleep)
		}
	}
}

// LatestPythonToCppUS returns the most recently observed ingress-to-loop
// latency, in microseconds.
func (l *Loop) LatestPythonToCppUS() int64 { return l.latestPythonToCppUS }

// ActiveSymbol returns the symbol snapshotted on the most recent Tick.
func (l *Loop) ActiveSymbol() string { return l.activeSymbol }

// Trades returns a snapshot of the rolling trade buffer for symbol.
func (l *Loop) Trades(symbol string) []trade.Info {
	out := make([]trade.Info, len(l.trades[symbol]))
	copy(out, l.trades[symbol])
	return out
}

// Book returns symbol's book if it has been created, for test and
// diagnostic introspection.
func (l *Loop) Book(symbol string) (*book.Book, bool) {
	b, ok := l.books[symbol]
	return b, ok
}

// Engine returns the strategy engine the loop evaluates every tick.
func (l *Loop) Engine() *strategy.Engine { return l.engine }
