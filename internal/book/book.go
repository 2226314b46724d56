// Package book implements the price-time-priority limit order book: the
// matching engine at the center of the pipeline. All public methods are
// meant to be invoked from a single goroutine (the main loop); Book does
// no internal locking.
package book

// Trade is one fill produced by the matching engine: the taker's order,
// the resting maker order it matched against, the price it traded at
// (the resting order's level price), and the filled volume.
type Trade struct {
	TakerOrderID uint64
	MakerOrderID uint64
	Price        uint32
	Volume       uint64
}

// Book is one symbol's order book.
type Book struct {
	Symbol string

	bids *side
	asks *side

	orderIndex map[uint64]*Order

	orders orderPool
	levels levelPool
}

// New creates an empty book for symbol.
func New(symbol string) *Book {
	return &Book{
		Symbol:     symbol,
		bids:       newSide(true),
		asks:       newSide(false),
		orderIndex: make(map[uint64]*Order),
	}
}

func (b *Book) sideFor(s Side) *side {
	if s == BuySide {
		return b.bids
	}
	return b.asks
}

func (b *Book) opposite(s Side) *side {
	if s == BuySide {
		return b.asks
	}
	return b.bids
}

// crosses reports whether the taker's limit price L, on side s, is
// compatible with a resting price at the opposite best level.
func crosses(s Side, limit, oppositeBest uint32) bool {
	if s == BuySide {
		return oppositeBest <= limit
	}
	return oppositeBest >= limit
}

// PlaceOrder attempts to match (orderID, agentID, side, price, quantity)
// aggressively against the opposite side, then rests any residual
// volume on the order's own side. Rejects with no trades and no state
// change when price or quantity is zero.
func (b *Book) PlaceOrder(orderID, agentID uint64, s Side, internalPrice uint32, quantity uint64) []Trade {
	if internalPrice == 0 || quantity == 0 {
		return nil
	}

	opp := b.opposite(s)
	remaining := quantity
	var trades []Trade

	for remaining > 0 {
		bestPrice := opp.best()
		if bestPrice == 0 || !crosses(s, internalPrice, bestPrice) {
			break
		}
		level := opp.get(bestPrice)
		for remaining > 0 && level.head != nil {
			maker := level.head
			fill := remaining
			if maker.RemainingVolume < fill {
				fill = maker.RemainingVolume
			}

			maker.fill(fill)
			remaining -= fill
			level.TotalVolume -= fill

			trades = append(trades, Trade{
				TakerOrderID: orderID,
				MakerOrderID: maker.ID,
				Price:        bestPrice,
				Volume:       fill,
			})

			if maker.Status == Fulfilled {
				level.remove(maker)
				delete(b.orderIndex, maker.ID)
				b.orders.put(maker)
			}
		}
		if level.empty() {
			opp.remove(bestPrice)
			b.levels.put(level)
		}
	}

	if remaining > 0 {
		b.restOrder(orderID, agentID, s, internalPrice, quantity, remaining)
	}

	return trades
}

// restOrder inserts a new Active order with the given residual volume
// onto side s at internalPrice, creating the level if needed.
func (b *Book) restOrder(orderID, agentID uint64, s Side, internalPrice uint32, initialVolume, remaining uint64) {
	own := b.sideFor(s)
	level := own.get(internalPrice)
	if level == nil {
		level = b.levels.get()
		level.Price = internalPrice
		own.insert(internalPrice, level)
	}

	o := b.orders.get()
	o.ID = orderID
	o.AgentID = agentID
	o.Side = s
	o.Price = internalPrice
	o.InitialVolume = initialVolume
	o.RemainingVolume = remaining
	o.Status = Active

	level.pushBack(o)
	b.orderIndex[orderID] = o
}

// DeleteOrder removes orderID if it is indexed and Active. Unknown or
// non-Active ids are silent no-ops.
func (b *Book) DeleteOrder(orderID uint64) {
	o, ok := b.orderIndex[orderID]
	if !ok || o.Status != Active {
		return
	}

	o.Status = Deleted
	level := o.level
	own := b.sideFor(o.Side)

	level.TotalVolume -= o.RemainingVolume
	level.remove(o)
	delete(b.orderIndex, orderID)
	b.orders.put(o)

	if level.empty() {
		own.remove(level.Price)
		b.levels.put(level)
	}
}

// BestBuy returns the best resting bid price, or 0 if the bid side is empty.
func (b *Book) BestBuy() uint32 { return b.bids.best() }

// BestSell returns the best resting ask price, or 0 if the ask side is empty.
func (b *Book) BestSell() uint32 { return b.asks.best() }

// Spread returns best_sell - best_buy. Callers should check both sides
// are non-empty before relying on this as a meaningful spread.
func (b *Book) Spread() int64 {
	return int64(b.BestSell()) - int64(b.BestBuy())
}

// MidPrice returns (best_buy+best_sell)/2 in internal-price units, or 0 if
// either side is empty.
func (b *Book) MidPrice() float64 {
	bid, ask := b.BestBuy(), b.BestSell()
	if bid == 0 || ask == 0 {
		return 0
	}
	return (float64(bid) + float64(ask)) / 2
}

// BuyPrices returns resting bid prices in descending order.
func (b *Book) BuyPrices() []uint32 { return b.bids.orderedPrices() }

// SellPrices returns resting ask prices in ascending order.
func (b *Book) SellPrices() []uint32 { return b.asks.orderedPrices() }

// RestingOrdersCount returns the number of currently Active orders.
func (b *Book) RestingOrdersCount() int { return len(b.orderIndex) }

// OrderStatus returns the status of orderID and whether it is known to
// this book at all (it may have been fully matched and evicted, in which
// case ok is false — the book only tracks orders it still has a live
// reference to).
func (b *Book) OrderStatus(orderID uint64) (Status, bool) {
	o, ok := b.orderIndex[orderID]
	if !ok {
		return 0, false
	}
	return o.Status, true
}

// LevelView exposes one resting price level's aggregate size, for
// snapshot construction.
type LevelView struct {
	Price    uint32
	Quantity uint64
}

// BidLevels returns resting bid levels, best first.
func (b *Book) BidLevels() []LevelView {
	return levelViews(b.bids)
}

// AskLevels returns resting ask levels, best first.
func (b *Book) AskLevels() []LevelView {
	return levelViews(b.asks)
}

func levelViews(s *side) []LevelView {
	prices := s.orderedPrices()
	out := make([]LevelView, 0, len(prices))
	for _, p := range prices {
		l := s.get(p)
		out = append(out, LevelView{Price: p, Quantity: l.TotalVolume})
	}
	return out
}
