package book

import "github.com/quantumflow/quantumflow/internal/price"

// PriceLevel is a display-unit (price, quantity) pair inside a Snapshot.
type PriceLevel struct {
	Price    float64
	Quantity uint64
}

// Snapshot is an immutable, display-unit view of a Book's top-of-book and
// depth at a point in time.
type Snapshot struct {
	Symbol      string
	Bids        []PriceLevel // descending
	Asks        []PriceLevel // ascending
	BestBid     float64
	BestAsk     float64
	MidPrice    float64
	TimestampNs uint64
}

// Snapshot converts the book's current internal-price state into a
// display-unit Snapshot using conv.
func (b *Book) Snapshot(conv price.Converter, timestampNs uint64) Snapshot {
	bidViews := b.BidLevels()
	askViews := b.AskLevels()

	bids := make([]PriceLevel, len(bidViews))
	for i, lv := range bidViews {
		bids[i] = PriceLevel{Price: conv.ToExternal(lv.Price), Quantity: lv.Quantity}
	}
	asks := make([]PriceLevel, len(askViews))
	for i, lv := range askViews {
		asks[i] = PriceLevel{Price: conv.ToExternal(lv.Price), Quantity: lv.Quantity}
	}

	var bestBid, bestAsk, mid float64
	if bb := b.BestBuy(); bb != 0 {
		bestBid = conv.ToExternal(bb)
	}
	if ba := b.BestSell(); ba != 0 {
		bestAsk = conv.ToExternal(ba)
	}
	if bestBid != 0 && bestAsk != 0 {
		mid = (bestBid + bestAsk) / 2
	}

	return Snapshot{
		Symbol:      b.Symbol,
		Bids:        bids,
		Asks:        asks,
		BestBid:     bestBid,
		BestAsk:     bestAsk,
		MidPrice:    mid,
		TimestampNs: timestampNs,
	}
}
