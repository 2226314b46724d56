package book

import "testing"

func TestPlaceOrderRejectsZeroPriceOrQuantity(t *testing.T) {
	b := New("BTC")
	if trades := b.PlaceOrder(1, 1, BuySide, 0, 10); trades != nil {
		t.Fatal("zero price should reject with no trades")
	}
	if trades := b.PlaceOrder(1, 1, BuySide, 100, 0); trades != nil {
		t.Fatal("zero quantity should reject with no trades")
	}
	if b.RestingOrdersCount() != 0 {
		t.Fatal("rejected orders must not change book state")
	}
}

func TestRestsWhenNoMatch(t *testing.T) {
	b := New("BTC")
	trades := b.PlaceOrder(1, 1, BuySide, 100, 50)
	if len(trades) != 0 {
		t.Fatalf("expected no trades, got %v", trades)
	}
	if b.BestBuy() != 100 {
		t.Fatalf("best buy = %d, want 100", b.BestBuy())
	}
}

func TestFIFOMatchingOrder(t *testing.T) {
	b := New("BTC")
	b.PlaceOrder(1, 1, BuySide, 100, 10)
	b.PlaceOrder(2, 1, BuySide, 100, 20)
	b.PlaceOrder(3, 1, BuySide, 100, 30)

	trades := b.PlaceOrder(4, 2, SellSide, 100, 60)
	if len(trades) != 3 {
		t.Fatalf("expected 3 trades, got %d", len(trades))
	}
	wantMakers := []uint64{1, 2, 3}
	wantVols := []uint64{10, 20, 30}
	for i, tr := range trades {
		if tr.MakerOrderID != wantMakers[i] || tr.Volume != wantVols[i] {
			t.Fatalf("trade %d = %+v, want maker %d vol %d", i, tr, wantMakers[i], wantVols[i])
		}
	}
	if b.RestingOrdersCount() != 0 {
		t.Fatalf("resting count = %d, want 0", b.RestingOrdersCount())
	}
}

func TestPartialFill(t *testing.T) {
	b := New("BTC")
	b.PlaceOrder(1, 1, BuySide, 100, 10)
	b.PlaceOrder(2, 1, BuySide, 100, 20)

	trades := b.PlaceOrder(3, 2, SellSide, 100, 25)
	if len(trades) != 2 {
		t.Fatalf("expected 2 trades, got %d", len(trades))
	}
	if trades[0] != (Trade{TakerOrderID: 3, MakerOrderID: 1, Price: 100, Volume: 10}) {
		t.Fatalf("trade 0 = %+v", trades[0])
	}
	if trades[1] != (Trade{TakerOrderID: 3, MakerOrderID: 2, Price: 100, Volume: 15}) {
		t.Fatalf("trade 1 = %+v", trades[1])
	}

	if _, ok := b.OrderStatus(1); ok {
		t.Fatal("order 1 should have been evicted on full fill")
	}
	status, ok := b.OrderStatus(2)
	if !ok || status != Active {
		t.Fatalf("order 2 status = %v, ok=%v, want Active", status, ok)
	}
}

func TestBestPriceInvariants(t *testing.T) {
	b := New("BTC")
	b.PlaceOrder(1, 1, BuySide, 100, 10)
	b.PlaceOrder(2, 1, BuySide, 110, 10)
	if b.BestBuy() != 110 {
		t.Fatalf("best buy = %d, want 110", b.BestBuy())
	}
	b.DeleteOrder(2)
	if b.BestBuy() != 100 {
		t.Fatalf("best buy after delete = %d, want 100", b.BestBuy())
	}
}

func TestDeleteOrderSilentNoOp(t *testing.T) {
	b := New("BTC")
	b.DeleteOrder(999) // never existed
	b.PlaceOrder(1, 1, BuySide, 100, 10)
	b.DeleteOrder(1)
	b.DeleteOrder(1) // already deleted
	if b.RestingOrdersCount() != 0 {
		t.Fatal("expected empty book after delete")
	}
}

func TestEndToEndScenario1And2(t *testing.T) {
	b := New("BTC")
	trades := b.PlaceOrder(1, 1, BuySide, 100, 10)
	if len(trades) != 0 || b.BestBuy() != 100 {
		t.Fatalf("scenario 1 failed: trades=%v bestBuy=%d", trades, b.BestBuy())
	}

	trades = b.PlaceOrder(2, 2, SellSide, 100, 10)
	if len(trades) != 1 {
		t.Fatalf("scenario 2: expected 1 trade, got %d", len(trades))
	}
	if trades[0] != (Trade{TakerOrderID: 2, MakerOrderID: 1, Price: 100, Volume: 10}) {
		t.Fatalf("scenario 2 trade = %+v", trades[0])
	}
	if b.BestBuy() != 0 || b.BestSell() != 0 {
		t.Fatalf("both sides should be empty: bestBuy=%d bestSell=%d", b.BestBuy(), b.BestSell())
	}
}

func TestPoolReuseAcrossCycles(t *testing.T) {
	b := New("BTC")
	for cycle := 0; cycle < 50; cycle++ {
		base := uint64(cycle * 10)
		b.PlaceOrder(base+1, 1, BuySide, 100, 5)
		b.PlaceOrder(base+2, 1, BuySide, 100, 5)
		b.PlaceOrder(base+3, 2, SellSide, 100, 7) // fully filled: 5 against base+1, 2 against base+2; nothing rests on the sell side
		// delete whatever residual remains from the buy side
		b.DeleteOrder(base + 1)
		b.DeleteOrder(base + 2)
	}
	if b.RestingOrdersCount() != 0 {
		t.Fatalf("resting count = %d, want 0 after full cycle", b.RestingOrdersCount())
	}
}

func TestSpreadAndMidPrice(t *testing.T) {
	b := New("BTC")
	if b.Spread() != 0 || b.MidPrice() != 0 {
		t.Fatal("empty book should report zero spread/mid")
	}
	b.PlaceOrder(1, 1, BuySide, 100, 10)
	b.PlaceOrder(2, 1, SellSide, 120, 10)
	if b.Spread() != 20 {
		t.Fatalf("spread = %d, want 20", b.Spread())
	}
	if b.MidPrice() != 110 {
		t.Fatalf("mid = %v, want 110", b.MidPrice())
	}
}
