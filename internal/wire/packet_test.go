package wire

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	p := MarketDataPacket{
		Symbol:      "BTC",
		Side:        Buy,
		EventType:   EventBookLevel,
		Price:       50000.25,
		Quantity:    3,
		TimestampNs: 123456789,
		OrderID:     42,
	}

	raw := Encode(p)
	if len(raw) != PacketSize {
		t.Fatalf("encoded size = %d, want %d", len(raw), PacketSize)
	}

	got, err := Decode(raw[:])
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != p {
		t.Fatalf("round-trip mismatch: got %+v, want %+v", got, p)
	}
}

func TestDecodeRejectsWrongLength(t *testing.T) {
	if _, err := Decode(make([]byte, PacketSize-1)); err == nil {
		t.Fatal("expected error for short datagram")
	}
	if _, err := Decode(make([]byte, PacketSize+1)); err == nil {
		t.Fatal("expected error for long datagram")
	}
}

func TestEmptySymbolDropped(t *testing.T) {
	raw := Encode(MarketDataPacket{})
	p, err := Decode(raw[:])
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !p.Empty() {
		t.Fatal("expected empty symbol to report Empty()")
	}
}

func TestSymbolTruncatesAtSixteenBytes(t *testing.T) {
	p := MarketDataPacket{Symbol: "ABCDEFGHIJKLMNOPQRSTUVWXYZ"}
	raw := Encode(p)
	got, err := Decode(raw[:])
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Symbol) > 16 {
		t.Fatalf("symbol not truncated: %q", got.Symbol)
	}
}
