package ring

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/quantumflow/quantumflow/internal/wire"
)

func packetWithID(id uint64) wire.MarketDataPacket {
	return wire.MarketDataPacket{Symbol: "BTC", OrderID: id}
}

func TestNewRejectsNonPowerOfTwo(t *testing.T) {
	if _, err := New(100); err == nil {
		t.Fatal("expected error for non-power-of-two capacity")
	}
	if _, err := New(1); err == nil {
		t.Fatal("expected error for capacity 1")
	}
}

func TestPushPopSingle(t *testing.T) {
	r, err := New(8)
	if err != nil {
		t.Fatal(err)
	}
	if !r.TryPush(packetWithID(1)) {
		t.Fatal("push should succeed")
	}
	var out wire.MarketDataPacket
	if !r.TryPop(&out) {
		t.Fatal("pop should succeed")
	}
	if out.OrderID != 1 {
		t.Fatalf("got order id %d, want 1", out.OrderID)
	}
	if r.PushCount() != 1 || r.PopCount() != 1 {
		t.Fatalf("push/pop counts = %d/%d, want 1/1", r.PushCount(), r.PopCount())
	}
}

func TestFIFOOrder(t *testing.T) {
	r, err := New(16)
	if err != nil {
		t.Fatal(err)
	}
	for i := uint64(1); i <= 10; i++ {
		if !r.TryPush(packetWithID(i)) {
			t.Fatalf("push %d failed", i)
		}
	}
	for i := uint64(1); i <= 10; i++ {
		var out wire.MarketDataPacket
		if !r.TryPop(&out) {
			t.Fatalf("pop %d failed", i)
		}
		if out.OrderID != i {
			t.Fatalf("pop order: got %d, want %d", out.OrderID, i)
		}
	}
}

func TestFullAfterCapacityMinusOnePushes(t *testing.T) {
	const capacity = 64
	r, err := New(capacity)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < capacity-1; i++ {
		if !r.TryPush(packetWithID(uint64(i))) {
			t.Fatalf("push %d should have succeeded", i)
		}
	}
	if r.TryPush(packetWithID(999)) {
		t.Fatal("push into full ring should fail")
	}
	if r.DropCount() != 1 {
		t.Fatalf("drop count = %d, want 1", r.DropCount())
	}
}

func TestEmptyAndSizeAdvisory(t *testing.T) {
	r, err := New(8)
	if err != nil {
		t.Fatal(err)
	}
	if !r.Empty() || r.Size() != 0 {
		t.Fatal("new ring should be empty")
	}
	r.TryPush(packetWithID(1))
	r.TryPush(packetWithID(2))
	if r.Empty() || r.Size() != 2 {
		t.Fatalf("size = %d, want 2", r.Size())
	}
}

// Property: push_count = pop_count + size, and popped sequence equals
// pushed sequence, for any sequence of N push/pop pairs with no
// concurrent drops (single-threaded exercise of the SPSC contract).
func TestSPSCFIFOProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("pushed sequence pops out in the same order", prop.ForAll(
		func(n int) bool {
			r, err := New(1024)
			if err != nil {
				t.Fatal(err)
			}
			for i := 0; i < n; i++ {
				if !r.TryPush(packetWithID(uint64(i))) {
					return false
				}
			}
			for i := 0; i < n; i++ {
				var out wire.MarketDataPacket
				if !r.TryPop(&out) || out.OrderID != uint64(i) {
					return false
				}
			}
			return r.PushCount() == r.PopCount() && r.PushCount() == uint64(n)
		},
		gen.IntRange(0, 1000),
	))

	properties.TestingRun(t)
}
