// Package ring implements the bounded, wait-free single-producer /
// single-consumer queue of market data packets that bridges an external
// producer thread to the single-threaded main loop.
package ring

import (
	"fmt"
	"sync/atomic"

	"github.com/quantumflow/quantumflow/internal/wire"
)

// cacheLinePad is sized to separate the producer's and consumer's indices
// (and the payload slice header) onto independent cache lines, so the two
// sides never cause false sharing on the same line.
type cacheLinePad [64 - 8]byte

// DefaultCapacity is the spec's default ring size: 4096 slots, of which
// 4095 are usable (one slot is always left empty as the full/empty
// discriminator).
const DefaultCapacity = 4096

// Ring is a bounded SPSC queue of wire.MarketDataPacket. One producer
// goroutine may call TryPush; one consumer goroutine may call TryPop.
// Calling either from more than one goroutine concurrently is undefined,
// per the single-producer/single-consumer contract.
type Ring struct {
	buf  []wire.MarketDataPacket
	mask uint64

	_pad0 cacheLinePad
	tail  uint64 // producer-owned; published with release semantics
	_pad1 cacheLinePad
	head  uint64 // consumer-owned; published with release semantics
	_pad2 cacheLinePad

	pushCount uint64
	popCount  uint64
	dropCount uint64
}

// New allocates a Ring with the given capacity, which must be a power of
// two. Usable capacity is capacity-1.
func New(capacity int) (*Ring, error) {
	if capacity <= 1 || capacity&(capacity-1) != 0 {
		return nil, fmt.Errorf("ring: capacity %d must be a power of two greater than 1", capacity)
	}
	return &Ring{
		buf:  make([]wire.MarketDataPacket, capacity),
		mask: uint64(capacity - 1),
	}, nil
}

// TryPush stores p at the tail iff the ring is not full. Returns false and
// increments DropCount on failure; producers decide whether to retry.
func (r *Ring) TryPush(p wire.MarketDataPacket) bool {
	tail := atomic.LoadUint64(&r.tail)
	head := atomic.LoadUint64(&r.head)
	next := (tail + 1) & r.mask

	if next == head {
		atomic.AddUint64(&r.dropCount, 1)
		return false
	}

	r.buf[tail] = p
	atomic.StoreUint64(&r.tail, next) // release: publishes the payload write above
	atomic.AddUint64(&r.pushCount, 1)
	return true
}

// TryPop reads the head slot into out iff the ring is not empty.
func (r *Ring) TryPop(out *wire.MarketDataPacket) bool {
	head := atomic.LoadUint64(&r.head)
	tail := atomic.LoadUint64(&r.tail) // acquire: synchronizes with the producer's release store

	if head == tail {
		return false
	}

	*out = r.buf[head]
	atomic.StoreUint64(&r.head, (head+1)&r.mask)
	atomic.AddUint64(&r.popCount, 1)
	return true
}

// Size is an advisory, possibly-racing snapshot of the number of queued
// packets.
func (r *Ring) Size() int {
	tail := atomic.LoadUint64(&r.tail)
	head := atomic.LoadUint64(&r.head)
	return int((tail - head + r.mask + 1) & r.mask)
}

// Empty is an advisory, possibly-racing check for an empty ring.
func (r *Ring) Empty() bool {
	return atomic.LoadUint64(&r.head) == atomic.LoadUint64(&r.tail)
}

// PushCount returns the number of successful TryPush calls.
func (r *Ring) PushCount() uint64 { return atomic.LoadUint64(&r.pushCount) }

// PopCount returns the number of successful TryPop calls.
func (r *Ring) PopCount() uint64 { return atomic.LoadUint64(&r.popCount) }

// DropCount returns the number of TryPush calls that found the ring full.
func (r *Ring) DropCount() uint64 { return atomic.LoadUint64(&r.dropCount) }

// Capacity returns the ring's slot count, including the one slot reserved
// as the full/empty discriminator.
func (r *Ring) Capacity() int { return len(r.buf) }
