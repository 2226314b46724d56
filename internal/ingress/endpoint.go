// Package ingress implements the datagram ingress endpoint that feeds
// the pipeline from out-of-process producers over a Unix-domain
// SOCK_DGRAM socket.
package ingress

import (
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"

	"github.com/quantumflow/quantumflow/internal/wire"
)

// MaxDrainPerTick is the default budget a caller may pass to Drain when it
// has no tighter combined-cap bookkeeping of its own.
const MaxDrainPerTick = 256

// Endpoint owns a non-blocking Unix-domain datagram socket.
type Endpoint struct {
	path string
	conn *net.UnixConn

	rxCount  uint64
	badCount uint64
}

// Bind unlinks any stale socket file at path, then creates and binds a
// SOCK_DGRAM socket there in non-blocking mode. Bind failure is fatal to
// the endpoint only — the rest of the core can still run off the ring.
func Bind(path string) (*Endpoint, error) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("ingress: unlink stale socket %q: %w", path, err)
	}

	addr := &net.UnixAddr{Name: path, Net: "unixgram"}
	conn, err := net.ListenUnixgram("unixgram", addr)
	if err != nil {
		return nil, fmt.Errorf("ingress: bind %q: %w", path, err)
	}

	return &Endpoint{path: path, conn: conn}, nil
}

// Close closes the socket and unlinks the endpoint file.
func (e *Endpoint) Close() error {
	err := e.conn.Close()
	if rmErr := os.Remove(e.path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
		err = rmErr
	}
	return err
}

// Drain reads up to budget datagrams, calling dispatch for each one that
// decodes to exactly PacketSize bytes. It stops early on any transient
// error (would-block, interrupted) or once budget is exhausted, and never
// blocks. A datagram left unread because budget ran out stays queued in
// the kernel socket buffer for a future Drain call — Drain never reads
// and then discards a datagram the caller has no room left to dispatch.
func (e *Endpoint) Drain(budget int, dispatch func(wire.MarketDataPacket)) {
	var buf [wire.PacketSize + 1]byte // +1 so an oversized datagram is still detectable as "wrong length"

	rc, err := e.conn.SyscallConn()
	if err != nil {
		return
	}
	for i := 0; i < budget; i++ {
		var n int
		if rerr := rc.Read(func(fd uintptr) bool {
			n, _, err = syscall.Recvfrom(int(fd), buf[:], 0)
			return true // report would-block instead of waiting for readiness
		}); rerr != nil {
			return
		}
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				return // would-block: nothing more to drain this tick
			}
			return // any other transient error: stop draining this tick
		}

		if n != wire.PacketSize {
			e.badCount++
			continue
		}

		p, err := wire.Decode(buf[:n])
		if err != nil || p.Empty() {
			e.badCount++
			continue
		}

		e.rxCount++
		dispatch(p)
	}
}

// RxCount returns the number of datagrams successfully decoded.
func (e *Endpoint) RxCount() uint64 { return e.rxCount }

// BadCount returns the number of datagrams dropped for bad length or
// empty symbol.
func (e *Endpoint) BadCount() uint64 { return e.badCount }
