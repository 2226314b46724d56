// Package wire defines the on-the-wire market data packet shared with
// out-of-process producers, and its fixed little-endian byte layout.
package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Side identifies which book side a packet applies to.
type Side uint8

const (
	Buy  Side = 0
	Sell Side = 1
)

// EventType distinguishes a book-level update from a trade print.
type EventType uint8

const (
	EventBookLevel EventType = 0
	EventTrade     EventType = 1
)

// PacketSize is the fixed wire size of MarketDataPacket, in bytes.
const PacketSize = 56

const symbolLen = 16

// MarketDataPacket is the fixed 56-byte datagram emitted by the upstream
// ingestion sidecar. Field order here matches the wire layout; Decode and
// Encode are the only places that care about byte order.
type MarketDataPacket struct {
	Symbol      string
	Side        Side
	EventType   EventType
	Price       float64
	Quantity    uint64
	TimestampNs uint64
	OrderID     uint64
}

// Empty reports whether the packet carries no symbol, which the main loop
// treats as malformed input to be dropped.
func (p MarketDataPacket) Empty() bool {
	return p.Symbol == ""
}

// Encode writes p into a fresh PacketSize-byte little-endian buffer.
func Encode(p MarketDataPacket) [PacketSize]byte {
	var buf [PacketSize]byte

	var symBytes [symbolLen]byte
	copy(symBytes[:], p.Symbol)
	copy(buf[0:16], symBytes[:])

	buf[16] = byte(p.Side)
	buf[17] = byte(p.EventType)
	// bytes 18..24 are the reserved zero padding.

	binary.LittleEndian.PutUint64(buf[24:32], math.Float64bits(p.Price))
	binary.LittleEndian.PutUint64(buf[32:40], p.Quantity)
	binary.LittleEndian.PutUint64(buf[40:48], p.TimestampNs)
	binary.LittleEndian.PutUint64(buf[48:56], p.OrderID)

	return buf
}

// Decode parses exactly PacketSize bytes into a MarketDataPacket. Input of
// any other length is rejected with an error; the ingress endpoint also
// checks the datagram length before calling Decode.
func Decode(raw []byte) (MarketDataPacket, error) {
	if len(raw) != PacketSize {
		return MarketDataPacket{}, fmt.Errorf("wire: decode: want %d bytes, got %d", PacketSize, len(raw))
	}

	symRaw := raw[0:16]
	sym := string(bytes.TrimRight(symRaw, "\x00"))

	p := MarketDataPacket{
		Symbol:      sym,
		Side:        Side(raw[16]),
		EventType:   EventType(raw[17]),
		Price:       math.Float64frombits(binary.LittleEndian.Uint64(raw[24:32])),
		Quantity:    binary.LittleEndian.Uint64(raw[32:40]),
		TimestampNs: binary.LittleEndian.Uint64(raw[40:48]),
		OrderID:     binary.LittleEndian.Uint64(raw[48:56]),
	}
	return p, nil
}
