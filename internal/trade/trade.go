// Package trade defines the display-unit trade record produced by the
// matching engine and by trade-print packets, and consumed by the
// strategy engine's rolling trade window.
package trade

import "github.com/quantumflow/quantumflow/internal/wire"

// Info is one executed trade in display units.
type Info struct {
	Price       float64
	Quantity    uint64
	Side        wire.Side
	TimestampNs uint64
}
