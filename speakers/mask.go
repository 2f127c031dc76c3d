// Package speakers defines the core audio value model: the Speakers
// format descriptor, channel masks, and the Chunk envelope that carries
// samples or raw bytes between filter graph nodes.
package speakers

import "math/bits"

// Channel is a single canonical speaker position. Values match the bit
// position used in a channel Mask.
type Channel uint

const (
	L Channel = iota
	C
	R
	SL
	SR
	LFE
	BL
	BR
	CL
	CR
	BC
	MaxChannels
)

var channelNames = [MaxChannels]string{
	L: "L", C: "C", R: "R", SL: "SL", SR: "SR", LFE: "LFE",
	BL: "BL", BR: "BR", CL: "CL", CR: "CR", BC: "BC",
}

func (ch Channel) String() string {
	if int(ch) < len(channelNames) {
		return channelNames[ch]
	}
	return "?"
}

// Mask is a bitmask of Channel positions, e.g. Mask(L)|Mask(R) for stereo.
type Mask uint32

func Bit(ch Channel) Mask { return Mask(1) << uint(ch) }

// Named modes, for readability at call sites and in tests.
const (
	ModeMono   = Mask(1) << L
	ModeStereo = Mask(1)<<L | Mask(1)<<R
	Mode3_0    = ModeStereo | Mask(1)<<C
	ModeQuadro = ModeStereo | Mask(1)<<SL | Mask(1)<<SR
	Mode5_1    = Mode3_0 | Mask(1)<<SL | Mask(1)<<SR | Mask(1)<<LFE
	Mode7_1    = Mode5_1 | Mask(1)<<BL | Mask(1)<<BR
)

// NumChannels returns the channel count implied by mask: the popcount
// invariant from the data model (nch == popcount(mask)).
func (m Mask) NumChannels() int { return bits.OnesCount32(uint32(m)) }

func (m Mask) Has(ch Channel) bool { return m&Bit(ch) != 0 }

// Order lists channel positions in a concrete left-to-right layout, used
// by Reorder to permute sample pointers between two layouts of the same
// mask. The core's canonical order is index-by-channel-name (ascending
// Channel value); WAVE's canonical order is declared separately in wavio.
type Order []Channel

// CanonicalOrder returns m's channels in ascending Channel value, which
// is this package's canonical per-channel sample order.
func CanonicalOrder(m Mask) Order {
	order := make(Order, 0, m.NumChannels())
	for ch := Channel(0); ch < MaxChannels; ch++ {
		if m.Has(ch) {
			order = append(order, ch)
		}
	}
	return order
}

// String renders a mask as "L,C,R,...", in canonical order, for diagnostics.
func (m Mask) String() string {
	order := CanonicalOrder(m)
	s := ""
	for i, ch := range order {
		if i > 0 {
			s += ","
		}
		s += ch.String()
	}
	return s
}
