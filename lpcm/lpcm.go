// Package lpcm unpacks DVD-style byte-packed LPCM samples (20- and
// 24-bit) into the core's linear working format, per spec.md §6.
// DVD LPCM packs samples as a 16-bit word per channel plus a shared
// group of extension nibbles/bytes carrying the low bits, rather than
// a flat N-bit-per-sample interleave.
package lpcm

import "github.com/doismellburning/valib/speakers"

// Unpack20 unpacks a buffer of DVD LPCM20 data (nch interleaved
// channels, 16-bit high word plus a shared 4-bit low nibble per
// sample-group) into linear float64 samples scaled to level.
//
// Layout per group of nch samples: nch 16-bit big-endian words, then
// ceil(nch/2) bytes holding one 4-bit extension nibble per channel
// (two nibbles per byte, first channel in the high nibble).
func Unpack20(buf []byte, nch int, level float64) (out [][]float64, consumed int) {
	if nch <= 0 {
		return nil, 0
	}
	out = make([][]float64, nch)
	groupBytes := nch*2 + (nch+1)/2
	for off := 0; off+groupBytes <= len(buf); off += groupBytes {
		ext := buf[off+nch*2:]
		for ch := 0; ch < nch; ch++ {
			hi16 := int32(buf[off+ch*2])<<8 | int32(buf[off+ch*2+1])
			nibble := extNibble(ext, ch)
			sample20 := hi16<<4 | int32(nibble)
			out[ch] = append(out[ch], float64(sample20-0x80000)/0x80000*level)
		}
		consumed = off + groupBytes
	}
	return out, consumed
}

func extNibble(ext []byte, ch int) byte {
	b := ext[ch/2]
	if ch%2 == 0 {
		return b >> 4
	}
	return b & 0x0f
}

// Unpack24 unpacks DVD LPCM24 data: nch 16-bit big-endian words plus a
// trailing byte of low-order bits per channel, per group.
func Unpack24(buf []byte, nch int, level float64) (out [][]float64, consumed int) {
	if nch <= 0 {
		return nil, 0
	}
	out = make([][]float64, nch)
	groupBytes := nch * 3
	for off := 0; off+groupBytes <= len(buf); off += groupBytes {
		for ch := 0; ch < nch; ch++ {
			hi16 := int32(buf[off+ch*2])<<8 | int32(buf[off+ch*2+1])
			low := int32(buf[off+nch*2+ch])
			sample24 := hi16<<8 | low
			out[ch] = append(out[ch], float64(sample24-0x800000)/0x800000*level)
		}
		consumed = off + groupBytes
	}
	return out, consumed
}

// ToChunk packs unpacked per-channel samples into a linear speakers.Chunk
// at the given mask/rate, for handoff into the filter graph.
func ToChunk(samples [][]float64, mask speakers.Mask, rate int) speakers.Chunk {
	spk := speakers.New(speakers.Linear, mask, rate)
	var c speakers.Chunk
	c.Spk = spk
	n := 0
	for i, s := range samples {
		if i >= int(speakers.MaxChannels) {
			break
		}
		c.Samples[i] = s
		if len(s) > n {
			n = len(s)
		}
	}
	c.Size = n
	return c
}
