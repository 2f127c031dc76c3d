package wavio

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/doismellburning/valib/speakers"
)

// interleave packs a linear chunk's per-channel float64 samples into
// spk's raw wire layout (little-endian PCM/float). c.Samples must
// already be in WAVE's on-disk channel order (WaveOrder); no reordering
// happens here.
func interleave(spk speakers.Speakers, c speakers.Chunk) ([]byte, error) {
	order := WaveOrder(spk.Mask)
	nch := len(order)
	if nch == 0 {
		return nil, fmt.Errorf("%w: empty channel mask", ErrBadFmt)
	}
	sampleSize := spk.Format.SampleSize()
	if sampleSize == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, spk.Format)
	}

	buf := make([]byte, c.Size*nch*sampleSize)
	for frame := 0; frame < c.Size; frame++ {
		for wi := range order {
			v := 0.0
			if wi < len(c.Samples) && frame < len(c.Samples[wi]) {
				v = c.Samples[wi][frame]
			}
			off := (frame*nch + wi) * sampleSize
			putSample(spk.Format, buf[off:off+sampleSize], v, spk.Level)
		}
	}
	return buf, nil
}

func putSample(format speakers.Format, dst []byte, v, level float64) {
	switch format {
	case speakers.PCM16LE:
		binary.LittleEndian.PutUint16(dst, uint16(int16(clampRound(v, 1<<15))))
	case speakers.PCM24LE:
		x := int32(clampRound(v, 1<<23))
		dst[0] = byte(x)
		dst[1] = byte(x >> 8)
		dst[2] = byte(x >> 16)
	case speakers.PCM32LE:
		binary.LittleEndian.PutUint32(dst, uint32(int32(clampRound(v, 1<<31))))
	case speakers.PCMFloat:
		binary.LittleEndian.PutUint32(dst, math.Float32bits(float32(v/level)))
	case speakers.PCMDouble:
		binary.LittleEndian.PutUint64(dst, math.Float64bits(v/level))
	}
}

func clampRound(v float64, fullScale float64) float64 {
	x := math.Round(v)
	max := fullScale - 1
	min := -fullScale
	if x > max {
		return max
	}
	if x < min {
		return min
	}
	return x
}

// deinterleave unpacks raw bytes in spk's wire layout into a linear
// Chunk whose Samples stay in WAVE's on-disk channel order
// (WaveOrder); callers reorder with speakers.Reorder if they need the
// canonical order.
func deinterleave(spk speakers.Speakers, raw []byte) (speakers.Chunk, error) {
	order := WaveOrder(spk.Mask)
	nch := len(order)
	sampleSize := spk.Format.SampleSize()
	if nch == 0 || sampleSize == 0 {
		return speakers.Chunk{}, fmt.Errorf("%w: %s", ErrUnsupported, spk.Format)
	}
	frameBytes := nch * sampleSize
	nframes := len(raw) / frameBytes

	var c speakers.Chunk
	c.Spk = speakers.New(speakers.Linear, spk.Mask, spk.SampleRate)
	c.Spk.Level = spk.Level
	c.Size = nframes

	planes := make([][]float64, nch)
	for i := range planes {
		planes[i] = make([]float64, nframes)
	}

	for frame := 0; frame < nframes; frame++ {
		for wi := range order {
			off := (frame*nch + wi) * sampleSize
			v := getSample(spk.Format, raw[off:off+sampleSize], spk.Level)
			planes[wi][frame] = v
		}
	}
	for i, p := range planes {
		if i < int(speakers.MaxChannels) {
			c.Samples[i] = p
		}
	}
	return c, nil
}

func getSample(format speakers.Format, src []byte, level float64) float64 {
	switch format {
	case speakers.PCM16LE:
		return float64(int16(binary.LittleEndian.Uint16(src)))
	case speakers.PCM24LE:
		x := int32(src[0]) | int32(src[1])<<8 | int32(src[2])<<16
		if x&0x800000 != 0 {
			x |= -1 << 24
		}
		return float64(x)
	case speakers.PCM32LE:
		return float64(int32(binary.LittleEndian.Uint32(src)))
	case speakers.PCMFloat:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(src))) * level
	case speakers.PCMDouble:
		return math.Float64frombits(binary.LittleEndian.Uint64(src)) * level
	default:
		return 0
	}
}
