// Package wavio reads and writes RIFF/RF64 WAVE PCM files, mapping
// between speakers.Speakers and the WAVE fmt chunk, per spec.md §6.
// RF64's ds64 chunk is honored for data sizes at or beyond 4 GiB.
// Channel order on disk is WAVE canonical (L, R, C, LFE, BL, BR, CL,
// CR, BC, SL, SR); callers reorder explicitly via speakers.Reorder
// before writing or after reading, per the data model's "reorder is an
// explicit step" rule.
package wavio

import (
	"errors"
	"fmt"

	"github.com/doismellburning/valib/speakers"
)

var (
	ErrNotWave     = errors.New("wavio: not a RIFF/RF64 WAVE file")
	ErrBadFmt      = errors.New("wavio: malformed fmt chunk")
	ErrNoFmt       = errors.New("wavio: data chunk seen before fmt chunk")
	ErrUnsupported = errors.New("wavio: unsupported wave format")
)

const (
	tagPCM        = 1
	tagIEEEFloat  = 3
	tagExtensible = 0xfffe
)

// waveOrder is the canonical on-disk channel layout for multichannel
// WAVE files (Microsoft's WAVEFORMATEXTENSIBLE dwChannelMask bit order),
// distinct from this package's own speakers.CanonicalOrder.
var waveOrder = speakers.Order{
	speakers.L, speakers.R, speakers.C, speakers.LFE,
	speakers.BL, speakers.BR, speakers.CL, speakers.CR, speakers.BC,
	speakers.SL, speakers.SR,
}

// WaveOrder returns the on-disk channel order for mask, restricted to
// the channels mask actually has, in WAVE's canonical bit order.
func WaveOrder(mask speakers.Mask) speakers.Order {
	out := make(speakers.Order, 0, mask.NumChannels())
	for _, ch := range waveOrder {
		if mask.Has(ch) {
			out = append(out, ch)
		}
	}
	return out
}

// fmtInfo is the decoded content of a WAVE fmt chunk, tag-agnostic.
type fmtInfo struct {
	tag           uint16
	channels      uint16
	sampleRate    uint32
	bitsPerSample uint16
	validBits     uint16
	channelMask   uint32
	isFloat       bool
}

func fmtToSpeakers(f fmtInfo) (speakers.Speakers, error) {
	mask := speakers.Mask(f.channelMask)
	if mask == 0 {
		mask = defaultMaskFor(int(f.channels))
	}
	if mask.NumChannels() != int(f.channels) {
		return speakers.Speakers{}, fmt.Errorf("%w: channel mask popcount %d != %d channels", ErrBadFmt, mask.NumChannels(), f.channels)
	}

	var format speakers.Format
	switch {
	case f.isFloat && f.bitsPerSample == 32:
		format = speakers.PCMFloat
	case f.isFloat && f.bitsPerSample == 64:
		format = speakers.PCMDouble
	case f.bitsPerSample == 16:
		format = speakers.PCM16LE
	case f.bitsPerSample == 24:
		format = speakers.PCM24LE
	case f.bitsPerSample == 32:
		format = speakers.PCM32LE
	default:
		return speakers.Speakers{}, fmt.Errorf("%w: %d-bit", ErrUnsupported, f.bitsPerSample)
	}
	return speakers.New(format, mask, int(f.sampleRate)), nil
}

// defaultMaskFor returns the conventional WAVE channel mask for a
// channel count with no explicit dwChannelMask (plain WAVEFORMAT, not
// EXTENSIBLE): mono is C... no, mono is L in this package's convention,
// stereo is L|R, anything else is the first nch WAVE-order channels.
func defaultMaskFor(nch int) speakers.Mask {
	if nch == 1 {
		return speakers.ModeMono
	}
	var m speakers.Mask
	for i := 0; i < nch && i < len(waveOrder); i++ {
		m |= speakers.Bit(waveOrder[i])
	}
	return m
}

func speakersToFmt(spk speakers.Speakers) (fmtInfo, error) {
	var f fmtInfo
	f.channels = uint16(spk.NumChannels())
	f.sampleRate = uint32(spk.SampleRate)
	f.channelMask = uint32(spk.Mask)

	switch spk.Format {
	case speakers.PCM16LE:
		f.bitsPerSample = 16
	case speakers.PCM24LE:
		f.bitsPerSample = 24
	case speakers.PCM32LE:
		f.bitsPerSample = 32
	case speakers.PCMFloat:
		f.bitsPerSample = 32
		f.isFloat = true
	case speakers.PCMDouble:
		f.bitsPerSample = 64
		f.isFloat = true
	default:
		return fmtInfo{}, fmt.Errorf("%w: %s", ErrUnsupported, spk.Format)
	}
	f.validBits = f.bitsPerSample

	switch {
	case f.isFloat:
		f.tag = tagIEEEFloat
	case f.channels > 2:
		f.tag = tagExtensible
	default:
		f.tag = tagPCM
	}
	// Any channel count whose canonical mask isn't the plain
	// mono/stereo default still needs EXTENSIBLE so the mask survives
	// the round trip.
	if f.channels <= 2 && spk.Mask != 0 && spk.Mask != defaultMaskFor(int(f.channels)) {
		f.tag = tagExtensible
	}
	return f, nil
}
