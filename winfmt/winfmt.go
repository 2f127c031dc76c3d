// Package winfmt is the isolated WAVEFORMATEX/WAVEFORMATEXTENSIBLE
// bridge, per spec.md §9: "Win32-specific WAVEFORMATEX/
// WAVEFORMATEXTENSIBLE bridging -> isolated adapter module at the
// boundary; the core knows only Speakers." No core package imports
// winfmt; it exists for a future Windows-only collaborator (DirectSound
// playback/capture, DirectShow media-type negotiation) that sits
// entirely outside this repository's scope.
package winfmt

import "github.com/doismellburning/valib/speakers"

// Format mirrors the Win32 WAVEFORMATEXTENSIBLE layout byte-for-byte
// (field order and width matter: this struct is marshaled directly into
// the bytes a real WAVEFORMATEXTENSIBLE occupies on Windows).
type Format struct {
	FormatTag      uint16
	Channels       uint16
	SamplesPerSec  uint32
	AvgBytesPerSec uint32
	BlockAlign     uint16
	BitsPerSample  uint16
	ExtraSize      uint16

	// WAVEFORMATEXTENSIBLE tail, valid iff FormatTag == FormatExtensible.
	ValidBitsPerSample uint16
	ChannelMask        uint32
	SubFormat          [16]byte
}

const (
	FormatPCM        = 0x0001
	FormatIEEEFloat  = 0x0003
	FormatExtensible = 0xfffe
)

// KSDATAFORMAT_SUBTYPE_PCM and ..._IEEE_FLOAT, the two sub-format GUIDs
// this bridge needs (first 2 bytes vary by format code, the trailing 14
// are the fixed Microsoft media-subtype suffix).
var (
	subtypePCM       = [16]byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xaa, 0x00, 0x38, 0x9b, 0x71}
	subtypeIEEEFloat = [16]byte{0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xaa, 0x00, 0x38, 0x9b, 0x71}
)

// FromSpeakers builds the WAVEFORMATEXTENSIBLE-shaped struct a Win32
// audio API would be given for spk. It returns ok=false for compressed
// or container formats, which have no fixed-bitrate WAVEFORMATEX
// representation.
func FromSpeakers(spk speakers.Speakers) (Format, bool) {
	var f Format
	f.Channels = uint16(spk.NumChannels())
	f.SamplesPerSec = uint32(spk.SampleRate)
	f.ChannelMask = uint32(spk.Mask)

	switch spk.Format {
	case speakers.PCM16LE:
		f.BitsPerSample = 16
	case speakers.PCM24LE:
		f.BitsPerSample = 24
	case speakers.PCM32LE:
		f.BitsPerSample = 32
	case speakers.PCMFloat:
		f.BitsPerSample = 32
		f.FormatTag = FormatIEEEFloat
	default:
		return Format{}, false
	}
	f.ValidBitsPerSample = f.BitsPerSample
	f.BlockAlign = f.Channels * (f.BitsPerSample / 8)
	f.AvgBytesPerSec = f.SamplesPerSec * uint32(f.BlockAlign)

	// Plain mono/stereo masks fit WAVEFORMATEX; anything else needs the
	// EXTENSIBLE tail so the mask is carried.
	plainMask := spk.Mask == speakers.ModeMono || spk.Mask == speakers.ModeStereo
	if f.Channels > 2 || !plainMask {
		f.FormatTag = FormatExtensible
		f.ExtraSize = 22
		if spk.Format == speakers.PCMFloat {
			f.SubFormat = subtypeIEEEFloat
		} else {
			f.SubFormat = subtypePCM
		}
	} else if f.FormatTag == 0 {
		f.FormatTag = FormatPCM
	}
	return f, true
}
