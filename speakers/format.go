package speakers

// Format is the sum type of stream encodings Speakers can describe.
type Format int

const (
	Unknown Format = iota
	Linear
	PCM16LE
	PCM16BE
	PCM24LE
	PCM24BE
	PCM32LE
	PCM32BE
	PCMFloat
	PCMDouble
	LPCM20
	LPCM24
	PES
	SPDIF
	AC3
	EAC3
	AC3EAC3
	DTS
	MPA
	AAC
	FLAC
	Vorbis
	MLP
	TrueHD
	RawData
)

var formatNames = map[Format]string{
	Unknown: "unknown", Linear: "linear", PCM16LE: "pcm16le", PCM16BE: "pcm16be",
	PCM24LE: "pcm24le", PCM24BE: "pcm24be", PCM32LE: "pcm32le", PCM32BE: "pcm32be",
	PCMFloat: "pcmfloat", PCMDouble: "pcmdouble", LPCM20: "lpcm20", LPCM24: "lpcm24",
	PES: "pes", SPDIF: "spdif", AC3: "ac3", EAC3: "eac3", AC3EAC3: "ac3+eac3",
	DTS: "dts", MPA: "mpa", AAC: "aac", FLAC: "flac", Vorbis: "vorbis",
	MLP: "mlp", TrueHD: "truehd", RawData: "rawdata",
}

func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return "?"
}

// IsLinear reports whether f is the planar floating-point working format.
func (f Format) IsLinear() bool { return f == Linear }

// IsPCM reports whether f is a fixed raw PCM layout that SampleSize can
// measure (as opposed to a compressed or container format).
func (f Format) IsPCM() bool {
	switch f {
	case PCM16LE, PCM16BE, PCM24LE, PCM24BE, PCM32LE, PCM32BE, PCMFloat, PCMDouble:
		return true
	default:
		return false
	}
}

// IsCompressed reports whether f carries a bitstream that must be
// parsed into frames rather than interpreted as fixed-width samples.
func (f Format) IsCompressed() bool {
	switch f {
	case AC3, EAC3, AC3EAC3, DTS, MPA, AAC, FLAC, Vorbis, MLP, TrueHD:
		return true
	default:
		return false
	}
}

// IsContainer reports whether f wraps other streams rather than sample
// data directly (PES demux payloads, SPDIF bursts).
func (f Format) IsContainer() bool {
	return f == PES || f == SPDIF
}

// SampleSize returns the byte size of one interleaved sample for raw PCM
// formats, and 0 for formats with no fixed per-sample byte size.
func (f Format) SampleSize() int {
	switch f {
	case PCM16LE, PCM16BE:
		return 2
	case PCM24LE, PCM24BE:
		return 3
	case PCM32LE, PCM32BE, PCMFloat:
		return 4
	case PCMDouble:
		return 8
	default:
		return 0
	}
}
