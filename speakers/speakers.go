package speakers

import "strconv"

// Relation describes how a stereo/matrixed pair of channels should be
// interpreted downstream (Dolby Surround decode, sum/difference, or
// none).
type Relation int

const (
	RelationNone Relation = iota
	RelationDolby
	RelationDolbyPL2
	RelationSumDiff
)

// Speakers is the immutable description of a PCM or compressed stream:
// its wire/working Format, channel Mask, sample rate, stereo Relation,
// and full-scale Level. It is small and copyable, but not comparable
// with == (FormatData holds a byte slice); compare two Speakers with
// Equal.
type Speakers struct {
	Format     Format
	Mask       Mask
	SampleRate int
	Relation   Relation
	Level      float64
	FormatData Blob
}

// New builds a Speakers for a linear/PCM format, defaulting Level to the
// natural full-scale value for integer PCM formats (e.g. 32767.5 for
// 16-bit) and 1.0 for float/double/linear.
func New(format Format, mask Mask, rate int) Speakers {
	return Speakers{
		Format:     format,
		Mask:       mask,
		SampleRate: rate,
		Level:      defaultLevel(format),
	}
}

func defaultLevel(f Format) float64 {
	switch f {
	case PCM16LE, PCM16BE:
		return 32767.5
	case PCM24LE, PCM24BE:
		return 8388607.5
	case PCM32LE, PCM32BE:
		return 2147483647.5
	case LPCM20:
		return 524287.5
	case LPCM24:
		return 8388607.5
	default:
		return 1.0
	}
}

// NumChannels is the popcount(mask) invariant.
func (s Speakers) NumChannels() int { return s.Mask.NumChannels() }

// Valid checks the data-model invariants: Linear and PCM* formats must
// declare a non-empty mask and a positive sample rate.
func (s Speakers) Valid() bool {
	if s.Format.IsLinear() || s.Format.IsPCM() {
		if s.Mask == 0 || s.SampleRate <= 0 {
			return false
		}
	}
	return true
}

// Equal compares every field, FormatData by byte content, per the data
// model's equality rule.
func (s Speakers) Equal(o Speakers) bool {
	return s.Format == o.Format &&
		s.Mask == o.Mask &&
		s.SampleRate == o.SampleRate &&
		s.Relation == o.Relation &&
		s.Level == o.Level &&
		s.FormatData.Equal(o.FormatData)
}

func (s Speakers) String() string {
	if s.Format.IsCompressed() || s.Format.IsContainer() {
		return s.Format.String()
	}
	return s.Format.String() + " " + s.Mask.String() + " " + strconv.Itoa(s.SampleRate) + "Hz"
}
