package parser

// MultiFrameParser runs several CodecParsers against a stream whose
// codec isn't known yet, and narrows to whichever one first completes
// a frame. Until that happens, each incoming chunk is appended to a
// small probe buffer and re-tried against every candidate from its
// start; this trades a bounded amount of re-scanning during the probe
// phase for a much simpler implementation than keeping N independent
// incremental scanners' states reconciled against a single input
// cursor. Once a codec locks in, all further input goes straight to
// its StreamBuffer at normal streaming cost.
type MultiFrameParser struct {
	codecs []CodecParser
	probe  []byte

	locked      *StreamBuffer
	lockedCodec CodecParser
}

// maxProbe bounds how much unsynced input MultiFrameParser will hold
// before a codec locks in, so a stream that never matches any
// registered codec doesn't grow the probe buffer without limit.
const maxProbe = 64 * 1024

func NewMulti(codecs ...CodecParser) *MultiFrameParser {
	return &MultiFrameParser{codecs: codecs}
}

// Locked returns the codec MultiFrameParser has settled on, or nil if
// still probing.
func (mp *MultiFrameParser) Locked() CodecParser { return mp.lockedCodec }

func (mp *MultiFrameParser) LoadFrame(data *[]byte) (Result, CodecParser, bool) {
	if mp.locked != nil {
		r, ok := mp.locked.LoadFrame(data)
		return r, mp.lockedCodec, ok
	}

	mp.probe = append(mp.probe, *data...)
	*data = (*data)[len(*data):]

	for _, codec := range mp.codecs {
		sb := New(codec)
		tmp := append([]byte(nil), mp.probe...)
		if r, ok := sb.LoadFrame(&tmp); ok {
			mp.locked = sb
			mp.lockedCodec = codec
			mp.probe = nil
			*data = tmp // probe bytes after this frame go back to the caller
			return r, codec, true
		}
	}

	if len(mp.probe) > maxProbe {
		mp.probe = append([]byte(nil), mp.probe[len(mp.probe)-maxProbe:]...)
	}
	return Result{}, nil, false
}

// Reset drops any lock-in and probe state, as if newly constructed.
func (mp *MultiFrameParser) Reset() {
	mp.probe = nil
	mp.locked = nil
	mp.lockedCodec = nil
}
