package wavio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/doismellburning/valib/speakers"
	"github.com/go-audio/riff"
)

// Reader reads PCM samples out of a RIFF or RF64 WAVE file as linear
// speakers.Chunk values.
type Reader struct {
	r   io.Reader
	spk speakers.Speakers

	dataRemaining int64 // -1 once exhausted
}

// Open reads the file header (fmt chunk, and for RF64 the ds64 chunk)
// and positions r at the start of PCM sample data. It returns an error
// wrapping ErrNotWave if r does not begin with a RIFF or RF64 WAVE
// header.
func Open(r io.Reader) (*Reader, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotWave, err)
	}
	switch string(magic[:]) {
	case "RIFF":
		return openRIFF(r)
	case "RF64":
		return openRF64(r)
	default:
		return nil, fmt.Errorf("%w: magic %q", ErrNotWave, magic)
	}
}

func openRIFF(r io.Reader) (*Reader, error) {
	// riff.Parser expects to read the "RIFF" magic itself, so feed it a
	// reader that replays the four bytes Open already consumed.
	p := riff.New(io.MultiReader(bytes.NewReader([]byte("RIFF")), r))

	var f fmtInfo
	var haveFmt bool

	for {
		chunk, err := p.NextChunk()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch string(chunk.ID[:]) {
		case "fmt ":
			parsed, err := readFmtChunk(chunk, chunk.Size)
			if err != nil {
				return nil, err
			}
			f = parsed
			haveFmt = true
			chunk.Drain()
		case "data":
			if !haveFmt {
				return nil, ErrNoFmt
			}
			// Stop here: the caller streams the data chunk itself via
			// Reader.ReadChunk; do not Drain it.
			spk, err := fmtToSpeakers(f)
			if err != nil {
				return nil, err
			}
			return &Reader{r: chunk, spk: spk, dataRemaining: int64(chunk.Size)}, nil
		default:
			chunk.Drain()
		}
	}
	return nil, ErrNoFmt
}

func openRF64(r io.Reader) (*Reader, error) {
	if err := skipBytes(r, 4); err != nil { // RIFF size sentinel (0xFFFFFFFF)
		return nil, err
	}
	var format [4]byte
	if _, err := io.ReadFull(r, format[:]); err != nil {
		return nil, err
	}
	if string(format[:]) != "WAVE" {
		return nil, ErrNotWave
	}

	var id [4]byte
	var size uint32
	if _, err := io.ReadFull(r, id[:]); err != nil {
		return nil, err
	}
	if string(id[:]) != "ds64" {
		return nil, fmt.Errorf("%w: RF64 missing leading ds64 chunk", ErrNotWave)
	}
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return nil, err
	}
	ds64 := make([]byte, size)
	if _, err := io.ReadFull(r, ds64); err != nil {
		return nil, err
	}
	dataSize64 := int64(binary.LittleEndian.Uint64(ds64[8:16]))

	var f fmtInfo
	var haveFmt bool
	for {
		var cid [4]byte
		var csize uint32
		if _, err := io.ReadFull(r, cid[:]); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.LittleEndian, &csize); err != nil {
			return nil, err
		}
		switch string(cid[:]) {
		case "fmt ":
			buf := make([]byte, csize)
			if _, err := io.ReadFull(r, buf); err != nil {
				return nil, err
			}
			parsed, err := parseFmtBytes(buf)
			if err != nil {
				return nil, err
			}
			f = parsed
			haveFmt = true
			if csize%2 == 1 {
				skipBytes(r, 1)
			}
		case "data":
			if !haveFmt {
				return nil, ErrNoFmt
			}
			spk, err := fmtToSpeakers(f)
			if err != nil {
				return nil, err
			}
			return &Reader{r: r, spk: spk, dataRemaining: dataSize64}, nil
		default:
			if err := skipBytes(r, int64(csize)+int64(csize%2)); err != nil {
				return nil, err
			}
		}
	}
}

// Speakers returns the stream format Open derived from the fmt chunk.
func (rd *Reader) Speakers() speakers.Speakers { return rd.spk }

// ReadChunk reads up to maxFrames frames and returns them as a linear
// Chunk. ok is false once the data chunk is exhausted.
func (rd *Reader) ReadChunk(maxFrames int) (c speakers.Chunk, ok bool, err error) {
	if rd.dataRemaining <= 0 {
		return speakers.Chunk{}, false, nil
	}
	frameBytes := int64(len(WaveOrder(rd.spk.Mask)) * rd.spk.Format.SampleSize())
	want := int64(maxFrames) * frameBytes
	if want > rd.dataRemaining {
		want = rd.dataRemaining
	}
	buf := make([]byte, want)
	n, err := io.ReadFull(rd.r, buf)
	if err != nil && err != io.ErrUnexpectedEOF {
		return speakers.Chunk{}, false, err
	}
	buf = buf[:n]
	rd.dataRemaining -= int64(n)

	c, derr := deinterleave(rd.spk, buf)
	if derr != nil {
		return speakers.Chunk{}, false, derr
	}
	return c, true, nil
}

func readFmtChunk(r io.Reader, size int) (fmtInfo, error) {
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return fmtInfo{}, err
	}
	return parseFmtBytes(buf)
}

func parseFmtBytes(buf []byte) (fmtInfo, error) {
	if len(buf) < 16 {
		return fmtInfo{}, ErrBadFmt
	}
	var f fmtInfo
	f.tag = binary.LittleEndian.Uint16(buf[0:2])
	f.channels = binary.LittleEndian.Uint16(buf[2:4])
	f.sampleRate = binary.LittleEndian.Uint32(buf[4:8])
	f.bitsPerSample = binary.LittleEndian.Uint16(buf[14:16])
	f.validBits = f.bitsPerSample

	if f.tag == tagExtensible && len(buf) >= 40 {
		f.validBits = binary.LittleEndian.Uint16(buf[18:20])
		f.channelMask = binary.LittleEndian.Uint32(buf[20:24])
		subTag := binary.LittleEndian.Uint16(buf[24:26])
		f.isFloat = subTag == tagIEEEFloat
	} else {
		f.isFloat = f.tag == tagIEEEFloat
	}
	return f, nil
}

func skipBytes(r io.Reader, n int64) error {
	_, err := io.CopyN(io.Discard, r, n)
	return err
}
