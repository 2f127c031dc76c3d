package wavio

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/doismellburning/valib/speakers"
)

// WriterOptions configures Writer.
type WriterOptions struct {
	// RF64 forces the RF64 container from the start, needed for data
	// sizes that may reach or exceed 4 GiB. Without it, Close returns
	// an error if the data written would overflow a 32-bit RIFF size.
	RF64 bool
}

// Writer writes a RIFF or RF64 WAVE file to a seekable destination: it
// writes placeholder sizes up front and patches them on Close once the
// real data length is known, the standard single-pass WAVE-writer
// technique.
type Writer struct {
	w    io.WriteSeeker
	spk  speakers.Speakers
	opts WriterOptions

	dataStart int64 // file offset of the data chunk's payload
	dataLen   int64 // bytes written to the data chunk so far
}

const (
	riffHeaderLen = 12 // "RIFF" + size + "WAVE"
	ds64ChunkLen  = 36 // "ds64" + size(4) + riffSize64 + dataSize64 + sampleCount64 + tableLen(4)
)

// NewWriter opens a WAVE writer for spk at w's current position. spk
// must be a fixed-width PCM/float/double linear-adjacent raw format (a
// compressed Speakers has no fmt-chunk representation).
func NewWriter(w io.WriteSeeker, spk speakers.Speakers, opts WriterOptions) (*Writer, error) {
	f, err := speakersToFmt(spk)
	if err != nil {
		return nil, err
	}

	wr := &Writer{w: w, spk: spk, opts: opts}
	if opts.RF64 {
		if err := wr.writeRF64Header(f); err != nil {
			return nil, err
		}
	} else {
		if err := wr.writeRIFFHeader(f); err != nil {
			return nil, err
		}
	}
	return wr, nil
}

func (wr *Writer) writeRIFFHeader(f fmtInfo) error {
	if _, err := wr.w.Write([]byte("RIFF")); err != nil {
		return err
	}
	if err := writeU32(wr.w, 0); err != nil { // patched on Close
		return err
	}
	if _, err := wr.w.Write([]byte("WAVE")); err != nil {
		return err
	}
	if err := writeJunkChunk(wr.w); err != nil {
		return err
	}
	if err := writeFmtChunk(wr.w, f); err != nil {
		return err
	}
	if _, err := wr.w.Write([]byte("data")); err != nil {
		return err
	}
	if err := writeU32(wr.w, 0); err != nil { // patched on Close
		return err
	}
	pos, err := wr.w.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	wr.dataStart = pos
	return nil
}

// writeJunkChunk reserves a placeholder the same size as the ds64
// chunk (ds64ChunkLen-8 bytes of payload) so a plain RIFF file that
// turns out to need RF64 can be upgraded in place later by overwriting
// "JUNK"+size with "ds64"+its fields, without shifting any data.
func writeJunkChunk(w io.Writer) error {
	if _, err := w.Write([]byte("JUNK")); err != nil {
		return err
	}
	if err := writeU32(w, ds64ChunkLen-8); err != nil {
		return err
	}
	_, err := w.Write(make([]byte, ds64ChunkLen-8))
	return err
}

func (wr *Writer) writeRF64Header(f fmtInfo) error {
	if _, err := wr.w.Write([]byte("RF64")); err != nil {
		return err
	}
	if err := writeU32(wr.w, 0xffffffff); err != nil {
		return err
	}
	if _, err := wr.w.Write([]byte("WAVE")); err != nil {
		return err
	}
	if _, err := wr.w.Write([]byte("ds64")); err != nil {
		return err
	}
	if err := writeU32(wr.w, ds64ChunkLen-8); err != nil {
		return err
	}
	for i := 0; i < 3; i++ { // riffSize64, dataSize64, sampleCount64: patched on Close
		if err := writeU64(wr.w, 0); err != nil {
			return err
		}
	}
	if err := writeU32(wr.w, 0); err != nil { // table length, always 0 here
		return err
	}
	if err := writeFmtChunk(wr.w, f); err != nil {
		return err
	}
	if _, err := wr.w.Write([]byte("data")); err != nil {
		return err
	}
	if err := writeU32(wr.w, 0xffffffff); err != nil { // sentinel: real size lives in ds64
		return err
	}
	pos, err := wr.w.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	wr.dataStart = pos
	return nil
}

func writeFmtChunk(w io.Writer, f fmtInfo) error {
	extensible := f.tag == tagExtensible
	size := uint32(18) // cbSize present, zero, for the plain PCM/float case
	if extensible {
		size = 40
	}

	if _, err := w.Write([]byte("fmt ")); err != nil {
		return err
	}
	if err := writeU32(w, size); err != nil {
		return err
	}
	blockAlign := f.channels * (f.bitsPerSample / 8)
	avgBytes := f.sampleRate * uint32(blockAlign)

	for _, v := range []any{f.tag, f.channels, f.sampleRate, avgBytes, blockAlign, f.bitsPerSample} {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	switch {
	case extensible:
		if err := writeU16(w, 22); err != nil {
			return err
		}
		if err := writeU16(w, f.validBits); err != nil {
			return err
		}
		if err := writeU32(w, f.channelMask); err != nil {
			return err
		}
		guid := subFormatPCM
		if f.isFloat {
			guid = subFormatIEEEFloat
		}
		if _, err := w.Write(guid[:]); err != nil {
			return err
		}
	default:
		if err := writeU16(w, 0); err != nil { // cbSize
			return err
		}
	}
	return nil
}

// subFormatPCM/subFormatIEEEFloat are the KSDATAFORMAT_SUBTYPE_PCM and
// ..._IEEE_FLOAT media-subtype GUIDs WAVEFORMATEXTENSIBLE embeds.
var (
	subFormatPCM       = [16]byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xaa, 0x00, 0x38, 0x9b, 0x71}
	subFormatIEEEFloat = [16]byte{0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xaa, 0x00, 0x38, 0x9b, 0x71}
)

// WriteRaw appends raw interleaved PCM bytes to the data chunk.
func (wr *Writer) WriteRaw(buf []byte) error {
	n, err := wr.w.Write(buf)
	wr.dataLen += int64(n)
	return err
}

// WriteChunk writes a linear speakers.Chunk, interleaving its per-channel
// samples into the wire PCM format and appending to the data chunk.
func (wr *Writer) WriteChunk(c speakers.Chunk) error {
	buf, err := interleave(wr.spk, c)
	if err != nil {
		return err
	}
	return wr.WriteRaw(buf)
}

// Close patches the RIFF/RF64 size fields with the final data length.
// The underlying writer is not closed; callers that opened a file for
// w remain responsible for closing it.
func (wr *Writer) Close() error {
	if wr.opts.RF64 {
		return wr.closeRF64()
	}
	return wr.closeRIFF()
}

func (wr *Writer) closeRIFF() error {
	if wr.dataLen > 0xfffffffe {
		return fmt.Errorf("wavio: data size %d overflows RIFF 32-bit size; use WriterOptions.RF64", wr.dataLen)
	}
	end, err := wr.w.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	if wr.dataLen%2 == 1 {
		if _, err := wr.w.Write([]byte{0}); err != nil { // chunk pad byte
			return err
		}
		end++
	}
	riffSize := uint32(end - 8)
	if err := patchU32(wr.w, 4, riffSize); err != nil {
		return err
	}
	if err := patchU32(wr.w, wr.dataStart-4, uint32(wr.dataLen)); err != nil {
		return err
	}
	_, err = wr.w.Seek(end, io.SeekStart)
	return err
}

func (wr *Writer) closeRF64() error {
	end, err := wr.w.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	if wr.dataLen%2 == 1 {
		if _, err := wr.w.Write([]byte{0}); err != nil {
			return err
		}
		end++
	}
	riffSize := uint64(end - 8)
	sampleCount := uint64(0)
	if bytesPer := wr.spk.Format.SampleSize(); bytesPer > 0 && wr.spk.NumChannels() > 0 {
		sampleCount = uint64(wr.dataLen) / uint64(bytesPer*wr.spk.NumChannels())
	}
	ds64Offset := int64(riffHeaderLen + 8) // past "ds64"+size field
	if err := patchU64(wr.w, ds64Offset, riffSize); err != nil {
		return err
	}
	if err := patchU64(wr.w, ds64Offset+8, uint64(wr.dataLen)); err != nil {
		return err
	}
	if err := patchU64(wr.w, ds64Offset+16, sampleCount); err != nil {
		return err
	}
	_, err = wr.w.Seek(end, io.SeekStart)
	return err
}

func writeU16(w io.Writer, v uint16) error { return binary.Write(w, binary.LittleEndian, v) }
func writeU32(w io.Writer, v uint32) error { return binary.Write(w, binary.LittleEndian, v) }
func writeU64(w io.Writer, v uint64) error { return binary.Write(w, binary.LittleEndian, v) }

func patchU32(w io.WriteSeeker, offset int64, v uint32) error {
	if _, err := w.Seek(offset, io.SeekStart); err != nil {
		return err
	}
	return writeU32(w, v)
}

func patchU64(w io.WriteSeeker, offset int64, v uint64) error {
	if _, err := w.Seek(offset, io.SeekStart); err != nil {
		return err
	}
	return writeU64(w, v)
}
