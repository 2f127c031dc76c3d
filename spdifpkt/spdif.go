// Package spdifpkt implements the IEC 61937 (S-PDIF) burst framing that
// carries compressed AC-3/DTS/MPEG-Audio payloads inside a 16-bit
// stereo-shaped PCM container, per spec.md §6 and §4.3.5's spdif_type
// field. It packs a compressed frame into a burst and unpacks a burst
// back into the bare payload bytes parser.StreamBuffer expects.
package spdifpkt

import (
	"encoding/binary"

	"github.com/doismellburning/valib/parser"
)

// Burst-preamble words, IEC 61937 §6.1: Pa/Pb are the fixed sync
// pattern, Pc carries the data-type/stream-number, Pd the burst length.
const (
	Pa = 0xf872
	Pb = 0x4e1f

	// PreambleBytes is the byte length of the Pa/Pb/Pc/Pd header that
	// precedes every burst's payload.
	PreambleBytes = 8
)

// DataType is the IEC 61937 Pc data-type field (low 7 bits; bit 7 is
// the "stream number" flag in Pc, left at 0 here).
type DataType int

const (
	DataTypeNull     DataType = 0
	DataTypeAC3      DataType = 1
	DataTypeMPA1L1   DataType = 4
	DataTypeMPA1L23  DataType = 5
	DataTypeMPA2LSEF DataType = 8
	DataTypeDTS1     DataType = 11
	DataTypeDTS2     DataType = 12
	DataTypeDTS3     DataType = 13
	DataTypeEAC3     DataType = 21
)

// DataTypeFor maps a parser.FrameInfo's speaker format/spdif type to the
// IEC 61937 Pc code a burst header must carry.
func DataTypeFor(spdifType int) DataType { return DataType(spdifType) }

// Pack wraps payload (one compressed frame, in big-endian bit order) in
// a single IEC 61937 burst, padding to burstLen 16-bit words (burstLen
// must be at least the payload's word length; 0 means "pad to the next
// even byte count only"). The burst is 16-bit-stereo shaped: bytes
// alternate as if two interleaved PCM16 channels, little-endian words.
func Pack(payload []byte, dataType DataType, burstLen int) []byte {
	words := (len(payload) + 1) / 2
	if burstLen > words {
		words = burstLen
	}
	out := make([]byte, PreambleBytes+words*2)
	binary.LittleEndian.PutUint16(out[0:2], Pa)
	binary.LittleEndian.PutUint16(out[2:4], Pb)
	binary.LittleEndian.PutUint16(out[4:6], uint16(dataType))
	binary.LittleEndian.PutUint16(out[6:8], uint16(len(payload)*8))

	// Payload bytes are carried two-at-a-time per 16-bit word, high
	// byte first within the word per IEC 61937's big-endian-in-word
	// convention.
	for i := 0; i < len(payload); i += 2 {
		hi := payload[i]
		lo := byte(0)
		if i+1 < len(payload) {
			lo = payload[i+1]
		}
		out[PreambleBytes+i] = lo
		out[PreambleBytes+i+1] = hi
	}
	return out
}

// Unpack reverses Pack: buf is one burst (preamble plus padded payload
// words), and Unpack returns the bare payload bytes (trimmed to the
// bit-length Pd declares) plus the burst's data type. ok is false if
// buf is too short or the Pa/Pb sync words do not match.
func Unpack(buf []byte) (payload []byte, dataType DataType, ok bool) {
	if len(buf) < PreambleBytes {
		return nil, 0, false
	}
	if binary.LittleEndian.Uint16(buf[0:2]) != Pa || binary.LittleEndian.Uint16(buf[2:4]) != Pb {
		return nil, 0, false
	}
	dt := DataType(binary.LittleEndian.Uint16(buf[4:6]))
	bitLen := int(binary.LittleEndian.Uint16(buf[6:8]))
	byteLen := (bitLen + 7) / 8
	words := (byteLen + 1) / 2
	if PreambleBytes+words*2 > len(buf) {
		return nil, 0, false
	}

	out := make([]byte, byteLen)
	for i := 0; i < byteLen; i += 2 {
		lo := buf[PreambleBytes+i]
		hi := byte(0)
		if i+1 < len(buf)-PreambleBytes {
			hi = buf[PreambleBytes+i+1]
		}
		out[i] = hi
		if i+1 < byteLen {
			out[i+1] = lo
		}
	}
	return out, dt, true
}

// SyncInfo returns the trie that recognizes a burst's Pa/Pb preamble as
// it appears on the wire (Pa then Pb, each little-endian), the entry
// point parser.MultiFrameParser uses to detect an S-PDIF wrapped stream
// before handing its payload to the wrapped codec's own parser.
func SyncInfo() parser.SyncInfo {
	preamble := uint64(Pa&0xff)<<24 | uint64(Pa>>8)<<16 | uint64(Pb&0xff)<<8 | uint64(Pb>>8)
	trie := parser.Byte(preamble, 4)
	return parser.SyncInfo{Trie: trie, MinFrameSize: PreambleBytes, MaxFrameSize: PreambleBytes + 65536}
}
