package parser

// CodecParser is the codec-parametric interface StreamBuffer drives
// (spec §4.3.5). Implementations live in parser/ac3, parser/dts,
// parser/mpa, parser/aac, parser/pes.
type CodecParser interface {
	// Name identifies the codec for diagnostics and MultiFrameParser
	// reporting.
	Name() string

	SyncInfo() SyncInfo

	HeaderSize() int

	// ParseHeader validates and decodes a candidate header. buf is at
	// least HeaderSize() bytes, sourced from the trie's accept
	// position. ok is false if the header fails validation (wrong
	// checksum, reserved field set, etc.) even though the sync trie
	// accepted it.
	ParseHeader(buf []byte) (info FrameInfo, ok bool)

	// CompareHeaders reports whether two headers describe the same
	// stream parameters, used to detect NewStream between consecutive
	// frames.
	CompareHeaders(a, b []byte) bool

	// BuildSyncInfo optionally narrows the trie once stream parameters
	// are known (e.g. DTS locks to one bitstream endianness after its
	// first frame). The default implementation should return the same
	// SyncInfo unchanged.
	BuildSyncInfo(frame []byte, info FrameInfo) SyncInfo
}
