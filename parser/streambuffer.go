package parser

import "github.com/doismellburning/valib/internal/synctab"

// state is StreamBuffer's position in the Sync/HeaderValidate/Frame/
// Drain state machine (spec §4.3.2).
type state int

const (
	stateSync state = iota
	stateHeaderValidate
	stateFrame
	stateDrain
)

// cursor unifies "bytes already scanned that must be replayed" (after a
// HeaderValidate rejection rewinds past them) with "fresh bytes still
// in the caller's slice", so the scanning loop below doesn't need two
// code paths for the two sources.
type cursor struct {
	replay []byte
	data   *[]byte
}

func (c *cursor) next() (byte, bool) {
	if len(c.replay) > 0 {
		b := c.replay[0]
		c.replay = c.replay[1:]
		return b, true
	}
	if len(*c.data) == 0 {
		return 0, false
	}
	b := (*c.data)[0]
	*c.data = (*c.data)[1:]
	return b, true
}

// StreamBuffer locates frame starts in a byte stream using a compiled
// SyncTrie, assembles whole frames across input chunk boundaries, and
// tracks stream-parameter changes (spec §4.3). One StreamBuffer drives
// one CodecParser; MultiFrameParser tries several in turn and locks
// onto the first one that completes a frame.
//
// Sync-word bytes (at most a handful) are always copied into the
// in-flight candidate buffer as they're matched, since the scan must
// be able to rewind into them on a HeaderValidate rejection. Every
// returned Frame is a fresh copy that never aliases the caller's data:
// when the entire remaining body is already available in one LoadFrame
// call it is copied in one step, otherwise it is gathered in the
// private accumulator across calls.
type StreamBuffer struct {
	codec      CodecParser
	table      *synctab.Table
	minFrame   int
	maxFrame   int
	headerSize int

	st        state
	trieState int
	curCand   []byte // in-flight sync candidate / header-in-progress bytes

	info FrameInfo

	frameAcc     []byte // frame body accumulator (bridging path)
	frameNeeded  int    // remaining body bytes needed; -1 = unknown size (scan for next sync instead)
	scanningNext bool   // unknown-size frames: curCand already folded into frameAcc and now scans the following candidate

	lastHeader     []byte
	haveLastHeader bool

	errorCount int
	truncated  bool

	eof bool
}

func New(codec CodecParser) *StreamBuffer {
	si := codec.SyncInfo()
	return &StreamBuffer{
		codec:      codec,
		table:      si.Trie.Compile(),
		minFrame:   si.MinFrameSize,
		maxFrame:   si.MaxFrameSize,
		headerSize: codec.HeaderSize(),
	}
}

// ErrorCount is the number of times sync was lost and resync was
// attempted. Per the error-handling design, this never surfaces as an
// error return — parsers count and resync, they don't raise.
func (sb *StreamBuffer) ErrorCount() int { return sb.errorCount }

// Truncated reports whether the most recent Flush dropped a partial
// trailing frame because the codec doesn't tolerate a tail frame (the
// DTS-over-SPDIF case called out in spec §9's open question).
func (sb *StreamBuffer) Truncated() bool { return sb.truncated }

// Result is one frame StreamBuffer has fully assembled.
type Result struct {
	Frame     []byte
	Info      FrameInfo
	NewStream bool
}

// resetCandidate discards the in-flight sync/header candidate and
// returns the automaton to its root state.
func (sb *StreamBuffer) resetCandidate() {
	sb.st = stateSync
	sb.trieState = 0
	sb.curCand = nil
	sb.scanningNext = false
}

// LoadFrame consumes a prefix of *data, advancing it past whatever was
// used, and returns the next complete frame if one is ready. ok==false
// with *data now empty means "call again with more input"; it is not
// an error and does not affect ErrorCount.
func (sb *StreamBuffer) LoadFrame(data *[]byte) (Result, bool) {
	cur := cursor{data: data}
	for {
		switch sb.st {
		case stateSync:
			if !sb.scanSync(&cur) {
				return Result{}, false
			}
			sb.st = stateHeaderValidate
		case stateHeaderValidate:
			if !sb.fillHeader(&cur) {
				return Result{}, false
			}
			info, ok := sb.codec.ParseHeader(sb.curCand[:sb.headerSize])
			if !ok {
				sb.errorCount++
				// Rewind to candidatePos+1: replay everything after
				// the candidate's first byte before resuming the scan.
				cur.replay = append(append([]byte(nil), sb.curCand[1:]...), cur.replay...)
				sb.resetCandidate()
				continue
			}
			sb.info = info
			sb.frameAcc = nil
			if info.FrameSize > 0 {
				sb.frameNeeded = info.FrameSize - len(sb.curCand)
			} else {
				sb.frameNeeded = -1 // unknown size: scan for the next sync instead
			}
			sb.st = stateFrame
		case stateFrame:
			wasUnknownSize := sb.frameNeeded < 0
			header := sb.pendingHeader(wasUnknownSize)
			frame, ok := sb.fillFrame(&cur)
			if !ok {
				return Result{}, false
			}
			newStream := sb.compareAndLatch(header)
			if wasUnknownSize {
				// fillFrame already left the next candidate's bytes in
				// curCand/trieState and advanced st to HeaderValidate;
				// resetting here would discard them.
			} else {
				sb.resetCandidate()
			}
			return Result{Frame: frame, Info: sb.info, NewStream: newStream}, true
		case stateDrain:
			return Result{}, false
		}
	}
}

// scanSync advances the trie over cur's bytes until it either accepts
// (leaving the matched bytes in sb.curCand and returning true) or runs
// out of input (persisting trieState/curCand for the next call).
func (sb *StreamBuffer) scanSync(cur *cursor) bool {
	for {
		b, ok := cur.next()
		if !ok {
			return false
		}
		entry := sb.table.Step(sb.trieState, b)
		switch entry.Decision {
		case synctab.Accept:
			sb.curCand = append(sb.curCand, b)
			return true
		case synctab.Match:
			sb.curCand = append(sb.curCand, b)
			sb.trieState = entry.Next
		case synctab.Reject:
			sb.errorCount++
			// Rewind into the rejected candidate: its second byte
			// onward, including this rejected byte, might itself start
			// a valid sync.
			if len(sb.curCand) > 0 {
				replay := append(append([]byte(nil), sb.curCand[1:]...), b)
				cur.replay = append(replay, cur.replay...)
			}
			sb.curCand = nil
			sb.trieState = 0
		}
	}
}

// fillHeader extends sb.curCand until it holds at least headerSize
// bytes, pulling from cur as needed.
func (sb *StreamBuffer) fillHeader(cur *cursor) bool {
	for len(sb.curCand) < sb.headerSize {
		b, ok := cur.next()
		if !ok {
			return false
		}
		sb.curCand = append(sb.curCand, b)
	}
	return true
}

// fillFrame completes the current frame's body. For known-size frames
// it copies the whole remaining body in one step whenever it is already
// present in *cur.data with no bridging in flight; otherwise it falls
// back to the accumulator. Either way the frame is a copy. For
// unknown-size frames (frameNeeded
// == -1, e.g. SPDIF/DTS) it scans for the next sync occurrence and
// treats everything up to (not including) that position as the frame.
func (sb *StreamBuffer) fillFrame(cur *cursor) ([]byte, bool) {
	if sb.frameNeeded >= 0 {
		if len(sb.frameAcc) == 0 && len(cur.replay) == 0 && len(*cur.data) >= sb.frameNeeded {
			body := (*cur.data)[:sb.frameNeeded]
			*cur.data = (*cur.data)[sb.frameNeeded:]
			frame := append(append([]byte(nil), sb.curCand...), body...)
			return frame, true
		}
		for sb.frameNeeded > 0 {
			b, ok := cur.next()
			if !ok {
				return nil, false
			}
			sb.frameAcc = append(sb.frameAcc, b)
			sb.frameNeeded--
		}
		return append(append([]byte(nil), sb.curCand...), sb.frameAcc...), true
	}

	// Unknown size: look for the next sync acceptance and cut the frame
	// there. The current frame's header (sb.curCand going in) is folded
	// into the accumulator once, up front, since from here on every
	// matched byte belongs to either this frame's body or the next
	// frame's candidate.
	if !sb.scanningNext {
		sb.frameAcc = append(sb.frameAcc, sb.curCand...)
		sb.curCand = nil
		sb.trieState = 0
		sb.scanningNext = true
	}
	for {
		b, ok := cur.next()
		if !ok {
			return nil, false
		}
		entry := sb.table.Step(sb.trieState, b)
		switch entry.Decision {
		case synctab.Accept:
			sb.curCand = append(sb.curCand, b)
			frame := sb.frameAcc
			sb.frameAcc = nil
			sb.scanningNext = false
			sb.st = stateHeaderValidate
			return frame, true
		case synctab.Match:
			sb.curCand = append(sb.curCand, b)
			sb.trieState = entry.Next
		case synctab.Reject:
			if len(sb.curCand) > 0 {
				// Only the candidate's first byte is known to be body;
				// its remaining bytes and b are rescanned for a sync.
				sb.frameAcc = append(sb.frameAcc, sb.curCand[0])
				replay := append(append([]byte(nil), sb.curCand[1:]...), b)
				cur.replay = append(replay, cur.replay...)
			} else {
				sb.frameAcc = append(sb.frameAcc, b)
			}
			sb.curCand = nil
			sb.trieState = 0
		}
	}
}

// pendingHeader captures the completed frame's header bytes before
// fillFrame runs. For unknown-size frames fillFrame overwrites curCand
// with the following frame's candidate, so the header must be saved
// first; known-size frames leave curCand untouched and don't need it.
func (sb *StreamBuffer) pendingHeader(unknownSize bool) []byte {
	if !unknownSize {
		return nil
	}
	return append([]byte(nil), sb.curCand[:sb.headerSize]...)
}

// compareAndLatch runs CompareHeaders against the previous frame's
// header and records the current one, returning whether NewStream
// should be set. header may be nil, meaning "read it from curCand"
// (the known-size-frame case).
func (sb *StreamBuffer) compareAndLatch(header []byte) bool {
	if header == nil {
		header = sb.curCand
		if len(header) > sb.headerSize {
			header = header[:sb.headerSize]
		}
	}
	newStream := !sb.haveLastHeader
	if sb.haveLastHeader {
		newStream = !sb.codec.CompareHeaders(sb.lastHeader, header)
	}
	sb.lastHeader = append([]byte(nil), header...)
	sb.haveLastHeader = true
	if refined := sb.codec.BuildSyncInfo(header, sb.info); refined.Trie.MaxLength() > 0 {
		sb.table = refined.Trie.Compile()
	}
	return newStream
}

// Flush signals upstream EOS: if a partial frame is held and the codec
// tolerates a tail frame, it is emitted once; otherwise it is dropped
// and Truncated() reports true. Call until ok is false.
func (sb *StreamBuffer) Flush() (Result, bool) {
	if sb.eof {
		return Result{}, false
	}
	sb.eof = true
	if sb.st == stateFrame && sb.frameNeeded < 0 && len(sb.frameAcc)+len(sb.curCand) > 0 {
		// Unknown-size codec (e.g. DTS-over-SPDIF): the spec's chosen
		// behavior is to drop this tail rather than guess its length.
		sb.truncated = true
		sb.resetCandidate()
		sb.st = stateDrain
		return Result{}, false
	}
	if sb.st == stateFrame && sb.frameNeeded >= 0 {
		// Known-size codec (AC-3, MPA): emit the tail even if frameNeeded
		// is still positive, i.e. the body was cut short by EOS.
		frame := append(append([]byte(nil), sb.curCand...), sb.frameAcc...)
		newStream := sb.compareAndLatch(nil)
		sb.resetCandidate()
		sb.st = stateDrain
		return Result{Frame: frame, Info: sb.info, NewStream: newStream}, true
	}
	sb.resetCandidate()
	sb.st = stateDrain
	return Result{}, false
}

// Reset returns the StreamBuffer to its initial state, dropping all
// buffered data, as if newly constructed.
func (sb *StreamBuffer) Reset() {
	sb.resetCandidate()
	sb.table = sb.codec.SyncInfo().Trie.Compile()
	sb.frameAcc = nil
	sb.frameNeeded = 0
	sb.lastHeader = nil
	sb.haveLastHeader = false
	sb.errorCount = 0
	sb.truncated = false
	sb.eof = false
}
