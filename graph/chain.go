package graph

import "github.com/doismellburning/valib/speakers"

// FilterChain composes an ordered list of Filters into a single Filter.
// Its input format is the first filter's input; its output is the last
// filter's output. A format change anywhere in the chain is handled by
// the same re-open-on-format-change rule as a single filter (§4.2.3):
// each stage re-opens itself against the new format its upstream
// neighbor now produces.
type FilterChain struct {
	filters []Filter
	// pending holds, per stage, chunks that stage has produced but
	// that have not yet been handed to the next stage -- needed
	// because one Process call on an upstream stage can yield a chunk
	// the downstream stage only partially consumes before needing to
	// be polled again.
	pending   [][]speakers.Chunk
	newStream bool
}

// NewFilterChain builds a chain from filters, in processing order.
func NewFilterChain(filters ...Filter) *FilterChain {
	return &FilterChain{filters: filters, pending: make([][]speakers.Chunk, len(filters))}
}

func (fc *FilterChain) CanOpen(spk speakers.Speakers) bool {
	if len(fc.filters) == 0 {
		return true
	}
	return fc.filters[0].CanOpen(spk)
}

func (fc *FilterChain) Open(spk speakers.Speakers) error {
	in := spk
	for _, f := range fc.filters {
		if !f.CanOpen(in) {
			return NewError(BadFormat, "open", nil)
		}
		if err := f.Open(in); err != nil {
			return err
		}
		in = f.GetOutput()
	}
	for i := range fc.pending {
		fc.pending[i] = nil
	}
	fc.newStream = true
	return nil
}

func (fc *FilterChain) Close() {
	for _, f := range fc.filters {
		f.Close()
	}
}

func (fc *FilterChain) Reset() {
	for _, f := range fc.filters {
		f.Reset()
	}
	for i := range fc.pending {
		fc.pending[i] = nil
	}
}

func (fc *FilterChain) GetInput() speakers.Speakers {
	if len(fc.filters) == 0 {
		return speakers.Speakers{}
	}
	return fc.filters[0].GetInput()
}

func (fc *FilterChain) GetOutput() speakers.Speakers {
	if len(fc.filters) == 0 {
		return speakers.Speakers{}
	}
	return fc.filters[len(fc.filters)-1].GetOutput()
}

// pump drains as many stages as possible given the current external
// input (nil once the caller's `in` has been consumed) and the
// already-pending per-stage backlog, stopping once the last stage has
// produced a chunk or no further progress is possible.
func (fc *FilterChain) pump(in *speakers.Chunk, flushing bool) (speakers.Chunk, bool, error) {
	n := len(fc.filters)
	if n == 0 {
		if in != nil {
			out := *in
			*in = speakers.Dummy(in.Spk)
			return out, true, nil
		}
		return speakers.Chunk{}, false, nil
	}

	for {
		progressed := false
		for i, f := range fc.filters {
			if len(fc.pending[i]) > 0 {
				continue // downstream hasn't drained this stage's backlog yet
			}
			var src *speakers.Chunk
			if i == 0 {
				src = in
			} else if len(fc.pending[i-1]) > 0 {
				src = &fc.pending[i-1][0]
			}
			if src == nil {
				continue
			}

			var stageOut speakers.Chunk
			var produced bool
			var err error
			if flushing && i == 0 {
				produced, err = f.Flush(&stageOut)
			} else {
				produced, err = f.Process(src, &stageOut)
			}
			if err != nil {
				return speakers.Chunk{}, false, err
			}
			if i > 0 && src.IsDummy() {
				fc.pending[i-1] = fc.pending[i-1][1:]
			}
			if produced {
				fc.pending[i] = append(fc.pending[i], stageOut)
				progressed = true
			}
		}
		if len(fc.pending[n-1]) > 0 {
			out := fc.pending[n-1][0]
			fc.pending[n-1] = fc.pending[n-1][1:]
			return out, true, nil
		}
		if !progressed {
			return speakers.Chunk{}, false, nil
		}
	}
}

func (fc *FilterChain) Process(in *speakers.Chunk, out *speakers.Chunk) (bool, error) {
	result, ok, err := fc.pump(in, false)
	if err != nil {
		return false, err
	}
	if ok {
		*out = result
	}
	return ok, nil
}

func (fc *FilterChain) Flush(out *speakers.Chunk) (bool, error) {
	empty := speakers.Dummy(fc.GetInput())
	result, ok, err := fc.pump(&empty, true)
	if err != nil {
		return false, err
	}
	if ok {
		*out = result
	}
	return ok, nil
}

func (fc *FilterChain) NewStream() bool {
	v := fc.newStream
	fc.newStream = false
	if len(fc.filters) > 0 {
		// Surface the last stage's own NewStream too, since a
		// mid-chain re-open also counts as a new stream downstream.
		v = v || fc.filters[len(fc.filters)-1].NewStream()
	}
	return v
}
