package graph

import "github.com/doismellburning/valib/speakers"

// SourceFilter presents a (Source, Filter) pair as a single Source: it
// pulls from src, transparently re-opens filter whenever src.NewStream
// fires, and propagates NewStream so downstream sees the format change
// exactly once.
type SourceFilter struct {
	src    Source
	filter Filter

	opened    bool
	newStream bool
	pendingIn speakers.Chunk
	havePend  bool
}

func NewSourceFilter(src Source, filter Filter) *SourceFilter {
	return &SourceFilter{src: src, filter: filter}
}

func (sf *SourceFilter) GetOutput() speakers.Speakers {
	if !sf.opened {
		return speakers.Speakers{}
	}
	return sf.filter.GetOutput()
}

func (sf *SourceFilter) NewStream() bool {
	v := sf.newStream
	sf.newStream = false
	return v
}

func (sf *SourceFilter) Reset() {
	sf.src.Reset()
	sf.filter.Reset()
	sf.opened = false
	sf.newStream = false
	sf.havePend = false
}

func (sf *SourceFilter) ensureOpen(spk speakers.Speakers) error {
	if sf.opened && sf.filter.GetInput().Equal(spk) {
		return nil
	}
	if sf.opened {
		// Format changed underneath us: drain, then re-open (§4.2.3.2).
		var drain speakers.Chunk
		for {
			ok, err := sf.filter.Flush(&drain)
			if err != nil {
				return err
			}
			if !ok {
				break
			}
		}
	}
	if !sf.filter.CanOpen(spk) {
		return NewError(BadFormat, "open", nil)
	}
	if err := sf.filter.Open(spk); err != nil {
		return err
	}
	sf.opened = true
	sf.newStream = true
	return nil
}

func (sf *SourceFilter) GetChunk(out *speakers.Chunk) (bool, error) {
	for {
		if !sf.havePend {
			var in speakers.Chunk
			more, err := sf.src.GetChunk(&in)
			if err != nil {
				return false, err
			}
			if !more {
				// Upstream EOS: drain the filter, then report EOS.
				var drain speakers.Chunk
				ok, err := sf.filter.Flush(&drain)
				if err != nil {
					return false, err
				}
				if ok {
					*out = drain
					return true, nil
				}
				return false, nil
			}
			if sf.src.NewStream() || !sf.opened {
				if err := sf.ensureOpen(in.Spk); err != nil {
					return false, err
				}
			}
			sf.pendingIn = in
			sf.havePend = true
		}

		var produced speakers.Chunk
		ok, err := sf.filter.Process(&sf.pendingIn, &produced)
		if err != nil {
			return false, err
		}
		if sf.pendingIn.IsDummy() {
			sf.havePend = false
		}
		if ok {
			*out = produced
			if sf.filter.NewStream() {
				sf.newStream = true
			}
			return true, nil
		}
		if sf.havePend {
			continue
		}
		// Nothing produced and no more buffered input: go get more.
	}
}

// SinkFilter is the dual of SourceFilter: it accepts chunks, runs them
// through filter, and re-opens sink whenever the filter's output format
// changes.
type SinkFilter struct {
	sink   Sink
	filter Filter

	sinkOpened bool
}

func NewSinkFilter(sink Sink, filter Filter) *SinkFilter {
	return &SinkFilter{sink: sink, filter: filter}
}

func (sf *SinkFilter) CanOpen(spk speakers.Speakers) bool { return sf.filter.CanOpen(spk) }

func (sf *SinkFilter) Open(spk speakers.Speakers) error {
	if !sf.filter.CanOpen(spk) {
		return NewError(BadFormat, "open", nil)
	}
	return sf.filter.Open(spk)
}

func (sf *SinkFilter) Close() {
	sf.filter.Close()
	if sf.sinkOpened {
		sf.sink.Close()
		sf.sinkOpened = false
	}
}

func (sf *SinkFilter) Reset() {
	sf.filter.Reset()
	if sf.sinkOpened {
		sf.sink.Reset()
	}
}

func (sf *SinkFilter) GetInput() speakers.Speakers { return sf.filter.GetInput() }

func (sf *SinkFilter) ensureSinkOpen(spk speakers.Speakers) error {
	if sf.sinkOpened && sf.sink.GetInput().Equal(spk) {
		return nil
	}
	if sf.sinkOpened {
		sf.sink.Close()
	}
	if !sf.sink.CanOpen(spk) {
		return NewError(BadFormat, "open", nil)
	}
	if err := sf.sink.Open(spk); err != nil {
		return err
	}
	sf.sinkOpened = true
	return nil
}

func (sf *SinkFilter) Process(in *speakers.Chunk) error {
	for {
		var out speakers.Chunk
		ok, err := sf.filter.Process(in, &out)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if sf.filter.NewStream() || !sf.sinkOpened {
			if err := sf.ensureSinkOpen(out.Spk); err != nil {
				return err
			}
		}
		if err := sf.sink.Process(&out); err != nil {
			return err
		}
		if in.IsDummy() {
			return nil
		}
	}
}
