package graph

import "github.com/doismellburning/valib/speakers"

// NullFilter is the minimal legal Filter: it accepts any format and
// passes every chunk through unmodified, with in-place buffering (no
// latency). It exists as the simplest possible conformance fixture for
// the format-change and timing test suites.
type NullFilter struct {
	input     speakers.Speakers
	newStream bool
	open      bool
}

func NewNullFilter() *NullFilter { return &NullFilter{} }

func (f *NullFilter) CanOpen(speakers.Speakers) bool { return true }

func (f *NullFilter) Open(spk speakers.Speakers) error {
	f.input = spk
	f.open = true
	f.newStream = true
	return nil
}

func (f *NullFilter) Close() { f.open = false }

func (f *NullFilter) Reset() { f.newStream = false }

func (f *NullFilter) GetInput() speakers.Speakers  { return f.input }
func (f *NullFilter) GetOutput() speakers.Speakers { return f.input }

func (f *NullFilter) Process(in, out *speakers.Chunk) (bool, error) {
	if in.IsDummy() {
		return false, nil // in was already passed on by an earlier call
	}
	if in.Spk.Equal(f.input) == false && !in.IsDummy() {
		if !f.CanOpen(in.Spk) {
			return false, NewError(BadFormat, "process", nil)
		}
		f.input = in.Spk
		f.newStream = true
	}
	*out = *in
	*in = speakers.Dummy(in.Spk)
	return true, nil
}

func (f *NullFilter) Flush(out *speakers.Chunk) (bool, error) {
	return false, nil
}

func (f *NullFilter) NewStream() bool {
	v := f.newStream
	f.newStream = false
	return v
}

// Passthrough is functionally identical to NullFilter but modeled as a
// thin wrapper a pipeline can insert anywhere a Filter is expected
// without changing behavior — the graph-composition analogue of a
// no-op, used in the passthrough conformance tests (spec §8 property 5)
// separately from NullFilter so both code paths exercise the contract.
type Passthrough struct {
	NullFilter
}

func NewPassthrough() *Passthrough { return &Passthrough{} }
