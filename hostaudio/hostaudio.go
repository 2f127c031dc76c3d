// Package hostaudio wraps a live soundcard as graph.Sink (playback)
// and graph.Source (capture), the portable analogue of the spec's
// Win32 DirectSound collaborator (§6). It is grounded on the teacher's
// ALSA/OSS open/read/write device loop in src/audio.go, restructured
// around gordonklaus/portaudio's callback-free blocking stream API,
// which offers the same open/read-or-write/close shape.
package hostaudio

import (
	"github.com/gordonklaus/portaudio"

	"github.com/doismellburning/valib/graph"
	"github.com/doismellburning/valib/logging"
	"github.com/doismellburning/valib/speakers"
)

var log = logging.For("hostaudio")

// Init must be called once before any Sink/Source is opened, and
// Terminate once the process is done with host audio; both delegate
// straight to portaudio's global init/terminate pair.
func Init() error      { return portaudio.Initialize() }
func Terminate() error { return portaudio.Terminate() }

// Sink plays a linear stream to the default (or a named) output
// device, a graph.Sink whose Process call blocks until the device has
// room for the chunk -- the spec's "may block on I/O the external
// contract declares" allowance (§5).
type Sink struct {
	deviceIndex int // -1 for the default output device
	input       speakers.Speakers
	stream      *portaudio.Stream
	interleaved []float32
}

// NewSink builds a Sink bound to the default output device. Use
// NewSinkDevice to target a specific portaudio device index.
func NewSink() *Sink { return &Sink{deviceIndex: -1} }

func NewSinkDevice(index int) *Sink { return &Sink{deviceIndex: index} }

func (s *Sink) CanOpen(spk speakers.Speakers) bool {
	return spk.Format.IsLinear() && spk.NumChannels() > 0 && spk.SampleRate > 0
}

func (s *Sink) Open(spk speakers.Speakers) error {
	if !s.CanOpen(spk) {
		return graph.NewError(graph.BadFormat, "open", nil)
	}
	dev, err := s.outputDevice()
	if err != nil {
		return graph.NewError(graph.HostIO, "open", err)
	}
	nch := spk.NumChannels()
	params := portaudio.LowLatencyParameters(nil, dev)
	params.Output.Channels = nch
	params.SampleRate = float64(spk.SampleRate)
	params.FramesPerBuffer = portaudio.FramesPerBufferUnspecified

	stream, err := portaudio.OpenStream(params, &s.interleaved)
	if err != nil {
		return graph.NewError(graph.HostIO, "open", err)
	}
	if err := stream.Start(); err != nil {
		return graph.NewError(graph.HostIO, "open", err)
	}
	s.stream = stream
	s.input = spk
	log.Debug("opened playback stream", "spk", spk.String())
	return nil
}

func (s *Sink) outputDevice() (*portaudio.DeviceInfo, error) {
	if s.deviceIndex < 0 {
		return portaudio.DefaultOutputDevice()
	}
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, err
	}
	if s.deviceIndex >= len(devices) {
		return nil, graph.NewError(graph.BadFormat, "open", nil)
	}
	return devices[s.deviceIndex], nil
}

func (s *Sink) Close() {
	if s.stream == nil {
		return
	}
	s.stream.Stop()
	s.stream.Close()
	s.stream = nil
}

func (s *Sink) Reset() {}

func (s *Sink) GetInput() speakers.Speakers { return s.input }

// Process interleaves c's per-channel samples and writes them to the
// device, blocking until the stream has buffer space. in is always
// fully consumed, per the Sink contract (sinks have no downstream to
// push partial data to).
func (s *Sink) Process(c *speakers.Chunk) error {
	if s.stream == nil {
		return graph.NewError(graph.ProtocolViolation, "process", nil)
	}
	if c.IsDummy() || c.IsEOS() {
		return nil
	}
	nch := s.input.NumChannels()
	need := c.Size * nch
	if cap(s.interleaved) < need {
		s.interleaved = make([]float32, need)
	}
	s.interleaved = s.interleaved[:need]
	for frame := 0; frame < c.Size; frame++ {
		for ch := 0; ch < nch; ch++ {
			s.interleaved[frame*nch+ch] = float32(c.Samples[ch][frame] / s.input.Level)
		}
	}
	if err := s.stream.Write(); err != nil {
		return graph.NewError(graph.HostIO, "process", err)
	}
	return nil
}

// Source captures from the default (or a named) input device, a
// graph.Source whose GetChunk blocks until the device has delivered a
// full buffer.
type Source struct {
	deviceIndex int
	output      speakers.Speakers
	stream      *portaudio.Stream
	interleaved []float32
	newStream   bool
	closed      bool
}

func NewSource(spk speakers.Speakers) *Source {
	return &Source{deviceIndex: -1, output: spk}
}

func NewSourceDevice(index int, spk speakers.Speakers) *Source {
	return &Source{deviceIndex: index, output: spk}
}

// Open starts the capture stream. Capture devices in this package
// don't implement the Filter contract's CanOpen/Open pair (a Source
// has a fixed declared output, per §4.2.1); Open here is hostaudio's
// own setup call, invoked once before the first GetChunk.
func (s *Source) Open(framesPerBuffer int) error {
	dev, err := s.inputDevice()
	if err != nil {
		return graph.NewError(graph.HostIO, "open", err)
	}
	nch := s.output.NumChannels()
	params := portaudio.LowLatencyParameters(dev, nil)
	params.Input.Channels = nch
	params.SampleRate = float64(s.output.SampleRate)
	params.FramesPerBuffer = framesPerBuffer

	s.interleaved = make([]float32, framesPerBuffer*nch)
	stream, err := portaudio.OpenStream(params, &s.interleaved)
	if err != nil {
		return graph.NewError(graph.HostIO, "open", err)
	}
	if err := stream.Start(); err != nil {
		return graph.NewError(graph.HostIO, "open", err)
	}
	s.stream = stream
	s.newStream = true
	return nil
}

func (s *Source) inputDevice() (*portaudio.DeviceInfo, error) {
	if s.deviceIndex < 0 {
		return portaudio.DefaultInputDevice()
	}
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, err
	}
	if s.deviceIndex >= len(devices) {
		return nil, graph.NewError(graph.BadFormat, "open", nil)
	}
	return devices[s.deviceIndex], nil
}

func (s *Source) GetOutput() speakers.Speakers {
	if s.stream == nil {
		return speakers.Speakers{}
	}
	return s.output
}

func (s *Source) NewStream() bool {
	v := s.newStream
	s.newStream = false
	return v
}

// GetChunk blocks for one buffer of capture and deinterleaves it into
// out. It returns false only after Close unblocks a pending read.
func (s *Source) GetChunk(out *speakers.Chunk) (bool, error) {
	if s.stream == nil {
		return false, graph.NewError(graph.ProtocolViolation, "get_chunk", nil)
	}
	if err := s.stream.Read(); err != nil {
		if s.closed {
			return false, nil
		}
		return false, graph.NewError(graph.HostIO, "get_chunk", err)
	}
	nch := s.output.NumChannels()
	n := len(s.interleaved) / nch

	out.Spk = speakers.New(speakers.Linear, s.output.Mask, s.output.SampleRate)
	out.Size = n
	for ch := 0; ch < nch && ch < int(speakers.MaxChannels); ch++ {
		plane := make([]float64, n)
		for frame := 0; frame < n; frame++ {
			plane[frame] = float64(s.interleaved[frame*nch+ch]) * s.output.Level
		}
		out.Samples[ch] = plane
	}
	return true, nil
}

// Reset restarts capture at the current device position; portaudio
// streams have no rewind, so Reset is a no-op beyond clearing NewStream.
func (s *Source) Reset() { s.newStream = false }

// Close stops the capture stream, unblocking any pending GetChunk.
func (s *Source) Close() {
	if s.stream == nil {
		return
	}
	s.closed = true
	s.stream.Stop()
	s.stream.Close()
	s.stream = nil
}

var (
	_ graph.Sink   = (*Sink)(nil)
	_ graph.Source = (*Source)(nil)
)
