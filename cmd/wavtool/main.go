/* wavtool converts between RIFF/RF64 WAVE files and raw interleaved
PCM, and can reorder a WAVE file's channels from WAVE canonical order
into this module's own canonical order (or back). */
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/doismellburning/valib/speakers"
	"github.com/doismellburning/valib/wavio"
)

func main() {
	var (
		mode      string
		rate      int
		channels  string
		format    string
		rf64      bool
		canonical bool
	)
	flag.StringVar(&mode, "mode", "towav", "towav|toraw|info")
	flag.IntVar(&rate, "rate", 48000, "sample rate, for -mode=towav raw input")
	flag.StringVar(&channels, "channels", "stereo", "mono|stereo|5.1|7.1, for -mode=towav raw input")
	flag.StringVar(&format, "format", "pcm16", "pcm16|pcm24|pcm32|float|double, for -mode=towav raw input")
	flag.BoolVar(&rf64, "rf64", false, "write RF64 instead of RIFF, for -mode=towav")
	flag.BoolVar(&canonical, "canonical", false, "for -mode=toraw, reorder channels into this module's canonical order instead of WAVE order")
	flag.Parse()

	var err error
	switch mode {
	case "towav":
		if flag.NArg() != 2 {
			usage()
			os.Exit(2)
		}
		err = toWav(flag.Arg(0), flag.Arg(1), rate, parseMask(channels), parseFormat(format), rf64)
	case "toraw":
		if flag.NArg() != 2 {
			usage()
			os.Exit(2)
		}
		err = toRaw(flag.Arg(0), flag.Arg(1), canonical)
	case "info":
		if flag.NArg() != 1 {
			usage()
			os.Exit(2)
		}
		err = info(flag.Arg(0))
	default:
		fmt.Fprintln(os.Stderr, "wavtool: unknown -mode", mode)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "wavtool:", err)
		os.Exit(1)
	}
}

func parseMask(s string) speakers.Mask {
	switch s {
	case "mono":
		return speakers.ModeMono
	case "5.1":
		return speakers.Mode5_1
	case "7.1":
		return speakers.Mode7_1
	default:
		return speakers.ModeStereo
	}
}

func parseFormat(s string) speakers.Format {
	switch s {
	case "pcm24":
		return speakers.PCM24LE
	case "pcm32":
		return speakers.PCM32LE
	case "float":
		return speakers.PCMFloat
	case "double":
		return speakers.PCMDouble
	default:
		return speakers.PCM16LE
	}
}

func toWav(inPath, outPath string, rate int, mask speakers.Mask, format speakers.Format, rf64 bool) error {
	raw, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	spk := speakers.New(format, mask, rate)

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w, err := wavio.NewWriter(f, spk, wavio.WriterOptions{RF64: rf64})
	if err != nil {
		return err
	}
	if err := w.WriteRaw(raw); err != nil {
		return err
	}
	return w.Close()
}

func toRaw(inPath, outPath string, canonicalOrder bool) error {
	f, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer f.Close()

	rd, err := wavio.Open(f)
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	spk := rd.Speakers()
	waveOrder := wavio.WaveOrder(spk.Mask)
	canon := speakers.CanonicalOrder(spk.Mask)

	for {
		chunk, ok, err := rd.ReadChunk(4096)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if canonicalOrder {
			speakers.Reorder(&chunk, waveOrder, canon)
		}
		if err := writeRawChunk(out, chunk); err != nil {
			return err
		}
	}
}

// writeRawChunk appends chunk's samples as little-endian int16,
// matching the -mode=towav default format; raw PCM round trips through
// wavtool are int16 unless a future flag widens this.
func writeRawChunk(out *os.File, chunk speakers.Chunk) error {
	nch := len(chunk.Samples)
	for nch > 0 && chunk.Samples[nch-1] == nil {
		nch--
	}
	buf := make([]byte, chunk.Size*nch*2)
	for frame := 0; frame < chunk.Size; frame++ {
		for ch := 0; ch < nch; ch++ {
			v := int16(chunk.Samples[ch][frame])
			off := (frame*nch + ch) * 2
			buf[off] = byte(v)
			buf[off+1] = byte(v >> 8)
		}
	}
	_, err := out.Write(buf)
	return err
}

func info(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rd, err := wavio.Open(f)
	if err != nil {
		return err
	}
	spk := rd.Speakers()
	fmt.Printf("format:      %s\n", spk.Format)
	fmt.Printf("mask:        %s\n", spk.Mask)
	fmt.Printf("sample rate: %d\n", spk.SampleRate)
	fmt.Printf("channels:    %d\n", spk.NumChannels())
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, "wavtool converts between WAVE files and raw interleaved PCM")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "\twavtool -mode=towav|toraw|info in out")
	flag.PrintDefaults()
}
