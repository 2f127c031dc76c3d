/* streaminfo identifies a compressed bitstream and prints its frame
history: one line per frame, and a marker whenever the stream
parameters change. */
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/doismellburning/valib/parser"
	"github.com/doismellburning/valib/parser/aac"
	"github.com/doismellburning/valib/parser/ac3"
	"github.com/doismellburning/valib/parser/dts"
	"github.com/doismellburning/valib/parser/mpa"
)

func main() {
	var quiet bool
	flag.BoolVarP(&quiet, "quiet", "q", false, "only print stream-change lines")
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), quiet); err != nil {
		fmt.Fprintln(os.Stderr, "streaminfo:", err)
		os.Exit(1)
	}
}

func run(path string, quiet bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	mp := parser.NewMulti(ac3.New(), dts.New(), mpa.New(), aac.New())

	buf := make([]byte, 64*1024)
	var pending []byte
	frameNum := 0

	for {
		n, rerr := f.Read(buf)
		pending = append(pending, buf[:n]...)

		for {
			data := pending
			r, codec, ok := mp.LoadFrame(&data)
			pending = data
			if !ok {
				break
			}
			frameNum++
			if r.NewStream || !quiet {
				name := "?"
				if codec != nil {
					name = codec.Name()
				}
				fmt.Printf("frame %-8d codec=%-5s %-20s size=%-6d samples=%-6d new-stream=%v\n",
					frameNum, name, r.Info.Spk.String(), r.Info.FrameSize, r.Info.NSamples, r.NewStream)
			}
		}

		if rerr != nil {
			break
		}
	}
	fmt.Printf("total frames: %d\n", frameNum)
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, "streaminfo identifies a compressed audio bitstream and lists its frames")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "\tstreaminfo [-q] file")
	flag.PrintDefaults()
}
