/* firgen builds a FIR kernel from flags (a parametric LP/HP/BP/BS
design, or a graphic-equalizer band file) and prints its taps, one
coefficient per line, or a crude ASCII magnitude plot with -plot. */
package main

import (
	"fmt"
	"math"
	"os"

	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/doismellburning/valib/fir"
)

func main() {
	var (
		rate    int
		kind    string
		f1, f2  float64
		deltaF  float64
		atten   float64
		bands   string
		plot    bool
		ripple  float64
	)
	flag.IntVar(&rate, "rate", 48000, "sample rate in Hz")
	flag.StringVar(&kind, "type", "lowpass", "lowpass|highpass|bandpass|bandstop (ignored with -bands)")
	flag.Float64Var(&f1, "f1", 1000, "cutoff (or lower band edge) in Hz")
	flag.Float64Var(&f2, "f2", 4000, "upper band edge in Hz (bandpass/bandstop only)")
	flag.Float64Var(&deltaF, "transition", 200, "transition width in Hz")
	flag.Float64Var(&atten, "atten", 60, "stopband attenuation in dB")
	flag.StringVar(&bands, "bands", "", "path to a YAML graphic-equalizer band file: a list of {freq, gain}")
	flag.Float64Var(&ripple, "ripple", 0.05, "equalizer passband ripple (linear gain), with -bands")
	flag.BoolVar(&plot, "plot", false, "print an ASCII magnitude plot instead of raw taps")
	flag.Parse()

	var gen fir.Gen
	if bands != "" {
		eq, err := loadEq(bands, ripple)
		if err != nil {
			fmt.Fprintln(os.Stderr, "firgen:", err)
			os.Exit(1)
		}
		gen = eq
	} else {
		gen = fir.ParamFIR{
			Type:          parseType(kind),
			F1:            f1,
			F2:            f2,
			DeltaF:        deltaF,
			AttenuationDB: atten,
		}
	}

	inst := gen.Make(rate)
	if plot {
		printPlot(inst)
		return
	}
	for _, v := range inst.Data {
		fmt.Println(v)
	}
}

func parseType(s string) fir.FilterType {
	switch s {
	case "highpass":
		return fir.HighPass
	case "bandpass":
		return fir.BandPass
	case "bandstop":
		return fir.BandStop
	default:
		return fir.LowPass
	}
}

type bandFile struct {
	Bands []struct {
		Freq float64 `yaml:"freq"`
		Gain float64 `yaml:"gain"`
	} `yaml:"bands"`
}

func loadEq(path string, ripple float64) (fir.EqFIR, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fir.EqFIR{}, err
	}
	var bf bandFile
	if err := yaml.Unmarshal(raw, &bf); err != nil {
		return fir.EqFIR{}, err
	}
	eq := fir.EqFIR{Ripple: ripple}
	for _, b := range bf.Bands {
		eq.Bands = append(eq.Bands, fir.Band{Freq: b.Freq, Gain: b.Gain})
	}
	return eq, nil
}

// printPlot renders a 32-column bar per tap, scaled to the kernel's
// peak magnitude -- a quick visual sanity check, not a substitute for
// a real frequency-response tool.
func printPlot(inst *fir.Instance) {
	peak := 0.0
	for _, v := range inst.Data {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if peak == 0 {
		peak = 1
	}
	const width = 32
	for i, v := range inst.Data {
		n := int(math.Round(math.Abs(v) / peak * width))
		bar := make([]byte, n)
		for j := range bar {
			bar[j] = '#'
		}
		mark := " "
		if i == inst.Center {
			mark = "^"
		}
		fmt.Printf("%4d %s %s\n", i, mark, string(bar))
	}
}
