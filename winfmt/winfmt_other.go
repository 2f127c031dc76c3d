//go:build !windows

package winfmt

import "errors"

// ErrUnsupported is returned by anything in this package that needs an
// actual Win32 waveform API, which does not exist off Windows.
var ErrUnsupported = errors.New("winfmt: requires windows")

// Supported reports whether this build can actually hand a Format to a
// Win32 waveform API. Off Windows, it never can; FromSpeakers' pure
// struct construction still works everywhere, only the (absent) device
// binding is platform-gated.
func Supported() bool { return false }
