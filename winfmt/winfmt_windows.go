//go:build windows

package winfmt

// Supported reports whether this build can actually hand a Format to a
// Win32 waveform API. On Windows, it always can.
func Supported() bool { return true }
