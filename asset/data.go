// Package asset stores the code to decode the container, audio, image and animation formats
// of the game's data volumes.
package asset

import (
	"strings"
)

type Kind string

const (
	KindUnknown = Kind("unknown")
	KindWave    = Kind("wave")
	KindImage   = Kind("image")
	KindAnim    = Kind("anim")
)

// KindFromName dispatches an archive entry by the extension found anywhere in its name,
// checked in the order audio, image, animation.
func KindFromName(name string) Kind {
	switch {
	case strings.Contains(name, ".wave"):
		return KindWave
	case strings.Contains(name, ".image"):
		return KindImage
	case strings.Contains(name, ".anim"):
		return KindAnim
	}
	return KindUnknown
}

// OutputExtension is the extension appended to an entry name for its main output file.
func (k Kind) OutputExtension() string {
	switch k {
	case KindWave:
		return ".wav"
	case KindImage, KindAnim:
		return ".png"
	}
	return ""
}
