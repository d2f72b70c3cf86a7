// Package subtitle renders timed caption text into WebVTT, SRT, or raw
// UTF-8 subtitle buffers, and maps media capabilities to output formats.
package subtitle

import (
	"fmt"

	"github.com/zsiec/cea608tt/internal/media"
)

// Format identifies the output subtitle format, fixed once per stream at
// negotiation time.
type Format int

const (
	FormatVTT Format = iota
	FormatSRT
	FormatRaw
)

func (f Format) String() string {
	switch f {
	case FormatVTT:
		return "vtt"
	case FormatSRT:
		return "srt"
	case FormatRaw:
		return "raw"
	}
	return "unknown"
}

// Capability names understood on the output side, plus the fixed input
// capability.
const (
	CapsNameVTT = "application/x-subtitle-vtt"
	CapsNameSRT = "application/x-subtitle"
	CapsNameRaw = "text/x-raw"

	CapsNameCEA608 = "closedcaption/x-cea-608"
)

// SinkCaps is the fixed input capability: raw CEA-608 byte pairs. It is
// not negotiated further.
var SinkCaps = media.Caps{Name: CapsNameCEA608, Format: "raw"}

// FromCaps maps a downstream capability to its Format. ok is false for a
// capability outside the declared output set.
func FromCaps(c media.Caps) (Format, bool) {
	switch c.Name {
	case CapsNameVTT:
		return FormatVTT, true
	case CapsNameSRT:
		return FormatSRT, true
	case CapsNameRaw:
		return FormatRaw, true
	}
	return 0, false
}

// OutputCaps returns the fixed, concrete capability echoed back to the
// negotiation transport once f has been selected.
func (f Format) OutputCaps() media.Caps {
	switch f {
	case FormatVTT:
		return media.Caps{Name: CapsNameVTT}
	case FormatSRT:
		return media.Caps{Name: CapsNameSRT}
	case FormatRaw:
		return media.Caps{Name: CapsNameRaw, Format: "utf8"}
	}
	panic("subtitle: unknown format")
}

// NeedsHeader reports whether f requires a one-time header buffer before
// the first cue. Only WebVTT does.
func (f Format) NeedsHeader() bool { return f == FormatVTT }

// Extension returns the conventional file extension for f, without the dot.
func (f Format) Extension() string {
	switch f {
	case FormatVTT:
		return "vtt"
	case FormatSRT:
		return "srt"
	case FormatRaw:
		return "txt"
	}
	panic("subtitle: unknown format")
}

// ParseFormat maps a user-facing format name to its Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "vtt":
		return FormatVTT, nil
	case "srt":
		return FormatSRT, nil
	case "text", "raw":
		return FormatRaw, nil
	}
	return 0, fmt.Errorf("subtitle: unknown format %q", s)
}
