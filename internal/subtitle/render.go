package subtitle

import (
	"fmt"

	"github.com/zsiec/cea608tt/internal/media"
)

// Cue is one emitted subtitle unit: a stretch of caption text with its
// start time, duration, and 1-based sequence index. Only the SRT renderer
// writes the index into the output.
type Cue struct {
	PTS      media.ClockTime
	Duration media.ClockTime
	Text     string
	Index    uint64
}

// splitTime decomposes a stream position into hours, minutes, seconds, and
// milliseconds. Hours are unbounded rather than wrapped at 24.
func splitTime(t media.ClockTime) (uint64, uint8, uint8, uint16) {
	ns := uint64(t)
	s := ns / 1_000_000_000
	m := s / 60
	h := m / 60
	s %= 60
	m %= 60
	ms := (ns % 1_000_000_000) / 1_000_000
	return h, uint8(m), uint8(s), uint16(ms)
}

// Timestamp renders a stream position as "HH:MM:SS.mmm" for display.
func Timestamp(t media.ClockTime) string {
	h, m, s, ms := splitTime(t)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

// Header returns the one-time header buffer for f, or nil when f has none.
// The returned buffer carries pts as its stream position.
func Header(f Format, pts media.ClockTime) *media.Buffer {
	if f != FormatVTT {
		return nil
	}
	return &media.Buffer{
		PTS:      pts,
		Duration: media.ClockTimeNone,
		Data:     []byte("WEBVTT\r\n\r\n"),
	}
}

// Render formats one cue for f. The returned buffer carries the cue's
// start time and duration as stream-position metadata regardless of
// whether the format embeds timing in the text.
func Render(f Format, cue Cue) *media.Buffer {
	var data []byte
	switch f {
	case FormatVTT:
		data = renderVTT(cue)
	case FormatSRT:
		data = renderSRT(cue)
	case FormatRaw:
		data = []byte(cue.Text)
	default:
		panic("subtitle: unknown format")
	}
	return &media.Buffer{PTS: cue.PTS, Duration: cue.Duration, Data: data}
}

func renderVTT(cue Cue) []byte {
	h1, m1, s1, ms1 := splitTime(cue.PTS)
	h2, m2, s2, ms2 := splitTime(cue.PTS + cue.Duration)
	return []byte(fmt.Sprintf(
		"%02d:%02d:%02d.%03d --> %02d:%02d:%02d.%03d\r\n%s\r\n\r\n",
		h1, m1, s1, ms1, h2, m2, s2, ms2, cue.Text))
}

func renderSRT(cue Cue) []byte {
	h1, m1, s1, ms1 := splitTime(cue.PTS)
	h2, m2, s2, ms2 := splitTime(cue.PTS + cue.Duration)
	// The start hour is written unpadded while the end hour is zero-padded.
	// Long-standing output quirk, kept so existing consumers see identical
	// bytes.
	return []byte(fmt.Sprintf(
		"%02d\r\n%d:%02d:%02d,%03d --> %02d:%02d:%02d,%03d\r\n%s\r\n\r\n",
		cue.Index, h1, m1, s1, ms1, h2, m2, s2, ms2, cue.Text))
}
